package text

// UnicodeRange represents a contiguous range of code points.
type UnicodeRange struct {
	Start rune
	End   rune
}

// Contains reports whether the rune is in the range.
func (ur UnicodeRange) Contains(r rune) bool {
	return r >= ur.Start && r <= ur.End
}

// Common Unicode ranges for restricting candidates.
var (
	// Latin Scripts
	RangeBasicLatin = UnicodeRange{0x0000, 0x007F} // ASCII
	RangeLatin1Sup  = UnicodeRange{0x0080, 0x00FF} // Latin-1 Supplement
	RangeLatinExtA  = UnicodeRange{0x0100, 0x017F} // Latin Extended-A
	RangeLatinExtB  = UnicodeRange{0x0180, 0x024F} // Latin Extended-B

	// Cyrillic Scripts
	RangeCyrillic = UnicodeRange{0x0400, 0x04FF} // Cyrillic

	// Greek Scripts
	RangeGreek = UnicodeRange{0x0370, 0x03FF} // Greek and Coptic

	// Middle Eastern Scripts
	RangeArabic = UnicodeRange{0x0600, 0x06FF} // Arabic
	RangeHebrew = UnicodeRange{0x0590, 0x05FF} // Hebrew

	// CJK Scripts
	RangeCJKUnified = UnicodeRange{0x4E00, 0x9FFF} // CJK Unified Ideographs
	RangeHiragana   = UnicodeRange{0x3040, 0x309F} // Hiragana
	RangeKatakana   = UnicodeRange{0x30A0, 0x30FF} // Katakana
	RangeHangul     = UnicodeRange{0xAC00, 0xD7AF} // Hangul Syllables

	// Emoji
	RangeEmoji        = UnicodeRange{0x1F600, 0x1F64F} // Emoticons
	RangeEmojiMisc    = UnicodeRange{0x1F300, 0x1F5FF} // Miscellaneous Symbols and Pictographs
	RangeEmojiSymbols = UnicodeRange{0x1F680, 0x1F6FF} // Transport and Map Symbols
	RangeEmojiFlags   = UnicodeRange{0x1F1E0, 0x1F1FF} // Regional Indicator Symbols (Flags)
	RangeEmojiSupp    = UnicodeRange{0x1F900, 0x1F9FF} // Supplemental Symbols and Pictographs
)

// EmojiRanges covers the code points with default emoji presentation and
// the components that build emoji sequences: skin tone modifiers, regional
// indicators, tag characters and the keycap mark. Wrapping an emoji font
// with NewFilteredCandidate(font, EmojiRanges...) keeps it from claiming
// digits, '#' and other text that many emoji fonts also cover.
var EmojiRanges = []UnicodeRange{
	{0x1F000, 0x1F02F}, // Mahjong tiles
	{0x1F0A0, 0x1F0FF}, // Playing cards
	RangeEmojiFlags,
	RangeEmojiMisc,
	RangeEmoji,
	RangeEmojiSymbols,
	RangeEmojiSupp,
	{0x1FA00, 0x1FAFF}, // Symbols and Pictographs Extended-A and B
	{0x20E3, 0x20E3},   // combining enclosing keycap
	{0xE0020, 0xE007F}, // tags
}

// FilteredCandidate restricts a FontCandidate to specific Unicode ranges.
// It is used to keep a broad font from claiming clusters that a later,
// more specialised candidate should render (an emoji font after a text
// font that has a few pictographs, for example).
//
// FilteredCandidate is safe for concurrent use.
type FilteredCandidate struct {
	FontCandidate
	ranges []UnicodeRange
}

// NewFilteredCandidate wraps c. A cluster is accepted only if every rune
// is inside one of the ranges (ignoring joiners and variation selectors)
// and c itself can render it. With no ranges the wrapper is transparent.
func NewFilteredCandidate(c FontCandidate, ranges ...UnicodeRange) *FilteredCandidate {
	return &FilteredCandidate{FontCandidate: c, ranges: ranges}
}

// CanRender implements FontCandidate.CanRender.
func (f *FilteredCandidate) CanRender(cluster string) bool {
	for _, r := range cluster {
		if isClusterExtender(r) {
			continue
		}
		if !f.inRanges(r) {
			return false
		}
	}
	return f.FontCandidate.CanRender(cluster)
}

// Unwrap returns the wrapped candidate.
func (f *FilteredCandidate) Unwrap() FontCandidate {
	return f.FontCandidate
}

// inRanges reports whether the rune is in any of the allowed ranges.
// If no ranges are specified, returns true (no filtering).
func (f *FilteredCandidate) inRanges(r rune) bool {
	if len(f.ranges) == 0 {
		return true
	}
	for _, ur := range f.ranges {
		if ur.Contains(r) {
			return true
		}
	}
	return false
}

// isClusterExtender reports runes that only modify their neighbours:
// zero width joiners and variation selectors.
func isClusterExtender(r rune) bool {
	return r == 0x200D || (r >= 0xFE00 && r <= 0xFE0F) || (r >= 0xE0100 && r <= 0xE01EF)
}
