package text

// FontParser is a font parsing backend for FontSource.
// The default implementation uses golang.org/x/image/font/opentype; tests
// and callers with their own font stack can supply another one through
// WithParser.
type FontParser interface {
	// Parse parses font data (TTF or OTF) and returns a ParsedFont.
	Parse(data []byte) (ParsedFont, error)
}

// ParsedFont is the read-only view of a parsed font used for metadata,
// cmap lookups and metrics. Implementations must be safe for concurrent
// use.
type ParsedFont interface {
	// Name returns the font family name, or "" if not available.
	Name() string

	// FullName returns the full font name, or "" if not available.
	FullName() string

	// NumGlyphs returns the number of glyphs in the font.
	NumGlyphs() int

	// UnitsPerEm returns the design units per em.
	UnitsPerEm() int

	// GlyphIndex returns the nominal glyph for r, or NotdefGlyph.
	GlyphIndex(r rune) GlyphID

	// GlyphAdvance returns the horizontal advance of a glyph at ppem
	// pixels per em, in 26.6 fixed point.
	GlyphAdvance(gid GlyphID, ppem float64) int32

	// Metrics returns the font metrics at ppem pixels per em.
	Metrics(ppem float64) FontMetrics
}

// FontMetrics holds font-level metrics at a specific size, in pixels.
type FontMetrics struct {
	// Ascent is the distance from the baseline to the top of the font (positive).
	Ascent float64

	// Descent is the distance from the baseline to the bottom of the font
	// (positive, y-down).
	Descent float64

	// LineGap is the recommended gap between lines.
	LineGap float64

	// XHeight is the height of lowercase letters (like 'x').
	XHeight float64

	// CapHeight is the height of uppercase letters.
	CapHeight float64
}

// Height returns the total line height (ascent + descent + line gap).
func (m FontMetrics) Height() float64 {
	return m.Ascent + m.Descent + m.LineGap
}

// defaultParser is the parser used when no WithParser option is given.
var defaultParser FontParser = ximageParser{}
