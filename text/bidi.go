package text

import (
	"slices"
	"unicode/utf8"

	"golang.org/x/text/unicode/bidi"
)

// Strategy selects how mixed-direction text is handled. One layout uses
// exactly one strategy.
type Strategy int

const (
	// StrategyItemize splits runs at every embedding-level change, shapes
	// each run in its own direction and reorders the runs visually.
	StrategyItemize Strategy = iota

	// StrategyPassThrough leaves reordering to the shaping engine: every
	// run is shaped in the paragraph direction and nothing is reordered
	// below run level. Only correct for single-direction text.
	StrategyPassThrough

	// StrategyPreReorder reorders clusters into visual order before
	// shaping and then shapes everything left to right.
	StrategyPreReorder
)

// String returns the string representation of the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyItemize:
		return "Itemize"
	case StrategyPassThrough:
		return "PassThrough"
	case StrategyPreReorder:
		return "PreReorder"
	default:
		return unknownStr
	}
}

// DetectDirection returns the paragraph direction of s from the dominant
// strong bidi class: more R/AL characters than L characters means RTL.
// A tie goes to the first strong character; text without strong
// characters is LTR.
func DetectDirection(s string) Direction {
	var ltr, rtl int
	first := DirectionLTR
	seen := false
	for _, r := range s {
		props, _ := bidi.LookupRune(r)
		var d Direction
		switch props.Class() {
		case bidi.L:
			ltr++
			d = DirectionLTR
		case bidi.R, bidi.AL:
			rtl++
			d = DirectionRTL
		default:
			continue
		}
		if !seen {
			first, seen = d, true
		}
	}
	switch {
	case rtl > ltr:
		return DirectionRTL
	case ltr > rtl:
		return DirectionLTR
	default:
		return first
	}
}

// Levels returns the embedding level of every rune of s for the given
// paragraph direction. With an LTR paragraph, LTR text is at level 0 and
// RTL text at level 1; numbers that follow RTL text are at level 2. With an
// RTL paragraph, RTL text is at level 1 and embedded LTR text and numbers
// at level 2.
//
// Each paragraph of s is resolved on its own with the same base direction;
// paragraph separators keep the base level. If the bidi algorithm rejects a
// paragraph, its runes get the base level.
func Levels(s string, base Direction) []int {
	levels := make([]int, utf8.RuneCountInString(s))
	for i := range levels {
		levels[i] = base.Level()
	}

	runeStart, byteStart, n := 0, 0, 0
	for i, r := range s {
		if props, _ := bidi.LookupRune(r); props.Class() == bidi.B {
			paragraphLevels(s[byteStart:i], base, levels[runeStart:n])
			runeStart = n + 1
			byteStart = i + utf8.RuneLen(r)
		}
		n++
	}
	paragraphLevels(s[byteStart:], base, levels[runeStart:])
	return levels
}

// numberLevel is the level European and Arabic numbers resolve to whenever
// they do not simply continue LTR text (rules I1 and I2).
const numberLevel = 2

// paragraphLevels fills levels, prefilled with the base level, for a
// single paragraph s.
func paragraphLevels(s string, base Direction, levels []int) {
	if len(levels) == 0 {
		return
	}

	defaultDir := bidi.LeftToRight
	if base == DirectionRTL {
		defaultDir = bidi.RightToLeft
	}

	p := bidi.Paragraph{}
	if _, err := p.SetString(s, bidi.DefaultDirection(defaultDir)); err != nil {
		Logger().Debug("bidi paragraph rejected", "err", err)
		return
	}
	ordering, err := p.Order()
	if err != nil {
		Logger().Debug("bidi ordering failed", "err", err)
		return
	}

	// run.Pos() returns rune indices, end inclusive. Runs only carry a
	// direction, so levels above 1 are restored by resolveNumbers.
	for i := range ordering.NumRuns() {
		run := ordering.Run(i)
		start, end := run.Pos()
		level := base.Level()
		switch {
		case run.Direction() == bidi.RightToLeft && base == DirectionLTR:
			level = 1
		case run.Direction() == bidi.LeftToRight && base == DirectionRTL:
			level = 2
		}
		for j := start; j <= end && j < len(levels); j++ {
			levels[j] = level
		}
	}
	resolveNumbers(s, base, levels)
}

// resolveNumbers raises numbers to numberLevel. In an LTR paragraph a
// European number whose preceding strong character is L (or the start of
// the paragraph) becomes L itself (rule W7) and keeps level 0.
func resolveNumbers(s string, base Direction, levels []int) {
	classes := make([]bidi.Class, 0, len(levels))
	for _, r := range s {
		props, _ := bidi.LookupRune(r)
		classes = append(classes, props.Class())
	}

	strong := bidi.L
	if base == DirectionRTL {
		strong = bidi.R
	}
	for i := 0; i < len(classes) && i < len(levels); {
		switch classes[i] {
		case bidi.L, bidi.R, bidi.AL:
			strong = classes[i]
			i++
			continue
		}
		end, arabic := numberSpan(classes, i)
		if end == i {
			i++
			continue
		}
		if base == DirectionRTL || strong != bidi.L || arabic {
			for j := i; j < end && j < len(levels); j++ {
				levels[j] = numberLevel
			}
		}
		i = end
	}
}

// numberSpan returns the end of the number starting at i: digits together
// with the terminators, single separators and marks that attach to them
// (rules W1, W4 and W5). end is i when no digit belongs to the span.
// arabic reports whether the span holds an Arabic number.
func numberSpan(classes []bidi.Class, i int) (end int, arabic bool) {
	digits := false
	j := i
scan:
	for ; j < len(classes); j++ {
		switch c := classes[j]; c {
		case bidi.EN, bidi.AN:
			digits = true
			arabic = arabic || c == bidi.AN
		case bidi.ET, bidi.NSM:
		case bidi.ES, bidi.CS:
			if !digits || j+1 >= len(classes) || (classes[j+1] != bidi.EN && classes[j+1] != bidi.AN) {
				break scan
			}
		default:
			break scan
		}
	}
	if !digits {
		return i, false
	}
	return j, arabic
}

// ResolveLevels assigns each cluster the embedding level of its first
// rune. clusters must partition s.
func ResolveLevels(s string, clusters []Cluster, base Direction) {
	levels := Levels(s, base)
	runeIndex := 0
	byteOffset := 0
	for i := range clusters {
		for byteOffset < clusters[i].Start {
			_, size := utf8.DecodeRuneInString(s[byteOffset:])
			byteOffset += size
			runeIndex++
		}
		if runeIndex < len(levels) {
			clusters[i].Level = levels[runeIndex]
		}
	}
}

// VisualOrder returns the visual order of items with the given embedding
// levels (rule L2 of UAX #9): from the highest level down to the lowest odd
// level, every maximal sequence at that level or above is reversed.
// order[k] is the logical index of the item displayed k-th from the left.
func VisualOrder(levels []int) []int {
	order := make([]int, len(levels))
	for i := range order {
		order[i] = i
	}
	if len(levels) == 0 {
		return order
	}

	highest := slices.Max(levels)
	lowestOdd := highest + 1
	for _, l := range levels {
		if l%2 == 1 && l < lowestOdd {
			lowestOdd = l
		}
	}

	for level := highest; level >= lowestOdd; level-- {
		for i := 0; i < len(order); {
			if levels[order[i]] < level {
				i++
				continue
			}
			j := i
			for j < len(order) && levels[order[j]] >= level {
				j++
			}
			slices.Reverse(order[i:j])
			i = j
		}
	}
	return order
}

// ReorderClusters returns the clusters in visual order with offsets
// rewritten for the reordered text, which is returned alongside. The
// characters inside a cluster keep their logical order. Every returned
// cluster has level 0, since the text is now meant to be shaped LTR.
//
// A string without right-to-left levels is returned unchanged.
func ReorderClusters(clusters []Cluster) (string, []Cluster) {
	levels := make([]int, len(clusters))
	reorder := false
	for i, c := range clusters {
		levels[i] = c.Level
		if c.Level%2 == 1 || c.Level != levels[0] {
			reorder = true
		}
	}
	if !reorder {
		return Join(clusters), clusters
	}

	out := make([]Cluster, len(clusters))
	offset := 0
	for k, idx := range VisualOrder(levels) {
		c := clusters[idx]
		c.Start = offset
		c.End = offset + len(c.Text)
		c.Level = 0
		offset = c.End
		out[k] = c
	}
	return Join(out), out
}
