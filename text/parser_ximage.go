package text

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ximageParser implements FontParser using golang.org/x/image/font/opentype.
type ximageParser struct{}

// Parse implements FontParser.Parse.
func (ximageParser) Parse(data []byte) (ParsedFont, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse sfnt: %w", err)
	}
	return &ximageParsedFont{font: f}, nil
}

// ximageParsedFont implements ParsedFont on top of sfnt.Font. An sfnt.Font
// is safe for concurrent use as long as every call gets its own
// sfnt.Buffer, which is why no buffer is stored here.
type ximageParsedFont struct {
	font *sfnt.Font
}

func (f *ximageParsedFont) Name() string {
	name, err := f.font.Name(nil, sfnt.NameIDFamily)
	if err != nil {
		return ""
	}
	return name
}

func (f *ximageParsedFont) FullName() string {
	name, err := f.font.Name(nil, sfnt.NameIDFull)
	if err != nil {
		return ""
	}
	return name
}

func (f *ximageParsedFont) NumGlyphs() int {
	return f.font.NumGlyphs()
}

func (f *ximageParsedFont) UnitsPerEm() int {
	return int(f.font.UnitsPerEm())
}

func (f *ximageParsedFont) GlyphIndex(r rune) GlyphID {
	var buf sfnt.Buffer
	idx, err := f.font.GlyphIndex(&buf, r)
	if err != nil {
		return NotdefGlyph
	}
	return GlyphID(idx)
}

func (f *ximageParsedFont) GlyphAdvance(gid GlyphID, ppem float64) int32 {
	var buf sfnt.Buffer
	adv, err := f.font.GlyphAdvance(&buf, sfnt.GlyphIndex(gid), floatToFixed(ppem), font.HintingNone)
	if err != nil {
		return 0
	}
	return int32(adv)
}

func (f *ximageParsedFont) Metrics(ppem float64) FontMetrics {
	var buf sfnt.Buffer
	m, err := f.font.Metrics(&buf, floatToFixed(ppem), font.HintingNone)
	if err != nil {
		return FontMetrics{}
	}
	return FontMetrics{
		Ascent:    fixedToFloat(m.Ascent),
		Descent:   fixedToFloat(m.Descent),
		LineGap:   fixedToFloat(m.Height - m.Ascent - m.Descent),
		XHeight:   fixedToFloat(m.XHeight),
		CapHeight: fixedToFloat(m.CapHeight),
	}
}

// floatToFixed converts a float64 pixel value to fixed.Int26_6.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// fixedToFloat converts a fixed.Int26_6 value to float64 pixels.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
