package text

import "unicode/utf8"

// SimpleShaper maps every rune through the cmap and advances by the
// horizontal metrics, with no OpenType layout: no ligatures, no kerning,
// no contextual forms. RTL runs are emitted in visual order, one glyph per
// rune. It is enough for Latin, Cyrillic, Greek and CJK labels and is the
// cheapest engine available.
//
// SimpleShaper is stateless and safe for concurrent use.
type SimpleShaper struct{}

// Name implements ShapingEngine.Name.
func (SimpleShaper) Name() string { return "simple" }

// Shape implements ShapingEngine.Shape.
func (SimpleShaper) Shape(src *FontSource, size float64, in ShapeInput) (RawShaping, error) {
	if src.isClosed() {
		return RawShaping{}, &EngineError{Engine: "simple", Font: src.Name(), Err: ErrSourceClosed}
	}
	parsed := src.Parsed()

	glyphs := make([]RawGlyph, 0, utf8.RuneCountInString(in.Text))
	for i, r := range in.Text {
		gid := parsed.GlyphIndex(r)
		glyphs = append(glyphs, RawGlyph{
			ID:       gid,
			Cluster:  i,
			XAdvance: parsed.GlyphAdvance(gid, size),
		})
	}
	if in.Direction == DirectionRTL {
		for i, j := 0, len(glyphs)-1; i < j; i, j = i+1, j-1 {
			glyphs[i], glyphs[j] = glyphs[j], glyphs[i]
		}
	}
	return RawShaping{Glyphs: glyphs, Units: Units26_6, Size: size}, nil
}
