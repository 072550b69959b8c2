package text

import (
	"encoding/binary"
	"unicode"

	hbtt "github.com/benoitkugler/textlayout/fonts/truetype"
	hb "github.com/benoitkugler/textlayout/harfbuzz"
	hblang "github.com/benoitkugler/textlayout/language"
)

// TextlayoutShaper shapes with the HarfBuzz port of
// benoitkugler/textlayout. Its font scale is left at the default
// (units per em), so positions come back in font design units.
//
// TextlayoutShaper is stateless and safe for concurrent use; calls on the
// same FontSource are serialized by the source.
type TextlayoutShaper struct{}

// NewTextlayoutShaper creates a textlayout-backed shaper.
func NewTextlayoutShaper() *TextlayoutShaper {
	return &TextlayoutShaper{}
}

// Name implements ShapingEngine.Name.
func (s *TextlayoutShaper) Name() string { return "textlayout" }

// Shape implements ShapingEngine.Shape.
func (s *TextlayoutShaper) Shape(src *FontSource, size float64, in ShapeInput) (RawShaping, error) {
	upem := src.UnitsPerEm()
	features := make([]hb.Feature, 0, len(in.Features))
	for _, f := range in.Features {
		if err := f.Validate(); err != nil {
			return RawShaping{}, &EngineError{Engine: s.Name(), Font: src.Name(), Err: err}
		}
		features = append(features, hb.Feature{
			Tag:   hbtt.Tag(binary.BigEndian.Uint32([]byte(f.Tag))),
			Value: f.Value,
			Start: 0,
			End:   len(in.Text),
		})
	}

	runes := []rune(in.Text)
	var glyphs []RawGlyph
	err := src.withTextlayout(func(face *hbtt.Font) error {
		font := hb.NewFont(face)

		buf := hb.NewBuffer()
		buf.Props.Direction = hb.LeftToRight
		if in.Direction == DirectionRTL {
			buf.Props.Direction = hb.RightToLeft
		}
		buf.Props.Script = textlayoutScript(runes)
		lang := in.Language
		if lang == "" {
			lang = "en"
		}
		buf.Props.Language = hblang.NewLanguage(lang)
		buf.AddRunes(runes, 0, len(runes))
		buf.Shape(font, features)

		offsets := runeByteOffsets(in.Text, len(runes))
		glyphs = make([]RawGlyph, len(buf.Info))
		for i, info := range buf.Info {
			pos := buf.Pos[i]
			idx := min(max(info.Cluster, 0), len(runes))
			glyphs[i] = RawGlyph{
				ID:       GlyphID(uint16(info.Glyph)), //nolint:gosec // TrueType glyph indices fit in uint16
				Cluster:  offsets[idx],
				XOffset:  int32(pos.XOffset),
				YOffset:  int32(pos.YOffset),
				XAdvance: int32(pos.XAdvance),
				YAdvance: int32(pos.YAdvance),
			}
		}
		return nil
	})
	if err != nil {
		return RawShaping{}, &EngineError{Engine: s.Name(), Font: src.Name(), Err: err}
	}
	return RawShaping{Glyphs: glyphs, Units: UnitsDesign, UnitsPerEm: upem, Size: size, YUp: true}, nil
}

// textlayoutScript returns textlayout's script of the first letter.
func textlayoutScript(runes []rune) hblang.Script {
	for _, r := range runes {
		if unicode.IsLetter(r) {
			return hblang.LookupScript(r)
		}
	}
	return hblang.Latin
}
