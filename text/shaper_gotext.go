package text

import (
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
)

// GoTextShaper shapes with the HarfBuzz port of go-text/typesetting.
// It supports ligatures, kerning, mark positioning and complex scripts
// (Arabic joining, Indic reordering). Output is 26.6 fixed point with
// y-up offsets.
//
// GoTextShaper is safe for concurrent use. The parsed font.Font is shared
// through the FontSource; a lightweight font.Face is created per call
// because font.Face is NOT safe for concurrent use. HarfbuzzShaper
// instances keep internal buffers and are pooled.
type GoTextShaper struct {
	shaperPool sync.Pool
}

// NewGoTextShaper creates a shaper backed by go-text/typesetting.
func NewGoTextShaper() *GoTextShaper {
	return &GoTextShaper{
		shaperPool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
	}
}

// Name implements ShapingEngine.Name.
func (s *GoTextShaper) Name() string { return "go-text" }

// Shape implements ShapingEngine.Shape.
func (s *GoTextShaper) Shape(src *FontSource, size float64, in ShapeInput) (RawShaping, error) {
	goTextFont, err := src.goText()
	if err != nil {
		return RawShaping{}, &EngineError{Engine: s.Name(), Font: src.Name(), Err: err}
	}
	if in.Text == "" {
		return RawShaping{Units: Units26_6}, nil
	}

	features, err := goTextFeatures(in.Features)
	if err != nil {
		return RawShaping{}, &EngineError{Engine: s.Name(), Font: src.Name(), Err: err}
	}

	runes := []rune(in.Text)
	script := in.Script
	if script == 0 {
		script = DetectScript(in.Text)
	}
	lang := in.Language
	if lang == "" {
		lang = "en"
	}

	input := shaping.Input{
		Text:         runes,
		RunStart:     0,
		RunEnd:       len(runes),
		Direction:    mapDirection(in.Direction),
		Face:         font.NewFace(goTextFont),
		Size:         floatToFixed(size),
		Script:       script,
		Language:     language.NewLanguage(lang),
		FontFeatures: features,
	}

	hb := s.shaperPool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	s.shaperPool.Put(hb)

	offsets := runeByteOffsets(in.Text, len(runes))
	glyphs := make([]RawGlyph, len(output.Glyphs))
	for i, g := range output.Glyphs {
		idx := min(max(g.TextIndex(), 0), len(runes))
		glyphs[i] = RawGlyph{
			ID:       GlyphID(uint16(g.GlyphID)), //nolint:gosec // TrueType glyph indices fit in uint16
			Cluster:  offsets[idx],
			XOffset:  int32(g.XOffset),
			YOffset:  int32(g.YOffset),
			XAdvance: int32(g.Advance),
		}
	}
	return RawShaping{Glyphs: glyphs, Units: Units26_6, Size: size, YUp: true}, nil
}

// mapDirection converts a Direction to go-text's di.Direction.
func mapDirection(d Direction) di.Direction {
	if d == DirectionRTL {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}

func goTextFeatures(features []Feature) ([]shaping.FontFeature, error) {
	if len(features) == 0 {
		return nil, nil
	}
	out := make([]shaping.FontFeature, len(features))
	for i, f := range features {
		if err := f.Validate(); err != nil {
			return nil, err
		}
		out[i] = shaping.FontFeature{Tag: ot.NewTag(f.Tag[0], f.Tag[1], f.Tag[2], f.Tag[3]), Value: f.Value}
	}
	return out, nil
}

// runeByteOffsets maps rune indices of s to byte offsets. The extra last
// entry is len(s).
func runeByteOffsets(s string, n int) []int {
	offsets := make([]int, 0, n+1)
	for i := range s {
		offsets = append(offsets, i)
	}
	return append(offsets, len(s))
}
