package text

import (
	"errors"
	"math"
)

// ShapedRun is a Run plus its glyphs and normalized positions. It is
// immutable after creation.
type ShapedRun struct {
	Run Run

	// Glyphs and Positions are parallel slices in shaping order.
	Glyphs    []Glyph
	Positions []GlyphPosition

	// Advance is the sum of the glyphs' x advances in pixels.
	Advance float64

	// Placeholder is set when no candidate produced glyphs and the run
	// holds substitute glyphs instead.
	Placeholder bool
}

// Len returns the number of glyphs in the run.
func (r *ShapedRun) Len() int {
	return len(r.Glyphs)
}

// ShapeOptions are the per-layout shaping parameters.
type ShapeOptions struct {
	// Language is a BCP 47 tag; empty means "en".
	Language string

	Features []Feature

	// Cache, if set, memoizes shaping results.
	Cache *ShapingCache
}

// Shape shapes run with font and normalizes the engine output to pixels:
// 26.6 values are divided by 64, design units are multiplied by
// size/upem. Glyph order is kept exactly as the engine returned it.
//
// An empty run yields an empty ShapedRun. If the engine returns no glyphs
// for non-empty text, the error matches ErrNoGlyphOutput. Engine failures
// are returned as *EngineError.
func Shape(font FontCandidate, run Run, opts ShapeOptions) (*ShapedRun, error) {
	out := &ShapedRun{Run: run}
	out.Run.Font = font
	if run.Text == "" {
		return out, nil
	}

	in := ShapeInput{
		Text:      run.Text,
		Direction: run.Direction,
		Script:    run.Script,
		Language:  opts.Language,
		Features:  opts.Features,
	}

	var key ShapingKey
	if opts.Cache != nil {
		key = NewShapingKey(font.ID(), in)
		if cached, ok := opts.Cache.get(key); ok {
			out.fill(cached)
			return out, nil
		}
	}

	raw, err := font.Shape(in)
	if err != nil {
		var engineErr *EngineError
		if errors.Is(err, ErrNoGlyphOutput) || errors.As(err, &engineErr) {
			return nil, err
		}
		return nil, &EngineError{Engine: "shaping", Font: font.Name(), Err: err}
	}
	if len(raw.Glyphs) == 0 {
		return nil, &NoGlyphOutputError{Font: font.Name(), Text: run.Text}
	}

	shaped, err := normalize(raw, len(run.Text))
	if err != nil {
		return nil, &EngineError{Engine: "shaping", Font: font.Name(), Err: err}
	}
	if opts.Cache != nil {
		opts.Cache.set(key, shaped)
	}
	out.fill(shaped)
	return out, nil
}

// fill copies cached glyphs into the run, rebasing clusters onto the
// layout text.
func (r *ShapedRun) fill(s *shapedGlyphs) {
	r.Glyphs = make([]Glyph, len(s.glyphs))
	for i, g := range s.glyphs {
		g.Cluster += r.Run.Start
		r.Glyphs[i] = g
	}
	r.Positions = append([]GlyphPosition(nil), s.positions...)
	r.Advance = s.advance
}

// normalize converts raw engine output to run-relative pixel glyphs.
func normalize(raw RawShaping, textLen int) (*shapedGlyphs, error) {
	scale, err := raw.Units.Scale(raw.UnitsPerEm, raw.Size)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(scale) || math.IsInf(scale, 0) || scale <= 0 {
		return nil, ErrInvalidSize
	}
	ySign := 1.0
	if raw.YUp {
		ySign = -1.0
	}

	s := &shapedGlyphs{
		glyphs:    make([]Glyph, len(raw.Glyphs)),
		positions: make([]GlyphPosition, len(raw.Glyphs)),
	}
	for i, g := range raw.Glyphs {
		s.glyphs[i] = Glyph{ID: g.ID, Cluster: min(max(g.Cluster, 0), textLen)}
		pos := GlyphPosition{
			XOffset:  float64(g.XOffset) * scale,
			YOffset:  ySign * float64(g.YOffset) * scale,
			XAdvance: float64(g.XAdvance) * scale,
			YAdvance: ySign * float64(g.YAdvance) * scale,
		}
		s.positions[i] = pos
		s.advance += pos.XAdvance
	}
	return s, nil
}
