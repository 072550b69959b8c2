package glyphrun

import (
	"github.com/gogpu/glyphrun/internal/parallel"
	"github.com/gogpu/glyphrun/text"
)

// LayoutResult is the output of one layout call. The caller owns it; the
// pipeline keeps no reference.
type LayoutResult struct {
	// Text is the text the glyph clusters index into. It differs from the
	// input when normalization or the pre-reorder strategy is active.
	Text string

	Strategy  text.Strategy
	Direction text.Direction

	// Origin is the pen position of the first glyph.
	Origin Point

	// Runs holds the shaped runs in visual order.
	Runs []*text.ShapedRun

	// Glyphs holds every glyph in drawing order.
	Glyphs []PositionedGlyph

	// Width is the sum of all run advances.
	Width float64

	// Ascent and Descent are the largest values over the fonts used,
	// both positive; Height is Ascent + Descent + line gap.
	Ascent, Descent, Height float64
}

// Blob is a maximal sequence of adjacent glyphs drawn with one font,
// suitable for a single glyph-run draw call.
type Blob struct {
	Font   text.FontCandidate
	Glyphs []PositionedGlyph
}

// Blobs groups adjacent glyphs that share a font.
func (r *LayoutResult) Blobs() []Blob {
	var blobs []Blob
	for i, g := range r.Glyphs {
		if i > 0 && blobs[len(blobs)-1].Font.ID() == g.Font.ID() {
			last := &blobs[len(blobs)-1]
			last.Glyphs = last.Glyphs[:len(last.Glyphs)+1]
			continue
		}
		blobs = append(blobs, Blob{Font: g.Font, Glyphs: r.Glyphs[i : i+1 : len(r.Glyphs)]})
	}
	return blobs
}

// GlyphFill is a glyph outline in layout space and the paint to fill it
// with.
type GlyphFill struct {
	Path  *Path
	Paint RGBA

	// Glyph is the index of the glyph in LayoutResult.Glyphs.
	Glyph int
}

// Paths converts every glyph with a scalable outline into a path
// translated to its placed position. Glyphs without an outline are
// skipped. Conversion stops at the first engine error.
func (r *LayoutResult) Paths(paint RGBA) ([]GlyphFill, error) {
	return glyphFills(r.Glyphs, paint, nil, GlyphPath)
}

type fillResult struct {
	fill GlyphFill
	ok   bool
	err  error
}

func glyphFills(glyphs []PositionedGlyph, paint RGBA, pool *parallel.WorkerPool,
	convert func(text.FontCandidate, text.GlyphID) (*Path, error)) ([]GlyphFill, error) {
	results := parallel.Map(pool, len(glyphs), func(i int) fillResult {
		g := glyphs[i]
		p, err := convert(g.Font, g.ID)
		if err != nil || p == nil {
			return fillResult{err: err}
		}
		return fillResult{
			fill: GlyphFill{Path: p.Transform(Translate(g.X, g.Y)), Paint: paint, Glyph: i},
			ok:   true,
		}
	})

	fills := make([]GlyphFill, 0, len(glyphs))
	for _, res := range results {
		if res.err != nil {
			return fills, res.err
		}
		if res.ok {
			fills = append(fills, res.fill)
		}
	}
	return fills, nil
}

// Align selects how PlacementTransform anchors a layout.
type Align int

const (
	// AlignLeft puts the layout's left edge at the anchor.
	AlignLeft Align = iota

	// AlignRight puts the layout's right edge at the anchor.
	AlignRight

	// AlignMirror mirrors the layout horizontally so that it occupies
	// [anchor.X - Width, anchor.X]: the layout's left edge lands on the
	// anchor. For an RTL run shaped by an engine that emits glyphs
	// left to right, that edge belongs to the last logical glyph.
	AlignMirror
)

// String returns the string representation of the alignment.
func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "Left"
	case AlignRight:
		return "Right"
	case AlignMirror:
		return "Mirror"
	default:
		return "Unknown"
	}
}

// PlacementTransform returns the transform from layout space to surface
// space that places the layout at anchor with the given alignment. The
// anchor's y is the baseline. The result is a plain value: nothing is
// pushed onto or popped from any drawing state.
func (r *LayoutResult) PlacementTransform(anchor Point, align Align) Matrix {
	toOrigin := Translate(-r.Origin.X, -r.Origin.Y)
	switch align {
	case AlignRight:
		return Translate(anchor.X-r.Width, anchor.Y).Multiply(toOrigin)
	case AlignMirror:
		return Translate(anchor.X, anchor.Y).Multiply(Scale(-1, 1)).Multiply(toOrigin)
	default:
		return Translate(anchor.X, anchor.Y).Multiply(toOrigin)
	}
}
