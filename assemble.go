package glyphrun

import "github.com/gogpu/glyphrun/text"

// PositionedGlyph is one glyph placed in layout space.
type PositionedGlyph struct {
	ID   text.GlyphID
	Font text.FontCandidate

	// Run is the index of the glyph's run in LayoutResult.Runs.
	Run int

	// Cluster is the byte offset of the glyph's cluster in
	// LayoutResult.Text.
	Cluster int

	// X and Y are the placed position: pen position plus shaped offset,
	// y pointing down with the baseline at the layout origin's y.
	X, Y float64

	Advance float64
}

// Assembler accumulates shaped runs, in visual order, into one sequence
// of positioned glyphs. It keeps a horizontal pen: glyph i of a run is
// placed at (x + xOffset, originY + yOffset), then x advances by
// xAdvance. Runs are never modified.
type Assembler struct {
	origin Point
	x      float64
	runs   []*text.ShapedRun
	glyphs []PositionedGlyph
}

// NewAssembler creates an assembler whose pen starts at origin.
func NewAssembler(origin Point) *Assembler {
	return &Assembler{origin: origin, x: origin.X}
}

// Add appends run at the current pen position.
func (a *Assembler) Add(run *text.ShapedRun) {
	index := len(a.runs)
	a.runs = append(a.runs, run)
	for i, g := range run.Glyphs {
		pos := run.Positions[i]
		a.glyphs = append(a.glyphs, PositionedGlyph{
			ID:      g.ID,
			Font:    run.Run.Font,
			Run:     index,
			Cluster: g.Cluster,
			X:       a.x + pos.XOffset,
			Y:       a.origin.Y + pos.YOffset,
			Advance: pos.XAdvance,
		})
		a.x += pos.XAdvance
	}
}

// Pen returns the current pen position.
func (a *Assembler) Pen() Point {
	return Pt(a.x, a.origin.Y)
}

// Width returns the total advance of the runs added so far.
func (a *Assembler) Width() float64 {
	return a.x - a.origin.X
}

// Runs returns the runs added so far, in the order they were added.
func (a *Assembler) Runs() []*text.ShapedRun {
	return a.runs
}

// Glyphs returns the positioned glyphs placed so far.
func (a *Assembler) Glyphs() []PositionedGlyph {
	return a.glyphs
}
