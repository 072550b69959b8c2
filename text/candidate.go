package text

import "github.com/go-text/typesetting/language"

// FontCandidate is one entry of a fallback chain. The segmenter and the
// shaping adapter depend only on this interface, so a chain may mix faces
// backed by different engines.
//
// Implementations must be safe for concurrent use.
type FontCandidate interface {
	// ID identifies the underlying font data and size for cache keys.
	// Two candidates with the same ID must shape identically.
	ID() uint64

	// Name is a human-readable font name for errors and logs.
	Name() string

	// Size is the font size in pixels per em.
	Size() float64

	// CanRender reports whether the candidate can render a whole grapheme
	// cluster. It must not mutate font state beyond engine-internal caches.
	CanRender(cluster string) bool

	// Shape runs the candidate's shaping engine over in.
	Shape(in ShapeInput) (RawShaping, error)

	// Outline returns the raw outline of a glyph, or ErrMissingOutline.
	Outline(gid GlyphID) (RawOutline, error)

	// Metrics returns the vertical font metrics at Size.
	Metrics() FontMetrics
}

// ShapeInput is the engine-independent description of one shaping call.
type ShapeInput struct {
	Text      string
	Direction Direction
	Script    language.Script
	Language  string
	Features  []Feature
}

// RawGlyph is one glyph as reported by an engine, before normalization.
// Cluster is a byte offset into ShapeInput.Text.
type RawGlyph struct {
	ID       GlyphID
	Cluster  int
	XOffset  int32
	YOffset  int32
	XAdvance int32
	YAdvance int32
}

// RawShaping is an engine's shaping output together with the unit
// convention needed to normalize it.
type RawShaping struct {
	Glyphs []RawGlyph

	// Units is the convention of every value in Glyphs.
	Units Units

	// UnitsPerEm and Size are required for UnitsDesign.
	UnitsPerEm int
	Size       float64

	// YUp is true when positive offsets move a glyph up.
	YUp bool
}

// SegmentOp is a glyph outline operation.
type SegmentOp uint8

const (
	SegmentMoveTo SegmentOp = iota
	SegmentLineTo
	SegmentQuadTo
	SegmentCubeTo
)

// String returns the string representation of the operation.
func (op SegmentOp) String() string {
	switch op {
	case SegmentMoveTo:
		return "MoveTo"
	case SegmentLineTo:
		return "LineTo"
	case SegmentQuadTo:
		return "QuadTo"
	case SegmentCubeTo:
		return "CubeTo"
	default:
		return unknownStr
	}
}

// Points returns how many of Args the operation uses.
func (op SegmentOp) Points() int {
	switch op {
	case SegmentQuadTo:
		return 2
	case SegmentCubeTo:
		return 3
	default:
		return 1
	}
}

// OutlinePoint is a point of a raw outline in engine units.
type OutlinePoint struct {
	X, Y float64
}

// OutlineSegment is one operation of a raw outline. For QuadTo, Args[0] is
// the control point; for CubeTo, Args[0] and Args[1] are.
type OutlineSegment struct {
	Op   SegmentOp
	Args [3]OutlinePoint
}

// RawOutline is a glyph outline as reported by an engine. Contours start
// with SegmentMoveTo and are implicitly closed.
type RawOutline struct {
	Segments []OutlineSegment

	Units      Units
	UnitsPerEm int
	Size       float64

	// YUp is true when the engine's y axis points up.
	YUp bool
}

// ShapingEngine shapes text against a FontSource.
type ShapingEngine interface {
	// Name identifies the engine in errors and logs.
	Name() string

	// Shape returns the engine's glyphs for in. Engine or font handle
	// failures are reported as *EngineError.
	Shape(src *FontSource, size float64, in ShapeInput) (RawShaping, error)
}

// OutlineEngine extracts glyph outlines from a FontSource.
type OutlineEngine interface {
	Name() string

	// Outline returns ErrMissingOutline when the glyph has no scalable
	// outline.
	Outline(src *FontSource, size float64, gid GlyphID) (RawOutline, error)
}
