package text

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// Face is a FontSource at a specific size bound to one shaping engine and
// one outline engine. It is the concrete FontCandidate of this package.
//
// Face is lightweight and safe for concurrent use.
type Face struct {
	source *FontSource
	size   float64
	config faceConfig
	id     uint64
	oracle *Oracle
}

var _ FontCandidate = (*Face)(nil)

func newFace(src *FontSource, size float64, opts ...FaceOption) *Face {
	config := defaultFaceConfig()
	for _, opt := range opts {
		opt(&config)
	}

	f := &Face{
		source: src,
		size:   size,
		config: config,
		id:     faceID(src.ID(), size, config.shaper.Name()),
	}
	f.oracle = NewOracle(config.rule, config.clusterCache, func(cluster string) (RawShaping, error) {
		return f.Shape(ShapeInput{Text: cluster, Direction: DirectionLTR, Script: DetectScript(cluster)})
	})
	return f
}

// faceID mixes the source identity, size and engine into one cache key.
func faceID(sourceID uint64, size float64, engine string) uint64 {
	h := fnv.New64a()
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], sourceID)
	binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(size))
	_, _ = h.Write(buf[:])
	_, _ = h.Write([]byte(engine))
	return h.Sum64()
}

// ID implements FontCandidate.ID.
func (f *Face) ID() uint64 { return f.id }

// Name implements FontCandidate.Name.
func (f *Face) Name() string { return f.source.Name() }

// Size implements FontCandidate.Size.
func (f *Face) Size() float64 { return f.size }

// Source returns the FontSource this face was created from.
func (f *Face) Source() *FontSource { return f.source }

// Shaper returns the face's shaping engine.
func (f *Face) Shaper() ShapingEngine { return f.config.shaper }

// Outliner returns the face's outline engine.
func (f *Face) Outliner() OutlineEngine { return f.config.outliner }

// CanRender implements FontCandidate.CanRender.
func (f *Face) CanRender(cluster string) bool {
	return f.oracle.CanRender(cluster)
}

// Shape implements FontCandidate.Shape.
func (f *Face) Shape(in ShapeInput) (RawShaping, error) {
	if f.size <= 0 || math.IsNaN(f.size) {
		return RawShaping{}, &EngineError{Engine: f.config.shaper.Name(), Font: f.Name(), Err: ErrInvalidSize}
	}
	return f.config.shaper.Shape(f.source, f.size, in)
}

// Outline implements FontCandidate.Outline.
func (f *Face) Outline(gid GlyphID) (RawOutline, error) {
	if f.size <= 0 || math.IsNaN(f.size) {
		return RawOutline{}, &EngineError{Engine: f.config.outliner.Name(), Font: f.Name(), Err: ErrInvalidSize}
	}
	return f.config.outliner.Outline(f.source, f.size, gid)
}

// Metrics implements FontCandidate.Metrics.
func (f *Face) Metrics() FontMetrics {
	return f.source.Parsed().Metrics(f.size)
}

// HasGlyph reports whether the font maps r to a glyph through its cmap.
func (f *Face) HasGlyph(r rune) bool {
	return f.source.Parsed().GlyphIndex(r) != NotdefGlyph
}
