package text

import (
	"errors"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Default engines used by faces created without WithShaper/WithOutliner.
// Both are safe for concurrent use.
var (
	defaultShaper   ShapingEngine = NewGoTextShaper()
	defaultOutliner OutlineEngine = SFNTOutliner{}
)

// SFNTOutliner reads glyph outlines through golang.org/x/image/font/sfnt.
// Coordinates come back scaled to the face size in 26.6 fixed point with
// the y axis pointing down.
//
// SFNTOutliner requires a FontSource parsed with the default parser.
type SFNTOutliner struct{}

// Name implements OutlineEngine.Name.
func (SFNTOutliner) Name() string { return "sfnt" }

// Outline implements OutlineEngine.Outline.
func (o SFNTOutliner) Outline(src *FontSource, size float64, gid GlyphID) (RawOutline, error) {
	if src.isClosed() {
		return RawOutline{}, &EngineError{Engine: o.Name(), Font: src.Name(), Err: ErrSourceClosed}
	}
	xi, ok := src.Parsed().(*ximageParsedFont)
	if !ok {
		return RawOutline{}, &EngineError{Engine: o.Name(), Font: src.Name(), Err: errors.New("font not parsed by x/image")}
	}

	var buf sfnt.Buffer
	segments, err := xi.font.LoadGlyph(&buf, sfnt.GlyphIndex(gid), floatToFixed(size), nil)
	switch {
	case errors.Is(err, sfnt.ErrColoredGlyph), errors.Is(err, sfnt.ErrNotFound):
		return RawOutline{}, ErrMissingOutline
	case err != nil:
		return RawOutline{}, &EngineError{Engine: o.Name(), Font: src.Name(), Err: err}
	}

	out := RawOutline{
		Segments: make([]OutlineSegment, 0, len(segments)),
		Units:    Units26_6,
		Size:     size,
	}
	for _, seg := range segments {
		var s OutlineSegment
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			s.Op = SegmentMoveTo
		case sfnt.SegmentOpLineTo:
			s.Op = SegmentLineTo
		case sfnt.SegmentOpQuadTo:
			s.Op = SegmentQuadTo
		case sfnt.SegmentOpCubeTo:
			s.Op = SegmentCubeTo
		default:
			continue
		}
		for i := range s.Op.Points() {
			s.Args[i] = fixedPoint(seg.Args[i])
		}
		out.Segments = append(out.Segments, s)
	}
	return out, nil
}

func fixedPoint(p fixed.Point26_6) OutlinePoint {
	return OutlinePoint{X: float64(p.X), Y: float64(p.Y)}
}

// GoTextOutliner reads glyph outlines through go-text/typesetting.
// Coordinates are unscaled font design units with the y axis pointing up.
// Bitmap and SVG glyphs report ErrMissingOutline.
type GoTextOutliner struct{}

// Name implements OutlineEngine.Name.
func (GoTextOutliner) Name() string { return "go-text" }

// Outline implements OutlineEngine.Outline.
func (o GoTextOutliner) Outline(src *FontSource, size float64, gid GlyphID) (RawOutline, error) {
	goTextFont, err := src.goText()
	if err != nil {
		return RawOutline{}, &EngineError{Engine: o.Name(), Font: src.Name(), Err: err}
	}

	face := font.NewFace(goTextFont)
	outline, ok := face.GlyphData(font.GID(gid)).(font.GlyphOutline)
	if !ok {
		return RawOutline{}, ErrMissingOutline
	}

	out := RawOutline{
		Segments:   make([]OutlineSegment, 0, len(outline.Segments)),
		Units:      UnitsDesign,
		UnitsPerEm: int(face.Upem()),
		Size:       size,
		YUp:        true,
	}
	for _, seg := range outline.Segments {
		var s OutlineSegment
		switch seg.Op {
		case ot.SegmentOpMoveTo:
			s.Op = SegmentMoveTo
		case ot.SegmentOpLineTo:
			s.Op = SegmentLineTo
		case ot.SegmentOpQuadTo:
			s.Op = SegmentQuadTo
		case ot.SegmentOpCubeTo:
			s.Op = SegmentCubeTo
		default:
			continue
		}
		for i := range s.Op.Points() {
			s.Args[i] = OutlinePoint{X: float64(seg.Args[i].X), Y: float64(seg.Args[i].Y)}
		}
		out.Segments = append(out.Segments, s)
	}
	return out, nil
}
