package glyphrun

import "math"

// PathElement is a single element of a Path.
type PathElement interface {
	isPathElement()
}

// MoveTo starts a new contour at Point.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a straight segment to Point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// QuadTo draws a quadratic Bezier segment.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isPathElement() {}

// CubicTo draws a cubic Bezier segment.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the current contour.
type Close struct{}

func (Close) isPathElement() {}

// Path is a vector outline made of contours. Glyph paths produced by
// GlyphPath close every contour explicitly.
type Path struct {
	elements []PathElement
	start    Point
	current  Point
	open     bool
}

// NewPath creates an empty path.
func NewPath() *Path {
	return &Path{elements: make([]PathElement, 0, 16)}
}

// MoveTo starts a new contour.
func (p *Path) MoveTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start, p.current = pt, pt
	p.open = true
}

// LineTo adds a line segment.
func (p *Path) LineTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
}

// QuadraticTo adds a quadratic Bezier segment.
func (p *Path) QuadraticTo(cx, cy, x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, QuadTo{Control: Pt(cx, cy), Point: pt})
	p.current = pt
}

// CubicTo adds a cubic Bezier segment.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, CubicTo{Control1: Pt(c1x, c1y), Control2: Pt(c2x, c2y), Point: pt})
	p.current = pt
}

// Close closes the current contour. Closing an already closed contour is
// a no-op.
func (p *Path) Close() {
	if !p.open {
		return
	}
	p.elements = append(p.elements, Close{})
	p.current = p.start
	p.open = false
}

// Elements returns the path elements. The slice must not be modified.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// Len returns the number of elements.
func (p *Path) Len() int {
	return len(p.elements)
}

// Contours returns the number of contours.
func (p *Path) Contours() int {
	n := 0
	for _, e := range p.elements {
		if _, ok := e.(MoveTo); ok {
			n++
		}
	}
	return n
}

// Bounds returns the bounding box of all points of the path, control
// points included. An empty path has zero bounds.
func (p *Path) Bounds() (minPt, maxPt Point) {
	if len(p.elements) == 0 {
		return Point{}, Point{}
	}
	minPt = Pt(math.Inf(1), math.Inf(1))
	maxPt = Pt(math.Inf(-1), math.Inf(-1))
	grow := func(q Point) {
		minPt.X, minPt.Y = min(minPt.X, q.X), min(minPt.Y, q.Y)
		maxPt.X, maxPt.Y = max(maxPt.X, q.X), max(maxPt.Y, q.Y)
	}
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			grow(e.Point)
		case LineTo:
			grow(e.Point)
		case QuadTo:
			grow(e.Control)
			grow(e.Point)
		case CubicTo:
			grow(e.Control1)
			grow(e.Control2)
			grow(e.Point)
		}
	}
	return minPt, maxPt
}

// Transform returns a new path with m applied to every point.
func (p *Path) Transform(m Matrix) *Path {
	result := &Path{elements: make([]PathElement, 0, len(p.elements))}
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			pt := m.TransformPoint(e.Point)
			result.MoveTo(pt.X, pt.Y)
		case LineTo:
			pt := m.TransformPoint(e.Point)
			result.LineTo(pt.X, pt.Y)
		case QuadTo:
			ctrl := m.TransformPoint(e.Control)
			pt := m.TransformPoint(e.Point)
			result.QuadraticTo(ctrl.X, ctrl.Y, pt.X, pt.Y)
		case CubicTo:
			ctrl1 := m.TransformPoint(e.Control1)
			ctrl2 := m.TransformPoint(e.Control2)
			pt := m.TransformPoint(e.Point)
			result.CubicTo(ctrl1.X, ctrl1.Y, ctrl2.X, ctrl2.Y, pt.X, pt.Y)
		case Close:
			result.Close()
		}
	}
	return result
}
