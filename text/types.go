package text

// unknownStr is the string returned for unknown enum values.
const unknownStr = "Unknown"

// Direction is the horizontal writing direction of a run or paragraph.
type Direction int

const (
	// DirectionLTR is left-to-right text (Latin, Cyrillic, digits).
	DirectionLTR Direction = iota
	// DirectionRTL is right-to-left text (Arabic, Hebrew).
	DirectionRTL
)

// String returns the string representation of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionLTR:
		return "LTR"
	case DirectionRTL:
		return "RTL"
	default:
		return unknownStr
	}
}

// Level returns the paragraph embedding level of a base direction.
func (d Direction) Level() int {
	if d == DirectionRTL {
		return 1
	}
	return 0
}

// DirectionOfLevel returns the direction of a bidi embedding level:
// odd levels are right-to-left.
func DirectionOfLevel(level int) Direction {
	if level%2 == 1 {
		return DirectionRTL
	}
	return DirectionLTR
}

// Units is the coordinate convention an engine reports values in.
type Units int

const (
	// Units26_6 are fixed-point pixels with 6 fractional bits (value/64).
	Units26_6 Units = iota
	// UnitsDesign are font design units; pixels = value * size / upem.
	UnitsDesign
)

// String returns the string representation of the unit convention.
func (u Units) String() string {
	switch u {
	case Units26_6:
		return "26.6"
	case UnitsDesign:
		return "design"
	default:
		return unknownStr
	}
}

// Scale returns the factor that converts a value in u to pixels.
func (u Units) Scale(upem int, size float64) (float64, error) {
	switch u {
	case Units26_6:
		return 1.0 / 64.0, nil
	case UnitsDesign:
		if upem <= 0 {
			return 0, ErrInvalidUnitsPerEm
		}
		return size / float64(upem), nil
	default:
		return 0, ErrInvalidUnitsPerEm
	}
}

// Rect is an axis-aligned rectangle in pixels.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the height of the rectangle.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }
