package stroke

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors returned by the stroker.
var (
	// ErrUnsupportedVerb is returned for path elements the offset algorithm
	// cannot handle (cubic segments).
	ErrUnsupportedVerb = errors.New("stroke: unsupported path verb")

	// ErrMultipleContours is returned when a path holds more than one contour.
	ErrMultipleContours = errors.New("stroke: multiple contours are not supported")

	// ErrUnsupportedCap is returned for cap styles other than butt.
	ErrUnsupportedCap = errors.New("stroke: unsupported line cap")

	// ErrUnsupportedJoin is returned for join styles other than miter.
	ErrUnsupportedJoin = errors.New("stroke: unsupported line join")

	// ErrInvalidWidth is returned for a non-positive or non-finite stroke width.
	ErrInvalidWidth = errors.New("stroke: invalid stroke width")

	// ErrInvalidDistance is returned when a distance function is uninitialized.
	ErrInvalidDistance = errors.New("stroke: invalid distance function")
)

// LineCap specifies the shape of line endpoints.
type LineCap int

const (
	// LineCapButt specifies a flat line cap.
	LineCapButt LineCap = iota
	// LineCapRound specifies a rounded line cap.
	LineCapRound
	// LineCapSquare specifies a square line cap.
	LineCapSquare
)

// String returns the SVG name of the cap.
func (c LineCap) String() string {
	switch c {
	case LineCapButt:
		return "butt"
	case LineCapRound:
		return "round"
	case LineCapSquare:
		return "square"
	default:
		return fmt.Sprintf("LineCap(%d)", int(c))
	}
}

// LineJoin specifies the shape of line joins.
type LineJoin int

const (
	// LineJoinMiter specifies a sharp (mitered) join.
	LineJoinMiter LineJoin = iota
	// LineJoinRound specifies a rounded join.
	LineJoinRound
	// LineJoinBevel specifies a beveled join.
	LineJoinBevel
)

// String returns the SVG name of the join.
func (j LineJoin) String() string {
	switch j {
	case LineJoinMiter:
		return "miter"
	case LineJoinRound:
		return "round"
	case LineJoinBevel:
		return "bevel"
	default:
		return fmt.Sprintf("LineJoin(%d)", int(j))
	}
}

// Style defines the stroke parameters consumed by the stroker.
// Width is the base stroke width; half of it is the miter radius when the
// distance functions give no better local value.
type Style struct {
	Width float64
	Cap   LineCap
	Join  LineJoin
}

// Validate reports whether the style can be stroked as-is.
// The returned error wraps ErrInvalidWidth, ErrUnsupportedCap or
// ErrUnsupportedJoin.
func (s Style) Validate() error {
	if err := s.validateWidth(); err != nil {
		return err
	}
	if s.Cap != LineCapButt {
		return fmt.Errorf("%w: %v", ErrUnsupportedCap, s.Cap)
	}
	if s.Join != LineJoinMiter {
		return fmt.Errorf("%w: %v", ErrUnsupportedJoin, s.Join)
	}
	return nil
}

func (s Style) validateWidth() error {
	if !(s.Width > 0) || math.IsInf(s.Width, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidWidth, s.Width)
	}
	return nil
}
