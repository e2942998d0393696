package varstroke

import (
	"errors"

	"github.com/gogpu/varstroke/internal/stroke"
)

// Errors returned by the stroker. The stroking errors are shared with the
// expansion engine, so errors.Is matches them whichever layer wrapped them.
var (
	// ErrUnsupportedVerb is returned when a path contains a cubic segment.
	ErrUnsupportedVerb = stroke.ErrUnsupportedVerb

	// ErrMultipleContours is returned when a path has more than one contour.
	ErrMultipleContours = stroke.ErrMultipleContours

	// ErrUnsupportedCap is returned for caps other than butt, unless style
	// fallback is enabled.
	ErrUnsupportedCap = stroke.ErrUnsupportedCap

	// ErrUnsupportedJoin is returned for joins other than miter, unless style
	// fallback is enabled.
	ErrUnsupportedJoin = stroke.ErrUnsupportedJoin

	// ErrInvalidWidth is returned for a non-positive or non-finite width.
	ErrInvalidWidth = stroke.ErrInvalidWidth

	// ErrInvalidDistance is returned for an uninitialized distance function.
	ErrInvalidDistance = stroke.ErrInvalidDistance

	// ErrNilPath is returned when a nil path is stroked.
	ErrNilPath = errors.New("varstroke: nil path")

	// ErrPathData is returned by ParseSVG for malformed path data.
	ErrPathData = errors.New("varstroke: malformed path data")
)
