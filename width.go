package varstroke

import "github.com/gogpu/varstroke/bezier"

// Distance functions are scalar Bezier curves giving the offset of one side
// of the stroke from the path, in path units, over the parameter range
// [0, 1] of every segment.

// ConstantWidth returns the distance function of a stroke of constant
// width: the degree 0 curve width/2.
func ConstantWidth(width float64) bezier.Curve {
	return bezier.Constant(width / 2)
}

// LinearWidth returns a distance function that tapers linearly from a
// stroke width of w0 at the start of each segment to w1 at its end.
func LinearWidth(w0, w1 float64) bezier.Curve {
	return bezier.New(w0/2, w1/2)
}

// WidthProfile returns a distance function from unit profile weights, scaled
// by width/2. A profile of all ones is a constant-width stroke.
//
// Example:
//
//	// Thin at the ends, full width in the middle.
//	outer := varstroke.WidthProfile(20, 0.2, 1, 1, 0.2)
func WidthProfile(width float64, weights ...float64) bezier.Curve {
	return bezier.New(weights...).Scale(width / 2)
}
