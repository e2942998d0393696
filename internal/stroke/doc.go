// Package stroke expands single-contour paths into filled outlines whose
// thickness varies along the path.
//
// The thickness on each side of the path is a scalar Bezier distance
// function (see package bezier) evaluated over the parameter range of every
// segment. The outer side lies along the Rot90 normal of the tangent,
// (x, y) -> (y, -x); the inner side uses the negated inner function.
//
// # Algorithm Overview
//
// Each segment is offset by adaptive subdivision following Elber and Cohen:
//
//  1. A quadratic candidate is built from the segment's control polygon by
//     displacing its control points along unit normals scaled by the
//     distance function.
//  2. The error curve eps(t) = |candidate(t) - segment(t)|^2 - d(t)^2 is
//     formed symbolically in Bernstein form.
//  3. If the largest weight magnitude of eps is within tolerance the
//     candidate is kept, otherwise the segment and its distance function are
//     split at t = 0.5 and both halves are processed, left first.
//
// The outline is assembled from two accumulators:
//   - Outer: offset pieces on the Rot90 side, in path order
//   - Inner: offset pieces on the opposite side, in path order
//
// An open contour becomes outer, end cap, inner reversed, start cap. A
// closed contour becomes two closed subpaths, outer and inner reversed,
// filled with the non-zero rule.
//
// Only butt caps and miter joins are drawn. Miters are not limited.
//
// # Usage
//
//	s, err := stroke.NewStroker(stroke.Style{Width: 20}, stroke.Options{})
//	if err != nil {
//	    return err
//	}
//
//	input := []stroke.PathElement{
//	    stroke.MoveTo{Point: stroke.Point{X: 0, Y: 0}},
//	    stroke.QuadTo{Control: stroke.Point{X: 50, Y: 80}, Point: stroke.Point{X: 100, Y: 0}},
//	}
//	width := bezier.New(5, 40, 5)
//
//	outline, err := s.StrokePath(input, width, width)
package stroke
