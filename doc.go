// Package varstroke computes the filled outline of a path stroked with a
// width that varies continuously along each segment.
//
// # Overview
//
// The width on each side of the path is given by a distance function, a
// scalar Bezier curve from package [github.com/gogpu/varstroke/bezier]
// evaluated over the parameter range [0, 1] of every segment. The offset of
// every line and quadratic segment is approximated with quadratic Bezier
// pieces, subdividing until an exact bound on the error of each piece is
// within tolerance. Pieces are connected with miter joins and the ends are
// closed with butt caps.
//
// # Quick Start
//
//	import "github.com/gogpu/varstroke"
//
//	p := varstroke.NewPath()
//	p.MoveTo(20, 100)
//	p.QuadraticTo(150, 0, 280, 100)
//
//	// 4 units wide at the ends, 40 in the middle.
//	w := varstroke.WidthProfile(40, 0.1, 1, 0.1)
//	outline, err := varstroke.StrokePath(p, varstroke.DefaultStroke(), w, w)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// outline is filled with the non-zero rule.
//	mask := varstroke.Rasterize(outline, 300, 200)
//
// # Limitations
//
// Paths must be a single contour of lines and quadratics; cubic segments
// are rejected. Caps other than butt and joins other than miter are rejected
// unless [WithStyleFallback] is given, in which case they degrade to butt and
// miter. Miter joins are not limited.
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
package varstroke
