package varstroke

import "math"

// PathBuilder provides a fluent interface for path construction.
// All methods return the builder for chaining.
//
// Every shape method starts a new contour; a Stroker accepts paths with a
// single contour only.
type PathBuilder struct {
	path *Path
}

// BuildPath starts a new path builder.
func BuildPath() *PathBuilder {
	return &PathBuilder{path: NewPath()}
}

// MoveTo moves to a new position.
func (b *PathBuilder) MoveTo(x, y float64) *PathBuilder {
	b.path.MoveTo(x, y)
	return b
}

// LineTo draws a line to a position.
func (b *PathBuilder) LineTo(x, y float64) *PathBuilder {
	b.path.LineTo(x, y)
	return b
}

// QuadTo draws a quadratic Bezier curve.
func (b *PathBuilder) QuadTo(cx, cy, x, y float64) *PathBuilder {
	b.path.QuadraticTo(cx, cy, x, y)
	return b
}

// CubicTo draws a cubic Bezier curve.
func (b *PathBuilder) CubicTo(c1x, c1y, c2x, c2y, x, y float64) *PathBuilder {
	b.path.CubicTo(c1x, c1y, c2x, c2y, x, y)
	return b
}

// Close closes the current subpath.
func (b *PathBuilder) Close() *PathBuilder {
	b.path.Close()
	return b
}

// Polyline adds an open contour through the given points.
func (b *PathBuilder) Polyline(pts ...Point) *PathBuilder {
	for i, pt := range pts {
		if i == 0 {
			b.path.MoveTo(pt.X, pt.Y)
		} else {
			b.path.LineTo(pt.X, pt.Y)
		}
	}
	return b
}

// Wave adds an open contour of n quadratic arches from (x0, y) to (x1, y),
// alternating above and below the baseline by amplitude.
func (b *PathBuilder) Wave(x0, x1, y, amplitude float64, n int) *PathBuilder {
	if n < 1 {
		return b
	}
	step := (x1 - x0) / float64(n)
	b.path.MoveTo(x0, y)
	for i := 0; i < n; i++ {
		a := amplitude
		if i%2 == 1 {
			a = -a
		}
		x := x0 + float64(i)*step
		// The apex of a quadratic arch is at half the control point height.
		b.path.QuadraticTo(x+step/2, y-2*a, x+step, y)
	}
	return b
}

// Polygon adds a closed regular polygon to the path.
func (b *PathBuilder) Polygon(cx, cy, radius float64, sides int) *PathBuilder {
	if sides < 3 {
		return b
	}
	return b.ring(cx, cy, sides, func(int) float64 { return radius })
}

// Star adds a closed star shape to the path.
func (b *PathBuilder) Star(cx, cy, outerRadius, innerRadius float64, points int) *PathBuilder {
	if points < 3 {
		return b
	}
	return b.ring(cx, cy, 2*points, func(i int) float64 {
		if i%2 == 1 {
			return innerRadius
		}
		return outerRadius
	})
}

// ring adds a closed contour of n vertices evenly spaced by angle, starting
// at the top.
func (b *PathBuilder) ring(cx, cy float64, n int, radius func(i int) float64) *PathBuilder {
	angleStep := 2 * math.Pi / float64(n)
	for i := 0; i < n; i++ {
		sin, cos := math.Sincos(-math.Pi/2 + float64(i)*angleStep)
		x := cx + radius(i)*cos
		y := cy + radius(i)*sin
		if i == 0 {
			b.path.MoveTo(x, y)
		} else {
			b.path.LineTo(x, y)
		}
	}
	b.path.Close()
	return b
}

// Build returns the constructed path.
func (b *PathBuilder) Build() *Path {
	return b.path
}
