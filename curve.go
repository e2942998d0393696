package varstroke

import (
	"math"

	"github.com/gogpu/varstroke/bezier"
)

// Rect represents an axis-aligned rectangle.
// Min is the top-left corner (minimum coordinates).
// Max is the bottom-right corner (maximum coordinates).
type Rect struct {
	Min, Max Point
}

// NewRect creates a rectangle from two points.
// The points are normalized so Min <= Max.
func NewRect(p1, p2 Point) Rect {
	return Rect{
		Min: Point{X: math.Min(p1.X, p2.X), Y: math.Min(p1.Y, p2.Y)},
		Max: Point{X: math.Max(p1.X, p2.X), Y: math.Max(p1.Y, p2.Y)},
	}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, other.Min.X), Y: math.Min(r.Min.Y, other.Min.Y)},
		Max: Point{X: math.Max(r.Max.X, other.Max.X), Y: math.Max(r.Max.Y, other.Max.Y)},
	}
}

// Expand returns the rectangle grown to include p.
func (r Rect) Expand(p Point) Rect {
	return r.Union(Rect{Min: p, Max: p})
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// QuadBez represents a quadratic Bezier curve with control points P0, P1, P2.
// P0 is the start point, P1 is the control point, P2 is the end point.
type QuadBez struct {
	P0, P1, P2 Point
}

// NewQuadBez creates a new quadratic Bezier curve.
func NewQuadBez(p0, p1, p2 Point) QuadBez {
	return QuadBez{P0: p0, P1: p1, P2: p2}
}

// Eval evaluates the curve at parameter t (0 to 1).
func (q QuadBez) Eval(t float64) Point {
	mt := 1.0 - t
	return Point{
		X: mt*mt*q.P0.X + 2*mt*t*q.P1.X + t*t*q.P2.X,
		Y: mt*mt*q.P0.Y + 2*mt*t*q.P1.Y + t*t*q.P2.Y,
	}
}

// Subdivide splits the curve at t=0.5 into two halves using de Casteljau.
func (q QuadBez) Subdivide() (QuadBez, QuadBez) {
	a := q.P0.Lerp(q.P1, 0.5)
	b := q.P1.Lerp(q.P2, 0.5)
	mid := a.Lerp(b, 0.5)
	return QuadBez{P0: q.P0, P1: a, P2: mid}, QuadBez{P0: mid, P1: b, P2: q.P2}
}

// Extrema returns the parameter values in (0, 1) where either coordinate
// has a local extremum.
func (q QuadBez) Extrema() []float64 {
	ts := hodographZeros(q.P0.X, q.P1.X, q.P2.X)
	return append(ts, hodographZeros(q.P0.Y, q.P1.Y, q.P2.Y)...)
}

// BoundingBox returns the tight axis-aligned bounding box of the curve.
func (q QuadBez) BoundingBox() Rect {
	r := NewRect(q.P0, q.P2)
	for _, t := range q.Extrema() {
		r = r.Expand(q.Eval(t))
	}
	return r
}

// CubicBez represents a cubic Bezier curve. Paths may hold cubics, but the
// stroker rejects them.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

// Eval evaluates the curve at parameter t (0 to 1).
func (c CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	a, b, d, e := mt*mt*mt, 3*mt*mt*t, 3*mt*t*t, t*t*t
	return Point{
		X: a*c.P0.X + b*c.P1.X + d*c.P2.X + e*c.P3.X,
		Y: a*c.P0.Y + b*c.P1.Y + d*c.P2.Y + e*c.P3.Y,
	}
}

// Subdivide splits the curve at t=0.5 into two halves using de Casteljau.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	ab := c.P0.Lerp(c.P1, 0.5)
	bc := c.P1.Lerp(c.P2, 0.5)
	cd := c.P2.Lerp(c.P3, 0.5)
	abc := ab.Lerp(bc, 0.5)
	bcd := bc.Lerp(cd, 0.5)
	mid := abc.Lerp(bcd, 0.5)
	return CubicBez{P0: c.P0, P1: ab, P2: abc, P3: mid}, CubicBez{P0: mid, P1: bcd, P2: cd, P3: c.P3}
}

// Extrema returns the parameter values in (0, 1) where either coordinate
// has a local extremum.
func (c CubicBez) Extrema() []float64 {
	ts := hodographZeros(c.P0.X, c.P1.X, c.P2.X, c.P3.X)
	return append(ts, hodographZeros(c.P0.Y, c.P1.Y, c.P2.Y, c.P3.Y)...)
}

// BoundingBox returns the tight axis-aligned bounding box of the curve.
func (c CubicBez) BoundingBox() Rect {
	r := NewRect(c.P0, c.P3)
	for _, t := range c.Extrema() {
		r = r.Expand(c.Eval(t))
	}
	return r
}

// hodographZeros returns the zeros in (0, 1) of the derivative of the scalar
// Bezier curve with the given weights.
func hodographZeros(weights ...float64) []float64 {
	n := len(weights) - 1
	d := make([]float64, n)
	for i := range d {
		d[i] = float64(n) * (weights[i+1] - weights[i])
	}
	var out []float64
	for _, t := range bezier.New(d...).ZeroSet(bezier.DefaultZeroTolerance) {
		if t > 0 && t < 1 {
			out = append(out, t)
		}
	}
	return out
}

// flatness bounds the distance between a curve and the polyline it is
// replaced with by Path.Winding.
const flatness = 0.1

func (q QuadBez) flatten(emit func(a, b Point)) {
	if q.P1.Distance(q.P0.Lerp(q.P2, 0.5)) <= flatness {
		emit(q.P0, q.P2)
		return
	}
	l, r := q.Subdivide()
	l.flatten(emit)
	r.flatten(emit)
}

func (c CubicBez) flatten(emit func(a, b Point)) {
	d1 := c.P1.Distance(c.P0.Lerp(c.P3, 1.0/3))
	d2 := c.P2.Distance(c.P0.Lerp(c.P3, 2.0/3))
	if math.Max(d1, d2) <= flatness {
		emit(c.P0, c.P3)
		return
	}
	l, r := c.Subdivide()
	l.flatten(emit)
	r.flatten(emit)
}
