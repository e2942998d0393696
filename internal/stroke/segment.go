package stroke

import (
	"fmt"

	"github.com/gogpu/varstroke/bezier"
)

// Verb identifies the kind of a Segment.
type Verb uint8

const (
	// VerbLine is a straight segment with two points.
	VerbLine Verb = iota + 1
	// VerbQuad is a quadratic Bezier segment with three points.
	VerbQuad
)

// String returns the verb name.
func (v Verb) String() string {
	switch v {
	case VerbLine:
		return "line"
	case VerbQuad:
		return "quad"
	default:
		return fmt.Sprintf("Verb(%d)", uint8(v))
	}
}

// Degree returns the polynomial degree of the verb's geometry.
// It panics for anything but lines and quads.
func (v Verb) Degree() int {
	switch v {
	case VerbLine:
		return 1
	case VerbQuad:
		return 2
	default:
		panic(fmt.Sprintf("stroke: no segment degree for %v", v))
	}
}

// Segment is a single drawable piece of a path. Only the first
// Verb.Degree()+1 points are meaningful.
type Segment struct {
	Verb   Verb
	Points [3]Point
}

// LineSegment returns the line segment from p0 to p1.
func LineSegment(p0, p1 Point) Segment {
	return Segment{Verb: VerbLine, Points: [3]Point{p0, p1}}
}

// QuadSegment returns the quadratic segment with the given control points.
func QuadSegment(p0, p1, p2 Point) Segment {
	return Segment{Verb: VerbQuad, Points: [3]Point{p0, p1, p2}}
}

// Degree returns the segment's polynomial degree.
func (s Segment) Degree() int {
	return s.Verb.Degree()
}

// Start returns the first point.
func (s Segment) Start() Point {
	return s.Points[0]
}

// End returns the last point.
func (s Segment) End() Point {
	return s.Points[s.Degree()]
}

// degenerate reports whether all control points coincide.
func (s Segment) degenerate() bool {
	for i := 1; i <= s.Degree(); i++ {
		if s.Points[i] != s.Points[0] {
			return false
		}
	}
	return true
}

// Coords returns the X and Y coordinate channels as scalar curves of the
// segment's degree.
func (s Segment) Coords() (x, y bezier.Curve) {
	n := s.Degree()
	xs := make([]float64, n+1)
	ys := make([]float64, n+1)
	for i := 0; i <= n; i++ {
		xs[i] = s.Points[i].X
		ys[i] = s.Points[i].Y
	}
	return bezier.New(xs...), bezier.New(ys...)
}

// segmentFromCoords rebuilds a segment from its coordinate channels.
func segmentFromCoords(verb Verb, x, y bezier.Curve) Segment {
	seg := Segment{Verb: verb}
	for i := 0; i <= verb.Degree(); i++ {
		seg.Points[i] = Point{X: x.Weight(i), Y: y.Weight(i)}
	}
	return seg
}

// Split subdivides the segment at t into two segments of the same verb.
func (s Segment) Split(t float64) (Segment, Segment) {
	x, y := s.Coords()
	lx, rx := x.Split(t)
	ly, ry := y.Split(t)
	return segmentFromCoords(s.Verb, lx, ly), segmentFromCoords(s.Verb, rx, ry)
}

// Eval returns the point at parameter t.
func (s Segment) Eval(t float64) Point {
	x, y := s.Coords()
	return Point{X: x.Eval(t), Y: y.Eval(t)}
}

// UnitNormal returns the unit normal and unit tangent at t. The normal is
// the tangent rotated by Rot90. ok is false if the segment has no direction
// at t, even after falling back to its chord.
func (s Segment) UnitNormal(t float64) (normal, tangent Vec2, ok bool) {
	var d Vec2
	switch s.Verb {
	case VerbLine:
		d = s.Points[1].Sub(s.Points[0])
	case VerbQuad:
		p := s.Points
		switch t {
		case 0:
			d = p[1].Sub(p[0])
		case 1:
			d = p[2].Sub(p[1])
		default:
			d = p[1].Sub(p[0]).Scale(1 - t).Add(p[2].Sub(p[1]).Scale(t)).Scale(2)
		}
	default:
		panic(fmt.Sprintf("stroke: no unit normal for %v", s.Verb))
	}

	tangent, ok = d.Normalize()
	if !ok {
		// A control point on an endpoint leaves the tangent to the chord.
		tangent, ok = s.End().Sub(s.Start()).Normalize()
		if !ok {
			return Vec2{}, Vec2{}, false
		}
	}
	return tangent.Rot90(), tangent, true
}
