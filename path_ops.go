package varstroke

// Path operations for area, winding number, containment and bounding box.

// Area returns the signed area enclosed by the path.
// Positive for clockwise paths (in y-down coordinates), negative for
// counter-clockwise. Open subpaths are treated as closed by a straight line.
// A stroke outline has a non-zero area of the same sign regardless of the
// direction of the input path.
func (p *Path) Area() float64 {
	var area float64
	var current, start Point
	open := false

	closeSubpath := func() {
		if open {
			area += lineArea(current, start)
			current = start
			open = false
		}
	}

	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			closeSubpath()
			start, current = e.Point, e.Point
		case LineTo:
			area += lineArea(current, e.Point)
			current, open = e.Point, true
		case QuadTo:
			area += quadArea(current, e.Control, e.Point)
			current, open = e.Point, true
		case CubicTo:
			area += cubicArea(current, e.Control1, e.Control2, e.Point)
			current, open = e.Point, true
		case Close:
			closeSubpath()
		}
	}
	closeSubpath()
	return area
}

// lineArea is the shoelace contribution of a line: 0.5 * (p0 x p1).
func lineArea(p0, p1 Point) float64 {
	return 0.5 * p0.Cross(p1)
}

// quadArea integrates 0.5 * (x dy - y dx) over a quadratic Bezier.
func quadArea(p0, p1, p2 Point) float64 {
	return (2*p0.Cross(p1) + p0.Cross(p2) + 2*p1.Cross(p2)) / 6
}

// cubicArea integrates 0.5 * (x dy - y dx) over a cubic Bezier.
func cubicArea(p0, p1, p2, p3 Point) float64 {
	return (6*p0.Cross(p1) + 3*p0.Cross(p2) + p0.Cross(p3) +
		3*p1.Cross(p2) + 3*p1.Cross(p3) + 6*p2.Cross(p3)) / 20
}

// Winding returns the winding number of a point relative to the path.
// 0 = outside, non-zero = inside (for non-zero fill rule).
// Curves are flattened; every subpath is implicitly closed.
func (p *Path) Winding(pt Point) int {
	var winding int
	var current, start Point

	add := func(a, b Point) { winding += lineWinding(a, b, pt) }

	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			add(current, start)
			start, current = e.Point, e.Point
		case LineTo:
			add(current, e.Point)
			current = e.Point
		case QuadTo:
			NewQuadBez(current, e.Control, e.Point).flatten(add)
			current = e.Point
		case CubicTo:
			CubicBez{P0: current, P1: e.Control1, P2: e.Control2, P3: e.Point}.flatten(add)
			current = e.Point
		case Close:
			add(current, start)
			current = start
		}
	}
	add(current, start)
	return winding
}

// lineWinding computes the winding contribution of a line segment for a
// horizontal ray from pt to the right.
func lineWinding(p0, p1, pt Point) int {
	if p0.Y <= pt.Y && p1.Y > pt.Y {
		if isLeft(p0, p1, pt) > 0 {
			return 1
		}
	} else if p0.Y > pt.Y && p1.Y <= pt.Y {
		if isLeft(p0, p1, pt) < 0 {
			return -1
		}
	}
	return 0
}

// isLeft returns positive if pt is left of line p0-p1, negative if right, 0 if on.
func isLeft(p0, p1, pt Point) float64 {
	return (p1.X-p0.X)*(pt.Y-p0.Y) - (pt.X-p0.X)*(p1.Y-p0.Y)
}

// Contains reports whether pt is inside the path under the non-zero rule.
func (p *Path) Contains(pt Point) bool {
	return p.Winding(pt) != 0
}

// BoundingBox returns the tight axis-aligned bounding box of the path.
// An empty path yields the zero Rect.
func (p *Path) BoundingBox() Rect {
	var r Rect
	first := true
	var current Point

	include := func(b Rect) {
		if first {
			r, first = b, false
			return
		}
		r = r.Union(b)
	}

	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			include(NewRect(e.Point, e.Point))
			current = e.Point
		case LineTo:
			include(NewRect(current, e.Point))
			current = e.Point
		case QuadTo:
			include(NewQuadBez(current, e.Control, e.Point).BoundingBox())
			current = e.Point
		case CubicTo:
			include(CubicBez{P0: current, P1: e.Control1, P2: e.Control2, P3: e.Point}.BoundingBox())
			current = e.Point
		}
	}
	return r
}
