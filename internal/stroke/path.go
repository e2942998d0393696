package stroke

// PathElement represents an element in a path.
type PathElement interface {
	isPathElement()
}

// MoveTo moves to a point.
type MoveTo struct{ Point Point }

func (MoveTo) isPathElement() {}

// LineTo draws a line.
type LineTo struct{ Point Point }

func (LineTo) isPathElement() {}

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct{ Control, Point Point }

func (QuadTo) isPathElement() {}

// CubicTo draws a cubic Bezier curve. The stroker rejects it.
type CubicTo struct{ Control1, Control2, Point Point }

func (CubicTo) isPathElement() {}

// Close closes the path.
type Close struct{}

func (Close) isPathElement() {}

// getEndPoint returns the endpoint of a path element.
func getEndPoint(el PathElement) Point {
	switch e := el.(type) {
	case MoveTo:
		return e.Point
	case LineTo:
		return e.Point
	case QuadTo:
		return e.Point
	case CubicTo:
		return e.Point
	default:
		return Point{}
	}
}

// pathBuilder accumulates one side of the stroke outline.
type pathBuilder struct {
	elements []PathElement
	current  Point
}

func newPathBuilder() *pathBuilder {
	return &pathBuilder{
		elements: make([]PathElement, 0, 64),
	}
}

func (b *pathBuilder) moveTo(p Point) {
	b.elements = append(b.elements, MoveTo{Point: p})
	b.current = p
}

func (b *pathBuilder) lineTo(p Point) {
	b.elements = append(b.elements, LineTo{Point: p})
	b.current = p
}

// bridgeTo adds a line to p unless the builder is already there.
func (b *pathBuilder) bridgeTo(p Point) {
	if b.current.Distance(p) > 1e-9 {
		b.lineTo(p)
	}
}

func (b *pathBuilder) quadTo(c, p Point) {
	b.elements = append(b.elements, QuadTo{Control: c, Point: p})
	b.current = p
}

func (b *pathBuilder) close() {
	b.elements = append(b.elements, Close{})
}

func (b *pathBuilder) appendPath(other *pathBuilder) {
	b.elements = append(b.elements, other.elements...)
	b.current = other.current
}

// appendReversed appends src walked backwards: segment order is reversed,
// and each quad is emitted from its end point back to its start point.
// The leading MoveTo of src becomes the final end point.
func (b *pathBuilder) appendReversed(src *pathBuilder) {
	elems := src.elements
	for i := len(elems) - 1; i >= 1; i-- {
		endPt := getEndPoint(elems[i-1])
		switch el := elems[i].(type) {
		case LineTo:
			b.lineTo(endPt)
		case QuadTo:
			b.quadTo(el.Control, endPt)
		}
	}
}

func (b *pathBuilder) build() []PathElement {
	return b.elements
}
