package varstroke

import (
	"fmt"

	"github.com/gogpu/varstroke/bezier"
	"github.com/gogpu/varstroke/internal/stroke"
)

// Stats reports counters of the last StrokePath call of a Stroker.
type Stats struct {
	// Segments is the number of non-degenerate segments stroked, including
	// the closing line of a closed contour.
	Segments int
	// Pieces is the number of quadratic pieces emitted on both sides.
	Pieces int
	// Iterations is the number of candidates evaluated.
	Iterations int
	// Truncated is set when refinement hit the iteration bound; the outline
	// may then deviate from the exact offset by more than the tolerance.
	Truncated bool
}

// Candidate is one quadratic approximation evaluated during refinement.
type Candidate struct {
	// Source is the sub-segment being offset. Lines are given as quadratics
	// with the control point at the chord midpoint.
	Source QuadBez
	// Approx is the candidate offset curve.
	Approx QuadBez
	// Dist is the distance function over Source's parameter range.
	Dist bezier.Curve
	// DistSq is Dist squared.
	DistSq bezier.Curve
	// Error is |Approx(t) - Source(t)|^2 - Dist(t)^2.
	Error bezier.Curve
	// MaxError bounds |Error| on [0, 1].
	MaxError float64
	// Tolerance is the acceptance threshold for MaxError.
	Tolerance float64
	// Accepted reports whether Approx is part of the outline.
	Accepted bool
	// Depth is the number of halvings from the whole segment.
	Depth int
}

// Stroker expands paths into variable-width stroke outlines.
// A Stroker may be reused but is not safe for concurrent use.
type Stroker struct {
	style  Stroke
	engine *stroke.Stroker
}

// NewStroker creates a stroker for the given style.
//
// It fails with ErrInvalidWidth for a non-positive or non-finite width, and
// with ErrUnsupportedCap or ErrUnsupportedJoin for styles other than butt
// caps and miter joins unless WithStyleFallback is given.
func NewStroker(s Stroke, opts ...StrokerOption) (*Stroker, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	engineOpts := stroke.Options{
		ToleranceScale: o.toleranceScale,
		MaxIterations:  o.maxIterations,
		Logger:         o.logger,
		Fallback:       o.fallback,
	}
	if o.observer != nil {
		observer := o.observer
		engineOpts.Observer = func(c stroke.Candidate) {
			observer(candidateFromInternal(c))
		}
	}

	engine, err := stroke.NewStroker(s.internal(), engineOpts)
	if err != nil {
		return nil, err
	}
	style := engine.Style()
	return &Stroker{
		style: Stroke{
			Width: style.Width,
			Cap:   LineCap(style.Cap),
			Join:  LineJoin(style.Join),
		},
		engine: engine,
	}, nil
}

// Style returns the style in effect, after any fallback.
func (s *Stroker) Style() Stroke {
	return s.style
}

// Stats returns the counters of the last StrokePath call.
func (s *Stroker) Stats() Stats {
	st := s.engine.Stats()
	return Stats{
		Segments:   st.Segments,
		Pieces:     st.Pieces,
		Iterations: st.Iterations,
		Truncated:  st.Truncated,
	}
}

// StrokePath returns the fill outline of p stroked with the outer and inner
// distance functions. The outer side is the tangent rotated by
// (x, y) -> (y, -x), which is to the left of the direction of travel in
// y-down coordinates. Both functions are evaluated over [0, 1] of every
// segment.
//
// p must be a single contour of lines and quadratics, optionally closed.
// The result is filled with the non-zero winding rule. An empty or
// degenerate path yields an empty outline.
func (s *Stroker) StrokePath(p *Path, outer, inner bezier.Curve) (*Path, error) {
	if p == nil {
		return nil, ErrNilPath
	}
	elements, err := s.engine.StrokePath(convertPath(p), outer, inner)
	if err != nil {
		return nil, fmt.Errorf("varstroke: stroke path: %w", err)
	}
	return pathFromInternal(elements), nil
}

// StrokePath strokes p with a one-off Stroker.
func StrokePath(p *Path, s Stroke, outer, inner bezier.Curve, opts ...StrokerOption) (*Path, error) {
	st, err := NewStroker(s, opts...)
	if err != nil {
		return nil, err
	}
	return st.StrokePath(p, outer, inner)
}

// StrokeConstant strokes p with the constant width s.Width on both sides.
func StrokeConstant(p *Path, s Stroke, opts ...StrokerOption) (*Path, error) {
	w := ConstantWidth(s.Width)
	return StrokePath(p, s, w, w, opts...)
}

// convertPath converts Path elements to the engine's element types.
func convertPath(p *Path) []stroke.PathElement {
	elements := make([]stroke.PathElement, 0, len(p.elements))
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			elements = append(elements, stroke.MoveTo{Point: e.Point.internal()})
		case LineTo:
			elements = append(elements, stroke.LineTo{Point: e.Point.internal()})
		case QuadTo:
			elements = append(elements, stroke.QuadTo{
				Control: e.Control.internal(),
				Point:   e.Point.internal(),
			})
		case CubicTo:
			elements = append(elements, stroke.CubicTo{
				Control1: e.Control1.internal(),
				Control2: e.Control2.internal(),
				Point:    e.Point.internal(),
			})
		case Close:
			elements = append(elements, stroke.Close{})
		}
	}
	return elements
}

// pathFromInternal builds a Path from engine output, which holds only moves,
// lines, quadratics and closes.
func pathFromInternal(elements []stroke.PathElement) *Path {
	p := NewPath()
	for _, elem := range elements {
		switch e := elem.(type) {
		case stroke.MoveTo:
			p.MoveTo(e.Point.X, e.Point.Y)
		case stroke.LineTo:
			p.LineTo(e.Point.X, e.Point.Y)
		case stroke.QuadTo:
			p.QuadraticTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
		case stroke.Close:
			p.Close()
		}
	}
	return p
}

func quadFromSegment(seg stroke.Segment) QuadBez {
	if seg.Verb == stroke.VerbLine {
		p0, p2 := fromInternal(seg.Points[0]), fromInternal(seg.Points[1])
		return NewQuadBez(p0, p0.Lerp(p2, 0.5), p2)
	}
	return NewQuadBez(fromInternal(seg.Points[0]), fromInternal(seg.Points[1]), fromInternal(seg.Points[2]))
}

func candidateFromInternal(c stroke.Candidate) Candidate {
	return Candidate{
		Source:    quadFromSegment(c.Segment),
		Approx:    quadFromSegment(c.Approx),
		Dist:      c.Dist,
		DistSq:    c.DistSq,
		Error:     c.Error,
		MaxError:  c.MaxError,
		Tolerance: c.Tolerance,
		Accepted:  c.Accepted,
		Depth:     c.Depth,
	}
}
