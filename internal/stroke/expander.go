package stroke

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/gogpu/varstroke/bezier"
)

// Defaults for Options.
const (
	DefaultToleranceScale = 0.5
	DefaultMaxIterations  = 5000
)

// Options configures a Stroker. Zero fields select defaults.
type Options struct {
	// ToleranceScale sets the per-candidate tolerance as a fraction of the
	// distance function's extremum weight. Default: 0.5.
	ToleranceScale float64

	// MaxIterations bounds the refinement loop of one segment side.
	// Default: 5000.
	MaxIterations int

	// Observer, if set, is called for every evaluated candidate.
	Observer func(Candidate)

	// Logger receives diagnostics. Default: discard.
	Logger *slog.Logger

	// Fallback degrades unsupported caps to butt and joins to miter instead
	// of rejecting them.
	Fallback bool
}

// Stats reports counters of the last StrokePath call.
type Stats struct {
	Segments   int
	Pieces     int
	Iterations int
	// Truncated is set when a refinement loop hit MaxIterations; the output
	// may then exceed the tolerance.
	Truncated bool
}

// Stroker converts a single-contour path and two distance functions into a
// filled outline. A Stroker is not safe for concurrent use.
type Stroker struct {
	style  Style
	opts   Options
	logger *slog.Logger

	outer *pathBuilder
	inner *pathBuilder

	stats Stats
}

// NewStroker creates a stroker for the given style.
func NewStroker(style Style, opts Options) (*Stroker, error) {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.ToleranceScale <= 0 || math.IsNaN(opts.ToleranceScale) {
		opts.ToleranceScale = DefaultToleranceScale
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultMaxIterations
	}

	if err := style.validateWidth(); err != nil {
		return nil, err
	}
	if err := style.Validate(); err != nil {
		if !opts.Fallback {
			return nil, err
		}
		if style.Cap != LineCapButt {
			opts.Logger.Warn("stroke: cap not implemented, using butt", "cap", style.Cap)
			style.Cap = LineCapButt
		}
		if style.Join != LineJoinMiter {
			opts.Logger.Warn("stroke: join not implemented, using miter", "join", style.Join)
			style.Join = LineJoinMiter
		}
	}

	return &Stroker{
		style:  style,
		opts:   opts,
		logger: opts.Logger,
	}, nil
}

// Style returns the effective style after any fallback.
func (s *Stroker) Style() Style {
	return s.style
}

// Stats returns the counters of the last StrokePath call.
func (s *Stroker) Stats() Stats {
	return s.stats
}

// contour tracks the traversal state of StrokePath.
type contour struct {
	start, last Point

	first, prev   Segment
	havePrev      bool
	closed        bool
	firstOuterPt  Point
	firstInnerPt  Point
	outerDistance bezier.Curve
	innerDistance bezier.Curve
}

// StrokePath strokes elements with the outer distance function on the
// Rot90 side and the inner one on the opposite side, and returns the fill
// outline (non-zero winding).
//
// Each segment is parameterized on its own: both distance functions are
// evaluated over [0, 1] of every segment.
func (s *Stroker) StrokePath(elements []PathElement, outer, inner bezier.Curve) ([]PathElement, error) {
	if !outer.Valid() || !inner.Valid() {
		return nil, ErrInvalidDistance
	}
	s.reset()

	c := &contour{
		outerDistance: outer,
		innerDistance: inner.Scale(-1),
	}

	for i, el := range elements {
		if c.closed {
			return nil, fmt.Errorf("%w: element %d follows a closed contour", ErrMultipleContours, i)
		}
		switch e := el.(type) {
		case MoveTo:
			if c.havePrev {
				return nil, fmt.Errorf("%w: move at element %d", ErrMultipleContours, i)
			}
			c.start, c.last = e.Point, e.Point
		case LineTo:
			s.addSegment(c, LineSegment(c.last, e.Point))
		case QuadTo:
			s.addSegment(c, QuadSegment(c.last, e.Control, e.Point))
		case CubicTo:
			return nil, fmt.Errorf("%w: cubic at element %d", ErrUnsupportedVerb, i)
		case Close:
			if c.last != c.start {
				s.addSegment(c, LineSegment(c.last, c.start))
			}
			c.closed = true
		default:
			return nil, fmt.Errorf("%w: %T", ErrUnsupportedVerb, el)
		}
	}

	if !c.havePrev {
		return nil, nil
	}

	out := newPathBuilder()
	if c.closed {
		s.finishClosed(c, out)
	} else {
		s.finishOpen(out)
	}

	s.logger.Debug("stroke: path expanded",
		"segments", s.stats.Segments,
		"pieces", s.stats.Pieces,
		"iterations", s.stats.Iterations,
		"truncated", s.stats.Truncated)
	if s.stats.Truncated {
		s.logger.Warn("stroke: refinement hit iteration cap; outline may exceed tolerance",
			"max_iterations", s.opts.MaxIterations)
	}
	return out.build(), nil
}

// reset clears the stroker state for a new path.
func (s *Stroker) reset() {
	s.outer = newPathBuilder()
	s.inner = newPathBuilder()
	s.stats = Stats{}
}

// addSegment strokes seg on both sides and connects it to the previous one.
func (s *Stroker) addSegment(c *contour, seg Segment) {
	if seg.degenerate() {
		return
	}
	c.last = seg.End()

	outerRes := s.strokeSegment(seg, c.outerDistance)
	innerRes := s.strokeSegment(seg, c.innerDistance)
	s.record(seg, outerRes, innerRes)

	outerStart := outerRes.pieces[0].Start()
	innerStart := innerRes.pieces[0].Start()
	if !c.havePrev {
		s.outer.moveTo(outerStart)
		s.inner.moveTo(innerStart)
		c.first = seg
		c.firstOuterPt, c.firstInnerPt = outerStart, innerStart
	} else {
		s.join(c.prev, seg, outerStart, innerStart)
	}

	appendPieces(s.outer, outerRes.pieces)
	appendPieces(s.inner, innerRes.pieces)
	c.prev = seg
	c.havePrev = true
}

func (s *Stroker) record(seg Segment, results ...segmentResult) {
	s.stats.Segments++
	pieces := 0
	for _, r := range results {
		pieces += len(r.pieces)
		s.stats.Iterations += r.iterations
		s.stats.Truncated = s.stats.Truncated || r.truncated
	}
	s.stats.Pieces += pieces
	s.logger.Debug("stroke: segment offset", "verb", seg.Verb, "pieces", pieces)
}

// appendPieces adds accepted quads to b. Pieces of one segment meet end to
// start; a line bridges any gap left by rounding or a width discontinuity.
func appendPieces(b *pathBuilder, pieces []Segment) {
	for _, p := range pieces {
		b.bridgeTo(p.Start())
		b.quadTo(p.Points[1], p.Points[2])
	}
}

// join adds a miter join at the common endpoint of prev and curr. Both
// accumulators end at the next segment's start points (outerNext, innerNext).
func (s *Stroker) join(prev, curr Segment, outerNext, innerNext Point) {
	switch s.style.Join {
	case LineJoinMiter:
		s.miterJoin(prev, curr, outerNext, innerNext)
	default:
		// Unsupported joins are rejected or replaced in NewStroker.
		panic(fmt.Sprintf("stroke: unhandled join %v", s.style.Join))
	}
}

func (s *Stroker) miterJoin(prev, curr Segment, outerNext, innerNext Point) {
	corner := curr.Start()

	before, _, okBefore := prev.UnitNormal(1)
	after, _, okAfter := curr.UnitNormal(0)

	outer, inner := s.outer, s.inner
	if okBefore && okAfter && before.Cross(after) <= 0 {
		// Counter-clockwise turn: the inner accumulator is on the outside.
		outer, inner = inner, outer
		outerNext, innerNext = innerNext, outerNext
		before, after = before.Neg(), after.Neg()
	}

	cosTheta := before.Dot(after)
	if !okBefore || !okAfter || 1-cosTheta < nearlyZero || 1+cosTheta < nearlyZero {
		// Nearly collinear, or a full reversal with no finite miter.
		outer.bridgeTo(outerNext)
		inner.bridgeTo(innerNext)
		return
	}

	// The stroke radius at the junction is the next segment's offset there,
	// else the previous segment's end offset, else the style radius.
	radius := outerNext.Distance(corner)
	if radius < nearlyZero {
		radius = outer.current.Distance(corner)
	}
	if radius < nearlyZero {
		radius = s.style.Width / 2
	}

	// before+after bisects the normals; its origin is the midpoint of the
	// miter line and the half miter length is radius / sin(theta/2), where
	// sin(theta/2) = sqrt((1+cos(angle between normals))/2).
	sinHalfTheta := math.Sqrt(0.5 * (1 + cosTheta))
	miterVec, _ := before.Add(after).Normalize()
	miterVec = miterVec.Scale(radius / sinHalfTheta)

	outer.lineTo(corner.Add(miterVec))
	outer.bridgeTo(outerNext)

	// Passing through the corner on the inside keeps the outline valid when a
	// segment is shorter than the stroke width.
	inner.lineTo(corner)
	inner.bridgeTo(innerNext)
}

type capLocation int

const (
	capStart capLocation = iota
	capEnd
)

// endcap adds a cap to the outer accumulator.
func (s *Stroker) endcap(out *pathBuilder, loc capLocation) {
	switch s.style.Cap {
	case LineCapButt:
		if loc == capStart {
			out.close()
		} else {
			// Inner's last point is where its reversed walk begins.
			out.lineTo(s.inner.current)
		}
	default:
		panic(fmt.Sprintf("stroke: unhandled cap %v", s.style.Cap))
	}
}

// finishOpen emits outer, the end cap, inner reversed, then the start cap.
func (s *Stroker) finishOpen(out *pathBuilder) {
	out.appendPath(s.outer)
	s.endcap(out, capEnd)
	out.appendReversed(s.inner)
	s.endcap(out, capStart)
}

// finishClosed joins the last segment back to the first and emits outer and
// reversed inner as two closed subpaths.
func (s *Stroker) finishClosed(c *contour, out *pathBuilder) {
	s.join(c.prev, c.first, c.firstOuterPt, c.firstInnerPt)

	out.appendPath(s.outer)
	out.close()

	out.moveTo(s.inner.current)
	out.appendReversed(s.inner)
	out.close()
}
