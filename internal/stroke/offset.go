package stroke

import (
	"math"

	"github.com/gogpu/varstroke/bezier"
)

// minTolerance keeps zero distance functions from refining forever on
// rounding noise.
const minTolerance = 1e-9

// Candidate describes one quadratic approximation evaluated during adaptive
// refinement.
type Candidate struct {
	// Segment is the sub-segment of the input being offset.
	Segment Segment
	// Approx is the candidate quadratic offset curve.
	Approx Segment
	// Dist is the distance function restricted to Segment's parameter range.
	Dist bezier.Curve
	// DistSq is Dist*Dist.
	DistSq bezier.Curve
	// Error is eps(t) = |Approx(t) - Segment(t)|^2 - Dist(t)^2.
	Error bezier.Curve
	// MaxError is the convex hull bound |Error.ExtremumWeight()|.
	MaxError float64
	// Tolerance is the acceptance threshold used for this candidate.
	Tolerance float64
	// Accepted reports whether the candidate became part of the output.
	Accepted bool
	// Depth is the number of halvings from the whole segment.
	Depth int
}

// workItem is an entry of the refinement stack.
type workItem struct {
	seg    Segment
	dist   bezier.Curve
	distSq bezier.Curve
	depth  int
}

// segmentResult is the outcome of offsetting one segment with one distance
// function.
type segmentResult struct {
	pieces     []Segment
	iterations int
	truncated  bool
}

// Approximate returns a quadratic that approximates the offset of seg by dist
// using a control polygon transform: start, middle and end control points are
// displaced along unit normals scaled by dist(0), dist(0.5) and dist(1).
// The middle normal is the normalized sum of the end normals so the result
// stays a proper quadratic.
func Approximate(seg Segment, dist bezier.Curve) Segment {
	nStart, _, okStart := seg.UnitNormal(0)
	nEnd, _, okEnd := seg.UnitNormal(1)
	if !okStart || !okEnd {
		return QuadSegment(seg.Start(), seg.Start().Lerp(seg.End(), 0.5), seg.End())
	}

	nMid, ok := nStart.Add(nEnd).Normalize()
	if !ok {
		// Opposite end normals (a cusp): use the normal at the parameter midpoint.
		nMid, _, _ = seg.UnitNormal(0.5)
	}

	var start, mid, end Point
	switch seg.Verb {
	case VerbLine:
		start, end = seg.Points[0], seg.Points[1]
		mid = start.Lerp(end, 0.5)
	case VerbQuad:
		start, mid, end = seg.Points[0], seg.Points[1], seg.Points[2]
	}

	return QuadSegment(
		start.Add(nStart.Scale(dist.Eval(0))),
		mid.Add(nMid.Scale(dist.Eval(0.5))),
		end.Add(nEnd.Scale(dist.Eval(1))),
	)
}

// OffsetError returns eps(t) = |approx(t) - seg(t)|^2 - distSq(t), a scalar
// curve whose largest weight magnitude bounds the pointwise error of approx
// as an offset of seg.
func OffsetError(seg, approx Segment, distSq bezier.Curve) bezier.Curve {
	segX, segY := seg.Coords()
	apX, apY := approx.Coords()

	deg := max(segX.Degree(), apX.Degree())
	segX.ElevateDegree(deg)
	segY.ElevateDegree(deg)
	apX.ElevateDegree(deg)
	apY.ElevateDegree(deg)

	e := bezier.AddSquares(bezier.Sub(apX, segX), bezier.Sub(apY, segY))

	common := max(distSq.Degree(), e.Degree())
	distSq = distSq.Elevated(common)
	e.ElevateDegree(common)
	e.Sub(distSq)
	return e
}

// strokeSegment offsets seg by dist and returns quadratic pieces in path
// order. Refinement uses an explicit stack and stops after maxIterations
// pops; remaining stack entries are then accepted unrefined.
func (s *Stroker) strokeSegment(seg Segment, dist bezier.Curve) segmentResult {
	stack := []workItem{{seg: seg, dist: dist, distSq: bezier.Mul(dist, dist)}}

	var res segmentResult
	for len(stack) > 0 {
		if res.iterations >= s.opts.MaxIterations {
			res.truncated = true
			break
		}
		res.iterations++

		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		tol := math.Max(math.Abs(s.opts.ToleranceScale*item.dist.ExtremumWeight()), minTolerance)
		approx := Approximate(item.seg, item.dist)
		errCurve := OffsetError(item.seg, approx, item.distSq)
		maxErr := math.Abs(errCurve.ExtremumWeight())
		accepted := maxErr <= tol

		if s.opts.Observer != nil {
			s.opts.Observer(Candidate{
				Segment:   item.seg,
				Approx:    approx,
				Dist:      item.dist,
				DistSq:    item.distSq,
				Error:     errCurve,
				MaxError:  maxErr,
				Tolerance: tol,
				Accepted:  accepted,
				Depth:     item.depth,
			})
		}

		if accepted {
			res.pieces = append(res.pieces, approx)
			continue
		}

		left, right := item.seg.Split(0.5)
		distL, distR := item.dist.Split(0.5)
		sqL, sqR := item.distSq.Split(0.5)
		// Right first so the left half is popped next.
		stack = append(stack,
			workItem{seg: right, dist: distR, distSq: sqR, depth: item.depth + 1},
			workItem{seg: left, dist: distL, distSq: sqL, depth: item.depth + 1},
		)
	}

	// Top of the stack is the leftmost unfinished range.
	for i := len(stack) - 1; i >= 0; i-- {
		res.pieces = append(res.pieces, Approximate(stack[i].seg, stack[i].dist))
	}
	return res
}
