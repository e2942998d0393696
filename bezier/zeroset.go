package bezier

import "math"

// DefaultZeroTolerance is the control polygon length below which ZeroSet
// considers a subinterval to contain a root.
const DefaultZeroTolerance = 0.001

// nearlyZero is the parameter interval width below which subdivision stops.
const nearlyZero = 1.0 / (1 << 12)

// ZeroSet returns parameter values in [0, 1] where the curve crosses zero.
//
// The curve is subdivided at t=0.5. A subinterval whose weights are all
// non-negative or all negative is dropped, since by the convex hull property
// the curve cannot cross zero there. A subinterval whose control polygon has
// a total variation of at most tol is reported by its midpoint, and so is a
// subinterval narrower than 1/4096 that still changes sign, which happens
// around steep crossings. The result is approximate and finite. A tolerance
// <= 0 selects DefaultZeroTolerance.
func (c Curve) ZeroSet(tol float64) []float64 {
	c.mustBeValid()
	if tol <= 0 {
		tol = DefaultZeroTolerance
	}
	var result []float64
	zeroSetRec(c, 0, 1, tol, &result)
	return result
}

func zeroSetRec(c Curve, tmin, tmax, tol float64, result *[]float64) {
	var lenP float64
	allPos, allNeg := c.weights[0] >= 0, c.weights[0] < 0
	for i := 1; i <= c.degree; i++ {
		lenP += math.Abs(c.weights[i] - c.weights[i-1])
		allPos = allPos && c.weights[i] >= 0
		allNeg = allNeg && c.weights[i] < 0
	}

	switch {
	case allPos || allNeg:
		return
	case lenP <= tol, tmax-tmin < nearlyZero:
		*result = append(*result, (tmin+tmax)*0.5)
	default:
		left, right := c.Split(0.5)
		tmid := (tmin + tmax) * 0.5
		zeroSetRec(left, tmin, tmid, tol, result)
		zeroSetRec(right, tmid, tmax, tol, result)
	}
}
