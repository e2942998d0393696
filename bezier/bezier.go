// Package bezier implements scalar (one-dimensional) Bezier curves of
// arbitrary degree in Bernstein form over the parameter domain [0, 1].
//
// A Curve is pure algebra: it has no geometry. Two-dimensional curves are
// represented by one Curve per coordinate channel. The package provides
// evaluation and subdivision by de Casteljau's algorithm, exact degree
// elevation, Bernstein-basis products, coefficient-wise arithmetic and a
// subdivision-based zero finder.
//
// The convex hull property of the Bernstein form is used throughout: the
// value of a curve on [0, 1] always lies between its smallest and largest
// weight, so [Curve.ExtremumWeight] is a cheap upper bound for the largest
// magnitude the curve attains.
//
// Precondition violations (empty weights, degree mismatch, degree reduction)
// are programmer errors and panic.
package bezier

import (
	"fmt"
	"math"
	"strings"
)

// Curve is a scalar Bezier curve of degree len(weights)-1.
//
// The zero value is not a valid curve; use [New], [Zero] or [Constant].
type Curve struct {
	degree  int
	weights []float64
}

// New creates a curve whose degree is len(weights)-1.
// It panics if no weights are given.
func New(weights ...float64) Curve {
	if len(weights) == 0 {
		panic("bezier: curve needs at least one weight")
	}
	w := make([]float64, len(weights))
	copy(w, weights)
	return Curve{degree: len(w) - 1, weights: w}
}

// Zero creates a curve of the given degree with all weights set to 0.
func Zero(degree int) Curve {
	if degree < 0 {
		panic(fmt.Sprintf("bezier: negative degree %d", degree))
	}
	return Curve{degree: degree, weights: make([]float64, degree+1)}
}

// Constant returns the degree 0 curve with value v.
func Constant(v float64) Curve {
	return Curve{degree: 0, weights: []float64{v}}
}

// Degree returns the degree of the curve.
func (c Curve) Degree() int {
	return c.degree
}

// Weights returns a copy of the Bernstein coefficients.
func (c Curve) Weights() []float64 {
	w := make([]float64, len(c.weights))
	copy(w, c.weights)
	return w
}

// Weight returns the i-th Bernstein coefficient.
func (c Curve) Weight(i int) float64 {
	return c.weights[i]
}

// Valid reports whether the curve has been initialized.
func (c Curve) Valid() bool {
	return len(c.weights) > 0 && len(c.weights) == c.degree+1
}

// Clone returns a deep copy of the curve.
func (c Curve) Clone() Curve {
	return Curve{degree: c.degree, weights: c.Weights()}
}

// Eval evaluates the curve at t using de Casteljau's algorithm.
// t is not restricted to [0, 1].
func (c Curve) Eval(t float64) float64 {
	c.mustBeValid()
	w := c.Weights()
	for k := 1; k <= c.degree; k++ {
		for i := c.degree; i >= k; i-- {
			w[i] = w[i-1]*(1-t) + w[i]*t
		}
	}
	return w[c.degree]
}

// Split subdivides the curve at t into two curves of the same degree.
// left covers [0, t] and right covers [t, 1] of the original parameter range,
// each re-parameterized to [0, 1].
func (c Curve) Split(t float64) (left, right Curve) {
	c.mustBeValid()
	n := c.degree
	w := c.Weights()
	left = Zero(n)
	right = Zero(n)
	left.weights[0] = w[0]
	right.weights[n] = w[n]

	for k := 1; k <= n; k++ {
		for i := n; i >= k; i-- {
			w[i] = w[i-1]*(1-t) + w[i]*t
		}
		left.weights[k] = w[k]
		right.weights[n-k] = w[n]
	}
	return left, right
}

// Subrange returns the part of the curve between t0 and t1, re-parameterized
// to [0, 1]. It is computed by two successive splits.
func (c Curve) Subrange(t0, t1 float64) Curve {
	if t1 == 0 {
		// Degenerate range at the origin; splitting at 0 would divide by zero below.
		return Constant(c.Eval(0)).Elevated(c.degree)
	}
	left, _ := c.Split(t1)
	_, mid := left.Split(t0 / t1)
	return mid
}

// ElevateDegree raises the degree of c to newDegree in place. It has no
// effect if c already has that degree and panics if newDegree is lower.
//
// Elevation is exact; the represented polynomial does not change.
func (c *Curve) ElevateDegree(newDegree int) {
	if newDegree == c.degree {
		return
	}
	e := c.Elevated(newDegree)
	c.degree, c.weights = e.degree, e.weights
}

// Elevated returns a copy of c raised to newDegree.
// It panics if newDegree is lower than the degree of c.
func (c Curve) Elevated(newDegree int) Curve {
	c.mustBeValid()
	if newDegree < c.degree {
		panic(fmt.Sprintf("bezier: cannot reduce degree %d to %d", c.degree, newDegree))
	}
	if newDegree == c.degree {
		return c.Clone()
	}

	// Farouki, Rajan, "Algorithms for polynomials in Bernstein form", 1988.
	n := c.degree
	r := newDegree - n
	out := Zero(newDegree)
	for i := 0; i <= n+r; i++ {
		var sum float64
		for j := max(0, i-r); j <= min(n, i); j++ {
			f := bernsteinRatio(n, j, r, i-j)
			sum += c.weights[j] * f
		}
		out.weights[i] = sum
	}
	return out
}

// Mul returns the product a*b. The degree of the result is the sum of the
// degrees of a and b.
func Mul(a, b Curve) Curve {
	a.mustBeValid()
	b.mustBeValid()

	// G. Elber, "Free form surface analysis using a hybrid of symbolic and
	// numeric computation", 1992, p. 11.
	n, m := a.degree, b.degree
	out := Zero(n + m)
	for k := 0; k <= n+m; k++ {
		var sum float64
		for i := max(0, k-n); i <= min(k, m); i++ {
			f := bernsteinRatio(m, i, n, k-i)
			sum += a.weights[k-i] * b.weights[i] * f
		}
		out.weights[k] = sum
	}
	return out
}

// AddSquares returns a*a + b*b. The two curves must have the same degree.
//
// The products are accumulated in a single pass, without building the
// intermediate squares.
func AddSquares(a, b Curve) Curve {
	a.mustBeValid()
	b.mustBeValid()
	if a.degree != b.degree {
		panic(fmt.Sprintf("bezier: AddSquares degree mismatch %d != %d", a.degree, b.degree))
	}
	n := a.degree
	out := Zero(2 * n)
	for k := 0; k <= 2*n; k++ {
		var aSq, bSq float64
		for i := max(0, k-n); i <= min(k, n); i++ {
			f := bernsteinRatio(n, i, n, k-i)
			aSq += a.weights[i] * a.weights[k-i] * f
			bSq += b.weights[i] * b.weights[k-i] * f
		}
		out.weights[k] = aSq + bSq
	}
	return out
}

// Scale returns the curve with every weight multiplied by f.
func (c Curve) Scale(f float64) Curve {
	out := c.Clone()
	for i := range out.weights {
		out.weights[i] *= f
	}
	return out
}

// Add returns a+b. The two curves must have the same degree.
func Add(a, b Curve) Curve {
	mustMatch("Add", a, b)
	out := a.Clone()
	for i := range out.weights {
		out.weights[i] += b.weights[i]
	}
	return out
}

// Sub returns a-b. The two curves must have the same degree.
func Sub(a, b Curve) Curve {
	out := a.Clone()
	out.Sub(b)
	return out
}

// Sub subtracts o from c in place. The two curves must have the same degree.
func (c *Curve) Sub(o Curve) {
	mustMatch("Sub", *c, o)
	for i := range c.weights {
		c.weights[i] -= o.weights[i]
	}
}

// SubScalar subtracts v from every weight of c, which subtracts v from the
// represented function.
func (c *Curve) SubScalar(v float64) {
	c.mustBeValid()
	for i := range c.weights {
		c.weights[i] -= v
	}
}

// ExtremumWeight returns the weight with the largest magnitude, keeping its
// sign. By the convex hull property its absolute value bounds |c(t)| for all
// t in [0, 1].
func (c Curve) ExtremumWeight() float64 {
	var f float64
	sign := 1.0
	for _, w := range c.weights {
		if math.Abs(w) > f {
			f = math.Abs(w)
			if w >= 0 {
				sign = 1
			} else {
				sign = -1
			}
		}
	}
	return sign * f
}

// String returns a readable representation such as "deg2[1 2 3]".
func (c Curve) String() string {
	parts := make([]string, len(c.weights))
	for i, w := range c.weights {
		parts[i] = fmt.Sprintf("%g", w)
	}
	return fmt.Sprintf("deg%d[%s]", c.degree, strings.Join(parts, " "))
}

func (c Curve) mustBeValid() {
	if !c.Valid() {
		panic("bezier: use of uninitialized curve")
	}
}

func mustMatch(op string, a, b Curve) {
	a.mustBeValid()
	b.mustBeValid()
	if a.degree != b.degree {
		panic(fmt.Sprintf("bezier: %s degree mismatch %d != %d", op, a.degree, b.degree))
	}
}
