package bezier

import (
	"fmt"
	"math/bits"
)

// Choose returns the binomial coefficient C(n, k) exactly.
//
// Each step multiplies into a 128-bit intermediate before dividing, so every
// coefficient that fits in uint64 is returned; C(67, 33) is the largest
// central one. It panics if the result does not fit.
func Choose(n, k int) uint64 {
	if n < 0 || k < 0 || k > n {
		panic(fmt.Sprintf("bezier: invalid binomial C(%d, %d)", n, k))
	}
	if k > n-k {
		k = n - k
	}
	result := uint64(1)
	for i := 1; i <= k; i++ {
		hi, lo := bits.Mul64(result, uint64(n+1-i))
		if hi >= uint64(i) {
			panic(fmt.Sprintf("bezier: binomial C(%d, %d) overflows uint64", n, k))
		}
		result, _ = bits.Div64(hi, lo, uint64(i))
	}
	return result
}

// binomial returns C(n, k) as a float64. It is used for the Bernstein
// conversion factors, whose degrees can exceed the range of Choose when
// curves are squared and elevated.
func binomial(n, k int) float64 {
	if n < 0 || k < 0 || k > n {
		panic(fmt.Sprintf("bezier: invalid binomial C(%d, %d)", n, k))
	}
	if k > n-k {
		k = n - k
	}
	result := 1.0
	for i := 1; i <= k; i++ {
		result = result * float64(n+1-i) / float64(i)
	}
	return result
}

// bernsteinRatio returns C(a, i)*C(b, j) / C(a+b, i+j), the factor that
// converts products of Bernstein bases of degrees a and b to degree a+b.
// The division is done last.
func bernsteinRatio(a, i, b, j int) float64 {
	return binomial(a, i) * binomial(b, j) / binomial(a+b, i+j)
}
