// SPDX-License-Identifier: MIT

package hist

import "math"

// Choose returns log2 of the binomial coefficient C(n, k).
// k > n yields 0 (the caller's guards treat it as no probability mass).
// Complexity: O(min(k, n-k)).
func Choose(n, k int) float64 {
	if k > n || k < 0 {
		return 0
	}
	k = min(k, n-k)
	res := 0.0
	fn := float64(n)
	for i := 0; i < k; i++ {
		res += math.Log2(fn - float64(i))
		res -= math.Log2(float64(i) + 1)
	}

	return res
}

// Pow2 returns 2^x, mapping log2(0) = -Inf to exactly 0.
// Every log-space term goes through Pow2 so that empty histogram cells
// contribute nothing.
func Pow2(x float64) float64 {
	if math.IsInf(x, -1) {
		return 0
	}

	return math.Exp2(x)
}

// log2Count is log2 of a histogram cell; 0 maps to -Inf.
func log2Count(v uint64) float64 {
	return math.Log2(float64(v))
}

// fallingLog accumulates, over m = 1, 2, ..., the log2 of the falling
// factorial n·(n-1)···(n-m+1) together with one running log2 product per
// coverage level. The growth regimes differ only in the factor they feed
// into each level.
type fallingLog struct {
	n     int
	nFall float64
	perc  []float64
}

func newFallingLog(n int) *fallingLog {
	return &fallingLog{n: n, perc: make([]float64, n+1)}
}

// advance moves the accumulator to sample size m.
func (f *fallingLog) advance(m int) {
	f.nFall += math.Log2(float64(f.n - m + 1))
}

// term multiplies level i by factor and returns the level's log2
// probability at the current m.
func (f *fallingLog) term(i int, factor float64) float64 {
	f.perc[i] += math.Log2(factor)

	return f.perc[i] - f.nFall
}
