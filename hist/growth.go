// SPDX-License-Identifier: MIT
//
// File: growth.go
// Role: expected growth curves from coverage histograms.
//
// growth[m-1] is the expected number of items satisfying the coverage and
// quorum thresholds in a uniformly drawn subset of m of the n groups,
// m = 1..n. All products of binomials are carried in log2 space and turned
// into probabilities with Pow2, which maps log2(0) to a zero contribution.

package hist

import (
	"context"
	"math"
	"time"

	"github.com/heringerp/panacus/threshold"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Regime names the closed form a (coverage, quorum) pair resolves to.
type Regime int

const (
	// RegimeUnion counts items present in at least one sampled group.
	RegimeUnion Regime = iota

	// RegimeCore counts items present in all sampled groups.
	RegimeCore

	// RegimeQuorum counts items present in at least ceil(m·quorum) sampled groups.
	RegimeQuorum
)

// String returns the metric label of the regime.
func (r Regime) String() string {
	switch r {
	case RegimeCore:
		return "core"
	case RegimeQuorum:
		return "quorum"
	default:
		return "union"
	}
}

// SelectRegime resolves quorum against n groups: an absolute quorum of at
// most 1 is the union, at least n is the core, anything between is the
// general quorum.
func SelectRegime(n int, quorum threshold.Threshold) Regime {
	q := max(1, quorum.ToAbsolute(n))
	switch {
	case q == 1:
		return RegimeUnion
	case q >= n:
		return RegimeCore
	default:
		return RegimeQuorum
	}
}

// CalcGrowth dispatches to the regime selected by quorum. A histogram over
// zero groups yields an empty curve.
func (h *Hist) CalcGrowth(coverage, quorum threshold.Threshold) []float64 {
	n := h.N()
	if n == 0 {
		return []float64{}
	}
	regime := SelectRegime(n, quorum)
	started := time.Now()
	defer func() {
		growthComputations.WithLabelValues(regime.String()).Inc()
		growthSeconds.WithLabelValues(regime.String()).Observe(time.Since(started).Seconds())
	}()

	switch regime {
	case RegimeUnion:
		return h.GrowthUnion(coverage)
	case RegimeCore:
		return h.GrowthCore(coverage)
	default:
		return h.GrowthQuorum(coverage, quorum)
	}
}

// CalcAllGrowths evaluates every pair independently and concurrently.
// Results keep the order of pairs. With insertZero each curve starts with
// a NaN placeholder for m = 0.
//
// Errors:
//   - ctx.Err() when ctx is cancelled before all pairs ran.
func (h *Hist) CalcAllGrowths(ctx context.Context, pairs threshold.Pairs, insertZero bool, threads int) ([][]float64, error) {
	return calcAll(ctx, pairs, insertZero, threads, h.CalcGrowth)
}

func calcAll(ctx context.Context, pairs threshold.Pairs, insertZero bool, threads int,
	growth func(coverage, quorum threshold.Threshold) []float64) ([][]float64, error) {
	out := make([][]float64, len(pairs))
	eg, ctx := errgroup.WithContext(ctx)
	if threads > 0 {
		eg.SetLimit(threads)
	}
	for i, p := range pairs {
		i, p := i, p
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			log.Infof("hist: calculating growth for coverage >= %s and quorum >= %s", p.Coverage, p.Quorum)
			g := growth(p.Coverage, p.Quorum)
			if insertZero {
				g = append([]float64{math.NaN()}, g...)
			}
			out[i] = g
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// GrowthUnion returns growth[m-1] = T - E[missed], T being the number of
// items with coverage ≥ max(1, coverage) and E[missed] the expected number
// of them absent from all m sampled groups:
//
//	E[missed] = Σ_i h[i]·C(n-i, m)/C(n, m)
//
// Complexity: O(n²).
func (h *Hist) GrowthUnion(coverage threshold.Threshold) []float64 {
	n := h.N()
	c := max(1, coverage.ToAbsolute(n))
	growth := make([]float64, n)
	tot := 0.0
	for i := c; i <= n; i++ {
		tot += float64(h.Coverage[i])
	}

	acc := newFallingLog(n)
	for m := 1; m <= n; m++ {
		acc.advance(m)
		y := 0.0
		for i := c; i < n-m+1; i++ {
			y += Pow2(log2Count(h.Coverage[i]) + acc.term(i, float64(n-m-i+1)))
		}
		growth[m-1] = tot - y
	}

	return growth
}

// GrowthCore returns the expected number of items with coverage ≥
// max(1, coverage) present in every one of m sampled groups:
//
//	growth[m-1] = Σ_{i ≥ max(m, c)} h[i]·C(i, m)/C(n, m)
//
// Complexity: O(n²).
func (h *Hist) GrowthCore(coverage threshold.Threshold) []float64 {
	n := h.N()
	c := max(1, coverage.ToAbsolute(n))
	growth := make([]float64, n)

	acc := newFallingLog(n)
	for m := 1; m <= n; m++ {
		acc.advance(m)
		y := 0.0
		for i := max(m, c); i <= n; i++ {
			y += Pow2(log2Count(h.Coverage[i]) + acc.term(i, float64(i-m+1)))
		}
		growth[m-1] = y
	}

	return growth
}

// GrowthQuorum returns the expected number of items present in at least
// m_q = ceil(m·quorum) of m sampled groups. Items with coverage ≥ m are
// handled as in GrowthCore; for the remaining levels i the hypergeometric
// tail Σ_j C(i, j)·C(n-i, m-j)/C(n, m) over j in [max(m_q, c), m) is built
// from a memoised table q[i][j] updated incrementally across m.
//
// Complexity: O(n³) time, O(n²) memory.
func (h *Hist) GrowthQuorum(coverage, quorum threshold.Threshold) []float64 {
	n := h.N()
	c := max(1, coverage.ToAbsolute(n))
	qr := quorum.ToRelative(n)
	growth := make([]float64, n)

	acc := newFallingLog(n)
	mFact := 0.0
	q := make([][]float64, n+1)
	for i := range q {
		q[i] = make([]float64, n+1)
	}

	for m := 1; m <= n; m++ {
		mFact += math.Log2(float64(m))
		mQuorum := int(math.Ceil(float64(m) * qr))

		// full quorum part
		acc.advance(m)
		yl := 0.0
		for i := max(m, c); i <= n; i++ {
			yl += Pow2(log2Count(h.Coverage[i]) + acc.term(i, float64(i-m+1)))
		}

		// [m_q, m) part
		yr := 0.0
		for i := mQuorum; i < n; i++ {
			sumQ := 0.0
			add := false
			for j := max(mQuorum, c); j < m; j++ {
				if n+j+1 <= i+m || j > i {
					continue
				}
				if q[i][j] == 0 {
					q[i][j] = Choose(i, j)
				}
				q[i][j] += math.Log2(float64(n - i - m + 1 + j))
				q[i][j] -= math.Log2(float64(m - j))
				sumQ += Pow2(q[i][j] + mFact - acc.nFall)
				add = true
			}
			if add {
				yr += Pow2(log2Count(h.Coverage[i]) + math.Log2(sumQ))
			}
		}
		growth[m-1] = yl + yr
	}

	return growth
}

// CalcGrowth returns the expected growth when m groups of partition B are
// drawn on top of all groups of partition A: an item counts at m when its
// coverage in A plus its coverage among the drawn B groups reaches
// max(ceil((m+n_A)·quorum), 1), and at least max(1, coverage) of the drawn
// B groups cover it (unless A alone meets the quorum).
//
// Complexity: O(n_B²·n_A·n_B).
func (h *Hist3D) CalcGrowth(coverage, quorum threshold.Threshold) []float64 {
	if len(h.Coverage) == 0 || len(h.Coverage[0]) < 2 {
		return []float64{}
	}
	n1 := len(h.Coverage) - 1
	n2 := len(h.Coverage[0]) - 1
	c := max(1, coverage.ToAbsolute(n2))
	qr := quorum.ToRelative(n2)
	growth := make([]float64, n2)

	started := time.Now()
	defer func() {
		growthComputations.WithLabelValues("joint").Inc()
		growthSeconds.WithLabelValues("joint").Observe(time.Since(started).Seconds())
	}()

	for m := 1; m <= n2; m++ {
		res := 0.0
		mQuorum := max(int(math.Ceil(float64(m+n1)*qr)), 1)
		n2ChooseM := Choose(n2, m)
		for i := 0; i <= n2; i++ {
			for j := 0; j <= n1; j++ {
				cell := h.Coverage[j][i]
				if cell == 0 {
					continue
				}
				if mQuorum <= j {
					res += float64(cell)
					continue
				}
				sub := 0.0
				for k := max(mQuorum-j, c); k <= min(i, m); k++ {
					if i >= k && n2-i >= m-k {
						sub += Pow2(Choose(i, k) + Choose(n2-i, m-k) - n2ChooseM)
					}
				}
				res += float64(cell) * sub
			}
		}
		growth[m-1] = res
	}

	return growth
}

// CalcAllGrowths is the joint-histogram counterpart of Hist.CalcAllGrowths.
func (h *Hist3D) CalcAllGrowths(ctx context.Context, pairs threshold.Pairs, insertZero bool, threads int) ([][]float64, error) {
	return calcAll(ctx, pairs, insertZero, threads, h.CalcGrowth)
}
