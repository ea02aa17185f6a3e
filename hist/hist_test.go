package hist_test

import (
	"context"
	"testing"

	"github.com/heringerp/panacus/abacus"
	"github.com/heringerp/panacus/core"
	"github.com/heringerp/panacus/hist"
	"github.com/heringerp/panacus/threshold"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nodeLens = []uint32{0, 10, 5, 20, 1}

func TestFromAbacus(t *testing.T) {
	t.Parallel()
	a := &abacus.AbacusByTotal{Count: core.CountNode, Countable: []uint32{0, 2, 3, 1, 1}, Groups: []string{"a", "b", "c"}}
	h, err := hist.FromAbacus(a, nil)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 2, 1, 1}, h.Coverage)
	assert.Equal(t, 3, h.N())

	bp := &abacus.AbacusByTotal{
		Count: core.CountBp, Countable: []uint32{0, 2, 3, 1, 1},
		UncoveredBps: map[core.ItemID]int{2: 2}, Groups: []string{"a", "b", "c"},
	}
	_, err = hist.FromAbacus(bp, nil)
	require.ErrorIs(t, err, hist.ErrNodeLensRequired)
	h, err = hist.FromAbacus(bp, nodeLens)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 21, 10, 3}, h.Coverage)

	_, err = hist.FromAbacus(nil, nil)
	require.ErrorIs(t, err, hist.ErrNilAbacus)
	_, err = hist.FromAbacus(&abacus.AbacusByTotal{Count: core.CountAll}, nil)
	require.ErrorIs(t, err, hist.ErrCountType)
}

func TestFromAbacus_SkipsOutOfRangeCoverage(t *testing.T) {
	t.Parallel()
	a := &abacus.AbacusByTotal{Count: core.CountNode, Countable: []uint32{0, 5, 1}, Groups: []string{"a", "b"}}
	h, err := hist.FromAbacus(a, nil)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 1, 0}, h.Coverage)
}

func TestFromAbacusForWindow(t *testing.T) {
	t.Parallel()
	a := &abacus.AbacusByTotal{
		Count: core.CountBp, Countable: []uint32{0, 2, 3, 1, 1},
		UncoveredBps: map[core.ItemID]int{2: 2}, Groups: []string{"a", "b", "c"},
	}
	h, err := hist.FromAbacusForWindow(a, nodeLens, []core.ItemID{2, 3}, nil)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 20, 0, 3}, h.Coverage)

	h, err = hist.FromAbacusForWindow(a, nodeLens, []core.ItemID{1, 9}, map[core.ItemID]int{1: 4})
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 0, 6, 0}, h.Coverage)
}

func TestFromAbaci(t *testing.T) {
	t.Parallel()
	a := &abacus.AbacusByTotal{Count: core.CountNode, Countable: []uint32{0, 1, 0, 2, 1}, Groups: []string{"x", "y"}}
	b := &abacus.AbacusByTotal{Count: core.CountNode, Countable: []uint32{0, 0, 1, 1, 2}, Groups: []string{"p", "q"}}

	h, err := hist.FromAbaci(a, b, nil)
	require.NoError(t, err)
	assert.Equal(t, [][]uint64{{0, 1, 0}, {1, 0, 1}, {0, 1, 0}}, h.Coverage)

	// A is fully known; item 2 is only in B.
	growth := h.CalcGrowth(threshold.Abs(0), threshold.Rel(0))
	assert.InDeltaSlice(t, []float64{3.5, 4}, growth, eps)

	all, err := h.CalcAllGrowths(context.Background(), threshold.Pairs{{Coverage: threshold.Abs(0), Quorum: threshold.Rel(0)}}, false, 0)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{growth}, all)
}

func TestHist3D_CalcGrowthQuorum(t *testing.T) {
	t.Parallel()
	// Rows: coverage in A (2 groups). Columns: coverage in B (2 groups).
	h := &hist.Hist3D{Count: core.CountNode, Coverage: [][]uint64{
		{0, 2, 1},
		{1, 0, 3},
		{4, 1, 0},
	}}

	tests := []struct {
		name     string
		coverage threshold.Threshold
		quorum   threshold.Threshold
		want     []float64
	}{
		// m=1 needs 2 groups: row 2 counts outright, row 1 needs its one B group.
		{"half quorum", threshold.Abs(1), threshold.Rel(0.5), []float64{8, 9}},
		// B coverage 2 cannot be reached with a single drawn group.
		{"half quorum, coverage 2", threshold.Abs(2), threshold.Rel(0.5), []float64{5, 9}},
		// Only cell [2][1] can reach 3 groups at m=1, with probability 1/2.
		{"full quorum", threshold.Abs(1), threshold.Rel(1), []float64{0.5, 0}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.InDeltaSlice(t, tc.want, h.CalcGrowth(tc.coverage, tc.quorum), eps)
		})
	}

	pairs := threshold.Pairs{
		{Coverage: threshold.Abs(1), Quorum: threshold.Rel(0.5)},
		{Coverage: threshold.Abs(2), Quorum: threshold.Rel(0.5)},
	}
	all, err := h.CalcAllGrowths(context.Background(), pairs, false, 1)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.InDeltaSlice(t, []float64{8, 9}, all[0], eps)
	assert.InDeltaSlice(t, []float64{5, 9}, all[1], eps)
}

func TestFromAbaci_Bp(t *testing.T) {
	t.Parallel()
	unc := map[core.ItemID]int{3: 2}
	a := &abacus.AbacusByTotal{Count: core.CountBp, Countable: []uint32{0, 1, 0, 2, 1}, UncoveredBps: unc, Groups: []string{"x", "y"}}
	b := &abacus.AbacusByTotal{Count: core.CountBp, Countable: []uint32{0, 0, 1, 1, 2}, UncoveredBps: map[core.ItemID]int{3: 2}, Groups: []string{"p", "q"}}

	h, err := hist.FromAbaci(a, b, nodeLens)
	require.NoError(t, err)
	assert.Equal(t, [][]uint64{{2, 5, 0}, {10, 0, 1}, {0, 18, 0}}, h.Coverage)

	b.UncoveredBps = map[core.ItemID]int{3: 1}
	_, err = hist.FromAbaci(a, b, nodeLens)
	require.ErrorIs(t, err, hist.ErrInvariantViolation)
}

func TestFromAbaci_Mismatch(t *testing.T) {
	t.Parallel()
	a := &abacus.AbacusByTotal{Count: core.CountNode, Countable: []uint32{0, 1}}
	_, err := hist.FromAbaci(a, &abacus.AbacusByTotal{Count: core.CountEdge, Countable: []uint32{0, 1}}, nil)
	require.ErrorIs(t, err, hist.ErrInvariantViolation)
	_, err = hist.FromAbaci(a, &abacus.AbacusByTotal{Count: core.CountNode, Countable: []uint32{0, 1, 1}}, nil)
	require.ErrorIs(t, err, hist.ErrInvariantViolation)
	_, err = hist.FromAbaci(a, nil, nil)
	require.ErrorIs(t, err, hist.ErrNilAbacus)
}
