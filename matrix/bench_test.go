package matrix_test

import (
	"fmt"
	"testing"

	"github.com/heringerp/panacus/abacus"
	"github.com/heringerp/panacus/core"
	"github.com/heringerp/panacus/mask"
	"github.com/heringerp/panacus/matrix"
	"github.com/stretchr/testify/require"
)

// benchTables builds a chain of nodes walked by paths that each skip every
// k-th node, k varying by path.
func benchTables(b *testing.B, nodes, paths int) *abacus.Tables {
	b.Helper()
	g := core.NewGraph(core.WithCapacity(nodes))
	for i := 0; i < nodes; i++ {
		_, err := g.AddNode(fmt.Sprint(i), 1+i%7)
		require.NoError(b, err)
	}
	for p := 0; p < paths; p++ {
		skip := 2 + p%5
		steps := make([]core.Step, 0, nodes)
		for i := 0; i < nodes; i++ {
			if i%skip != 0 {
				steps = append(steps, core.Step{Node: core.ItemID(i + 1)})
			}
		}
		_, err := g.AddPath(core.ParsePathSegment(fmt.Sprintf("s%d#1#chr1", p)), steps)
		require.NoError(b, err)
	}
	m, err := mask.New(g.Paths(), mask.Settings{Mode: mask.GroupBySample})
	require.NoError(b, err)
	tab, err := abacus.BuildTables(g, m, core.CountNode)
	require.NoError(b, err)

	return tab
}

func BenchmarkNew(b *testing.B) {
	tab := benchTables(b, 20000, 32)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := matrix.New(tab, matrix.WithValues(true)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkToAbacusAllItems(b *testing.B) {
	m, err := matrix.New(benchTables(b, 20000, 32))
	require.NoError(b, err)
	groups := []int{0, 3, 5, 7, 11, 13}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := m.ToAbacusAllItems(groups); err != nil {
			b.Fatal(err)
		}
	}
}
