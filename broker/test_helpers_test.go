package broker_test

import (
	"testing"

	"github.com/heringerp/panacus/broker"
	"github.com/heringerp/panacus/core"
	"github.com/heringerp/panacus/mask"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

// smallGraph:
//
//	nodes: 1(10bp) 2(5bp) 3(20bp) 4(1bp)
//	a#1: >1 >2 >3    a#2: >1 >3    b#1: >1 <2 >4    c#1: >2 >2
//
// Grouped by sample: a=0, b=1, c=2. Node coverage: 1→2, 2→3, 3→1, 4→1.
func smallGraph(tb testing.TB) *core.Graph {
	tb.Helper()
	g := core.NewGraph()
	for i, l := range []int{10, 5, 20, 1} {
		_, err := g.AddNode(string(rune('1'+i)), l)
		require.NoError(tb, err)
	}
	for _, p := range []struct {
		name string
		walk []string
	}{
		{"a#1", []string{">1", ">2", ">3"}},
		{"a#2", []string{">1", ">3"}},
		{"b#1", []string{">1", "<2", ">4"}},
		{"c#1", []string{">2", ">2"}},
	} {
		_, err := g.AddPathByNames(p.name, p.walk)
		require.NoError(tb, err)
	}

	return g
}

func newBroker(tb testing.TB, opts ...broker.Option) *broker.Broker {
	tb.Helper()
	g := smallGraph(tb)
	m, err := mask.New(g.Paths(), mask.Settings{Mode: mask.GroupBySample})
	require.NoError(tb, err)
	b, err := broker.New(g, m, opts...)
	require.NoError(tb, err)

	return b
}
