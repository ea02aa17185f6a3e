package abacus_test

import (
	"testing"

	"github.com/heringerp/panacus/core"
	"github.com/heringerp/panacus/mask"
	"github.com/stretchr/testify/require"
)

// smallGraph:
//
//	nodes: 1(10bp) 2(5bp) 3(20bp) 4(1bp)
//	a#1: >1 >2 >3    a#2: >1 >3    b#1: >1 <2 >4    c#1: >2 >2
func smallGraph(t *testing.T) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	for i, l := range []int{10, 5, 20, 1} {
		_, err := g.AddNode(string(rune('1'+i)), l)
		require.NoError(t, err)
	}
	paths := []struct {
		name string
		walk []string
	}{
		{"a#1", []string{">1", ">2", ">3"}},
		{"a#2", []string{">1", ">3"}},
		{"b#1", []string{">1", "<2", ">4"}},
		{"c#1", []string{">2", ">2"}},
	}
	for _, p := range paths {
		_, err := g.AddPathByNames(p.name, p.walk)
		require.NoError(t, err)
	}

	return g
}

func sampleMask(t *testing.T, g *core.Graph, s mask.Settings) *mask.GraphMask {
	t.Helper()
	s.Mode = mask.GroupBySample
	m, err := mask.New(g.Paths(), s)
	require.NoError(t, err)

	return m
}

func segs(names ...string) []core.PathSegment {
	out := make([]core.PathSegment, len(names))
	for i, n := range names {
		out[i] = core.ParsePathSegment(n)
	}
	return out
}
