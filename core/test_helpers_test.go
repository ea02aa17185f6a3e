// SPDX-License-Identifier: MIT

package core_test

import (
	"strconv"
	"testing"

	"github.com/heringerp/panacus/core"
	"github.com/stretchr/testify/require"
)

// chainGraph builds n nodes "n1".."nn" with lengths 1..n.
func chainGraph(tb testing.TB, n int) *core.Graph {
	tb.Helper()
	g := core.NewGraph(core.WithCapacity(n))
	for i := 1; i <= n; i++ {
		_, err := g.AddNode(nodeName(i), i)
		require.NoError(tb, err)
	}

	return g
}

func nodeName(i int) string { return "n" + strconv.Itoa(i) }
