// SPDX-License-Identifier: MIT

package core_test

import (
	"fmt"

	"github.com/heringerp/panacus/core"
)

// ExampleGraph registers two haplotypes that traverse the same adjacency on
// opposite strands; both map to one canonical edge.
func ExampleGraph() {
	g := core.NewGraph()
	_, _ = g.AddNode("s1", 10)
	_, _ = g.AddNode("s2", 5)
	_, _ = g.AddPathByNames("HG002#1#chr20", []string{">s1", ">s2"})
	_, _ = g.AddPathByNames("HG002#2#chr20", []string{"<s2", "<s1"})

	fmt.Println(g.NodeCount(), g.EdgeCount(), g.PathCount())
	fmt.Println(g.Paths()[1].HaplotypeID())
	// Output:
	// 2 1 2
	// HG002#2
}

func ExampleParsePathSegment() {
	p := core.ParsePathSegment("HG002#1#chr20:1000-2000")
	fmt.Println(p.Sample, p.Haplotype, p.SeqID)
	fmt.Println(p.ID(), p.Start, p.End)
	// Output:
	// HG002 1 chr20
	// HG002#1#chr20 1000 2000
}
