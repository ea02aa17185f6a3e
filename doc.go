// SPDX-License-Identifier: MIT

// Package panacus counts and grows pangenome coverage over variation graphs.
//
// Given a graph whose paths are grouped (by sample, haplotype, path or an
// explicit group file), panacus counts for every node, base pair or edge how
// many groups cover it and derives from those counts the coverage histogram
// and the expected pangenome growth curve: the number of items seen when m
// groups are drawn at random, under a coverage threshold and a quorum.
//
// Packages:
//
//	core/      - graph topology: item ids, count types, path segments, edges
//	threshold/ - absolute/relative thresholds and coverage/quorum pairs
//	mask/      - subset, exclude and grouping of paths (BED, group files)
//	abacus/    - item tables from path traversals, total coverage counts
//	matrix/    - group-aware CSR coverage matrix, ordered growth
//	hist/      - histograms, growth regimes, TSV tables
//	broker/    - run-level facade tying the stages together
//	config/    - YAML run configuration
//	cli/       - cobra command tree, cmd/panacus its entry point
//
// Typical use:
//
//	m, _ := mask.New(g.Paths(), mask.Settings{Mode: mask.GroupBySample})
//	b, _ := broker.New(g, m, broker.WithCounts(core.CountAll))
//	h, _ := b.Hist(core.CountBp)
//	curves, _ := h.CalcAllGrowths(ctx, pairs, true, 0)
package panacus
