// SPDX-License-Identifier: MIT

// Package matrix holds the CoverageMatrix: a compressed sparse row table
// mapping every graph item (node or edge) to the sorted list of groups that
// cover it, optionally with the number of occurrences per group.
//
// The matrix is built once per run from abacus.Tables in two sequential
// passes over the mask's group-sorted path order, and is read-only
// afterwards. It answers the group-aware queries of a run:
//
//   - ToAbacus / ToAbacusAllItems recount coverage over arbitrary item and
//     group subsets without rebuilding anything,
//   - ItemsOfGroups lists the items a group subset touches,
//   - NodeCoverages exposes per-node group counts,
//   - OrderedGrowth computes growth along the fixed group order,
//   - WriteTSV renders the per-group or total coverage table.
package matrix
