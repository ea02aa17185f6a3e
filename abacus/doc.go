// SPDX-License-Identifier: MIT

// Package abacus turns per-path graph traversals into coverage counts.
//
// BuildTables reads the paths selected by a mask.GraphMask, in the mask's
// group-sorted order, and produces Tables: a CSR ItemTable of item
// occurrences, an ActiveTable (roaring bitmap) of excluded items, and the
// uncovered base pairs of partially covered nodes. FromTables reduces those
// tables to an AbacusByTotal: the number of distinct groups covering every
// item, which is the source of group-independent histograms.
//
// Built values are immutable and safe to share between goroutines.
package abacus
