// SPDX-License-Identifier: MIT

// Package hist derives coverage histograms from abaci and turns them into
// expected growth curves.
//
// Hist (one partition) and Hist3D (two partitions, joint) are tallied from
// abacus.AbacusByTotal values; bp histograms weight every node by its length
// minus uncovered bp. Growth curves are computed analytically in log2 space
// by three closed forms selected from the resolved quorum (SelectRegime):
// union, core and general quorum, plus the joint-histogram form of Hist3D.
// CalcAllGrowths evaluates independent threshold pairs concurrently with an
// errgroup and keeps their input order.
//
// Histograms and growth curves are read from and written to tab-separated
// tables (ParseHists, WriteHists, WriteTable).
package hist
