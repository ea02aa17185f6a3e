// SPDX-License-Identifier: MIT

// Package broker is the run-level facade of the coverage engine.
//
// A Broker owns one GraphMask and, built once at construction, the total
// abaci of the requested count types plus an optional group-aware
// CoverageMatrix. Everything else is answered from those:
//
//	b, err := broker.New(g, m,
//		broker.WithCounts(core.CountAll),
//		broker.WithCoverageMatrix(core.CountNode, false))
//	h, err := b.Hist(core.CountNode)
//	curves, err := h.CalcAllGrowths(ctx, pairs, true, 0)
//
// Stages:
//  1. Mask: paths, include/exclude coordinates and groups (mask package).
//  2. Tables and abaci, one per count type, built concurrently.
//  3. Coverage matrix for one count type, sharing its tables.
//  4. Queries: histograms (whole run, item windows, group subsets),
//     ordered and section growth, coverage tables.
//
// Errors:
//
//	ErrNilGraph          - New without graph or mask.
//	ErrCountNotBuilt     - query for a count type not configured.
//	ErrNoCoverageMatrix  - group-aware query without WithCoverageMatrix.
//	ErrMalformedSections - section row without two columns.
//	ErrUnknownGroup      - section names an unknown group.
//	ErrNoSections        - empty section list.
package broker
