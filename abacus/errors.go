// SPDX-License-Identifier: MIT
// Package abacus: sentinel error set.

package abacus

import "errors"

var (
	// ErrNilInput indicates a nil graph, mask or table argument.
	ErrNilInput = errors.New("abacus: nil input")

	// ErrCountAll indicates that a single-count operation received core.CountAll.
	ErrCountAll = errors.New("abacus: count type must be node, bp or edge")

	// ErrMissingEdge indicates consecutive path steps whose edge is not
	// registered in the graph.
	ErrMissingEdge = errors.New("abacus: edge not in graph")
)
