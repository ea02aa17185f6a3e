// SPDX-License-Identifier: MIT
// Package hist: sentinel error set.

package hist

import "errors"

var (
	// ErrInvariantViolation indicates operands that cannot be combined, e.g.
	// two abaci of different count type, item universe or uncovered bp.
	ErrInvariantViolation = errors.New("hist: invariant violation")

	// ErrNodeLensRequired indicates a bp histogram requested without node lengths.
	ErrNodeLensRequired = errors.New("hist: node lengths required for bp counts")

	// ErrCountType indicates core.CountAll where a single count type is required.
	ErrCountType = errors.New("hist: count type must be node, bp or edge")

	// ErrNilAbacus indicates a nil abacus argument.
	ErrNilAbacus = errors.New("hist: nil abacus")

	// ErrMalformedTable indicates unparsable histogram table input.
	ErrMalformedTable = errors.New("hist: malformed table")
)
