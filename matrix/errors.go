// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// Every message is prefixed with "matrix: "; callers match with errors.Is,
// context is added at the boundary with fmt.Errorf("ctx: %w", ErrX).

package matrix

import "errors"

var (
	// ErrNilTables indicates that New received nil tables.
	ErrNilTables = errors.New("matrix: tables are nil")

	// ErrOutOfRange indicates an item or group id outside the matrix.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrCountType indicates a query that is not defined for the matrix's
	// count type (e.g. node coverages of an edge matrix).
	ErrCountType = errors.New("matrix: operation not defined for count type")

	// ErrNodeLensRequired indicates a bp computation without node lengths.
	ErrNodeLensRequired = errors.New("matrix: node lengths required for bp counts")

	// ErrCorrupt indicates a violated CSR invariant found by Validate.
	ErrCorrupt = errors.New("matrix: corrupt coverage matrix")
)
