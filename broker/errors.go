// SPDX-License-Identifier: MIT

package broker

import "errors"

// Sentinel errors returned by the broker. Callers match them with errors.Is.
var (
	// ErrNilGraph indicates a nil graph or mask.
	ErrNilGraph = errors.New("broker: graph and mask are required")

	// ErrCountNotBuilt indicates a query for a count type the broker was not
	// configured to build.
	ErrCountNotBuilt = errors.New("broker: count type not built")

	// ErrNoCoverageMatrix indicates a group-aware query on a broker built
	// without WithCoverageMatrix.
	ErrNoCoverageMatrix = errors.New("broker: no coverage matrix")

	// ErrMalformedSections indicates a section file row without exactly two
	// columns.
	ErrMalformedSections = errors.New("broker: malformed section file")

	// ErrUnknownGroup indicates a section entry naming a group that does not
	// exist in the run.
	ErrUnknownGroup = errors.New("broker: unknown group")

	// ErrNoSections indicates an empty section list.
	ErrNoSections = errors.New("broker: no sections")
)
