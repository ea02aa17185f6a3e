// SPDX-License-Identifier: MIT
// Package mask: sentinel error set.
//
// Every failure to turn grouping / subset / exclude / order input into a
// GraphMask is a configuration error: it wraps ErrConfig AND one precise
// sentinel below, so callers can match either with errors.Is. Configuration
// errors are fatal for the run and are never retried.

package mask

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig is the umbrella for all configuration errors.
	ErrConfig = errors.New("mask: configuration error")

	// ErrUnknownPath indicates a subset, exclude or group entry that matches
	// no path of the graph.
	ErrUnknownPath = errors.New("mask: unknown path")

	// ErrMissingGroup indicates a graph path that the group file does not assign.
	ErrMissingGroup = errors.New("mask: path has no group")

	// ErrMalformedBED indicates a BED row with an unsupported column layout
	// or non-numeric coordinates.
	ErrMalformedBED = errors.New("mask: malformed BED input")

	// ErrMalformedGroups indicates a group file row without a group column.
	ErrMalformedGroups = errors.New("mask: malformed group input")

	// ErrDuplicatePath indicates a path listed twice in a group file or a
	// path order.
	ErrDuplicatePath = errors.New("mask: duplicate path entry")

	// ErrCoordsNotPermitted indicates coordinates on a grouping entry.
	ErrCoordsNotPermitted = errors.New("mask: coordinates are not permitted in grouping paths")

	// ErrBadGrouping indicates an inconsistent grouping setting
	// (custom grouping without a file, or a file with a built-in mode).
	ErrBadGrouping = errors.New("mask: inconsistent grouping")

	// ErrIncompleteOrder indicates a group order that misses groups of the graph.
	ErrIncompleteOrder = errors.New("mask: group order is incomplete")

	// ErrUnknownGroup indicates a group order entry that names no group.
	ErrUnknownGroup = errors.New("mask: unknown group")
)

// ErrUnsortedOrder is returned by NewPathOrder when group ids decrease along
// the order. It is a programmer error rather than a configuration error:
// coverage construction relies on each group being visited in one run.
var ErrUnsortedOrder = errors.New("mask: path order is not sorted by group")

// configErrorf wraps ErrConfig and the precise sentinel with context.
func configErrorf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: %w: %s", ErrConfig, sentinel, fmt.Sprintf(format, args...))
}
