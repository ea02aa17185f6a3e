// SPDX-License-Identifier: MIT

package mask

import "fmt"

// PathGroup pairs a graph path index with its group id.
type PathGroup struct {
	Path  int
	Group int
}

// PathOrder is a traversal order of paths whose group ids never decrease.
//
// Coverage construction deduplicates groups per item by comparing against
// the last group seen for that item; this is only correct when each group
// is visited in one contiguous run. PathOrder values can only be obtained
// through NewPathOrder, which checks that property.
type PathOrder struct {
	entries []PathGroup
	groups  int
}

// NewPathOrder validates entries and wraps them.
//
// Errors:
//   - ErrUnsortedOrder if a group id is smaller than its predecessor, or
//     negative, or not below groups.
//   - ErrDuplicatePath if a path index repeats.
func NewPathOrder(entries []PathGroup, groups int) (PathOrder, error) {
	seen := make(map[int]struct{}, len(entries))
	prev := 0
	for i, e := range entries {
		if e.Group < prev || e.Group < 0 || e.Group >= groups {
			return PathOrder{}, fmt.Errorf("entry %d (path %d, group %d): %w", i, e.Path, e.Group, ErrUnsortedOrder)
		}
		if _, dup := seen[e.Path]; dup {
			return PathOrder{}, fmt.Errorf("entry %d (path %d): %w", i, e.Path, ErrDuplicatePath)
		}
		seen[e.Path] = struct{}{}
		prev = e.Group
	}
	own := make([]PathGroup, len(entries))
	copy(own, entries)

	return PathOrder{entries: own, groups: groups}, nil
}

// Entries returns the order. The slice is shared; do not modify it.
func (o PathOrder) Entries() []PathGroup { return o.entries }

// Groups returns the number of groups the order was validated against.
func (o PathOrder) Groups() int { return o.groups }

// Len returns the number of paths in the order.
func (o PathOrder) Len() int { return len(o.entries) }
