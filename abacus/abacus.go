// SPDX-License-Identifier: MIT

package abacus

import (
	"github.com/heringerp/panacus/core"
	log "github.com/sirupsen/logrus"
)

// AbacusByTotal holds, per item, the number of distinct groups covering it,
// for one count type. Countable is indexed by core.ItemID; entry 0 is the
// reserved null item.
type AbacusByTotal struct {
	Count        core.CountType
	Countable    []uint32
	UncoveredBps map[core.ItemID]int
	Groups       []string
}

// FromTables counts distinct groups per item.
//
// Implementation:
//   - Paths are visited in the group-sorted order of t.Order. One slot per
//     item remembers the last group (plus one) that counted it, so a group
//     contributes at most once per item in O(1).
//   - Excluded items are skipped.
//
// Complexity: O(NItems + occurrences).
func FromTables(t *Tables) (*AbacusByTotal, error) {
	if t == nil {
		return nil, ErrNilInput
	}
	countable := make([]uint32, t.NItems+1)
	last := make([]uint32, t.NItems+1)
	for k, e := range t.Order.Entries() {
		g := uint32(e.Group) + 1
		for _, id := range t.Items.Row(k) {
			if last[id] == g || t.Exclude.Contains(id) {
				continue
			}
			countable[id]++
			last[id] = g
		}
	}
	log.Infof("abacus: total %s abacus over %d items and %d groups", t.Count, t.NItems, len(t.Groups))

	return &AbacusByTotal{
		Count:        t.Count,
		Countable:    countable,
		UncoveredBps: t.UncoveredBps,
		Groups:       append([]string(nil), t.Groups...),
	}, nil
}

// GroupCount returns the number of groups the counts range over.
func (a *AbacusByTotal) GroupCount() int { return len(a.Groups) }

// ItemCount returns the number of items (without the null item).
func (a *AbacusByTotal) ItemCount() int { return max(len(a.Countable)-1, 0) }

// Uncovered returns the uncovered bp of id (0 when fully covered).
func (a *AbacusByTotal) Uncovered(id core.ItemID) int { return a.UncoveredBps[id] }

// Covered returns the ids with non-zero coverage, ascending.
func (a *AbacusByTotal) Covered() []core.ItemID {
	var out []core.ItemID
	for id, c := range a.Countable {
		if c > 0 {
			out = append(out, core.ItemID(id))
		}
	}

	return out
}
