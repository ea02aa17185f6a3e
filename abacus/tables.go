// SPDX-License-Identifier: MIT

package abacus

import (
	"github.com/RoaringBitmap/roaring"
	"github.com/heringerp/panacus/core"
	"github.com/heringerp/panacus/mask"
)

// ItemTable is a CSR encoding of item occurrences per path. Rows follow the
// PathOrder they were built for: the items of the k-th path of the order are
// Items[Prefix[k]:Prefix[k+1]], in traversal order and with repetitions.
type ItemTable struct {
	Prefix []int
	Items  []core.ItemID
}

// Row returns the items of the k-th path of the order. The slice is shared.
func (t ItemTable) Row(k int) []core.ItemID {
	if k < 0 || k+1 >= len(t.Prefix) {
		return nil
	}

	return t.Items[t.Prefix[k]:t.Prefix[k+1]]
}

// Rows returns the number of paths in the table.
func (t ItemTable) Rows() int { return max(len(t.Prefix)-1, 0) }

// Len returns the number of stored occurrences.
func (t ItemTable) Len() int { return len(t.Items) }

// ActiveTable marks items that are excluded from counting entirely.
// The zero value and the nil pointer are valid empty tables.
type ActiveTable struct {
	bits *roaring.Bitmap
}

// NewActiveTable returns an empty table.
func NewActiveTable() *ActiveTable {
	return &ActiveTable{bits: roaring.New()}
}

// Add marks id as excluded.
func (a *ActiveTable) Add(id core.ItemID) {
	if a.bits == nil {
		a.bits = roaring.New()
	}
	a.bits.Add(uint32(id))
}

// Contains reports whether id is excluded.
func (a *ActiveTable) Contains(id core.ItemID) bool {
	if a == nil || a.bits == nil {
		return false
	}

	return a.bits.Contains(uint32(id))
}

// Len returns the number of excluded items.
func (a *ActiveTable) Len() int {
	if a == nil || a.bits == nil {
		return 0
	}

	return int(a.bits.GetCardinality())
}

// IDs returns the excluded ids in ascending order.
func (a *ActiveTable) IDs() []core.ItemID {
	if a == nil || a.bits == nil {
		return nil
	}
	out := make([]core.ItemID, 0, a.bits.GetCardinality())
	it := a.bits.Iterator()
	for it.HasNext() {
		out = append(out, core.ItemID(it.Next()))
	}

	return out
}

// Tables is everything coverage construction consumes for one count type:
// the item table, the exclusion table, partial-coverage bp accounting, and
// the group-sorted path order with its labels.
type Tables struct {
	Count        core.CountType
	NItems       int
	Items        ItemTable
	Exclude      *ActiveTable
	UncoveredBps map[core.ItemID]int
	Order        mask.PathOrder
	Groups       []string
}
