// SPDX-License-Identifier: MIT
//
// File: coverage.go
// Role: CoverageMatrix, a CSR table item × group of non-zero coverage.
//
// Layout:
//   - r has length NItems+2; the groups covering item i are c[r[i]:r[i+1]].
//   - c holds group ids, strictly increasing within each row.
//   - v, when stored, holds the occurrence count aligned with c (always ≥ 1).
//
// Build (two sequential passes over the group-sorted path order):
//  1. Row sizing: one last-group slot per item; a row grows only when the
//     current group differs from the last one counted for that item. Because
//     a mask.PathOrder never revisits a group, this equals the number of
//     distinct groups. Prefix sums turn the row sizes into r.
//  2. Fill: a separate cursor per item points at the next free slot of its
//     row. If the slot before the cursor already holds the current group the
//     occurrence is counted there; otherwise the group is written at the
//     cursor and the cursor advances.
// Neither pass may be parallelised across paths.

package matrix

import (
	"fmt"
	"time"

	"github.com/RoaringBitmap/roaring"
	"github.com/heringerp/panacus/abacus"
	"github.com/heringerp/panacus/core"
	log "github.com/sirupsen/logrus"
)

// CoverageMatrix maps every item to the sorted list of groups covering it.
// It is immutable after New and safe for concurrent reads.
type CoverageMatrix struct {
	count        core.CountType
	r            []int
	c            []uint32
	v            []uint32 // nil unless built WithValues(true)
	uncoveredBps map[core.ItemID]int
	groups       []string
}

// New builds the matrix from tables produced by abacus.BuildTables.
// Excluded items get empty rows.
//
// Errors:
//   - ErrNilTables if t is nil.
//
// Complexity: O(NItems + occurrences) time, O(NItems + nnz) memory.
func New(t *abacus.Tables, opts ...Option) (*CoverageMatrix, error) {
	if t == nil {
		return nil, ErrNilTables
	}
	o := gatherOptions(opts...)
	started := time.Now()

	log.Infof("matrix: computing row storage for %s coverage over %d items", t.Count, t.NItems)
	r := rowOffsets(t)
	nnz := r[len(r)-1]
	log.Infof("matrix: group-aware table has %d non-zero elements", nnz)

	c, v := fillRows(t, r, nnz, o.reportValues)

	m := &CoverageMatrix{
		count:        t.Count,
		r:            r,
		c:            c,
		v:            v,
		uncoveredBps: t.UncoveredBps,
		groups:       append([]string(nil), t.Groups...),
	}
	buildSeconds.WithLabelValues(t.Count.String()).Observe(time.Since(started).Seconds())
	nonZeroEntries.WithLabelValues(t.Count.String()).Set(float64(nnz))

	return m, nil
}

// rowOffsets is pass 1.
func rowOffsets(t *abacus.Tables) []int {
	r := make([]int, t.NItems+2)
	last := make([]uint32, t.NItems+1) // group id + 1; 0 = none
	for k, e := range t.Order.Entries() {
		g := uint32(e.Group) + 1
		for _, id := range t.Items.Row(k) {
			if last[id] == g || t.Exclude.Contains(id) {
				continue
			}
			r[id]++
			last[id] = g
		}
	}
	sum := 0
	for i, n := range r {
		r[i] = sum
		sum += n
	}

	return r
}

// fillRows is pass 2.
func fillRows(t *abacus.Tables, r []int, nnz int, values bool) ([]uint32, []uint32) {
	c := make([]uint32, nnz)
	var v []uint32
	if values {
		v = make([]uint32, nnz)
	}
	cursor := make([]int, len(r)-1)
	copy(cursor, r[:len(r)-1])

	for k, e := range t.Order.Entries() {
		g := uint32(e.Group)
		for _, id := range t.Items.Row(k) {
			start, end := r[id], r[id+1]
			if start == end {
				continue // excluded
			}
			cur := cursor[id]
			if cur > start && c[cur-1] == g {
				if values {
					v[cur-1]++
				}
				continue
			}
			c[cur] = g
			if values {
				v[cur] = 1
			}
			cursor[id] = cur + 1
		}
	}

	return c, v
}

// Count returns the count type of the matrix.
func (m *CoverageMatrix) Count() core.CountType { return m.count }

// Groups returns the group labels indexed by group id (a copy).
func (m *CoverageMatrix) Groups() []string { return append([]string(nil), m.groups...) }

// GroupCount returns the number of groups.
func (m *CoverageMatrix) GroupCount() int { return len(m.groups) }

// ItemCount returns the number of items (without the null item).
func (m *CoverageMatrix) ItemCount() int { return len(m.r) - 2 }

// NNZ returns the number of stored (item, group) entries.
func (m *CoverageMatrix) NNZ() int { return len(m.c) }

// HasValues reports whether occurrence counts are stored.
func (m *CoverageMatrix) HasValues() bool { return m.v != nil }

// UncoveredBps returns the uncovered bp map. It is shared; do not modify it.
func (m *CoverageMatrix) UncoveredBps() map[core.ItemID]int { return m.uncoveredBps }

// Row returns the groups covering id and, when stored, the occurrence count
// per group. Both slices are shared and must not be modified.
func (m *CoverageMatrix) Row(id core.ItemID) (groups []uint32, values []uint32, err error) {
	if err := m.checkItem(id); err != nil {
		return nil, nil, err
	}
	s, e := m.r[id], m.r[id+1]
	if m.v != nil {
		values = m.v[s:e]
	}

	return m.c[s:e], values, nil
}

// Coverage returns the number of groups covering id (0 for unknown ids).
func (m *CoverageMatrix) Coverage(id core.ItemID) int {
	if m.checkItem(id) != nil {
		return 0
	}

	return m.r[id+1] - m.r[id]
}

func (m *CoverageMatrix) checkItem(id core.ItemID) error {
	if int(id) > m.ItemCount() {
		return fmt.Errorf("item %d of %d: %w", id, m.ItemCount(), ErrOutOfRange)
	}

	return nil
}

// groupSet validates group ids and collects them into a bitmap.
func (m *CoverageMatrix) groupSet(groups []int) (*roaring.Bitmap, error) {
	set := roaring.New()
	for _, g := range groups {
		if g < 0 || g >= len(m.groups) {
			return nil, fmt.Errorf("group %d of %d: %w", g, len(m.groups), ErrOutOfRange)
		}
		set.Add(uint32(g))
	}

	return set, nil
}

// ToAbacus recounts coverage restricted to items and groups: the result
// holds, for each requested item, how many of its groups are in groups.
// Items not requested count 0. The abacus's group list holds the selected
// labels in group id order. Also returns the requested items with non-zero
// coverage, in request order.
//
// The result equals an abacus built from scratch over the paths of the
// selected groups only.
//
// Errors:
//   - ErrOutOfRange for unknown item or group ids.
//
// Complexity: O(|groups| + Σ row lengths of items).
func (m *CoverageMatrix) ToAbacus(items []core.ItemID, groups []int) (*abacus.AbacusByTotal, []core.ItemID, error) {
	set, err := m.groupSet(groups)
	if err != nil {
		return nil, nil, err
	}
	countable := make([]uint32, m.ItemCount()+1)
	var nonZero []core.ItemID
	for _, id := range items {
		if err := m.checkItem(id); err != nil {
			return nil, nil, err
		}
		var n uint32
		for _, g := range m.c[m.r[id]:m.r[id+1]] {
			if set.Contains(g) {
				n++
			}
		}
		countable[id] = n
		if n > 0 {
			nonZero = append(nonZero, id)
		}
	}
	labels := make([]string, 0, set.GetCardinality())
	it := set.Iterator()
	for it.HasNext() {
		labels = append(labels, m.groups[it.Next()])
	}

	return &abacus.AbacusByTotal{
		Count:        m.count,
		Countable:    countable,
		UncoveredBps: m.uncoveredBps,
		Groups:       labels,
	}, nonZero, nil
}

// ToAbacusAllItems is ToAbacus over every item.
func (m *CoverageMatrix) ToAbacusAllItems(groups []int) (*abacus.AbacusByTotal, []core.ItemID, error) {
	items := make([]core.ItemID, m.ItemCount())
	for i := range items {
		items[i] = core.ItemID(i + 1)
	}

	return m.ToAbacus(items, groups)
}

// ItemsOfGroups returns the items covered by at least one of groups,
// ascending.
func (m *CoverageMatrix) ItemsOfGroups(groups []int) ([]core.ItemID, error) {
	set, err := m.groupSet(groups)
	if err != nil {
		return nil, err
	}
	var out []core.ItemID
	for id := 1; id <= m.ItemCount(); id++ {
		for _, g := range m.c[m.r[id]:m.r[id+1]] {
			if set.Contains(g) {
				out = append(out, core.ItemID(id))
				break
			}
		}
	}

	return out, nil
}

// NodeCoverages returns, for a node matrix, the number of groups covering
// each node, indexed by core.ItemID.
//
// Errors:
//   - ErrCountType for bp and edge matrices.
func (m *CoverageMatrix) NodeCoverages() ([]int, error) {
	if m.count != core.CountNode {
		return nil, fmt.Errorf("node coverages of %s matrix: %w", m.count, ErrCountType)
	}
	out := make([]int, m.ItemCount()+1)
	for id := 1; id < len(out); id++ {
		out[id] = m.r[id+1] - m.r[id]
	}

	return out, nil
}

// Validate checks the CSR invariants: monotone offsets, strictly increasing
// group ids per row within range, and occurrence counts ≥ 1.
// Complexity: O(NItems + nnz).
func (m *CoverageMatrix) Validate() error {
	if len(m.r) < 2 || m.r[0] != 0 || m.r[len(m.r)-1] != len(m.c) {
		return fmt.Errorf("offsets: %w", ErrCorrupt)
	}
	if m.v != nil && len(m.v) != len(m.c) {
		return fmt.Errorf("values length %d != %d: %w", len(m.v), len(m.c), ErrCorrupt)
	}
	for i := 0; i+1 < len(m.r); i++ {
		s, e := m.r[i], m.r[i+1]
		if e < s {
			return fmt.Errorf("row %d offsets decrease: %w", i, ErrCorrupt)
		}
		for k := s; k < e; k++ {
			if int(m.c[k]) >= len(m.groups) || (k > s && m.c[k] <= m.c[k-1]) {
				return fmt.Errorf("row %d group order: %w", i, ErrCorrupt)
			}
			if m.v != nil && m.v[k] == 0 {
				return fmt.Errorf("row %d zero value: %w", i, ErrCorrupt)
			}
		}
	}

	return nil
}
