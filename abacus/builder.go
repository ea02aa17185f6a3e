// SPDX-License-Identifier: MIT
//
// File: builder.go
// Role: BuildTables: one pass over the mask's paths producing the ItemTable,
// the exclusion ActiveTable and the uncovered-bp map.
//
// Rules:
//   - node/edge counts: an item overlapping any exclude range is excluded.
//     An edge is excluded when either adjacent occurrence is.
//   - bp counts: a node fully inside exclude ranges is excluded; a partial
//     overlap, like a partial include, reduces the node's counted length.
//     uncovered = len - |covered \ excluded| in node-local coordinates.
//   - An edge is recorded only when both adjacent occurrences are in scope.

package abacus

import (
	"fmt"

	"github.com/heringerp/panacus/core"
	"github.com/heringerp/panacus/mask"
	log "github.com/sirupsen/logrus"
)

// Graph is the topology the builder reads. *core.Graph satisfies it.
type Graph interface {
	ItemCount(count core.CountType) int
	NodeLen(id core.ItemID) int
	Steps(idx int) ([]core.Step, error)
	EdgeID(a, b core.Step) (core.ItemID, bool)
}

// occurrence is one step placed on path-local coordinates.
type occurrence struct {
	step core.Step
	span mask.Interval
}

// BuildTables ingests the paths of m in its canonical order.
//
// Errors:
//   - ErrNilInput for a nil graph or mask.
//   - ErrCountAll for core.CountAll.
//   - core.ErrPathNotFound / ErrMissingEdge for an inconsistent graph.
//
// Complexity: O(total steps · log(ranges per path)).
func BuildTables(g Graph, m *mask.GraphMask, count core.CountType) (*Tables, error) {
	if g == nil || m == nil {
		return nil, ErrNilInput
	}
	if count == core.CountAll {
		return nil, ErrCountAll
	}

	b := &tableBuilder{
		g:        g,
		count:    count,
		exclude:  NewActiveTable(),
		partIncl: make(map[core.ItemID][]mask.Interval),
		partExcl: make(map[core.ItemID][]mask.Interval),
	}
	if err := b.scanExcludes(m); err != nil {
		return nil, err
	}

	order := m.PathOrder()
	prefix := make([]int, 1, order.Len()+1)
	var items []core.ItemID
	for _, e := range order.Entries() {
		log.Debugf("abacus: processing path %s (group %d)", m.Path(e.Path), e.Group)
		var err error
		if items, err = b.collect(items, e.Path, m.IncludeCoords(e.Path)); err != nil {
			return nil, err
		}
		prefix = append(prefix, len(items))
	}

	t := &Tables{
		Count:        count,
		NItems:       g.ItemCount(count),
		Items:        ItemTable{Prefix: prefix, Items: items},
		Exclude:      b.exclude,
		UncoveredBps: b.uncovered(),
		Order:        order,
		Groups:       m.Groups(),
	}
	log.Infof("abacus: %s table with %d occurrences over %d paths, %d excluded items, %d partially covered",
		count, len(items), order.Len(), t.Exclude.Len(), len(t.UncoveredBps))

	return t, nil
}

type tableBuilder struct {
	g       Graph
	count   core.CountType
	exclude *ActiveTable
	full    map[core.ItemID]struct{}

	// node-local ranges, bp counts only
	partIncl map[core.ItemID][]mask.Interval
	partExcl map[core.ItemID][]mask.Interval
}

// place lays out the steps of path p on path-local coordinates.
func (b *tableBuilder) place(p int) ([]occurrence, error) {
	steps, err := b.g.Steps(p)
	if err != nil {
		return nil, err
	}
	out := make([]occurrence, len(steps))
	pos := 0
	for i, s := range steps {
		l := b.g.NodeLen(s.Node)
		out[i] = occurrence{step: s, span: mask.Interval{Start: pos, End: pos + l}}
		pos += l
	}

	return out, nil
}

// scanExcludes fills the exclusion table from every path with exclude ranges.
func (b *tableBuilder) scanExcludes(m *mask.GraphMask) error {
	for _, p := range m.ExcludedPaths() {
		occ, err := b.place(p)
		if err != nil {
			return err
		}
		ivs := m.ExcludeCoords(p)
		hit := make([]bool, len(occ))
		for i, o := range occ {
			pieces := mask.Overlaps(ivs, o.span)
			if len(pieces) == 0 {
				continue
			}
			hit[i] = true
			switch b.count {
			case core.CountNode:
				b.exclude.Add(o.step.Node)
			case core.CountBp:
				if mask.TotalLen(pieces) == o.span.Len() {
					b.exclude.Add(o.step.Node)
				} else {
					b.partExcl[o.step.Node] = append(b.partExcl[o.step.Node], toLocal(pieces, o)...)
				}
			}
		}
		if b.count != core.CountEdge {
			continue
		}
		for i := 1; i < len(occ); i++ {
			if !hit[i-1] && !hit[i] {
				continue
			}
			id, ok := b.g.EdgeID(occ[i-1].step, occ[i].step)
			if !ok {
				return fmt.Errorf("path %d step %d: %w", p, i, ErrMissingEdge)
			}
			b.exclude.Add(id)
		}
	}

	return nil
}

// collect appends the in-scope items of path p to items.
func (b *tableBuilder) collect(items []core.ItemID, p int, incl []mask.Interval) ([]core.ItemID, error) {
	occ, err := b.place(p)
	if err != nil {
		return nil, err
	}
	prevIn := false
	for i, o := range occ {
		pieces := mask.Overlaps(incl, o.span)
		in := len(pieces) > 0
		switch b.count {
		case core.CountNode:
			if in {
				items = append(items, o.step.Node)
			}
		case core.CountBp:
			if !in {
				break
			}
			items = append(items, o.step.Node)
			if mask.TotalLen(pieces) == o.span.Len() {
				if b.full == nil {
					b.full = make(map[core.ItemID]struct{})
				}
				b.full[o.step.Node] = struct{}{}
			} else {
				b.partIncl[o.step.Node] = append(b.partIncl[o.step.Node], toLocal(pieces, o)...)
			}
		case core.CountEdge:
			if in && prevIn {
				id, ok := b.g.EdgeID(occ[i-1].step, o.step)
				if !ok {
					return nil, fmt.Errorf("path %d step %d: %w", p, i, ErrMissingEdge)
				}
				items = append(items, id)
			}
		}
		prevIn = in
	}

	return items, nil
}

// uncovered resolves partial coverage into uncovered bp per node and marks
// nodes left with no counted bp as excluded.
func (b *tableBuilder) uncovered() map[core.ItemID]int {
	out := make(map[core.ItemID]int)
	if b.count != core.CountBp {
		return out
	}
	seen := make(map[core.ItemID]struct{}, len(b.partIncl)+len(b.partExcl))
	resolve := func(id core.ItemID) {
		if _, done := seen[id]; done || b.exclude.Contains(id) {
			return
		}
		seen[id] = struct{}{}
		l := b.g.NodeLen(id)
		covered := []mask.Interval{{Start: 0, End: l}}
		if _, isFull := b.full[id]; !isFull {
			covered = mask.Merge(b.partIncl[id])
		}
		excl := mask.Merge(b.partExcl[id])
		counted := 0
		for _, iv := range covered {
			counted += iv.Len() - mask.TotalLen(mask.Overlaps(excl, iv))
		}
		switch {
		case counted <= 0:
			b.exclude.Add(id)
		case counted < l:
			out[id] = l - counted
		}
	}
	for id := range b.partIncl {
		resolve(id)
	}
	for id := range b.partExcl {
		resolve(id)
	}

	return out
}

// toLocal maps path-local pieces of occurrence o into node-local coordinates,
// mirroring them for reverse traversals.
func toLocal(pieces []mask.Interval, o occurrence) []mask.Interval {
	out := make([]mask.Interval, len(pieces))
	l := o.span.Len()
	for i, pc := range pieces {
		s, e := pc.Start-o.span.Start, pc.End-o.span.Start
		if o.step.Orientation == core.Backward {
			s, e = l-e, l-s
		}
		out[i] = mask.Interval{Start: s, End: e}
	}

	return out
}
