// SPDX-License-Identifier: MIT
//
// File: mask.go
// Role: GraphMask construction: include/exclude resolution, path→group
// assignment and the canonical group-sorted path order.
//
// Determinism:
//   - Groups are ranked lexically by label, or by the explicit order list.
//   - Paths with equal group rank are ordered by core.PathSegment.Less, then
//     by graph index.
//   - Group ids are assigned in the order labels are first seen along that
//     traversal, so ids are consecutive and non-decreasing along PathOrder.

package mask

import (
	"fmt"
	"io"
	"sort"

	"github.com/heringerp/panacus/core"
	log "github.com/sirupsen/logrus"
)

// PathLister is the part of the graph a mask needs: its path names in graph
// index order. *core.Graph satisfies it.
type PathLister interface {
	Paths() []core.PathSegment
}

// Settings is the parsed, file-free input of a mask.
type Settings struct {
	// Include restricts counting to these paths/ranges. Empty means all.
	Include []core.PathSegment

	// Exclude removes items overlapping these paths/ranges.
	Exclude []core.PathSegment

	// Mode selects the grouping; GroupByFile requires Groups.
	Mode GroupMode

	// Groups is the explicit assignment for GroupByFile.
	Groups []GroupEntry

	// Order optionally fixes the group order; it must name every group.
	Order []string
}

// GraphMask resolves which paths take part in a run, which coordinate ranges
// are in or out of scope, and which group every path belongs to.
// It is immutable after construction and safe for concurrent reads.
type GraphMask struct {
	paths   []core.PathSegment
	groupOf []int // per graph path; -1 when not included
	groups  []string
	order   PathOrder

	include    map[int][]Interval
	exclude    map[int][]Interval
	hasInclude bool
}

// New builds a mask for the given graph paths.
//
// Stages:
//  1. Resolve include and exclude entries to per-path local intervals.
//  2. Label every included path according to Mode.
//  3. Rank labels (lexically or by Order), sort paths, assign group ids.
//
// Errors (all wrap ErrConfig):
//   - ErrUnknownPath for include/exclude/group entries matching no path.
//   - ErrMissingGroup for an included path the group list does not assign.
//   - ErrBadGrouping for GroupByFile without entries.
//   - ErrIncompleteOrder / ErrUnknownGroup for an inconsistent Order.
//
// Complexity: O(P·(I+X+G) + P log P) for P paths and I, X, G entries.
func New(paths []core.PathSegment, s Settings) (*GraphMask, error) {
	m := &GraphMask{
		paths:      append([]core.PathSegment(nil), paths...),
		groupOf:    make([]int, len(paths)),
		hasInclude: len(s.Include) > 0,
	}

	var err error
	if m.include, err = resolveCoords(m.paths, s.Include, "subset"); err != nil {
		return nil, err
	}
	if m.exclude, err = resolveCoords(m.paths, s.Exclude, "exclude"); err != nil {
		return nil, err
	}

	labels, known, err := m.label(s)
	if err != nil {
		return nil, err
	}
	rank, err := rankLabels(known, s.Order)
	if err != nil {
		return nil, err
	}

	selected := make([]int, 0, len(m.paths))
	for i := range m.paths {
		m.groupOf[i] = -1
		if m.included(i) {
			selected = append(selected, i)
		}
	}
	sort.SliceStable(selected, func(a, b int) bool {
		pa, pb := selected[a], selected[b]
		if ra, rb := rank[labels[pa]], rank[labels[pb]]; ra != rb {
			return ra < rb
		}
		if m.paths[pa].Less(m.paths[pb]) {
			return true
		}
		if m.paths[pb].Less(m.paths[pa]) {
			return false
		}
		return pa < pb
	})

	ids := make(map[string]int)
	entries := make([]PathGroup, 0, len(selected))
	for _, p := range selected {
		id, ok := ids[labels[p]]
		if !ok {
			id = len(m.groups)
			ids[labels[p]] = id
			m.groups = append(m.groups, labels[p])
		}
		m.groupOf[p] = id
		entries = append(entries, PathGroup{Path: p, Group: id})
	}
	if m.order, err = NewPathOrder(entries, len(m.groups)); err != nil {
		return nil, err
	}

	log.Infof("mask: %d of %d paths in %d groups (%s grouping, subset=%t, exclude=%t)",
		len(entries), len(m.paths), len(m.groups), s.Mode, m.hasInclude, len(m.exclude) > 0)

	return m, nil
}

// FromParams reads the files named by p and builds the mask for g.
func FromParams(p Params, g PathLister) (*GraphMask, error) {
	if err := p.Grouping.validate(); err != nil {
		return nil, err
	}
	s := Settings{Mode: p.Grouping.Mode}

	var err error
	if p.Subset != "" {
		if s.Include, err = readFile(p.Subset, ParseBED); err != nil {
			return nil, err
		}
	}
	if p.Exclude != "" {
		if s.Exclude, err = readFile(p.Exclude, ParseBED); err != nil {
			return nil, err
		}
	}
	if p.Grouping.Mode == GroupByFile {
		if s.Groups, err = readFile(p.Grouping.File, ParseGroups); err != nil {
			return nil, err
		}
	}
	if p.Order != "" {
		if s.Order, err = readFile(p.Order, ParseOrder); err != nil {
			return nil, err
		}
	}

	return New(g.Paths(), s)
}

func readFile[T any](path string, parse func(io.Reader) ([]T, error)) ([]T, error) {
	r, closeFn, err := openInput(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	defer func() { _ = closeFn() }()
	out, err := parse(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return out, nil
}

// resolveCoords maps each entry to the intervals it selects on every graph
// path it falls under, in path-local coordinates.
func resolveCoords(paths []core.PathSegment, entries []core.PathSegment, what string) (map[int][]Interval, error) {
	out := make(map[int][]Interval)
	for _, e := range entries {
		matched := false
		for i, p := range paths {
			if !p.IsPartOf(e) {
				continue
			}
			matched = true
			if iv, ok := localInterval(p, e); ok {
				out[i] = append(out[i], iv)
			}
		}
		if !matched {
			return nil, configErrorf(ErrUnknownPath, "%s entry %s", what, e)
		}
	}
	for i, ivs := range out {
		out[i] = Merge(ivs)
	}

	return out, nil
}

// localInterval clips entry e to path p and shifts it to p's own
// coordinates (0 at the first base of p).
func localInterval(p, e core.PathSegment) (Interval, bool) {
	ps, pe := p.Coords()
	es, ee := e.Coords()
	s, t := max(ps, es), min(pe, ee)
	if s >= t {
		return Interval{}, false
	}
	return Interval{Start: s - ps, End: t - ps}, true
}

// label returns a group label per graph path (only meaningful for included
// paths) and the set of all labels the grouping knows.
func (m *GraphMask) label(s Settings) ([]string, []string, error) {
	labels := make([]string, len(m.paths))
	seen := make(map[string]struct{})
	var known []string
	addKnown := func(l string) {
		if _, ok := seen[l]; !ok {
			seen[l] = struct{}{}
			known = append(known, l)
		}
	}

	if s.Mode != GroupByFile {
		for i, p := range m.paths {
			switch s.Mode {
			case GroupBySample:
				labels[i] = p.Sample
			case GroupByHaplotype:
				labels[i] = p.HaplotypeID()
			default:
				labels[i] = p.ID()
			}
			if m.included(i) {
				addKnown(labels[i])
			}
		}
		return labels, known, nil
	}

	if len(s.Groups) == 0 {
		return nil, nil, configErrorf(ErrBadGrouping, "group file mode without group entries")
	}
	used := make([]bool, len(s.Groups))
	for i, p := range m.paths {
		found := false
		for k, e := range s.Groups {
			if p.IsPartOf(e.Path) {
				labels[i], found, used[k] = e.Group, true, true
				break
			}
		}
		if !found && m.included(i) {
			return nil, nil, configErrorf(ErrMissingGroup, "path %s", p)
		}
	}
	for k, e := range s.Groups {
		if !used[k] {
			return nil, nil, configErrorf(ErrUnknownPath, "group entry %s", e.Path)
		}
		addKnown(e.Group)
	}

	return labels, known, nil
}

// rankLabels orders labels lexically, or by order when given.
func rankLabels(labels, order []string) (map[string]int, error) {
	rank := make(map[string]int, len(labels))
	if len(order) == 0 {
		sorted := append([]string(nil), labels...)
		sort.Strings(sorted)
		for i, l := range sorted {
			rank[l] = i
		}
		return rank, nil
	}

	for i, l := range order {
		rank[l] = i
	}
	known := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		known[l] = struct{}{}
		if _, ok := rank[l]; !ok {
			return nil, configErrorf(ErrIncompleteOrder, "group %q missing from order", l)
		}
	}
	for _, l := range order {
		if _, ok := known[l]; !ok {
			return nil, configErrorf(ErrUnknownGroup, "order names group %q", l)
		}
	}

	return rank, nil
}

func (m *GraphMask) included(i int) bool {
	if !m.hasInclude {
		return true
	}
	_, ok := m.include[i]

	return ok
}

// GroupCount returns the number of groups.
func (m *GraphMask) GroupCount() int { return len(m.groups) }

// Groups returns the group labels indexed by group id (a copy).
func (m *GraphMask) Groups() []string { return append([]string(nil), m.groups...) }

// GroupOf returns the group id of graph path idx; ok is false for paths
// outside the run.
func (m *GraphMask) GroupOf(idx int) (id int, ok bool) {
	if idx < 0 || idx >= len(m.groupOf) || m.groupOf[idx] < 0 {
		return 0, false
	}

	return m.groupOf[idx], true
}

// PathOrder returns the canonical, group-sorted traversal order.
func (m *GraphMask) PathOrder() PathOrder { return m.order }

// Path returns the segment of graph path idx.
func (m *GraphMask) Path(idx int) core.PathSegment { return m.paths[idx] }

// HasInclude reports whether a subset list restricts the run.
func (m *GraphMask) HasInclude() bool { return m.hasInclude }

// HasExclude reports whether any path carries exclude ranges.
func (m *GraphMask) HasExclude() bool { return len(m.exclude) > 0 }

// IncludeCoords returns the sorted, merged ranges of path idx that are in
// scope: Complete without a subset list, nil for paths outside the subset.
func (m *GraphMask) IncludeCoords(idx int) []Interval {
	if !m.hasInclude {
		return Complete
	}

	return m.include[idx]
}

// ExcludedPaths returns the graph indices of paths carrying exclude ranges,
// ascending. Paths outside the run are included: their items are excluded
// for every group.
func (m *GraphMask) ExcludedPaths() []int {
	out := make([]int, 0, len(m.exclude))
	for i := range m.exclude {
		out = append(out, i)
	}
	sort.Ints(out)

	return out
}

// ExcludeCoords returns the sorted, merged excluded ranges of path idx,
// or nil.
func (m *GraphMask) ExcludeCoords(idx int) []Interval { return m.exclude[idx] }
