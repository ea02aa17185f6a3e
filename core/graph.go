// SPDX-License-Identifier: MIT
//
// File: graph.go
// Role: Graph storage: nodes with lengths, canonical edge table, paths.
//
// Concurrency:
//   - muNodes guards nodeLens, nodeNames and nodeIndex.
//   - muPaths guards edges, paths and steps.
//   - Lock order is muNodes -> muPaths wherever both are held.
//
// Determinism:
//   - Node ids are assigned in insertion order starting at 1.
//   - Edge ids are assigned in first-traversal order starting at 1.
//   - Paths keep their insertion order; that index is the path id used by
//     item tables.

package core

import (
	"fmt"
	"sync"
)

// Graph is the in-memory variation graph consumed by the coverage engine.
//
// It exposes exactly what the engine needs: the number of countable items
// per count type, node lengths, the canonical edge table and, for every
// path, its segment name and oriented node steps.
type Graph struct {
	muNodes sync.RWMutex // guards node catalog
	muPaths sync.RWMutex // guards edges and paths

	// node catalog; index 0 is the reserved null item
	nodeLens  []uint32
	nodeNames []string
	nodeIndex map[string]ItemID

	// edge table: canonical edge → id (1-based)
	edges map[Edge]ItemID

	// paths in insertion order with their steps
	paths     []PathSegment
	pathIndex map[string]int
	steps     [][]Step
}

// NewGraph creates an empty Graph.
// Complexity: O(1) unless WithCapacity pre-sizes storage.
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		nodeLens:  make([]uint32, 1),
		nodeNames: make([]string, 1),
		nodeIndex: make(map[string]ItemID),
		edges:     make(map[Edge]ItemID),
		pathIndex: make(map[string]int),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// AddNode registers a node and returns its id.
//
// Errors:
//   - ErrEmptyNodeName if name == "".
//   - ErrBadNodeLength if length <= 0.
//   - ErrDuplicateNode if the name is already registered.
//
// Complexity: O(1) amortized.
func (g *Graph) AddNode(name string, length int) (ItemID, error) {
	if name == "" {
		return 0, ErrEmptyNodeName
	}
	if length <= 0 {
		return 0, fmt.Errorf("node %q: %w", name, ErrBadNodeLength)
	}

	g.muNodes.Lock()
	defer g.muNodes.Unlock()

	if _, exists := g.nodeIndex[name]; exists {
		return 0, fmt.Errorf("node %q: %w", name, ErrDuplicateNode)
	}
	id := ItemID(len(g.nodeLens))
	g.nodeLens = append(g.nodeLens, uint32(length))
	g.nodeNames = append(g.nodeNames, name)
	g.nodeIndex[name] = id

	return id, nil
}

// NodeID resolves a node name.
func (g *Graph) NodeID(name string) (ItemID, bool) {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	id, ok := g.nodeIndex[name]

	return id, ok
}

// NodeName returns the name of node id, or "" for unknown ids.
func (g *Graph) NodeName(id ItemID) string {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	if int(id) >= len(g.nodeNames) {
		return ""
	}

	return g.nodeNames[id]
}

// NodeLen returns the length of node id, or 0 for unknown ids.
func (g *Graph) NodeLen(id ItemID) int {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	if int(id) >= len(g.nodeLens) {
		return 0
	}

	return int(g.nodeLens[id])
}

// NodeLens returns a copy of the node length table indexed by ItemID
// (entry 0 is the reserved null item and always 0).
// Complexity: O(V).
func (g *Graph) NodeLens() []uint32 {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	out := make([]uint32, len(g.nodeLens))
	copy(out, g.nodeLens)

	return out
}

// NodeCount returns the number of registered nodes.
func (g *Graph) NodeCount() int {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()

	return len(g.nodeLens) - 1
}

// EdgeCount returns the number of distinct canonical edges.
func (g *Graph) EdgeCount() int {
	g.muPaths.RLock()
	defer g.muPaths.RUnlock()

	return len(g.edges)
}

// ItemCount returns the number of countable items for a count type:
// nodes for node and bp counts, edges for edge counts.
func (g *Graph) ItemCount(count CountType) int {
	if count.ItemSource() == CountEdge {
		return g.EdgeCount()
	}

	return g.NodeCount()
}

// AddEdge registers the canonical form of e and returns its id.
// Idempotent: re-adding an edge (or its reverse complement) returns the
// existing id.
//
// Errors:
//   - ErrNodeNotFound if an endpoint is unknown.
func (g *Graph) AddEdge(e Edge) (ItemID, error) {
	g.muNodes.RLock()
	n := ItemID(len(g.nodeLens) - 1)
	g.muNodes.RUnlock()
	if e.From == 0 || e.From > n || e.To == 0 || e.To > n {
		return 0, fmt.Errorf("edge %d-%d: %w", e.From, e.To, ErrNodeNotFound)
	}

	g.muPaths.Lock()
	defer g.muPaths.Unlock()

	return g.addEdgeLocked(e.Canonical()), nil
}

func (g *Graph) addEdgeLocked(c Edge) ItemID {
	if id, ok := g.edges[c]; ok {
		return id
	}
	id := ItemID(len(g.edges) + 1)
	g.edges[c] = id

	return id
}

// EdgeID returns the id of the edge traversed from step a to step b.
func (g *Graph) EdgeID(a, b Step) (ItemID, bool) {
	g.muPaths.RLock()
	defer g.muPaths.RUnlock()
	id, ok := g.edges[NewEdge(a, b).Canonical()]

	return id, ok
}

// Edges returns the canonical edge table indexed by ItemID (entry 0 unused).
// Complexity: O(E).
func (g *Graph) Edges() []Edge {
	g.muPaths.RLock()
	defer g.muPaths.RUnlock()
	out := make([]Edge, len(g.edges)+1)
	for e, id := range g.edges {
		out[id] = e
	}

	return out
}

// AddPath registers a path and its steps, and every edge it traverses.
// Returns the path index.
//
// Errors:
//   - ErrDuplicatePath if the same segment (name and coordinates) exists.
//   - ErrNodeNotFound if a step references an unknown node.
//
// Complexity: O(len(steps)).
func (g *Graph) AddPath(seg PathSegment, steps []Step) (int, error) {
	g.muNodes.RLock()
	n := ItemID(len(g.nodeLens) - 1)
	g.muNodes.RUnlock()
	for _, s := range steps {
		if s.Node == 0 || s.Node > n {
			return 0, fmt.Errorf("path %s step %d: %w", seg, s.Node, ErrNodeNotFound)
		}
	}

	g.muPaths.Lock()
	defer g.muPaths.Unlock()

	key := seg.String()
	if _, exists := g.pathIndex[key]; exists {
		return 0, fmt.Errorf("path %s: %w", key, ErrDuplicatePath)
	}
	for i := 1; i < len(steps); i++ {
		g.addEdgeLocked(NewEdge(steps[i-1], steps[i]).Canonical())
	}
	own := make([]Step, len(steps))
	copy(own, steps)

	idx := len(g.paths)
	g.paths = append(g.paths, seg)
	g.steps = append(g.steps, own)
	g.pathIndex[key] = idx

	return idx, nil
}

// AddPathByNames is a convenience wrapper resolving node names written in
// walk notation, e.g. []string{">s1", "<s2"}; names without an orientation
// prefix are read as forward.
func (g *Graph) AddPathByNames(name string, nodes []string) (int, error) {
	steps := make([]Step, 0, len(nodes))
	for _, raw := range nodes {
		ori := Forward
		switch {
		case len(raw) > 0 && raw[0] == '<':
			ori, raw = Backward, raw[1:]
		case len(raw) > 0 && raw[0] == '>':
			raw = raw[1:]
		}
		id, ok := g.NodeID(raw)
		if !ok {
			return 0, fmt.Errorf("path %s node %q: %w", name, raw, ErrNodeNotFound)
		}
		steps = append(steps, Step{Node: id, Orientation: ori})
	}

	return g.AddPath(ParsePathSegment(name), steps)
}

// PathCount returns the number of registered paths.
func (g *Graph) PathCount() int {
	g.muPaths.RLock()
	defer g.muPaths.RUnlock()

	return len(g.paths)
}

// Paths returns the path segments in insertion order (a copy).
func (g *Graph) Paths() []PathSegment {
	g.muPaths.RLock()
	defer g.muPaths.RUnlock()
	out := make([]PathSegment, len(g.paths))
	copy(out, g.paths)

	return out
}

// Steps returns the steps of path idx. The slice is shared and must not be
// modified by the caller.
func (g *Graph) Steps(idx int) ([]Step, error) {
	g.muPaths.RLock()
	defer g.muPaths.RUnlock()
	if idx < 0 || idx >= len(g.steps) {
		return nil, fmt.Errorf("path %d: %w", idx, ErrPathNotFound)
	}

	return g.steps[idx], nil
}
