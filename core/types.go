// SPDX-License-Identifier: MIT

package core

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for graph storage operations.
var (
	// ErrEmptyNodeName indicates that AddNode received an empty name.
	ErrEmptyNodeName = errors.New("core: node name is empty")

	// ErrDuplicateNode indicates that a node name is already registered.
	ErrDuplicateNode = errors.New("core: duplicate node")

	// ErrNodeNotFound indicates a reference to a node that does not exist.
	ErrNodeNotFound = errors.New("core: node not found")

	// ErrBadNodeLength indicates a node length that is not strictly positive.
	ErrBadNodeLength = errors.New("core: node length must be > 0")

	// ErrPathNotFound indicates a path index outside [0, PathCount()).
	ErrPathNotFound = errors.New("core: path not found")

	// ErrDuplicatePath indicates that the same path segment was added twice.
	ErrDuplicatePath = errors.New("core: duplicate path")

	// ErrUnknownCountType indicates unparsable count type text.
	ErrUnknownCountType = errors.New("core: unknown count type")
)

// ItemID identifies a countable graph element (node or edge).
// Identifiers are dense and 1-based; 0 is reserved and never assigned, which
// lets per-item arrays be indexed directly by ItemID.
type ItemID uint32

// CountType selects which graph element is counted.
type CountType int

const (
	// CountNode counts nodes (segments).
	CountNode CountType = iota

	// CountBp counts base pairs; items are nodes weighted by their length.
	CountBp

	// CountEdge counts canonical edges.
	CountEdge

	// CountAll requests node, bp and edge counts at once (broker level only).
	CountAll
)

// String returns the lower-case name used in tables and configuration.
func (c CountType) String() string {
	switch c {
	case CountNode:
		return "node"
	case CountBp:
		return "bp"
	case CountEdge:
		return "edge"
	case CountAll:
		return "all"
	default:
		return fmt.Sprintf("CountType(%d)", int(c))
	}
}

// ParseCountType parses "node", "bp", "edge" or "all" (case-insensitive).
func ParseCountType(s string) (CountType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "node", "nodes":
		return CountNode, nil
	case "bp", "bps":
		return CountBp, nil
	case "edge", "edges":
		return CountEdge, nil
	case "all":
		return CountAll, nil
	default:
		return CountNode, fmt.Errorf("%q: %w", s, ErrUnknownCountType)
	}
}

// ItemSource reports which element family backs the count: nodes for node
// and bp counts, edges for edge counts.
func (c CountType) ItemSource() CountType {
	if c == CountBp {
		return CountNode
	}

	return c
}

// Orientation is the strand a path traverses a node on.
type Orientation bool

const (
	// Forward traversal ('>' in walks, '+' in paths).
	Forward Orientation = false

	// Backward traversal ('<' in walks, '-' in paths).
	Backward Orientation = true
)

// Flip returns the opposite orientation.
func (o Orientation) Flip() Orientation { return !o }

// String renders the walk notation of the orientation.
func (o Orientation) String() string {
	if o == Backward {
		return "<"
	}

	return ">"
}

// Step is one oriented node visit along a path.
type Step struct {
	Node        ItemID
	Orientation Orientation
}

// Edge joins the end of one oriented node to the start of another.
// An edge and its reverse complement describe the same adjacency;
// Canonical picks one representative.
type Edge struct {
	From    ItemID
	FromOri Orientation
	To      ItemID
	ToOri   Orientation
}

// NewEdge builds the edge traversed between two consecutive steps.
func NewEdge(a, b Step) Edge {
	return Edge{From: a.Node, FromOri: a.Orientation, To: b.Node, ToOri: b.Orientation}
}

// Canonical returns the representative of the edge and its reverse complement.
//
// The reverse complement of (u,o1)→(v,o2) is (v,¬o2)→(u,¬o1). The
// representative is the one whose (From, FromOri, To, ToOri) tuple sorts
// first, with Forward < Backward.
//
// Complexity: O(1).
func (e Edge) Canonical() Edge {
	rc := Edge{From: e.To, FromOri: e.ToOri.Flip(), To: e.From, ToOri: e.FromOri.Flip()}
	if edgeLess(rc, e) {
		return rc
	}

	return e
}

func edgeLess(a, b Edge) bool {
	if a.From != b.From {
		return a.From < b.From
	}
	if a.FromOri != b.FromOri {
		return !bool(a.FromOri)
	}
	if a.To != b.To {
		return a.To < b.To
	}

	return !bool(a.ToOri) && bool(b.ToOri)
}

// GraphOption configures a Graph before first use.
type GraphOption func(g *Graph)

// WithCapacity pre-sizes node storage for an expected number of nodes.
func WithCapacity(nodes int) GraphOption {
	return func(g *Graph) {
		if nodes > 0 {
			g.nodeLens = make([]uint32, 1, nodes+1)
			g.nodeNames = make([]string, 1, nodes+1)
		}
	}
}
