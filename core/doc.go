// SPDX-License-Identifier: MIT

// Package core defines the graph topology consumed by the coverage engine:
// item identifiers, count types, oriented path steps, canonical edges,
// PanSN path segments and the thread-safe Graph storage that owns them.
//
// Items are dense and 1-based. Node ids follow insertion order; edge ids
// follow first traversal while paths are added, and an edge and its reverse
// complement share one id:
//
//	g := core.NewGraph()
//	g.AddNode("s1", 10)
//	g.AddNode("s2", 5)
//	g.AddPathByNames("HG002#1#chr20", []string{">s1", "<s2"})
//
// Concurrency: Graph guards its node catalog and its path/edge tables with
// separate RWMutexes; readers never block each other.
//
// Errors:
//
//	ErrEmptyNodeName    - node name is the empty string.
//	ErrDuplicateNode    - node name registered twice.
//	ErrNodeNotFound     - a path step or query references an unknown node.
//	ErrBadNodeLength    - node length is zero or negative.
//	ErrPathNotFound     - path index outside the registered paths.
//	ErrDuplicatePath    - a path segment was registered twice.
//	ErrUnknownCountType - count type text could not be parsed.
package core
