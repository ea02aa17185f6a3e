// SPDX-License-Identifier: MIT

package broker

import (
	"github.com/heringerp/panacus/core"
)

const panicNegativeThreads = "broker: WithThreads: thread count must be >= 0"

// Option configures a Broker.
type Option func(*options)

type options struct {
	counts      []core.CountType
	matrixCount core.CountType
	withMatrix  bool
	values      bool
	threads     int
	name        string
}

// WithCounts selects the count types for which total abaci are built.
// core.CountAll expands to node, bp and edge. Default: node only.
func WithCounts(counts ...core.CountType) Option {
	return func(o *options) { o.counts = append(o.counts, counts...) }
}

// WithCoverageMatrix also builds a group-aware coverage matrix for count,
// optionally storing per-group occurrence counts.
func WithCoverageMatrix(count core.CountType, values bool) Option {
	return func(o *options) {
		o.withMatrix, o.matrixCount, o.values = true, count, values
	}
}

// WithThreads bounds the parallelism of construction and window queries.
// Zero means unbounded. Panics on negative values.
func WithThreads(n int) Option {
	if n < 0 {
		panic(panicNegativeThreads)
	}

	return func(o *options) { o.threads = n }
}

// WithName sets the run name reported by RunName and RunID.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

func gatherOptions(opts ...Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	o.counts = expandCounts(o.counts)

	return o
}

// expandCounts resolves CountAll and drops duplicates, keeping first-seen
// order. An empty list selects node counts.
func expandCounts(in []core.CountType) []core.CountType {
	if len(in) == 0 {
		return []core.CountType{core.CountNode}
	}
	seen := make(map[core.CountType]bool, 3)
	var out []core.CountType
	add := func(c core.CountType) {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	for _, c := range in {
		if c == core.CountAll {
			add(core.CountNode)
			add(core.CountBp)
			add(core.CountEdge)
			continue
		}
		add(c)
	}

	return out
}
