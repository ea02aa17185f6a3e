// SPDX-License-Identifier: MIT

// Package matrix: functional configuration of CoverageMatrix construction.
//
// Defaults:
//   - values are not stored (presence/absence only), which halves memory.

package matrix

// DefaultReportValues controls whether per-(item,group) occurrence counts
// are stored next to the group ids.
const DefaultReportValues = false

// Option mutates build options. Safe to apply repeatedly.
type Option func(*Options)

// Options holds the effective configuration after applying Option setters.
type Options struct {
	reportValues bool
}

// WithValues toggles storage of per-(item,group) occurrence counts.
// Complexity: O(1).
func WithValues(on bool) Option {
	return func(o *Options) { o.reportValues = on }
}

// gatherOptions applies opts over the defaults, left to right.
func gatherOptions(opts ...Option) Options {
	o := Options{reportValues: DefaultReportValues}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
