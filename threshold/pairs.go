// SPDX-License-Identifier: MIT

package threshold

import (
	"fmt"
	"sort"
)

// Pair is one (coverage, quorum) combination for a growth curve.
type Pair struct {
	Coverage Threshold
	Quorum   Threshold
}

// String renders "coverage=<c> quorum=<q>".
func (p Pair) String() string {
	return fmt.Sprintf("coverage=%s quorum=%s", p.Coverage, p.Quorum)
}

// Pairs is an ordered list of threshold pairs. Growth results computed from
// Pairs keep this order.
type Pairs []Pair

// ParsePairs parses a quorum list (relative) and a coverage list (absolute)
// and zips them. A list with a single element is broadcast to the length of
// the other one.
//
// Errors:
//   - ErrEmptyList if either list is empty.
//   - ErrInvalidThreshold for malformed elements.
//   - ErrThresholdCount if lengths differ and neither list has length 1.
func ParsePairs(quorum, coverage string) (Pairs, error) {
	qs, err := ParseList(quorum, RequireRelative)
	if err != nil {
		return nil, fmt.Errorf("quorum: %w", err)
	}
	cs, err := ParseList(coverage, RequireAbsolute)
	if err != nil {
		return nil, fmt.Errorf("coverage: %w", err)
	}

	return Zip(cs, qs)
}

// Zip pairs coverage and quorum thresholds with single-value broadcasting.
func Zip(coverage, quorum []Threshold) (Pairs, error) {
	if len(coverage) == 0 || len(quorum) == 0 {
		return nil, ErrEmptyList
	}
	if len(coverage) != len(quorum) {
		switch {
		case len(quorum) == 1:
			quorum = repeat(quorum[0], len(coverage))
		case len(coverage) == 1:
			coverage = repeat(coverage[0], len(quorum))
		default:
			return nil, fmt.Errorf("%d coverage vs %d quorum: %w", len(coverage), len(quorum), ErrThresholdCount)
		}
	}
	out := make(Pairs, len(coverage))
	for i := range coverage {
		out[i] = Pair{Coverage: coverage[i], Quorum: quorum[i]}
	}

	return out, nil
}

func repeat(t Threshold, n int) []Threshold {
	out := make([]Threshold, n)
	for i := range out {
		out[i] = t
	}

	return out
}

// FullGrowthIndex returns the index of the pair describing the plain
// pangenome growth: quorum 0 with the smallest coverage. ok is false when
// no pair has quorum 0.
func (ps Pairs) FullGrowthIndex() (idx int, ok bool) {
	type cand struct {
		cov float64
		idx int
	}
	var cands []cand
	for i, p := range ps {
		if p.Quorum.ToRelative(1) == 0 {
			cands = append(cands, cand{cov: p.Coverage.ToRelative(1), idx: i})
		}
	}
	if len(cands) == 0 {
		return 0, false
	}
	sort.SliceStable(cands, func(a, b int) bool { return cands[a].cov < cands[b].cov })

	return cands[0].idx, true
}
