// SPDX-License-Identifier: MIT

package mask

import "sort"

// Interval is a half-open coordinate range [Start, End) on a path.
type Interval struct {
	Start int
	End   int
}

// Len returns End-Start, or 0 for empty ranges.
func (iv Interval) Len() int {
	if iv.End <= iv.Start {
		return 0
	}

	return iv.End - iv.Start
}

// Complete covers every coordinate of a path.
var Complete = []Interval{{Start: 0, End: int(^uint(0) >> 1)}}

// Intersects reports whether any interval of ivs overlaps q.
func Intersects(ivs []Interval, q Interval) bool {
	for _, iv := range ivs {
		if iv.Start < q.End && q.Start < iv.End {
			return true
		}
	}

	return false
}

// Contains reports whether a single interval of ivs contains q entirely.
func Contains(ivs []Interval, q Interval) bool {
	for _, iv := range ivs {
		if iv.Start <= q.Start && q.End <= iv.End {
			return true
		}
	}

	return false
}

// Overlaps returns the pieces of q covered by ivs, clipped to q.
// ivs must be sorted and non-overlapping (see Merge).
func Overlaps(ivs []Interval, q Interval) []Interval {
	var out []Interval
	for _, iv := range ivs {
		if iv.Start >= q.End {
			break
		}
		s, e := max(iv.Start, q.Start), min(iv.End, q.End)
		if s < e {
			out = append(out, Interval{Start: s, End: e})
		}
	}

	return out
}

// Merge sorts intervals and fuses overlapping or adjacent ones.
// The input slice is reordered in place.
// Complexity: O(k log k).
func Merge(ivs []Interval) []Interval {
	if len(ivs) < 2 {
		return ivs
	}
	sort.Slice(ivs, func(i, j int) bool {
		if ivs[i].Start != ivs[j].Start {
			return ivs[i].Start < ivs[j].Start
		}
		return ivs[i].End < ivs[j].End
	})
	out := ivs[:1]
	for _, iv := range ivs[1:] {
		last := &out[len(out)-1]
		if iv.Start <= last.End {
			if iv.End > last.End {
				last.End = iv.End
			}
			continue
		}
		out = append(out, iv)
	}

	return out
}

// TotalLen sums the lengths of merged intervals.
func TotalLen(ivs []Interval) int {
	total := 0
	for _, iv := range ivs {
		total += iv.Len()
	}

	return total
}
