// SPDX-License-Identifier: MIT
//
// File: path_segment.go
// Role: PanSN-style path names (sample#haplotype#seqid[:start-end]).
//
// Determinism:
//   - String() and ID() are pure; Less() is a total order used for the
//     canonical path order of the graph mask.

package core

import (
	"fmt"
	"strconv"
	"strings"
)

// PathSegment names a path (or a coordinate range of one).
//
// A name with two '#' separators is split into Sample, Haplotype and SeqID;
// with one separator into Sample and Haplotype; otherwise the whole name is
// the Sample. A trailing ":start-end" sets the coordinates.
type PathSegment struct {
	Sample    string
	Haplotype string
	SeqID     string

	// Start and End are meaningful only when HasCoords is set.
	Start     int
	End       int
	HasCoords bool
}

// ParsePathSegment parses a path name. Names without a well-formed
// coordinate suffix keep the suffix as part of the name.
//
// Complexity: O(len(name)).
func ParsePathSegment(name string) PathSegment {
	var seg PathSegment
	base := name

	if i := strings.LastIndexByte(name, ':'); i >= 0 {
		if start, end, ok := parseRange(name[i+1:]); ok {
			seg.Start, seg.End, seg.HasCoords = start, end, true
			base = name[:i]
		}
	}

	parts := strings.Split(base, "#")
	switch len(parts) {
	case 3:
		seg.Sample, seg.Haplotype, seg.SeqID = parts[0], parts[1], parts[2]
	case 2:
		seg.Sample, seg.Haplotype = parts[0], parts[1]
	default:
		seg.Sample = base
	}

	return seg
}

func parseRange(s string) (int, int, bool) {
	dash := strings.IndexByte(s, '-')
	if dash <= 0 || dash == len(s)-1 {
		return 0, 0, false
	}
	start, err := strconv.Atoi(s[:dash])
	if err != nil || start < 0 {
		return 0, 0, false
	}
	end, err := strconv.Atoi(s[dash+1:])
	if err != nil || end < start {
		return 0, 0, false
	}

	return start, end, true
}

// ID returns the path name without coordinates.
func (p PathSegment) ID() string {
	switch {
	case p.SeqID != "":
		return p.Sample + "#" + p.Haplotype + "#" + p.SeqID
	case p.Haplotype != "":
		return p.Sample + "#" + p.Haplotype
	default:
		return p.Sample
	}
}

// HaplotypeID returns "sample#haplotype", or the sample when no haplotype is set.
func (p PathSegment) HaplotypeID() string {
	if p.Haplotype == "" {
		return p.Sample
	}

	return p.Sample + "#" + p.Haplotype
}

// String renders the segment in the notation accepted by ParsePathSegment.
func (p PathSegment) String() string {
	if !p.HasCoords {
		return p.ID()
	}

	return fmt.Sprintf("%s:%d-%d", p.ID(), p.Start, p.End)
}

// Coords returns the coordinate range, or (0, MaxInt) for a whole path.
func (p PathSegment) Coords() (start, end int) {
	if !p.HasCoords {
		return 0, maxCoord
	}

	return p.Start, p.End
}

// ClearCoords returns a copy without coordinates.
func (p PathSegment) ClearCoords() PathSegment {
	p.Start, p.End, p.HasCoords = 0, 0, false

	return p
}

// IsPartOf reports whether p falls under other: sample must match, and
// haplotype / seqid must match whenever other sets them. Coordinates are
// ignored; range checks are the caller's business.
func (p PathSegment) IsPartOf(other PathSegment) bool {
	if p.Sample != other.Sample {
		return false
	}
	if other.Haplotype != "" && p.Haplotype != other.Haplotype {
		return false
	}
	if other.SeqID != "" && p.SeqID != other.SeqID {
		return false
	}

	return true
}

// Less orders segments by ID, then by coordinates.
func (p PathSegment) Less(q PathSegment) bool {
	if a, b := p.ID(), q.ID(); a != b {
		return a < b
	}
	ps, pe := p.Coords()
	qs, qe := q.Coords()
	if ps != qs {
		return ps < qs
	}

	return pe < qe
}

// maxCoord stands in for "until the end of the path".
const maxCoord = int(^uint(0) >> 1)
