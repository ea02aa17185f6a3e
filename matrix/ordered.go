// SPDX-License-Identifier: MIT

package matrix

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/heringerp/panacus/core"
	"github.com/heringerp/panacus/threshold"
	log "github.com/sirupsen/logrus"
)

// OrderedGrowth computes the growth curve obtained by adding groups in the
// matrix's group order, rather than the expectation over random orders.
//
// res[j] counts the items covered by at least max(1, coverage) of the
// groups 0..j and by at least ceil((j+1)·quorum) of them. bp matrices
// weight each item by its node length minus uncovered bp.
//
// Errors:
//   - ErrNodeLensRequired for bp matrices when nodeLens does not cover every node.
//
// Complexity: O(Σ over qualifying items of (n - first group)).
func (m *CoverageMatrix) OrderedGrowth(coverage, quorum threshold.Threshold, nodeLens []uint32) ([]float64, error) {
	n := len(m.groups)
	res := make([]float64, n)
	if m.count == core.CountBp && len(nodeLens) <= m.ItemCount() {
		return nil, ErrNodeLensRequired
	}

	c := max(1, coverage.ToAbsolute(n))
	q := max(0, quorum.ToRelative(n))

	for id := 1; id <= m.ItemCount(); id++ {
		start, end := m.r[id], m.r[id+1]
		if end-start < c {
			continue
		}
		weight := 1.0
		if m.count == core.CountBp {
			covered, uncovered := int(nodeLens[id]), m.uncoveredBps[core.ItemID(id)]
			if uncovered > covered {
				log.Errorf("matrix: uncovered bp (%d) exceed node length (%d) of item %d", uncovered, covered, id)
				continue
			}
			weight = float64(covered - uncovered)
		}
		k := start
		for j := int(m.c[start]); j < n; j++ {
			if k < end-1 && int(m.c[k+1]) <= j {
				k++
			}
			seen := k - start + 1
			if seen >= c && seen >= int(math.Ceil(float64(j+1)*q)) {
				res[j] += weight
			}
		}
	}

	return res, nil
}

// WriteTSV writes the coverage table: one row per item, named by name, with
// either a single "total" column (number of covering groups) or one column
// per group. Group cells hold the occurrence count when values are stored,
// 1 otherwise; bp matrices multiply by the counted node length.
//
// Errors:
//   - ErrNodeLensRequired for bp matrices without node lengths.
//   - write errors of w.
func (m *CoverageMatrix) WriteTSV(w io.Writer, total bool, name func(core.ItemID) string, nodeLens []uint32) error {
	if m.count == core.CountBp && len(nodeLens) <= m.ItemCount() {
		return ErrNodeLensRequired
	}
	bw := bufio.NewWriter(w)
	header := "node"
	if m.count == core.CountEdge {
		header = "edge"
	}
	_, _ = bw.WriteString(header)
	if total {
		_, _ = bw.WriteString("\ttotal")
	} else {
		for _, g := range m.groups {
			_, _ = bw.WriteString("\t" + g)
		}
	}
	_ = bw.WriteByte('\n')

	for id := 1; id <= m.ItemCount(); id++ {
		start, end := m.r[id], m.r[id+1]
		bp := 1
		if m.count == core.CountBp {
			bp = int(nodeLens[id]) - m.uncoveredBps[core.ItemID(id)]
		}
		_, _ = bw.WriteString(name(core.ItemID(id)))
		if total {
			_, _ = bw.WriteString("\t" + strconv.Itoa(end-start) + "\n")
			continue
		}
		k := start
		for g := 0; g < len(m.groups); g++ {
			cell := 0
			if k < end && int(m.c[k]) == g {
				cell = bp
				if m.v != nil {
					cell *= int(m.v[k])
				}
				k++
			}
			_, _ = bw.WriteString("\t" + strconv.Itoa(cell))
		}
		_ = bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("matrix: write table: %w", err)
	}

	return nil
}
