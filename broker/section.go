// SPDX-License-Identifier: MIT

package broker

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/heringerp/panacus/core"
	"github.com/heringerp/panacus/hist"
	"github.com/heringerp/panacus/threshold"
	log "github.com/sirupsen/logrus"
)

// Section is a named set of groups, added to a section growth curve as one
// block.
type Section struct {
	Name   string
	Groups []int
}

// SectionStart marks the curve index at which a section begins.
type SectionStart struct {
	Name  string
	Index int
}

// SectionCurve is a growth curve over successive sections.
type SectionCurve struct {
	Count  core.CountType
	Values []float64
	Starts []SectionStart
}

// ParseSections reads "group section" rows (whitespace separated) and
// groups them by section in first-seen order. groups lists the run's group
// labels in id order. Blank lines are skipped.
//
// Errors:
//   - ErrMalformedSections for rows without exactly two columns.
//   - ErrUnknownGroup for group names not in groups.
//   - ErrNoSections when r holds no rows.
func ParseSections(r io.Reader, groups []string) ([]Section, error) {
	ids := make(map[string]int, len(groups))
	for i, g := range groups {
		ids[g] = i
	}
	index := make(map[string]int)
	var out []Section

	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: %d columns: %w", line, len(fields), ErrMalformedSections)
		}
		g, ok := ids[fields[0]]
		if !ok {
			return nil, fmt.Errorf("line %d: group %q: %w", line, fields[0], ErrUnknownGroup)
		}
		k, ok := index[fields[1]]
		if !ok {
			k = len(out)
			index[fields[1]] = k
			out = append(out, Section{Name: fields[1]})
		}
		out[k].Groups = append(out[k].Groups, g)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("broker: read sections: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrNoSections
	}

	return out, nil
}

// SectionGrowth grows the pangenome section by section. The first section
// contributes its plain growth curve. Every later section contributes the
// growth of only the items no earlier section covered, shifted up by the
// last value reached so far. Requires a coverage matrix.
//
// Errors:
//   - ErrNoSections, ErrNoCoverageMatrix.
//   - matrix.ErrOutOfRange for unknown group ids.
func (b *Broker) SectionGrowth(sections []Section) (*SectionCurve, error) {
	if len(sections) == 0 {
		return nil, ErrNoSections
	}
	if b.matrix == nil {
		return nil, ErrNoCoverageMatrix
	}
	one, none := threshold.Abs(1), threshold.Rel(0)

	first := sections[0]
	a, nonZero, err := b.matrix.ToAbacusAllItems(first.Groups)
	if err != nil {
		return nil, fmt.Errorf("section %q: %w", first.Name, err)
	}
	h, err := hist.FromAbacus(a, b.nodeLens)
	if err != nil {
		return nil, err
	}
	curve := &SectionCurve{
		Count:  b.matrix.Count(),
		Values: h.CalcGrowth(one, none),
		Starts: []SectionStart{{Name: first.Name, Index: 0}},
	}
	seen := make(map[core.ItemID]bool, len(nonZero))
	for _, id := range nonZero {
		seen[id] = true
	}

	for _, s := range sections[1:] {
		log.Infof("broker: handling section %s", s.Name)
		items, err := b.matrix.ItemsOfGroups(s.Groups)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", s.Name, err)
		}
		fresh := items[:0:0]
		for _, id := range items {
			if !seen[id] {
				fresh = append(fresh, id)
			}
		}
		log.Debugf("broker: section %s covers %d items, %d unseen", s.Name, len(items), len(fresh))
		a, nonZero, err := b.matrix.ToAbacus(fresh, s.Groups)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", s.Name, err)
		}
		h, err := hist.FromAbacus(a, b.nodeLens)
		if err != nil {
			return nil, err
		}
		offset := 0.0
		if n := len(curve.Values); n > 0 {
			offset = curve.Values[n-1]
		}
		curve.Starts = append(curve.Starts, SectionStart{Name: s.Name, Index: len(curve.Values)})
		for _, v := range h.CalcGrowth(one, none) {
			curve.Values = append(curve.Values, v+offset)
		}
		for _, id := range nonZero {
			seen[id] = true
		}
	}

	return curve, nil
}

// WriteTSV writes the curve as a section growth table: four header rows,
// a row 0 holding the first section with value 0, then one row per curve
// point labelled with the section it belongs to.
func (c *SectionCurve) WriteTSV(w io.Writer, comments []string) error {
	bw := bufio.NewWriter(w)
	for _, line := range comments {
		if !strings.HasPrefix(line, "#") {
			line = "# " + line
		}
		_, _ = bw.WriteString(line + "\n")
	}
	_, _ = fmt.Fprintf(bw, "panacus\tsection-growth\ncount\t%s\ncoverage\t1\nquorum\t0\n", c.Count)
	if len(c.Starts) == 0 {
		return bw.Flush()
	}
	k := 0
	_, _ = fmt.Fprintf(bw, "0\t%s\t0\n", c.Starts[0].Name)
	for i, v := range c.Values {
		for k+1 < len(c.Starts) && i >= c.Starts[k+1].Index {
			k++
		}
		_, _ = bw.WriteString(strconv.Itoa(i+1) + "\t" + c.Starts[k].Name + "\t" + strconv.FormatFloat(v, 'g', -1, 64) + "\n")
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("broker: write section table: %w", err)
	}

	return nil
}
