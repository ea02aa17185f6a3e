// SPDX-License-Identifier: MIT
//
// File: tsv.go
// Role: tab-separated histogram and growth tables.
//
// Table layout (column-major, one column per histogram or growth curve):
//
//	# optional comment lines
//	panacus   hist   growth
//	count     node   node
//	coverage         1
//	quorum           0
//	0         12     NaN
//	1         5      5.666666666666667
//
// A single histogram may also be written in the short form
// "hist<TAB>count" followed by "k<TAB>value" rows.

package hist

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/heringerp/panacus/core"
)

// headerLabels are the first cells of the four header rows.
var headerLabels = []string{"panacus", "count", "coverage", "quorum"}

// Column is one column of a table: four header cells and its values.
type Column struct {
	Kind     string // "hist" or "growth"
	Count    core.CountType
	Coverage string
	Quorum   string
	Values   []float64
}

// HistColumn wraps h as a table column.
func HistColumn(h *Hist) Column {
	vals := make([]float64, len(h.Coverage))
	for i, v := range h.Coverage {
		vals[i] = float64(v)
	}

	return Column{Kind: "hist", Count: h.Count, Values: vals}
}

// WriteTable writes comment lines (each prefixed with "# " unless it
// already starts with '#'), the four header rows and the values, one row
// per index. Shorter columns leave empty cells.
func WriteTable(w io.Writer, comments []string, cols []Column) error {
	bw := bufio.NewWriter(w)
	for _, c := range comments {
		if !strings.HasPrefix(c, "#") {
			c = "# " + c
		}
		_, _ = bw.WriteString(c + "\n")
	}
	for r, label := range headerLabels {
		_, _ = bw.WriteString(label)
		for _, c := range cols {
			cell := ""
			switch r {
			case 0:
				cell = c.Kind
			case 1:
				cell = c.Count.String()
			case 2:
				cell = c.Coverage
			case 3:
				cell = c.Quorum
			}
			_, _ = bw.WriteString("\t" + cell)
		}
		_ = bw.WriteByte('\n')
	}
	rows := 0
	for _, c := range cols {
		rows = max(rows, len(c.Values))
	}
	for i := 0; i < rows; i++ {
		_, _ = bw.WriteString(strconv.Itoa(i))
		for _, c := range cols {
			cell := ""
			if i < len(c.Values) {
				cell = formatValue(c.Values[i])
			}
			_, _ = bw.WriteString("\t" + cell)
		}
		_ = bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("hist: write table: %w", err)
	}

	return nil
}

// WriteHists writes histograms as a table.
func WriteHists(w io.Writer, comments []string, hists []*Hist) error {
	cols := make([]Column, len(hists))
	for i, h := range hists {
		cols[i] = HistColumn(h)
	}

	return WriteTable(w, comments, cols)
}

// WriteTSV writes h in the short single-histogram form.
func (h *Hist) WriteTSV(w io.Writer) error {
	bw := bufio.NewWriter(w)
	_, _ = fmt.Fprintf(bw, "hist\t%s\n", h.Count)
	for i, v := range h.Coverage {
		_, _ = fmt.Fprintf(bw, "%d\t%d\n", i, v)
	}

	return bw.Flush()
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseHists reads the histogram columns of a table written by WriteTable
// (other columns are ignored), or a single histogram in short form.
// Leading '#' lines are returned as comments.
//
// Errors:
//   - ErrMalformedTable for missing headers, unknown count types,
//     non-integer histogram cells, an index column that does not count
//     0, 1, 2, ... or an empty hist cell followed by a value.
func ParseHists(r io.Reader) ([]*Hist, []string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	var comments []string
	var lines [][]string
	for sc.Scan() {
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.HasPrefix(text, "#") && len(lines) == 0 {
			comments = append(comments, text)
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		lines = append(lines, strings.Split(text, "\t"))
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedTable, err)
	}
	if len(lines) == 0 {
		return nil, comments, fmt.Errorf("%w: no data", ErrMalformedTable)
	}
	if lines[0][0] == "hist" {
		h, err := parseShort(lines)
		if err != nil {
			return nil, nil, err
		}
		return []*Hist{h}, comments, nil
	}

	hists, err := parseTable(lines)
	if err != nil {
		return nil, nil, err
	}

	return hists, comments, nil
}

func parseShort(lines [][]string) (*Hist, error) {
	if len(lines[0]) < 2 {
		return nil, fmt.Errorf("%w: header %q lacks a count type", ErrMalformedTable, strings.Join(lines[0], "\t"))
	}
	count, err := core.ParseCountType(lines[0][1])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedTable, err)
	}
	h := &Hist{Count: count}
	for i, row := range lines[1:] {
		if len(row) < 2 {
			return nil, fmt.Errorf("%w: row %d has %d columns", ErrMalformedTable, i+1, len(row))
		}
		if err := checkIndex(row[0], len(h.Coverage)); err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrMalformedTable, i+1, err)
		}
		v, err := parseCell(row[1])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrMalformedTable, i+1, err)
		}
		h.Coverage = append(h.Coverage, v)
	}

	return h, nil
}

func parseTable(lines [][]string) ([]*Hist, error) {
	if len(lines) < len(headerLabels) {
		return nil, fmt.Errorf("%w: %d header rows, want %d", ErrMalformedTable, len(lines), len(headerLabels))
	}
	for r, label := range headerLabels {
		if lines[r][0] != label {
			return nil, fmt.Errorf("%w: header row %d starts with %q, want %q", ErrMalformedTable, r+1, lines[r][0], label)
		}
	}

	var hists []*Hist
	var colIdx []int
	for j := 1; j < len(lines[0]); j++ {
		if lines[0][j] != "hist" {
			continue
		}
		if j >= len(lines[1]) {
			return nil, fmt.Errorf("%w: column %d has no count type", ErrMalformedTable, j)
		}
		count, err := core.ParseCountType(lines[1][j])
		if err != nil {
			return nil, fmt.Errorf("%w: column %d: %w", ErrMalformedTable, j, err)
		}
		hists = append(hists, &Hist{Count: count})
		colIdx = append(colIdx, j)
	}
	if len(hists) == 0 {
		return nil, fmt.Errorf("%w: no hist column", ErrMalformedTable)
	}

	ended := make([]bool, len(hists))
	for r, row := range lines[len(headerLabels):] {
		if err := checkIndex(row[0], r); err != nil {
			return nil, fmt.Errorf("%w: data row %d: %v", ErrMalformedTable, r, err)
		}
		for k, j := range colIdx {
			if j >= len(row) || row[j] == "" {
				ended[k] = true
				continue
			}
			if ended[k] {
				return nil, fmt.Errorf("%w: data row %d column %d follows an empty cell", ErrMalformedTable, r, j)
			}
			v, err := parseCell(row[j])
			if err != nil {
				return nil, fmt.Errorf("%w: data row %d column %d: %v", ErrMalformedTable, r, j, err)
			}
			hists[k].Coverage = append(hists[k].Coverage, v)
		}
	}

	return hists, nil
}

// checkIndex requires the index column to count rows from 0 without gaps.
func checkIndex(s string, want int) error {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || i != want {
		return fmt.Errorf("index %q, want %d", s, want)
	}

	return nil
}

func parseCell(s string) (uint64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f < 0 || f != math.Trunc(f) {
		return 0, fmt.Errorf("%q is not a non-negative integer", s)
	}

	return uint64(f), nil
}
