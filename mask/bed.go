// SPDX-License-Identifier: MIT

package mask

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/heringerp/panacus/core"
	log "github.com/sirupsen/logrus"
)

// ParseBED reads path coordinates from BED-like input.
//
// Accepted rows (tab-separated):
//   - 1 column:  a path name, optionally with a ":start-end" suffix.
//   - 3 columns: path name, start, end.
//   - 12 columns (full BED): one segment per block; block starts are
//     relative to the row start, block sizes give the block lengths.
//
// Leading "browser", "track" and "#" lines are skipped. A row with exactly
// 2 columns, or non-numeric coordinates, fails with ErrMalformedBED.
//
// Complexity: O(size of input).
func ParseBED(r io.Reader) ([]core.PathSegment, error) {
	var out []core.PathSegment
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	isHeader, isFullBED := true, false
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		cols := strings.Split(text, "\t")
		name := cols[0]
		if isHeader && (strings.HasPrefix(name, "browser ") || strings.HasPrefix(name, "track ") || strings.HasPrefix(name, "#")) {
			continue
		}
		isHeader = false

		seg := core.ParsePathSegment(name)
		switch {
		case len(cols) == 1:
			out = append(out, seg)
			continue
		case len(cols) == 2:
			return nil, configErrorf(ErrMalformedBED, "line %d: row must have either 1, 3, or 12 columns, but has 2", line)
		}

		start, err1 := strconv.Atoi(strings.TrimSpace(cols[1]))
		end, err2 := strconv.Atoi(strings.TrimSpace(cols[2]))
		if err1 != nil || err2 != nil || start < 0 || end < start {
			return nil, configErrorf(ErrMalformedBED, "line %d: invalid coordinates %q-%q", line, cols[1], cols[2])
		}
		seg.Start, seg.End, seg.HasCoords = start, end, true

		if len(cols) < 12 {
			if isFullBED {
				return nil, configErrorf(ErrMalformedBED, "line %d: expected 12 columns like the preceding rows", line)
			}
			out = append(out, seg)
			continue
		}
		if !isFullBED {
			log.Debugf("assuming from line %d on that input is in full BED (12 columns) format", line)
			isFullBED = true
		}
		blocks, err := parseBlocks(cols[9], cols[10], cols[11])
		if err != nil {
			return nil, configErrorf(ErrMalformedBED, "line %d: %v", line, err)
		}
		for _, b := range blocks {
			tmp := seg
			tmp.Start = seg.Start + b.Start
			tmp.End = seg.Start + b.End
			out = append(out, tmp)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, configErrorf(ErrMalformedBED, "read: %v", err)
	}

	return out, nil
}

// parseBlocks decodes blockCount, blockSizes and blockStarts of a BED12 row
// into row-relative intervals.
func parseBlocks(countCol, sizesCol, startsCol string) ([]Interval, error) {
	count, err := strconv.Atoi(strings.TrimSpace(countCol))
	if err != nil || count < 0 {
		return nil, errBlock("blockCount", countCol)
	}
	sizes := strings.Split(strings.TrimSuffix(strings.TrimSpace(sizesCol), ","), ",")
	starts := strings.Split(strings.TrimSuffix(strings.TrimSpace(startsCol), ","), ",")
	if len(sizes) < count || len(starts) < count {
		return nil, errBlock("block lists shorter than blockCount", countCol)
	}
	out := make([]Interval, 0, count)
	for i := 0; i < count; i++ {
		size, err := strconv.Atoi(strings.TrimSpace(sizes[i]))
		if err != nil || size < 0 {
			return nil, errBlock("blockSizes", sizes[i])
		}
		start, err := strconv.Atoi(strings.TrimSpace(starts[i]))
		if err != nil || start < 0 {
			return nil, errBlock("blockStarts", starts[i])
		}
		out = append(out, Interval{Start: start, End: start + size})
	}

	return out, nil
}

type blockError struct{ field, value string }

func (e blockError) Error() string { return "invalid " + e.field + " " + strconv.Quote(e.value) }

func errBlock(field, value string) error { return blockError{field: field, value: value} }
