// SPDX-License-Identifier: MIT

package mask

import (
	"bufio"
	"io"
	"strings"

	"github.com/heringerp/panacus/core"
)

// GroupEntry assigns the paths falling under Path to Group.
type GroupEntry struct {
	Path  core.PathSegment
	Group string
}

// ParseGroups reads a two-column, tab-separated group file: path name and
// group label. Empty lines and lines starting with '#' are skipped.
//
// Errors (all wrap ErrConfig):
//   - ErrMalformedGroups for rows without a second column or an empty label.
//   - ErrCoordsNotPermitted for path names carrying ":start-end".
//   - ErrDuplicatePath when a path name is listed twice.
func ParseGroups(r io.Reader) ([]GroupEntry, error) {
	var out []GroupEntry
	seen := make(map[string]int)
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" || strings.HasPrefix(text, "#") {
			continue
		}
		cols := strings.Split(text, "\t")
		if len(cols) < 2 || strings.TrimSpace(cols[1]) == "" {
			return nil, configErrorf(ErrMalformedGroups, "line %d: expected <path>\\t<group>, got %q", line, text)
		}
		seg := core.ParsePathSegment(strings.TrimSpace(cols[0]))
		if seg.HasCoords {
			return nil, configErrorf(ErrCoordsNotPermitted, "line %d: %s", line, seg)
		}
		key := seg.ID()
		if prev, dup := seen[key]; dup {
			return nil, configErrorf(ErrDuplicatePath, "line %d: %s already assigned on line %d", line, key, prev)
		}
		seen[key] = line
		out = append(out, GroupEntry{Path: seg, Group: strings.TrimSpace(cols[1])})
	}
	if err := sc.Err(); err != nil {
		return nil, configErrorf(ErrMalformedGroups, "read: %v", err)
	}

	return out, nil
}

// ParseOrder reads one group label per line. The first column of a
// tab-separated row is used; empty and '#' lines are skipped.
//
// Errors (wrap ErrConfig):
//   - ErrMalformedGroups when a label repeats.
func ParseOrder(r io.Reader) ([]string, error) {
	var out []string
	seen := make(map[string]struct{})
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		label := strings.TrimSpace(strings.SplitN(text, "\t", 2)[0])
		if _, dup := seen[label]; dup {
			return nil, configErrorf(ErrMalformedGroups, "line %d: group %q listed twice in order", line, label)
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	if err := sc.Err(); err != nil {
		return nil, configErrorf(ErrMalformedGroups, "read: %v", err)
	}

	return out, nil
}
