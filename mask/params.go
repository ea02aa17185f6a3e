// SPDX-License-Identifier: MIT

package mask

import "strings"

// GroupMode selects how paths are aggregated into groups.
type GroupMode int

const (
	// GroupByPath makes every path (without coordinates) its own group.
	GroupByPath GroupMode = iota

	// GroupBySample groups paths by the sample part of their name.
	GroupBySample

	// GroupByHaplotype groups paths by "sample#haplotype".
	GroupByHaplotype

	// GroupByFile reads the assignment from a group file.
	GroupByFile
)

// String returns the configuration keyword of the mode.
func (m GroupMode) String() string {
	switch m {
	case GroupBySample:
		return "sample"
	case GroupByHaplotype:
		return "haplotype"
	case GroupByFile:
		return "file"
	default:
		return "path"
	}
}

// Grouping is a grouping mode plus, for GroupByFile, the file to read.
type Grouping struct {
	Mode GroupMode
	File string
}

// ParseGrouping maps configuration text to a Grouping: "", "path",
// "sample" and "haplotype" select the built-in modes; anything else is
// taken as the path of a group file.
func ParseGrouping(s string) Grouping {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "path":
		return Grouping{Mode: GroupByPath}
	case "sample":
		return Grouping{Mode: GroupBySample}
	case "haplotype":
		return Grouping{Mode: GroupByHaplotype}
	default:
		return Grouping{Mode: GroupByFile, File: strings.TrimSpace(s)}
	}
}

// validate checks the mode/file combination.
func (g Grouping) validate() error {
	switch {
	case g.Mode == GroupByFile && g.File == "":
		return configErrorf(ErrBadGrouping, "group file mode without a file")
	case g.Mode != GroupByFile && g.File != "":
		return configErrorf(ErrBadGrouping, "group file %q given together with %s grouping", g.File, g.Mode)
	}

	return nil
}

// Params are the file-level inputs of a mask: optional BED subset and
// exclude files, the grouping and an optional group order file.
// Empty strings mean "not given".
type Params struct {
	Subset   string
	Exclude  string
	Grouping Grouping
	Order    string
}
