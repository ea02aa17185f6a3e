// SPDX-License-Identifier: MIT

// Package threshold models coverage and quorum thresholds: a value that is
// either an absolute count or a fraction of a known total.
//
// Thresholds are immutable values. They are created from CLI/config text
// (Parse, ParseList, ParsePairs) and consumed by the growth algorithms,
// which resolve them against the number of groups with ToAbsolute and
// ToRelative.
package threshold

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind tags the representation of a Threshold.
type Kind int

const (
	// Absolute thresholds hold a non-negative count.
	Absolute Kind = iota

	// Relative thresholds hold a fraction in [0,1].
	Relative
)

const panicRelativeRange = "threshold: Rel: fraction must lie in [0,1]"

// Threshold is either Abs(n) or Rel(f).
// The zero value is Abs(0).
type Threshold struct {
	kind Kind
	abs  int
	rel  float64
}

// Abs returns an absolute threshold. Negative counts clamp to 0.
func Abs(n int) Threshold {
	if n < 0 {
		n = 0
	}

	return Threshold{kind: Absolute, abs: n}
}

// Rel returns a relative threshold. It panics when f is NaN or outside
// [0,1]; parsed input goes through Parse, which reports an error instead.
func Rel(f float64) Threshold {
	if math.IsNaN(f) || f < 0 || f > 1 {
		panic(panicRelativeRange)
	}

	return Threshold{kind: Relative, rel: f}
}

// Kind reports the representation.
func (t Threshold) Kind() Kind { return t.kind }

// ToAbsolute resolves the threshold against total:
// Abs(n) → n, Rel(f) → ceil(f·total).
func (t Threshold) ToAbsolute(total int) int {
	if t.kind == Absolute {
		return t.abs
	}

	return int(math.Ceil(t.rel * float64(total)))
}

// ToRelative resolves the threshold against total:
// Rel(f) → f, Abs(n) → n/total (0 when total is 0).
func (t Threshold) ToRelative(total int) float64 {
	if t.kind == Relative {
		return t.rel
	}
	if total == 0 {
		return 0
	}

	return float64(t.abs) / float64(total)
}

// String renders the threshold as it would be written on the command line.
func (t Threshold) String() string {
	if t.kind == Absolute {
		return strconv.Itoa(t.abs)
	}

	return strconv.FormatFloat(t.rel, 'g', -1, 64)
}

// Require restricts which representation Parse accepts.
type Require int

const (
	// RequireAbsolute accepts only non-negative integers.
	RequireAbsolute Require = iota

	// RequireRelative accepts only floats in [0,1].
	RequireRelative

	// RequireEither reads integers as absolute and everything else as relative.
	RequireEither
)

// Parse parses a single threshold.
//
// Errors:
//   - ErrInvalidThreshold for text that is not a number of the required
//     kind, or a relative value outside [0,1].
func Parse(s string, req Require) (Threshold, error) {
	s = strings.TrimSpace(s)
	switch req {
	case RequireAbsolute:
		return parseAbsolute(s)
	case RequireRelative:
		return parseRelative(s)
	default:
		if t, err := parseAbsolute(s); err == nil {
			return t, nil
		}

		return parseRelative(s)
	}
}

func parseAbsolute(s string) (Threshold, error) {
	n, err := strconv.ParseUint(s, 10, 0)
	if err != nil {
		return Threshold{}, fmt.Errorf("%q is required to be a non-negative integer: %w", s, ErrInvalidThreshold)
	}

	return Abs(int(n)), nil
}

func parseRelative(s string) (Threshold, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Threshold{}, fmt.Errorf("%q is required to be a float: %w", s, ErrInvalidThreshold)
	}
	if math.IsNaN(f) || f < 0 || f > 1 {
		return Threshold{}, fmt.Errorf("relative threshold %q must lie within [0,1]: %w", s, ErrInvalidThreshold)
	}

	return Rel(f), nil
}

// ParseList parses a comma-separated list, e.g. "0,0.5,1".
// Errors carry the 1-based position of the offending element.
func ParseList(s string, req Require) ([]Threshold, error) {
	if strings.TrimSpace(s) == "" {
		return nil, ErrEmptyList
	}
	fields := strings.Split(s, ",")
	out := make([]Threshold, 0, len(fields))
	for i, f := range fields {
		t, err := Parse(f, req)
		if err != nil {
			return nil, fmt.Errorf("element %d of %q: %w", i+1, s, err)
		}
		out = append(out, t)
	}

	return out, nil
}
