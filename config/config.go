// SPDX-License-Identifier: MIT

// Package config holds the YAML run configuration of a coverage run and
// turns it into the typed inputs of the mask, broker and growth stages.
//
// The panacus growth command reads only coverage, quorum and threads from
// a run file. The remaining keys serve library callers that build a
// broker.Broker themselves, through MaskParams and BrokerOptions:
//
//	run, err := config.Load("run.yaml")
//	opts, err := run.BrokerOptions()
//	b, err := broker.FromParams(g, "hprc", run.MaskParams(), opts...)
//
// Example file:
//
//	name: hprc-chr20
//	count: all
//	subset: chr20.bed
//	grouping: sample
//	coverage: 1,1,2
//	quorum: 0,0.5,0.9
//	threads: 8
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/heringerp/panacus/broker"
	"github.com/heringerp/panacus/core"
	"github.com/heringerp/panacus/mask"
	"github.com/heringerp/panacus/threshold"
	"gopkg.in/yaml.v3"
)

// Run is one coverage run. Empty strings mean "not given".
type Run struct {
	// Name overrides the default run name.
	Name string `yaml:"name"`

	// Count is "node", "bp", "edge" or "all".
	Count string `yaml:"count"`

	// Subset and Exclude are BED files (optionally gzip-compressed).
	Subset  string `yaml:"subset"`
	Exclude string `yaml:"exclude"`

	// Grouping is "path", "sample", "haplotype" or the path of a group file.
	Grouping string `yaml:"grouping"`

	// Order is an optional group order file.
	Order string `yaml:"order"`

	// Coverage and Quorum are comma-separated threshold lists.
	Coverage string `yaml:"coverage"`
	Quorum   string `yaml:"quorum"`

	Threads int `yaml:"threads"`
}

// Default returns node counts, coverage 1, quorum 0 and unbounded threads.
func Default() Run {
	return Run{Count: "node", Coverage: "1", Quorum: "0"}
}

// Load reads and validates a YAML file. Unset fields keep their defaults.
func Load(path string) (Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Run{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	return Decode(bytes.NewReader(data))
}

// Decode reads and validates YAML from r. Unknown keys are rejected.
func Decode(r io.Reader) (Run, error) {
	run := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&run); err != nil && !errors.Is(err, io.EOF) {
		return Run{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := run.Validate(); err != nil {
		return Run{}, err
	}

	return run, nil
}

// Validate checks every field that can be checked without touching the
// file system.
func (r Run) Validate() error {
	if _, err := r.CountType(); err != nil {
		return fmt.Errorf("%w: count: %w", ErrInvalid, err)
	}
	if _, err := r.Pairs(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if r.Threads < 0 {
		return fmt.Errorf("%w: threads %d must be >= 0", ErrInvalid, r.Threads)
	}

	return nil
}

// CountType parses Count.
func (r Run) CountType() (core.CountType, error) { return core.ParseCountType(r.Count) }

// Pairs zips Coverage and Quorum into threshold pairs.
func (r Run) Pairs() (threshold.Pairs, error) { return threshold.ParsePairs(r.Quorum, r.Coverage) }

// MaskParams returns the file-level mask inputs.
func (r Run) MaskParams() mask.Params {
	return mask.Params{
		Subset:   r.Subset,
		Exclude:  r.Exclude,
		Grouping: mask.ParseGrouping(r.Grouping),
		Order:    r.Order,
	}
}

// BrokerOptions translates the run into broker options.
func (r Run) BrokerOptions() ([]broker.Option, error) {
	count, err := r.CountType()
	if err != nil {
		return nil, fmt.Errorf("%w: count: %w", ErrInvalid, err)
	}
	opts := []broker.Option{broker.WithCounts(count), broker.WithThreads(max(r.Threads, 0))}
	if r.Name != "" {
		opts = append(opts, broker.WithName(r.Name))
	}

	return opts, nil
}
