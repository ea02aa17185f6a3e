// SPDX-License-Identifier: MIT
//
// File: broker.go
// Role: Broker, the run-level owner of mask, abaci, coverage matrix and the
// histogram/growth queries answered from them.

package broker

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/heringerp/panacus/abacus"
	"github.com/heringerp/panacus/core"
	"github.com/heringerp/panacus/hist"
	"github.com/heringerp/panacus/mask"
	"github.com/heringerp/panacus/matrix"
	"github.com/heringerp/panacus/threshold"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Graph is everything a run reads from the variation graph.
// *core.Graph satisfies it.
type Graph interface {
	abacus.Graph
	mask.PathLister
	NodeLens() []uint32
	NodeName(id core.ItemID) string
	Edges() []core.Edge
}

// Broker builds, once per run, the total abaci of the requested count types
// and optionally one coverage matrix, then answers histogram and growth
// queries from them. It is immutable after New and safe for concurrent use.
type Broker struct {
	name     string
	graph    Graph
	mask     *mask.GraphMask
	nodeLens []uint32
	counts   []core.CountType
	abaci    map[core.CountType]*abacus.AbacusByTotal
	matrix   *matrix.CoverageMatrix
	threads  int
}

// New builds the abaci (and the coverage matrix, if requested) of g under m.
// Count types are processed concurrently; the matrix reuses the tables of
// its count type when that type is also requested as an abacus.
//
// Errors:
//   - ErrNilGraph when g or m is nil.
//   - errors of abacus.BuildTables, abacus.FromTables and matrix.New.
func New(g Graph, m *mask.GraphMask, opts ...Option) (*Broker, error) {
	if g == nil || m == nil {
		return nil, ErrNilGraph
	}
	o := gatherOptions(opts...)
	b := &Broker{
		name:     o.name,
		graph:    g,
		mask:     m,
		nodeLens: g.NodeLens(),
		counts:   o.counts,
		abaci:    make(map[core.CountType]*abacus.AbacusByTotal, len(o.counts)),
		threads:  o.threads,
	}
	log.Infof("broker: calculating abaci for count types %v over %d groups", o.counts, m.GroupCount())

	matrixCount := -1
	abaci := make([]*abacus.AbacusByTotal, len(o.counts))
	eg := new(errgroup.Group)
	if o.threads > 0 {
		eg.SetLimit(o.threads)
	}
	for i, count := range o.counts {
		buildMatrix := o.withMatrix && count == o.matrixCount
		if buildMatrix {
			matrixCount = i
		}
		eg.Go(func() error {
			tab, err := abacus.BuildTables(g, m, count)
			if err != nil {
				return fmt.Errorf("%s tables: %w", count, err)
			}
			if abaci[i], err = abacus.FromTables(tab); err != nil {
				return err
			}
			if buildMatrix {
				b.matrix, err = matrix.New(tab, matrix.WithValues(o.values))
			}
			return err
		})
	}
	if o.withMatrix && matrixCount < 0 {
		eg.Go(func() error {
			tab, err := abacus.BuildTables(g, m, o.matrixCount)
			if err != nil {
				return fmt.Errorf("%s tables: %w", o.matrixCount, err)
			}
			b.matrix, err = matrix.New(tab, matrix.WithValues(o.values))
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	for i, count := range o.counts {
		b.abaci[count] = abaci[i]
	}

	return b, nil
}

// FromParams builds the mask from file parameters and then the broker.
// Without WithName the run is named after graphName and p.
func FromParams(g Graph, graphName string, p mask.Params, opts ...Option) (*Broker, error) {
	m, err := mask.FromParams(p, g)
	if err != nil {
		return nil, err
	}
	opts = append([]Option{WithName(DefaultRunName(graphName, p))}, opts...)

	return New(g, m, opts...)
}

// DefaultRunName is "<graph>-<subset>", extended by "-<grouping>" when a
// grouping other than by path is in effect.
func DefaultRunName(graphName string, p mask.Params) string {
	switch p.Grouping.Mode {
	case mask.GroupByPath:
		return graphName + "-" + p.Subset
	case mask.GroupByFile:
		return graphName + "-" + p.Subset + "-" + p.Grouping.File
	default:
		return graphName + "-" + p.Subset + "-" + p.Grouping.Mode.String()
	}
}

var runIDReplacer = strings.NewReplacer(" ", "-", "_", "-", "#", "-", "/", "-", `"`, "-")

// RunName returns the configured run name.
func (b *Broker) RunName() string { return b.name }

// RunID returns the run name lower-cased, with blanks, underscores, '#',
// '/' and '"' replaced by '-'.
func (b *Broker) RunID() string { return runIDReplacer.Replace(strings.ToLower(b.name)) }

// Mask returns the mask of the run.
func (b *Broker) Mask() *mask.GraphMask { return b.mask }

// Groups returns the group labels in group id order.
func (b *Broker) Groups() []string { return b.mask.Groups() }

// Counts returns the count types with a total abacus.
func (b *Broker) Counts() []core.CountType { return append([]core.CountType(nil), b.counts...) }

// NodeLens returns the node length table of the graph.
func (b *Broker) NodeLens() []uint32 { return b.nodeLens }

// Abacus returns the total abacus of count.
func (b *Broker) Abacus(count core.CountType) (*abacus.AbacusByTotal, error) {
	a, ok := b.abaci[count]
	if !ok {
		return nil, fmt.Errorf("%s: %w", count, ErrCountNotBuilt)
	}

	return a, nil
}

// CoverageMatrix returns the coverage matrix.
func (b *Broker) CoverageMatrix() (*matrix.CoverageMatrix, error) {
	if b.matrix == nil {
		return nil, ErrNoCoverageMatrix
	}

	return b.matrix, nil
}

// Hist returns the coverage histogram of count.
func (b *Broker) Hist(count core.CountType) (*hist.Hist, error) {
	a, err := b.Abacus(count)
	if err != nil {
		return nil, err
	}

	return hist.FromAbacus(a, b.nodeLens)
}

// Hists returns one histogram per built count type, in Counts order.
func (b *Broker) Hists() ([]*hist.Hist, error) {
	out := make([]*hist.Hist, len(b.counts))
	for i, c := range b.counts {
		h, err := b.Hist(c)
		if err != nil {
			return nil, err
		}
		out[i] = h
	}

	return out, nil
}

// HistForSubset tallies only items. For bp counts, a non-nil uncovered map
// replaces the run's uncovered bp.
func (b *Broker) HistForSubset(count core.CountType, items []core.ItemID, uncovered map[core.ItemID]int) (*hist.Hist, error) {
	a, err := b.Abacus(count)
	if err != nil {
		return nil, err
	}

	return hist.FromAbacusForWindow(a, b.nodeLens, items, uncovered)
}

// GrowthForSubset is the union growth curve of HistForSubset with an
// absolute coverage threshold.
func (b *Broker) GrowthForSubset(count core.CountType, items []core.ItemID, uncovered map[core.ItemID]int, coverage int) ([]float64, error) {
	h, err := b.HistForSubset(count, items, uncovered)
	if err != nil {
		return nil, err
	}

	return h.GrowthUnion(threshold.Abs(coverage)), nil
}

// HistForGroupSubset restricts the coverage matrix to groups and tallies
// the result, as if the run contained only the paths of those groups.
//
// Errors:
//   - ErrNoCoverageMatrix without a matrix.
//   - matrix.ErrOutOfRange for unknown group ids.
func (b *Broker) HistForGroupSubset(groups []int) (*hist.Hist, error) {
	if b.matrix == nil {
		return nil, ErrNoCoverageMatrix
	}
	a, _, err := b.matrix.ToAbacusAllItems(groups)
	if err != nil {
		return nil, err
	}

	return hist.FromAbacus(a, b.nodeLens)
}

// Window is a subset of items, with an optional uncovered bp override.
type Window struct {
	Name      string
	Items     []core.ItemID
	Uncovered map[core.ItemID]int
}

// WindowHists computes the histogram of every window concurrently. Results
// keep the order of windows.
//
// Errors:
//   - ErrCountNotBuilt, errors of hist.FromAbacusForWindow, ctx.Err().
func (b *Broker) WindowHists(ctx context.Context, count core.CountType, windows []Window) ([]*hist.Hist, error) {
	a, err := b.Abacus(count)
	if err != nil {
		return nil, err
	}
	out := make([]*hist.Hist, len(windows))
	eg, ctx := errgroup.WithContext(ctx)
	if b.threads > 0 {
		eg.SetLimit(b.threads)
	}
	for i, w := range windows {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			log.Debugf("broker: window %q over %d items", w.Name, len(w.Items))
			h, err := hist.FromAbacusForWindow(a, b.nodeLens, w.Items, w.Uncovered)
			if err != nil {
				return fmt.Errorf("window %q: %w", w.Name, err)
			}
			out[i] = h
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// NodeCoverages returns the number of groups covering each node, indexed
// by core.ItemID. Requires a node coverage matrix.
func (b *Broker) NodeCoverages() ([]int, error) {
	if b.matrix == nil {
		return nil, ErrNoCoverageMatrix
	}

	return b.matrix.NodeCoverages()
}

// OrderedGrowth computes one ordered growth curve per pair, following the
// group order of the run.
func (b *Broker) OrderedGrowth(pairs threshold.Pairs) ([][]float64, error) {
	if b.matrix == nil {
		return nil, ErrNoCoverageMatrix
	}
	out := make([][]float64, len(pairs))
	for i, p := range pairs {
		g, err := b.matrix.OrderedGrowth(p.Coverage, p.Quorum, b.nodeLens)
		if err != nil {
			return nil, err
		}
		out[i] = g
	}

	return out, nil
}

// WriteAbacusByGroup writes the coverage matrix as a table, either with a
// single total column or one column per group. Nodes are named by their
// graph name, edges as "<ori><from><ori><to>".
func (b *Broker) WriteAbacusByGroup(w io.Writer, total bool) error {
	if b.matrix == nil {
		return ErrNoCoverageMatrix
	}
	name := b.graph.NodeName
	if b.matrix.Count() == core.CountEdge {
		edges := b.graph.Edges()
		name = func(id core.ItemID) string {
			e := edges[id]
			return e.FromOri.String() + b.graph.NodeName(e.From) + e.ToOri.String() + b.graph.NodeName(e.To)
		}
	}

	return b.matrix.WriteTSV(w, total, name, b.nodeLens)
}
