// SPDX-License-Identifier: MIT

package hist

import (
	"fmt"

	"github.com/heringerp/panacus/abacus"
	"github.com/heringerp/panacus/core"
	log "github.com/sirupsen/logrus"
)

// Hist is a coverage histogram: Coverage[k] is the number of items (or, for
// bp counts, base pairs) covered by exactly k groups, k = 0..n.
// Coverage[0] carries no information for the growth estimators.
type Hist struct {
	Count    core.CountType
	Coverage []uint64
}

// N returns the number of groups the histogram ranges over.
func (h *Hist) N() int { return max(len(h.Coverage)-1, 0) }

// FromAbacus tallies every item of a (except the reserved null item).
// Items whose coverage exceeds the group count are logged and skipped.
//
// Errors:
//   - ErrNilAbacus, ErrCountType.
//   - ErrNodeLensRequired for bp abaci when nodeLens is too short.
//
// Complexity: O(items).
func FromAbacus(a *abacus.AbacusByTotal, nodeLens []uint32) (*Hist, error) {
	if a == nil {
		return nil, ErrNilAbacus
	}
	items := make([]core.ItemID, 0, a.ItemCount())
	for id := 1; id < len(a.Countable); id++ {
		items = append(items, core.ItemID(id))
	}

	return tally(a, nodeLens, items, a.UncoveredBps)
}

// FromAbacusForWindow tallies only the given items, so that per-window
// analyses can reuse one abacus. For bp counts, uncovered overrides the
// abacus's uncovered bp map when non-nil.
func FromAbacusForWindow(a *abacus.AbacusByTotal, nodeLens []uint32, items []core.ItemID, uncovered map[core.ItemID]int) (*Hist, error) {
	if a == nil {
		return nil, ErrNilAbacus
	}
	if uncovered == nil {
		uncovered = a.UncoveredBps
	}

	return tally(a, nodeLens, items, uncovered)
}

func tally(a *abacus.AbacusByTotal, nodeLens []uint32, items []core.ItemID, uncovered map[core.ItemID]int) (*Hist, error) {
	if err := checkCount(a.Count, nodeLens, len(a.Countable)); err != nil {
		return nil, err
	}
	h := &Hist{Count: a.Count, Coverage: make([]uint64, a.GroupCount()+1)}
	for _, id := range items {
		if id == 0 || int(id) >= len(a.Countable) {
			log.Warnf("hist: item %d outside abacus of %d items, it'll be ignored", id, a.ItemCount())
			continue
		}
		cov := int(a.Countable[id])
		if cov >= len(h.Coverage) {
			log.Warnf("hist: coverage %d of item %d exceeds the number of groups %d, it'll be ignored", cov, id, a.GroupCount())
			continue
		}
		if a.Count != core.CountBp {
			h.Coverage[cov]++
			continue
		}
		l, u := int(nodeLens[id]), uncovered[id]
		if u > l {
			log.Warnf("hist: uncovered bp (%d) of node %d exceed its length (%d), it'll be ignored", u, id, l)
			continue
		}
		h.Coverage[cov] += uint64(l - u)
	}

	return h, nil
}

func checkCount(count core.CountType, nodeLens []uint32, items int) error {
	switch count {
	case core.CountNode, core.CountEdge:
		return nil
	case core.CountBp:
		if len(nodeLens) < items {
			return fmt.Errorf("%d lengths for %d items: %w", len(nodeLens), items-1, ErrNodeLensRequired)
		}
		return nil
	default:
		return ErrCountType
	}
}
