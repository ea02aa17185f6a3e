// SPDX-License-Identifier: MIT

package hist

import (
	"fmt"
	"maps"

	"github.com/heringerp/panacus/abacus"
	"github.com/heringerp/panacus/core"
	log "github.com/sirupsen/logrus"
)

// Hist3D is a joint coverage histogram: Coverage[a][b] counts the items
// covered by a groups of partition A and b groups of partition B.
type Hist3D struct {
	Count    core.CountType
	Coverage [][]uint64
}

// FromAbaci tallies two abaci over the same item universe into a joint
// histogram. For bp counts the uncovered bp of each item are moved from its
// cell into cell [0][0].
//
// Errors:
//   - ErrInvariantViolation when count types, item counts or uncovered bp
//     maps differ.
//   - ErrNodeLensRequired, ErrCountType, ErrNilAbacus.
//
// Complexity: O(items + |A|·|B|).
func FromAbaci(a, b *abacus.AbacusByTotal, nodeLens []uint32) (*Hist3D, error) {
	if a == nil || b == nil {
		return nil, ErrNilAbacus
	}
	if a.Count != b.Count {
		return nil, fmt.Errorf("count types %s and %s: %w", a.Count, b.Count, ErrInvariantViolation)
	}
	if len(a.Countable) != len(b.Countable) {
		return nil, fmt.Errorf("item universes of %d and %d: %w", a.ItemCount(), b.ItemCount(), ErrInvariantViolation)
	}
	if err := checkCount(a.Count, nodeLens, len(a.Countable)); err != nil {
		return nil, err
	}
	bp := a.Count == core.CountBp
	if bp && !maps.Equal(a.UncoveredBps, b.UncoveredBps) {
		return nil, fmt.Errorf("uncovered bp differ: %w", ErrInvariantViolation)
	}

	cov := make([][]uint64, a.GroupCount()+1)
	for i := range cov {
		cov[i] = make([]uint64, b.GroupCount()+1)
	}
	for id := 1; id < len(a.Countable); id++ {
		ca, cb := int(a.Countable[id]), int(b.Countable[id])
		if ca >= len(cov) {
			log.Warnf("hist: coverage %d of item %d in abacus a exceeds the number of groups %d, it'll be ignored", ca, id, a.GroupCount())
			continue
		}
		if cb >= len(cov[0]) {
			log.Warnf("hist: coverage %d of item %d in abacus b exceeds the number of groups %d, it'll be ignored", cb, id, b.GroupCount())
			continue
		}
		if bp {
			cov[ca][cb] += uint64(nodeLens[id])
		} else {
			cov[ca][cb]++
		}
	}
	if bp {
		for id, u := range a.UncoveredBps {
			if int(id) >= len(a.Countable) || id == 0 {
				continue
			}
			ca, cb := int(a.Countable[id]), int(b.Countable[id])
			if ca >= len(cov) || cb >= len(cov[0]) {
				continue
			}
			if uint64(u) > cov[ca][cb] {
				log.Warnf("hist: uncovered bp (%d) of node %d exceed cell [%d][%d], it'll be ignored", u, id, ca, cb)
				continue
			}
			cov[ca][cb] -= uint64(u)
			cov[0][0] += uint64(u)
		}
	}

	return &Hist3D{Count: a.Count, Coverage: cov}, nil
}
