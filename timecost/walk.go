package timecost

import (
	"fmt"

	"github.com/katalvlaran/roadgrade/core"
)

// Filter reports whether an enabled record may be traversed. A nil Filter
// accepts every enabled record.
type Filter func(e *core.Edge) bool

// Walk re-derives the cost of a node sequence from scratch.
//
// Departure starts at 0; each hop's arrival time becomes the next hop's
// departure. When several enabled records join the same consecutive pair, the
// one cheapest at the current clock is taken. Walk returns the total and the
// records chosen, hop by hop.
//
// A path of a single node costs 0. Errors:
//   - ErrNoArc when a consecutive pair has no enabled record accepted by allow.
//   - ErrMissingWeight / ErrUnreachableSlot propagated from EdgeCost.
func Walk(g *core.Graph, path []int64, mode Mode, allow Filter) (float64, []core.EdgeRef, error) {
	if len(path) < 2 {
		return 0, nil, nil
	}

	refs := make([]core.EdgeRef, 0, len(path)-1)
	clock := 0.0
	for i := 0; i+1 < len(path); i++ {
		u, v := path[i], path[i+1]
		var (
			best  *core.Edge
			bestC float64
		)
		for _, e := range g.ArcsBetween(u, v) {
			if e.Disabled || (allow != nil && !allow(e)) {
				continue
			}
			c, err := EdgeCost(e, mode, clock)
			if err != nil {
				return 0, nil, err
			}
			if best == nil || c < bestC {
				best, bestC = e, c
			}
		}
		if best == nil {
			return 0, nil, fmt.Errorf("%w: %d→%d", ErrNoArc, u, v)
		}
		refs = append(refs, best.Ref)
		clock += bestC
	}

	return clock, refs, nil
}

// WalkRefs accumulates the cost of an exact sequence of directional records,
// departing at 0. Disabled records are still costed: callers that spliced the
// sequence together own its validity.
func WalkRefs(g *core.Graph, refs []core.EdgeRef, mode Mode) (float64, error) {
	clock := 0.0
	for _, ref := range refs {
		e, err := g.Edge(ref)
		if err != nil {
			return 0, err
		}
		c, err := EdgeCost(e, mode, clock)
		if err != nil {
			return 0, err
		}
		clock += c
	}

	return clock, nil
}
