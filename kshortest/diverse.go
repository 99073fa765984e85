package kshortest

import (
	"golang.org/x/exp/slices"

	"github.com/katalvlaran/roadgrade/core"
	"github.com/katalvlaran/roadgrade/dijkstra"
	"github.com/katalvlaran/roadgrade/timecost"
)

// Diverse returns up to k dissimilar source→target paths in distance mode.
//
// Each search penalises roads by their usage count: an accepted path charges
// one use per road, a rejected one charges Options.RejectedBump. A candidate is
// rejected when its Overlap with any accepted path exceeds overlapThreshold
// percent, or when it repeats an accepted node sequence. After
// k·MaxAttemptsFactor searches the remaining slots are filled from Yen's exact
// ranking, so k paths are returned whenever k distinct loopless paths exist.
//
// Reported costs are true lengths, not penalised ones.
func Diverse(g *core.Graph, source, target int64, k int, overlapThreshold float64, opts ...Option) ([]Path, error) {
	if k < 0 {
		return nil, ErrBadK
	}
	if k == 0 {
		return nil, nil
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 1) Unpenalised shortest path first.
	base, err := dijkstra.ShortestPath(g, source, target)
	if err != nil || !base.Found {
		return nil, err
	}
	accepted := []Path{{Nodes: base.Path, Refs: base.Refs, Cost: base.Cost}}
	usage := make(map[int64]int)
	charge(usage, base.Refs, 1)

	weight := func(e *core.Edge, _ float64) (float64, error) {
		w, err := timecost.EdgeCost(e, timecost.ModeDistance, 0)
		if err != nil {
			return 0, err
		}

		return w * (1 + cfg.UsagePenalty*float64(usage[e.Ref.ID])), nil
	}

	// 2) Penalised searches until k accepted or the attempt budget runs out.
	for attempt := 0; len(accepted) < k && attempt < k*cfg.MaxAttemptsFactor; attempt++ {
		res, err := dijkstra.ShortestPath(g, source, target, dijkstra.WithWeightFunc(weight))
		if err != nil {
			return nil, err
		}
		if !res.Found {
			break
		}
		if containsNodes(accepted, res.Path) {
			charge(usage, res.Refs, cfg.RejectedBump)
			continue
		}
		if tooSimilar(accepted, res.Path, overlapThreshold) {
			charge(usage, res.Refs, cfg.RejectedBump)
			continue
		}
		cost, err := timecost.WalkRefs(g, res.Refs, timecost.ModeDistance)
		if err != nil {
			return nil, err
		}
		accepted = append(accepted, Path{Nodes: res.Path, Refs: res.Refs, Cost: cost})
		charge(usage, res.Refs, 1)
	}

	// 3) Fill from the exact ranking.
	if len(accepted) < k {
		ranked, err := Yen(g, source, target, k+len(accepted), timecost.ModeDistance)
		if err != nil {
			return nil, err
		}
		for _, p := range ranked {
			if len(accepted) == k {
				break
			}
			if !containsNodes(accepted, p.Nodes) {
				accepted = append(accepted, p)
			}
		}
	}

	return accepted, nil
}

func charge(usage map[int64]int, refs []core.EdgeRef, n int) {
	for _, ref := range refs {
		usage[ref.ID] += n
	}
}

func containsNodes(paths []Path, nodes []int64) bool {
	for _, p := range paths {
		if slices.Equal(p.Nodes, nodes) {
			return true
		}
	}

	return false
}

func tooSimilar(paths []Path, nodes []int64, threshold float64) bool {
	for _, p := range paths {
		if Overlap(p.Nodes, nodes) > threshold {
			return true
		}
	}

	return false
}
