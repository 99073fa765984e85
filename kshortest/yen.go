package kshortest

import (
	"container/heap"
	"strconv"

	"golang.org/x/exp/slices"

	"github.com/katalvlaran/roadgrade/core"
	"github.com/katalvlaran/roadgrade/dijkstra"
	"github.com/katalvlaran/roadgrade/timecost"
)

// Yen returns up to k loopless source→target paths ascending by cost.
//
// Fewer than k paths are returned when the candidate heap runs dry; none when
// the target is unreachable or k == 0. The graph's enabled/disabled state is
// identical before and after the call.
//
// Errors: ErrBadK, and fatal weight errors from the underlying searches.
func Yen(g *core.Graph, source, target int64, k int, mode timecost.Mode) ([]Path, error) {
	if k < 0 {
		return nil, ErrBadK
	}
	if k == 0 {
		return nil, nil
	}

	// 1) Seed A with the shortest path.
	first, err := dijkstra.ShortestPath(g, source, target, dijkstra.WithMode(mode))
	if err != nil || !first.Found {
		return nil, err
	}
	accepted := []Path{{Nodes: first.Path, Refs: first.Refs, Cost: first.Cost}}
	seen := map[string]bool{pathKey(first.Path): true}
	var cands candidateHeap

	for len(accepted) < k {
		last := accepted[len(accepted)-1]

		// 2) One spur search per prefix of the last accepted path.
		for i := 0; i+1 < len(last.Nodes); i++ {
			cand, ok, err := spur(g, accepted, last, i, target, mode)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			key := pathKey(cand.Nodes)
			if seen[key] {
				continue
			}
			seen[key] = true
			heap.Push(&cands, cand)
		}

		// 3) Promote the cheapest candidate.
		if cands.Len() == 0 {
			break
		}
		accepted = append(accepted, heap.Pop(&cands).(Path))
	}

	return accepted, nil
}

// spur computes the candidate diverging from last at index i.
func spur(g *core.Graph, accepted []Path, last Path, i int, target int64, mode timecost.Mode) (Path, bool, error) {
	root := last.Nodes[:i+1]
	rootRefs := last.Refs[:i]

	// Records leaving the spur node along accepted paths that share the root.
	var block []core.EdgeRef
	for _, p := range accepted {
		if len(p.Nodes) > i+1 && slices.Equal(p.Nodes[:i+1], root) {
			block = append(block, p.Refs[i])
		}
	}

	opts := []dijkstra.Option{
		dijkstra.WithMode(mode),
		dijkstra.WithForbiddenNodes(root[:i]...),
	}
	if mode == timecost.ModeTime && i > 0 {
		offset, err := timecost.WalkRefs(g, rootRefs, mode)
		if err != nil {
			return Path{}, false, err
		}
		opts = append(opts, dijkstra.WithWeightFunc(func(e *core.Edge, dep float64) (float64, error) {
			return timecost.EdgeCost(e, mode, offset+dep)
		}))
	}

	var (
		res dijkstra.Result
		err error
	)
	g.WithDisabled(block, func() {
		res, err = dijkstra.ShortestPath(g, root[i], target, opts...)
	})
	if err != nil || !res.Found {
		return Path{}, false, err
	}

	nodes := make([]int64, 0, i+len(res.Path))
	nodes = append(nodes, root[:i]...)
	nodes = append(nodes, res.Path...)
	refs := make([]core.EdgeRef, 0, len(rootRefs)+len(res.Refs))
	refs = append(refs, rootRefs...)
	refs = append(refs, res.Refs...)

	cost, err := timecost.WalkRefs(g, refs, mode)
	if err != nil {
		return Path{}, false, err
	}

	return Path{Nodes: nodes, Refs: refs, Cost: cost}, true, nil
}

func pathKey(nodes []int64) string {
	buf := make([]byte, 0, len(nodes)*4)
	for _, id := range nodes {
		buf = strconv.AppendInt(buf, id, 10)
		buf = append(buf, ',')
	}

	return string(buf)
}

// lessNodes compares node sequences lexicographically.
func lessNodes(a, b []int64) bool {
	return slices.Compare(a, b) < 0
}

// candidateHeap is a min-heap of Path ordered by (Cost, Nodes).
type candidateHeap []Path

func (h candidateHeap) Len() int { return len(h) }

func (h candidateHeap) Less(i, j int) bool {
	if h[i].Cost != h[j].Cost {
		return h[i].Cost < h[j].Cost
	}

	return lessNodes(h[i].Nodes, h[j].Nodes)
}

func (h candidateHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *candidateHeap) Push(x interface{}) { *h = append(*h, x.(Path)) }

func (h *candidateHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]

	return item
}
