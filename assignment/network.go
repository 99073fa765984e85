package assignment

import (
	"fmt"
	"math"

	"github.com/katalvlaran/roadgrade/core"
	"github.com/katalvlaran/roadgrade/dijkstra"
)

// Network is the static time-weighted graph used for assignments.
type Network struct {
	g    *core.Graph
	time map[int64]map[int64]float64
}

// NewNetwork builds the Network from a road description.
//
// Errors: core loading errors, and ErrMissingWeight (wrapped) for a road
// without average_time.
func NewNetwork(desc core.Description) (*Network, error) {
	for _, e := range desc.Edges {
		if e.AverageTime == nil {
			return nil, fmt.Errorf("%w: edge %d average_time", ErrMissingWeight, e.ID)
		}
	}
	g, err := core.NewGraph(desc)
	if err != nil {
		return nil, err
	}

	n := &Network{g: g, time: make(map[int64]map[int64]float64, g.NodeCount())}
	for _, u := range g.NodeIDs() {
		for _, a := range g.Adjacent(u) {
			e, _ := g.Edge(a.Ref)
			row := n.time[u]
			if row == nil {
				row = make(map[int64]float64)
				n.time[u] = row
			}
			if old, ok := row[a.To]; !ok || e.AverageTime < old {
				row[a.To] = e.AverageTime
			}
		}
	}

	return n, nil
}

// HasNode reports whether id exists.
func (n *Network) HasNode(id int64) bool { return n.g.HasNode(id) }

// Time returns the arc time u→v and whether the arc exists.
func (n *Network) Time(u, v int64) (float64, bool) {
	t, ok := n.time[u][v]

	return t, ok
}

// staticWeight ignores departure time and runtime state.
func staticWeight(e *core.Edge, _ float64) (float64, error) {
	return e.AverageTime, nil
}

// legs memoises one-to-all trees per origin.
type legs struct {
	net   *Network
	trees map[int64]*dijkstra.Tree
}

func newLegs(net *Network) *legs {
	return &legs{net: net, trees: make(map[int64]*dijkstra.Tree)}
}

func (l *legs) tree(from int64) (*dijkstra.Tree, error) {
	if t, ok := l.trees[from]; ok {
		return t, nil
	}
	t, err := dijkstra.NewTree(l.net.g, from, dijkstra.WithWeightFunc(staticWeight))
	if err != nil {
		return nil, err
	}
	l.trees[from] = t

	return t, nil
}

// cost returns the shortest static time u→v, +Inf when unreachable.
func (l *legs) cost(u, v int64) float64 {
	if u == v {
		return 0
	}
	t, err := l.tree(u)
	if err != nil {
		return math.Inf(1)
	}
	d, _ := t.Dist(v)

	return d
}

// path returns the node sequence u..v.
func (l *legs) path(u, v int64) ([]int64, error) {
	if u == v {
		return []int64{u}, nil
	}
	t, err := l.tree(u)
	if err != nil {
		return nil, err
	}
	res := t.PathTo(v)
	if !res.Found {
		return nil, fmt.Errorf("%w: %d→%d", ErrUnreachable, u, v)
	}

	return res.Path, nil
}

// roundTrip returns the cheapest closed walk u→…→u with at least one arc.
func (l *legs) roundTrip(u int64) ([]int64, error) {
	best := math.Inf(1)
	var bestVia int64
	for v, w := range l.net.time[u] {
		if v == u {
			return []int64{u, u}, nil
		}
		if c := w + l.cost(v, u); c < best || (c == best && v < bestVia) {
			best, bestVia = c, v
		}
	}
	if math.IsInf(best, 1) {
		return nil, fmt.Errorf("%w: no round trip from %d", ErrUnreachable, u)
	}
	back, err := l.path(bestVia, u)
	if err != nil {
		return nil, err
	}

	return append([]int64{u}, back...), nil
}
