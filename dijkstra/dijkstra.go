package dijkstra

import (
	"container/heap"

	"golang.org/x/exp/slices"

	"github.com/katalvlaran/roadgrade/core"
	"github.com/katalvlaran/roadgrade/timecost"
)

// ShortestPath returns the cheapest source→target path in g.
//
// Unknown or forbidden endpoints and unreachable targets yield Found=false
// with Cost=+Inf; they are not errors. A source equal to the target yields the
// single-node path at cost 0.
//
// Errors:
//   - ErrNilGraph, ErrBadEpsilon.
//   - timecost.ErrMissingWeight / timecost.ErrUnreachableSlot from the weight
//     of an edge reached during the search.
//
// Complexity: O((V + E) log V).
func ShortestPath(g *core.Graph, source, target int64, opts ...Option) (Result, error) {
	// 1) Build and validate options.
	cfg, err := buildOptions(g, opts)
	if err != nil {
		return Result{}, err
	}

	// 2) Endpoint constraints short-circuit to "no path".
	if !g.HasNode(source) || !g.HasNode(target) ||
		cfg.ForbiddenNodes[source] || cfg.ForbiddenNodes[target] {
		return notFound(), nil
	}
	if source == target {
		return Result{Path: []int64{source}, Cost: 0, Found: true}, nil
	}

	// 3) Search until the target is settled.
	r := newRunner(g, cfg, source)
	r.target, r.hasTarget = target, true
	if err = r.process(); err != nil {
		return Result{}, err
	}

	return r.pathTo(target), nil
}

// Tree holds one-to-all labels from a single source.
type Tree struct {
	source int64
	dist   map[int64]float64
	parent map[int64]core.EdgeRef
	prev   map[int64]int64
}

// NewTree settles every node reachable from source under opts. An unknown or
// forbidden source produces an empty tree.
func NewTree(g *core.Graph, source int64, opts ...Option) (*Tree, error) {
	cfg, err := buildOptions(g, opts)
	if err != nil {
		return nil, err
	}
	if !g.HasNode(source) || cfg.ForbiddenNodes[source] {
		return &Tree{source: source, dist: map[int64]float64{}}, nil
	}

	r := newRunner(g, cfg, source)
	if err = r.process(); err != nil {
		return nil, err
	}

	return &Tree{source: source, dist: r.dist, parent: r.parent, prev: r.prev}, nil
}

// Source returns the root of the tree.
func (t *Tree) Source() int64 { return t.source }

// Dist returns the label of id and whether it was reached.
func (t *Tree) Dist(id int64) (float64, bool) {
	d, ok := t.dist[id]
	if !ok {
		return Inf, false
	}

	return d, true
}

// Reached returns every reached node id, sorted ascending.
func (t *Tree) Reached() []int64 {
	out := make([]int64, 0, len(t.dist))
	for id := range t.dist {
		out = append(out, id)
	}
	slices.Sort(out)

	return out
}

// PathTo reconstructs the tree path from the source to id.
func (t *Tree) PathTo(id int64) Result {
	return reconstruct(t.source, id, t.dist, t.parent, t.prev)
}

func buildOptions(g *core.Graph, opts []Option) (Options, error) {
	if g == nil {
		return Options{}, ErrNilGraph
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Epsilon < 0 {
		return Options{}, ErrBadEpsilon
	}
	if cfg.Weight == nil {
		mode := cfg.Mode
		cfg.Weight = func(e *core.Edge, departure float64) (float64, error) {
			return timecost.EdgeCost(e, mode, departure)
		}
	}

	return cfg, nil
}

// runner holds the mutable state for a single search.
type runner struct {
	g         *core.Graph
	options   Options
	source    int64
	target    int64
	hasTarget bool
	dist      map[int64]float64      // best known label
	parent    map[int64]core.EdgeRef // record used to reach the node
	prev      map[int64]int64        // predecessor node
	visited   map[int64]bool         // settled
	pq        nodePQ
}

func newRunner(g *core.Graph, cfg Options, source int64) *runner {
	r := &runner{
		g:       g,
		options: cfg,
		source:  source,
		dist:    make(map[int64]float64),
		parent:  make(map[int64]core.EdgeRef),
		prev:    make(map[int64]int64),
		visited: make(map[int64]bool),
	}
	r.init()

	return r
}

// init seeds the heap with the source at label 0.
func (r *runner) init() {
	r.dist[r.source] = 0
	heap.Init(&r.pq)
	heap.Push(&r.pq, &nodeItem{id: r.source, dist: 0, prio: r.estimate(r.source)})
}

// estimate is the inflated heuristic term, 0 for plain Dijkstra.
func (r *runner) estimate(id int64) float64 {
	if r.options.Heuristic == nil || !r.hasTarget {
		return 0
	}

	return (1 + r.options.Epsilon) * r.options.Heuristic(r.g, id, r.target)
}

// process settles nodes in priority order until the heap drains or the
// target is settled.
func (r *runner) process() error {
	for r.pq.Len() > 0 {
		// 1) Pop the lowest-priority entry; stale entries are skipped.
		item := heap.Pop(&r.pq).(*nodeItem)
		u := item.id
		if r.visited[u] {
			continue
		}

		// 2) Settle.
		r.visited[u] = true
		if r.hasTarget && u == r.target {
			return nil
		}

		// 3) Relax outgoing arcs.
		if err := r.relax(u); err != nil {
			return err
		}
	}

	return nil
}

// relax improves the labels of u's neighbours through usable arcs.
func (r *runner) relax(u int64) error {
	du := r.dist[u]
	for _, arc := range r.g.Adjacent(u) {
		v := arc.To
		if r.visited[v] || r.options.ForbiddenNodes[v] {
			continue
		}
		e, err := r.g.Edge(arc.Ref)
		if err != nil {
			return err
		}
		if !r.options.Allows(e) {
			continue
		}

		// Departure from u is its settled label.
		w, err := r.options.Weight(e, du)
		if err != nil {
			return err
		}
		if w == Inf {
			continue
		}

		nd := du + w
		if old, seen := r.dist[v]; seen && nd >= old {
			continue
		}
		r.dist[v] = nd
		r.parent[v] = arc.Ref
		r.prev[v] = u
		heap.Push(&r.pq, &nodeItem{id: v, dist: nd, prio: nd + r.estimate(v)})
	}

	return nil
}

func (r *runner) pathTo(target int64) Result {
	if !r.visited[target] {
		return notFound()
	}

	return reconstruct(r.source, target, r.dist, r.parent, r.prev)
}

// reconstruct follows parent links from target back to source, then reverses.
func reconstruct(source, target int64, dist map[int64]float64, parent map[int64]core.EdgeRef, prev map[int64]int64) Result {
	cost, ok := dist[target]
	if !ok {
		return notFound()
	}

	path := []int64{target}
	var refs []core.EdgeRef
	for cur := target; cur != source; {
		refs = append(refs, parent[cur])
		cur = prev[cur]
		path = append(path, cur)
	}
	slices.Reverse(path)
	slices.Reverse(refs)

	return Result{Path: path, Refs: refs, Cost: cost, Found: true}
}

// nodeItem is a heap entry: node id, its label and its queue priority
// (label plus the inflated heuristic).
type nodeItem struct {
	id   int64
	dist float64
	prio float64
}

// nodePQ is a min-heap of *nodeItem ordered by (prio, id). Improved labels
// are pushed as new entries; outdated ones are skipped when popped.
type nodePQ []*nodeItem

// Len returns the number of items in the heap.
func (pq nodePQ) Len() int { return len(pq) }

// Less orders by priority, then by node id for reproducible ties.
func (pq nodePQ) Less(i, j int) bool {
	if pq[i].prio != pq[j].prio {
		return pq[i].prio < pq[j].prio
	}

	return pq[i].id < pq[j].id
}

// Swap swaps two elements in the heap.
func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds a new element x onto the heap.
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

// Pop removes and returns the last element.
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
