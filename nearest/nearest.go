// Package nearest answers K-nearest point-of-interest queries over a core.Graph.
//
// Candidates are the nodes carrying the requested POI tag. Ranking is done by a
// named metric from the Searcher's registry:
//
//   - "euclidean" (alias "euclidian"): planar sqrt(Δlat² + Δlon²) from the query point.
//   - "haversine": great-circle distance in metres from the query point.
//   - "shortest_path": the node nearest the query point by planar distance is
//     the anchor; candidates rank by distance-mode shortest path from it and
//     unreachable candidates are dropped.
//
// Every metric breaks distance ties by ascending node id. New metrics can be
// added with WithMetric.
package nearest

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"golang.org/x/exp/slices"

	"github.com/katalvlaran/roadgrade/core"
	"github.com/katalvlaran/roadgrade/dijkstra"
)

// Sentinel errors.
var (
	// ErrUnknownMetric indicates a metric name missing from the registry.
	ErrUnknownMetric = errors.New("nearest: unknown metric")

	// ErrBadK indicates a negative K.
	ErrBadK = errors.New("nearest: k must be non-negative")
)

// Metric names understood by the default registry.
const (
	MetricEuclidean    = "euclidean"
	MetricHaversine    = "haversine"
	MetricShortestPath = "shortest_path"
)

// Point is a query location.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Query describes one KNN request. An empty Metric selects the Searcher default.
type Query struct {
	POI    string
	Point  Point
	K      int
	Metric string
}

// Scored is a candidate with its metric distance.
type Scored struct {
	ID   int64
	Dist float64
}

// MetricFunc scores candidates relative to p. Candidates it cannot reach are
// omitted from the result.
type MetricFunc func(g *core.Graph, p Point, candidates []int64) ([]Scored, error)

// Searcher holds the metric registry.
type Searcher struct {
	metrics       map[string]MetricFunc
	defaultMetric string
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithMetric registers (or replaces) a metric under name.
func WithMetric(name string, fn MetricFunc) Option {
	return func(s *Searcher) {
		s.metrics[name] = fn
	}
}

// WithDefaultMetric sets the metric used when a Query leaves it empty.
func WithDefaultMetric(name string) Option {
	return func(s *Searcher) {
		s.defaultMetric = name
	}
}

// New returns a Searcher with the built-in metrics registered.
func New(opts ...Option) *Searcher {
	s := &Searcher{
		metrics: map[string]MetricFunc{
			MetricEuclidean:    Euclidean,
			"euclidian":        Euclidean,
			MetricHaversine:    Haversine,
			MetricShortestPath: ShortestPath,
		},
		defaultMetric: MetricEuclidean,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Has reports whether name is registered.
func (s *Searcher) Has(name string) bool {
	_, ok := s.metrics[name]

	return ok
}

// Search returns up to K node ids ranked by the query metric.
func (s *Searcher) Search(g *core.Graph, q Query) ([]int64, error) {
	if q.K < 0 {
		return nil, ErrBadK
	}
	name := q.Metric
	if name == "" {
		name = s.defaultMetric
	}
	fn, ok := s.metrics[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, name)
	}

	scored, err := fn(g, q.Point, g.NodesWithTag(q.POI))
	if err != nil {
		return nil, err
	}
	rank(scored)
	if len(scored) > q.K {
		scored = scored[:q.K]
	}

	out := make([]int64, len(scored))
	for i, sc := range scored {
		out[i] = sc.ID
	}

	return out, nil
}

// rank sorts by (Dist, ID).
func rank(s []Scored) {
	slices.SortFunc(s, func(a, b Scored) int {
		switch {
		case a.Dist < b.Dist:
			return -1
		case a.Dist > b.Dist:
			return 1
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
}

func planar(n *core.Node, p Point) float64 {
	return math.Hypot(n.Lat-p.Lat, n.Lon-p.Lon)
}

// Euclidean scores candidates by planar coordinate distance.
func Euclidean(g *core.Graph, p Point, candidates []int64) ([]Scored, error) {
	out := make([]Scored, 0, len(candidates))
	for _, id := range candidates {
		n, err := g.Node(id)
		if err != nil {
			return nil, err
		}
		out = append(out, Scored{ID: id, Dist: planar(n, p)})
	}

	return out, nil
}

// Haversine scores candidates by great-circle distance in metres.
func Haversine(g *core.Graph, p Point, candidates []int64) ([]Scored, error) {
	from := orb.Point{p.Lon, p.Lat}
	out := make([]Scored, 0, len(candidates))
	for _, id := range candidates {
		n, err := g.Node(id)
		if err != nil {
			return nil, err
		}
		out = append(out, Scored{ID: id, Dist: geo.DistanceHaversine(from, orb.Point{n.Lon, n.Lat})})
	}

	return out, nil
}

// Anchor returns the node nearest p by planar distance, lowest id on ties.
// ok is false for an empty graph.
func Anchor(g *core.Graph, p Point) (id int64, ok bool) {
	best := math.Inf(1)
	for _, n := range g.Nodes() {
		if d := planar(n, p); d < best {
			best, id, ok = d, n.ID, true
		}
	}

	return id, ok
}

// ShortestPath scores candidates by distance-mode path length from the anchor.
func ShortestPath(g *core.Graph, p Point, candidates []int64) ([]Scored, error) {
	anchor, ok := Anchor(g, p)
	if !ok {
		return nil, nil
	}
	tree, err := dijkstra.NewTree(g, anchor)
	if err != nil {
		return nil, err
	}

	out := make([]Scored, 0, len(candidates))
	for _, id := range candidates {
		if d, reached := tree.Dist(id); reached {
			out = append(out, Scored{ID: id, Dist: d})
		}
	}

	return out, nil
}

var defaultSearcher = New()

// Search runs q against the built-in registry.
func Search(g *core.Graph, q Query) ([]int64, error) {
	return defaultSearcher.Search(g, q)
}
