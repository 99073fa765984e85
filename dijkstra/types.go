package dijkstra

import (
	"errors"
	"math"

	"github.com/katalvlaran/roadgrade/core"
	"github.com/katalvlaran/roadgrade/timecost"
)

// Sentinel errors returned by the search.
var (
	// ErrNilGraph indicates that a nil *core.Graph was passed.
	ErrNilGraph = errors.New("dijkstra: graph is nil")

	// ErrBadEpsilon indicates a negative heuristic inflation factor.
	ErrBadEpsilon = errors.New("dijkstra: epsilon must be non-negative")
)

// Inf is the cost reported for unreachable targets.
var Inf = math.Inf(1)

// WeightFunc returns the cost of crossing e when departing at `departure`.
// It must be non-negative.
type WeightFunc func(e *core.Edge, departure float64) (float64, error)

// Heuristic estimates the remaining cost from node id to the target.
type Heuristic func(g *core.Graph, id, target int64) float64

// Options configures a search.
//
// Mode            – objective used by the default weight (distance or time).
// ForbiddenNodes  – node ids the path must avoid (source/target included).
// ForbiddenTypes  – road-type labels the path must avoid.
// Weight          – optional override for the per-edge cost; nil uses timecost.EdgeCost.
// Heuristic       – optional A* estimate; nil means plain Dijkstra.
// Epsilon         – the heuristic is inflated by (1+Epsilon).
type Options struct {
	Mode           timecost.Mode
	ForbiddenNodes map[int64]bool
	ForbiddenTypes map[string]bool
	Weight         WeightFunc
	Heuristic      Heuristic
	Epsilon        float64
}

// Option represents a functional option for configuring a search.
type Option func(*Options)

// WithMode sets the objective.
func WithMode(m timecost.Mode) Option {
	return func(o *Options) {
		o.Mode = m
	}
}

// WithForbiddenNodes adds node ids to the forbidden set.
func WithForbiddenNodes(ids ...int64) Option {
	return func(o *Options) {
		if o.ForbiddenNodes == nil {
			o.ForbiddenNodes = make(map[int64]bool, len(ids))
		}
		for _, id := range ids {
			o.ForbiddenNodes[id] = true
		}
	}
}

// WithForbiddenRoadTypes adds road-type labels to the forbidden set.
func WithForbiddenRoadTypes(types ...string) Option {
	return func(o *Options) {
		if o.ForbiddenTypes == nil {
			o.ForbiddenTypes = make(map[string]bool, len(types))
		}
		for _, t := range types {
			o.ForbiddenTypes[t] = true
		}
	}
}

// WithWeightFunc replaces the default per-edge cost.
func WithWeightFunc(fn WeightFunc) Option {
	return func(o *Options) {
		o.Weight = fn
	}
}

// WithHeuristic turns the search into weighted A*.
func WithHeuristic(h Heuristic, epsilon float64) Option {
	return func(o *Options) {
		o.Heuristic = h
		o.Epsilon = epsilon
	}
}

// DefaultOptions returns distance mode, no forbidden sets, the timecost weight
// and no heuristic.
func DefaultOptions() Options {
	return Options{Mode: timecost.ModeDistance}
}

// Allows reports whether e may be traversed under o, ignoring its destination.
func (o Options) Allows(e *core.Edge) bool {
	return !e.Disabled && !o.ForbiddenTypes[e.RoadType]
}

// Result is a single-pair answer.
//
// Path lists node ids source..target, Refs the directional records used
// between them (len(Refs) == len(Path)-1). When Found is false Path and Refs
// are empty and Cost is +Inf.
type Result struct {
	Path  []int64
	Refs  []core.EdgeRef
	Cost  float64
	Found bool
}

func notFound() Result {
	return Result{Cost: Inf}
}
