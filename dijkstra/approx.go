package dijkstra

import (
	"math"

	"github.com/katalvlaran/roadgrade/core"
	"github.com/katalvlaran/roadgrade/timecost"
)

// PlanarHeuristic is the straight-line distance sqrt(Δlat² + Δlon²) between
// two nodes in coordinate units; 0 when either node is unknown.
func PlanarHeuristic(g *core.Graph, id, target int64) float64 {
	a, errA := g.Node(id)
	b, errB := g.Node(target)
	if errA != nil || errB != nil {
		return 0
	}

	return math.Hypot(a.Lat-b.Lat, a.Lon-b.Lon)
}

// Approximate runs weighted A* over edge lengths with PlanarHeuristic inflated
// by 1 + errorPct/100. Node settlement is final, so the answer can exceed the
// true shortest distance; callers grade it against an error budget.
//
// Other options (forbidden sets) are honoured; the objective is always distance.
func Approximate(g *core.Graph, source, target int64, errorPct float64, opts ...Option) (Result, error) {
	if errorPct < 0 {
		return Result{}, ErrBadEpsilon
	}
	opts = append(opts,
		WithMode(timecost.ModeDistance),
		WithHeuristic(PlanarHeuristic, errorPct/100),
	)

	return ShortestPath(g, source, target, opts...)
}
