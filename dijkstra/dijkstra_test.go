package dijkstra_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/roadgrade/builder"
	"github.com/katalvlaran/roadgrade/core"
	"github.com/katalvlaran/roadgrade/dijkstra"
	"github.com/katalvlaran/roadgrade/timecost"
)

func f64(v float64) *float64 { return &v }

// scenario is 1→2 (10, one-way), 2–3 (5), 1–3 (20).
func scenario(t *testing.T) *core.Graph {
	t.Helper()
	g, err := core.NewGraph(core.Description{
		Nodes: []core.NodeSpec{{ID: 1}, {ID: 2, Lon: 1}, {ID: 3, Lat: 1, Lon: 1}},
		Edges: []core.EdgeSpec{
			{ID: 1, U: 1, V: 2, Length: f64(10), AverageTime: f64(10), OneWay: true, RoadType: "primary"},
			{ID: 2, U: 2, V: 3, Length: f64(5), AverageTime: f64(5)},
			{ID: 3, U: 1, V: 3, Length: f64(20), AverageTime: f64(20)},
		},
	})
	require.NoError(t, err)

	return g
}

func TestShortestPath_ScenarioA(t *testing.T) {
	res, err := dijkstra.ShortestPath(scenario(t), 1, 3)
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.Equal(t, []int64{1, 2, 3}, res.Path)
	assert.Equal(t, []core.EdgeRef{{ID: 1}, {ID: 2}}, res.Refs)
	assert.Equal(t, 15.0, res.Cost)
}

func TestShortestPath_ScenarioB(t *testing.T) {
	g := scenario(t)
	require.True(t, g.Disable(1))

	res, err := dijkstra.ShortestPath(g, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, res.Path)
	assert.Equal(t, 20.0, res.Cost)
}

func TestShortestPath_Constraints(t *testing.T) {
	g := scenario(t)

	res, err := dijkstra.ShortestPath(g, 1, 3, dijkstra.WithForbiddenNodes(2))
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, res.Path)

	res, err = dijkstra.ShortestPath(g, 1, 3, dijkstra.WithForbiddenRoadTypes("primary"))
	require.NoError(t, err)
	assert.Equal(t, 20.0, res.Cost)

	res, err = dijkstra.ShortestPath(g, 1, 3, dijkstra.WithForbiddenNodes(3))
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Empty(t, res.Path)
	assert.True(t, math.IsInf(res.Cost, 1))

	// one-way: no way back from 2 to 1 except via 3
	res, err = dijkstra.ShortestPath(g, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3, 1}, res.Path)
	assert.Equal(t, 25.0, res.Cost)

	res, err = dijkstra.ShortestPath(g, 2, 1, dijkstra.WithForbiddenNodes(3))
	require.NoError(t, err)
	assert.False(t, res.Found)

	res, err = dijkstra.ShortestPath(g, 1, 99)
	require.NoError(t, err)
	assert.False(t, res.Found)

	res, err = dijkstra.ShortestPath(g, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, res.Path)
	assert.Zero(t, res.Cost)
}

func TestShortestPath_TimeDependent(t *testing.T) {
	// Direct road crawls in the first slot and is fast later; departing at 0
	// the steady detour wins.
	g, err := core.NewGraph(core.Description{
		Nodes: []core.NodeSpec{{ID: 1}, {ID: 2}, {ID: 3}},
		Edges: []core.EdgeSpec{
			{ID: 1, U: 1, V: 3, Length: f64(100), SpeedProfile: []float64{0.25, 10}, OneWay: true},
			{ID: 2, U: 1, V: 2, Length: f64(100), SpeedProfile: []float64{1, 1}, OneWay: true},
			{ID: 3, U: 2, V: 3, Length: f64(100), SpeedProfile: []float64{1, 1}, OneWay: true},
		},
	})
	require.NoError(t, err)

	res, err := dijkstra.ShortestPath(g, 1, 3, dijkstra.WithMode(timecost.ModeTime))
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, res.Path)
	assert.Equal(t, 200.0, res.Cost)

	walked, _, err := timecost.Walk(g, res.Path, timecost.ModeTime, nil)
	require.NoError(t, err)
	assert.Equal(t, res.Cost, walked)
}

func TestShortestPath_MissingWeightIsFatal(t *testing.T) {
	g, err := core.NewGraph(core.Description{
		Nodes: []core.NodeSpec{{ID: 1}, {ID: 2}},
		Edges: []core.EdgeSpec{{ID: 1, U: 1, V: 2, Length: f64(3)}},
	})
	require.NoError(t, err)

	_, err = dijkstra.ShortestPath(g, 1, 2, dijkstra.WithMode(timecost.ModeTime))
	assert.ErrorIs(t, err, timecost.ErrMissingWeight)

	_, err = dijkstra.ShortestPath(nil, 1, 2)
	assert.ErrorIs(t, err, dijkstra.ErrNilGraph)
}

func TestShortestPath_MatchesBruteForce(t *testing.T) {
	for seed := int64(1); seed <= 40; seed++ {
		n := 3 + int(seed%4) // 3..6 nodes
		desc, err := builder.BuildDescription(
			[]builder.BuilderOption{builder.WithSeed(seed), builder.WithOneWayProbability(0.4)},
			builder.RandomSparse(n, 0.5),
		)
		require.NoError(t, err)
		g, err := core.NewGraph(desc)
		require.NoError(t, err)

		for _, s := range g.NodeIDs() {
			for _, tgt := range g.NodeIDs() {
				want := bruteForce(g, s, tgt)
				got, err := dijkstra.ShortestPath(g, s, tgt)
				require.NoError(t, err)
				if math.IsInf(want, 1) {
					assert.False(t, got.Found, "seed=%d %d→%d", seed, s, tgt)
					continue
				}
				require.True(t, got.Found, "seed=%d %d→%d", seed, s, tgt)
				assert.InDelta(t, want, got.Cost, 1e-9, "seed=%d %d→%d", seed, s, tgt)

				walked, _, err := timecost.Walk(g, got.Path, timecost.ModeDistance, nil)
				require.NoError(t, err)
				assert.InDelta(t, got.Cost, walked, 1e-9)
			}
		}
	}
}

// bruteForce enumerates every simple path and returns the cheapest length.
func bruteForce(g *core.Graph, s, t int64) float64 {
	best := math.Inf(1)
	onPath := map[int64]bool{s: true}
	var dfs func(u int64, acc float64)
	dfs = func(u int64, acc float64) {
		if u == t {
			best = math.Min(best, acc)
			return
		}
		for _, a := range g.Adjacent(u) {
			if onPath[a.To] {
				continue
			}
			e, _ := g.Edge(a.Ref)
			if e.Disabled {
				continue
			}
			onPath[a.To] = true
			dfs(a.To, acc+e.Length)
			onPath[a.To] = false
		}
	}
	dfs(s, 0)

	return best
}

func TestTree_PathTo(t *testing.T) {
	tree, err := dijkstra.NewTree(scenario(t), 1)
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2, 3}, tree.Reached())
	d, ok := tree.Dist(3)
	assert.True(t, ok)
	assert.Equal(t, 15.0, d)
	assert.Equal(t, []int64{1, 2, 3}, tree.PathTo(3).Path)

	_, ok = tree.Dist(42)
	assert.False(t, ok)
	assert.False(t, tree.PathTo(42).Found)

	empty, err := dijkstra.NewTree(scenario(t), 1, dijkstra.WithForbiddenNodes(1))
	require.NoError(t, err)
	assert.Empty(t, empty.Reached())
}

func TestApproximate_WithinBudget(t *testing.T) {
	desc, err := builder.BuildDescription(
		[]builder.BuilderOption{builder.WithSeed(3)},
		builder.Grid(6, 6),
	)
	require.NoError(t, err)
	g, err := core.NewGraph(desc)
	require.NoError(t, err)

	exact, err := dijkstra.ShortestPath(g, 1, 36)
	require.NoError(t, err)
	approx, err := dijkstra.Approximate(g, 1, 36, 5)
	require.NoError(t, err)
	require.True(t, approx.Found)
	assert.LessOrEqual(t, approx.Cost, exact.Cost*1.05+1e-9)
	assert.GreaterOrEqual(t, approx.Cost, exact.Cost-1e-9)

	_, err = dijkstra.Approximate(g, 1, 36, -1)
	assert.ErrorIs(t, err, dijkstra.ErrBadEpsilon)
}

func TestWithWeightFunc_Overrides(t *testing.T) {
	g := scenario(t)
	// make road 2 prohibitively expensive in both directions
	penalise := func(e *core.Edge, _ float64) (float64, error) {
		if e.Ref.ID == 2 {
			return 1000, nil
		}
		return e.Length, nil
	}
	res, err := dijkstra.ShortestPath(g, 1, 3, dijkstra.WithWeightFunc(penalise))
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, res.Path)
}
