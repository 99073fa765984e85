package nearest_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/roadgrade/core"
	"github.com/katalvlaran/roadgrade/nearest"
)

func f64(v float64) *float64 { return &v }

// line is 1–2–3–4 along the equator, with a far-away but road-close node 5.
func line(t *testing.T) *core.Graph {
	t.Helper()
	g, err := core.NewGraph(core.Description{
		Nodes: []core.NodeSpec{
			{ID: 1, Lat: 0, Lon: 0, POIs: []string{"cafe"}},
			{ID: 2, Lat: 0, Lon: 1},
			{ID: 3, Lat: 0, Lon: 2, POIs: []string{"cafe"}},
			{ID: 4, Lat: 0, Lon: -1, POIs: []string{"cafe"}},
			{ID: 5, Lat: 5, Lon: 0, POIs: []string{"cafe"}},
			{ID: 6, Lat: 0, Lon: 9, POIs: []string{"cafe"}},
		},
		Edges: []core.EdgeSpec{
			{ID: 1, U: 1, V: 2, Length: f64(1)},
			{ID: 2, U: 2, V: 3, Length: f64(1)},
			{ID: 3, U: 1, V: 4, Length: f64(10)},
			{ID: 4, U: 2, V: 5, Length: f64(1)},
		},
	})
	require.NoError(t, err)

	return g
}

func TestSearch_EuclideanTiesByID(t *testing.T) {
	g := line(t)
	// from lon 0.5, cafes 3 and 4 both lie 1.5 away and break by id
	got, err := nearest.Search(g, nearest.Query{POI: "cafe", Point: nearest.Point{Lon: 0.5}, K: 3})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3, 4}, got)

	alias, err := nearest.Search(g, nearest.Query{POI: "cafe", Point: nearest.Point{Lon: 0.5}, K: 3, Metric: "euclidian"})
	require.NoError(t, err)
	assert.Equal(t, got, alias)
}

func TestAnchor(t *testing.T) {
	g := line(t)
	id, ok := nearest.Anchor(g, nearest.Point{Lon: 0.5})
	require.True(t, ok)
	assert.Equal(t, int64(1), id, "equidistant from 1 and 2")

	id, ok = nearest.Anchor(g, nearest.Point{Lat: 4, Lon: 0.2})
	require.True(t, ok)
	assert.Equal(t, int64(5), id)

	empty, err := core.NewGraph(core.Description{})
	require.NoError(t, err)
	_, ok = nearest.Anchor(empty, nearest.Point{})
	assert.False(t, ok)
}

func TestSearch_ShortestPathDropsUnreachable(t *testing.T) {
	g := line(t)
	got, err := nearest.Search(g, nearest.Query{
		POI: "cafe", Point: nearest.Point{Lon: 0.1}, K: 10, Metric: nearest.MetricShortestPath,
	})
	require.NoError(t, err)
	// anchor 1: 1(0), 3(2), 5(2), 4(10); 6 is unreachable
	assert.Equal(t, []int64{1, 3, 5, 4}, got)
}

func TestSearch_Haversine(t *testing.T) {
	g := line(t)
	got, err := nearest.Search(g, nearest.Query{
		POI: "cafe", Point: nearest.Point{Lat: 4, Lon: 0}, K: 1, Metric: nearest.MetricHaversine,
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{5}, got)
}

func TestSearch_Errors(t *testing.T) {
	g := line(t)
	_, err := nearest.Search(g, nearest.Query{POI: "cafe", K: 1, Metric: "manhattan"})
	assert.ErrorIs(t, err, nearest.ErrUnknownMetric)

	_, err = nearest.Search(g, nearest.Query{POI: "cafe", K: -1})
	assert.ErrorIs(t, err, nearest.ErrBadK)

	got, err := nearest.Search(g, nearest.Query{POI: "museum", K: 3})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearcher_CustomMetric(t *testing.T) {
	byID := func(_ *core.Graph, _ nearest.Point, c []int64) ([]nearest.Scored, error) {
		out := make([]nearest.Scored, len(c))
		for i, id := range c {
			out[i] = nearest.Scored{ID: id, Dist: -float64(id)}
		}
		return out, nil
	}
	s := nearest.New(nearest.WithMetric("reverse_id", byID), nearest.WithDefaultMetric("reverse_id"))
	assert.True(t, s.Has("reverse_id"))

	got, err := s.Search(line(t), nearest.Query{POI: "cafe", K: 2})
	require.NoError(t, err)
	assert.Equal(t, []int64{6, 5}, got)
}

func ExampleSearch() {
	length := 1.0
	g, _ := core.NewGraph(core.Description{
		Nodes: []core.NodeSpec{
			{ID: 1, POIs: []string{"fuel"}},
			{ID: 2, Lon: 2, POIs: []string{"fuel"}},
			{ID: 3, Lon: 1},
		},
		Edges: []core.EdgeSpec{{ID: 1, U: 3, V: 2, Length: &length}},
	})

	ids, _ := nearest.Search(g, nearest.Query{POI: "fuel", Point: nearest.Point{Lon: 0.9}, K: 2})
	fmt.Println(ids)

	ids, _ = nearest.Search(g, nearest.Query{POI: "fuel", Point: nearest.Point{Lon: 0.9}, K: 2, Metric: "shortest_path"})
	fmt.Println(ids)
	// Output:
	// [1 2]
	// [2]
}
