package query_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/roadgrade/query"
	"github.com/katalvlaran/roadgrade/timecost"
)

const stream = `{
  "meta": {"phase": 2},
  "events": [
    {"id": 1, "type": "remove_edge", "edge_id": 7},
    {"id": "m", "type": "modify_edge", "edge_id": 7, "patch": {"length": 3, "u": 9}},
    {"id": 3, "type": "shortest_path", "source": 1, "target": 3, "mode": "time",
     "constraints": {"forbidden_nodes": [2], "forbidden_road_types": ["primary"]}},
    {"id": 4, "type": "k_shortest_paths", "source": 1, "target": 3},
    {"id": 5, "type": "k_shortest_paths_heuristic", "source": 1, "target": 3, "k": 3, "overlap_threshold": 60},
    {"id": 6, "type": "approx_shortest_path", "queries": [{"source": 1, "target": 2}], "time_budget_ms": 50, "acceptable_error_pct": 5},
    {"id": 7, "type": "knn", "poi": "cafe", "query_point": {"lat": 1.5, "lon": 2}, "metric": "shortest_path"},
    {"id": 8, "type": "assignment", "orders": [{"order_id": 1, "pickup": 1, "dropoff": 3}],
     "fleet": {"num_delivery_guys": 2, "depot_node": 1}},
    {"id": 9, "type": "teleport"}
  ]
}`

func TestDecodeStream(t *testing.T) {
	s, err := query.DecodeStream(strings.NewReader(stream))
	require.NoError(t, err)
	require.Len(t, s.Events, 9)
	assert.JSONEq(t, `{"phase": 2}`, string(s.Meta))

	rm, ok := s.Events[0].(query.RemoveEdge)
	require.True(t, ok)
	assert.Equal(t, int64(7), rm.EdgeID)
	assert.Equal(t, `1`, string(rm.QueryID()))

	mod := s.Events[1].(query.ModifyEdge)
	assert.Equal(t, `"m"`, string(mod.QueryID()))
	require.NotNil(t, mod.Patch.Length)
	assert.Equal(t, 3.0, *mod.Patch.Length)
	assert.Contains(t, mod.Patch.Rejected, "u")

	sp := s.Events[2].(query.ShortestPath)
	assert.Equal(t, "time", sp.Mode)
	assert.Equal(t, []int64{2}, sp.Constraints.ForbiddenNodes)
	assert.Equal(t, []string{"primary"}, sp.Constraints.ForbiddenRoadTypes)

	assert.Equal(t, 1, s.Events[3].(query.KShortestPaths).K, "k defaults to 1")
	assert.Equal(t, 60.0, s.Events[4].(query.KShortestPathsHeuristic).OverlapThreshold)

	ap := s.Events[5].(query.ApproxShortestPath)
	assert.Equal(t, []query.Pair{{Source: 1, Target: 2}}, ap.Queries)
	assert.Equal(t, 5.0, ap.AcceptableErrorPct)

	knn := s.Events[6].(query.KNN)
	assert.Equal(t, 1, knn.K)
	assert.Equal(t, 1.5, knn.Query().Point.Lat)

	asg := s.Events[7].(query.Assignment)
	assert.Equal(t, 2, asg.Fleet.Drivers)
	require.Len(t, asg.Orders, 1)
	assert.Equal(t, int64(3), *asg.Orders[0].Dropoff)

	assert.Equal(t, query.Type("teleport"), s.Events[8].Kind())
	_, unknown := s.Events[8].(query.Unknown)
	assert.True(t, unknown)
}

func TestDecodeStream_Malformed(t *testing.T) {
	_, err := query.DecodeStream(strings.NewReader(`{"events": [{"type": "knn", "k": "three"}]}`))
	assert.ErrorIs(t, err, query.ErrDecode)

	_, err = query.DecodeStream(strings.NewReader(`[`))
	assert.ErrorIs(t, err, query.ErrDecode)
}

func TestEncodeStream_RoundTripsTags(t *testing.T) {
	in := query.Stream{Events: []query.Event{
		query.RemoveEdge{Header: query.Header{ID: []byte(`1`)}, EdgeID: 4},
		query.KNN{POI: "fuel", K: 2},
	}}
	var buf bytes.Buffer
	require.NoError(t, query.EncodeStream(&buf, in))

	out, err := query.DecodeStream(&buf)
	require.NoError(t, err)
	require.Len(t, out.Events, 2)
	assert.Equal(t, int64(4), out.Events[0].(query.RemoveEdge).EdgeID)
	assert.Equal(t, "fuel", out.Events[1].(query.KNN).POI)
}

func TestDecodeAnswers(t *testing.T) {
	s, err := query.DecodeAnswers(strings.NewReader(`{"results": [
		{"id": 1, "done": true, "processing_time": 0.5},
		{"id": 2, "possible": true, "path": [1, 2], "minimum_distance": 4},
		{"id": 3, "paths": [{"path": [1, 2]}]}
	]}`))
	require.NoError(t, err)
	require.Len(t, s.Results, 3)

	assert.True(t, *s.Results[0].Done)
	_, ok := s.Results[0].Reported(timecost.ModeDistance)
	assert.False(t, ok)

	v, ok := s.Results[1].Reported(timecost.ModeDistance)
	require.True(t, ok)
	assert.Equal(t, 4.0, v)
	_, ok = s.Results[1].Reported(timecost.ModeTime)
	assert.False(t, ok)

	assert.Nil(t, s.Results[2].Paths[0].Length)

	_, err = query.DecodeAnswers(strings.NewReader(`{"meta": {}}`))
	assert.ErrorIs(t, err, query.ErrDecode)
}

func TestAnswer_CombinedKeyWins(t *testing.T) {
	a := query.Answer{Cost: query.Float(2), MinimumTime: query.Float(9)}
	v, ok := a.Reported(timecost.ModeTime)
	require.True(t, ok)
	assert.Equal(t, 2.0, v)

	var buf bytes.Buffer
	require.NoError(t, query.EncodeAnswers(&buf, query.AnswerStream{Results: []query.Answer{a}}))
	assert.Contains(t, buf.String(), `"`+query.CostKey+`": 2`)
}
