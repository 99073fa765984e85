package core_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/roadgrade/core"
)

func f64(v float64) *float64 { return &v }

// triangle is the three-node network used across the suite:
//
//	1→2 (10, one-way), 2↔3 (5), 1↔3 (20).
func triangle() core.Description {
	return core.Description{
		Nodes: []core.NodeSpec{
			{ID: 1, Lat: 0, Lon: 0, POIs: []string{"cafe"}},
			{ID: 2, Lat: 0, Lon: 1},
			{ID: 3, Lat: 1, Lon: 1, POIs: []string{"cafe", "fuel"}},
		},
		Edges: []core.EdgeSpec{
			{ID: 1, U: 1, V: 2, Length: f64(10), AverageTime: f64(10), OneWay: true, RoadType: "primary"},
			{ID: 2, U: 2, V: 3, Length: f64(5), AverageTime: f64(5)},
			{ID: 3, U: 1, V: 3, Length: f64(20), AverageTime: f64(20), SpeedProfile: []float64{1, 2}},
		},
	}
}

func mustGraph(t *testing.T, desc core.Description) *core.Graph {
	t.Helper()
	g, err := core.NewGraph(desc)
	require.NoError(t, err)

	return g
}

func TestNewGraph_MaterialisesReverseWithDistinctIdentity(t *testing.T) {
	g := mustGraph(t, triangle())

	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, 3, g.RoadCount())
	assert.Equal(t, 5, g.EdgeCount()) // road 1 is one-way

	refs := g.RoadRefs(3)
	require.Len(t, refs, 2)
	assert.Equal(t, core.EdgeRef{ID: 3}, refs[0])
	assert.Equal(t, core.EdgeRef{ID: 3, Reverse: true}, refs[1])

	fwd, err := g.Edge(refs[0])
	require.NoError(t, err)
	rev, err := g.Edge(refs[1])
	require.NoError(t, err)
	assert.NotSame(t, fwd, rev)
	assert.Equal(t, int64(1), fwd.From)
	assert.Equal(t, int64(3), rev.From)
	assert.Equal(t, int64(1), rev.To)

	// Speed profiles are copies, not shared backing arrays.
	rev.SpeedProfile[0] = 99
	assert.Equal(t, 1.0, fwd.SpeedProfile[0])
}

func TestNewGraph_Defaults(t *testing.T) {
	g := mustGraph(t, core.Description{
		Nodes: []core.NodeSpec{{ID: 1}, {ID: 2}},
		Edges: []core.EdgeSpec{{ID: 7, U: 1, V: 2, OneWay: true}},
	})

	e, err := g.Edge(core.EdgeRef{ID: 7})
	require.NoError(t, err)
	assert.Equal(t, core.DefaultRoadType, e.RoadType)
	assert.False(t, e.Declared.Has(core.WeightLength))
	assert.False(t, e.Declared.Has(core.WeightAverageTime))
}

func TestNewGraph_RejectsMalformedDescriptions(t *testing.T) {
	_, err := core.NewGraph(core.Description{Nodes: []core.NodeSpec{{ID: 1}, {ID: 1}}})
	assert.ErrorIs(t, err, core.ErrDuplicateNode)

	_, err = core.NewGraph(core.Description{
		Nodes: []core.NodeSpec{{ID: 1}, {ID: 2}},
		Edges: []core.EdgeSpec{{ID: 1, U: 1, V: 2}, {ID: 1, U: 2, V: 1}},
	})
	assert.ErrorIs(t, err, core.ErrDuplicateEdge)

	_, err = core.NewGraph(core.Description{
		Nodes: []core.NodeSpec{{ID: 1}},
		Edges: []core.EdgeSpec{{ID: 1, U: 1, V: 9}},
	})
	assert.ErrorIs(t, err, core.ErrUnknownEndpoint)
}

func TestDisable_IsIdempotent(t *testing.T) {
	g := mustGraph(t, triangle())

	assert.True(t, g.Disable(2))
	assert.True(t, g.Disable(2), "second disable still reports existence")
	for _, ref := range g.RoadRefs(2) {
		e, _ := g.Edge(ref)
		assert.True(t, e.Disabled)
	}

	assert.False(t, g.Disable(42))
}

func TestPatch_EmptyOverridesAlwaysFail(t *testing.T) {
	g := mustGraph(t, triangle())
	g.Disable(1)

	assert.False(t, g.Patch(1, core.EdgePatch{}))
	e, _ := g.Edge(core.EdgeRef{ID: 1})
	assert.True(t, e.Disabled, "a rejected patch must not re-enable the edge")
}

func TestPatch_MergesAndReEnables(t *testing.T) {
	g := mustGraph(t, triangle())
	g.Disable(3)

	ok := g.Patch(3, core.EdgePatch{Length: f64(7), HasSpeedProfile: true, SpeedProfile: []float64{3}})
	require.True(t, ok)

	for _, ref := range g.RoadRefs(3) {
		e, _ := g.Edge(ref)
		assert.False(t, e.Disabled)
		assert.Equal(t, 7.0, e.Length)
		assert.Equal(t, 20.0, e.AverageTime, "fields without override stay")
		assert.Equal(t, []float64{3}, e.SpeedProfile)
	}

	fwd, _ := g.Edge(core.EdgeRef{ID: 3})
	rev, _ := g.Edge(core.EdgeRef{ID: 3, Reverse: true})
	assert.Equal(t, int64(1), fwd.From, "endpoints are never patched")
	assert.Equal(t, int64(3), rev.From)

	fwd.SpeedProfile[0] = 0
	assert.Equal(t, 3.0, rev.SpeedProfile[0])

	assert.False(t, g.Patch(99, core.EdgePatch{Length: f64(1)}))
}

func TestEdgePatch_UnmarshalAllowList(t *testing.T) {
	var p core.EdgePatch
	err := json.Unmarshal([]byte(`{"length": 3.5, "u": 9, "id": 4, "oneway": true, "road_type": "primary"}`), &p)
	require.NoError(t, err)

	require.NotNil(t, p.Length)
	assert.Equal(t, 3.5, *p.Length)
	require.NotNil(t, p.OneWay)
	assert.True(t, *p.OneWay)
	require.NotNil(t, p.RoadType)
	assert.Equal(t, "primary", *p.RoadType)
	assert.Equal(t, []string{"id", "u"}, p.Rejected)
	assert.False(t, p.IsEmpty())

	var onlyUnknown core.EdgePatch
	require.NoError(t, json.Unmarshal([]byte(`{"v": 2}`), &onlyUnknown))
	assert.True(t, onlyUnknown.IsEmpty())

	var bad core.EdgePatch
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"length": "long"}`), &bad), core.ErrDecode)
}

func TestDisableRef_AffectsOneDirection(t *testing.T) {
	g := mustGraph(t, triangle())

	fwd := core.EdgeRef{ID: 2}
	rev := core.EdgeRef{ID: 2, Reverse: true}
	assert.True(t, g.DisableRef(fwd))
	assert.False(t, g.DisableRef(fwd), "already disabled")

	e, _ := g.Edge(rev)
	assert.False(t, e.Disabled)

	g.RestoreRef(fwd)
	e, _ = g.Edge(fwd)
	assert.False(t, e.Disabled)
}

func TestWithDisabled_RestoresOnPanic(t *testing.T) {
	g := mustGraph(t, triangle())
	g.Disable(1) // pre-existing state must survive the scope

	refs := []core.EdgeRef{{ID: 1}, {ID: 2}, {ID: 3, Reverse: true}}
	assert.Panics(t, func() {
		g.WithDisabled(refs, func() {
			e, _ := g.Edge(core.EdgeRef{ID: 2})
			assert.True(t, e.Disabled)
			panic("spur search failed")
		})
	})

	e1, _ := g.Edge(core.EdgeRef{ID: 1})
	e2, _ := g.Edge(core.EdgeRef{ID: 2})
	e3, _ := g.Edge(core.EdgeRef{ID: 3, Reverse: true})
	assert.True(t, e1.Disabled, "edges disabled before the scope stay disabled")
	assert.False(t, e2.Disabled)
	assert.False(t, e3.Disabled)
}

func TestQueries(t *testing.T) {
	g := mustGraph(t, triangle())

	assert.Equal(t, []int64{1, 2, 3}, g.NodeIDs())
	nodes := g.Nodes()
	require.Len(t, nodes, 3)
	for i, n := range nodes {
		assert.Equal(t, g.NodeIDs()[i], n.ID)
	}
	assert.Equal(t, []int64{1, 3}, g.NodesWithTag("cafe"))
	assert.Empty(t, g.NodesWithTag("museum"))

	arcs := g.Adjacent(1)
	require.Len(t, arcs, 2)
	assert.Equal(t, core.Arc{To: 2, Ref: core.EdgeRef{ID: 1}}, arcs[0])
	assert.Equal(t, core.Arc{To: 3, Ref: core.EdgeRef{ID: 3}}, arcs[1])

	assert.Len(t, g.ArcsBetween(3, 2), 1)
	assert.Empty(t, g.ArcsBetween(2, 1), "road 1 is one-way")

	_, err := g.Node(77)
	assert.ErrorIs(t, err, core.ErrNodeNotFound)
	_, err = g.Edge(core.EdgeRef{ID: 1, Reverse: true})
	assert.ErrorIs(t, err, core.ErrEdgeNotFound)
}

func TestDecodeDescription(t *testing.T) {
	doc := `{
	  "nodes": [{"id": 1, "lat": 0.5, "lon": 1.5, "pois": ["school"]}, {"id": 2}],
	  "edges": [{"id": 10, "u": 1, "v": 2, "length": 4, "oneway": true}]
	}`
	desc, err := core.DecodeDescription(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, desc.Edges, 1)
	require.NotNil(t, desc.Edges[0].Length)
	assert.Nil(t, desc.Edges[0].AverageTime)

	_, err = core.DecodeDescription(strings.NewReader(`{"nodes": 3}`))
	assert.ErrorIs(t, err, core.ErrDecode)
}
