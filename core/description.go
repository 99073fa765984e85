// File: description.go
// Role: JSON graph description and the NewGraph loader.
// Determinism:
//   - Records and arcs are created in description order; the reverse record of a
//     bidirectional road is appended right after its forward record.

package core

import (
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Description is the parsed graph document consumed by NewGraph.
type Description struct {
	Meta  map[string]any `json:"meta,omitempty"`
	Nodes []NodeSpec     `json:"nodes"`
	Edges []EdgeSpec     `json:"edges"`
}

// NodeSpec describes one node. Missing coordinates default to zero.
type NodeSpec struct {
	ID   int64    `json:"id"`
	Lat  float64  `json:"lat"`
	Lon  float64  `json:"lon"`
	POIs []string `json:"pois,omitempty"`
}

// EdgeSpec describes one road. Length and AverageTime are pointers so that an
// absent weight can be told apart from a declared zero.
type EdgeSpec struct {
	ID           int64     `json:"id"`
	U            int64     `json:"u"`
	V            int64     `json:"v"`
	Length       *float64  `json:"length,omitempty"`
	AverageTime  *float64  `json:"average_time,omitempty"`
	SpeedProfile []float64 `json:"speed_profile,omitempty"`
	OneWay       bool      `json:"oneway"`
	RoadType     string    `json:"road_type,omitempty"`
}

// DecodeDescription reads a JSON graph description from r.
func DecodeDescription(r io.Reader) (Description, error) {
	var desc Description
	if err := json.NewDecoder(r).Decode(&desc); err != nil {
		return Description{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return desc, nil
}

// NewGraph builds a Graph from desc.
//
// Steps:
//  1. Register every node; duplicate ids → ErrDuplicateNode.
//  2. For every road, validate endpoints (ErrUnknownEndpoint) and uniqueness
//     (ErrDuplicateEdge), then create the forward record and its arc.
//  3. If the road is not one-way, create the reverse record {ID, true} with
//     swapped endpoints and its own copy of the speed profile.
//
// Complexity: O(V log V + E).
func NewGraph(desc Description) (*Graph, error) {
	g := &Graph{
		nodes:     make(map[int64]*Node, len(desc.Nodes)),
		edges:     make(map[EdgeRef]*Edge, 2*len(desc.Edges)),
		roads:     make(map[int64][]EdgeRef, len(desc.Edges)),
		adjacency: make(map[int64][]Arc, len(desc.Nodes)),
	}

	// 1) Nodes
	for _, ns := range desc.Nodes {
		if _, dup := g.nodes[ns.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateNode, ns.ID)
		}
		g.nodes[ns.ID] = &Node{
			ID:   ns.ID,
			Lat:  ns.Lat,
			Lon:  ns.Lon,
			Tags: slices.Clone(ns.POIs),
		}
	}
	g.nodeOrder = maps.Keys(g.nodes)
	slices.Sort(g.nodeOrder)

	// 2) Roads
	for _, es := range desc.Edges {
		if _, dup := g.roads[es.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateEdge, es.ID)
		}
		if _, ok := g.nodes[es.U]; !ok {
			return nil, fmt.Errorf("%w: edge %d u=%d", ErrUnknownEndpoint, es.ID, es.U)
		}
		if _, ok := g.nodes[es.V]; !ok {
			return nil, fmt.Errorf("%w: edge %d v=%d", ErrUnknownEndpoint, es.ID, es.V)
		}

		fwd := edgeFromSpec(es)
		g.insert(fwd)

		// 3) Reverse record with a distinct identity.
		if !es.OneWay {
			rev := edgeFromSpec(es)
			rev.Ref.Reverse = true
			rev.From, rev.To = es.V, es.U
			g.insert(rev)
		}
	}

	return g, nil
}

// edgeFromSpec creates a fresh forward record; slices are never shared between records.
func edgeFromSpec(es EdgeSpec) *Edge {
	e := &Edge{
		Ref:          EdgeRef{ID: es.ID},
		From:         es.U,
		To:           es.V,
		SpeedProfile: slices.Clone(es.SpeedProfile),
		OneWay:       es.OneWay,
		RoadType:     es.RoadType,
	}
	if e.RoadType == "" {
		e.RoadType = DefaultRoadType
	}
	if es.Length != nil {
		e.Length = *es.Length
		e.Declared |= WeightLength
	}
	if es.AverageTime != nil {
		e.AverageTime = *es.AverageTime
		e.Declared |= WeightAverageTime
	}

	return e
}

func (g *Graph) insert(e *Edge) {
	g.edges[e.Ref] = e
	g.roads[e.Ref.ID] = append(g.roads[e.Ref.ID], e.Ref)
	g.adjacency[e.From] = append(g.adjacency[e.From], Arc{To: e.To, Ref: e.Ref})
}
