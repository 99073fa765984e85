// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Node, Edge, EdgeRef, Arc and Graph declarations plus sentinel errors.

package core

import "errors"

// Sentinel errors for core graph operations.
var (
	// ErrDuplicateNode indicates that two node specs share one id.
	ErrDuplicateNode = errors.New("core: duplicate node id")

	// ErrDuplicateEdge indicates that two edge specs share one id.
	ErrDuplicateEdge = errors.New("core: duplicate edge id")

	// ErrUnknownEndpoint indicates an edge whose u or v was never declared as a node.
	ErrUnknownEndpoint = errors.New("core: edge endpoint is not a declared node")

	// ErrNodeNotFound indicates an operation referenced a non-existent node.
	ErrNodeNotFound = errors.New("core: node not found")

	// ErrEdgeNotFound indicates an operation referenced a non-existent edge.
	ErrEdgeNotFound = errors.New("core: edge not found")

	// ErrDecode indicates a malformed graph description.
	ErrDecode = errors.New("core: cannot decode graph description")
)

// DefaultRoadType is assigned to edges whose description omits road_type.
const DefaultRoadType = "local"

// Weights is a bitmask of the edge weights that were declared in the input.
// Algorithms requiring a weight that was never declared treat the graph as
// malformed instead of silently reading a zero.
type Weights uint8

const (
	// WeightLength marks a declared length.
	WeightLength Weights = 1 << iota

	// WeightAverageTime marks a declared average traversal time.
	WeightAverageTime
)

// Has reports whether all bits of w are set.
func (m Weights) Has(w Weights) bool { return m&w == w }

// Node is an intersection of the road network.
type Node struct {
	// ID is the stable integer key of the node.
	ID int64

	// Lat and Lon are planar coordinates; they are also read as WGS84 degrees
	// by the great-circle metric.
	Lat float64
	Lon float64

	// Tags lists the POI categories attached to the node.
	Tags []string
}

// HasTag reports whether the node carries the given POI tag.
func (n *Node) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}

	return false
}

// EdgeRef is the identity of one directed edge record.
//
// ID is the road id from the description. Reverse is true only for the record
// materialised from a bidirectional road in the v→u direction.
type EdgeRef struct {
	ID      int64
	Reverse bool
}

// Edge is one directed, independently mutable edge record.
type Edge struct {
	// Ref identifies this record; it never changes.
	Ref EdgeRef

	// From and To are the directed endpoints; they never change.
	From int64
	To   int64

	// Length is the distance-mode weight.
	Length float64

	// AverageTime is the fallback time-mode weight used when SpeedProfile is empty.
	AverageTime float64

	// SpeedProfile holds one non-negative speed per 900-second slot, cyclic.
	SpeedProfile []float64

	// OneWay mirrors the declared (or patched) oneway attribute.
	OneWay bool

	// RoadType is the road category label (e.g. "primary", "local").
	RoadType string

	// Disabled edges are skipped by every search and structural check.
	Disabled bool

	// Declared records which weights were present in the input or set by a patch.
	Declared Weights
}

// Arc is one adjacency entry: the neighbour reached and the edge used.
type Arc struct {
	To  int64
	Ref EdgeRef
}

// Graph owns nodes, edge records and adjacency for one session.
//
// Topology (nodes, records, arcs) is fixed after NewGraph; only the mutable
// attributes of Edge records change afterwards.
type Graph struct {
	nodes     map[int64]*Node
	edges     map[EdgeRef]*Edge
	roads     map[int64][]EdgeRef // road id → its directional records, forward first
	adjacency map[int64][]Arc     // node id → outgoing arcs, declaration order
	nodeOrder []int64             // ids sorted ascending
}
