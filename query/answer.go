package query

import (
	"encoding/json"

	"github.com/katalvlaran/roadgrade/assignment"
	"github.com/katalvlaran/roadgrade/timecost"
)

// CostKey is the combined wire key for a shortest-path total.
const CostKey = "minimum_time/minimum_distance"

// PathLength is one entry of a K-shortest answer. Length is a pointer so that
// a missing length can be told apart from zero.
type PathLength struct {
	Path   []int64  `json:"path"`
	Length *float64 `json:"length,omitempty"`
}

// Distance is one entry of an approximate answer. Expected answers carry
// Shortest; produced answers carry Approx.
type Distance struct {
	Source   int64    `json:"source"`
	Target   int64    `json:"target"`
	Approx   *float64 `json:"approx_shortest_distance,omitempty"`
	Shortest *float64 `json:"shortest_distance,omitempty"`
}

// Metrics summarises an assignment answer.
type Metrics struct {
	TotalDeliveryTime float64 `json:"total_delivery_time"`
}

// Answer is one result of an answer stream. Every field is optional on the
// wire; which ones are meaningful depends on the event type.
type Answer struct {
	ID json.RawMessage `json:"id,omitempty"`

	// mutations
	Done *bool `json:"done,omitempty"`

	// shortest_path and k_shortest_paths
	Possible        *bool        `json:"possible,omitempty"`
	Path            []int64      `json:"path,omitempty"`
	Cost            *float64     `json:"minimum_time/minimum_distance,omitempty"`
	MinimumTime     *float64     `json:"minimum_time,omitempty"`
	MinimumDistance *float64     `json:"minimum_distance,omitempty"`
	Paths           []PathLength `json:"paths,omitempty"` // non-nil is always encoded

	// knn; Euclidian and Haversine appear in expected answers only
	Nodes     []int64 `json:"nodes,omitempty"` // non-nil is always encoded
	Euclidian []int64 `json:"euclidian,omitempty"`
	Haversine []int64 `json:"haversine,omitempty"`

	// approx_shortest_path
	Distances []Distance `json:"distances,omitempty"`

	// assignment
	Assignments []assignment.Assignment `json:"assignments,omitempty"`
	Metrics     *Metrics                `json:"metrics,omitempty"`

	ProcessingTime *float64 `json:"processing_time,omitempty"`
	Error          string   `json:"error,omitempty"`
}

// MarshalJSON keeps an empty but non-nil Paths or Nodes on the wire as [],
// so an answer with no paths or no neighbours still carries its key.
func (a Answer) MarshalJSON() ([]byte, error) {
	type plain Answer
	w := struct {
		plain
		Paths *[]PathLength `json:"paths,omitempty"`
		Nodes *[]int64      `json:"nodes,omitempty"`
	}{plain: plain(a)}
	if a.Paths != nil {
		w.Paths = &a.Paths
	}
	if a.Nodes != nil {
		w.Nodes = &a.Nodes
	}

	return json.Marshal(w)
}

// Reported returns the shortest-path total, preferring the combined key and
// falling back to the mode-specific one.
func (a Answer) Reported(mode timecost.Mode) (float64, bool) {
	switch {
	case a.Cost != nil:
		return *a.Cost, true
	case mode == timecost.ModeTime && a.MinimumTime != nil:
		return *a.MinimumTime, true
	case mode == timecost.ModeDistance && a.MinimumDistance != nil:
		return *a.MinimumDistance, true
	}

	return 0, false
}

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }
