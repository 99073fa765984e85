package query

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/katalvlaran/roadgrade/assignment"
	"github.com/katalvlaran/roadgrade/core"
	"github.com/katalvlaran/roadgrade/nearest"
)

// ErrDecode indicates malformed event or answer JSON.
var ErrDecode = errors.New("query: cannot decode")

// Type is the wire tag of an event.
type Type string

// Known event types.
const (
	TypeRemoveEdge              Type = "remove_edge"
	TypeModifyEdge              Type = "modify_edge"
	TypeShortestPath            Type = "shortest_path"
	TypeKShortestPaths          Type = "k_shortest_paths"
	TypeKShortestPathsHeuristic Type = "k_shortest_paths_heuristic"
	TypeApproxShortestPath      Type = "approx_shortest_path"
	TypeKNN                     Type = "knn"
	TypeAssignment              Type = "assignment"
)

// Event is one entry of a query stream.
type Event interface {
	// Kind returns the event's type tag.
	Kind() Type
	// QueryID returns the raw id, echoed verbatim into the answer.
	QueryID() json.RawMessage
}

// Header carries the fields shared by every event. The id is kept raw so that
// numeric and string ids round-trip unchanged.
type Header struct {
	ID   json.RawMessage `json:"id,omitempty"`
	Type Type            `json:"type"`
}

// QueryID implements Event.
func (h Header) QueryID() json.RawMessage { return h.ID }

// RemoveEdge disables a road.
type RemoveEdge struct {
	Header
	EdgeID int64 `json:"edge_id"`
}

// Kind implements Event.
func (RemoveEdge) Kind() Type { return TypeRemoveEdge }

// ModifyEdge patches a road. A missing patch decodes as empty.
type ModifyEdge struct {
	Header
	EdgeID int64          `json:"edge_id"`
	Patch  core.EdgePatch `json:"patch"`
}

// Kind implements Event.
func (ModifyEdge) Kind() Type { return TypeModifyEdge }

// Constraints restrict a shortest-path search.
type Constraints struct {
	ForbiddenNodes     []int64  `json:"forbidden_nodes,omitempty"`
	ForbiddenRoadTypes []string `json:"forbidden_road_types,omitempty"`
}

// ShortestPath asks for the cheapest constrained path.
type ShortestPath struct {
	Header
	Source      int64       `json:"source"`
	Target      int64       `json:"target"`
	Mode        string      `json:"mode,omitempty"`
	Constraints Constraints `json:"constraints"`
}

// Kind implements Event.
func (ShortestPath) Kind() Type { return TypeShortestPath }

// KShortestPaths asks for up to K loopless paths. K defaults to 1.
type KShortestPaths struct {
	Header
	Source int64  `json:"source"`
	Target int64  `json:"target"`
	K      int    `json:"k"`
	Mode   string `json:"mode,omitempty"`
}

// Kind implements Event.
func (KShortestPaths) Kind() Type { return TypeKShortestPaths }

// KShortestPathsHeuristic asks for K dissimilar distance-mode paths.
type KShortestPathsHeuristic struct {
	Header
	Source           int64   `json:"source"`
	Target           int64   `json:"target"`
	K                int     `json:"k"`
	OverlapThreshold float64 `json:"overlap_threshold"`
}

// Kind implements Event.
func (KShortestPathsHeuristic) Kind() Type { return TypeKShortestPathsHeuristic }

// Pair is one source/target request of an approximate batch.
type Pair struct {
	Source int64 `json:"source"`
	Target int64 `json:"target"`
}

// ApproxShortestPath asks for distances within AcceptableErrorPct of optimal.
type ApproxShortestPath struct {
	Header
	Queries            []Pair  `json:"queries"`
	TimeBudgetMS       float64 `json:"time_budget_ms,omitempty"`
	AcceptableErrorPct float64 `json:"acceptable_error_pct"`
}

// Kind implements Event.
func (ApproxShortestPath) Kind() Type { return TypeApproxShortestPath }

// KNN asks for the K nearest nodes tagged POI. K defaults to 1.
type KNN struct {
	Header
	POI        string        `json:"poi"`
	QueryPoint nearest.Point `json:"query_point"`
	K          int           `json:"k"`
	Metric     string        `json:"metric,omitempty"`
}

// Kind implements Event.
func (KNN) Kind() Type { return TypeKNN }

// Query converts the event into a nearest.Query.
func (e KNN) Query() nearest.Query {
	return nearest.Query{POI: e.POI, Point: e.QueryPoint, K: e.K, Metric: e.Metric}
}

// Assignment asks for routes serving Orders with Fleet.
type Assignment struct {
	Header
	Orders []assignment.RawOrder `json:"orders"`
	Fleet  assignment.Fleet      `json:"fleet"`
}

// Kind implements Event.
func (Assignment) Kind() Type { return TypeAssignment }

// Unknown is an event whose type is not recognised. It is answered with an
// error message rather than rejected at decode time.
type Unknown struct {
	Header
}

// Kind implements Event.
func (u Unknown) Kind() Type { return u.Type }

// DecodeEvent decodes one tagged event.
func DecodeEvent(data []byte) (Event, error) {
	var h Header
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("%w: event header: %v", ErrDecode, err)
	}

	var ev Event
	switch h.Type {
	case TypeRemoveEdge:
		ev = &RemoveEdge{}
	case TypeModifyEdge:
		ev = &ModifyEdge{}
	case TypeShortestPath:
		ev = &ShortestPath{}
	case TypeKShortestPaths:
		ev = &KShortestPaths{K: 1}
	case TypeKShortestPathsHeuristic:
		ev = &KShortestPathsHeuristic{}
	case TypeApproxShortestPath:
		ev = &ApproxShortestPath{}
	case TypeKNN:
		ev = &KNN{K: 1}
	case TypeAssignment:
		ev = &Assignment{}
	default:
		return Unknown{Header: h}, nil
	}
	if err := json.Unmarshal(data, ev); err != nil {
		return nil, fmt.Errorf("%w: %s event: %v", ErrDecode, h.Type, err)
	}

	return deref(ev), nil
}

// deref returns the value form of the decoded event so that callers can type
// switch on value types only.
func deref(ev Event) Event {
	switch e := ev.(type) {
	case *RemoveEdge:
		return *e
	case *ModifyEdge:
		return *e
	case *ShortestPath:
		return *e
	case *KShortestPaths:
		return *e
	case *KShortestPathsHeuristic:
		return *e
	case *ApproxShortestPath:
		return *e
	case *KNN:
		return *e
	case *Assignment:
		return *e
	}

	return ev
}

// MarshalEvent encodes ev with its type tag set from Kind.
func MarshalEvent(ev Event) ([]byte, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err = json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	tag, err := json.Marshal(ev.Kind())
	if err != nil {
		return nil, err
	}
	fields["type"] = tag

	return json.Marshal(fields)
}
