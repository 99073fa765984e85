// Package core provides the mutable road-network store shared by every solver
// and verifier in roadgrade.
//
// A Graph G = (V,E) is loaded once from a Description and then only mutated
// through two road-level operations, Disable and Patch, plus the
// direction-level DisableRef/RestoreRef pair used for scoped spur searches.
//
// Model:
//
//   - Node: integer id, planar coordinates (lat, lon) and POI tags. Immutable.
//   - Edge: one directed record. A road declared "not one-way" is materialised
//     as two records, EdgeRef{ID, false} and EdgeRef{ID, true}, that never share
//     state: disabling or patching one direction record leaves the other intact.
//   - Adjacency: node id → ordered []Arc in declaration order. Arc order is the
//     iteration order used by every algorithm, which keeps results reproducible.
//
// Road-level vs direction-level mutation:
//
//	Disable(id)        // every direction of road id; reports whether the road exists
//	Patch(id, patch)   // allow-listed merge onto every direction; empty patch → false
//	DisableRef(ref)    // exactly one direction; returns whether it changed state
//	RestoreRef(ref)    // undo of DisableRef
//
// Determinism:
//
//   - NodeIDs(), NodesWithTag() return ids sorted ascending.
//   - Adjacent(id) preserves input declaration order.
//
// Concurrency:
//
//   - A Graph is owned by exactly one solving or verification session and is not
//     safe for concurrent mutation. Sessions never share a Graph; build one per
//     session with NewGraph(desc).
//
// Errors:
//
//	ErrDuplicateNode   - two nodes share an id.
//	ErrDuplicateEdge   - two edges share an id.
//	ErrUnknownEndpoint - an edge references a node that was not declared.
//	ErrNodeNotFound    - a lookup referenced a missing node.
//	ErrEdgeNotFound    - a lookup referenced a missing edge.
//	ErrDecode          - the JSON description could not be decoded.
package core
