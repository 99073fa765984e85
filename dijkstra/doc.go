// Package dijkstra computes constrained shortest paths over a core.Graph.
//
// Overview:
//
//   - ShortestPath finds the cheapest source→target path under the distance or
//     the time objective, honouring forbidden nodes, forbidden road types and
//     disabled records.
//   - NewTree runs the same search one-to-all and answers PathTo for any node.
//   - Approximate is a weighted A* over edge lengths with a planar heuristic,
//     trading optimality for speed within a (1+ε) factor.
//
// Time-dependent weights:
//
//	In time mode the weight of an edge is its crossing time when departing at the
//	current best label of its source node (timecost.EdgeCost). The weight is a
//	function of the label, not a constant, but stays non-negative, so the usual
//	settle-once argument still holds.
//
// Constraints:
//
//   - If the source or the target is forbidden the result is "no path".
//   - Relaxation skips disabled records, forbidden road types, and arcs into
//     forbidden nodes.
//
// Determinism:
//
//   - The priority queue orders by (priority, node id), and adjacency is scanned
//     in declaration order, so equal-cost ties resolve identically across runs.
//
// Complexity:
//
//   - Time:  O((V + E) log V) with lazy decrease-key.
//   - Space: O(V + E) for labels, parents and stale heap entries.
//
// Errors (sentinel):
//
//   - ErrNilGraph: nil *core.Graph.
//   - ErrBadEpsilon: negative heuristic weight.
//   - timecost.ErrMissingWeight (wrapped) when an edge lacks the weight required
//     by the objective. Callers treat it as a fatal precondition.
package dijkstra
