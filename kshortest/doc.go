// Package kshortest enumerates several source→target paths over a core.Graph.
//
// Two strategies are provided:
//
//   - Yen: the exact K shortest loopless paths, ascending by cost.
//   - Diverse: a heuristic set of K dissimilar paths built by repeated
//     shortest-path searches with multiplicative penalties on already used roads.
//
// Yen:
//
//	A holds accepted paths (ascending by cost); B is a min-heap of candidates
//	keyed by (cost, node sequence) with lexicographic tie-break. For every prefix
//	of the last accepted path the spur search runs with
//	  – the next record of every accepted path sharing that root disabled, and
//	  – the root nodes before the spur node excluded,
//	inside core.Graph.WithDisabled, so the graph is restored on every exit path.
//	Candidate costs are re-derived by timecost.WalkRefs over the spliced records.
//	In time mode the spur search departs at the root's arrival time.
//
// Determinism:
//
//	Equal-cost candidates pop in lexicographic node order; the underlying
//	searches break ties by node id.
//
// Complexity:
//
//	Yen: O(K · L · (V + E) log V) for paths of at most L nodes.
//	Diverse: O(K · attempts · (V + E) log V).
package kshortest
