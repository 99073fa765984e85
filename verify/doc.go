// Package verify checks a subject's answers against an independent replica of
// the road graph.
//
// A Verifier replays mutation events on its replica and compares the
// reported done flag; path answers are re-walked on the replica with the same
// time-dependent cost model the solvers use:
//
//   - shortest_path: structure, self-consistency within 1e-2, and no worse
//     than the expected total by more than 1e-1. Cheaper than expected still
//     passes and is flagged Better;
//   - k_shortest_paths: every path valid, loopless, distinct and
//     self-consistent; the sorted lengths match the expected count and are not
//     worse than expected;
//   - k_shortest_paths_heuristic: exactly k valid paths, scored with
//     kshortest.Penalty;
//   - approx_shortest_path: scored by the fraction of distances within the
//     acceptable error percentage;
//   - knn: order-independent set equality with any acceptable expected set;
//   - assignment: assignment.Validate, scored by the total penalty time.
//
// Any value missing from the expected answer is recomputed on the replica.
package verify
