// Package roadgrade solves and grades query streams over a mutable,
// time-dependent road network.
//
// 🚀 What is roadgrade?
//
//	A solver and an independent checker that replay the same event stream:
//		• Mutations: remove_edge, modify_edge (allow-listed patches)
//		• Routing: constrained shortest path by distance or departure-time cost
//		• Alternatives: loopless k shortest paths (Yen) and diverse paths
//		• Approximation: weighted A* within an acceptable error percentage
//		• Nearest neighbours: POI search by euclidean, haversine or network distance
//		• Delivery assignment: clustering, greedy sequencing and 2-opt, plus a validator
//
// The solver (engine) and the verifier (verify) each own a replica built from
// the same graph description, so mutations are applied exactly once per side.
// A grading session (grader) pairs every event with its answer and records a
// verdict; batches of independent sessions run concurrently.
//
// Packages:
//
//	core/       - Description, Graph, directional edge records, patches
//	timecost/   - edge traversal cost, distance and time modes, path re-walk
//	dijkstra/   - one-to-one, one-to-all and weighted A* searches
//	kshortest/  - Yen, diverse paths, overlap penalty
//	nearest/    - KNN with a metric registry
//	assignment/ - delivery network, scheduler and route validator
//	query/      - events, answers, stream codecs
//	engine/     - the solver
//	verify/     - the verifier
//	grader/     - sessions, reports, metrics, batch grading
//	config/     - YAML settings
//	builder/    - seeded road network generators
//	cmd/roadgrade - CLI: solve, verify, grade, generate
//
// Quick ASCII example:
//
//	    1 ──10──▶ 2
//	     ╲        │
//	      20      5
//	        ╲     │
//	          ─── 3
//
//	shortest 1→3 by distance is 1,2,3 (15); removing road 1 leaves 1,3 (20).
//
//	go install github.com/katalvlaran/roadgrade/cmd/roadgrade@latest
package roadgrade
