// Package assignment validates and builds pickup/dropoff route assignments.
//
// The Network is the static, time-weighted view of a road description: every
// road contributes its average_time in both directions unless one-way, the
// cheapest record wins between parallel roads, and runtime mutations are not
// visible.
//
// Validate checks a proposed set of Assignments against the orders:
//
//   - every route node exists and every consecutive pair is a Network arc;
//   - every order is covered by exactly one assignment;
//   - within its route, an order's first pickup occurrence is followed by a
//     strictly later dropoff occurrence.
//
// On success it returns the penalty time: for every order, the cumulative
// route time at its matched dropoff, summed.
//
// Schedule produces Assignments for a fleet: orders are clustered by bearing
// and distance from the depot, each cluster is sequenced greedily (nearest
// admissible stop, pickup before dropoff), the stop order is improved by
// first-improvement 2-opt that keeps precedence valid, and each leg is expanded
// into the Network's shortest path so routes use consecutive arcs only.
package assignment
