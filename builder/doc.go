// Package builder generates deterministic road-network fixtures as
// core.Description values.
//
// The package offers:
//
//   - BuildDescription(opts, cons...): resolves options once and applies
//     constructors in order onto one Description.
//   - Constructors:
//     – Grid(rows, cols):        orthogonal street grid, 4-neighbourhood.
//     – RandomSparse(n, p):      scattered intersections, each pair joined with probability p.
//     – Path(n):                 a single road of n nodes.
//   - Options (functional, panicking on meaningless values):
//     – WithSeed / WithRand:     RNG for stochastic choices.
//     – WithOrigin / WithSpacing: coordinate frame of generated nodes.
//     – WithOneWayProbability:   share of roads emitted one-way.
//     – WithSpeedProfiles:       number of 900 s slots per profile (0 = none).
//     – WithRoadTypes:           labels drawn uniformly per road.
//     – WithPOIs:                tags attached to nodes with a given probability.
//
// Lengths are great-circle distances between endpoint coordinates; average
// times divide the length by a drawn cruise speed.
//
// Determinism: the same options, seed and constructor order yield an identical
// Description. Node ids and edge ids are assigned sequentially from 1 in
// emission order, continuing across constructors.
package builder
