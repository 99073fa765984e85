// SPDX-License-Identifier: MIT
// Package: roadgrade/builder
//
// impl_random_sparse.go: RandomSparse(n, p) constructor.
//
// Model:
//   • n intersections scattered uniformly in a square box of side n·spacing
//     anchored at the origin.
//   • Each unordered pair {i,j}, i<j, is joined by a road with probability p,
//     directed i→j when the road is drawn one-way.
//
// Contract:
//   • n ≥ 1 (else ErrTooFewVertices); 0 ≤ p ≤ 1 (else ErrInvalidProbability).
//   • An RNG is required (else ErrNeedRandSource).
//
// Complexity: O(n²) Bernoulli trials.

package builder

import (
	"fmt"

	"github.com/katalvlaran/roadgrade/core"
)

const (
	methodRandomSparse      = "RandomSparse"
	minRandomSparseVertices = 1
)

// RandomSparse returns a Constructor that samples a random road network.
func RandomSparse(n int, p float64) Constructor {
	return func(d *core.Description, cfg builderConfig) error {
		// 1) Validate parameters early.
		if n < minRandomSparseVertices {
			return fmt.Errorf("%s: n=%d < min=%d: %w",
				methodRandomSparse, n, minRandomSparseVertices, ErrTooFewVertices)
		}
		if p < probMin || p > probMax {
			return fmt.Errorf("%s: p=%.6f not in [%.1f,%.1f]: %w",
				methodRandomSparse, p, probMin, probMax, ErrInvalidProbability)
		}
		if cfg.rng == nil {
			return fmt.Errorf("%s: %w", methodRandomSparse, ErrNeedRandSource)
		}

		// 2) Scatter intersections.
		side := float64(n) * cfg.spacing
		ids := make([]int64, n)
		for i := range ids {
			lat := cfg.originLat + cfg.rng.Float64()*side
			lon := cfg.originLon + cfg.rng.Float64()*side
			ids[i] = addNode(d, cfg, lat, lon)
		}

		// 3) Bernoulli trial per unordered pair, i asc then j asc.
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if cfg.rng.Float64() >= p {
					continue
				}
				if err := addRoad(d, cfg, ids[i], ids[j]); err != nil {
					return fmt.Errorf("%s: %w", methodRandomSparse, err)
				}
			}
		}

		return nil
	}
}
