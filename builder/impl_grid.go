// SPDX-License-Identifier: MIT
// Package: roadgrade/builder
//
// impl_grid.go: Grid(rows, cols) constructor.
//
// Model:
//   • rows×cols intersections placed row-major from the origin, one spacing apart.
//   • Roads to the right (r,c+1) and bottom (r+1,c) neighbours.
//
// Determinism:
//   • Node order: r asc, then c asc.
//   • Road order: for each (r,c) emit Right then Bottom when present.

package builder

import (
	"fmt"

	"github.com/katalvlaran/roadgrade/core"
)

const (
	methodGrid = "Grid"
	minGridDim = 1
)

// Grid returns a Constructor that builds a rows×cols street grid.
func Grid(rows, cols int) Constructor {
	return func(d *core.Description, cfg builderConfig) error {
		// 1) Validate parameters early.
		if rows < minGridDim || cols < minGridDim {
			return fmt.Errorf("%s: rows=%d, cols=%d (each must be ≥ %d): %w",
				methodGrid, rows, cols, minGridDim, ErrTooFewVertices)
		}

		// 2) Place intersections row-major.
		ids := make([]int64, 0, rows*cols)
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				lat := cfg.originLat + float64(r)*cfg.spacing
				lon := cfg.originLon + float64(c)*cfg.spacing
				ids = append(ids, addNode(d, cfg, lat, lon))
			}
		}
		at := func(r, c int) int64 { return ids[r*cols+c] }

		// 3) Emit Right then Bottom roads.
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				if c+1 < cols {
					if err := addRoad(d, cfg, at(r, c), at(r, c+1)); err != nil {
						return fmt.Errorf("%s: %w", methodGrid, err)
					}
				}
				if r+1 < rows {
					if err := addRoad(d, cfg, at(r, c), at(r+1, c)); err != nil {
						return fmt.Errorf("%s: %w", methodGrid, err)
					}
				}
			}
		}

		return nil
	}
}
