// SPDX-License-Identifier: MIT
// Package: roadgrade/builder
//
// impl_path.go: Path(n) constructor: one road of n nodes heading east.

package builder

import (
	"fmt"

	"github.com/katalvlaran/roadgrade/core"
)

const (
	methodPath   = "Path"
	minPathNodes = 2
)

// Path returns a Constructor that emits n nodes one spacing apart along the
// origin's parallel, joined consecutively.
func Path(n int) Constructor {
	return func(d *core.Description, cfg builderConfig) error {
		if n < minPathNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodPath, n, minPathNodes, ErrTooFewVertices)
		}

		prev := addNode(d, cfg, cfg.originLat, cfg.originLon)
		for i := 1; i < n; i++ {
			cur := addNode(d, cfg, cfg.originLat, cfg.originLon+float64(i)*cfg.spacing)
			if err := addRoad(d, cfg, prev, cur); err != nil {
				return fmt.Errorf("%s: %w", methodPath, err)
			}
			prev = cur
		}

		return nil
	}
}
