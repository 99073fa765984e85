// SPDX-License-Identifier: MIT
// Package: roadgrade/builder
//
// config.go: internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   • rng          = nil        (pure unless seeded)
//   • origin       = (0, 0)
//   • spacing      = 0.001°     (≈111 m)
//   • oneWayProb   = 0
//   • profileSlots = 0          (constant average_time only)
//   • roadTypes    = ["local"]
//   • poiProb      = 0

package builder

import (
	"math/rand"

	"github.com/katalvlaran/roadgrade/core"
)

// builderConfig aggregates all knobs used by constructors. It is passed by
// value to constructors.
type builderConfig struct {
	rng *rand.Rand

	originLat, originLon float64
	spacing              float64

	oneWayProb   float64
	profileSlots int
	closedSlots  bool
	roadTypes    []string

	poiProb float64
	poiTags []string
}

const (
	defaultSpacing = 0.001
	// cruise speeds in m/s, drawn uniformly per road
	minCruise = 8.0
	maxCruise = 20.0
	// default cruise speed without an RNG
	defaultCruise = 13.9

	closedSlotOdds = 0.1
	probMin        = 0.0
	probMax        = 1.0
)

func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		spacing:   defaultSpacing,
		roadTypes: []string{core.DefaultRoadType},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// chance performs a Bernoulli trial; without an RNG only p == 1 succeeds.
func (c builderConfig) chance(p float64) bool {
	if c.rng == nil {
		return p >= probMax
	}

	return c.rng.Float64() < p
}

// uniform draws from [lo, hi); without an RNG it returns def.
func (c builderConfig) uniform(lo, hi, def float64) float64 {
	if c.rng == nil {
		return def
	}

	return lo + c.rng.Float64()*(hi-lo)
}

func (c builderConfig) roadType() string {
	if c.rng == nil || len(c.roadTypes) == 1 {
		return c.roadTypes[0]
	}

	return c.roadTypes[c.rng.Intn(len(c.roadTypes))]
}
