// SPDX-License-Identifier: MIT
// Package: roadgrade/builder
//
// options.go: functional options for the builder package.
//
// Contract:
//   • Options are functional (type BuilderOption func(*builderConfig)).
//   • Option constructors validate and panic on meaningless inputs;
//     constructors themselves return errors and never panic.
//   • Determinism is explicit: seeding is done via WithSeed or WithRand.

package builder

import (
	"math/rand"
)

// BuilderOption customizes the resolved builderConfig.
type BuilderOption func(*builderConfig)

// WithRand provides an explicit RNG. Panics on nil.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) {
		c.rng = r
	}
}

// WithSeed creates a new *rand.Rand with the given seed.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithOrigin sets the coordinate of the first generated node.
func WithOrigin(lat, lon float64) BuilderOption {
	return func(c *builderConfig) {
		c.originLat, c.originLon = lat, lon
	}
}

// WithSpacing sets the grid step (and the random scatter box side / n) in
// degrees. Panics if deg <= 0.
func WithSpacing(deg float64) BuilderOption {
	if deg <= 0 {
		panic("builder: WithSpacing(deg<=0)")
	}
	return func(c *builderConfig) {
		c.spacing = deg
	}
}

// WithOneWayProbability sets the share of roads emitted one-way.
// Panics outside [0,1].
func WithOneWayProbability(p float64) BuilderOption {
	if p < probMin || p > probMax {
		panic("builder: WithOneWayProbability(p∉[0,1])")
	}
	return func(c *builderConfig) {
		c.oneWayProb = p
	}
}

// WithSpeedProfiles attaches a speed profile of the given number of slots to
// every road. Slot speeds are drawn around the cruise speed; with closed=true
// roughly one slot in ten is closed (speed 0). Panics if slots < 0.
func WithSpeedProfiles(slots int, closed bool) BuilderOption {
	if slots < 0 {
		panic("builder: WithSpeedProfiles(slots<0)")
	}
	return func(c *builderConfig) {
		c.profileSlots = slots
		c.closedSlots = closed
	}
}

// WithRoadTypes sets the labels drawn per road. Panics when empty.
func WithRoadTypes(types ...string) BuilderOption {
	if len(types) == 0 {
		panic("builder: WithRoadTypes()")
	}
	cp := append([]string(nil), types...)
	return func(c *builderConfig) {
		c.roadTypes = cp
	}
}

// WithPOIs tags each node with each of tags independently with probability p.
// Panics outside [0,1].
func WithPOIs(p float64, tags ...string) BuilderOption {
	if p < probMin || p > probMax {
		panic("builder: WithPOIs(p∉[0,1])")
	}
	cp := append([]string(nil), tags...)
	return func(c *builderConfig) {
		c.poiProb = p
		c.poiTags = cp
	}
}
