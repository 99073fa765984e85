// SPDX-License-Identifier: MIT
// Package: roadgrade/builder
//
// api.go: the BuildDescription orchestrator and shared emission helpers.

package builder

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"github.com/katalvlaran/roadgrade/core"
)

// Constructor appends nodes and roads onto d using the resolved config.
// Constructors validate parameters first and return sentinel errors; they
// never panic.
type Constructor func(d *core.Description, cfg builderConfig) error

// BuildDescription resolves bopts once and applies every constructor in
// order onto a fresh Description. Constructor errors are wrapped with
// "BuildDescription: %w".
func BuildDescription(bopts []BuilderOption, cons ...Constructor) (core.Description, error) {
	cfg := newBuilderConfig(bopts...)
	d := core.Description{Meta: map[string]any{"generator": "roadgrade/builder"}}

	for i, fn := range cons {
		if fn == nil {
			return core.Description{}, fmt.Errorf("BuildDescription: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(&d, cfg); err != nil {
			return core.Description{}, fmt.Errorf("BuildDescription: %w", err)
		}
	}

	return d, nil
}

// addNode appends a node at (lat, lon) with drawn POI tags and returns its id.
func addNode(d *core.Description, cfg builderConfig, lat, lon float64) int64 {
	id := int64(len(d.Nodes) + 1)
	n := core.NodeSpec{ID: id, Lat: lat, Lon: lon}
	for _, tag := range cfg.poiTags {
		if cfg.chance(cfg.poiProb) {
			n.POIs = append(n.POIs, tag)
		}
	}
	d.Nodes = append(d.Nodes, n)

	return id
}

// addRoad appends a road u→v whose length is the great-circle distance
// between the endpoints.
func addRoad(d *core.Description, cfg builderConfig, u, v int64) error {
	a, b := int(u-1), int(v-1)
	if a < 0 || b < 0 || a >= len(d.Nodes) || b >= len(d.Nodes) {
		return fmt.Errorf("addRoad(%d→%d): %w", u, v, ErrConstructFailed)
	}
	pu := orb.Point{d.Nodes[a].Lon, d.Nodes[a].Lat}
	pv := orb.Point{d.Nodes[b].Lon, d.Nodes[b].Lat}
	length := geo.DistanceHaversine(pu, pv)
	cruise := cfg.uniform(minCruise, maxCruise, defaultCruise)
	avg := length / cruise

	e := core.EdgeSpec{
		ID:          int64(len(d.Edges) + 1),
		U:           u,
		V:           v,
		Length:      &length,
		AverageTime: &avg,
		OneWay:      cfg.chance(cfg.oneWayProb),
		RoadType:    cfg.roadType(),
	}
	if cfg.profileSlots > 0 {
		e.SpeedProfile = make([]float64, cfg.profileSlots)
		for i := range e.SpeedProfile {
			if cfg.closedSlots && cfg.chance(closedSlotOdds) {
				continue
			}
			e.SpeedProfile[i] = cruise * cfg.uniform(0.5, 1.5, 1)
		}
		// keep at least one open slot
		if cfg.closedSlots {
			e.SpeedProfile[0] = cruise
		}
	}
	d.Edges = append(d.Edges, e)

	return nil
}
