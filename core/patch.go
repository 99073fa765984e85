// File: patch.go
// Role: Allow-listed edge patch (optional overrides for the mutable attributes).

package core

import (
	"encoding/json"
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// EdgePatch is a set of optional overrides for exactly the mutable edge
// attributes. Identity and endpoints (id, u, v) are never patchable.
//
// Keys present in the JSON object but outside the allow-list are collected in
// Rejected (sorted) and never applied.
type EdgePatch struct {
	Length       *float64
	AverageTime  *float64
	SpeedProfile []float64
	// HasSpeedProfile distinguishes "set to empty" from "not provided".
	HasSpeedProfile bool
	OneWay          *bool
	RoadType        *string

	Rejected []string
}

// IsEmpty reports whether no allow-listed override is present.
func (p EdgePatch) IsEmpty() bool {
	return p.Length == nil &&
		p.AverageTime == nil &&
		!p.HasSpeedProfile &&
		p.OneWay == nil &&
		p.RoadType == nil
}

// UnmarshalJSON decodes a patch object key by key against the allow-list.
func (p *EdgePatch) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: patch: %v", ErrDecode, err)
	}

	*p = EdgePatch{}
	keys := maps.Keys(raw)
	slices.Sort(keys)
	for _, key := range keys {
		val := raw[key]
		var err error
		switch key {
		case "length":
			p.Length = new(float64)
			err = json.Unmarshal(val, p.Length)
		case "average_time":
			p.AverageTime = new(float64)
			err = json.Unmarshal(val, p.AverageTime)
		case "speed_profile":
			p.HasSpeedProfile = true
			err = json.Unmarshal(val, &p.SpeedProfile)
		case "oneway", "one_way":
			p.OneWay = new(bool)
			err = json.Unmarshal(val, p.OneWay)
		case "road_type":
			p.RoadType = new(string)
			err = json.Unmarshal(val, p.RoadType)
		default:
			p.Rejected = append(p.Rejected, key)
		}
		if err != nil {
			return fmt.Errorf("%w: patch field %q: %v", ErrDecode, key, err)
		}
	}

	return nil
}

// MarshalJSON writes only the provided overrides.
func (p EdgePatch) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, 5)
	if p.Length != nil {
		out["length"] = *p.Length
	}
	if p.AverageTime != nil {
		out["average_time"] = *p.AverageTime
	}
	if p.HasSpeedProfile {
		out["speed_profile"] = p.SpeedProfile
	}
	if p.OneWay != nil {
		out["oneway"] = *p.OneWay
	}
	if p.RoadType != nil {
		out["road_type"] = *p.RoadType
	}

	return json.Marshal(out)
}

// apply merges p onto e and re-enables it. Slices are copied so that two
// directional records patched from one EdgePatch never alias.
func (p EdgePatch) apply(e *Edge) {
	if p.Length != nil {
		e.Length = *p.Length
		e.Declared |= WeightLength
	}
	if p.AverageTime != nil {
		e.AverageTime = *p.AverageTime
		e.Declared |= WeightAverageTime
	}
	if p.HasSpeedProfile {
		e.SpeedProfile = slices.Clone(p.SpeedProfile)
	}
	if p.OneWay != nil {
		e.OneWay = *p.OneWay
	}
	if p.RoadType != nil {
		e.RoadType = *p.RoadType
	}
	e.Disabled = false
}
