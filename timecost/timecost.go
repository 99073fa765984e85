// Package timecost implements the edge traversal cost model shared by every
// solver and verifier: constant length in distance mode, and a time-of-day
// dependent crossing time in time mode.
//
// Speed profiles divide the day into equal 900-second slots, cyclic over the
// profile length. Crossing an edge walks slot by slot from the departure time:
//
//   - speed ≤ 0: the edge is impassable for the rest of the slot, the clock jumps
//     to the next slot boundary, no distance is consumed and the skipped span is
//     not added to the crossing time;
//   - otherwise the traveller covers min(remaining length, speed·time left in slot).
//
// Edges without a profile cost their constant AverageTime.
package timecost

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/roadgrade/core"
)

// SlotSeconds is the duration of one speed-profile slot.
const SlotSeconds = 900.0

// Sentinel errors returned by the cost model.
var (
	// ErrMissingWeight indicates an edge lacks the weight its objective needs.
	// It signals a malformed graph rather than a bad answer.
	ErrMissingWeight = errors.New("timecost: edge lacks the weight required by the objective")

	// ErrUnknownMode indicates an unsupported objective string.
	ErrUnknownMode = errors.New("timecost: unknown objective mode")

	// ErrNoArc indicates that two consecutive path nodes are not joined by a usable edge.
	ErrNoArc = errors.New("timecost: no usable edge between consecutive nodes")

	// ErrUnreachableSlot indicates a speed profile with no positive slot: no
	// departure time ever lets the traveller move.
	ErrUnreachableSlot = errors.New("timecost: speed profile has no positive slot")
)

// Mode is the optimisation objective.
type Mode int

const (
	// ModeDistance sums edge lengths.
	ModeDistance Mode = iota

	// ModeTime accumulates time-dependent crossing times along the path.
	ModeTime
)

// String returns the wire name of the mode.
func (m Mode) String() string {
	if m == ModeTime {
		return "time"
	}

	return "distance"
}

// ParseMode maps the wire names "distance" and "time"; the empty string means distance.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "distance":
		return ModeDistance, nil
	case "time":
		return ModeTime, nil
	default:
		return ModeDistance, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// CrossTime returns the seconds needed to traverse e when departing at start
// (seconds since the profile epoch).
//
// A profile without any positive slot would never let the traveller move;
// CrossTime returns +Inf in that case rather than looping forever.
//
// Complexity: O(slots visited), bounded by the profile length per lap.
func CrossTime(e *core.Edge, start float64) float64 {
	if len(e.SpeedProfile) == 0 {
		return e.AverageTime
	}
	if !hasPositiveSlot(e.SpeedProfile) {
		return math.Inf(1)
	}

	slots := float64(len(e.SpeedProfile))
	remaining := e.Length
	clock := start
	elapsed := 0.0

	for remaining > 0 {
		slotStart := math.Floor(clock/SlotSeconds) * SlotSeconds
		idx := int(math.Mod(math.Floor(clock/SlotSeconds), slots))
		if idx < 0 {
			idx += len(e.SpeedProfile)
		}
		speed := e.SpeedProfile[idx]
		next := slotStart + SlotSeconds
		left := next - clock

		// 1) Impassable slot: skip to the boundary; the skipped span is not charged.
		if speed <= 0 {
			clock = next
			continue
		}

		// 2) Finish inside this slot.
		reach := speed * left
		if reach >= remaining {
			elapsed += remaining / speed
			break
		}

		// 3) Consume the whole slot and move on.
		remaining -= reach
		elapsed += left
		clock = next
	}

	return elapsed
}

func hasPositiveSlot(profile []float64) bool {
	for _, s := range profile {
		if s > 0 {
			return true
		}
	}

	return false
}

// EdgeCost returns the cost of crossing e in the given mode when departing at
// `departure` (ignored in distance mode).
//
// Errors:
//   - ErrMissingWeight: distance mode on an edge without a declared length, or
//     time mode on an edge with neither a speed profile nor an average time.
//   - ErrUnreachableSlot: time mode on a profile with no positive slot.
func EdgeCost(e *core.Edge, mode Mode, departure float64) (float64, error) {
	if mode == ModeDistance {
		if !e.Declared.Has(core.WeightLength) {
			return 0, fmt.Errorf("%w: edge %d length", ErrMissingWeight, e.Ref.ID)
		}

		return e.Length, nil
	}

	if len(e.SpeedProfile) == 0 {
		if !e.Declared.Has(core.WeightAverageTime) {
			return 0, fmt.Errorf("%w: edge %d average_time", ErrMissingWeight, e.Ref.ID)
		}

		return e.AverageTime, nil
	}
	if !hasPositiveSlot(e.SpeedProfile) {
		return 0, fmt.Errorf("%w: edge %d", ErrUnreachableSlot, e.Ref.ID)
	}

	return CrossTime(e, departure), nil
}
