package verify

import "fmt"

// Kind classifies a failed verdict.
type Kind int

const (
	// KindNone marks a passing verdict.
	KindNone Kind = iota

	// KindStructural marks a malformed path or route: wrong endpoints,
	// missing or disabled edge, forbidden node or road type, broken
	// pickup/dropoff order.
	KindStructural

	// KindData marks a required field missing from the answer or the event.
	KindData

	// KindMismatch marks a reported value that diverges from recomputation or
	// from the expected answer beyond tolerance.
	KindMismatch
)

var kindNames = [...]string{"none", "structural", "data", "mismatch"}

// String returns the lower-case kind name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return kindNames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Verdict is the outcome of checking one answer.
//
// Better marks a passing shortest path cheaper than the expected one.
// Scored answers (heuristic paths, approximate distances, assignments) carry
// Score with HasScore set.
type Verdict struct {
	Pass     bool
	Reason   string
	Kind     Kind
	Better   bool
	Score    float64
	HasScore bool
}

func pass(reason string) Verdict { return Verdict{Pass: true, Reason: reason} }

func failf(k Kind, format string, args ...any) Verdict {
	return Verdict{Reason: fmt.Sprintf(format, args...), Kind: k}
}

func scored(v Verdict, score float64) Verdict {
	v.Score, v.HasScore = score, true

	return v
}
