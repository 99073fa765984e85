package assignment

import (
	"errors"

	"github.com/katalvlaran/roadgrade/timecost"
)

// Sentinel errors.
var (
	// ErrMissingWeight is returned when a road lacks average_time. It is the
	// same sentinel the cost model uses for fatal preconditions.
	ErrMissingWeight = timecost.ErrMissingWeight

	// ErrNoDrivers indicates a fleet with fewer than one driver.
	ErrNoDrivers = errors.New("assignment: fleet needs at least one driver")

	// ErrUnknownNode indicates a depot or order node missing from the network.
	ErrUnknownNode = errors.New("assignment: node not in network")

	// ErrUnreachable indicates a stop that cannot be reached from the previous one.
	ErrUnreachable = errors.New("assignment: stop unreachable")
)

// RawOrder is an order as decoded from the wire; nil fields are data errors.
type RawOrder struct {
	OrderID *int64 `json:"order_id"`
	Pickup  *int64 `json:"pickup"`
	Dropoff *int64 `json:"dropoff"`
}

// Order is a validated order.
type Order struct {
	ID      int64
	Pickup  int64
	Dropoff int64
}

// Raw converts o back to its wire form.
func (o Order) Raw() RawOrder {
	id, p, d := o.ID, o.Pickup, o.Dropoff

	return RawOrder{OrderID: &id, Pickup: &p, Dropoff: &d}
}

// Fleet describes the drivers available to Schedule.
type Fleet struct {
	Drivers int   `json:"num_delivery_guys"`
	Depot   int64 `json:"depot_node"`
}

// Assignment is one driver's route and the orders carried along it.
type Assignment struct {
	DriverID int     `json:"driver_id"`
	Route    []int64 `json:"route"`
	OrderIDs []int64 `json:"order_ids"`
}

// Result is a validation outcome. Failures are values, never errors.
//
// DataError marks failures caused by missing input fields rather than by a
// malformed route.
type Result struct {
	OK          bool
	Reason      string
	DataError   bool
	PenaltyTime float64
}

func fail(reason string) Result { return Result{Reason: reason} }

func dataFail(reason string) Result { return Result{Reason: reason, DataError: true} }
