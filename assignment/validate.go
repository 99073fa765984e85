package assignment

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// ParseOrders checks raw orders for missing fields and duplicate ids.
// A failing Result is always a DataError.
func ParseOrders(raw []RawOrder) ([]Order, Result) {
	if raw == nil {
		return nil, dataFail("missing orders")
	}
	out := make([]Order, 0, len(raw))
	seen := make(map[int64]bool, len(raw))
	for i, r := range raw {
		if r.OrderID == nil {
			return nil, dataFail(fmt.Sprintf("order %d: missing order_id", i))
		}
		id := *r.OrderID
		if seen[id] {
			return nil, dataFail(fmt.Sprintf("duplicate order_id %d", id))
		}
		seen[id] = true
		if r.Pickup == nil || r.Dropoff == nil {
			return nil, dataFail(fmt.Sprintf("order %d: missing pickup or dropoff", id))
		}
		out = append(out, Order{ID: id, Pickup: *r.Pickup, Dropoff: *r.Dropoff})
	}

	return out, Result{OK: true}
}

// Validate checks assignments against orders on net.
//
// A nil assignments slice means the field was absent and is a DataError; an
// empty, non-nil slice is checked normally and fails coverage if any order
// exists.
//
// Checks run in this order, the first failure wins:
//  1. per assignment: route nodes exist, consecutive pairs are arcs, every
//     carried order id is known, and each carried order is picked up before
//     it is dropped off;
//  2. coverage: every order is carried by exactly one assignment.
func Validate(net *Network, orders []Order, assignments []Assignment) Result {
	if assignments == nil {
		return dataFail("missing assignments")
	}
	byID := make(map[int64]Order, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
	}

	var penalty float64
	coverage := make(map[int64]int, len(orders))
	for ai, a := range assignments {
		// 1) Route shape and prefix times.
		prefix, res := routePrefix(net, ai, a.Route)
		if !res.OK {
			return res
		}

		// 2) Orders carried along this route.
		for _, oid := range a.OrderIDs {
			o, ok := byID[oid]
			if !ok {
				return fail(fmt.Sprintf("assignment %d: unknown order_id %d", ai, oid))
			}
			coverage[oid]++

			pick := slices.Index(a.Route, o.Pickup)
			if pick < 0 {
				return fail(fmt.Sprintf("assignment %d: pickup %d of order %d not on route", ai, o.Pickup, oid))
			}
			drop := slices.Index(a.Route[pick+1:], o.Dropoff)
			if drop < 0 {
				return fail(fmt.Sprintf("assignment %d: dropoff %d of order %d not after pickup", ai, o.Dropoff, oid))
			}
			penalty += prefix[pick+1+drop]
		}
	}

	// 3) Coverage.
	var missing, multiple []int64
	for id := range byID {
		switch c := coverage[id]; {
		case c == 0:
			missing = append(missing, id)
		case c > 1:
			multiple = append(multiple, id)
		}
	}
	if len(missing) > 0 || len(multiple) > 0 {
		slices.Sort(missing)
		slices.Sort(multiple)

		return fail(fmt.Sprintf("coverage: missing %v, multiple %v", missing, multiple))
	}

	return Result{OK: true, PenaltyTime: penalty}
}

// routePrefix validates route and returns the cumulative time at each index.
func routePrefix(net *Network, ai int, route []int64) ([]float64, Result) {
	for _, id := range route {
		if !net.HasNode(id) {
			return nil, fail(fmt.Sprintf("assignment %d: unknown node %d", ai, id))
		}
	}
	prefix := make([]float64, len(route))
	for i := 1; i < len(route); i++ {
		w, ok := net.Time(route[i-1], route[i])
		if !ok {
			return nil, fail(fmt.Sprintf("assignment %d: no edge %d→%d", ai, route[i-1], route[i]))
		}
		prefix[i] = prefix[i-1] + w
	}

	return prefix, Result{OK: true}
}
