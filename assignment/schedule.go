package assignment

import (
	"fmt"
	"math"
)

// DefaultMaxIterations bounds the 2-opt improvement passes per route.
const DefaultMaxIterations = 200

// Options configures Schedule.
type Options struct {
	// MaxIterations bounds accepted 2-opt moves per driver.
	MaxIterations int
}

// Option mutates Options.
type Option func(*Options)

// WithMaxIterations sets the 2-opt move budget; values below zero are clamped to 0.
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		if n < 0 {
			n = 0
		}
		o.MaxIterations = n
	}
}

// DefaultOptions returns the Schedule defaults.
func DefaultOptions() Options {
	return Options{MaxIterations: DefaultMaxIterations}
}

// stop is one visit in a driver's stop sequence.
type stop struct {
	node   int64
	order  int // index into the cluster; -1 for the depot
	pickup bool
}

// Schedule assigns every order to one of fleet.Drivers drivers and builds
// each driver's route from the depot.
//
// Drivers are numbered from 0. A driver without orders gets the route
// [depot]. Every returned route is a sequence of consecutive Network arcs,
// so a non-error result always passes Validate.
//
// Errors: ErrNoDrivers, ErrUnknownNode for a depot or order node missing from
// net, ErrUnreachable when a stop cannot be reached.
func Schedule(net *Network, orders []Order, fleet Fleet, opts ...Option) ([]Assignment, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 1) Preconditions.
	if fleet.Drivers < 1 {
		return nil, ErrNoDrivers
	}
	if !net.HasNode(fleet.Depot) {
		return nil, fmt.Errorf("%w: depot %d", ErrUnknownNode, fleet.Depot)
	}
	for _, o := range orders {
		if !net.HasNode(o.Pickup) || !net.HasNode(o.Dropoff) {
			return nil, fmt.Errorf("%w: order %d", ErrUnknownNode, o.ID)
		}
	}

	// 2) Partition orders around the depot.
	clusters, err := cluster(net, orders, fleet)
	if err != nil {
		return nil, err
	}

	// 3) Sequence, improve and expand each driver's stops.
	l := newLegs(net)
	out := make([]Assignment, fleet.Drivers)
	for d, c := range clusters {
		out[d] = Assignment{DriverID: d, Route: []int64{fleet.Depot}, OrderIDs: []int64{}}
		if len(c) == 0 {
			continue
		}
		for _, o := range c {
			out[d].OrderIDs = append(out[d].OrderIDs, o.ID)
		}

		stops, err := greedy(l, c, fleet.Depot)
		if err != nil {
			return nil, err
		}
		stops = twoOpt(l, stops, cfg.MaxIterations)

		route, err := expand(l, c, stops)
		if err != nil {
			return nil, err
		}
		out[d].Route = route
	}

	return out, nil
}

// greedy repeatedly visits the cheapest admissible stop: an unpicked order's
// pickup or a picked order's dropoff. Ties go to the lower cluster index.
func greedy(l *legs, orders []Order, depot int64) ([]stop, error) {
	stops := make([]stop, 1, 2*len(orders)+1)
	stops[0] = stop{node: depot, order: -1}
	picked := make([]bool, len(orders))
	done := make([]bool, len(orders))

	cur := depot
	for remaining := 2 * len(orders); remaining > 0; remaining-- {
		best := math.Inf(1)
		next := stop{order: -1}
		for i, o := range orders {
			switch {
			case !picked[i]:
				if c := l.cost(cur, o.Pickup); c < best {
					best, next = c, stop{node: o.Pickup, order: i, pickup: true}
				}
			case !done[i]:
				if c := l.cost(cur, o.Dropoff); c < best {
					best, next = c, stop{node: o.Dropoff, order: i}
				}
			}
		}
		if next.order < 0 {
			return nil, fmt.Errorf("%w: from %d", ErrUnreachable, cur)
		}
		if next.pickup {
			picked[next.order] = true
		} else {
			done[next.order] = true
		}
		stops = append(stops, next)
		cur = next.node
	}

	return stops, nil
}

// deliveryTime is the sum of arrival times at every dropoff stop.
func deliveryTime(l *legs, stops []stop) float64 {
	var clock, total float64
	for i := 1; i < len(stops); i++ {
		clock += l.cost(stops[i-1].node, stops[i].node)
		if !stops[i].pickup {
			total += clock
		}
	}

	return total
}

// precedenceOK reports whether every order's pickup precedes its dropoff.
func precedenceOK(stops []stop) bool {
	picked := make(map[int]bool, len(stops)/2)
	for _, s := range stops[1:] {
		if s.pickup {
			picked[s.order] = true
		} else if !picked[s.order] {
			return false
		}
	}

	return true
}

// expand turns a stop sequence into a node route of consecutive arcs.
// A dropoff at the node of its own pickup is reached by the cheapest round
// trip so that it lands strictly after the pickup.
func expand(l *legs, orders []Order, stops []stop) ([]int64, error) {
	route := []int64{stops[0].node}
	for i := 1; i < len(stops); i++ {
		from, s := route[len(route)-1], stops[i]
		var (
			leg []int64
			err error
		)
		if from == s.node && !s.pickup && orders[s.order].Pickup == s.node && pickedHere(stops, i) {
			leg, err = l.roundTrip(from)
		} else {
			leg, err = l.path(from, s.node)
		}
		if err != nil {
			return nil, err
		}
		route = append(route, leg[1:]...)
	}

	return route, nil
}

// pickedHere reports whether the pickup matching the dropoff at stops[i] was
// made at the same route position, i.e. no arc separates them.
func pickedHere(stops []stop, i int) bool {
	for j := i - 1; j >= 1; j-- {
		if stops[j].node != stops[i].node {
			return false
		}
		if stops[j].pickup && stops[j].order == stops[i].order {
			return true
		}
	}

	return false
}
