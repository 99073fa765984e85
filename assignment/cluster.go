package assignment

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"golang.org/x/exp/slices"
)

// polar locates an order's pickup relative to the depot.
type polar struct {
	order  Order
	radius float64 // great-circle metres
	angle  float64 // radians in [0, 2π)
}

// cluster splits orders into fleet.Drivers groups.
//
// The plane around the depot is cut into max(1, ⌊√drivers⌋) equal angular
// sectors and ⌈drivers/sectors⌉ radial zones whose boundaries are radius
// quantiles of the pickups. Non-empty cells are handed to drivers in sector
// then zone order; orders left over once every driver holds a cell are dealt
// round-robin.
func cluster(net *Network, orders []Order, fleet Fleet) ([][]Order, error) {
	drivers := fleet.Drivers
	out := make([][]Order, drivers)
	if len(orders) == 0 {
		return out, nil
	}

	depot, err := net.g.Node(fleet.Depot)
	if err != nil {
		return nil, err
	}
	origin := orb.Point{depot.Lon, depot.Lat}

	// 1) Polar coordinates of every pickup.
	info := make([]polar, 0, len(orders))
	for _, o := range orders {
		n, err := net.g.Node(o.Pickup)
		if err != nil {
			return nil, err
		}
		p := orb.Point{n.Lon, n.Lat}
		a := geo.Bearing(origin, p) * math.Pi / 180
		if a < 0 {
			a += 2 * math.Pi
		}
		if a >= 2*math.Pi {
			a -= 2 * math.Pi
		}
		info = append(info, polar{order: o, radius: geo.DistanceHaversine(origin, p), angle: a})
	}

	// 2) Grid geometry.
	sectors := int(math.Sqrt(float64(drivers)))
	if sectors < 1 {
		sectors = 1
	}
	zones := (drivers + sectors - 1) / sectors

	radii := make([]float64, len(info))
	for i, p := range info {
		radii[i] = p.radius
	}
	slices.Sort(radii)
	bounds := make([]float64, 0, zones+1)
	bounds = append(bounds, 0)
	for z := 1; z < zones; z++ {
		bounds = append(bounds, radii[len(radii)*z/zones])
	}
	bounds = append(bounds, math.Inf(1))
	width := 2 * math.Pi / float64(sectors)

	// 3) Bin.
	grid := make([][][]Order, sectors)
	for s := range grid {
		grid[s] = make([][]Order, zones)
	}
	for _, p := range info {
		s := int(p.angle / width)
		if s > sectors-1 {
			s = sectors - 1
		}
		z := 0
		for k := 0; k < zones; k++ {
			if p.radius >= bounds[k] && p.radius < bounds[k+1] {
				z = k
				break
			}
		}
		grid[s][z] = append(grid[s][z], p.order)
	}

	// 4) One non-empty cell per driver.
	assigned := make(map[int64]bool, len(orders))
	d := 0
	for s := 0; s < sectors && d < drivers; s++ {
		for z := 0; z < zones && d < drivers; z++ {
			if len(grid[s][z]) == 0 {
				continue
			}
			for _, o := range grid[s][z] {
				out[d] = append(out[d], o)
				assigned[o.ID] = true
			}
			d++
		}
	}

	// 5) Leftovers round-robin.
	rr := 0
	for _, p := range info {
		if assigned[p.order.ID] {
			continue
		}
		out[rr%drivers] = append(out[rr%drivers], p.order)
		rr++
	}

	return out, nil
}
