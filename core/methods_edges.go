// File: methods_edges.go
// Role: Edge lookup and the mutation surface (Disable, Patch, DisableRef, RestoreRef).
// Determinism:
//   - Road-level mutations visit directional records forward first.
//   - ArcsBetween preserves adjacency declaration order.

package core

// Disable marks every directional record of road id as disabled.
//
// Returns whether the road exists. Disabling an already disabled road still
// reports true and changes nothing (idempotent), which is distinct from the
// false reported for an unknown id.
//
// Complexity: O(1) per record (at most two).
func (g *Graph) Disable(id int64) bool {
	refs, ok := g.roads[id]
	if !ok {
		return false
	}
	for _, ref := range refs {
		g.edges[ref].Disabled = true
	}

	return true
}

// Patch merges the allow-listed overrides of p onto every directional record of
// road id and re-enables them.
//
// Returns false when the road does not exist or when p carries no accepted
// override ("nothing to modify"), even if the road exists; no state changes
// in either case. Each record receives its own copy of the overrides; From/To
// and the record identity are never touched.
//
// Complexity: O(1) per record plus the size of the speed profile.
func (g *Graph) Patch(id int64, p EdgePatch) bool {
	if p.IsEmpty() {
		return false
	}
	refs, ok := g.roads[id]
	if !ok {
		return false
	}
	for _, ref := range refs {
		p.apply(g.edges[ref])
	}

	return true
}

// DisableRef disables exactly one directional record.
//
// Returns true only when the record existed and was enabled before the call,
// so that callers can restore precisely what they changed.
func (g *Graph) DisableRef(ref EdgeRef) bool {
	e, ok := g.edges[ref]
	if !ok || e.Disabled {
		return false
	}
	e.Disabled = true

	return true
}

// RestoreRef re-enables one directional record previously disabled by DisableRef.
func (g *Graph) RestoreRef(ref EdgeRef) {
	if e, ok := g.edges[ref]; ok {
		e.Disabled = false
	}
}

// WithDisabled disables refs, runs fn, and restores every record it actually
// disabled before returning, also when fn panics.
func (g *Graph) WithDisabled(refs []EdgeRef, fn func()) {
	changed := make([]EdgeRef, 0, len(refs))
	defer func() {
		for _, ref := range changed {
			g.RestoreRef(ref)
		}
	}()
	for _, ref := range refs {
		if g.DisableRef(ref) {
			changed = append(changed, ref)
		}
	}
	fn()
}

// Edge returns the record for ref.
func (g *Graph) Edge(ref EdgeRef) (*Edge, error) {
	e, ok := g.edges[ref]
	if !ok {
		return nil, ErrEdgeNotFound
	}

	return e, nil
}

// HasRoad reports whether a road with the given id was loaded.
func (g *Graph) HasRoad(id int64) bool {
	_, ok := g.roads[id]

	return ok
}

// RoadRefs returns the directional records of road id, forward first.
// The returned slice is a copy.
func (g *Graph) RoadRefs(id int64) []EdgeRef {
	refs := g.roads[id]
	out := make([]EdgeRef, len(refs))
	copy(out, refs)

	return out
}

// ArcsBetween returns every record leading from u directly to v, enabled or not,
// in adjacency order. Callers filter by Disabled / RoadType as they need.
//
// Complexity: O(out-degree(u)).
func (g *Graph) ArcsBetween(u, v int64) []*Edge {
	var out []*Edge
	for _, a := range g.adjacency[u] {
		if a.To == v {
			out = append(out, g.edges[a.Ref])
		}
	}

	return out
}

// EdgeCount returns the number of directional records.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// RoadCount returns the number of roads (input edges).
func (g *Graph) RoadCount() int { return len(g.roads) }
