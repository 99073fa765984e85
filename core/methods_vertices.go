// File: methods_vertices.go
// Role: Node queries and adjacency lookup.
// Determinism:
//   - NodeIDs(), Nodes() and NodesWithTag() are ordered by id ascending.

package core

// Node returns the node with the given id.
func (g *Graph) Node(id int64) (*Node, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, ErrNodeNotFound
	}

	return n, nil
}

// HasNode reports whether id was declared.
func (g *Graph) HasNode(id int64) bool {
	_, ok := g.nodes[id]

	return ok
}

// NodeIDs returns all node ids sorted ascending. The slice is a copy.
func (g *Graph) NodeIDs() []int64 {
	out := make([]int64, len(g.nodeOrder))
	copy(out, g.nodeOrder)

	return out
}

// Nodes returns every node ordered by id ascending. The slice is a copy; the
// nodes are live.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.nodeOrder))
	for i, id := range g.nodeOrder {
		out[i] = g.nodes[id]
	}

	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// NodesWithTag returns the ids of nodes carrying tag, sorted ascending.
//
// Complexity: O(V · tags per node).
func (g *Graph) NodesWithTag(tag string) []int64 {
	var out []int64
	for _, id := range g.nodeOrder {
		if g.nodes[id].HasTag(tag) {
			out = append(out, id)
		}
	}

	return out
}

// Adjacent returns every outgoing arc of node id in declaration order,
// including arcs over disabled records; callers filter as needed.
//
// The returned slice is the live adjacency bucket and must not be modified.
// Complexity: O(1).
func (g *Graph) Adjacent(id int64) []Arc {
	return g.adjacency[id]
}
