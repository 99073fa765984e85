package dijkstra_test

import (
	"fmt"

	"github.com/katalvlaran/roadgrade/core"
	"github.com/katalvlaran/roadgrade/dijkstra"
)

// ExampleShortestPath demonstrates a constrained query on a small network
// before and after a road closure.
func ExampleShortestPath() {
	length := func(v float64) *float64 { return &v }
	g, _ := core.NewGraph(core.Description{
		Nodes: []core.NodeSpec{{ID: 1}, {ID: 2}, {ID: 3}},
		Edges: []core.EdgeSpec{
			{ID: 1, U: 1, V: 2, Length: length(10), OneWay: true},
			{ID: 2, U: 2, V: 3, Length: length(5)},
			{ID: 3, U: 1, V: 3, Length: length(20)},
		},
	})

	res, _ := dijkstra.ShortestPath(g, 1, 3)
	fmt.Println(res.Path, res.Cost)

	g.Disable(1)
	res, _ = dijkstra.ShortestPath(g, 1, 3)
	fmt.Println(res.Path, res.Cost)

	res, _ = dijkstra.ShortestPath(g, 1, 3, dijkstra.WithForbiddenNodes(3))
	fmt.Println(res.Found)
	// Output:
	// [1 2 3] 15
	// [1 3] 20
	// false
}
