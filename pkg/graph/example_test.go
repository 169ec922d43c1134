package graph_test

import (
	"fmt"

	"github.com/cgalab/format-converter/pkg/geometry"
	"github.com/cgalab/format-converter/pkg/graph"
)

func ExampleGraph() {
	g := graph.New("triangle.line", "line")

	a, b, c := geometry.V2(0, 0), geometry.V2(4, 0), geometry.V2(0, 3)
	_ = g.AddEdgeByVertex(a, b)
	_ = g.AddEdgeByVertex(c, b, graph.WithWeight(2.5))
	_ = g.AddEdgeByVertex(c, a)
	_ = g.AddEdgeByVertex(a, a) // self-loop, dropped

	for i, v := range g.Vertices() {
		fmt.Println(i, v)
	}
	for _, e := range g.Edges() {
		fmt.Println(e.EdgeKey, geometry.FormatFloat(e.Attrs.EffectiveWeight()))
	}
	fmt.Println("dropped:", g.DroppedLoops())
	// Output:
	// 0 Vec2(0.0, 0.0)
	// 1 Vec2(4.0, 0.0)
	// 2 Vec2(0.0, 3.0)
	// (0, 1) 1.0
	// (1, 2) 2.5
	// (0, 2) 1.0
	// dropped: 1
}

func ExampleGraph_RandomizeWeights() {
	g := graph.New("segment", "example")
	_ = g.AddEdgeByVertex(geometry.V2(0, 0), geometry.V2(1, 1))

	_ = g.RandomizeWeights(graph.NewRand(42), graph.WeightRange{Lower: 1, Upper: 1})
	fmt.Println(geometry.FormatFloat(g.Edges()[0].Attrs.EffectiveWeight()))
	// Output:
	// 1.0
}
