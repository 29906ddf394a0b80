package graph_test

import (
	"fmt"

	"github.com/matzehuels/roadgraph/pkg/graph"
)

func ExampleBuildJSON() {
	body := []byte(`{"elements":[
		{"type":"node","id":1,"lat":52.5200,"lon":13.4000},
		{"type":"node","id":2,"lat":52.5210,"lon":13.4000},
		{"type":"way","id":100,"nodes":[1,2],"tags":{"highway":"residential","name":"Main St","oneway":"yes"}}
	]}`)

	g := graph.BuildJSON(body)
	for _, e := range g.Edges {
		fmt.Printf("%d -> %d %s (%s) %.3f km\n", e.Source, e.Target, e.Name, e.Highway, e.Weight)
	}
	// Output:
	// 1 -> 2 Main St (residential) 0.111 km
}
