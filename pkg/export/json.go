package export

import (
	"encoding/json"

	"github.com/matzehuels/roadgraph/pkg/graph"
)

// JSON encodes g as node-link JSON indented with two spaces.
func JSON(g *graph.Graph) ([]byte, error) {
	if g == nil {
		g = graph.New()
	}
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
