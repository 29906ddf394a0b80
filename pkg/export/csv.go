package export

import (
	"encoding/csv"
	"strings"

	"github.com/matzehuels/roadgraph/pkg/graph"
)

var csvHeader = []string{"source", "target", "weight", "highway", "name", "wayId"}

// CSV renders one row per edge under the header
// source,target,weight,highway,name,wayId. Fields containing a comma, a
// double quote or a line break are quoted.
func CSV(g *graph.Graph) string {
	var b strings.Builder
	w := csv.NewWriter(&b)
	_ = w.Write(csvHeader)
	for _, e := range g.Edges {
		_ = w.Write([]string{
			formatInt(e.Source),
			formatInt(e.Target),
			formatFloat(e.Weight),
			e.Highway,
			e.Name,
			formatInt(e.WayID),
		})
	}
	w.Flush()
	return b.String()
}
