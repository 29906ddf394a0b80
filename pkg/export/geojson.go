package export

import (
	geojson "github.com/paulmach/go.geojson"

	"github.com/matzehuels/roadgraph/pkg/graph"
)

// GeoJSON renders g as a FeatureCollection: a Point per node with an "id"
// property, then a LineString per edge carrying the edge attributes.
// Coordinates are [lon, lat]. Edges with a missing endpoint are left out.
func GeoJSON(g *graph.Graph) ([]byte, error) {
	fc := geojson.NewFeatureCollection()

	for _, n := range g.Nodes {
		f := geojson.NewPointFeature([]float64{n.Lon, n.Lat})
		f.SetProperty("id", n.ID)
		fc.AddFeature(f)
	}

	index := g.NodeIndex()
	for _, e := range g.Edges {
		from, okFrom := index[e.Source]
		to, okTo := index[e.Target]
		if !okFrom || !okTo {
			continue
		}
		a, b := g.Nodes[from], g.Nodes[to]
		f := geojson.NewLineStringFeature([][]float64{{a.Lon, a.Lat}, {b.Lon, b.Lat}})
		f.SetProperty("source", e.Source)
		f.SetProperty("target", e.Target)
		f.SetProperty("wayId", e.WayID)
		f.SetProperty("weight", e.Weight)
		f.SetProperty("highway", e.Highway)
		f.SetProperty("name", e.Name)
		fc.AddFeature(f)
	}

	return fc.MarshalJSON()
}
