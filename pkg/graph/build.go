package graph

import (
	"encoding/json"

	"github.com/paulmach/osm"

	"github.com/matzehuels/roadgraph/pkg/geo"
	"github.com/matzehuels/roadgraph/pkg/overpass"
)

// Build converts Overpass elements into a road graph. A nil or empty result
// yields an empty graph; Build never fails.
func Build(res *overpass.Result) *Graph {
	g := New()
	if res == nil {
		return g
	}

	nodes := make(map[osm.NodeID]*overpass.Node)
	var ways []*overpass.Way
	for _, el := range res.Elements {
		switch e := el.(type) {
		case *overpass.Node:
			if _, seen := nodes[e.ID]; seen {
				continue
			}
			nodes[e.ID] = e
			g.Nodes = append(g.Nodes, Node{ID: int64(e.ID), Lat: e.Lat, Lon: e.Lon})
		case *overpass.Way:
			ways = append(ways, e)
		case *overpass.Other:
			// relations and unknown types carry no road geometry
		}
	}

	for _, w := range ways {
		g.Edges = appendWayEdges(g.Edges, w, nodes)
	}
	return g
}

// BuildJSON builds a graph from a raw Overpass response body. Malformed
// input yields an empty graph.
func BuildJSON(data []byte) *Graph {
	var res overpass.Result
	if err := json.Unmarshal(data, &res); err != nil {
		return New()
	}
	return Build(&res)
}

// direction is the set of edges a way segment produces.
type direction int

const (
	bothWays direction = iota
	forwardOnly
	reverseOnly
)

func wayDirection(oneway string) direction {
	switch oneway {
	case "-1":
		return reverseOnly
	case "yes", "true", "1":
		return forwardOnly
	default:
		return bothWays
	}
}

func appendWayEdges(edges []Edge, w *overpass.Way, nodes map[osm.NodeID]*overpass.Node) []Edge {
	if len(w.Nodes) < 2 {
		return edges
	}
	dir := wayDirection(w.Tag("oneway"))
	highway, name := w.Tag("highway"), w.Tag("name")

	for i := 1; i < len(w.Nodes); i++ {
		a, okA := nodes[w.Nodes[i-1]]
		b, okB := nodes[w.Nodes[i]]
		if !okA || !okB {
			continue
		}
		fwd := Edge{
			Source:  int64(a.ID),
			Target:  int64(b.ID),
			WayID:   int64(w.ID),
			Weight:  geo.HaversineKm(a.Lat, a.Lon, b.Lat, b.Lon),
			Highway: highway,
			Name:    name,
		}
		rev := fwd
		rev.Source, rev.Target = fwd.Target, fwd.Source

		switch dir {
		case forwardOnly:
			edges = append(edges, fwd)
		case reverseOnly:
			edges = append(edges, rev)
		default:
			edges = append(edges, fwd, rev)
		}
	}
	return edges
}
