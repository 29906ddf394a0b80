// Package graph holds the road graph built from Overpass elements and its
// canonical node-link JSON form.
//
// # Building
//
// [Build] turns an [overpass.Result] into a [Graph] in two passes. Every node
// element becomes a [Node]; then each way's consecutive node pairs become
// [Edge] values weighted by great-circle distance in kilometres. The way's
// oneway tag decides direction:
//
//	oneway=-1            reverse edge only
//	oneway=yes|true|1    forward edge only
//	anything else        both, forward first
//
// Segments with an endpoint missing from the result are dropped silently.
// Overlapping ways are not deduplicated; parallel edges are expected.
//
// # Serialization
//
// Graphs encode as node-link JSON:
//
//	{
//	  "directed": true,
//	  "multigraph": false,
//	  "graph": {},
//	  "nodes": [{"id": 1, "lat": 52.52, "lon": 13.4}],
//	  "edges": [{"source": 1, "target": 2, "wayId": 100, "weight": 0.13, "highway": "residential", "name": "Main St"}]
//	}
//
// [Graph.MarshalJSON] writes nodes and edges as arrays even when empty.
// [ReadJSON] and [ReadFile] decode the same shape. Other output formats live
// in pkg/export.
//
// [overpass.Result]: github.com/matzehuels/roadgraph/pkg/overpass.Result
package graph
