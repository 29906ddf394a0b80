// Package overpass talks to an Overpass API interpreter and models its
// responses.
//
// The package covers the provider side of a graph build:
//
//   - [BuildQuery] turns a bounding box into an Overpass QL query for
//     drivable highways and the nodes they reference.
//   - [Client] posts queries and decodes the JSON body into a [Result],
//     consulting a response cache first.
//   - [Fetcher] splits large boxes into tiles, queries them sequentially and
//     combines the tiles with [Merge].
//
// # Elements
//
// A [Result] holds a list of [Element] values. The concrete types are
// [*Node], [*Way] and [*Other]; consumers switch over exactly these:
//
//	for _, el := range res.Elements {
//	    switch e := el.(type) {
//	    case *overpass.Node:
//	        // e.ID, e.Lat, e.Lon
//	    case *overpass.Way:
//	        // e.Nodes, e.Tag("highway")
//	    case *overpass.Other:
//	        // relations and other types
//	    }
//	}
//
// Element identity is the (type, id) pair returned by Element.Key.
package overpass
