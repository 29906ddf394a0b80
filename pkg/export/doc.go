// Package export renders a road graph into the text and image formats a
// caller can download.
//
// Every serializer is a pure function of a [graph.Graph]: it never modifies
// the graph and accepts the empty graph. [Export] dispatches on a [Format]
// and returns an [Artifact] carrying the MIME type and file extension:
//
//	f, err := export.ParseFormat("graphml")
//	if err != nil {
//	    return err // UNSUPPORTED_FORMAT
//	}
//	a, err := export.Export(g, f)
//	os.WriteFile("road-graph."+a.Extension, a.Content, 0o644)
//
// Formats:
//
//	json     node-link JSON (graph.ReadJSON reads it back)
//	graphml  GraphML XML with typed node and edge attributes
//	csv      one row per edge
//	tikz     standalone LaTeX document drawing the network
//	geojson  FeatureCollection of junction points and segment lines
//	dot      Graphviz digraph with pinned node positions
//	svg      the dot output rendered by Graphviz
package export
