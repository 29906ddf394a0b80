package export

import (
	"strconv"
	"strings"

	"github.com/matzehuels/roadgraph/pkg/graph"
)

const graphMLHeader = `<?xml version="1.0" encoding="UTF-8"?>
<graphml xmlns="http://graphml.graphdrawing.org/xmlns" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xsi:schemaLocation="http://graphml.graphdrawing.org/xmlns http://graphml.graphdrawing.org/xmlns/1.0/graphml.xsd">
  <key id="lat" for="node" attr.name="lat" attr.type="double"/>
  <key id="lon" for="node" attr.name="lon" attr.type="double"/>
  <key id="weight" for="edge" attr.name="weight" attr.type="double"/>
  <key id="wayId" for="edge" attr.name="wayId" attr.type="long"/>
  <key id="highway" for="edge" attr.name="highway" attr.type="string"/>
  <key id="name" for="edge" attr.name="name" attr.type="string"/>
  <graph id="G" edgedefault="directed">
`

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// GraphML renders g as a GraphML document. Node coordinates and edge
// attributes are typed data elements; edges are numbered e0, e1, ...
func GraphML(g *graph.Graph) string {
	var b strings.Builder
	b.WriteString(graphMLHeader)

	for _, n := range g.Nodes {
		b.WriteString(`    <node id="`)
		b.WriteString(formatInt(n.ID))
		b.WriteString("\">\n")
		writeData(&b, "lat", formatFloat(n.Lat))
		writeData(&b, "lon", formatFloat(n.Lon))
		b.WriteString("    </node>\n")
	}

	for i, e := range g.Edges {
		b.WriteString(`    <edge id="e`)
		b.WriteString(strconv.Itoa(i))
		b.WriteString(`" source="`)
		b.WriteString(formatInt(e.Source))
		b.WriteString(`" target="`)
		b.WriteString(formatInt(e.Target))
		b.WriteString("\">\n")
		writeData(&b, "weight", formatFloat(e.Weight))
		writeData(&b, "wayId", formatInt(e.WayID))
		writeData(&b, "highway", xmlEscaper.Replace(e.Highway))
		writeData(&b, "name", xmlEscaper.Replace(e.Name))
		b.WriteString("    </edge>\n")
	}

	b.WriteString("  </graph>\n</graphml>\n")
	return b.String()
}

func writeData(b *strings.Builder, key, value string) {
	b.WriteString(`      <data key="`)
	b.WriteString(key)
	b.WriteString(`">`)
	b.WriteString(value)
	b.WriteString("</data>\n")
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func formatInt(v int64) string { return strconv.FormatInt(v, 10) }
