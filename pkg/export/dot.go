package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/roadgraph/pkg/graph"
)

// DOT renders g as a Graphviz digraph. Node positions are pinned to the
// projected coordinates, so neato reproduces the map layout.
func DOT(g *graph.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=point, width=0.05, color=\"#333333\"];\n")
	buf.WriteString("  edge [arrowsize=0.3, color=\"#888888\", fontsize=6, fontcolor=\"#555555\"];\n")
	buf.WriteString("\n")

	proj := newProjection(g.Nodes)
	index := g.NodeIndex()
	for i, n := range g.Nodes {
		if index[n.ID] != i {
			continue
		}
		x, y := proj.point(n)
		fmt.Fprintf(&buf, "  \"%d\" [pos=\"%.4f,%.4f!\"];\n", n.ID, x, y)
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		if _, ok := index[e.Source]; !ok {
			continue
		}
		if _, ok := index[e.Target]; !ok {
			continue
		}
		attrs := []string{fmt.Sprintf("weight=%q", formatFloat(e.Weight))}
		if e.Name != "" {
			attrs = append(attrs, fmt.Sprintf("label=%q", e.Name))
		}
		fmt.Fprintf(&buf, "  \"%d\" -> \"%d\" [%s];\n", e.Source, e.Target, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// SVG renders the DOT form of g to SVG with the neato engine.
func SVG(g *graph.Graph) ([]byte, error) {
	return renderSVG(context.Background(), DOT(g))
}

func renderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
