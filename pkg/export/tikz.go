package export

import (
	"fmt"
	"strings"

	"github.com/matzehuels/roadgraph/pkg/graph"
)

const tikzPreamble = `\documentclass[tikz]{standalone}
\begin{document}
\begin{tikzpicture}[
  junction/.style={circle, fill=black, inner sep=0pt, minimum size=1.5pt},
  road/.style={line width=0.4pt, draw=gray}
]
`

const tikzClosing = `\end{tikzpicture}
\end{document}
`

// TikZ renders g as a standalone LaTeX document. Nodes are placed by
// coordinates scaled so the longer side spans 10 units. Each connected pair
// of nodes is drawn once, whatever the number or direction of its edges.
func TikZ(g *graph.Graph) string {
	var b strings.Builder
	b.WriteString(tikzPreamble)

	if len(g.Nodes) == 0 {
		b.WriteString("  % empty graph\n")
		b.WriteString(tikzClosing)
		return b.String()
	}

	proj := newProjection(g.Nodes)
	index := g.NodeIndex()
	for i, n := range g.Nodes {
		if index[n.ID] != i {
			continue
		}
		x, y := proj.point(n)
		fmt.Fprintf(&b, "  \\node[junction] (n%d) at (%.4f,%.4f) {};\n", i, x, y)
	}

	drawn := make(map[[2]int64]bool)
	for _, e := range g.Edges {
		from, okFrom := index[e.Source]
		to, okTo := index[e.Target]
		if !okFrom || !okTo {
			continue
		}
		pair := [2]int64{min(e.Source, e.Target), max(e.Source, e.Target)}
		if drawn[pair] {
			continue
		}
		drawn[pair] = true
		fmt.Fprintf(&b, "  \\draw[road] (n%d) -- (n%d);\n", from, to)
	}

	b.WriteString(tikzClosing)
	return b.String()
}
