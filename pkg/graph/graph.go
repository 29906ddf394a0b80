package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Graph is a directed road graph in node-link form.
//
// Directed is always true and Multigraph always false; parallel edges are
// still allowed. A Graph is never mutated once built.
type Graph struct {
	Directed   bool     `json:"directed"`
	Multigraph bool     `json:"multigraph"`
	Graph      Metadata `json:"graph"`
	Nodes      []Node   `json:"nodes"`
	Edges      []Edge   `json:"edges"`
}

// Metadata is the reserved graph-level attribute object. It always encodes
// as {}.
type Metadata struct{}

// Node is a road junction or shape point.
type Node struct {
	ID  int64   `json:"id"`
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Edge is one travel direction along a way segment. Weight is the
// great-circle length in kilometres.
type Edge struct {
	Source  int64   `json:"source"`
	Target  int64   `json:"target"`
	WayID   int64   `json:"wayId"`
	Weight  float64 `json:"weight"`
	Highway string  `json:"highway"`
	Name    string  `json:"name"`
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{Directed: true, Nodes: []Node{}, Edges: []Edge{}}
}

// Empty reports whether g has no nodes and no edges.
func (g *Graph) Empty() bool {
	return g == nil || (len(g.Nodes) == 0 && len(g.Edges) == 0)
}

// NodeIndex maps node ids to their position in g.Nodes. The first node wins
// when ids repeat.
func (g *Graph) NodeIndex() map[int64]int {
	idx := make(map[int64]int, len(g.Nodes))
	for i, n := range g.Nodes {
		if _, ok := idx[n.ID]; !ok {
			idx[n.ID] = i
		}
	}
	return idx
}

// MarshalJSON encodes g with nil node and edge slices written as [].
func (g Graph) MarshalJSON() ([]byte, error) {
	type plain Graph
	out := plain(g)
	if out.Nodes == nil {
		out.Nodes = []Node{}
	}
	if out.Edges == nil {
		out.Edges = []Edge{}
	}
	return json.Marshal(out)
}

// ReadJSON decodes a node-link JSON graph from r. Missing node or edge lists
// decode as empty.
func ReadJSON(r io.Reader) (*Graph, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return nil, fmt.Errorf("decode graph: %w", err)
	}
	if g.Nodes == nil {
		g.Nodes = []Node{}
	}
	if g.Edges == nil {
		g.Edges = []Edge{}
	}
	return &g, nil
}

// ReadFile reads a node-link JSON graph from path.
func ReadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
