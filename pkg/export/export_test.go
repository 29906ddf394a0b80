package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/roadgraph/pkg/errors"
	"github.com/matzehuels/roadgraph/pkg/graph"
)

// sampleGraph has two nodes joined in both directions by one way.
func sampleGraph() *graph.Graph {
	g := graph.New()
	g.Nodes = []graph.Node{
		{ID: 1, Lat: 52.52, Lon: 13.4},
		{ID: 2, Lat: 52.521, Lon: 13.401},
	}
	g.Edges = []graph.Edge{
		{Source: 1, Target: 2, WayID: 100, Weight: 0.5, Highway: "residential", Name: "Main St"},
		{Source: 2, Target: 1, WayID: 100, Weight: 0.5, Highway: "residential", Name: "Main St"},
	}
	return g
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		mime string
		ext  string
	}{
		{"json", "application/json", "json"},
		{"graphml", "application/xml", "graphml"},
		{"csv", "text/csv", "csv"},
		{"tikz", "application/x-tex", "tex"},
		{"geojson", "application/geo+json", "geojson"},
		{"dot", "text/vnd.graphviz", "dot"},
		{"svg", "image/svg+xml", "svg"},
	}
	for _, tt := range tests {
		f, err := ParseFormat(tt.in)
		if err != nil {
			t.Errorf("ParseFormat(%q) error: %v", tt.in, err)
			continue
		}
		if f.MIMEType() != tt.mime || f.Extension() != tt.ext {
			t.Errorf("ParseFormat(%q) = %s (%s, %s), want (%s, %s)", tt.in, f, f.MIMEType(), f.Extension(), tt.mime, tt.ext)
		}
	}
	if len(Formats()) != len(tests) {
		t.Errorf("Formats() = %v, want %d entries", Formats(), len(tests))
	}
}

func TestParseFormatUnsupported(t *testing.T) {
	for _, in := range []string{"", "JSON", "xml", "pdf", " csv"} {
		_, err := ParseFormat(in)
		if !errors.Is(err, errors.ErrCodeUnsupportedFormat) {
			t.Errorf("ParseFormat(%q) error = %v, want UNSUPPORTED_FORMAT", in, err)
		}
	}
}

func TestExport(t *testing.T) {
	g := sampleGraph()
	for _, f := range []Format{FormatJSON, FormatGraphML, FormatCSV, FormatTikZ, FormatGeoJSON, FormatDOT} {
		a, err := Export(g, f)
		if err != nil {
			t.Errorf("Export(%s) error: %v", f, err)
			continue
		}
		if a.Format != f || a.MIMEType != f.MIMEType() || a.Extension != f.Extension() {
			t.Errorf("Export(%s) = %+v", f, a)
		}
		if len(a.Content) == 0 {
			t.Errorf("Export(%s) returned no content", f)
		}
	}

	a, _ := Export(g, FormatTikZ)
	if a.Filename("road-graph") != "road-graph.tex" {
		t.Errorf("Filename() = %q", a.Filename("road-graph"))
	}

	if _, err := Export(g, Format("pdf")); !errors.Is(err, errors.ErrCodeUnsupportedFormat) {
		t.Errorf("Export(pdf) error = %v, want UNSUPPORTED_FORMAT", err)
	}
}

func TestExportDoesNotMutate(t *testing.T) {
	g := sampleGraph()
	before, _ := json.Marshal(g)
	for _, f := range []Format{FormatJSON, FormatGraphML, FormatCSV, FormatTikZ, FormatGeoJSON, FormatDOT} {
		if _, err := Export(g, f); err != nil {
			t.Fatalf("Export(%s) error: %v", f, err)
		}
	}
	after, _ := json.Marshal(g)
	if !bytes.Equal(before, after) {
		t.Error("serializers modified the graph")
	}
}

func TestExportEmptyGraph(t *testing.T) {
	for _, f := range []Format{FormatJSON, FormatGraphML, FormatCSV, FormatTikZ, FormatGeoJSON, FormatDOT} {
		for _, g := range []*graph.Graph{graph.New(), nil} {
			if _, err := Export(g, f); err != nil {
				t.Errorf("Export(empty, %s) error: %v", f, err)
			}
		}
	}
}

func TestJSON(t *testing.T) {
	data, err := JSON(sampleGraph())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "{\n  \"directed\": true,\n  \"multigraph\": false,\n  \"graph\": {},\n  \"nodes\": [") {
		t.Errorf("unexpected JSON layout:\n%s", data)
	}

	back, err := graph.ReadJSON(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadJSON(JSON()) error: %v", err)
	}
	if len(back.Nodes) != 2 || len(back.Edges) != 2 || back.Edges[0].Name != "Main St" {
		t.Errorf("round trip = %+v", back)
	}

	empty, _ := JSON(graph.New())
	want := "{\n  \"directed\": true,\n  \"multigraph\": false,\n  \"graph\": {},\n  \"nodes\": [],\n  \"edges\": []\n}\n"
	if string(empty) != want {
		t.Errorf("empty JSON = %q, want %q", empty, want)
	}
}
