package export

import (
	"strings"
	"testing"

	"github.com/matzehuels/roadgraph/pkg/graph"
)

func csvLines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func TestCSV(t *testing.T) {
	g := graph.New()
	g.Edges = []graph.Edge{{Source: 1, Target: 2, Weight: 0.5, Highway: "residential", Name: "Main St", WayID: 100}}

	lines := csvLines(CSV(g))
	want := []string{
		"source,target,weight,highway,name,wayId",
		"1,2,0.5,residential,Main St,100",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines %q, want %d", len(lines), lines, len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestCSVQuoting(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Main St, North", `1,2,0.5,residential,"Main St, North",100`},
		{`The "Strip"`, `1,2,0.5,residential,"The ""Strip""",100`},
		{"plain", `1,2,0.5,residential,plain,100`},
	}
	for _, tt := range tests {
		g := graph.New()
		g.Edges = []graph.Edge{{Source: 1, Target: 2, Weight: 0.5, Highway: "residential", Name: tt.name, WayID: 100}}
		lines := csvLines(CSV(g))
		if len(lines) != 2 || lines[1] != tt.want {
			t.Errorf("CSV name %q: got %q, want %q", tt.name, lines, tt.want)
		}
	}
}

func TestCSVEmpty(t *testing.T) {
	if got := CSV(graph.New()); got != "source,target,weight,highway,name,wayId\n" {
		t.Errorf("CSV(empty) = %q", got)
	}
}
