package export

import (
	"encoding/json"
	"testing"

	"github.com/matzehuels/roadgraph/pkg/graph"
)

func TestGeoJSON(t *testing.T) {
	data, err := GeoJSON(sampleGraph())
	if err != nil {
		t.Fatalf("GeoJSON() error: %v", err)
	}

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type        string          `json:"type"`
				Coordinates json.RawMessage `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	if err := json.Unmarshal(data, &fc); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if fc.Type != "FeatureCollection" {
		t.Errorf("type = %q", fc.Type)
	}
	if len(fc.Features) != 4 {
		t.Fatalf("got %d features, want 2 points + 2 lines", len(fc.Features))
	}

	pt := fc.Features[0]
	if pt.Geometry.Type != "Point" || string(pt.Geometry.Coordinates) != "[13.4,52.52]" {
		t.Errorf("point = %s %s", pt.Geometry.Type, pt.Geometry.Coordinates)
	}
	if pt.Properties["id"] != float64(1) {
		t.Errorf("point id = %v", pt.Properties["id"])
	}

	line := fc.Features[2]
	if line.Geometry.Type != "LineString" {
		t.Errorf("geometry = %s, want LineString", line.Geometry.Type)
	}
	if line.Properties["name"] != "Main St" || line.Properties["wayId"] != float64(100) {
		t.Errorf("line properties = %v", line.Properties)
	}
}

func TestGeoJSONEmpty(t *testing.T) {
	data, err := GeoJSON(graph.New())
	if err != nil {
		t.Fatal(err)
	}
	var fc map[string]any
	if err := json.Unmarshal(data, &fc); err != nil {
		t.Fatal(err)
	}
	if fc["type"] != "FeatureCollection" {
		t.Errorf("type = %v", fc["type"])
	}
}
