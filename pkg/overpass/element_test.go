package overpass

import (
	"encoding/json"
	"testing"

	"github.com/paulmach/osm"
)

const sampleBody = `{
  "version": 0.6,
  "generator": "Overpass API",
  "osm3s": {"copyright": "ODbL"},
  "elements": [
    {"type": "way", "id": 100, "nodes": [1, 2, 3], "tags": {"highway": "residential", "name": "Main St", "oneway": "yes"}},
    {"type": "node", "id": 1, "lat": 52.52, "lon": 13.40},
    {"type": "node", "id": 2, "lat": 52.521, "lon": 13.401},
    {"type": "relation", "id": 7},
    "garbage",
    {"type": "way", "id": 101}
  ]
}`

func TestResultUnmarshal(t *testing.T) {
	var res Result
	if err := json.Unmarshal([]byte(sampleBody), &res); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if len(res.Elements) != 5 {
		t.Fatalf("got %d elements, want 5 (non-object entry skipped)", len(res.Elements))
	}

	way, ok := res.Elements[0].(*Way)
	if !ok {
		t.Fatalf("element 0 = %T, want *Way", res.Elements[0])
	}
	if way.ID != 100 || len(way.Nodes) != 3 || way.Nodes[2] != 3 {
		t.Errorf("way = %+v", way)
	}
	if way.Tag("highway") != "residential" || way.Tag("name") != "Main St" || way.Tag("oneway") != "yes" {
		t.Errorf("way tags = %v", way.Tags)
	}
	if way.Tag("maxspeed") != "" {
		t.Error("missing tag should read as empty string")
	}

	node, ok := res.Elements[1].(*Node)
	if !ok {
		t.Fatalf("element 1 = %T, want *Node", res.Elements[1])
	}
	if node.ID != 1 || node.Lat != 52.52 || node.Lon != 13.40 {
		t.Errorf("node = %+v", node)
	}

	other, ok := res.Elements[3].(*Other)
	if !ok {
		t.Fatalf("element 3 = %T, want *Other", res.Elements[3])
	}
	if other.Key() != (Key{Type: osm.TypeRelation, ID: 7}) {
		t.Errorf("relation key = %v", other.Key())
	}

	bare, ok := res.Elements[4].(*Way)
	if !ok {
		t.Fatalf("element 4 = %T, want *Way", res.Elements[4])
	}
	if bare.Nodes != nil || bare.Tags != nil {
		t.Errorf("way without nodes/tags = %+v, want nil fields", bare)
	}
}

func TestResultUnmarshalEmpty(t *testing.T) {
	for _, body := range []string{`{}`, `{"elements": []}`, `{"elements": null}`} {
		var res Result
		if err := json.Unmarshal([]byte(body), &res); err != nil {
			t.Errorf("Unmarshal(%s) error: %v", body, err)
		}
		if len(res.Elements) != 0 {
			t.Errorf("Unmarshal(%s) = %d elements, want 0", body, len(res.Elements))
		}
	}

	var res Result
	if err := json.Unmarshal([]byte(`[1,2]`), &res); err == nil {
		t.Error("Unmarshal of a non-object body should fail")
	}
}

func TestResultMarshalRoundTrip(t *testing.T) {
	var res Result
	if err := json.Unmarshal([]byte(sampleBody), &res); err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	var again Result
	if err := json.Unmarshal(data, &again); err != nil {
		t.Fatalf("Unmarshal(Marshal()) error: %v", err)
	}
	if len(again.Elements) != len(res.Elements) {
		t.Fatalf("round trip has %d elements, want %d", len(again.Elements), len(res.Elements))
	}
	for i := range res.Elements {
		if again.Elements[i].Key() != res.Elements[i].Key() {
			t.Errorf("element %d key = %v, want %v", i, again.Elements[i].Key(), res.Elements[i].Key())
		}
	}
	if w := again.Elements[0].(*Way); w.Tag("name") != "Main St" {
		t.Errorf("round trip lost tags: %v", w.Tags)
	}
}

func TestKeyString(t *testing.T) {
	if got := (&Way{ID: 42}).Key().String(); got != "way/42" {
		t.Errorf("Key.String() = %q, want way/42", got)
	}
}
