package overpass

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/paulmach/osm"
)

// Key identifies an element within a result. Node 1 and way 1 are distinct.
type Key struct {
	Type osm.Type
	ID   int64
}

// String returns the key in "type/id" form, e.g. "way/42".
func (k Key) String() string {
	return fmt.Sprintf("%s/%d", k.Type, k.ID)
}

// Element is a raw map element returned by the Overpass API.
//
// The concrete types are *Node, *Way and *Other. The set is closed: code
// that consumes elements switches over exactly these three.
type Element interface {
	Key() Key
	element()
}

// Node is a map point.
type Node struct {
	ID  osm.NodeID
	Lat float64
	Lon float64
}

// Way is an ordered list of node references with descriptive tags.
type Way struct {
	ID    osm.WayID
	Nodes []osm.NodeID
	Tags  osm.Tags
}

// Other is any element type the graph builder does not consume, such as a
// relation. It is kept so that identity-based merging stays exact.
type Other struct {
	Type osm.Type
	ID   int64
}

// Key returns the node's identity.
func (n *Node) Key() Key { return Key{Type: osm.TypeNode, ID: int64(n.ID)} }

// Key returns the way's identity.
func (w *Way) Key() Key { return Key{Type: osm.TypeWay, ID: int64(w.ID)} }

// Key returns the element's identity.
func (o *Other) Key() Key { return Key{Type: o.Type, ID: o.ID} }

func (*Node) element()  {}
func (*Way) element()   {}
func (*Other) element() {}

// Tag returns the value of the way's tag k, or "" if it is absent.
func (w *Way) Tag(k string) string {
	return w.Tags.Find(k)
}

// Result is a decoded Overpass JSON response body.
type Result struct {
	Elements []Element
}

// rawElement is the wire shape of one entry of the "elements" array.
type rawElement struct {
	Type  string            `json:"type"`
	ID    int64             `json:"id"`
	Lat   float64           `json:"lat"`
	Lon   float64           `json:"lon"`
	Nodes []int64           `json:"nodes"`
	Tags  map[string]string `json:"tags"`
}

// UnmarshalJSON decodes {"elements": [...]}. Other top-level fields
// (version, generator, osm3s) are ignored. Entries that are not JSON objects
// are skipped.
func (r *Result) UnmarshalJSON(data []byte) error {
	var body struct {
		Elements []json.RawMessage `json:"elements"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}

	r.Elements = make([]Element, 0, len(body.Elements))
	for _, msg := range body.Elements {
		var raw rawElement
		if err := json.Unmarshal(msg, &raw); err != nil {
			continue
		}
		r.Elements = append(r.Elements, raw.element())
	}
	return nil
}

// MarshalJSON encodes the result in the Overpass wire shape.
func (r Result) MarshalJSON() ([]byte, error) {
	out := struct {
		Elements []map[string]any `json:"elements"`
	}{Elements: make([]map[string]any, 0, len(r.Elements))}

	for _, el := range r.Elements {
		switch e := el.(type) {
		case *Node:
			out.Elements = append(out.Elements, map[string]any{
				"type": string(osm.TypeNode), "id": int64(e.ID), "lat": e.Lat, "lon": e.Lon,
			})
		case *Way:
			refs := make([]int64, len(e.Nodes))
			for i, id := range e.Nodes {
				refs[i] = int64(id)
			}
			m := map[string]any{"type": string(osm.TypeWay), "id": int64(e.ID), "nodes": refs}
			if len(e.Tags) > 0 {
				m["tags"] = tagsToMap(e.Tags)
			}
			out.Elements = append(out.Elements, m)
		case *Other:
			out.Elements = append(out.Elements, map[string]any{"type": string(e.Type), "id": e.ID})
		}
	}
	return json.Marshal(out)
}

func (raw rawElement) element() Element {
	switch osm.Type(raw.Type) {
	case osm.TypeNode:
		return &Node{ID: osm.NodeID(raw.ID), Lat: raw.Lat, Lon: raw.Lon}
	case osm.TypeWay:
		var refs []osm.NodeID
		if raw.Nodes != nil {
			refs = make([]osm.NodeID, len(raw.Nodes))
			for i, id := range raw.Nodes {
				refs[i] = osm.NodeID(id)
			}
		}
		return &Way{ID: osm.WayID(raw.ID), Nodes: refs, Tags: tagsFromMap(raw.Tags)}
	default:
		return &Other{Type: osm.Type(raw.Type), ID: raw.ID}
	}
}

func tagsToMap(tags osm.Tags) map[string]string {
	m := make(map[string]string, len(tags))
	for _, t := range tags {
		m[t.Key] = t.Value
	}
	return m
}

// tagsFromMap builds osm.Tags sorted by key so output is deterministic.
func tagsFromMap(m map[string]string) osm.Tags {
	if len(m) == 0 {
		return nil
	}
	tags := make(osm.Tags, 0, len(m))
	for k, v := range m {
		tags = append(tags, osm.Tag{Key: k, Value: v})
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Key < tags[j].Key })
	return tags
}
