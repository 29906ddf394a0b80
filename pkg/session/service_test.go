package session

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/paulmach/osm"

	"github.com/matzehuels/roadgraph/pkg/errors"
	"github.com/matzehuels/roadgraph/pkg/geo"
	"github.com/matzehuels/roadgraph/pkg/overpass"
)

type stubFetcher struct {
	res   *overpass.Result
	err   error
	calls int
}

func (s *stubFetcher) Fetch(_ context.Context, b geo.BoundingBox) (*overpass.Result, overpass.FetchStats, error) {
	s.calls++
	if err := geo.Validate(b); err != nil {
		return nil, overpass.FetchStats{}, err
	}
	if s.err != nil {
		return nil, overpass.FetchStats{Tiles: 1}, s.err
	}
	return s.res, overpass.FetchStats{Tiles: 1, Elements: len(s.res.Elements)}, nil
}

func roadResult() *overpass.Result {
	return &overpass.Result{Elements: []overpass.Element{
		&overpass.Node{ID: 1, Lat: 52.50, Lon: 13.39},
		&overpass.Node{ID: 2, Lat: 52.51, Lon: 13.40},
		&overpass.Way{ID: 100, Nodes: []osm.NodeID{1, 2}, Tags: osm.Tags{{Key: "highway", Value: "residential"}}},
	}}
}

var berlin = map[string]any{"north": 52.52, "south": 52.50, "east": 13.41, "west": 13.39}

func TestServiceBuild(t *testing.T) {
	f := &stubFetcher{res: roadResult()}
	svc := NewService(f, nil)
	sess := New(time.Hour)

	resp := svc.Build(context.Background(), sess, berlin)
	if !resp.Success {
		t.Fatalf("Build() failed: %s %s", resp.Code, resp.Message)
	}
	if resp.Stats == nil || resp.Stats.Nodes != 2 || resp.Stats.Edges != 2 || resp.Stats.Tiles != 1 {
		t.Errorf("stats = %+v", resp.Stats)
	}
	if sess.Graph() != resp.Graph {
		t.Error("successful build should fill the session slot")
	}
}

func TestServiceBuildInvalidBounds(t *testing.T) {
	f := &stubFetcher{res: roadResult()}
	svc := NewService(f, nil)
	sess := New(time.Hour)

	tests := []struct {
		name   string
		bounds any
		msg    string
	}{
		{"nil", nil, "bounds must be an object"},
		{"inverted", map[string]any{"north": 52.50, "south": 52.52, "east": 13.41, "west": 13.39}, "north must be greater than south"},
		{"missing field", map[string]any{"north": 52.52, "south": 52.50, "east": 13.41}, "west"},
		{"raw json", []byte(`{"north":91,"south":52.50,"east":13.41,"west":13.39}`), "latitude must be between -90 and 90"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := svc.Build(context.Background(), sess, tt.bounds)
			if resp.Success {
				t.Fatal("Build() should fail")
			}
			if resp.Code != string(errors.ErrCodeInvalidBounds) {
				t.Errorf("code = %q, want INVALID_BOUNDS", resp.Code)
			}
			if !strings.Contains(resp.Message, tt.msg) {
				t.Errorf("message = %q, want it to contain %q", resp.Message, tt.msg)
			}
		})
	}
	if f.calls != 0 {
		t.Errorf("invalid bounds reached the fetcher %d times", f.calls)
	}
	if sess.Graph() != nil {
		t.Error("failed builds must not fill the slot")
	}
}

func TestServiceBuildFailureKeepsPreviousGraph(t *testing.T) {
	f := &stubFetcher{res: roadResult()}
	svc := NewService(f, nil)
	sess := New(time.Hour)

	first := svc.Build(context.Background(), sess, berlin)
	if !first.Success {
		t.Fatal(first.Message)
	}

	f.err = errors.New(errors.ErrCodeTransport, "overpass returned status 504")
	resp := svc.Build(context.Background(), sess, berlin)
	if resp.Success || resp.Code != string(errors.ErrCodeTransport) {
		t.Errorf("Build() = %+v, want TRANSPORT_FAILURE", resp.Response)
	}
	if sess.Graph() != first.Graph {
		t.Error("a failed build must leave the previous graph in place")
	}
}

func TestServiceExport(t *testing.T) {
	svc := NewService(&stubFetcher{res: roadResult()}, nil)
	sess := New(time.Hour)

	resp := svc.Export(sess, "csv")
	if resp.Success || resp.Code != string(errors.ErrCodeNoGraph) {
		t.Errorf("Export() before build = %+v, want NO_GRAPH", resp.Response)
	}

	svc.Build(context.Background(), sess, berlin)

	resp = svc.Export(sess, "csv")
	if !resp.Success {
		t.Fatalf("Export() failed: %s", resp.Message)
	}
	if resp.MIMEType != "text/csv" || resp.Extension != "csv" || resp.Filename != "road-graph.csv" {
		t.Errorf("Export() = %+v", resp)
	}
	if !strings.HasPrefix(resp.Content, "source,target,weight,highway,name,wayId\n") {
		t.Errorf("content = %q", resp.Content)
	}
	if string(resp.Artifact.Content) != resp.Content {
		t.Error("artifact bytes should match content")
	}

	resp = svc.Export(sess, "pdf")
	if resp.Success || resp.Code != string(errors.ErrCodeUnsupportedFormat) {
		t.Errorf("Export(pdf) = %+v, want UNSUPPORTED_FORMAT", resp.Response)
	}
}

func TestResponseJSON(t *testing.T) {
	svc := NewService(&stubFetcher{res: roadResult()}, nil)
	resp := svc.Build(context.Background(), New(time.Hour), nil)
	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatal(err)
	}

	var got map[string]any
	json.Unmarshal(data, &got)
	if got["success"] != false || got["code"] != "INVALID_BOUNDS" {
		t.Errorf("failure JSON = %s", data)
	}
	if _, ok := got["graph"]; ok {
		t.Errorf("failure should omit graph: %s", data)
	}
}
