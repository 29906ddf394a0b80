package session

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/roadgraph/pkg/errors"
	"github.com/matzehuels/roadgraph/pkg/export"
	"github.com/matzehuels/roadgraph/pkg/geo"
	"github.com/matzehuels/roadgraph/pkg/graph"
	"github.com/matzehuels/roadgraph/pkg/overpass"
)

// ExportBasename is the file name, without extension, suggested for
// exported graphs.
const ExportBasename = "road-graph"

// Fetcher retrieves the raw elements inside a bounding box.
// *overpass.Fetcher implements it.
type Fetcher interface {
	Fetch(ctx context.Context, b geo.BoundingBox) (*overpass.Result, overpass.FetchStats, error)
}

// Response is the outcome shared by every service call. Failures carry the
// error code and a message naming the problem; they are never returned as Go
// errors.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// BuildStats summarizes a successful build.
type BuildStats struct {
	Nodes      int   `json:"nodes"`
	Edges      int   `json:"edges"`
	Tiles      int   `json:"tiles"`
	DurationMs int64 `json:"duration_ms"`
}

// BuildResponse is returned by Service.Build.
type BuildResponse struct {
	Response
	Graph *graph.Graph `json:"graph,omitempty"`
	Stats *BuildStats  `json:"stats,omitempty"`
}

// ExportResponse is returned by Service.Export. Artifact holds the raw bytes
// for callers that stream the file instead of embedding it.
type ExportResponse struct {
	Response
	Content   string          `json:"content,omitempty"`
	MIMEType  string          `json:"mime_type,omitempty"`
	Extension string          `json:"extension,omitempty"`
	Filename  string          `json:"filename,omitempty"`
	Artifact  export.Artifact `json:"-"`
}

// Service runs builds and exports against a session's graph slot.
type Service struct {
	fetcher Fetcher
	logger  *log.Logger
}

// NewService creates a Service. A nil logger selects log.Default().
func NewService(f Fetcher, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{fetcher: f, logger: logger}
}

// Build validates bounds, fetches the area and builds its road graph. On
// success the graph replaces the one stored in sess. bounds may be a
// geo.BoundingBox, a decoded JSON object or raw JSON bytes.
func (s *Service) Build(ctx context.Context, sess *Session, bounds any) BuildResponse {
	b, err := geo.ParseBounds(bounds)
	if err != nil {
		return BuildResponse{Response: failure(err)}
	}

	start := time.Now()
	res, stats, err := s.fetcher.Fetch(ctx, b)
	if err != nil {
		s.logger.Warn("build failed", "session", sess.ID, "err", err)
		return BuildResponse{Response: failure(err)}
	}

	g := graph.Build(res)
	sess.SetGraph(g)

	elapsed := time.Since(start)
	s.logger.Info("built road graph", "session", sess.ID, "nodes", len(g.Nodes),
		"edges", len(g.Edges), "tiles", stats.Tiles, "duration", elapsed.Round(time.Millisecond))

	return BuildResponse{
		Response: Response{Success: true, Message: "graph built"},
		Graph:    g,
		Stats: &BuildStats{
			Nodes:      len(g.Nodes),
			Edges:      len(g.Edges),
			Tiles:      stats.Tiles,
			DurationMs: elapsed.Milliseconds(),
		},
	}
}

// Export serializes the graph stored in sess. It fails with NO_GRAPH before
// the first successful build and UNSUPPORTED_FORMAT for unknown formats.
func (s *Service) Export(sess *Session, format string) ExportResponse {
	f, err := export.ParseFormat(format)
	if err != nil {
		return ExportResponse{Response: failure(err)}
	}
	g := sess.Graph()
	if g == nil {
		return ExportResponse{Response: failure(errors.New(errors.ErrCodeNoGraph, "no graph has been built yet"))}
	}
	return ExportGraph(g, f)
}

// ExportGraph serializes g without touching any session.
func ExportGraph(g *graph.Graph, f export.Format) ExportResponse {
	a, err := export.Export(g, f)
	if err != nil {
		return ExportResponse{Response: failure(err)}
	}
	return ExportResponse{
		Response:  Response{Success: true, Message: "exported " + f.String()},
		Content:   string(a.Content),
		MIMEType:  a.MIMEType,
		Extension: a.Extension,
		Filename:  a.Filename(ExportBasename),
		Artifact:  a,
	}
}

func failure(err error) Response {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	return Response{Success: false, Message: errors.UserMessage(err), Code: string(code)}
}
