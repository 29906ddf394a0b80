package export

import (
	"github.com/matzehuels/roadgraph/pkg/errors"
	"github.com/matzehuels/roadgraph/pkg/graph"
)

// Format selects a serializer.
type Format string

const (
	FormatJSON    Format = "json"
	FormatGraphML Format = "graphml"
	FormatCSV     Format = "csv"
	FormatTikZ    Format = "tikz"
	FormatGeoJSON Format = "geojson"
	FormatDOT     Format = "dot"
	FormatSVG     Format = "svg"
)

type formatInfo struct {
	mime   string
	ext    string
	render func(*graph.Graph) ([]byte, error)
}

var formats = map[Format]formatInfo{
	FormatJSON:    {"application/json", "json", JSON},
	FormatGraphML: {"application/xml", "graphml", textFormat(GraphML)},
	FormatCSV:     {"text/csv", "csv", textFormat(CSV)},
	FormatTikZ:    {"application/x-tex", "tex", textFormat(TikZ)},
	FormatGeoJSON: {"application/geo+json", "geojson", GeoJSON},
	FormatDOT:     {"text/vnd.graphviz", "dot", textFormat(DOT)},
	FormatSVG:     {"image/svg+xml", "svg", SVG},
}

// Formats lists every supported format in display order.
func Formats() []Format {
	return []Format{FormatJSON, FormatGraphML, FormatCSV, FormatTikZ, FormatGeoJSON, FormatDOT, FormatSVG}
}

// ParseFormat returns the Format named s. Names are case-sensitive.
func ParseFormat(s string) (Format, error) {
	f := Format(s)
	if _, ok := formats[f]; !ok {
		return "", errors.New(errors.ErrCodeUnsupportedFormat, "unsupported format %q", s)
	}
	return f, nil
}

// MIMEType returns the content type of f, or "" for an unknown format.
func (f Format) MIMEType() string { return formats[f].mime }

// Extension returns the file extension of f without the dot.
func (f Format) Extension() string { return formats[f].ext }

func (f Format) String() string { return string(f) }

// Artifact is a serialized graph ready to be written or served.
type Artifact struct {
	Format    Format
	Content   []byte
	MIMEType  string
	Extension string
}

// Filename returns "<base>.<ext>".
func (a Artifact) Filename(base string) string {
	return base + "." + a.Extension
}

// Export serializes g in format f.
func Export(g *graph.Graph, f Format) (Artifact, error) {
	info, ok := formats[f]
	if !ok {
		return Artifact{}, errors.New(errors.ErrCodeUnsupportedFormat, "unsupported format %q", string(f))
	}
	if g == nil {
		g = graph.New()
	}
	content, err := info.render(g)
	if err != nil {
		return Artifact{}, errors.Wrap(errors.ErrCodeInternal, err, "render %s", string(f))
	}
	return Artifact{Format: f, Content: content, MIMEType: info.mime, Extension: info.ext}, nil
}

func textFormat(fn func(*graph.Graph) string) func(*graph.Graph) ([]byte, error) {
	return func(g *graph.Graph) ([]byte, error) {
		return []byte(fn(g)), nil
	}
}
