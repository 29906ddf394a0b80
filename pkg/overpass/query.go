package overpass

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/roadgraph/pkg/geo"
)

// QueryTimeout is the server-side timeout, in seconds, requested by every query.
const QueryTimeout = 25

// ExcludedHighways are the minor highway subtypes left out of road graphs.
var ExcludedHighways = []string{"footway", "cycleway", "path", "service", "track"}

// HighwayFilter is the Overpass tag filter selecting drivable highways.
var HighwayFilter = `["highway"]["highway"!~"^(` + strings.Join(ExcludedHighways, "|") + `)$"]`

// BuildQuery returns the Overpass QL query for all highway ways inside b,
// excluding ExcludedHighways. The query asks for full way bodies followed by
// every node the ways reference, so each way can be resolved to coordinates.
//
// The bounding box is validated first; an invalid box yields an
// INVALID_BOUNDS error and no query.
func BuildQuery(b geo.BoundingBox) (string, error) {
	if err := geo.Validate(b); err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "[out:json][timeout:%d];\n", QueryTimeout)
	sb.WriteString("(\n")
	fmt.Fprintf(&sb, "  way%s(%s);\n", HighwayFilter, bboxClause(b))
	sb.WriteString(");\n")
	sb.WriteString("out body;\n")
	sb.WriteString(">;\n")
	sb.WriteString("out skel qt;\n")
	return sb.String(), nil
}

// bboxClause renders b in Overpass order: south,west,north,east.
func bboxClause(b geo.BoundingBox) string {
	return strings.Join([]string{
		formatCoord(b.South),
		formatCoord(b.West),
		formatCoord(b.North),
		formatCoord(b.East),
	}, ",")
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
