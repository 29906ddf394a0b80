package export

import (
	"github.com/paulmach/orb"

	"github.com/matzehuels/roadgraph/pkg/graph"
)

// drawingSize is the extent, in drawing units, of the longer side of the
// node bounding box.
const drawingSize = 10.0

// projection maps lon/lat linearly onto a drawing with the origin at the
// south-west corner of the nodes' bounding box.
type projection struct {
	min   orb.Point
	scale float64
}

func newProjection(nodes []graph.Node) projection {
	if len(nodes) == 0 {
		return projection{}
	}
	pts := make(orb.MultiPoint, len(nodes))
	for i, n := range nodes {
		pts[i] = orb.Point{n.Lon, n.Lat}
	}
	bound := pts.Bound()

	p := projection{min: bound.Min}
	if span := max(bound.Right()-bound.Left(), bound.Top()-bound.Bottom()); span > 0 {
		p.scale = drawingSize / span
	}
	return p
}

// point returns the drawing coordinates of n.
func (p projection) point(n graph.Node) (x, y float64) {
	return (n.Lon - p.min.X()) * p.scale, (n.Lat - p.min.Y()) * p.scale
}
