package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/roadgraph/pkg/geo"
)

// boundsFlags holds a bounding box given either as four flags or as --bbox.
type boundsFlags struct {
	north, south, east, west float64
	bbox                     string
}

func (b *boundsFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&b.north, "north", 0, "northern latitude")
	cmd.Flags().Float64Var(&b.south, "south", 0, "southern latitude")
	cmd.Flags().Float64Var(&b.east, "east", 0, "eastern longitude")
	cmd.Flags().Float64Var(&b.west, "west", 0, "western longitude")
	cmd.Flags().StringVar(&b.bbox, "bbox", "", "bounding box as south,west,north,east (Overpass order)")
	cmd.MarkFlagsRequiredTogether("north", "south", "east", "west")
	cmd.MarkFlagsMutuallyExclusive("bbox", "north")
}

// box returns the validated bounding box.
func (b *boundsFlags) box(cmd *cobra.Command) (geo.BoundingBox, error) {
	var box geo.BoundingBox
	switch {
	case b.bbox != "":
		parsed, err := parseBBox(b.bbox)
		if err != nil {
			return geo.BoundingBox{}, err
		}
		box = parsed
	case cmd.Flags().Changed("north"):
		box = geo.BoundingBox{North: b.north, South: b.south, East: b.east, West: b.west}
	default:
		return geo.BoundingBox{}, fmt.Errorf("a bounding box is required: use --north/--south/--east/--west or --bbox")
	}
	if err := geo.Validate(box); err != nil {
		return geo.BoundingBox{}, err
	}
	return box, nil
}

// parseBBox parses "south,west,north,east".
func parseBBox(s string) (geo.BoundingBox, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geo.BoundingBox{}, fmt.Errorf("invalid --bbox %q: want south,west,north,east", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geo.BoundingBox{}, fmt.Errorf("invalid --bbox %q: %w", s, err)
		}
		v[i] = f
	}
	return geo.BoundingBox{South: v[0], West: v[1], North: v[2], East: v[3]}, nil
}

// formatBox renders b in Overpass order for display.
func formatBox(b geo.BoundingBox) string {
	return fmt.Sprintf("%s,%s,%s,%s",
		strconv.FormatFloat(b.South, 'f', -1, 64),
		strconv.FormatFloat(b.West, 'f', -1, 64),
		strconv.FormatFloat(b.North, 'f', -1, 64),
		strconv.FormatFloat(b.East, 'f', -1, 64))
}
