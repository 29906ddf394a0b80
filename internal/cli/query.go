package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/roadgraph/pkg/geo"
	"github.com/matzehuels/roadgraph/pkg/overpass"
)

// queryCommand creates the query command that prints the Overpass QL sent
// for a bounding box.
func (c *CLI) queryCommand() *cobra.Command {
	var (
		bounds   boundsFlags
		tiled    bool
		tileSize float64
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Print the Overpass query for a bounding box",
		Long: `Print the Overpass QL query for a bounding box, e.g. to paste into
overpass-turbo. With --tiles, print the query of every tile the box is split
into, in the order they would be fetched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			box, err := bounds.box(cmd)
			if err != nil {
				return err
			}

			tiles := []geo.BoundingBox{box}
			if tiled && geo.NeedsTiling(box) {
				tiles = geo.SplitBounds(box, c.tileSize(tileSize))
			}
			out := cmd.OutOrStdout()
			for i, tile := range tiles {
				q, err := overpass.BuildQuery(tile)
				if err != nil {
					return err
				}
				if len(tiles) > 1 {
					fmt.Fprintf(out, "// tile %d of %d: %s\n", i+1, len(tiles), formatBox(tile))
				}
				fmt.Fprint(out, q)
			}
			return nil
		},
	}

	bounds.register(cmd)
	cmd.Flags().BoolVar(&tiled, "tiles", false, "print one query per tile")
	cmd.Flags().Float64Var(&tileSize, "tile-size", 0, "maximum tile edge in degrees (default from config)")

	return cmd
}

// tilesCommand creates the tiles command that prints the tile grid.
func (c *CLI) tilesCommand() *cobra.Command {
	var (
		bounds   boundsFlags
		tileSize float64
	)

	cmd := &cobra.Command{
		Use:   "tiles",
		Short: "Print the tiles a bounding box is split into",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			box, err := bounds.box(cmd)
			if err != nil {
				return err
			}

			tiles := []geo.BoundingBox{box}
			if geo.NeedsTiling(box) {
				tiles = geo.SplitBounds(box, c.tileSize(tileSize))
			}
			out := cmd.OutOrStdout()
			for _, tile := range tiles {
				fmt.Fprintln(out, formatBox(tile))
			}
			loggerFromContext(cmd.Context()).Debug("split bounding box", "tiles", len(tiles),
				"lat_span", box.LatSpan(), "lon_span", box.LonSpan())
			return nil
		},
	}

	bounds.register(cmd)
	cmd.Flags().Float64Var(&tileSize, "tile-size", 0, "maximum tile edge in degrees (default from config)")

	return cmd
}
