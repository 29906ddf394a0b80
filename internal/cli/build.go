package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/roadgraph/pkg/export"
	"github.com/matzehuels/roadgraph/pkg/geo"
	"github.com/matzehuels/roadgraph/pkg/graph"
)

// buildCommand creates the build command: fetch, build and export in one go.
func (c *CLI) buildCommand() *cobra.Command {
	var (
		bounds fetchBounds
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Fetch the road network in a bounding box and write its graph",
		Long: `Fetch the drivable road network inside a bounding box and write it as a graph.

Footways, cycleways, paths, service roads and tracks are excluded. Boxes larger
than 0.1 degrees on either side are split into overlapping tiles that are
queried one after another; if any tile fails, the whole build fails.

Overpass responses are cached (see 'roadgraph cache'), so building the same
area again does not hit the server.

Examples:
  roadgraph build --north 52.52 --south 52.50 --east 13.41 --west 13.39
  roadgraph build --bbox 52.50,13.39,52.52,13.41 --format graphml -o mitte.graphml
  roadgraph build --bbox 52.50,13.39,52.52,13.41 --format csv -o -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			box, err := bounds.box(cmd)
			if err != nil {
				return err
			}
			if _, err := export.ParseFormat(format); err != nil {
				return err
			}
			return c.runBuild(cmd.Context(), box, bounds.fetch, format, output)
		},
	}

	bounds.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", defaultFormat, formatsUsage())
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default road-graph.<ext>)")

	return cmd
}

// fetchBounds combines the bounding box and fetch flags.
type fetchBounds struct {
	boundsFlags
	fetch fetchOpts
}

func (f *fetchBounds) register(cmd *cobra.Command) {
	f.boundsFlags.register(cmd)
	f.fetch.register(cmd)
}

func (c *CLI) runBuild(ctx context.Context, box geo.BoundingBox, opts fetchOpts, format, output string) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	fetcher, store, err := c.newFetcher(ctx, opts)
	if err != nil {
		return err
	}
	defer store.Close()

	spinner := newSpinnerWithContext(ctx, "Fetching roads...")
	reporter := newFetchReporter(spinner)
	defer reporter.install()()
	spinner.Start()

	res, stats, err := fetcher.Fetch(ctx, box)
	if err != nil {
		spinner.StopWithError("Fetch failed")
		return fmt.Errorf("fetch %s: %w", formatBox(box), err)
	}
	spinner.Stop()

	g := graph.Build(res)
	prog.done(fmt.Sprintf("Built graph from %d elements", stats.Elements))

	toStdout := output == stdoutPath
	if !toStdout {
		source := "fresh"
		if reporter.cached() {
			source = "cached"
		}
		printSuccess("Road graph for %s (%s)", formatBox(box), source)
		printStats(len(g.Nodes), len(g.Edges), stats.Tiles)
		if g.Empty() {
			printWarning("No drivable roads found in this area")
		}
	}

	if err := exportTo(g, format, output); err != nil {
		return err
	}
	if !toStdout && format == defaultFormat {
		printNextStep("Convert it", appName+" export "+outputName(output, format)+" --format graphml")
	}
	return nil
}

func outputName(output, format string) string {
	if output != "" {
		return output
	}
	return "road-graph." + format
}
