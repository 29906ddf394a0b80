package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/roadgraph/pkg/export"
	"github.com/matzehuels/roadgraph/pkg/graph"
)

// convertCommand creates the convert command for offline builds from a saved
// Overpass response.
func (c *CLI) convertCommand() *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "convert [overpass.json]",
		Short: "Build a graph from a saved Overpass JSON response",
		Long: `Build a graph from a saved Overpass JSON response.

The input is the body returned by an Overpass interpreter for a query with
[out:json], e.g. one saved from overpass-turbo. Use - to read stdin. Malformed
input produces an empty graph rather than an error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := export.ParseFormat(format); err != nil {
				return err
			}
			data, err := readInput(args[0])
			if err != nil {
				return err
			}

			g := graph.BuildJSON(data)
			loggerFromContext(cmd.Context()).Debug("converted overpass response", "bytes", len(data),
				"nodes", len(g.Nodes), "edges", len(g.Edges))

			if output != stdoutPath {
				printSuccess("Converted %s", args[0])
				printStats(len(g.Nodes), len(g.Edges), 0)
			}
			return exportTo(g, format, output)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", defaultFormat, formatsUsage())
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default road-graph.<ext>)")

	return cmd
}

// readInput reads path, or stdin for "-".
func readInput(path string) ([]byte, error) {
	if path == stdoutPath {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
