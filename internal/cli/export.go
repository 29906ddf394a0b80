package cli

import (
	"bytes"

	"github.com/spf13/cobra"

	"github.com/matzehuels/roadgraph/pkg/export"
	"github.com/matzehuels/roadgraph/pkg/graph"
)

// exportCommand creates the export command that converts a node-link JSON
// graph into another format.
func (c *CLI) exportCommand() *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export [graph.json]",
		Short: "Convert a node-link JSON graph to another format",
		Long: `Convert a node-link JSON graph, as written by 'build --format json', to
another format. Use - to read stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := export.ParseFormat(format); err != nil {
				return err
			}
			data, err := readInput(args[0])
			if err != nil {
				return err
			}
			g, err := graph.ReadJSON(bytes.NewReader(data))
			if err != nil {
				return err
			}

			if output != stdoutPath {
				printSuccess("Exported %s as %s", args[0], format)
				printStats(len(g.Nodes), len(g.Edges), 0)
			}
			return exportTo(g, format, output)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", formatsUsage())
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default road-graph.<ext>)")
	_ = cmd.MarkFlagRequired("format")

	return cmd
}
