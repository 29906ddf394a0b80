package cli

import (
	"fmt"
	"os"

	"github.com/matzehuels/roadgraph/pkg/export"
	"github.com/matzehuels/roadgraph/pkg/graph"
	"github.com/matzehuels/roadgraph/pkg/session"
)

// stdoutPath selects standard output as the destination.
const stdoutPath = "-"

// writeArtifact writes a to path, or to standard output for "-". An empty
// path writes road-graph.<ext> in the working directory. It returns the path
// written, or "" for standard output.
func writeArtifact(a export.Artifact, path string) (string, error) {
	if path == stdoutPath {
		if _, err := os.Stdout.Write(a.Content); err != nil {
			return "", fmt.Errorf("write stdout: %w", err)
		}
		return "", nil
	}
	if path == "" {
		path = a.Filename(session.ExportBasename)
	}
	if err := os.WriteFile(path, a.Content, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// exportTo serializes g in format and writes it, reporting the file unless
// it went to standard output.
func exportTo(g *graph.Graph, format, path string) error {
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	a, err := export.Export(g, f)
	if err != nil {
		return err
	}
	written, err := writeArtifact(a, path)
	if err != nil {
		return err
	}
	if written != "" {
		printFile(written)
	}
	return nil
}

func formatsUsage() string {
	names := ""
	for i, f := range export.Formats() {
		if i > 0 {
			names += ", "
		}
		names += f.String()
	}
	return "output format: " + names
}
