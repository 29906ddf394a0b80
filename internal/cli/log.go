// Package cli implements the roadgraph command-line interface.
//
// This package provides commands for fetching road networks from an
// Overpass API server, converting them into graphs, exporting graphs to
// other formats, serving the HTTP API and managing the response cache. The
// CLI is built using cobra and logs through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - build: Fetch a bounding box and write its road graph
//   - convert: Build a graph from a saved Overpass response
//   - export: Convert a node-link JSON graph to another format
//   - query, tiles: Show the Overpass queries and tile grid for a box
//   - serve: Run the HTTP API
//   - cache: Manage the response cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so progress can be reported anywhere.
//
// # Example
//
//	import "github.com/matzehuels/roadgraph/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Built graph (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, p.elapsed())
}

func (p *progress) elapsed() time.Duration {
	return time.Since(p.start).Round(time.Millisecond)
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return log.Default()
	}
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
