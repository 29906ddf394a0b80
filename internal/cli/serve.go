package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/matzehuels/roadgraph/internal/server"
	"github.com/matzehuels/roadgraph/pkg/session"
)

// serveCommand runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr  string
		fetch fetchOpts
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the graph API over HTTP",
		Long: `Start an HTTP server exposing graph building and export.

Clients create a session, post a bounding box to build its graph and then
download the graph in any export format. Sessions live in memory and expire
after two hours without use.

Examples:
  roadgraph serve
  roadgraph serve --addr 127.0.0.1:9000 --endpoint http://localhost:12345/api/interpreter`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, fetch)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	fetch.register(cmd)

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, opts fetchOpts) error {
	logger := loggerFromContext(ctx)

	fetcher, store, err := c.newFetcher(ctx, opts)
	if err != nil {
		return err
	}
	defer store.Close()

	if addr == "" {
		addr = c.config.Server.Addr
	}
	srv := server.New(server.Options{
		Addr:           addr,
		AllowedOrigins: c.config.Server.AllowedOrigins,
		Fetcher:        fetcher,
		Store:          session.NewMemoryStore(),
		Logger:         logger,
	})

	endpoint := c.config.Overpass.Endpoint
	if opts.endpoint != "" {
		endpoint = opts.endpoint
	}
	backend := c.config.Cache.Backend
	if opts.noCache {
		backend = "disabled"
	}
	printKeyValue("Listening", srv.Addr())
	printKeyValue("Overpass", endpoint)
	printKeyValue("Cache", backend)

	err = srv.Run(ctx)
	if errors.Is(err, context.Canceled) {
		printInfo("Server stopped")
		return nil
	}
	return err
}
