package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/roadgraph/pkg/buildinfo"
	"github.com/matzehuels/roadgraph/pkg/cache"
	"github.com/matzehuels/roadgraph/pkg/config"
	"github.com/matzehuels/roadgraph/pkg/overpass"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "roadgraph"

	// defaultFormat is the export format used when --format is not given.
	defaultFormat = "json"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	config     config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Roadgraph turns OpenStreetMap roads into routable graphs",
		Long: `Roadgraph fetches the drivable road network inside a bounding box from an
Overpass API server and converts it into a directed, distance-weighted graph.
Graphs can be written as JSON, GraphML, CSV, TikZ, GeoJSON, DOT or SVG.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			c.config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultPath()+")")

	// Register all subcommands
	root.AddCommand(c.buildCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.queryCommand())
	root.AddCommand(c.tilesCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Fetcher Factory
// =============================================================================

// fetchOpts holds the flags shared by commands that talk to Overpass.
type fetchOpts struct {
	endpoint string
	tileSize float64
	noCache  bool
	refresh  bool
}

func (o *fetchOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.endpoint, "endpoint", "", "Overpass interpreter URL (overrides config)")
	cmd.Flags().Float64Var(&o.tileSize, "tile-size", 0, "maximum tile edge in degrees (default from config)")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable the response cache")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "ignore cached responses and fetch again")
}

// newFetcher builds a fetcher from the loaded config and opts. The returned
// cache must be closed by the caller.
func (c *CLI) newFetcher(ctx context.Context, opts fetchOpts) (*overpass.Fetcher, cache.Cache, error) {
	cacheOpts := c.config.CacheOptions()
	if opts.noCache {
		cacheOpts.Backend = cache.BackendNone
	}
	store, err := cache.Open(ctx, cacheOpts)
	if err != nil {
		return nil, nil, fmt.Errorf("open cache: %w", err)
	}

	clientOpts := c.config.ClientOptions()
	clientOpts.Cache = store
	clientOpts.Refresh = opts.refresh
	clientOpts.Logger = c.Logger
	if opts.endpoint != "" {
		clientOpts.Endpoint = opts.endpoint
	}

	return overpass.NewFetcher(overpass.NewClient(clientOpts), c.tileSize(opts.tileSize), c.Logger), store, nil
}

// tileSize returns the tile size to use given an optional flag value.
func (c *CLI) tileSize(flag float64) float64 {
	if flag > 0 {
		return flag
	}
	return c.config.Overpass.TileSize
}
