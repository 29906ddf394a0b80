package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/roadgraph/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the Overpass response cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheDir returns the file cache directory from the config, or the default.
func (c *CLI) cacheDir() (string, error) {
	if c.config.Cache.Dir != "" {
		return c.config.Cache.Dir, nil
	}
	return cache.DefaultDir()
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached Overpass responses",
		RunE: func(cmd *cobra.Command, args []string) error {
			if backend := c.config.Cache.Backend; backend != cache.BackendFile && backend != "" {
				printWarning("Cache backend is %q; only the file cache can be cleared here", backend)
				return nil
			}

			dir, err := c.cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			count, err := fc.Clear()
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			if count == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Cleared %d cached responses", count)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
