// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jborrow/ltmd/internal/cache"
)

// errNoCachePath is returned when a cache command has no database to act on.
var errNoCachePath = errors.New("no cache configured: pass --cache or set cache.path")

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or empty the converter result cache",
	Long: `Cache manages the SQLite database that stores converter output between
runs (see the --cache flag of convert). The database is chosen with --cache,
LTMD_CACHE_PATH or cache.path in ltmd.yaml.`,
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the number of cached conversions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := cachePath(cmd)
		if err != nil {
			return err
		}
		return cacheStats(cmd.Context(), path, os.Stdout)
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every cached conversion",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := cachePath(cmd)
		if err != nil {
			return err
		}
		return cacheClear(cmd.Context(), path, os.Stdout)
	},
}

func init() {
	cacheCmd.PersistentFlags().String("cache", "", "SQLite cache file")
	cacheCmd.AddCommand(cacheStatsCmd, cacheClearCmd)

	rootCmd.AddCommand(cacheCmd)
}

func cachePath(cmd *cobra.Command) (string, error) {
	if err := bindFlags(cmd, map[string]string{"cache": "cache.path"}); err != nil {
		return "", err
	}
	path := viper.GetString("cache.path")
	if path == "" {
		return "", errNoCachePath
	}
	return path, nil
}

func cacheStats(ctx context.Context, path string, w io.Writer) error {
	store, err := cache.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Len(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s: %d cached conversions\n", path, n)
	return nil
}

func cacheClear(ctx context.Context, path string, w io.Writer) error {
	store, err := cache.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Len(ctx)
	if err != nil {
		return err
	}
	if err := store.Clear(ctx); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s: removed %d cached conversions\n", path, n)
	return nil
}
