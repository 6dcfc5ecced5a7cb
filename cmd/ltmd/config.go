// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jborrow/ltmd/internal/cache"
	"github.com/jborrow/ltmd/internal/convert"
	"github.com/jborrow/ltmd/pkg/types"
)

// converterFlagKeys maps the flags added by addConverterFlags to their
// viper configuration keys.
var converterFlagKeys = map[string]string{
	"backend":      "converter.backend",
	"pandoc":       "converter.binary",
	"image":        "converter.image",
	"runtime":      "converter.runtime",
	"to":           "converter.to",
	"pandoc-arg":   "converter.extra_args",
	"image-prefix": "images.prefix",
	"cache":        "cache.path",
}

// outputFlagKeys maps the convert command's output flags to viper keys.
var outputFlagKeys = map[string]string{
	"out-dir":   "output.dir",
	"overwrite": "output.overwrite",
	"manifest":  "output.manifest",
}

// addConverterFlags registers the flags shared by commands that run pandoc.
func addConverterFlags(cmd *cobra.Command) {
	cmd.Flags().String("backend", string(types.BackendPandoc), "converter backend: pandoc or container")
	cmd.Flags().String("pandoc", types.DefaultPandocBinary, "pandoc binary for the pandoc backend")
	cmd.Flags().String("image", types.DefaultPandocImage, "container image for the container backend")
	cmd.Flags().String("runtime", "", "container runtime: docker or podman (default: first available)")
	cmd.Flags().String("to", types.DefaultToFormat, "pandoc output format")
	cmd.Flags().StringArray("pandoc-arg", nil, "extra argument passed to pandoc (repeatable)")
	cmd.Flags().String("image-prefix", "", "prefix prepended to every image path")
	cmd.Flags().String("cache", "", "SQLite file caching converter output (empty disables)")
}

// bindFlags binds the command's flags to viper so that explicitly set flags
// override config file and environment values. Binding happens per run
// because several commands share flag names.
func bindFlags(cmd *cobra.Command, keys ...map[string]string) error {
	for _, m := range keys {
		for name, key := range m {
			f := cmd.Flags().Lookup(name)
			if f == nil {
				continue
			}
			if err := viper.BindPFlag(key, f); err != nil {
				return fmt.Errorf("binding flag %s: %w", name, err)
			}
		}
	}
	return nil
}

// loadConfig resolves the run configuration from flags, environment and
// config file.
func loadConfig(cmd *cobra.Command, keys ...map[string]string) (types.Config, error) {
	if err := bindFlags(cmd, keys...); err != nil {
		return types.Config{}, err
	}
	cfg := types.Config{
		Converter: types.ConverterConfig{
			Backend:   types.ConverterBackend(viper.GetString("converter.backend")),
			Binary:    viper.GetString("converter.binary"),
			Image:     viper.GetString("converter.image"),
			Runtime:   viper.GetString("converter.runtime"),
			From:      viper.GetString("converter.from"),
			To:        viper.GetString("converter.to"),
			ExtraArgs: viper.GetStringSlice("converter.extra_args"),
		},
		Images: types.ImageConfig{Prefix: viper.GetString("images.prefix")},
		Cache:  types.CacheConfig{Path: viper.GetString("cache.path")},
		Output: types.OutputConfig{
			Dir:       viper.GetString("output.dir"),
			Overwrite: viper.GetBool("output.overwrite"),
			Manifest:  viper.GetBool("output.manifest"),
		},
	}
	cfg.Converter = cfg.Converter.WithDefaults()
	return cfg, nil
}

// identifier is implemented by converters that can describe their
// invocation for cache keys.
type identifier interface {
	Identity() string
}

// buildConverter constructs the configured backend, wrapped in a SQLite
// cache when one is configured. The returned cleanup closes the cache.
func buildConverter(ctx context.Context, cfg types.Config, logger *slog.Logger) (convert.Converter, func(), error) {
	conv, err := convert.NewConverter(ctx, cfg.Converter)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Cache.Path == "" {
		return conv, func() {}, nil
	}

	store, err := cache.Open(cfg.Cache.Path)
	if err != nil {
		return nil, nil, err
	}
	identity := string(cfg.Converter.Backend)
	if id, ok := conv.(identifier); ok {
		identity = id.Identity()
	}
	logger.Debug("using converter cache", "path", cfg.Cache.Path)

	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing cache", "error", err)
		}
	}
	return convert.NewCachingConverter(conv, store, identity, logger), cleanup, nil
}
