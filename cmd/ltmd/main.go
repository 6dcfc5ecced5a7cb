// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the ltmd CLI, which converts LaTeX
// documents to Pandoc Markdown with cross-references, citations, equations,
// figures and tables rendered by hand around a Pandoc run.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the ltmd CLI.
var rootCmd = &cobra.Command{
	Use:   "ltmd",
	Short: "Convert LaTeX to Pandoc Markdown",
	Long: `ltmd converts LaTeX documents to Pandoc Markdown. Constructs that pandoc
handles poorly (\ref, \cite, numbered equations, figures, wrapped figures,
inline graphics and tables) are swapped for placeholder tokens before pandoc
runs, then restored with pandoc-crossref and citeproc friendly Markdown.

Subcommands: convert runs the full pipeline, extract shows the tokenized
document, and restore re-applies a saved construct manifest.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./ltmd.yaml or ~/.config/ltmd/ltmd.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log every extracted construct")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("ltmd")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "ltmd"))
		}
	}

	viper.SetEnvPrefix("LTMD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger returns a text logger on stderr; verbose enables debug records.
func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
