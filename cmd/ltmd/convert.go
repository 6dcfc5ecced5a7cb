// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jborrow/ltmd/internal/convert"
	"github.com/jborrow/ltmd/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input.tex> [output.md] | convert <inputs.tex...>",
	Short: "Convert LaTeX files to Pandoc Markdown",
	Long: `Convert runs the full pipeline on each LaTeX file: extract constructs,
run pandoc on the tokenized text, and restore each construct as Pandoc
Markdown. With one input and an output.md argument the result goes to that
path; otherwise each input.tex becomes input.md beside it, or inside
--out-dir. Existing outputs are skipped unless --overwrite is set.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, converterFlagKeys, outputFlagKeys)
		if err != nil {
			return err
		}
		logger := newLogger(cmd)

		conv, cleanup, err := buildConverter(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer cleanup()

		opts := convert.Options{
			ImagePrefix:   cfg.Images.Prefix,
			Overwrite:     cfg.Output.Overwrite,
			WriteManifest: cfg.Output.Manifest,
			Logger:        logger,
		}

		if len(args) == 2 && strings.EqualFold(filepath.Ext(args[1]), ".md") {
			status := convert.ConvertFile(cmd.Context(), conv, args[0], args[1], opts, os.Stdout)
			if status == types.ConversionFailed {
				return fmt.Errorf("converting %s failed", args[0])
			}
			return nil
		}

		result := convert.ConvertBatch(cmd.Context(), conv, args, cfg.Output.Dir, opts, os.Stdout)
		if result.HasFailures() {
			return fmt.Errorf("%d of %d documents failed", result.Failed, result.Total())
		}
		return nil
	},
}

func init() {
	addConverterFlags(convertCmd)
	convertCmd.Flags().String("out-dir", "", "directory for Markdown outputs (default: beside each input)")
	convertCmd.Flags().Bool("overwrite", false, "replace existing Markdown outputs")
	convertCmd.Flags().Bool("manifest", false, "write <output>.constructs.yaml listing extracted constructs")

	rootCmd.AddCommand(convertCmd)
}
