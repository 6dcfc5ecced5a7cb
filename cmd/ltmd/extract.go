// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jborrow/ltmd/internal/construct"
	"github.com/jborrow/ltmd/internal/manifest"
	"github.com/jborrow/ltmd/internal/tokenize"
)

var extractCmd = &cobra.Command{
	Use:   "extract <input.tex>",
	Short: "Print the tokenized LaTeX and a summary of extracted constructs",
	Long: `Extract replaces every recognised construct with its token and prints the
tokenized text to stdout, without converting the document itself. Table
bodies still pass through the configured converter. With --manifest the
constructs are saved as YAML for a later "ltmd restore".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, converterFlagKeys)
		if err != nil {
			return err
		}
		logger := newLogger(cmd)

		latex, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		conv, cleanup, err := buildConverter(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer cleanup()

		res, err := tokenize.Extract(cmd.Context(), string(latex), tokenize.Options{
			ImagePrefix: cfg.Images.Prefix,
			Tables:      conv,
			Logger:      logger,
		})
		if err != nil {
			return err
		}

		fmt.Fprint(os.Stdout, res.Text)

		counts := res.Constructs.Counts()
		for _, k := range construct.Kinds() {
			fmt.Fprintf(os.Stderr, "%-15s %d\n", k.String()+":", counts[k])
		}

		if path, _ := cmd.Flags().GetString("manifest"); path != "" {
			if err := manifest.WriteFile(path, manifest.New(args[0], res.Constructs)); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Manifest written to %s\n", path)
		}
		return nil
	},
}

func init() {
	addConverterFlags(extractCmd)
	extractCmd.Flags().String("manifest", "", "write the extracted constructs to this YAML file")

	rootCmd.AddCommand(extractCmd)
}
