// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jborrow/ltmd/internal/manifest"
	"github.com/jborrow/ltmd/internal/restore"
)

var restoreCmd = &cobra.Command{
	Use:   "restore <converted.md>",
	Short: "Replace tokens in converted text using a saved manifest",
	Long: `Restore reads text produced by running a converter over "ltmd extract"
output and replaces every token with the rendering recorded in the
manifest. Tokens with no manifest entry are left in place and reported.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd)

		manifestPath, _ := cmd.Flags().GetString("manifest")
		man, err := manifest.ReadFile(manifestPath)
		if err != nil {
			return err
		}
		m, err := man.Mapping()
		if err != nil {
			return err
		}

		text, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		out := restore.Restore(string(text), m)
		if orphans := restore.Orphans(out); len(orphans) > 0 {
			logger.Warn("tokens left unrestored", "count", len(orphans), "first", orphans[0].String())
		}

		if path, _ := cmd.Flags().GetString("output"); path != "" {
			if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Restored %d constructs into %s\n", m.Len(), path)
			return nil
		}
		fmt.Fprint(os.Stdout, out)
		return nil
	},
}

func init() {
	restoreCmd.Flags().String("manifest", "", "construct manifest written by extract")
	restoreCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	_ = restoreCmd.MarkFlagRequired("manifest")

	rootCmd.AddCommand(restoreCmd)
}
