// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jborrow/ltmd/internal/convert"
	"github.com/jborrow/ltmd/pkg/types"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of ltmd and of the pandoc it would run",
	Run: func(cmd *cobra.Command, args []string) {
		bin, _ := cmd.Flags().GetString("pandoc")
		printVersion(cmd.Context(), bin, os.Stdout)
	},
}

func init() {
	versionCmd.Flags().String("pandoc", types.DefaultPandocBinary, "pandoc binary to report")

	rootCmd.AddCommand(versionCmd)
}

// printVersion reports pandoc problems in the output rather than as errors
// so the ltmd version is always shown.
func printVersion(ctx context.Context, bin string, w io.Writer) {
	fmt.Fprintf(w, "ltmd %s\n", version)

	p, err := convert.NewPandocConverter(types.ConverterConfig{Binary: bin})
	if err != nil {
		fmt.Fprintf(w, "pandoc: not found (%s)\n", bin)
		return
	}
	v, err := p.Version(ctx)
	if err != nil {
		fmt.Fprintf(w, "pandoc: %v\n", err)
		return
	}
	fmt.Fprintf(w, "pandoc: %s\n", v)
}
