//go:build mage

package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Convert builds ltmd and converts every .tex file in dir to Markdown beside it.
func Convert(dir string) error {
	mg.Deps(Build)

	inputs, err := filepath.Glob(filepath.Join(dir, "*.tex"))
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		fmt.Printf("[convert] No .tex files in %s\n", dir)
		return nil
	}
	args := append([]string{"convert", "--manifest"}, inputs...)
	return sh.RunV(filepath.Join(binDir, binName), args...)
}
