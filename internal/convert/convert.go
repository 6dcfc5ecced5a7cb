// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert runs the LaTeX-to-Markdown pipeline: tokenize the
// constructs Pandoc mishandles, hand the tokenized document to an external
// converter, then restore each token with its hand-rendered Markdown.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jborrow/ltmd/internal/construct"
	"github.com/jborrow/ltmd/internal/manifest"
	"github.com/jborrow/ltmd/internal/restore"
	"github.com/jborrow/ltmd/internal/tokenize"
	"github.com/jborrow/ltmd/pkg/types"
)

// Sentinel errors for pipeline failures.
var (
	ErrEmptyInput  = errors.New("LaTeX input is empty")
	ErrEmptyOutput = errors.New("converter produced empty output")
)

const (
	markdownExt = ".md"
	manifestExt = ".constructs.yaml"
)

// Converter transforms LaTeX text into the target format. Backends (a local
// pandoc binary, pandoc in a container) implement this interface. The same
// converter serves whole documents and isolated table fragments.
type Converter interface {
	Convert(ctx context.Context, latex string) (string, error)
}

// Options configures document conversion.
type Options struct {
	// ImagePrefix is prepended to every extracted image path.
	ImagePrefix string

	// Overwrite replaces existing outputs in ConvertFile; otherwise they are skipped.
	Overwrite bool

	// WriteManifest writes <output>.constructs.yaml beside each output.
	WriteManifest bool

	// Logger receives debug and warning records. Nil discards.
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Document holds every stage of one conversion.
type Document struct {
	// Tokenized is the input with constructs replaced by tokens.
	Tokenized string

	// Converted is the converter output for Tokenized.
	Converted string

	// Markdown is the final text with every token restored.
	Markdown string

	// Constructs maps tokens to their constructs.
	Constructs *construct.Mapping

	// Orphans lists tokens that survived restoration. Non-empty means the
	// converter altered or dropped a token.
	Orphans []construct.Token
}

// ConvertDocument converts LaTeX text to Markdown through c. A converter
// failure, on the document or on any table fragment, fails the document.
func ConvertDocument(ctx context.Context, c Converter, latex string, opts Options) (*Document, error) {
	if strings.TrimSpace(latex) == "" {
		return nil, ErrEmptyInput
	}
	log := opts.logger()

	res, err := tokenize.Extract(ctx, latex, tokenize.Options{
		ImagePrefix: opts.ImagePrefix,
		Tables:      c,
		Logger:      log,
	})
	if err != nil {
		return nil, err
	}

	converted, err := c.Convert(ctx, res.Text)
	if err != nil {
		return nil, fmt.Errorf("converting document: %w", err)
	}
	if strings.TrimSpace(converted) == "" {
		return nil, ErrEmptyOutput
	}

	doc := &Document{
		Tokenized:  res.Text,
		Converted:  converted,
		Constructs: res.Constructs,
	}
	doc.Markdown = restore.Restore(converted, res.Constructs)
	doc.Orphans = restore.Orphans(doc.Markdown)

	if len(doc.Orphans) > 0 {
		log.Warn("tokens left unrestored", "count", len(doc.Orphans), "first", doc.Orphans[0].String())
	}
	log.Debug("document converted", "constructs", res.Constructs.Len(), "bytes_in", len(latex), "bytes_out", len(doc.Markdown))

	return doc, nil
}

// OutputPath returns the Markdown path for input: the same base name with a
// .md extension, inside outDir when set and beside the input otherwise.
func OutputPath(input, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + markdownExt
	if outDir == "" {
		return filepath.Join(filepath.Dir(input), base)
	}
	return filepath.Join(outDir, base)
}

// ManifestPath returns the manifest path written beside a Markdown output.
func ManifestPath(output string) string {
	return strings.TrimSuffix(output, filepath.Ext(output)) + manifestExt
}

// ConvertFile converts the LaTeX file at inPath and writes Markdown to
// outPath, printing one status line to w. An existing output is skipped
// unless opts.Overwrite is set.
func ConvertFile(ctx context.Context, c Converter, inPath, outPath string, opts Options, w io.Writer) types.ConversionStatus {
	name := filepath.Base(inPath)

	if !opts.Overwrite {
		if _, err := os.Stat(outPath); err == nil {
			fmt.Fprintf(w, "skipped: %s (%s already exists)\n", name, outPath)
			return types.ConversionNone
		}
	}

	latex, err := os.ReadFile(inPath)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
		return types.ConversionFailed
	}

	doc, err := ConvertDocument(ctx, c, string(latex), opts)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
		return types.ConversionFailed
	}

	if dir := filepath.Dir(outPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
			return types.ConversionFailed
		}
	}
	if err := os.WriteFile(outPath, []byte(doc.Markdown), 0o644); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
		return types.ConversionFailed
	}

	if opts.WriteManifest {
		if err := manifest.WriteFile(ManifestPath(outPath), manifest.New(inPath, doc.Constructs)); err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
			return types.ConversionFailed
		}
	}

	fmt.Fprintf(w, "converted: %s -> %s (%d constructs)\n", name, outPath, doc.Constructs.Len())
	return types.ConversionDone
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of documents processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any document failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ConvertBatch converts each input in turn, writing outputs into outDir
// (beside each input when empty), and prints a summary to w. Documents are
// independent: one failure does not stop the batch.
func ConvertBatch(ctx context.Context, c Converter, inputs []string, outDir string, opts Options, w io.Writer) BatchResult {
	var result BatchResult
	for _, in := range inputs {
		switch ConvertFile(ctx, c, in, OutputPath(in, outDir), opts, w) {
		case types.ConversionDone:
			result.Converted++
		case types.ConversionNone:
			result.Skipped++
		case types.ConversionFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}
