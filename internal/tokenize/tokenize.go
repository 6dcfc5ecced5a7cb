// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tokenize replaces recognized LaTeX constructs with opaque tokens
// before a document is handed to the external converter.
//
// Extraction runs one pass per construct kind, in the fixed order given by
// construct.Kinds. Each pass scans the current working text and swaps every
// match for its token before the next pass starts, so later kinds never see
// spans already consumed (a \ref inside a figure caption is tokenized before
// the figure is matched).
package tokenize

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jborrow/ltmd/internal/construct"
)

// Options configures one extraction run.
type Options struct {
	// ImagePrefix is prepended to every extracted image path.
	ImagePrefix string

	// Tables converts isolated tabular fragments for table constructs.
	Tables construct.Converter

	// Logger receives one debug line per extracted construct. Nil discards.
	Logger *slog.Logger

	// NewToken overrides the token source. Nil uses construct.NewToken.
	NewToken construct.TokenSource
}

// Result is the output of Extract.
type Result struct {
	// Text is the input with every construct span replaced by its token.
	Text string

	// Constructs maps every token in Text to its construct.
	Constructs *construct.Mapping
}

// Extract tokenizes text. Zero matches for a kind is not an error. The only
// failure is a table fragment conversion error, which aborts the document.
func Extract(ctx context.Context, text string, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	newToken := opts.NewToken
	if newToken == nil {
		newToken = construct.NewToken
	}
	copts := construct.Options{ImagePrefix: opts.ImagePrefix, Tables: opts.Tables}

	mapping := construct.NewMapping()
	working := text

	for _, kind := range construct.Kinds() {
		for _, re := range kind.Patterns() {
			var passErr error
			working = re.ReplaceAllStringFunc(working, func(span string) string {
				if passErr != nil || !kind.Accepts(span) {
					return span
				}
				c, err := construct.New(ctx, kind, span, newToken(), copts)
				if err == nil {
					err = mapping.Add(c)
				}
				if err != nil {
					passErr = err
					return span
				}
				logger.Debug("found construct", "kind", kind.String(), "token", c.Token.String(), "original", span)
				return string(c.Token)
			})
			if passErr != nil {
				return nil, fmt.Errorf("extracting %s: %w", kind, passErr)
			}
		}
	}

	return &Result{Text: working, Constructs: mapping}, nil
}
