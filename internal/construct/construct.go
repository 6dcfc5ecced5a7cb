// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package construct models the LaTeX spans that Pandoc mishandles when
// reading LaTeX: cross-references, citations, display equations, figures,
// wrapped figures, inline graphics and tables. Each Construct captures its
// original text and renders a Pandoc Markdown replacement once, at creation.
//
// Missing pieces inside a matched span (no label, no caption, empty \ref)
// never produce errors. They degrade to empty fields or the ERROR sentinel
// so one malformed construct cannot block the rest of a document.
package construct

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for construct operations.
var (
	ErrUnknownKind    = errors.New("unknown construct kind")
	ErrNoConverter    = errors.New("no converter configured for table fragments")
	ErrDuplicateToken = errors.New("token already present in mapping")
)

// Converter turns a LaTeX fragment into target-format text. It has the same
// shape as the document converter so either can serve table fragments.
type Converter interface {
	Convert(ctx context.Context, latex string) (string, error)
}

// Options carries the per-document settings transformers depend on.
type Options struct {
	// ImagePrefix is prepended verbatim to every image path.
	ImagePrefix string

	// Tables converts isolated tabular fragments. Required only when the
	// document contains a table.
	Tables Converter
}

// Construct is one recognized span. Label and Caption are empty when the
// span has none.
type Construct struct {
	Kind     Kind   `yaml:"kind"`
	Token    Token  `yaml:"token"`
	Original string `yaml:"original"`
	Label    string `yaml:"label,omitempty"`
	Caption  string `yaml:"caption,omitempty"`

	// Images holds includegraphics paths in source order, prefix applied.
	Images []string `yaml:"images,omitempty"`

	// Tabular is the isolated tabular environment of a table.
	Tabular string `yaml:"tabular,omitempty"`

	// Output is the rendered replacement for Token.
	Output string `yaml:"output"`
}

// New parses original as a construct of the given kind and renders its
// output. The only error source is the table fragment conversion.
func New(ctx context.Context, kind Kind, original string, tok Token, opts Options) (*Construct, error) {
	c := &Construct{Kind: kind, Token: tok, Original: original}

	switch kind {
	case Reference:
		c.Output = renderReference(original)
	case Citation:
		c.Output = renderCitation(original)
	case Equation:
		c.Label = findLabel(original)
		c.Output = renderEquation(original, c.Label)
	case Figure, WrappedFigure:
		c.Label = findLabel(original)
		c.Caption = findCaption(original)
		c.Images = findImages(original, opts.ImagePrefix)
		c.Output = renderFigure(c.Images, c.Caption, c.Label)
	case InlineGraphic:
		c.Images = findImages(original, opts.ImagePrefix)
		c.Output = renderFigure(c.Images, "", "")
	case Table:
		c.Label = findLabel(original)
		c.Caption = findCaption(original)
		c.Tabular = findTabular(original)
		out, err := renderTable(ctx, opts.Tables, c.Tabular, c.Caption, tableLabel(c.Label, tok))
		if err != nil {
			return nil, fmt.Errorf("rendering table %s: %w", tok, err)
		}
		c.Output = out
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}

	return c, nil
}
