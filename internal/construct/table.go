// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package construct

import (
	"context"
	"regexp"
	"strings"
)

// synthesizedTablePrefix starts labels generated for unlabelled tables.
const synthesizedTablePrefix = "tbl:"

var (
	tableSpanRe     = regexp.MustCompile(`(?s)\\begin\{table\}.*?\\end\{table\}`)
	tableStarSpanRe = regexp.MustCompile(`(?s)\\begin\{table\*\}.*?\\end\{table\*\}`)
	tabularRe       = regexp.MustCompile(`(?s)\\begin\{tabular\}.*?\\end\{tabular\}`)
)

// findTabular isolates the tabular environment inside a table span.
func findTabular(s string) string {
	return tabularRe.FindString(s)
}

// tableLabel returns label, or one derived from the token so that every
// table stays addressable and distinct from its siblings.
func tableLabel(label string, tok Token) string {
	if label != "" {
		return label
	}
	return synthesizedTablePrefix + tok.ID()
}

// renderTable converts the tabular fragment on its own and appends the
// Pandoc table caption line ": caption {#label}".
func renderTable(ctx context.Context, conv Converter, tabular, caption, label string) (string, error) {
	var body string
	if tabular != "" {
		if conv == nil {
			return "", ErrNoConverter
		}
		out, err := conv.Convert(ctx, tabular)
		if err != nil {
			return "", err
		}
		body = strings.TrimSpace(out)
	}

	captionLine := ": " + strings.TrimSpace(caption+" "+anchor(label))
	if body == "" {
		return captionLine, nil
	}
	return body + "\n" + captionLine, nil
}
