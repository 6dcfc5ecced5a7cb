// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package restore substitutes rendered constructs back into converted text.
package restore

import (
	"slices"
	"strings"

	"github.com/jborrow/ltmd/internal/construct"
)

// Restore replaces every token in text with its construct's output.
//
// Kinds are applied in reverse extraction order. A construct can only embed
// tokens of kinds extracted before it (a figure caption holding a reference
// token), so expanding outer kinds first leaves the inner tokens in place for
// their own, later substitution.
func Restore(text string, m *construct.Mapping) string {
	kinds := construct.Kinds()
	slices.Reverse(kinds)

	for _, kind := range kinds {
		for _, c := range m.Kind(kind) {
			text = strings.ReplaceAll(text, string(c.Token), c.Output)
		}
	}
	return text
}

// Orphans returns the tokens still present in text, in order of appearance.
// After Restore this is empty unless the converter altered or dropped a token
// or the text carries tokens from another document.
func Orphans(text string) []construct.Token {
	return construct.FindTokens(text)
}
