// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package construct

import (
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// tokenPrefix starts every placeholder. Tokens are purely alphanumeric so
// Pandoc passes them through its LaTeX reader and Markdown writer untouched.
const tokenPrefix = "ltmd"

// tokenRe matches any token this package can generate.
var tokenRe = regexp.MustCompile(tokenPrefix + `[0-9a-f]{32}`)

// Token is an opaque placeholder substituted for a construct's original text.
type Token string

// TokenSource produces a fresh Token on every call.
type TokenSource func() Token

// NewToken returns a token built from a random (v4) UUID.
func NewToken() Token {
	u := uuid.New()
	return Token(tokenPrefix + hex.EncodeToString(u[:]))
}

// ID returns the token without its prefix. Labels synthesized from the ID
// never match FindTokens, so they cannot be mistaken for unrestored tokens.
func (t Token) ID() string {
	return strings.TrimPrefix(string(t), tokenPrefix)
}

// String implements fmt.Stringer.
func (t Token) String() string { return string(t) }

// Valid reports whether t has the shape of a generated token.
func (t Token) Valid() bool {
	return len(t) == len(tokenPrefix)+32 && tokenRe.MatchString(string(t))
}

// FindTokens returns every token occurrence in text, in order of appearance.
func FindTokens(text string) []Token {
	matches := tokenRe.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}
	tokens := make([]Token, len(matches))
	for i, m := range matches {
		tokens[i] = Token(m)
	}
	return tokens
}
