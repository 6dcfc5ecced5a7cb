// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package construct

import (
	"regexp"
	"strings"
)

// errorSentinel replaces a reference or citation key that could not be parsed.
const errorSentinel = "ERROR"

var (
	// The span patterns also match longer commands ending in ref or cite
	// (\eqref, \pageref, \autoref, \nocite) so those are consumed whole and
	// then rejected by Kind.Accepts, rather than matched from their tail.
	refSpanRe  = regexp.MustCompile(`(?s)\\[A-Za-z]*ref\{.*?\}`)
	refArgRe   = regexp.MustCompile(`(?s)\\ref\{(.*?)\}`)
	citeSpanRe = regexp.MustCompile(`(?s)\\[A-Za-z]*cite\{.*?\}`)
	citeArgRe  = regexp.MustCompile(`(?s)\\cite\{(.*?)\}`)
)

const (
	refCommand  = `\ref{`
	citeCommand = `\cite{`
)

// renderReference converts \ref{key} to the pandoc-crossref form [@key].
func renderReference(original string) string {
	return "[@" + argumentOr(refArgRe, original, errorSentinel) + "]"
}

// renderCitation converts \cite{key} to @key.
func renderCitation(original string) string {
	return "@" + argumentOr(citeArgRe, original, errorSentinel)
}

func argumentOr(re *regexp.Regexp, s, fallback string) string {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return fallback
	}
	arg := strings.TrimSpace(m[1])
	if arg == "" {
		return fallback
	}
	return arg
}
