// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package construct

import (
	"regexp"
	"strings"
)

var (
	labelRe = regexp.MustCompile(`(?s)\\label\{(.*?)\}`)

	// captionRe ends a caption at the first closing brace followed by a
	// \label, a newline or the end of the environment body. Captions that
	// wrap lines without a trailing \label are cut short; nested braces on
	// one line are kept.
	captionRe = regexp.MustCompile(`(?s)\\caption(?:\[[^\]]*\])?\{(.*?)\}[ \t]*(?:\\label|\n|$)`)

	// closingTagRe matches the \end{env} that closes a figure or table span.
	closingTagRe = regexp.MustCompile(`\\end\{[^}]*\}\s*$`)

	// graphicRe matches \includegraphics[opts]{path} and captures the path.
	graphicRe = regexp.MustCompile(`\\includegraphics\s*(?:\[[^\]]*\])?\s*\{([^}]*)\}`)
)

// findLabel returns the argument of the first \label in s, or "".
func findLabel(s string) string {
	m := labelRe.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// findCaption returns the caption text in s, or "". The closing tag of the
// span is dropped first so a caption written just before it ends there.
func findCaption(s string) string {
	m := captionRe.FindStringSubmatch(closingTagRe.ReplaceAllString(s, ""))
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// findImages returns every includegraphics path in s with prefix prepended.
func findImages(s, prefix string) []string {
	matches := graphicRe.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return nil
	}
	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		paths = append(paths, prefix+strings.TrimSpace(m[1]))
	}
	return paths
}

// anchor formats a Pandoc attribute block, or returns "" for an empty label.
func anchor(label string) string {
	if label == "" {
		return ""
	}
	return "{#" + label + "}"
}
