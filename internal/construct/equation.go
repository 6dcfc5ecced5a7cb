// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package construct

import (
	"regexp"
	"strings"
)

var (
	equationSpanRe = regexp.MustCompile(`(?s)\\begin\{equation\}.*?\\end\{equation\}`)
	equationBodyRe = regexp.MustCompile(`(?s)\\begin\{equation\}(.*?)\\end\{equation\}`)
)

// renderEquation emits $$body$$ with the label moved out of the body into a
// trailing {#label} anchor. Without a label no anchor is written.
func renderEquation(original, label string) string {
	var body string
	if m := equationBodyRe.FindStringSubmatch(original); m != nil {
		body = m[1]
	}
	body = strings.TrimSpace(labelRe.ReplaceAllString(body, ""))

	out := "$$" + body + "$$"
	if a := anchor(label); a != "" {
		out += " " + a
	}
	return out
}
