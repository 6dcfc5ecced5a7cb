// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package construct

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	figureSpanRe     = regexp.MustCompile(`(?s)\\begin\{figure\}.*?\\end\{figure\}`)
	wrapFigureSpanRe = regexp.MustCompile(`(?s)\\begin\{wrapfigure\}.*?\\end\{wrapfigure\}`)
)

// renderFigure emits a single Pandoc image, or a div holding one image per
// path when the figure wraps several graphics. Sub-images are anchored
// label0, label1, ... and split the page width evenly; the caption appears
// once, after the images.
func renderFigure(images []string, caption, label string) string {
	switch len(images) {
	case 0:
		return fmt.Sprintf("![%s]()%s", caption, anchor(label))
	case 1:
		return fmt.Sprintf("![%s](%s)%s", caption, images[0], anchor(label))
	}

	width := percent(len(images))
	var b strings.Builder
	if label != "" {
		fmt.Fprintf(&b, "<div id=\"%s\">\n", label)
	} else {
		b.WriteString("<div>\n")
	}
	for i, img := range images {
		if label != "" {
			fmt.Fprintf(&b, "![](%s){#%s%d width=%s%%}\n", img, label, i, width)
		} else {
			fmt.Fprintf(&b, "![](%s){width=%s%%}\n", img, width)
		}
	}
	if caption != "" {
		b.WriteString("\n" + caption + "\n")
	}
	b.WriteString("</div>")
	return b.String()
}

// percent returns 100/n rounded to two decimals, without trailing zeros.
func percent(n int) string {
	w := math.Round(100/float64(n)*100) / 100
	return strconv.FormatFloat(w, 'f', -1, 64)
}
