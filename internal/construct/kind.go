// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package construct

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind identifies one of the recognized LaTeX construct families. The set is
// closed; values are declared in extraction order.
type Kind int

const (
	Reference Kind = iota
	Citation
	Equation
	WrappedFigure
	Figure
	InlineGraphic
	Table

	numKinds = int(Table) + 1
)

var kindNames = [numKinds]string{
	Reference:     "reference",
	Citation:      "citation",
	Equation:      "equation",
	WrappedFigure: "wrapfigure",
	Figure:        "figure",
	InlineGraphic: "inline-graphic",
	Table:         "table",
}

// kindPatterns lists the span matchers for each kind. Table carries two
// patterns (table and table*) that feed the same kind.
var kindPatterns = [numKinds][]*regexp.Regexp{
	Reference:     {refSpanRe},
	Citation:      {citeSpanRe},
	Equation:      {equationSpanRe},
	WrappedFigure: {wrapFigureSpanRe},
	Figure:        {figureSpanRe},
	InlineGraphic: {graphicRe},
	Table:         {tableSpanRe, tableStarSpanRe},
}

// Kinds returns every kind in extraction order: reference, citation,
// equation, wrapped figure, figure, inline graphic, table. Later kinds must
// not see text already consumed by earlier ones.
func Kinds() []Kind {
	kinds := make([]Kind, numKinds)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// String returns the kind's short name.
func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Patterns returns the regexes that locate spans of this kind in working text.
func (k Kind) Patterns() []*regexp.Regexp {
	if !k.valid() {
		return nil
	}
	return kindPatterns[k]
}

// Accepts reports whether span, found by one of k's patterns, is a
// construct of kind k. Only \ref and \cite themselves are references and
// citations; other spans are always accepted.
func (k Kind) Accepts(span string) bool {
	switch k {
	case Reference:
		return strings.HasPrefix(span, refCommand)
	case Citation:
		return strings.HasPrefix(span, citeCommand)
	}
	return k.valid()
}

// ParseKind maps a short name produced by String back to its Kind.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// MarshalText implements encoding.TextMarshaler so kinds serialize by name.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func (k Kind) valid() bool {
	return k >= 0 && int(k) < numKinds
}
