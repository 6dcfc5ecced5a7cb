// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package construct

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindsOrder(t *testing.T) {
	assert.Equal(t, []Kind{Reference, Citation, Equation, WrappedFigure, Figure, InlineGraphic, Table}, Kinds())
}

func TestKindNames(t *testing.T) {
	for _, k := range Kinds() {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
		assert.NotEmpty(t, k.Patterns(), "kind %s has a pattern", k)
	}

	_, err := ParseKind("footnote")
	assert.ErrorIs(t, err, ErrUnknownKind)
	assert.Equal(t, "Kind(9)", Kind(9).String())
}

func TestAccepts(t *testing.T) {
	tests := []struct {
		kind Kind
		span string
		want bool
	}{
		{kind: Reference, span: `\ref{a}`, want: true},
		{kind: Reference, span: `\eqref{a}`},
		{kind: Reference, span: `\pageref{a}`},
		{kind: Reference, span: `\autoref{a}`},
		{kind: Citation, span: `\cite{k}`, want: true},
		{kind: Citation, span: `\nocite{k}`},
		{kind: Figure, span: `\begin{figure}\end{figure}`, want: true},
		{kind: Kind(9), span: `\ref{a}`},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String()+" "+tt.span, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.Accepts(tt.span))
		})
	}
}

func TestReferencePatternConsumesLongerCommands(t *testing.T) {
	re := Reference.Patterns()[0]
	assert.Equal(t, []string{`\eqref{e}`, `\ref{a}`}, re.FindAllString(`see \eqref{e} and \ref{a}`, -1))
}

func TestTablePatternsCoverStarredEnvironment(t *testing.T) {
	patterns := Table.Patterns()
	require.Len(t, patterns, 2)
	assert.True(t, patterns[0].MatchString(`\begin{table}x\end{table}`))
	assert.False(t, patterns[0].MatchString(`\begin{table*}x\end{table*}`))
	assert.True(t, patterns[1].MatchString(`\begin{table*}x\end{table*}`))
}

func TestNewTokenUnique(t *testing.T) {
	seen := make(map[Token]bool)
	for i := 0; i < 1000; i++ {
		tok := NewToken()
		require.True(t, tok.Valid(), "token %q", tok)
		require.False(t, seen[tok], "duplicate token %q", tok)
		seen[tok] = true
	}
}

func TestFindTokens(t *testing.T) {
	a, b := NewToken(), NewToken()
	text := "see " + string(a) + " and " + string(b) + "."
	assert.Equal(t, []Token{a, b}, FindTokens(text))
	assert.Nil(t, FindTokens("plain text with ltmd but no hex"))
	assert.Len(t, a.ID(), 32)
}

func TestMapping(t *testing.T) {
	m := NewMapping()
	ref := &Construct{Kind: Reference, Token: NewToken(), Output: "[@a]"}
	fig := &Construct{Kind: Figure, Token: NewToken(), Output: "![](a.png)"}
	ref2 := &Construct{Kind: Reference, Token: NewToken(), Output: "[@b]"}

	require.NoError(t, m.Add(fig))
	require.NoError(t, m.Add(ref))
	require.NoError(t, m.Add(ref2))

	assert.Equal(t, 3, m.Len())
	assert.Equal(t, []*Construct{ref, ref2}, m.Kind(Reference))
	assert.Equal(t, []*Construct{ref, ref2, fig}, m.All(), "All is ordered by kind, then insertion")
	assert.Equal(t, map[Kind]int{Reference: 2, Figure: 1}, m.Counts())

	got, ok := m.Lookup(fig.Token)
	require.True(t, ok)
	assert.Same(t, fig, got)

	err := m.Add(&Construct{Kind: Citation, Token: ref.Token})
	assert.ErrorIs(t, err, ErrDuplicateToken)
	assert.ErrorIs(t, m.Add(&Construct{Kind: Kind(-1), Token: NewToken()}), ErrUnknownKind)

	var zero Mapping
	assert.Zero(t, zero.Len())
	assert.Empty(t, zero.Kind(Table))
}
