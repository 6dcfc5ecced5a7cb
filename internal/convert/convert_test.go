// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jborrow/ltmd/internal/manifest"
	"github.com/jborrow/ltmd/pkg/types"
)

// fakeConverter implements Converter for testing. By default it echoes its
// input, which is how a well-behaved converter treats tokens. Tabular
// fragments are answered with tableOutput.
type fakeConverter struct {
	tableOutput string
	output      string
	err         error
	calls       []string
}

func (f *fakeConverter) Convert(_ context.Context, latex string) (string, error) {
	f.calls = append(f.calls, latex)
	if f.err != nil {
		return "", f.err
	}
	if strings.HasPrefix(latex, `\begin{tabular}`) {
		return f.tableOutput, nil
	}
	if f.output != "" {
		return f.output, nil
	}
	return latex, nil
}

const sampleLaTeX = `Results in Figure \ref{fig:a} follow \cite{knuth}.

\begin{figure}
\includegraphics{a.png}
\caption{Accuracy}\label{fig:a}
\end{figure}

\begin{table}
\begin{tabular}{ll}
a & b \\
\end{tabular}
\caption{Scores}\label{tbl:s}
\end{table}
`

func writeLaTeX(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConvertDocument(t *testing.T) {
	conv := &fakeConverter{tableOutput: "  | a | b |\n"}

	doc, err := ConvertDocument(context.Background(), conv, sampleLaTeX, Options{ImagePrefix: "img/"})
	require.NoError(t, err)

	assert.Contains(t, doc.Markdown, "Results in Figure [@fig:a] follow @knuth.")
	assert.Contains(t, doc.Markdown, "![Accuracy](img/a.png){#fig:a}")
	assert.Contains(t, doc.Markdown, "| a | b |\n: Scores {#tbl:s}")
	assert.NotContains(t, doc.Markdown, `\begin`)
	assert.Empty(t, doc.Orphans)
	assert.Equal(t, 4, doc.Constructs.Len())
	assert.NotContains(t, doc.Tokenized, `\ref`)
	assert.Equal(t, doc.Tokenized, doc.Converted)

	// One call for the table fragment, one for the document.
	require.Len(t, conv.calls, 2)
	assert.True(t, strings.HasPrefix(conv.calls[0], `\begin{tabular}`))
	assert.Equal(t, doc.Tokenized, conv.calls[1])
}

func TestConvertDocumentErrors(t *testing.T) {
	boom := errors.New("pandoc exited 64")

	tests := []struct {
		name    string
		latex   string
		conv    *fakeConverter
		wantErr error
	}{
		{name: "blank input", latex: " \n\t", conv: &fakeConverter{}, wantErr: ErrEmptyInput},
		{name: "blank output", latex: "hello", conv: &fakeConverter{output: "\n\n"}, wantErr: ErrEmptyOutput},
		{name: "converter failure", latex: "hello", conv: &fakeConverter{err: boom}, wantErr: boom},
		{name: "table fragment failure", latex: sampleLaTeX, conv: &fakeConverter{err: boom}, wantErr: boom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ConvertDocument(context.Background(), tt.conv, tt.latex, Options{})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConvertDocumentReportsOrphans(t *testing.T) {
	var logs bytes.Buffer
	stray := "ltmd" + strings.Repeat("0", 32)
	conv := &fakeConverter{output: "text " + stray}

	doc, err := ConvertDocument(context.Background(), conv, "text", Options{
		Logger: slog.New(slog.NewTextHandler(&logs, nil)),
	})
	require.NoError(t, err)

	require.Len(t, doc.Orphans, 1)
	assert.Equal(t, stray, doc.Orphans[0].String())
	assert.Contains(t, doc.Markdown, stray)
	assert.Contains(t, logs.String(), "tokens left unrestored")
}

func TestConvertFile(t *testing.T) {
	tests := []struct {
		name       string
		conv       *fakeConverter
		preCreate  bool
		overwrite  bool
		wantStatus types.ConversionStatus
		wantLog    string
	}{
		{
			name:       "successful conversion",
			conv:       &fakeConverter{tableOutput: "| a |"},
			wantStatus: types.ConversionDone,
			wantLog:    "converted:",
		},
		{
			name:       "skip existing markdown",
			conv:       &fakeConverter{err: errors.New("should not be called")},
			preCreate:  true,
			wantStatus: types.ConversionNone,
			wantLog:    "skipped:",
		},
		{
			name:       "overwrite existing markdown",
			conv:       &fakeConverter{tableOutput: "| a |"},
			preCreate:  true,
			overwrite:  true,
			wantStatus: types.ConversionDone,
			wantLog:    "converted:",
		},
		{
			name:       "conversion failure",
			conv:       &fakeConverter{err: errors.New("pandoc crashed")},
			wantStatus: types.ConversionFailed,
			wantLog:    "pandoc crashed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			in := writeLaTeX(t, dir, "paper.tex", sampleLaTeX)
			out := filepath.Join(dir, "md", "paper.md")
			if tt.preCreate {
				require.NoError(t, os.MkdirAll(filepath.Dir(out), 0o755))
				require.NoError(t, os.WriteFile(out, []byte("old"), 0o644))
			}

			var buf bytes.Buffer
			status := ConvertFile(context.Background(), tt.conv, in, out, Options{Overwrite: tt.overwrite}, &buf)

			assert.Equal(t, tt.wantStatus, status)
			assert.Contains(t, buf.String(), tt.wantLog)

			if tt.wantStatus == types.ConversionDone {
				got, err := os.ReadFile(out)
				require.NoError(t, err)
				assert.Contains(t, string(got), "[@fig:a]")
			}
		})
	}
}

func TestConvertFileWritesManifest(t *testing.T) {
	dir := t.TempDir()
	in := writeLaTeX(t, dir, "paper.tex", sampleLaTeX)
	out := filepath.Join(dir, "paper.md")

	var buf bytes.Buffer
	status := ConvertFile(context.Background(), &fakeConverter{tableOutput: "| a |"}, in, out, Options{WriteManifest: true}, &buf)
	require.Equal(t, types.ConversionDone, status, buf.String())

	m, err := manifest.ReadFile(filepath.Join(dir, "paper.constructs.yaml"))
	require.NoError(t, err)
	assert.Equal(t, in, m.Source)
	assert.Len(t, m.Constructs, 4)
}

func TestConvertFileMissingInput(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer

	status := ConvertFile(context.Background(), &fakeConverter{}, filepath.Join(dir, "none.tex"), filepath.Join(dir, "none.md"), Options{}, &buf)

	assert.Equal(t, types.ConversionFailed, status)
	assert.Contains(t, buf.String(), "failed:")
}

func TestConvertBatch(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	a := writeLaTeX(t, dir, "a.tex", "Alpha \\ref{x}.")
	b := writeLaTeX(t, dir, "b.tex", "Beta.")
	empty := writeLaTeX(t, dir, "c.tex", "   ")

	require.NoError(t, os.MkdirAll(outDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "b.md"), []byte("done"), 0o644))

	var buf bytes.Buffer
	result := ConvertBatch(context.Background(), &fakeConverter{}, []string{a, b, empty}, outDir, Options{}, &buf)

	assert.Equal(t, BatchResult{Converted: 1, Skipped: 1, Failed: 1}, result)
	assert.Equal(t, 3, result.Total())
	assert.True(t, result.HasFailures())
	assert.Contains(t, buf.String(), "Batch summary: 1 converted, 1 skipped, 1 failed (total: 3)")

	got, err := os.ReadFile(filepath.Join(outDir, "a.md"))
	require.NoError(t, err)
	assert.Equal(t, "Alpha [@x].", string(got))
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input  string
		outDir string
		want   string
	}{
		{input: "papers/main.tex", want: filepath.Join("papers", "main.md")},
		{input: "papers/main.tex", outDir: "build", want: filepath.Join("build", "main.md")},
		{input: "notes", outDir: "build", want: filepath.Join("build", "notes.md")},
		{input: "a.b.tex", want: "a.b.md"},
	}

	for _, tt := range tests {
		t.Run(tt.input+"|"+tt.outDir, func(t *testing.T) {
			assert.Equal(t, tt.want, OutputPath(tt.input, tt.outDir))
		})
	}
}

func TestManifestPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "paper.constructs.yaml"), ManifestPath(filepath.Join("out", "paper.md")))
}
