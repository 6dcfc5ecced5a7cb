// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/jborrow/ltmd/internal/container"
	"github.com/jborrow/ltmd/pkg/types"
)

// ErrUnknownBackend is returned by NewConverter for an unrecognized backend.
var ErrUnknownBackend = errors.New("unknown converter backend")

// runner abstracts process execution for testing.
type runner interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error
}

type osRunner struct{}

func (osRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osRunner) Run(ctx context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// PandocConverter runs a local pandoc binary, piping LaTeX on stdin and
// reading the target format from stdout.
type PandocConverter struct {
	cfg types.ConverterConfig
	run runner
}

// NewPandocConverter returns a converter for cfg. It fails when the pandoc
// binary is not on PATH.
func NewPandocConverter(cfg types.ConverterConfig) (*PandocConverter, error) {
	return newPandocConverter(cfg, osRunner{})
}

func newPandocConverter(cfg types.ConverterConfig, r runner) (*PandocConverter, error) {
	cfg = cfg.WithDefaults()
	if _, err := r.LookPath(cfg.Binary); err != nil {
		return nil, fmt.Errorf("pandoc binary %q not found: %w", cfg.Binary, err)
	}
	return &PandocConverter{cfg: cfg, run: r}, nil
}

// Convert runs pandoc over latex.
func (p *PandocConverter) Convert(ctx context.Context, latex string) (string, error) {
	var stdout, stderr bytes.Buffer
	err := p.run.Run(ctx, p.cfg.Binary, p.cfg.Args(), strings.NewReader(latex), &stdout, &stderr)
	if err != nil {
		return "", fmt.Errorf("running %s: %w%s", p.cfg.Binary, err, detail(stderr.String()))
	}
	return stdout.String(), nil
}

// Version returns the first line of "pandoc --version", e.g. "pandoc 3.1.11".
func (p *PandocConverter) Version(ctx context.Context) (string, error) {
	var stdout, stderr bytes.Buffer
	if err := p.run.Run(ctx, p.cfg.Binary, []string{"--version"}, strings.NewReader(""), &stdout, &stderr); err != nil {
		return "", fmt.Errorf("running %s --version: %w%s", p.cfg.Binary, err, detail(stderr.String()))
	}
	first, _, _ := strings.Cut(stdout.String(), "\n")
	return strings.TrimSpace(first), nil
}

// Identity describes the converter invocation for cache keys.
func (p *PandocConverter) Identity() string {
	return types.BackendPandoc.String() + " " + p.cfg.Binary + " " + strings.Join(p.cfg.Args(), " ")
}

// ContainerConverter runs pandoc inside a container image.
type ContainerConverter struct {
	cfg types.ConverterConfig
	rt  container.Runtime
}

// NewContainerConverter returns a converter that runs cfg.Image through rt.
// It fails when the image is not present locally.
func NewContainerConverter(ctx context.Context, cfg types.ConverterConfig, rt container.Runtime) (*ContainerConverter, error) {
	cfg = cfg.WithDefaults()
	if err := rt.ImageExists(ctx, cfg.Image); err != nil {
		return nil, fmt.Errorf("container backend: %w (pull it with: %s pull %s)", err, rt.Name(), cfg.Image)
	}
	return &ContainerConverter{cfg: cfg, rt: rt}, nil
}

// Convert runs the container over latex.
func (c *ContainerConverter) Convert(ctx context.Context, latex string) (string, error) {
	var stdout, stderr bytes.Buffer
	err := c.rt.Run(ctx, container.RunSpec{
		Image:  c.cfg.Image,
		Args:   c.cfg.Args(),
		Stdin:  strings.NewReader(latex),
		Stdout: &stdout,
		Stderr: &stderr,
	})
	if err != nil {
		return "", fmt.Errorf("%w%s", err, detail(stderr.String()))
	}
	return stdout.String(), nil
}

// Identity describes the converter invocation for cache keys.
func (c *ContainerConverter) Identity() string {
	return types.BackendContainer.String() + " " + c.cfg.Image + " " + strings.Join(c.cfg.Args(), " ")
}

// NewConverter builds the converter selected by cfg.Backend.
func NewConverter(ctx context.Context, cfg types.ConverterConfig) (Converter, error) {
	cfg = cfg.WithDefaults()
	switch cfg.Backend {
	case types.BackendPandoc:
		return NewPandocConverter(cfg)
	case types.BackendContainer:
		rt, err := container.Detect(ctx, cfg.Runtime)
		if err != nil {
			return nil, err
		}
		return NewContainerConverter(ctx, cfg, rt)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

func detail(stderr string) string {
	stderr = strings.TrimSpace(stderr)
	if stderr == "" {
		return ""
	}
	return ": " + stderr
}
