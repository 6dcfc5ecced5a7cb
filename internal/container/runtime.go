// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package container runs one-shot filter containers through docker or
// podman: LaTeX goes in on stdin and the converted text comes back on
// stdout, as with the pandoc/core image.
package container

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// ErrNoRuntime is returned by Detect when no usable runtime is found.
var ErrNoRuntime = errors.New("no container runtime available")

// Command is one process invocation.
type Command struct {
	Name   string
	Args   []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// String returns the command line, for error messages.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// executor abstracts process execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Exec(ctx context.Context, cmd Command) error
}

type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osExecutor) Exec(ctx context.Context, c Command) error {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	return cmd.Run()
}

// RunSpec describes a filter container run.
type RunSpec struct {
	Image string

	// Args follow the image on the command line and reach its entrypoint.
	Args []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Runtime is a container engine able to run filter containers.
type Runtime interface {
	// Name returns the engine binary, "docker" or "podman".
	Name() string

	// ImageExists returns nil when image is present locally.
	ImageExists(ctx context.Context, image string) error

	// Run starts spec.Image with networking disabled, removes the container
	// on exit, and streams stdin and stdout through it.
	Run(ctx context.Context, spec RunSpec) error
}

// engine describes how one container binary is driven. Docker and Podman
// share the run syntax and differ in the image check subcommand.
type engine struct {
	bin        string
	imageCheck []string
}

var engines = []engine{
	{bin: "docker", imageCheck: []string{"image", "inspect"}},
	{bin: "podman", imageCheck: []string{"image", "exists"}},
}

type runtime struct {
	engine
	exec executor
}

func (r *runtime) Name() string { return r.bin }

// available reports whether the binary is on PATH and its daemon or
// service answers an info request.
func (r *runtime) available(ctx context.Context) bool {
	if _, err := r.exec.LookPath(r.bin); err != nil {
		return false
	}
	return r.exec.Exec(ctx, Command{Name: r.bin, Args: []string{"info"}}) == nil
}

func (r *runtime) ImageExists(ctx context.Context, image string) error {
	args := append(append([]string{}, r.imageCheck...), image)
	if err := r.exec.Exec(ctx, Command{Name: r.bin, Args: args}); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", image, r.bin, err)
	}
	return nil
}

func (r *runtime) Run(ctx context.Context, spec RunSpec) error {
	args := make([]string, 0, len(spec.Args)+6)
	args = append(args, "run", "--rm", "-i", "--network", "none", spec.Image)
	args = append(args, spec.Args...)

	cmd := Command{Name: r.bin, Args: args, Stdin: spec.Stdin, Stdout: spec.Stdout, Stderr: spec.Stderr}
	if err := r.exec.Exec(ctx, cmd); err != nil {
		return fmt.Errorf("running %s container %s: %w", r.bin, spec.Image, err)
	}
	return nil
}

// Detect returns the named runtime when preferred is set, otherwise the
// first working engine of docker and podman.
func Detect(ctx context.Context, preferred string) (Runtime, error) {
	return detect(ctx, osExecutor{}, preferred)
}

func detect(ctx context.Context, ex executor, preferred string) (Runtime, error) {
	var tried []string
	for _, e := range engines {
		if preferred != "" && e.bin != preferred {
			continue
		}
		tried = append(tried, e.bin)
		rt := &runtime{engine: e, exec: ex}
		if rt.available(ctx) {
			return rt, nil
		}
	}
	if len(tried) == 0 {
		return nil, fmt.Errorf("%w: unsupported runtime %q", ErrNoRuntime, preferred)
	}
	return nil, fmt.Errorf("%w: %s not found or not operational", ErrNoRuntime, strings.Join(tried, ", "))
}
