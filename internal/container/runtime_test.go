// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package container

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pandocImage = "pandoc/core:latest"

// fakeExecutor answers LookPath from a set of installed binaries and Exec
// from a set of command lines that succeed. onExec, when set, handles
// every Exec call instead.
type fakeExecutor struct {
	installed map[string]bool
	succeeds  map[string]bool
	onExec    func(cmd Command) error
	calls     []string
}

func (f *fakeExecutor) LookPath(file string) (string, error) {
	if f.installed[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("executable file not found in $PATH")
}

func (f *fakeExecutor) Exec(_ context.Context, cmd Command) error {
	f.calls = append(f.calls, cmd.String())
	if f.onExec != nil {
		return f.onExec(cmd)
	}
	if f.succeeds[cmd.String()] {
		return nil
	}
	return errors.New("exit status 1")
}

func dockerRuntime(ex executor) *runtime { return &runtime{engine: engines[0], exec: ex} }
func podmanRuntime(ex executor) *runtime { return &runtime{engine: engines[1], exec: ex} }

func TestDetect(t *testing.T) {
	tests := []struct {
		name      string
		exec      *fakeExecutor
		preferred string
		wantName  string
		wantErr   string
	}{
		{
			name: "docker first",
			exec: &fakeExecutor{
				installed: map[string]bool{"docker": true, "podman": true},
				succeeds:  map[string]bool{"docker info": true, "podman info": true},
			},
			wantName: "docker",
		},
		{
			name: "podman when docker missing",
			exec: &fakeExecutor{
				installed: map[string]bool{"podman": true},
				succeeds:  map[string]bool{"podman info": true},
			},
			wantName: "podman",
		},
		{
			name: "podman when docker daemon is down",
			exec: &fakeExecutor{
				installed: map[string]bool{"docker": true, "podman": true},
				succeeds:  map[string]bool{"podman info": true},
			},
			wantName: "podman",
		},
		{
			name: "preferred podman skips working docker",
			exec: &fakeExecutor{
				installed: map[string]bool{"docker": true, "podman": true},
				succeeds:  map[string]bool{"docker info": true, "podman info": true},
			},
			preferred: "podman",
			wantName:  "podman",
		},
		{
			name: "preferred runtime unavailable",
			exec: &fakeExecutor{
				installed: map[string]bool{"docker": true},
				succeeds:  map[string]bool{"docker info": true},
			},
			preferred: "podman",
			wantErr:   "podman not found or not operational",
		},
		{
			name:      "unsupported preferred runtime",
			exec:      &fakeExecutor{},
			preferred: "nerdctl",
			wantErr:   `unsupported runtime "nerdctl"`,
		},
		{
			name:    "nothing installed",
			exec:    &fakeExecutor{},
			wantErr: "docker, podman not found",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, err := detect(context.Background(), tt.exec, tt.preferred)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrNoRuntime)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, rt.Name())
		})
	}
}

func TestImageExists(t *testing.T) {
	tests := []struct {
		name     string
		rt       func(executor) *runtime
		succeeds map[string]bool
		wantErr  bool
	}{
		{
			name:     "docker image present",
			rt:       dockerRuntime,
			succeeds: map[string]bool{"docker image inspect " + pandocImage: true},
		},
		{
			name:    "docker image missing",
			rt:      dockerRuntime,
			wantErr: true,
		},
		{
			name:     "podman image present",
			rt:       podmanRuntime,
			succeeds: map[string]bool{"podman image exists " + pandocImage: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rt(&fakeExecutor{succeeds: tt.succeeds}).ImageExists(context.Background(), pandocImage)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), pandocImage)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRunStreamsThroughContainer(t *testing.T) {
	var got Command
	ex := &fakeExecutor{onExec: func(cmd Command) error {
		got = cmd
		data, _ := io.ReadAll(cmd.Stdin)
		_, _ = io.WriteString(cmd.Stdout, "md: "+string(data))
		return nil
	}}

	var out bytes.Buffer
	err := podmanRuntime(ex).Run(context.Background(), RunSpec{
		Image:  pandocImage,
		Args:   []string{"-f", "latex", "-t", "markdown"},
		Stdin:  strings.NewReader(`\emph{x}`),
		Stdout: &out,
		Stderr: io.Discard,
	})
	require.NoError(t, err)

	assert.Equal(t, "podman", got.Name)
	assert.Equal(t, []string{"run", "--rm", "-i", "--network", "none", pandocImage, "-f", "latex", "-t", "markdown"}, got.Args)
	assert.Equal(t, `md: \emph{x}`, out.String())
}

func TestRunFailureIsWrapped(t *testing.T) {
	cause := errors.New("exit status 125")
	ex := &fakeExecutor{onExec: func(Command) error { return cause }}

	err := dockerRuntime(ex).Run(context.Background(), RunSpec{Image: pandocImage, Stdin: strings.NewReader("")})
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "running docker container "+pandocImage)
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "docker image inspect x", Command{Name: "docker", Args: []string{"image", "inspect", "x"}}.String())
}
