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

// recordingShell answers from fixed tables and records the last piped call.
type recordingShell struct {
	onPath map[string]bool
	ok     map[string]bool // "bin arg1 arg2" -> Quiet succeeds
	pipe   func(stdin io.Reader, stdout io.Writer) error

	pipedBin  string
	pipedArgs []string
}

func (s *recordingShell) Find(file string) (string, error) {
	if s.onPath[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (s *recordingShell) Quiet(name string, args ...string) error {
	key := strings.Join(append([]string{name}, args...), " ")
	if s.ok[key] {
		return nil
	}
	return errors.New("command failed: " + key)
}

func (s *recordingShell) Pipe(_ context.Context, name string, args []string, stdin io.Reader, stdout io.Writer) error {
	s.pipedBin = name
	s.pipedArgs = args
	if s.pipe != nil {
		return s.pipe(stdin, stdout)
	}
	return nil
}

func engineNamed(t *testing.T, bin string, sh shell) *cli {
	t.Helper()
	for _, e := range engines {
		if e.bin == bin {
			return &cli{engine: e, sh: sh}
		}
	}
	t.Fatalf("no engine %q", bin)
	return nil
}

func TestDetectRuntime(t *testing.T) {
	tests := []struct {
		name   string
		onPath map[string]bool
		ok     map[string]bool
		want   string
	}{
		{name: "docker first", onPath: map[string]bool{"docker": true, "podman": true}, ok: map[string]bool{"docker info": true, "podman info": true}, want: "docker"},
		{name: "podman when docker missing", onPath: map[string]bool{"podman": true}, ok: map[string]bool{"podman info": true}, want: "podman"},
		{name: "podman when docker daemon is down", onPath: map[string]bool{"docker": true, "podman": true}, ok: map[string]bool{"podman info": true}, want: "podman"},
		{name: "none"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, err := detect(&recordingShell{onPath: tt.onPath, ok: tt.ok})
			if tt.want == "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "tried docker, podman")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, rt.Name())
		})
	}
}

func TestImageExists(t *testing.T) {
	const image = "pandoc/core:latest"
	tests := []struct {
		bin     string
		ok      map[string]bool
		wantErr bool
	}{
		{bin: "docker", ok: map[string]bool{"docker image inspect " + image: true}},
		{bin: "docker", wantErr: true},
		{bin: "podman", ok: map[string]bool{"podman image exists " + image: true}},
		{bin: "podman", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.bin, func(t *testing.T) {
			err := engineNamed(t, tt.bin, &recordingShell{ok: tt.ok}).ImageExists(image)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), image)
				assert.Contains(t, err.Error(), tt.bin)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRun(t *testing.T) {
	t.Run("filters stdin to stdout without network", func(t *testing.T) {
		sh := &recordingShell{pipe: func(stdin io.Reader, stdout io.Writer) error {
			data, _ := io.ReadAll(stdin)
			_, err := stdout.Write([]byte("<p>" + string(data) + "</p>"))
			return err
		}}

		var out bytes.Buffer
		err := engineNamed(t, "podman", sh).Run(context.Background(), "pandoc/core:latest",
			[]string{"-f", "markdown", "-t", "html", "-o", "-"}, strings.NewReader("hello"), &out)
		require.NoError(t, err)

		assert.Equal(t, "podman", sh.pipedBin)
		assert.Equal(t,
			[]string{"run", "--rm", "-i", "--network", "none", "pandoc/core:latest", "-f", "markdown", "-t", "html", "-o", "-"},
			sh.pipedArgs)
		assert.Equal(t, "<p>hello</p>", out.String())
	})

	t.Run("wraps failures with runtime and image", func(t *testing.T) {
		sh := &recordingShell{pipe: func(io.Reader, io.Writer) error { return errors.New("exit status 64") }}

		err := engineNamed(t, "docker", sh).Run(context.Background(), "pandoc/core:latest", nil, strings.NewReader(""), io.Discard)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "running docker container pandoc/core:latest")
		assert.Contains(t, err.Error(), "exit status 64")
	})
}
