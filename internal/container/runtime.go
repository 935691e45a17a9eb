// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package container runs pandoc from an image through docker or podman. The
// container converter backend uses it when pandoc is not installed on the
// host.
package container

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Runtime is a container CLI able to check for an image and run it as a
// filter from stdin to stdout.
type Runtime interface {
	// Name returns the CLI binary name ("docker" or "podman").
	Name() string

	// Available reports whether the binary is on PATH and its daemon or
	// service answers "info".
	Available() bool

	// ImageExists returns nil when image is present locally.
	ImageExists(image string) error

	// Run starts image with args, piping stdin in and stdout out. The
	// container has no network and is removed when it exits.
	Run(ctx context.Context, image string, args []string, stdin io.Reader, stdout io.Writer) error
}

// engine describes one supported container CLI.
type engine struct {
	bin        string
	imageProbe []string
}

// engines lists the supported CLIs in detection order.
var engines = []engine{
	{bin: "docker", imageProbe: []string{"image", "inspect"}},
	{bin: "podman", imageProbe: []string{"image", "exists"}},
}

// shell runs external commands. Tests replace it with a recorder.
type shell interface {
	Find(file string) (string, error)
	Quiet(name string, args ...string) error
	Pipe(ctx context.Context, name string, args []string, stdin io.Reader, stdout io.Writer) error
}

type osShell struct{}

func (osShell) Find(file string) (string, error) { return exec.LookPath(file) }

func (osShell) Quiet(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// Pipe folds the command's stderr into the returned error so pandoc's own
// diagnostics reach the user.
func (osShell) Pipe(ctx context.Context, name string, args []string, stdin io.Reader, stdout io.Writer) error {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err == nil {
		return nil
	}
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		return fmt.Errorf("%w: %s", err, msg)
	}
	return err
}

// cli is a Runtime backed by one engine.
type cli struct {
	engine
	sh shell
}

func (c *cli) Name() string { return c.bin }

func (c *cli) Available() bool {
	if _, err := c.sh.Find(c.bin); err != nil {
		return false
	}
	return c.sh.Quiet(c.bin, "info") == nil
}

func (c *cli) ImageExists(image string) error {
	args := append(append([]string(nil), c.imageProbe...), image)
	if err := c.sh.Quiet(c.bin, args...); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", image, c.bin, err)
	}
	return nil
}

func (c *cli) Run(ctx context.Context, image string, args []string, stdin io.Reader, stdout io.Writer) error {
	argv := append([]string{"run", "--rm", "-i", "--network", "none", image}, args...)
	if err := c.sh.Pipe(ctx, c.bin, argv, stdin, stdout); err != nil {
		return fmt.Errorf("running %s container %s: %w", c.bin, image, err)
	}
	return nil
}

// DetectRuntime returns the first available engine: docker, then podman.
func DetectRuntime() (Runtime, error) {
	return detect(osShell{})
}

func detect(sh shell) (Runtime, error) {
	names := make([]string, 0, len(engines))
	for _, e := range engines {
		c := &cli{engine: e, sh: sh}
		if c.Available() {
			return c, nil
		}
		names = append(names, e.bin)
	}
	return nil, fmt.Errorf("no container runtime available: tried %s", strings.Join(names, ", "))
}
