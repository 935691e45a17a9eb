// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

const binPandoc = "pandoc"

// commandRunner abstracts process execution for testing.
type commandRunner interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args []string, stdin io.Reader) error
}

// osRunner is the production runner backed by os/exec.
type osRunner struct{}

func (osRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osRunner) Run(ctx context.Context, name string, args []string, stdin io.Reader) error {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

// PandocConverter runs a locally installed pandoc binary. Pandoc writes to a
// temporary file whose bytes become the conversion result, which keeps
// binary formats such as docx intact.
type PandocConverter struct {
	bin string
	run commandRunner
}

// NewPandocConverter locates pandoc on PATH.
func NewPandocConverter() (*PandocConverter, error) {
	return newPandocConverter(osRunner{})
}

func newPandocConverter(run commandRunner) (*PandocConverter, error) {
	bin, err := run.LookPath(binPandoc)
	if err != nil {
		return nil, fmt.Errorf("pandoc not found on PATH: %w", err)
	}
	return &PandocConverter{bin: bin, run: run}, nil
}

// Name returns "pandoc".
func (p *PandocConverter) Name() string { return binPandoc }

// Convert pipes markdown into pandoc and returns the produced file.
func (p *PandocConverter) Convert(ctx context.Context, markdown, format string) ([]byte, error) {
	tmp, err := os.CreateTemp("", "chapter-merge-*."+format)
	if err != nil {
		return nil, fmt.Errorf("creating pandoc output file: %w", err)
	}
	tmpName := tmp.Name()
	_ = tmp.Close()
	defer os.Remove(tmpName)

	if err := p.run.Run(ctx, p.bin, pandocArgs(format, tmpName), strings.NewReader(markdown)); err != nil {
		return nil, fmt.Errorf("running pandoc: %w", err)
	}

	data, err := os.ReadFile(tmpName)
	if err != nil {
		return nil, fmt.Errorf("reading pandoc output: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("pandoc produced empty %s output", format)
	}
	return data, nil
}

// pandocArgs builds the pandoc command line for a target format. pdf is not
// a pandoc writer name; pandoc picks the PDF engine from the output extension.
func pandocArgs(format, output string) []string {
	args := []string{"-f", "markdown"}
	if format != "pdf" {
		args = append(args, "-t", format)
	}
	return append(args, "-o", output)
}
