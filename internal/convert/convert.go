// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns the merged markdown document into other formats
// with pluggable backends (pandoc, a pandoc container, or the builtin HTML
// renderer) and writes one file per requested format.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/pdiddy/chapter-merge/internal/fsx"
	"github.com/pdiddy/chapter-merge/pkg/types"
)

// ErrUnsupportedFormat is returned by a backend that cannot produce the
// requested format.
var ErrUnsupportedFormat = errors.New("unsupported format")

// ErrNoConverter is recorded for every format when formats were requested
// but no converter is configured.
var ErrNoConverter = errors.New("no converter configured")

// maxConcurrent bounds the number of conversions running at once.
const maxConcurrent = 4

// Converter transforms markdown text into a target format. Different
// backends (pandoc, container, builtin) implement this interface.
type Converter interface {
	// Name identifies the backend in diagnostics.
	Name() string

	// Convert returns the markdown rendered as format.
	Convert(ctx context.Context, markdown, format string) ([]byte, error)
}

// NormalizeFormats trims format names, drops empty entries and duplicates,
// and keeps the first-seen order.
func NormalizeFormats(formats []string) []string {
	seen := make(map[string]bool, len(formats))
	var out []string
	for _, f := range formats {
		f = strings.TrimSpace(f)
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// SplitFormats parses a comma-separated format list such as "docx,html".
func SplitFormats(s string) []string {
	return NormalizeFormats(strings.Split(s, ","))
}

// ConvertFormat converts markdown into one format and writes the result to
// outDir/<title>.<format> through a temporary file. It prints a success line
// to w when the file is in place.
func ConvertFormat(ctx context.Context, c Converter, markdown, format, outDir, title string, w io.Writer) types.FormatOutcome {
	outcome := types.FormatOutcome{Format: format}
	if c == nil {
		outcome.Err = ErrNoConverter
		return outcome
	}

	data, err := c.Convert(ctx, markdown, format)
	if err != nil {
		outcome.Err = fmt.Errorf("converting to %s with %s: %w", format, c.Name(), err)
		return outcome
	}

	path, err := fsx.WriteFileAtomic(outDir, title+"."+format, data)
	if err != nil {
		outcome.Err = fmt.Errorf("writing %s output: %w", format, err)
		return outcome
	}

	outcome.Path = path
	fmt.Fprintf(w, "success: %s\n", path)
	return outcome
}

// ConvertAll converts markdown into every format concurrently. Success lines
// go to out as each conversion finishes and failures are reported to diag
// as warnings. The returned outcomes follow the order of formats.
func ConvertAll(ctx context.Context, c Converter, markdown string, formats []string, outDir, title string, out, diag io.Writer) []types.FormatOutcome {
	formats = NormalizeFormats(formats)
	if len(formats) == 0 {
		return nil
	}

	sout := &syncWriter{w: out}
	outcomes := make([]types.FormatOutcome, len(formats))

	p := pool.New().WithMaxGoroutines(maxConcurrent)
	for i, f := range formats {
		p.Go(func() {
			outcomes[i] = ConvertFormat(ctx, c, markdown, f, outDir, title, sout)
		})
	}
	p.Wait()

	for _, o := range outcomes {
		if o.Err != nil {
			fmt.Fprintf(diag, "warning: %s: %v\n", o.Format, o.Err)
		}
	}
	return outcomes
}

// syncWriter serializes writes from concurrent conversions so lines never
// interleave.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
