// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package merge concatenates numbered chapter directories of markdown files
// into one document and writes it, plus any converted formats, to the
// output directory.
package merge

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/chapter-merge/internal/convert"
	"github.com/pdiddy/chapter-merge/internal/fsx"
	"github.com/pdiddy/chapter-merge/pkg/types"
)

// Document is a merged document held in memory before it is written.
type Document struct {
	Text     string
	Chapters int
	Files    int
}

// Compose discovers, reads, and assembles the chapters described by req.
// It performs no writes, so a failure leaves the output directory untouched.
func Compose(req types.MergeRequest) (Document, error) {
	dirs, err := DiscoverChapters(req.SourceDir, req.Order)
	if err != nil {
		return Document{}, err
	}

	subtitle, err := ReadSubtitle(req.SubtitlePath)
	if err != nil {
		return Document{}, err
	}

	contents, err := CollectChapters(dirs, req.AddHeaders, req.Order)
	if err != nil {
		return Document{}, err
	}

	return Document{
		Text:     Assemble(req.Title, subtitle, contents),
		Chapters: len(dirs),
		Files:    len(contents),
	}, nil
}

// Merger runs the full pipeline: compose, write markdown, convert formats.
type Merger struct {
	conv convert.Converter
	out  io.Writer
	diag io.Writer
}

// NewMerger returns a Merger that converts with conv (nil when no formats
// will be requested), prints success lines to out, and warnings to diag.
func NewMerger(conv convert.Converter, out, diag io.Writer) *Merger {
	return &Merger{conv: conv, out: out, diag: diag}
}

// Run merges the chapters of req into <OutputDir>/<Title>.md and converts
// the document into each requested format. Conversion failures do not fail
// the run; they are recorded in the result's Formats.
func (m *Merger) Run(ctx context.Context, req types.MergeRequest) (types.MergeResult, error) {
	doc, err := Compose(req)
	if err != nil {
		return types.MergeResult{}, err
	}

	path, err := fsx.WriteFileAtomic(req.OutputDir, req.Title+".md", []byte(doc.Text))
	if err != nil {
		return types.MergeResult{}, fmt.Errorf("writing merged document: %w", err)
	}
	fmt.Fprintf(m.out, "success: %s\n", path)

	result := types.MergeResult{
		MarkdownPath: path,
		Chapters:     doc.Chapters,
		Files:        doc.Files,
	}
	result.Formats = convert.ConvertAll(ctx, m.conv, doc.Text, req.Formats, req.OutputDir, req.Title, m.out, m.diag)
	return result, nil
}
