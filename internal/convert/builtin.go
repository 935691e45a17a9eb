// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

const formatHTML = "html"

// BuiltinConverter renders markdown to HTML in-process with goldmark. It is
// the fallback when neither pandoc nor a container runtime is available and
// supports only the html format.
type BuiltinConverter struct {
	md goldmark.Markdown
}

// NewBuiltinConverter builds a goldmark engine with GFM extensions, heading
// IDs, and raw HTML passthrough (chapters are trusted local files).
func NewBuiltinConverter() *BuiltinConverter {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Footnote, extension.DefinitionList),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	return &BuiltinConverter{md: md}
}

// Name returns "builtin".
func (b *BuiltinConverter) Name() string { return "builtin" }

// Convert renders markdown as an HTML fragment.
func (b *BuiltinConverter) Convert(_ context.Context, markdown, format string) ([]byte, error) {
	if format != formatHTML {
		return nil, fmt.Errorf("%w %q: the builtin converter only produces %s", ErrUnsupportedFormat, format, formatHTML)
	}
	var buf bytes.Buffer
	if err := b.md.Convert([]byte(markdown), &buf); err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.Bytes(), nil
}
