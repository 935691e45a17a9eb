// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the chapter-merge pipeline:
// the merge request, the resolved configuration, and per-run results.
package types

import "fmt"

// ChapterOrder selects how chapter directories and chapter files are ordered
// before they are concatenated.
type ChapterOrder string

const (
	// OrderListing keeps the order the operating system lists directory
	// entries in. Nothing is re-sorted.
	OrderListing ChapterOrder = "listing"
	// OrderName sorts entries lexically by name.
	OrderName ChapterOrder = "name"
	// OrderNumeric sorts entries by their trailing number (ch2 before ch10).
	OrderNumeric ChapterOrder = "numeric"
)

// ParseChapterOrder converts a flag or config value into a ChapterOrder.
// The empty string maps to OrderListing.
func ParseChapterOrder(s string) (ChapterOrder, error) {
	switch ChapterOrder(s) {
	case "", OrderListing:
		return OrderListing, nil
	case OrderName, OrderNumeric:
		return ChapterOrder(s), nil
	}
	return "", fmt.Errorf("unknown chapter order %q (want listing, name, or numeric)", s)
}

// MergeRequest describes one merge run. It is built fresh for every
// invocation (or every debounced watch trigger) and not modified afterwards.
type MergeRequest struct {
	// Title is the level-1 heading of the document and the base name of
	// every output file.
	Title string `json:"title" yaml:"title"`

	// SourceDir is the root whose numbered subdirectories hold the chapters.
	SourceDir string `json:"directory" yaml:"directory"`

	// OutputDir receives <Title>.md and one <Title>.<format> per format.
	OutputDir string `json:"final_folder" yaml:"final_folder"`

	// Formats lists the converter target formats (e.g. "docx", "html").
	Formats []string `json:"pandoc_format,omitempty" yaml:"pandoc_format,omitempty"`

	// AddHeaders prepends "## <n>" to each chapter file, where n is the
	// number before the file extension.
	AddHeaders bool `json:"add_headers" yaml:"add_headers"`

	// SubtitlePath points at a file whose contents become the second line
	// of the document. Empty means no subtitle.
	SubtitlePath string `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`

	// Order selects chapter ordering (default OrderListing).
	Order ChapterOrder `json:"order" yaml:"order"`
}
