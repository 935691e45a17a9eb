// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// FormatOutcome records the result of converting the merged document into
// one target format.
type FormatOutcome struct {
	// Format is the requested target format name.
	Format string `json:"format" yaml:"format"`

	// Path is the absolute path of the converted file. Empty on failure.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// Err is the conversion or write error, nil on success.
	Err error `json:"-" yaml:"-"`
}

// OK reports whether the conversion succeeded.
func (o FormatOutcome) OK() bool {
	return o.Err == nil
}

// MergeResult holds the outcome of one merge run.
type MergeResult struct {
	// MarkdownPath is the absolute path of the merged markdown file.
	MarkdownPath string `json:"markdown_path" yaml:"markdown_path"`

	// Chapters is the number of chapter directories merged.
	Chapters int `json:"chapters" yaml:"chapters"`

	// Files is the number of chapter files merged.
	Files int `json:"files" yaml:"files"`

	// Formats holds one outcome per requested format, in request order.
	Formats []FormatOutcome `json:"formats,omitempty" yaml:"formats,omitempty"`
}

// Failed returns the outcomes of conversions that did not succeed.
func (r MergeResult) Failed() []FormatOutcome {
	var failed []FormatOutcome
	for _, f := range r.Formats {
		if !f.OK() {
			failed = append(failed, f)
		}
	}
	return failed
}

// HasFailures reports whether any format conversion failed.
func (r MergeResult) HasFailures() bool {
	return len(r.Failed()) > 0
}
