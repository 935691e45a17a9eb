// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import (
	"fmt"
	"os"
	"strings"
)

// ReadSubtitle returns the verbatim contents of the subtitle file, or the
// empty string when path is empty.
func ReadSubtitle(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", path, ErrSubtitleRead, err)
	}
	return string(data), nil
}

// Assemble builds the merged document:
//
//	"# " + title + "\n" + subtitle + "\n\n" + contents joined by "\n"
//
// Inputs are treated as opaque text; nothing is trimmed or validated.
func Assemble(title, subtitle string, contents []string) string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(subtitle)
	b.WriteString("\n\n")
	b.WriteString(strings.Join(contents, "\n"))
	return b.String()
}
