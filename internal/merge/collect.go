// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/pdiddy/chapter-merge/pkg/types"
)

const chapterExt = ".md"

// chapterFilePattern captures the digits immediately before the .md extension.
var chapterFilePattern = regexp.MustCompile(`(\d+)\.md$`)

// ChapterFiles returns the markdown files directly inside a chapter
// directory, ordered by order.
func ChapterFiles(dir string, order types.ChapterOrder) ([]string, error) {
	names, err := listNames(dir)
	if err != nil {
		return nil, fmt.Errorf("reading chapter directory %s: %w", dir, err)
	}

	var files []string
	for _, name := range names {
		if filepath.Ext(name) != chapterExt {
			continue
		}
		fi, err := os.Stat(filepath.Join(dir, name))
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}
		files = append(files, name)
	}

	sortNames(files, order, fileNumber)

	paths := make([]string, len(files))
	for i, name := range files {
		paths[i] = filepath.Join(dir, name)
	}
	return paths, nil
}

// fileNumber returns the digits before the extension, or "" when there are none.
func fileNumber(name string) string {
	m := chapterFilePattern.FindStringSubmatch(name)
	if m == nil {
		return ""
	}
	return m[1]
}

// chapterHeader returns the level-2 heading injected before a chapter file
// when headers are enabled.
func chapterHeader(path string) (string, error) {
	n := fileNumber(filepath.Base(path))
	if n == "" {
		return "", fmt.Errorf("%s: %w", path, ErrFormat)
	}
	return "## " + n + "\n", nil
}

// CollectChapters reads every chapter file of every chapter directory, in
// order, and returns their contents. All files of dirs[i] come before those
// of dirs[i+1]. With addHeaders each content is prefixed by its header.
func CollectChapters(dirs []string, addHeaders bool, order types.ChapterOrder) ([]string, error) {
	var contents []string
	for _, dir := range dirs {
		files, err := ChapterFiles(dir, order)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			data, err := os.ReadFile(f)
			if err != nil {
				return nil, fmt.Errorf("reading chapter %s: %w", f, err)
			}
			content := string(data)
			if addHeaders {
				header, err := chapterHeader(f)
				if err != nil {
					return nil, err
				}
				content = header + content
			}
			contents = append(contents, content)
		}
	}
	return contents, nil
}
