// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/chapter-merge/pkg/types"
)

// chapterDirPattern matches chapter directory names: anything ending in digits.
var chapterDirPattern = regexp.MustCompile(`\d+$`)

// listNames returns the entry names of dir in the order the operating system
// reports them. os.ReadDir is avoided on purpose because it sorts by name.
func listNames(dir string) ([]string, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.Readdirnames(-1)
}

// DiscoverChapters returns the chapter directories directly under dir,
// ordered by order. With types.OrderListing the directory listing order is
// kept as is.
func DiscoverChapters(dir string, order types.ChapterOrder) ([]string, error) {
	names, err := listNames(dir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", dir, ErrDirectoryNotFound, err)
	}

	var chapters []string
	for _, name := range names {
		if !chapterDirPattern.MatchString(name) {
			continue
		}
		fi, err := os.Stat(filepath.Join(dir, name))
		if err != nil || !fi.IsDir() {
			continue
		}
		chapters = append(chapters, name)
	}

	sortNames(chapters, order, trailingNumber)

	if len(chapters) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoChaptersFound)
	}

	paths := make([]string, len(chapters))
	for i, name := range chapters {
		paths[i] = filepath.Join(dir, name)
	}
	return paths, nil
}

// trailingNumber returns the digit run at the end of a directory name.
func trailingNumber(name string) string {
	return chapterDirPattern.FindString(name)
}

// sortNames orders names in place. number extracts the digit run used for
// numeric ordering; names without one sort after those that have one.
func sortNames(names []string, order types.ChapterOrder, number func(string) string) {
	switch order {
	case types.OrderName:
		sort.Strings(names)
	case types.OrderNumeric:
		sort.SliceStable(names, func(i, j int) bool {
			a, b := number(names[i]), number(names[j])
			switch {
			case a == "" && b == "":
				return names[i] < names[j]
			case a == "":
				return false
			case b == "":
				return true
			}
			if c := compareDigits(a, b); c != 0 {
				return c < 0
			}
			return names[i] < names[j]
		})
	}
}

// compareDigits compares two decimal digit strings by value without parsing,
// so arbitrarily long runs never overflow.
func compareDigits(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}
