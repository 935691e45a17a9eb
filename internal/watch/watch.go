// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package watch re-runs an action after the files under a directory tree
// stop changing for a configured quiet period.
package watch

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Options configures a Watcher.
type Options struct {
	// Root is the directory tree to observe.
	Root string

	// Interval is the debounce quiet period.
	Interval time.Duration

	// Ignore reports whether an event path should not trigger a run.
	// Paths under Root whose components start with "." are always ignored.
	Ignore func(path string) bool

	// Diag receives watcher errors. Defaults to io.Discard.
	Diag io.Writer
}

// Watcher observes Root recursively and calls its action through a
// Debouncer whenever a non-ignored path changes.
type Watcher struct {
	root     string
	ignore   func(string) bool
	diag     io.Writer
	fsw      *fsnotify.Watcher
	debounce *Debouncer
}

// New creates a Watcher for opts that calls action after each quiet period.
// Root and every non-ignored directory below it are registered.
func New(opts Options, action func()) (*Watcher, error) {
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", opts.Root, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		root:     root,
		ignore:   opts.Ignore,
		diag:     opts.Diag,
		fsw:      fsw,
		debounce: NewDebouncer(opts.Interval, action),
	}
	if w.ignore == nil {
		w.ignore = func(string) bool { return false }
	}
	if w.diag == nil {
		w.diag = io.Discard
	}

	if err := w.addTree(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// addTree registers dir and its subdirectories, skipping ignored ones.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return fmt.Errorf("watching %s: %w", dir, err)
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && w.skip(path) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

// skip reports whether path is hidden below the root or matched by Ignore.
func (w *Watcher) skip(path string) bool {
	if isHidden(w.root, path) {
		return true
	}
	return w.ignore(path)
}

// isHidden reports whether any component of path below root starts with ".".
func isHidden(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return false
	}
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		if strings.HasPrefix(part, ".") && part != ".." {
			return true
		}
	}
	return false
}

// Run triggers one initial run, then handles events until ctx is done.
// Errors from the underlying watcher are reported and do not stop it.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()
	defer w.debounce.Stop()

	w.debounce.Trigger()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(w.diag, "watch error: %v\n", err)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if w.skip(ev.Name) {
		return
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			if err := w.addTree(ev.Name); err != nil {
				fmt.Fprintf(w.diag, "watch error: %v\n", err)
			}
		}
	}
	w.debounce.Trigger()
}

// IgnoreOutputs returns an Ignore func that matches the files a merge writes:
// every path starting with <outputDir>/<title> (Book.md, Book.pdf, ...).
func IgnoreOutputs(outputDir, title string) func(string) bool {
	prefix, err := filepath.Abs(filepath.Join(outputDir, title))
	if err != nil {
		prefix = filepath.Join(outputDir, title)
	}
	return func(path string) bool {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		return strings.HasPrefix(abs, prefix)
	}
}
