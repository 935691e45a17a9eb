// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fsx writes output files through a temporary file in the destination
// directory followed by a rename, so readers (and the watcher) never observe
// a half-written artifact.
package fsx

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// renameFunc is replaced in tests to simulate rename failures.
var renameFunc = os.Rename

// PathTypeConflictError reports that the destination exists but is not a
// regular file (for example a directory named Book.md).
type PathTypeConflictError struct {
	Path string
	Got  string
}

func (e *PathTypeConflictError) Error() string {
	return fmt.Sprintf("%s exists and is a %s, not a regular file", e.Path, e.Got)
}

// IsPathTypeConflict reports whether err is a PathTypeConflictError.
func IsPathTypeConflict(err error) bool {
	var e *PathTypeConflictError
	return errors.As(err, &e)
}

// TempPrefix returns the name prefix used for temporary files created for
// name. Temp files start with a dot so watchers that skip dotfiles ignore them.
func TempPrefix(name string) string {
	return "." + name + ".tmp-"
}

// WriteFileAtomic writes data to dir/name, replacing any existing regular
// file. A symlink at dir/name is followed and its target replaced, so the
// link itself survives. dir and its ancestors are created when missing. It
// returns the absolute path of dir/name.
func WriteFileAtomic(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}

	dst, err := filepath.Abs(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", name, err)
	}
	target, err := resolveTarget(dst)
	if err != nil {
		return "", err
	}
	if fi, err := os.Stat(target); err == nil && !fi.Mode().IsRegular() {
		return "", &PathTypeConflictError{Path: dst, Got: typeName(fi.Mode())}
	}

	targetDir := filepath.Dir(target)
	tmp, err := os.CreateTemp(targetDir, TempPrefix(filepath.Base(target))+"*")
	if err != nil {
		return "", fmt.Errorf("creating temp file for %s: %w", name, err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return "", fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return "", fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", tmpName, err)
	}

	if err := renameFunc(tmpName, target); err != nil {
		return "", fmt.Errorf("moving %s to %s: %w", tmpName, target, err)
	}
	return dst, nil
}

// resolveTarget returns the file a write to dst lands on. For a symlink that
// is the link's final target; a dangling link resolves to the path it names.
func resolveTarget(dst string) (string, error) {
	fi, err := os.Lstat(dst)
	if err != nil || fi.Mode()&os.ModeSymlink == 0 {
		return dst, nil
	}
	target, err := filepath.EvalSymlinks(dst)
	if err == nil {
		return target, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("resolving link %s: %w", dst, err)
	}
	link, err := os.Readlink(dst)
	if err != nil {
		return "", fmt.Errorf("reading link %s: %w", dst, err)
	}
	if !filepath.IsAbs(link) {
		link = filepath.Join(filepath.Dir(dst), link)
	}
	if _, err := os.Lstat(link); err == nil {
		// Still a link to a missing file: a chain we do not follow further.
		return "", &PathTypeConflictError{Path: dst, Got: "broken symlink chain"}
	}
	return link, nil
}

// typeName describes a non-regular file mode for error messages.
func typeName(m fs.FileMode) string {
	switch {
	case m.IsDir():
		return "directory"
	case m&fs.ModeSymlink != 0:
		return "symlink"
	case m&fs.ModeNamedPipe != 0:
		return "named pipe"
	case m&fs.ModeSocket != 0:
		return "socket"
	case m&fs.ModeDevice != 0:
		return "device"
	}
	return "special file"
}
