// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import "errors"

// Errors returned by the merge pipeline. They are wrapped with the offending
// path; match them with errors.Is.
var (
	// ErrDirectoryNotFound means the source directory cannot be listed.
	ErrDirectoryNotFound = errors.New("no such directory")

	// ErrNoChaptersFound means the source directory has no subdirectory
	// whose name ends in digits.
	ErrNoChaptersFound = errors.New("no chapter directories found")

	// ErrFormat means headers were requested but a chapter file name has no
	// digits before its extension.
	ErrFormat = errors.New("chapter file name has no number before the extension")

	// ErrSubtitleRead means a subtitle path was given but could not be read.
	ErrSubtitleRead = errors.New("cannot read subtitle")
)
