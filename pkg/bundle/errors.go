// File: pkg/bundle/errors.go
package bundle

import "errors"

// Error categories surfaced by a run. Both are fatal; callers match them with errors.Is.
var (
	// ErrFilesystemAccess reports an unreadable directory or file, or an unwritable output path.
	ErrFilesystemAccess = errors.New("filesystem access error")

	// ErrConfiguration reports invalid input detected before traversal starts,
	// such as a malformed glob pattern or a duplicate extension rule.
	ErrConfiguration = errors.New("configuration error")
)
