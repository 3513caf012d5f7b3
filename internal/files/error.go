// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package files

import "errors"

var (
	// ErrNotDir is returned if a source is supposed to be a directory but is
	// not.
	ErrNotDir = errors.New("not a directory")

	// ErrUnsupportedType is returned for files that are neither regular
	// files, directories nor symbolic links.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrSymlinkLoop is returned if symbolic links lead into a directory that
	// is already being copied.
	ErrSymlinkLoop = errors.New("symbolic link loop")

	// ErrOutsideRoot is returned if a path is not below the given root.
	ErrOutsideRoot = errors.New("path outside of root")
)

// PathError wraps errors of a single tree operation with the source and
// destination paths involved.
type PathError struct {
	Op  string
	Src string
	Dst string
	Err error
}

// Error implements the [error] interface.
func (e *PathError) Error() string {
	msg := e.Op + " " + e.Src
	if e.Dst != "" {
		msg += " -> " + e.Dst
	}

	return msg + ": " + e.Err.Error()
}

// Is implements the [errors.Is] interface.
func (*PathError) Is(other error) bool {
	_, ok := other.(*PathError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *PathError) Unwrap() error {
	return e.Err
}
