// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import "errors"

var (
	// ErrInvalidIdentifier is returned if the handler identifier is empty or
	// not alphanumeric.
	ErrInvalidIdentifier = errors.New("identifier must be alphanumeric")

	// ErrNoInstallRoot is returned if the installation root can not be
	// resolved to an existing directory.
	ErrNoInstallRoot = errors.New("installation root not found")

	// ErrNoExecutable is returned if no executable is configured.
	ErrNoExecutable = errors.New("no executable path")

	// ErrInvalidAppID is returned if the application id is required but
	// missing or not numeric.
	ErrInvalidAppID = errors.New("application id must be numeric")

	// ErrInvalidPath is returned for configured paths that are absolute or
	// leave the installation root.
	ErrInvalidPath = errors.New("path must be relative and stay inside the root")

	// ErrUnknownRuntime is returned for unknown runtime names.
	ErrUnknownRuntime = errors.New("unknown runtime")

	// ErrNotValidated is returned if a handler is used before it passed
	// [Handler.Validate].
	ErrNotValidated = errors.New("handler not validated")

	// ErrSchema is returned if a record does not match the record schema.
	ErrSchema = errors.New("record does not match schema")
)

// ValidationError is returned if a handler violates the usability
// invariants.
type ValidationError struct {
	Handler string
	Err     error
}

// Error implements the [error] interface.
func (e *ValidationError) Error() string {
	return "handler " + e.Handler + ": " + e.Err.Error()
}

// Is implements the [errors.Is] interface.
func (*ValidationError) Is(other error) bool {
	_, ok := other.(*ValidationError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
