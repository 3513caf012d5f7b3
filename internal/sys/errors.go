// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import (
	"errors"
	"strconv"
	"strings"
)

// ErrEmptyCommand is returned if a [Command] has no name.
var ErrEmptyCommand = errors.New("command name must not be empty")

// ExecError is returned if an external program could not be started or
// returned with a non-zero exit code.
type ExecError struct {
	Name     string
	Err      error
	Stderr   string
	ExitCode int
}

// Error implements the [error] interface.
func (e *ExecError) Error() string {
	msg := e.Name + ": "
	if e.Err != nil {
		msg += e.Err.Error()
	}

	if e.ExitCode > 0 {
		msg += " (exit code " + strconv.Itoa(e.ExitCode) + ")"
	}

	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}

	return msg
}

// Is implements the [errors.Is] interface.
func (*ExecError) Is(other error) bool {
	_, ok := other.(*ExecError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *ExecError) Unwrap() error {
	return e.Err
}
