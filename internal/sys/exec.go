// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// Command describes a single invocation of an external program.
type Command struct {
	// Name or path of the program. Names without path separator are looked
	// up in PATH.
	Name string

	// Arguments passed to the program.
	Args []string

	// Additional environment variables in "key=value" form. They are
	// appended to the environment of the current process.
	Env []string

	// Working directory. Empty means the current one.
	Dir string

	// Output of the program. Stdout is discarded if nil. Stderr is always
	// captured for [ExecError] and additionally written to Stderr if set.
	Stdout io.Writer
	Stderr io.Writer
}

// String returns a shell like representation for logging.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Env)+len(c.Args)+1)
	parts = append(parts, c.Env...)
	parts = append(parts, c.Name)
	parts = append(parts, c.Args...)

	return strings.Join(parts, " ")
}

// RunFunc runs a [Command]. Components take a RunFunc so tests can replace
// the external programs.
type RunFunc func(ctx context.Context, cmd Command) error

var _ RunFunc = Run

// Run runs the given [Command] and waits for it to finish.
//
// It returns an [ExecError] if the program can not be started or exits with a
// non-zero exit code.
func Run(ctx context.Context, cmd Command) error {
	if cmd.Name == "" {
		return ErrEmptyCommand
	}

	var stderrBuf bytes.Buffer

	execCmd := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	execCmd.Dir = cmd.Dir
	execCmd.Stdout = cmd.Stdout

	execCmd.Stderr = &stderrBuf
	if cmd.Stderr != nil {
		execCmd.Stderr = io.MultiWriter(&stderrBuf, cmd.Stderr)
	}

	if len(cmd.Env) > 0 {
		execCmd.Env = append(os.Environ(), cmd.Env...)
	}

	slog.Debug("Exec", slog.String("command", cmd.String()))

	err := execCmd.Run()
	if err != nil {
		execErr := &ExecError{
			Name:     cmd.Name,
			Err:      err,
			Stderr:   stderrBuf.String(),
			ExitCode: ExitCode(err),
		}

		slog.Warn("Command failed",
			slog.String("command", cmd.Name),
			slog.Int("exit_code", execErr.ExitCode))

		return execErr
	}

	return nil
}

// ExitCode returns the exit code of a finished program from the error
// returned by [exec.Cmd.Wait] or [Run].
//
// It returns 0 for nil errors and -1 if the error does not carry an exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}

	var execErr *ExecError
	if errors.As(err, &execErr) {
		return execErr.ExitCode
	}

	return -1
}
