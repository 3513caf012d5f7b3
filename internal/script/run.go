// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package script

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os/exec"
	"time"

	"github.com/aibor/partyrun/internal/pipe"
	"github.com/aibor/partyrun/internal/sys"
	"golang.org/x/sync/errgroup"
)

// waitDelay bounds the wait for output of player instances that survive the
// canceled script.
const waitDelay = 2 * time.Second

// RunFunc runs the script at the given path.
type RunFunc func(ctx context.Context, path string) error

var _ RunFunc = Run

// Run runs the script at the given path and waits until it and all player
// instances it started closed their output.
//
// Output of the script is logged line by line. A non-zero exit code of the
// script is returned as [sys.ExecError].
func Run(ctx context.Context, path string) error {
	logger := slog.Default().WithGroup("player_output")
	processorsGroup := errgroup.Group{}

	process := func(name string) *io.PipeWriter {
		reader, writer := io.Pipe()

		processorsGroup.Go(func() error {
			dst := &pipe.LogWriter{
				Logger: logger,
				Level:  slog.LevelInfo,
				Stream: name,
			}

			_, err := pipe.LineBuffered(dst, reader)
			_ = reader.Close()

			if err != nil {
				return &pipe.Error{Name: name, Err: err}
			}

			return nil
		})

		return writer
	}

	stdout := process("stdout")
	stderr := process("stderr")

	cmd := exec.CommandContext(ctx, path)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = waitDelay

	slog.Info("Run launch script", slog.String("path", path))

	err := cmd.Run()

	_ = stdout.Close()
	_ = stderr.Close()

	processorsErr := processorsGroup.Wait()

	if err != nil {
		return errors.Join(&sys.ExecError{
			Name:     path,
			Err:      err,
			ExitCode: sys.ExitCode(err),
		}, processorsErr)
	}

	return processorsErr
}
