// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

func setupLogging(writer io.Writer, level slog.Level) {
	slog.SetDefault(slog.New(slog.NewTextHandler(
		writer,
		&slog.HandlerOptions{
			Level: level,
		},
	)))
}

// logWriter returns the writer for the log. If path is not empty, the log
// goes into the file as well. The returned close function must be called
// once logging is done.
func logWriter(stderr io.Writer, path string) (io.Writer, func(), error) {
	if path == "" {
		return stderr, func() {}, nil
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	closeFn := func() {
		_ = file.Close()
	}

	return io.MultiWriter(stderr, file), closeFn, nil
}
