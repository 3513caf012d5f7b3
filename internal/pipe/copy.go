// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package pipe

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// CopyFunc copies from src to dst.
type CopyFunc func(dst io.Writer, src io.Reader) (int64, error)

var _ CopyFunc = io.Copy

var _ CopyFunc = LineBuffered

// MaxLineLength is the length after which [LineBuffered] writes a line that
// has no newline yet.
const MaxLineLength = 1 << 20

// LineBuffered copies src to dst line by line. Every non-empty line is
// written with a single write call. A missing final newline is added. Lines
// longer than [MaxLineLength] are written in chunks of that length.
//
// src is always read until EOF or a read error, even after writing to dst
// failed, so the writing side of src is never blocked or broken.
func LineBuffered(dst io.Writer, src io.Reader) (int64, error) {
	var (
		written  int64
		line     []byte
		writeErr error
	)

	flush := func() {
		trimmed := bytes.TrimSuffix(bytes.TrimSuffix(line, []byte("\n")), []byte("\r"))
		line = line[:0]

		if writeErr != nil || len(trimmed) == 0 {
			return
		}

		n, err := dst.Write(append(trimmed, '\n'))

		written += int64(n)

		if err != nil {
			writeErr = fmt.Errorf("write: %w", err)
		}
	}

	reader := bufio.NewReader(src)

	for {
		chunk, err := reader.ReadSlice('\n')
		line = append(line, chunk...)

		switch {
		case err == nil:
			flush()
			continue
		case errors.Is(err, bufio.ErrBufferFull):
			if len(line) >= MaxLineLength {
				flush()
			}

			continue
		}

		flush()

		if errors.Is(err, io.EOF) {
			return written, writeErr
		}

		return written, errors.Join(writeErr, fmt.Errorf("read: %w", err))
	}
}

// LogWriter is an [io.Writer] that logs every write as a single record.
//
// Use it with [LineBuffered], so every record is a complete line.
type LogWriter struct {
	Logger *slog.Logger
	Level  slog.Level
	Stream string
}

var _ io.Writer = (*LogWriter)(nil)

// Write implements [io.Writer].
func (w *LogWriter) Write(p []byte) (int, error) {
	logger := w.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger.LogAttrs(context.Background(), w.Level, "Output",
		slog.String("stream", w.Stream),
		slog.String("line", strings.TrimRight(string(p), "\r\n")),
	)

	return len(p), nil
}
