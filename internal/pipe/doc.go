// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package pipe provides the transport of child process output into the log.
// Output is split into lines, so each line becomes a single log record.
package pipe
