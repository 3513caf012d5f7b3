// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package sandbox builds the sandbox roots titles run against.
//
// A sandbox root is a symbolic link mirror of the installation root in which
// selected paths are replaced by real copies, some are removed and the online
// service shim is injected. The installation root itself is never modified.
package sandbox
