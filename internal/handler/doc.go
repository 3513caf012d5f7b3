// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler discovers and validates title handlers.
//
// A handler is a directory in the handlers directory that contains an
// "info.json" record describing how to run a single installed title: where
// it is installed, which executable to run with which runtime, and which
// paths must be unique per player, copied for real or removed from the
// sandbox root. The record may contain comments and trailing commas.
//
// Records are read with [Scan] and must pass [Handler.Validate] before they
// are used by any other component.
package handler
