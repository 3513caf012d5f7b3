// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cmd provides the CLI command entry point for partyrun. It handles
// flag parsing, subcommand dispatch, error handling, and output handling.
package cmd
