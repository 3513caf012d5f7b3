// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the runtime configuration from the environment and
// derives the on-disk layout from it.
//
// All paths partyrun reads from or writes to are derived deterministically by
// [Layout] from a handful of base directories and from already validated
// title identifiers and profile names. No path is ever built from free form
// user input.
package config
