// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package script synthesizes and runs the launch script that starts one
// sandboxed instance of a title per player.
//
// The script is assembled as structured data first. A [Script] consists of
// an environment preamble and one [Block] per player. Each block wraps the
// title's executable in the nested compositor and the namespace isolation
// tool, described by a list of [Mount]s. Text is only produced by
// [Script.Render].
package script
