// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package party ties the components together into a single launch.
//
// A [Session] holds everything a run needs. Its [Session.Launch] runs the
// pipeline strictly in order: profiles, sandbox root, compatibility data,
// launch script, compositor, run. Failures are reported as one of three
// error classes: [ConfigError] for unusable titles, [ProvisionError] for
// failures building on-disk state and [LaunchError] for failures starting or
// running the players.
package party
