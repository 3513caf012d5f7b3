// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package compositor loads the window tiling script into the desktop
// compositor while players are running.
//
// All calls are best effort. Failures are logged and never returned, a
// missing compositor only means windows are not tiled.
package compositor
