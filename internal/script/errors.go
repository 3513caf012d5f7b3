// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package script

import "errors"

var (
	// ErrMountCollision is returned if two mounts target the same path.
	ErrMountCollision = errors.New("mount target collision")

	// ErrNoPlayers is returned if a script without players is requested.
	ErrNoPlayers = errors.New("no players")

	// ErrInvalidProfile is returned for profile names that can not be used
	// for deriving paths.
	ErrInvalidProfile = errors.New("invalid profile name")

	// ErrNotExecutable is returned if the script file can not be made
	// executable.
	ErrNotExecutable = errors.New("script not executable")
)
