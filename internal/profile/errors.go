// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package profile

import "errors"

var (
	// ErrInvalidName is returned for profile names that are empty, not
	// alphanumeric or reserved.
	ErrInvalidName = errors.New("profile name must be alphanumeric")

	// ErrExists is returned if a profile is created that already exists.
	ErrExists = errors.New("profile exists already")

	// ErrNoGuestName is returned if more guests are requested than the guest
	// pool has names.
	ErrNoGuestName = errors.New("guest pool exhausted")
)
