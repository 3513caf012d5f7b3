// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package lobby

import "errors"

var (
	// ErrNotCollecting is returned if players are modified outside the
	// collecting state.
	ErrNotCollecting = errors.New("lobby is not collecting players")

	// ErrNoPlayers is returned if profiles are resolved without players.
	ErrNoPlayers = errors.New("no players")
)
