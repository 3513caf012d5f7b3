// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package lobby implements the player assignment state machine.
//
// A [Lobby] owns the open input devices while players gather. Every call of
// [Lobby.Step] polls each device once and applies the resulting action:
//
//	Idle --Start--> Collecting --start (>= 1 player)--> Ready
//	Collecting --back (no players)--> Idle
//	Collecting --rescan--> Collecting (players and devices cleared)
//
// Devices that do not belong to a player can join (accept), leave the lobby
// (back) or start. Player devices cycle their profile choice (left, right),
// leave (back) or start.
package lobby
