// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package lobby

import "github.com/aibor/partyrun/internal/input"

// GuestChoice is the profile choice of the shared guest designation.
const GuestChoice = 0

// Player is a single player slot.
type Player struct {
	Device input.Device

	// Choice is the index into the visible profile list. [GuestChoice] is the
	// guest.
	Choice int

	// Profile is the resolved profile name. It is set by
	// [Lobby.ResolveProfiles] only.
	Profile string
}

// CycleChoice moves the choice of the player at idx by dir steps through the
// visible profile list of size n.
//
// Choices held by other players are skipped, the guest choice never counts as
// held. The choice wraps in both directions. If every other choice is held,
// it is left unchanged.
func CycleChoice(players []*Player, idx, dir, n int) {
	if n <= 0 || dir == 0 || idx < 0 || idx >= len(players) {
		return
	}

	choice := players[idx].Choice

	for range n {
		choice = ((choice+dir)%n + n) % n

		if choice == GuestChoice || !heldByOther(players, idx, choice) {
			players[idx].Choice = choice
			return
		}
	}
}

func heldByOther(players []*Player, idx, choice int) bool {
	for other, player := range players {
		if other != idx && player.Choice == choice {
			return true
		}
	}

	return false
}
