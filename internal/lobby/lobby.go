// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package lobby

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/aibor/partyrun/internal/input"
	"github.com/aibor/partyrun/internal/profile"
)

// DiscoverFunc returns all currently present controllers.
type DiscoverFunc func() ([]input.Device, error)

// OpenFunc opens a single device node.
type OpenFunc func(path string) (input.Device, error)

// Hotplug reports newly appeared device nodes without blocking.
type Hotplug interface {
	Added() []string
}

// Lobby is the session state of the player assignment.
//
// It is not safe for concurrent use. The owner drives it by calling
// [Lobby.Step] periodically.
type Lobby struct {
	// Profiles is the visible profile list. Index [GuestChoice] is the guest.
	Profiles []string

	// Discover finds the devices on [Lobby.Start] and [Lobby.Rescan].
	Discover DiscoverFunc

	// Open and Hotplug are optional. If both are set, appearing devices are
	// added on [Lobby.Step].
	Open    OpenFunc
	Hotplug Hotplug

	state   State
	devices []input.Device
	players []*Player
}

// State returns the current state.
func (l *Lobby) State() State {
	return l.state
}

// Devices returns the open devices.
func (l *Lobby) Devices() []input.Device {
	return slices.Clone(l.devices)
}

// Players returns the player slots in join order.
func (l *Lobby) Players() []*Player {
	return slices.Clone(l.players)
}

// Start discovers the devices and starts collecting players.
func (l *Lobby) Start() error {
	err := l.discover()
	if err != nil {
		return err
	}

	l.setState(StateCollecting)

	return nil
}

func (l *Lobby) discover() error {
	devices, err := l.Discover()
	if err != nil {
		return fmt.Errorf("discover devices: %w", err)
	}

	l.devices = devices

	return nil
}

// Rescan clears all players and devices and discovers the devices again.
func (l *Lobby) Rescan() error {
	slog.Info("Rescan devices")

	l.players = nil
	l.closeDevices()

	err := l.discover()
	if err != nil {
		return err
	}

	if l.state == StateIdle {
		l.setState(StateCollecting)
	}

	return nil
}

// Close closes all devices and returns to idle. Players are kept, so they can
// still be used for launching.
func (l *Lobby) Close() {
	l.closeDevices()
	l.state = StateIdle
}

func (l *Lobby) closeDevices() {
	for _, dev := range l.devices {
		err := dev.Close()
		if err != nil {
			slog.Warn("Failed to close device",
				slog.String("path", dev.Path()),
				slog.Any("error", err))
		}
	}

	l.devices = nil
}

func (l *Lobby) setState(state State) {
	if l.state != state {
		slog.Debug("Lobby state",
			slog.String("from", l.state.String()),
			slog.String("to", state.String()))
	}

	l.state = state
}

// Step polls every device once and applies the actions. It returns the state
// after all actions are applied.
//
// Devices that fail are closed and removed together with their player.
func (l *Lobby) Step() (State, error) {
	if l.state != StateCollecting {
		return l.state, nil
	}

	l.addHotplugged()

	for _, dev := range slices.Clone(l.devices) {
		action, err := dev.Poll()
		if err != nil {
			slog.Warn("Remove failing device",
				slog.String("path", dev.Path()),
				slog.Any("error", err))
			l.removeDevice(dev)

			continue
		}

		if action == input.ActionNone {
			continue
		}

		err = l.Handle(dev, action)
		if err != nil {
			return l.state, err
		}

		// Rescan replaced the devices polled here.
		if l.state != StateCollecting || action == input.ActionAlt2 {
			break
		}
	}

	return l.state, nil
}

// Handle applies a single action of the given device.
func (l *Lobby) Handle(dev input.Device, action input.Action) error {
	if l.state != StateCollecting {
		return ErrNotCollecting
	}

	slog.Debug("Device action",
		slog.String("path", dev.Path()),
		slog.String("action", action.String()))

	if action == input.ActionAlt2 {
		return l.Rescan()
	}

	idx := l.playerIndex(dev)
	if idx < 0 {
		l.handleUnassigned(dev, action)
		return nil
	}

	switch action {
	case input.ActionLeft:
		CycleChoice(l.players, idx, -1, len(l.Profiles))
	case input.ActionRight:
		CycleChoice(l.players, idx, 1, len(l.Profiles))
	case input.ActionBack:
		l.players = slices.Delete(l.players, idx, idx+1)
	case input.ActionStart:
		l.setState(StateReady)
	default:
	}

	return nil
}

func (l *Lobby) handleUnassigned(dev input.Device, action input.Action) {
	switch action {
	case input.ActionAccept:
		l.players = append(l.players, &Player{Device: dev, Choice: GuestChoice})
		slog.Info("Player joined",
			slog.Int("player", len(l.players)),
			slog.String("device", dev.Name()))
	case input.ActionBack:
		if len(l.players) == 0 {
			l.Close()
		}
	case input.ActionStart:
		if len(l.players) > 0 {
			l.setState(StateReady)
		}
	default:
	}
}

func (l *Lobby) playerIndex(dev input.Device) int {
	return slices.IndexFunc(l.players, func(p *Player) bool {
		return p.Device.Path() == dev.Path()
	})
}

func (l *Lobby) removeDevice(dev input.Device) {
	_ = dev.Close()

	l.devices = slices.DeleteFunc(l.devices, func(d input.Device) bool {
		return d.Path() == dev.Path()
	})
	l.players = slices.DeleteFunc(l.players, func(p *Player) bool {
		return p.Device.Path() == dev.Path()
	})
}

func (l *Lobby) addHotplugged() {
	if l.Hotplug == nil || l.Open == nil {
		return
	}

	for _, path := range l.Hotplug.Added() {
		if slices.ContainsFunc(l.devices, func(d input.Device) bool {
			return d.Path() == path
		}) {
			continue
		}

		dev, err := l.Open(path)
		if err != nil {
			slog.Debug("Skip hotplugged device",
				slog.String("path", path),
				slog.Any("error", err))

			continue
		}

		slog.Info("Controller connected",
			slog.String("path", dev.Path()),
			slog.String("name", dev.Name()))

		l.devices = append(l.devices, dev)
	}
}

// ResolveProfiles binds the profile names to the players. Guests get the
// guest pool name of their player slot.
func (l *Lobby) ResolveProfiles() error {
	if len(l.players) == 0 {
		return ErrNoPlayers
	}

	for idx, player := range l.players {
		if player.Choice == GuestChoice || player.Choice >= len(l.Profiles) {
			name, err := profile.GuestName(idx)
			if err != nil {
				return err //nolint:wrapcheck
			}

			player.Profile = name

			continue
		}

		player.Profile = l.Profiles[player.Choice]
	}

	return nil
}
