// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/aibor/partyrun/internal/input"
	"github.com/aibor/partyrun/internal/lobby"
	"github.com/aibor/partyrun/internal/party"
)

// Interval of the lobby loop. Each tick polls every device once.
const lobbyInterval = 16 * time.Millisecond

type app struct {
	session  *party.Session
	inputDir string
	stdout   io.Writer
	dryRun   bool

	// titleID is the title the current command works on, if any.
	titleID string
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "list":
		return a.list()
	case "profiles":
		return a.profiles(args)
	case "play":
		a.titleID = args[0]
		return a.play(ctx, args[0])
	case "erase":
		return a.erase(args)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
}

func (a *app) list() error {
	handlers, err := a.session.Handlers()
	if err != nil {
		return fmt.Errorf("scan handlers: %w", err)
	}

	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "ID\tNAME\tSTATUS")

	for _, h := range handlers {
		status := "ok"
		if !h.Validated() {
			status = "not usable"
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\n", h.ID, h.Name(), status)
	}

	return tw.Flush() //nolint:wrapcheck
}

func (a *app) profiles(args []string) error {
	if len(args) == 0 {
		names, err := a.session.Profiles.List(false)
		if err != nil {
			return fmt.Errorf("list profiles: %w", err)
		}

		for _, name := range names {
			fmt.Fprintln(a.stdout, name)
		}

		return nil
	}

	if args[0] != "create" || len(args) != 2 {
		return &ParseArgsError{msg: "profiles", err: ErrUnknownCommand}
	}

	dir, err := a.session.Profiles.Create(args[1])
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}

	slog.Info("Profile created", slog.String("path", string(dir)))

	return nil
}

func (a *app) erase(args []string) error {
	var err error

	switch {
	case args[0] == "games" && len(args) == 1:
		err = a.session.EraseGames()
	case args[0] == "game" && len(args) == 2:
		a.titleID = args[1]
		err = a.session.EraseGame(args[1])
	case args[0] == "profiles" && len(args) == 1:
		err = a.session.EraseProfiles()
	case args[0] == "compatdata" && len(args) == 1:
		err = a.session.EraseCompatData()
	default:
		return &ParseArgsError{msg: "erase", err: ErrUnknownCommand}
	}

	if err != nil {
		return fmt.Errorf("erase %s: %w", args[0], err)
	}

	return nil
}

func (a *app) play(ctx context.Context, titleID string) error {
	h, err := a.session.Handler(titleID)
	if err != nil {
		return err //nolint:wrapcheck
	}

	lob, err := a.session.NewLobby()
	if err != nil {
		return err //nolint:wrapcheck
	}

	lob.Discover = func() ([]input.Device, error) {
		return input.Discover(a.inputDir)
	}
	lob.Open = input.OpenDevice

	watcher, err := input.Watch(a.inputDir)
	if err != nil {
		slog.Warn("Device hotplug not available", slog.Any("error", err))
	} else {
		defer watcher.Close()

		lob.Hotplug = watcher
	}

	fmt.Fprintf(a.stdout,
		"%s: press A to join, left/right to pick a profile, "+
			"start to launch, B to leave\n", h.Name())

	devices, err := collectPlayers(ctx, lob, a.stdout, lobbyInterval)
	if errors.Is(err, ErrLobbyAborted) {
		fmt.Fprintln(a.stdout, "No players joined, nothing to launch")
		return nil
	} else if err != nil {
		return err
	}

	path, err := a.session.Launch(ctx, h, lob.Players(), devices, a.dryRun)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if a.dryRun {
		fmt.Fprintln(a.stdout, path)
	}

	return nil
}

// collectPlayers drives the lobby until it is ready or closed. The roster is
// printed whenever it changes. On success, the player profiles are resolved
// and the paths of all devices are returned. The lobby is closed in any case.
func collectPlayers(
	ctx context.Context,
	lob *lobby.Lobby,
	out io.Writer,
	interval time.Duration,
) ([]string, error) {
	defer lob.Close()

	err := lob.Start()
	if err != nil {
		return nil, fmt.Errorf("lobby: %w", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var roster string

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err() //nolint:wrapcheck
		case <-ticker.C:
		}

		state, err := lob.Step()
		if err != nil {
			return nil, fmt.Errorf("lobby: %w", err)
		}

		if current := formatRoster(lob); current != roster {
			roster = current
			fmt.Fprint(out, roster)
		}

		switch state {
		case lobby.StateReady:
			err := lob.ResolveProfiles()
			if err != nil {
				return nil, fmt.Errorf("resolve profiles: %w", err)
			}

			devices := lob.Devices()
			paths := make([]string, 0, len(devices))

			for _, dev := range devices {
				paths = append(paths, dev.Path())
			}

			return paths, nil
		case lobby.StateIdle:
			return nil, ErrLobbyAborted
		default:
		}
	}
}

func formatRoster(lob *lobby.Lobby) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%d controllers, %d players\n",
		len(lob.Devices()), len(lob.Players()))

	for idx, player := range lob.Players() {
		choice := "?"
		if player.Choice < len(lob.Profiles) {
			choice = lob.Profiles[player.Choice]
		}

		fmt.Fprintf(&b, "  Player %d: %s (%s)\n",
			idx+1, choice, player.Device.Name())
	}

	return b.String()
}
