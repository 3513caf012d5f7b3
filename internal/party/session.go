// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package party

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aibor/partyrun/internal/compat"
	"github.com/aibor/partyrun/internal/compositor"
	"github.com/aibor/partyrun/internal/config"
	"github.com/aibor/partyrun/internal/handler"
	"github.com/aibor/partyrun/internal/lobby"
	"github.com/aibor/partyrun/internal/profile"
	"github.com/aibor/partyrun/internal/sandbox"
	"github.com/aibor/partyrun/internal/script"
	"github.com/aibor/partyrun/internal/sys"
)

// Compositor loads the window tiling while players run.
type Compositor interface {
	Load(ctx context.Context)
	Unload(ctx context.Context)
}

// Session holds the state and collaborators of partyrun.
type Session struct {
	Layout      config.Layout
	Profiles    *profile.Store
	Provisioner *sandbox.Provisioner
	CompatData  *compat.Manager
	Synthesizer *script.Synthesizer
	Compositor  Compositor
	RunScript   script.RunFunc

	Width       uint
	Height      uint
	PlayerDelay time.Duration
}

// NewSession returns a [Session] for the given configuration that works on
// the real file system and runs real programs.
func NewSession(cfg config.Env) *Session {
	layout := cfg.Layout()

	return &Session{
		Layout:      layout,
		Profiles:    profile.NewStore(layout.ProfilesDir()),
		Provisioner: sandbox.NewProvisioner(layout),
		CompatData:  compat.NewManager(layout, cfg.SettleDelay),
		Synthesizer: &script.Synthesizer{Layout: layout},
		Compositor:  compositor.NewKWin(layout.CompositorScript()),
		RunScript:   script.Run,
		Width:       cfg.Width,
		Height:      cfg.Height,
		PlayerDelay: cfg.PlayerDelay,
	}
}

// Handlers scans the handlers directory and validates all handlers found.
// Handlers that are not usable are returned as well, see
// [handler.Handler.Validated].
func (s *Session) Handlers() ([]*handler.Handler, error) {
	handlers, err := handler.Scan(s.Layout.HandlersDir())
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	for _, h := range handlers {
		h.Validate(s.Layout.GamesLibrary())
	}

	return handlers, nil
}

// Handler reads and validates the handler with the given identifier.
func (s *Session) Handler(titleID string) (*handler.Handler, error) {
	if !handler.IsAlnum(titleID) {
		return nil, &ConfigError{Title: titleID, Err: handler.ErrInvalidIdentifier}
	}

	h, err := handler.ReadFile(s.Layout.HandlerFile(titleID))
	if err != nil {
		return nil, &ConfigError{Title: titleID, Err: err}
	}

	h.ID = titleID
	h.Dir = filepath.Dir(s.Layout.HandlerFile(titleID))

	err = h.Check(s.Layout.GamesLibrary())
	if err != nil {
		return nil, &ConfigError{Title: titleID, Err: err}
	}

	return h, nil
}

// NewLobby returns a [lobby.Lobby] with the visible profile list.
//
// The guest profiles of the previous session are removed, so guests always
// start fresh.
func (s *Session) NewLobby() (*lobby.Lobby, error) {
	err := s.Profiles.RemoveGuests()
	if err != nil {
		return nil, &ProvisionError{Step: StepProfiles, Err: err}
	}

	profiles, err := s.Profiles.List(true)
	if err != nil {
		return nil, &ProvisionError{Step: StepProfiles, Err: err}
	}

	return &lobby.Lobby{Profiles: profiles}, nil
}

// Launch prepares everything for the given players and runs them.
//
// Profile names must be resolved already, see [lobby.Lobby.ResolveProfiles].
// Devices are the paths of all detected device nodes. If dryRun is true, the
// launch script is written but not run. The path of the launch script is
// returned in any case it has been written.
func (s *Session) Launch(
	ctx context.Context,
	h *handler.Handler,
	players []*lobby.Player,
	devices []string,
	dryRun bool,
) (string, error) {
	if len(players) == 0 {
		return "", &LaunchError{Err: lobby.ErrNoPlayers}
	}

	err := s.prepareProfiles(h, players)
	if err != nil {
		return "", &ProvisionError{Step: StepProfiles, Err: err}
	}

	err = s.Provisioner.Provision(ctx, h)
	if err != nil {
		return "", &ProvisionError{Step: StepSandbox, Err: err}
	}

	err = s.CompatData.Ensure(ctx, h)
	if err != nil {
		return "", &ProvisionError{Step: StepCompatData, Err: err}
	}

	scriptPlayers := make([]script.Player, 0, len(players))
	for _, player := range players {
		scriptPlayers = append(scriptPlayers, script.Player{
			Profile: player.Profile,
			Device:  player.Device.Path(),
		})
	}

	launchScript, err := s.Synthesizer.Synthesize(script.Request{
		Handler:     h,
		Players:     scriptPlayers,
		Devices:     devices,
		Width:       s.Width,
		Height:      s.Height,
		PlayerDelay: s.PlayerDelay,
	})
	if err != nil {
		return "", &LaunchError{Err: err}
	}

	path := s.Layout.RunScript()

	err = launchScript.Write(path)
	if err != nil {
		return "", &LaunchError{Err: err}
	}

	if dryRun {
		slog.Info("Launch script written", slog.String("path", path))
		return path, nil
	}

	s.Compositor.Load(ctx)
	defer s.Compositor.Unload(context.WithoutCancel(ctx))

	err = s.RunScript(ctx, path)
	if err != nil {
		return path, &LaunchError{ExitCode: sys.ExitCode(err), Err: err}
	}

	return path, nil
}

func (s *Session) prepareProfiles(h *handler.Handler, players []*lobby.Player) error {
	for idx, player := range players {
		if player.Profile == "" {
			return fmt.Errorf("player %d: %w", idx+1, profile.ErrInvalidName)
		}

		_, err := s.Profiles.Ensure(player.Profile)
		if err != nil {
			return err //nolint:wrapcheck
		}

		err = s.Profiles.EnsureUniqueDirs(player.Profile, h)
		if err != nil {
			return err //nolint:wrapcheck
		}
	}

	return nil
}

// EraseGames removes all sandbox roots.
func (s *Session) EraseGames() error {
	return s.Provisioner.EraseAll() //nolint:wrapcheck
}

// EraseGame removes the sandbox root of the given title.
func (s *Session) EraseGame(titleID string) error {
	return s.Provisioner.Erase(titleID) //nolint:wrapcheck
}

// EraseProfiles removes all profiles.
func (s *Session) EraseProfiles() error {
	return s.Profiles.RemoveAll() //nolint:wrapcheck
}

// EraseCompatData removes the compatibility data directory.
func (s *Session) EraseCompatData() error {
	return s.CompatData.Erase() //nolint:wrapcheck
}

// EraseHint returns the command that removes the partial state left behind by
// the given error.
func EraseHint(err error, titleID string) string {
	var provisionErr *ProvisionError
	if !errors.As(err, &provisionErr) {
		return ""
	}

	switch provisionErr.Step {
	case StepSandbox:
		return "erase game " + titleID
	case StepCompatData:
		return "erase compatdata"
	default:
		return ""
	}
}
