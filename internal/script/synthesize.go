// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package script

import (
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/aibor/partyrun/internal/config"
	"github.com/aibor/partyrun/internal/handler"
	"github.com/aibor/partyrun/internal/profile"
	"github.com/aibor/partyrun/internal/sandbox"
)

// Defaults of [Request].
const (
	DefaultWidth       = 1280
	DefaultHeight      = 720
	DefaultPlayerDelay = 5 * time.Second
)

// Player is a player slot with resolved profile.
type Player struct {
	Profile string

	// Device is the device node of the player's controller.
	Device string
}

// Request collects the input of [Synthesizer.Synthesize].
type Request struct {
	// Handler must be validated.
	Handler *handler.Handler

	Players []Player

	// Devices are all detected device nodes. Each instance masks all of them
	// except its own. Player devices are always masked for other players,
	// even if missing here.
	Devices []string

	// Resolution of each nested compositor.
	Width  uint
	Height uint

	// PlayerDelay is waited before starting each Windows instance but the
	// first.
	PlayerDelay time.Duration
}

// Synthesizer builds launch scripts for the paths of its layout.
type Synthesizer struct {
	Layout config.Layout
}

// runtime is the runtime specific part of a script. It is resolved once per
// title.
type runtime struct {
	launcher []string
	env      []Env
	windows  bool
}

func (s *Synthesizer) runtime(h *handler.Handler) runtime {
	rt := runtime{windows: h.Runtime.Windows()}

	switch h.Runtime {
	case handler.RuntimeNative:
	case handler.RuntimeLegacy:
		rt.launcher = []string{filepath.Join(s.Layout.SteamRuntime(), "run.sh")}
	case handler.RuntimeCompat:
		rt.launcher = []string{s.Layout.ProtonExecutable(), "run"}
		rt.env = []Env{
			{"STEAM_COMPAT_CLIENT_INSTALL_PATH", s.Layout.SteamDir},
			{"STEAM_COMPAT_DATA_PATH", s.Layout.CompatData()},
			{"SteamAppId", h.SteamAppID},
			{"SteamGameId", h.SteamAppID},
		}
	case handler.RuntimeRawCompat:
		rt.launcher = []string{"wine"}
	}

	return rt
}

func (s *Synthesizer) sdlLibrary(is32Bit bool) string {
	arch := "x86_64-linux-gnu"
	if is32Bit {
		arch = "i386-linux-gnu"
	}

	return filepath.Join(s.Layout.SteamRuntime(), "usr", "lib", arch, "libSDL2-2.0.so.0")
}

// Synthesize builds the launch [Script] for the given request.
func (s *Synthesizer) Synthesize(req Request) (*Script, error) {
	h := req.Handler
	if h == nil || !h.Validated() {
		return nil, handler.ErrNotValidated
	}

	if len(req.Players) == 0 {
		return nil, ErrNoPlayers
	}

	width, height := req.Width, req.Height
	if width == 0 || height == 0 {
		width, height = DefaultWidth, DefaultHeight
	}

	rt := s.runtime(h)
	root := s.Layout.SandboxRoot(h.ID)
	devices := allDevices(req)

	script := &Script{
		Env: append([]Env{
			{"SDL_JOYSTICK_HIDAPI", "0"},
			{"SDL_DYNAMIC_API", s.sdlLibrary(h.Is32Bit)},
		}, rt.env...),
		Dir:    root,
		Blocks: make([]Block, 0, len(req.Players)),
	}

	for idx, player := range req.Players {
		if !handler.IsAlnum(player.Profile) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidProfile, player.Profile)
		}

		block := Block{
			Player:  idx,
			Profile: player.Profile,
			Device:  player.Device,
			Compositor: []string{
				CompositorTool,
				"-W", strconv.FormatUint(uint64(width), 10),
				"-H", strconv.FormatUint(uint64(height), 10),
				"-b",
				"--",
			},
			Mounts:     s.mounts(h, rt, root, player, devices),
			Launcher:   rt.launcher,
			Exec:       filepath.Join(root, h.Exec),
			Args:       h.LaunchArgs(player.Profile),
			Background: idx < len(req.Players)-1,
		}

		if rt.windows && idx > 0 {
			block.Delay = req.PlayerDelay
		}

		_, err := BuildMountArgs(block.Mounts)
		if err != nil {
			return nil, fmt.Errorf("player %d: %w", idx, err)
		}

		script.Blocks = append(script.Blocks, block)
	}

	return script, nil
}

func (s *Synthesizer) mounts(
	h *handler.Handler,
	rt runtime,
	root string,
	player Player,
	devices []string,
) []Mount {
	dir := profile.Dir(s.Layout.ProfileDir(player.Profile))
	userDir := s.Layout.CompatUserDir()

	mounts := []Mount{DevBind("/", "/")}

	if h.ShimPath != "" {
		mounts = append(mounts, Bind(dir.Save(), filepath.Join(root, h.ShimPath, sandbox.SaveDir)))
	}

	mounts = append(mounts, Tmpfs("/tmp"))

	if rt.windows && h.WinUniqueAppData {
		mounts = append(mounts, Bind(dir.AppData(), filepath.Join(userDir, "AppData")))
	}

	if rt.windows && h.WinUniqueDocuments {
		mounts = append(mounts, Bind(dir.Documents(), filepath.Join(userDir, "Documents")))
	}

	for _, path := range h.UniquePaths {
		mounts = append(mounts, Bind(dir.Unique(h.ID, path), filepath.Join(root, path)))
	}

	if !rt.windows && h.LinuxUniqueLocalShare {
		mounts = append(mounts, Bind(dir.LocalShare(), s.Layout.LocalShare()))
	}

	for _, device := range devices {
		if device != player.Device {
			mounts = append(mounts, Mask(device))
		}
	}

	return mounts
}

func allDevices(req Request) []string {
	devices := slices.Clone(req.Devices)

	for _, player := range req.Players {
		if player.Device != "" && !slices.Contains(devices, player.Device) {
			devices = append(devices, player.Device)
		}
	}

	devices = slices.DeleteFunc(devices, func(d string) bool { return d == "" })
	slices.Sort(devices)

	return slices.Compact(devices)
}
