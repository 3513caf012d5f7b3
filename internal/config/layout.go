// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import "path/filepath"

const (
	handlersDirName   = "handlers"
	handlerFileName   = "info.json"
	supplementDirName = "copy"
)

// Layout derives all paths used by partyrun.
//
// The data directory contains:
//
//	profiles/<name>/   persistent per user save areas
//	game/<titleID>/    sandbox roots
//	compatdata/        compatibility layer prefix
//	run.sh             launch script of the current run
type Layout struct {
	Home      string
	SteamDir  string
	DataDir   string
	AssetsDir string
	Proton    string
}

// LocalShare is the user's XDG data directory.
func (l Layout) LocalShare() string {
	return filepath.Join(l.Home, ".local", "share")
}

// GamesLibrary is the directory Steam installs titles into.
func (l Layout) GamesLibrary() string {
	return filepath.Join(l.SteamDir, "steamapps", "common")
}

// CompatDataTemplate is Steam's own compatibility prefix for the given
// application id. It is used as template for [Layout.CompatData].
func (l Layout) CompatDataTemplate(appID string) string {
	return filepath.Join(l.SteamDir, "steamapps", "compatdata", appID)
}

// SteamRuntime is the root of the legacy Steam runtime.
func (l Layout) SteamRuntime() string {
	return filepath.Join(l.SteamDir, "ubuntu12_32", "steam-runtime")
}

// ProtonExecutable is the launcher of the configured Proton installation.
func (l Layout) ProtonExecutable() string {
	return filepath.Join(l.GamesLibrary(), l.Proton, "proton")
}

// ProfilesDir contains all profile directories.
func (l Layout) ProfilesDir() string {
	return filepath.Join(l.DataDir, "profiles")
}

// ProfileDir is the directory of the profile with the given name.
func (l Layout) ProfileDir(name string) string {
	return filepath.Join(l.ProfilesDir(), name)
}

// GamesDir contains all sandbox roots.
func (l Layout) GamesDir() string {
	return filepath.Join(l.DataDir, "game")
}

// SandboxRoot is the sandbox root of the title with the given identifier.
func (l Layout) SandboxRoot(titleID string) string {
	return filepath.Join(l.GamesDir(), titleID)
}

// CompatData is the compatibility layer prefix shared by all titles.
func (l Layout) CompatData() string {
	return filepath.Join(l.DataDir, "compatdata")
}

// CompatPrefix is the Wine prefix inside [Layout.CompatData].
func (l Layout) CompatPrefix() string {
	return filepath.Join(l.CompatData(), "pfx")
}

// CompatUserDir is the Windows user directory inside [Layout.CompatPrefix].
func (l Layout) CompatUserDir() string {
	return filepath.Join(l.CompatPrefix(), "drive_c", "users", "steamuser")
}

// RunScript is the path of the generated launch script.
func (l Layout) RunScript() string {
	return filepath.Join(l.DataDir, "run.sh")
}

// HandlersDir contains one directory per title handler.
func (l Layout) HandlersDir() string {
	return filepath.Join(l.AssetsDir, handlersDirName)
}

// HandlerFile is the declarative record of the given handler.
func (l Layout) HandlerFile(titleID string) string {
	return filepath.Join(l.HandlersDir(), titleID, handlerFileName)
}

// SupplementDir holds title specific files copied over the sandbox root.
func (l Layout) SupplementDir(titleID string) string {
	return filepath.Join(l.HandlersDir(), titleID, supplementDirName)
}

// ShimDir contains the shim bundles for 32 and 64 bit titles.
func (l Layout) ShimDir(is32Bit bool) string {
	bits := "64"
	if is32Bit {
		bits = "32"
	}

	return filepath.Join(l.AssetsDir, "data", "goldberg", bits)
}

// FindInterfacesScript is the interface discovery script of the shim.
func (l Layout) FindInterfacesScript() string {
	return filepath.Join(l.AssetsDir, "data", "goldberg", "find_interfaces.sh")
}

// CompositorScript is the window tiling script loaded into the compositor.
func (l Layout) CompositorScript() string {
	return filepath.Join(l.AssetsDir, "data", "splitscreen_kwin.js")
}

// LogFile is the default log file location.
func (l Layout) LogFile() string {
	return filepath.Join(l.DataDir, "log.txt")
}
