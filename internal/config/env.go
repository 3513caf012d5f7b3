// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Env is the configuration read from environment variables.
type Env struct {
	// Home directory of the user. Everything else defaults relative to it.
	Home string `env:"HOME,required,notEmpty"`

	// Root of the Steam installation that contains steamapps, the Steam
	// runtime and the Proton installations.
	SteamDir string `env:"STEAM_BASE_FOLDER,expand" envDefault:"${HOME}/.local/share/Steam"`

	// Directory for profiles, sandbox roots, compatibility data and the
	// launch script.
	DataDir string `env:"PARTYRUN_DATA_DIR,expand" envDefault:"${HOME}/.local/share/partydeck"`

	// Directory that contains the handlers/ and data/ directories. Defaults
	// to the directory of the running executable.
	AssetsDir string `env:"PARTYRUN_ASSETS_DIR,expand"`

	// Directory with the input device nodes.
	InputDir string `env:"PARTYRUN_INPUT_DIR" envDefault:"/dev/input"`

	// Resolution of each player's nested compositor.
	Width  uint `env:"PARTYRUN_WIDTH"  envDefault:"1280"`
	Height uint `env:"PARTYRUN_HEIGHT" envDefault:"720"`

	// Delay between starting consecutive Windows instances.
	PlayerDelay time.Duration `env:"PARTYRUN_PLAYER_DELAY" envDefault:"5s"`

	// Delay after patching the compatibility prefix registry.
	SettleDelay time.Duration `env:"PARTYRUN_SETTLE_DELAY" envDefault:"5s"`

	// Name of the Proton installation directory in steamapps/common.
	Proton string `env:"PARTYRUN_PROTON" envDefault:"Proton - Experimental"`
}

// ParseEnv loads the [Env] from the environment.
//
// If no assets directory is configured, the directory of the running
// executable is used.
func ParseEnv() (Env, error) {
	var cfg Env

	err := env.Parse(&cfg)
	if err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.AssetsDir == "" {
		cfg.AssetsDir, err = executableDir()
		if err != nil {
			return Env{}, err
		}
	}

	return cfg, nil
}

func executableDir() (string, error) {
	self, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("get own path: %w", err)
	}

	self, err = filepath.EvalSymlinks(self)
	if err != nil {
		return "", fmt.Errorf("resolve own path: %w", err)
	}

	return filepath.Dir(self), nil
}

// Layout returns the [Layout] for the configured directories.
func (e *Env) Layout() Layout {
	return Layout{
		Home:      e.Home,
		SteamDir:  e.SteamDir,
		DataDir:   e.DataDir,
		AssetsDir: e.AssetsDir,
		Proton:    e.Proton,
	}
}
