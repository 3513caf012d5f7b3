// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package config_test

import (
	"testing"
	"time"

	"github.com/aibor/partyrun/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("HOME", "/home/deck")
		t.Setenv("STEAM_BASE_FOLDER", "")
		t.Setenv("PARTYRUN_DATA_DIR", "")
		t.Setenv("PARTYRUN_ASSETS_DIR", "/opt/partyrun")

		cfg, err := config.ParseEnv()
		require.NoError(t, err)

		assert.Equal(t, "/home/deck/.local/share/Steam", cfg.SteamDir)
		assert.Equal(t, "/home/deck/.local/share/partydeck", cfg.DataDir)
		assert.Equal(t, "/opt/partyrun", cfg.AssetsDir)
		assert.Equal(t, "/dev/input", cfg.InputDir)
		assert.Equal(t, uint(1280), cfg.Width)
		assert.Equal(t, uint(720), cfg.Height)
		assert.Equal(t, 5*time.Second, cfg.PlayerDelay)
		assert.Equal(t, 5*time.Second, cfg.SettleDelay)
		assert.Equal(t, "Proton - Experimental", cfg.Proton)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("HOME", "/home/deck")
		t.Setenv("STEAM_BASE_FOLDER", "/mnt/steam")
		t.Setenv("PARTYRUN_DATA_DIR", "/var/lib/party")
		t.Setenv("PARTYRUN_ASSETS_DIR", "/opt/partyrun")
		t.Setenv("PARTYRUN_PLAYER_DELAY", "2s")

		cfg, err := config.ParseEnv()
		require.NoError(t, err)

		assert.Equal(t, "/mnt/steam", cfg.SteamDir)
		assert.Equal(t, "/var/lib/party", cfg.DataDir)
		assert.Equal(t, 2*time.Second, cfg.PlayerDelay)
	})

	t.Run("no home", func(t *testing.T) {
		t.Setenv("HOME", "")

		_, err := config.ParseEnv()
		assert.Error(t, err)
	})
}

func TestLayout(t *testing.T) {
	layout := config.Layout{
		Home:      "/home/deck",
		SteamDir:  "/home/deck/.local/share/Steam",
		DataDir:   "/data",
		AssetsDir: "/opt/partyrun",
		Proton:    "Proton 9.0",
	}

	tests := []struct {
		name     string
		actual   string
		expected string
	}{
		{"profile", layout.ProfileDir("Sam"), "/data/profiles/Sam"},
		{"sandbox root", layout.SandboxRoot("Alice"), "/data/game/Alice"},
		{"compat data", layout.CompatData(), "/data/compatdata"},
		{"compat prefix", layout.CompatPrefix(), "/data/compatdata/pfx"},
		{"run script", layout.RunScript(), "/data/run.sh"},
		{
			"games library",
			layout.GamesLibrary(),
			"/home/deck/.local/share/Steam/steamapps/common",
		},
		{
			"compat template",
			layout.CompatDataTemplate("12345"),
			"/home/deck/.local/share/Steam/steamapps/compatdata/12345",
		},
		{
			"proton",
			layout.ProtonExecutable(),
			"/home/deck/.local/share/Steam/steamapps/common/Proton 9.0/proton",
		},
		{"handler", layout.HandlerFile("Alice"), "/opt/partyrun/handlers/Alice/info.json"},
		{"supplement", layout.SupplementDir("Alice"), "/opt/partyrun/handlers/Alice/copy"},
		{"shim 32", layout.ShimDir(true), "/opt/partyrun/data/goldberg/32"},
		{"shim 64", layout.ShimDir(false), "/opt/partyrun/data/goldberg/64"},
		{"local share", layout.LocalShare(), "/home/deck/.local/share"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.actual)
		})
	}
}
