// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sandbox_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aibor/partyrun/internal/config"
	"github.com/aibor/partyrun/internal/files"
	"github.com/aibor/partyrun/internal/handler"
	"github.com/aibor/partyrun/internal/sandbox"
	"github.com/aibor/partyrun/internal/sys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	commands []sys.Command
	output   string
	err      error
}

func (r *fakeRunner) run(_ context.Context, cmd sys.Command) error {
	r.commands = append(r.commands, cmd)

	if cmd.Stdout != nil {
		_, _ = io.WriteString(cmd.Stdout, r.output)
	}

	return r.err
}

type fixture struct {
	layout      config.Layout
	recorder    *files.Recorder
	runner      *fakeRunner
	provisioner *sandbox.Provisioner
}

func newFixture(t *testing.T, installation map[string]string) *fixture {
	t.Helper()

	base := t.TempDir()
	layout := config.Layout{
		Home:      filepath.Join(base, "home"),
		SteamDir:  filepath.Join(base, "steam"),
		DataDir:   filepath.Join(base, "data"),
		AssetsDir: filepath.Join(base, "assets"),
	}

	files.MustWriteFiles(t, filepath.Join(layout.GamesLibrary(), "Alice Game"), installation)

	recorder := files.NewRecorder()
	runner := &fakeRunner{output: "SteamUser021\nSteamFriends017\n"}

	return &fixture{
		layout:   layout,
		recorder: recorder,
		runner:   runner,
		provisioner: &sandbox.Provisioner{
			Layout: layout,
			Writer: recorder,
			Run:    runner.run,
		},
	}
}

func (f *fixture) handler(t *testing.T, h handler.Handler) *handler.Handler {
	t.Helper()

	h.ID = "Alice"
	h.SteamAppDir = "Alice Game"

	if h.Exec == "" {
		h.Exec = "game.exe"
	}

	return handler.MustValidate(t, &h, f.layout.GamesLibrary())
}

func (f *fixture) root() string {
	return f.layout.SandboxRoot("Alice")
}

func TestProvisionCopyAndRemove(t *testing.T) {
	f := newFixture(t, map[string]string{
		"game.exe":        "exe",
		"save.dat":        "save",
		"readme.txt":      "read me",
		"data/level1.pak": "level",
		"data/level2.pak": "level",
	})
	h := f.handler(t, handler.Handler{
		CopyPaths:   []string{"save.dat", "missing.dat"},
		RemovePaths: []string{"readme.txt", "missing.txt"},
	})

	require.NoError(t, f.provisioner.Provision(context.Background(), h))

	root := f.root()

	assert.True(t, files.IsRegular(filepath.Join(root, "save.dat")), "copied")
	assert.NoFileExists(t, filepath.Join(root, "readme.txt"))
	assert.FileExists(t, filepath.Join(h.Root(), "readme.txt"), "installation untouched")

	for _, path := range []string{"game.exe", "data/level1.pak", "data/level2.pak"} {
		assert.True(t, files.IsSymlink(filepath.Join(root, path)), path)
	}

	info, err := os.Lstat(filepath.Join(root, "data"))
	require.NoError(t, err)
	assert.True(t, info.IsDir(), "directories are real")

	content, err := os.ReadFile(filepath.Join(root, "save.dat"))
	require.NoError(t, err)
	assert.Equal(t, "save", string(content))

	assert.Empty(t, f.runner.commands, "no shim configured")
}

func TestProvisionCopyDirectory(t *testing.T) {
	f := newFixture(t, map[string]string{
		"game.exe":          "exe",
		"config/video.ini":  "video",
		"config/audio.ini":  "audio",
		"config/keys/a.ini": "keys",
	})
	h := f.handler(t, handler.Handler{CopyPaths: []string{"config"}})

	require.NoError(t, f.provisioner.Provision(context.Background(), h))

	for _, path := range []string{"config/video.ini", "config/audio.ini", "config/keys/a.ini"} {
		assert.True(t, files.IsRegular(filepath.Join(f.root(), path)), path)
	}

	assert.True(t, files.IsSymlink(filepath.Join(f.root(), "game.exe")))
}

func TestProvisionIdempotent(t *testing.T) {
	f := newFixture(t, map[string]string{
		"game.exe": "exe",
		"save.dat": "save",
	})
	h := f.handler(t, handler.Handler{CopyPaths: []string{"save.dat"}})

	require.NoError(t, f.provisioner.Provision(context.Background(), h))
	require.NotEmpty(t, f.recorder.Ops)

	f.recorder.Ops = nil

	require.NoError(t, f.provisioner.Provision(context.Background(), h))
	assert.Empty(t, f.recorder.Ops)
}

func TestProvisionShim(t *testing.T) {
	tests := []struct {
		name            string
		runtime         handler.Runtime
		is32Bit         bool
		expectedBundle  string
		expectedLibrary string
	}{
		{
			name:            "windows 64 bit",
			runtime:         handler.RuntimeCompat,
			expectedBundle:  "64",
			expectedLibrary: "steam_api64.dll",
		},
		{
			name:            "windows 32 bit",
			runtime:         handler.RuntimeRawCompat,
			is32Bit:         true,
			expectedBundle:  "32",
			expectedLibrary: "steam_api.dll",
		},
		{
			name:            "native",
			runtime:         handler.RuntimeNative,
			expectedBundle:  "64",
			expectedLibrary: "libsteam_api.so",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, map[string]string{
				"game.exe":                 "exe",
				"bin/steam_api.dll":        "original",
				"bin/steam_api64.dll":      "original",
				"bin/libsteam_api.so":      "original",
				"bin/steam_appid.txt":      "original",
				"bin/local_save.txt":       "original",
				"bin/steam_interfaces.txt": "original",
			})
			files.MustWriteFiles(t, f.layout.AssetsDir, map[string]string{
				"data/goldberg/32/steam_api.dll":   "shim 32",
				"data/goldberg/64/steam_api64.dll": "shim 64",
				"data/goldberg/64/libsteam_api.so": "shim 64",
			})

			h := f.handler(t, handler.Handler{
				Runtime:    tt.runtime,
				Is32Bit:    tt.is32Bit,
				SteamAppID: "12345",
				ShimPath:   "bin",
			})

			require.NoError(t, f.provisioner.Provision(context.Background(), h))

			shimDir := filepath.Join(f.root(), "bin")

			assertContent := func(path, expected string) {
				t.Helper()

				assert.True(t, files.IsRegular(filepath.Join(shimDir, path)), path)

				actual, err := os.ReadFile(filepath.Join(shimDir, path))
				require.NoError(t, err)
				assert.Equal(t, expected, string(actual), path)
			}

			assertContent(sandbox.SaveMarkerFile, "goldbergsave\n")
			assertContent(sandbox.AppIDFile, "12345")
			assertContent(sandbox.InterfacesFile, "SteamUser021\nSteamFriends017\n")
			assertContent(tt.expectedLibrary, "shim "+tt.expectedBundle)

			require.Len(t, f.runner.commands, 1)
			assert.Equal(t, f.layout.FindInterfacesScript(), f.runner.commands[0].Name)
			assert.Equal(t,
				[]string{filepath.Join(h.Root(), "bin", tt.expectedLibrary)},
				f.runner.commands[0].Args,
			)

			original, err := os.ReadFile(filepath.Join(h.Root(), "bin", sandbox.AppIDFile))
			require.NoError(t, err)
			assert.Equal(t, "original", string(original), "installation untouched")
		})
	}
}

func TestProvisionInterfaceDiscoveryFails(t *testing.T) {
	f := newFixture(t, map[string]string{
		"game.exe":          "exe",
		"bin/steam_api.dll": "original",
		"save.dat":          "save",
	})
	files.MustWriteFiles(t, f.layout.AssetsDir, map[string]string{
		"data/goldberg/64/steam_api64.dll": "shim",
	})

	f.runner.err = &sys.ExecError{Name: "find_interfaces.sh", ExitCode: 1}

	h := f.handler(t, handler.Handler{
		Runtime:    handler.RuntimeCompat,
		SteamAppID: "12345",
		ShimPath:   "bin",
		CopyPaths:  []string{"save.dat"},
	})

	err := f.provisioner.Provision(context.Background(), h)

	var stepErr *sandbox.StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, sandbox.StepInterfaces, stepErr.Step)
	require.ErrorIs(t, err, &sys.ExecError{})

	assert.DirExists(t, f.root(), "partial root is left behind")
	assert.True(t, files.IsSymlink(filepath.Join(f.root(), "save.dat")), "later steps skipped")

	require.NoError(t, f.provisioner.Erase("Alice"))
	assert.NoDirExists(t, f.root())
}

func TestProvisionMissingShimBundle(t *testing.T) {
	f := newFixture(t, map[string]string{"game.exe": "exe"})
	h := f.handler(t, handler.Handler{ShimPath: "bin"})

	err := f.provisioner.Provision(context.Background(), h)

	var stepErr *sandbox.StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, sandbox.StepShim, stepErr.Step)
	assert.ErrorIs(t, err, files.ErrNotDir)
}

func TestProvisionSupplement(t *testing.T) {
	f := newFixture(t, map[string]string{
		"game.exe":         "exe",
		"config/video.ini": "original",
	})
	files.MustWriteFiles(t, f.layout.SupplementDir("Alice"), map[string]string{
		"config/video.ini": "supplement",
		"extra/mod.pak":    "mod",
	})

	h := f.handler(t, handler.Handler{})

	require.NoError(t, f.provisioner.Provision(context.Background(), h))

	for path, expected := range map[string]string{
		"config/video.ini": "supplement",
		"extra/mod.pak":    "mod",
	} {
		full := filepath.Join(f.root(), path)
		assert.True(t, files.IsRegular(full), path)

		actual, err := os.ReadFile(full)
		require.NoError(t, err)
		assert.Equal(t, expected, string(actual), path)
	}
}

func TestProvisionLinkedInstallDirectories(t *testing.T) {
	f := newFixture(t, map[string]string{
		"game.exe":          "exe",
		"realbin/conf.ini":  "original",
		"realbin/other.ini": "other",
		"realbin/stale.ini": "stale",
		"realcfg/a.cfg":     "a",
	})

	install := filepath.Join(f.layout.GamesLibrary(), "Alice Game")
	require.NoError(t, os.Symlink("realbin", filepath.Join(install, "bin")))
	require.NoError(t, os.Symlink("realcfg", filepath.Join(install, "cfg")))
	require.NoError(t, os.Symlink("..", filepath.Join(install, "realcfg", "up")))

	files.MustWriteFiles(t, f.layout.SupplementDir("Alice"), map[string]string{
		"bin/conf.ini": "patched",
	})

	h := f.handler(t, handler.Handler{
		CopyPaths:   []string{"cfg"},
		RemovePaths: []string{"bin/stale.ini"},
	})

	err := f.provisioner.Provision(context.Background(), h)
	require.ErrorIs(t, err, files.ErrSymlinkLoop)

	for path, expected := range map[string]string{
		"realbin/conf.ini":  "original",
		"realbin/other.ini": "other",
		"realbin/stale.ini": "stale",
		"realcfg/a.cfg":     "a",
	} {
		actual, err := os.ReadFile(filepath.Join(install, path))
		require.NoError(t, err)
		assert.Equal(t, expected, string(actual), "installation untouched: "+path)
	}

	require.NoError(t, os.Remove(filepath.Join(install, "realcfg", "up")))
	require.NoError(t, f.provisioner.Erase("Alice"))
	require.NoError(t, f.provisioner.Provision(context.Background(), h))

	conf := filepath.Join(f.root(), "bin", "conf.ini")
	assert.True(t, files.IsRegular(conf))

	patched, err := os.ReadFile(conf)
	require.NoError(t, err)
	assert.Equal(t, "patched", string(patched))

	assert.True(t, files.IsSymlink(filepath.Join(f.root(), "bin", "other.ini")))
	assert.False(t, files.Exists(filepath.Join(f.root(), "bin", "stale.ini")))
	assert.True(t, files.IsRegular(filepath.Join(f.root(), "cfg", "a.cfg")))

	original, err := os.ReadFile(filepath.Join(install, "realbin", "conf.ini"))
	require.NoError(t, err)
	assert.Equal(t, "original", string(original), "installation untouched")
	assert.FileExists(t, filepath.Join(install, "realbin", "stale.ini"))
}

func TestProvisionNotValidated(t *testing.T) {
	f := newFixture(t, map[string]string{"game.exe": "exe"})

	err := f.provisioner.Provision(context.Background(), &handler.Handler{ID: "Alice"})
	require.ErrorIs(t, err, handler.ErrNotValidated)
	assert.Empty(t, f.recorder.Ops)
}

func TestErase(t *testing.T) {
	f := newFixture(t, map[string]string{"game.exe": "exe"})
	h := f.handler(t, handler.Handler{})

	require.NoError(t, f.provisioner.Provision(context.Background(), h))
	require.DirExists(t, f.root())

	err := f.provisioner.Erase("../Alice")
	require.ErrorIs(t, err, handler.ErrInvalidIdentifier)

	require.NoError(t, f.provisioner.EraseAll())
	assert.NoDirExists(t, f.layout.GamesDir())
	require.NoError(t, f.provisioner.EraseAll(), "nothing to erase")
}

func TestStepError(t *testing.T) {
	err := &sandbox.StepError{Title: "Alice", Step: sandbox.StepCopy, Err: errors.New("disk full")}
	assert.Equal(t, "provision Alice: copy: disk full", err.Error())
}
