// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package files_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aibor/partyrun/internal/files"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMirror(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "mirror")

	files.MustWriteFiles(t, src, map[string]string{
		"game.exe":             "exe",
		"data/level1.pak":      "pak",
		"data/sub/texture.png": "png",
	})
	require.NoError(t, os.Symlink("game.exe", filepath.Join(src, "launcher")))

	err := files.Mirror(files.OS{}, src, dst)
	require.NoError(t, err)

	for _, name := range []string{
		"game.exe",
		"launcher",
		"data/level1.pak",
		"data/sub/texture.png",
	} {
		path := filepath.Join(dst, name)
		assert.True(t, files.IsSymlink(path), "%s should be a symlink", name)

		target, err := os.Readlink(path)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(src, name), target)
	}

	for _, name := range []string{"data", "data/sub"} {
		info, err := os.Lstat(filepath.Join(dst, name))
		require.NoError(t, err)
		assert.True(t, info.IsDir(), "%s should be a real directory", name)
	}

	content, err := os.ReadFile(filepath.Join(dst, "data/sub/texture.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(content))
}

func TestMirrorSourceNotDir(t *testing.T) {
	err := files.Mirror(files.OS{}, filepath.Join(t.TempDir(), "missing"), t.TempDir())
	assert.ErrorIs(t, err, files.ErrNotDir)
}

func TestCopy(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	files.MustWriteFiles(t, src, map[string]string{
		"a.txt":     "new a",
		"dir/b.txt": "new b",
	})
	require.NoError(t, os.Symlink(
		filepath.Join(src, "a.txt"),
		filepath.Join(src, "link.txt"),
	))

	files.MustWriteFiles(t, dst, map[string]string{
		"keep.txt": "keep",
	})
	require.NoError(t, os.Symlink(
		filepath.Join(src, "a.txt"),
		filepath.Join(dst, "a.txt"),
	))

	err := files.Copy(files.OS{}, src, dst)
	require.NoError(t, err)

	for name, expected := range map[string]string{
		"a.txt":     "new a",
		"dir/b.txt": "new b",
		"link.txt":  "new a",
		"keep.txt":  "keep",
	} {
		path := filepath.Join(dst, name)
		assert.True(t, files.IsRegular(path), "%s should be a regular file", name)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, expected, string(content))
	}
}

func TestCopySymlinkedDirectory(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "copy")

	files.MustWriteFiles(t, src, map[string]string{
		"real/conf.ini": "conf",
	})
	require.NoError(t, os.Symlink(
		filepath.Join(src, "real"),
		filepath.Join(src, "link"),
	))

	err := files.Copy(files.OS{}, src, dst)
	require.NoError(t, err)

	for _, name := range []string{"real", "link"} {
		info, err := os.Lstat(filepath.Join(dst, name))
		require.NoError(t, err)
		assert.True(t, info.IsDir(), "%s should be a real directory", name)
		assert.True(t, files.IsRegular(filepath.Join(dst, name, "conf.ini")))
	}
}

func TestCopySymlinkedSource(t *testing.T) {
	base := t.TempDir()
	dst := filepath.Join(t.TempDir(), "copy")

	files.MustWriteFiles(t, base, map[string]string{
		"realcfg/a.cfg": "a",
	})
	require.NoError(t, os.Symlink(
		filepath.Join(base, "realcfg"),
		filepath.Join(base, "cfg"),
	))

	err := files.CopyEntry(files.OS{}, filepath.Join(base, "cfg"), dst)
	require.NoError(t, err)

	assert.True(t, files.IsRegular(filepath.Join(dst, "a.cfg")))
}

func TestCopySymlinkLoop(t *testing.T) {
	src := t.TempDir()

	files.MustWriteFiles(t, src, map[string]string{
		"dir/a.txt": "a",
	})
	require.NoError(t, os.Symlink(src, filepath.Join(src, "dir", "up")))

	err := files.Copy(files.OS{}, src, filepath.Join(t.TempDir(), "copy"))
	assert.ErrorIs(t, err, files.ErrSymlinkLoop)
}

func TestCopyIntoLinkedDirectory(t *testing.T) {
	installation := t.TempDir()
	root := t.TempDir()
	src := t.TempDir()

	files.MustWriteFiles(t, installation, map[string]string{
		"realbin/conf.ini":  "original",
		"realbin/other.ini": "other",
	})
	require.NoError(t, os.Symlink(
		filepath.Join(installation, "realbin"),
		filepath.Join(root, "bin"),
	))
	files.MustWriteFiles(t, src, map[string]string{
		"bin/conf.ini": "patched",
	})

	err := files.Copy(files.OS{}, src, root)
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(installation, "realbin", "conf.ini"))
	require.NoError(t, err)
	assert.Equal(t, "original", string(content), "installation must not change")

	content, err = os.ReadFile(filepath.Join(root, "bin", "conf.ini"))
	require.NoError(t, err)
	assert.Equal(t, "patched", string(content))
	assert.True(t, files.IsRegular(filepath.Join(root, "bin", "conf.ini")))
	assert.True(t, files.IsSymlink(filepath.Join(root, "bin", "other.ini")))
}

func TestRealDir(t *testing.T) {
	installation := t.TempDir()
	root := t.TempDir()

	files.MustWriteFiles(t, installation, map[string]string{
		"game/bin/lib.so": "lib",
		"game/readme.txt": "readme",
	})
	require.NoError(t, os.Symlink(
		filepath.Join(installation, "game"),
		filepath.Join(root, "game"),
	))
	files.MustWriteFiles(t, root, map[string]string{
		"file": "in the way",
	})

	w := files.OS{}

	require.NoError(t, files.RealDir(w, root, filepath.Join(root, "game", "bin", "new")))
	require.NoError(t, files.RealDir(w, root, filepath.Join(root, "file", "sub")))

	for _, name := range []string{"game", "game/bin", "game/bin/new", "file/sub"} {
		info, err := os.Lstat(filepath.Join(root, name))
		require.NoError(t, err)
		assert.True(t, info.IsDir(), "%s should be a real directory", name)
	}

	assert.True(t, files.IsSymlink(filepath.Join(root, "game", "readme.txt")))
	assert.True(t, files.IsSymlink(filepath.Join(root, "game", "bin", "lib.so")))
	assert.NoDirExists(t, filepath.Join(installation, "game", "bin", "new"))

	err := files.RealDir(w, root, filepath.Dir(root))
	assert.ErrorIs(t, err, files.ErrOutsideRoot)
}

func TestCopyEntry(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	files.MustWriteFiles(t, src, map[string]string{
		"save.dat": "save",
	})
	require.NoError(t, os.Symlink(
		filepath.Join(src, "save.dat"),
		filepath.Join(dst, "save.dat"),
	))

	err := files.CopyEntry(files.OS{},
		filepath.Join(src, "save.dat"),
		filepath.Join(dst, "save.dat"))
	require.NoError(t, err)

	assert.True(t, files.IsRegular(filepath.Join(dst, "save.dat")))
}

func TestClone(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "clone")

	files.MustWriteFiles(t, src, map[string]string{
		"pfx/system.reg":         "reg",
		"pfx/drive_c/readme.txt": "hi",
	})
	require.NoError(t, os.Symlink("drive_c", filepath.Join(src, "pfx", "c:")))

	err := files.Clone(files.OS{}, src, dst)
	require.NoError(t, err)

	target, err := os.Readlink(filepath.Join(dst, "pfx", "c:"))
	require.NoError(t, err)
	assert.Equal(t, "drive_c", target)

	assert.True(t, files.IsRegular(filepath.Join(dst, "pfx/system.reg")))
	assert.True(t, files.IsRegular(filepath.Join(dst, "pfx/drive_c/readme.txt")))
}

func TestRemove(t *testing.T) {
	dir := t.TempDir()
	files.MustWriteFiles(t, dir, map[string]string{
		"readme.txt": "bye",
	})

	recorder := files.NewRecorder()

	require.NoError(t, files.Remove(recorder, filepath.Join(dir, "readme.txt")))
	require.NoError(t, files.Remove(recorder, filepath.Join(dir, "missing.txt")))

	assert.False(t, files.Exists(filepath.Join(dir, "readme.txt")))
	assert.Equal(t, []files.Op{
		{Name: "remove", Path: filepath.Join(dir, "readme.txt")},
	}, recorder.Ops)
}

func TestPathErrorIs(t *testing.T) {
	//nolint:testifylint
	assert.ErrorIs(t, error(&files.PathError{Err: assert.AnError}), &files.PathError{})
	assert.NotErrorIs(t, assert.AnError, &files.PathError{})
}
