// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package files

import (
	"os"
	"path/filepath"
	"testing"
)

// Op is a single mutation recorded by a [Recorder].
type Op struct {
	Name string
	Path string
}

// Recorder is a [Writer] that records all mutations before passing them to
// the wrapped [Writer].
type Recorder struct {
	Writer Writer
	Ops    []Op
}

var _ Writer = (*Recorder)(nil)

// NewRecorder returns a [Recorder] that passes all mutations to [OS].
func NewRecorder() *Recorder {
	return &Recorder{Writer: OS{}}
}

func (r *Recorder) record(name, path string) {
	r.Ops = append(r.Ops, Op{Name: name, Path: path})
}

// MkdirAll implements [Writer].
func (r *Recorder) MkdirAll(path string) error {
	r.record("mkdir", path)
	return r.Writer.MkdirAll(path)
}

// Symlink implements [Writer].
func (r *Recorder) Symlink(target, link string) error {
	r.record("symlink", link)
	return r.Writer.Symlink(target, link)
}

// CopyFile implements [Writer].
func (r *Recorder) CopyFile(src, dst string) error {
	r.record("copy", dst)
	return r.Writer.CopyFile(src, dst)
}

// WriteFile implements [Writer].
func (r *Recorder) WriteFile(name string, data []byte) error {
	r.record("write", name)
	return r.Writer.WriteFile(name, data)
}

// RemoveAll implements [Writer].
func (r *Recorder) RemoveAll(path string) error {
	r.record("remove", path)
	return r.Writer.RemoveAll(path)
}

// MustWriteFiles creates the given files relative to dir. Map values are the
// file contents. Parent directories are created as needed.
func MustWriteFiles(tb testing.TB, dir string, files map[string]string) {
	tb.Helper()

	for name, content := range files {
		path := filepath.Join(dir, name)

		err := os.MkdirAll(filepath.Dir(path), dirMode)
		if err != nil {
			tb.Fatalf("mkdir %s: %v", path, err)
		}

		err = os.WriteFile(path, []byte(content), fileMode)
		if err != nil {
			tb.Fatalf("write %s: %v", path, err)
		}
	}
}

// IsSymlink returns true if path is a symbolic link.
func IsSymlink(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.Mode()&os.ModeSymlink != 0
}

// IsRegular returns true if path is a regular file. Symbolic links are not
// followed.
func IsRegular(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.Mode().IsRegular()
}
