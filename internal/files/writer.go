// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package files

import (
	"fmt"
	"io"
	"os"
)

const (
	dirMode  = 0o755
	fileMode = 0o644
)

// Writer defines the file system mutations required by the tree operations.
type Writer interface {
	MkdirAll(path string) error
	Symlink(target, link string) error
	CopyFile(src, dst string) error
	WriteFile(name string, data []byte) error
	RemoveAll(path string) error
}

var _ Writer = OS{}

// OS is a [Writer] that operates on the real file system.
type OS struct{}

// MkdirAll creates the directory with all its parents.
func (OS) MkdirAll(path string) error {
	return os.MkdirAll(path, dirMode) //nolint:wrapcheck
}

// Symlink creates link pointing to target.
func (OS) Symlink(target, link string) error {
	return os.Symlink(target, link) //nolint:wrapcheck
}

// CopyFile copies the content of src into a new file dst. Symbolic links are
// followed. The permission bits of src are preserved.
func (OS) CopyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err //nolint:wrapcheck
	}
	defer srcFile.Close()

	info, err := srcFile.Stat()
	if err != nil {
		return err //nolint:wrapcheck
	}

	dstFile, err := os.OpenFile(
		dst,
		os.O_WRONLY|os.O_CREATE|os.O_EXCL,
		info.Mode().Perm(),
	)
	if err != nil {
		return err //nolint:wrapcheck
	}

	_, err = io.Copy(dstFile, srcFile)
	if err != nil {
		_ = dstFile.Close()
		return fmt.Errorf("copy: %w", err)
	}

	return dstFile.Close() //nolint:wrapcheck
}

// WriteFile writes data to the named file, replacing any existing content.
func (OS) WriteFile(name string, data []byte) error {
	return os.WriteFile(name, data, fileMode) //nolint:wrapcheck
}

// RemoveAll removes path and any children. It returns nil if path does not
// exist.
func (OS) RemoveAll(path string) error {
	return os.RemoveAll(path) //nolint:wrapcheck
}
