// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package files

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Exists returns true if anything exists at the given path. Symbolic links
// are not followed.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// IsDir returns true if path exists and is a directory. Symbolic links are
// followed.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func walkDir(src string, fn func(path, rel string, d fs.DirEntry) error) error {
	if !IsDir(src) {
		return &PathError{Op: "walk", Src: src, Err: ErrNotDir}
	}

	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error { //nolint:wrapcheck
		if err != nil {
			return &PathError{Op: "walk", Src: path, Err: err}
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return &PathError{Op: "walk", Src: path, Err: err}
		}

		return fn(path, rel, d)
	})
}

// Mirror re-creates the directory tree of src at dst.
//
// Directories are created as real directories. Every other entry becomes a
// symbolic link to its absolute source path. Symbolic links to directories
// are not descended into, they are linked like files.
func Mirror(w Writer, src, dst string) error {
	src, err := filepath.Abs(src)
	if err != nil {
		return &PathError{Op: "mirror", Src: src, Err: err}
	}

	return walkDir(src, func(path, rel string, d fs.DirEntry) error {
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return mkdir(w, target)
		}

		err := w.Symlink(path, target)
		if err != nil {
			return &PathError{Op: "symlink", Src: path, Dst: target, Err: err}
		}

		return nil
	})
}

// Copy copies the directory tree of src into dst.
//
// Existing files in dst are replaced, existing directories are merged.
// Symbolic links in src are followed, so dst only contains real files and
// directories. Symbolic links to directories in dst are replaced by real
// directories before anything is written below them, see [SplitLink].
func Copy(w Writer, src, dst string) error {
	return copyTree(w, src, dst, map[string]bool{})
}

func copyTree(w Writer, src, dst string, visited map[string]bool) error {
	resolved, err := filepath.EvalSymlinks(src)
	if err != nil {
		return &PathError{Op: "resolve", Src: src, Err: err}
	}

	if visited[resolved] {
		return &PathError{Op: "copy", Src: src, Dst: dst, Err: ErrSymlinkLoop}
	}

	visited[resolved] = true
	defer delete(visited, resolved)

	return walkDir(resolved, func(path, rel string, d fs.DirEntry) error {
		target := filepath.Join(dst, rel)

		switch {
		case d.IsDir():
			return realDir(w, target)
		case d.Type()&fs.ModeSymlink != 0 && IsDir(path):
			return copyTree(w, path, target, visited)
		default:
			return ReplaceFile(w, path, target)
		}
	})
}

// CopyEntry copies src to dst, regardless if src is a file or a directory.
// An existing dst file or symbolic link is replaced.
func CopyEntry(w Writer, src, dst string) error {
	if IsDir(src) {
		return Copy(w, src, dst)
	}

	return ReplaceFile(w, src, dst)
}

// ReplaceFile removes anything at dst and copies the file src to it.
func ReplaceFile(w Writer, src, dst string) error {
	err := w.RemoveAll(dst)
	if err != nil {
		return &PathError{Op: "remove", Src: dst, Err: err}
	}

	err = w.CopyFile(src, dst)
	if err != nil {
		return &PathError{Op: "copy", Src: src, Dst: dst, Err: err}
	}

	return nil
}

// Clone copies the directory tree of src to dst while preserving symbolic
// links as they are.
func Clone(w Writer, src, dst string) error {
	return walkDir(src, func(path, rel string, d fs.DirEntry) error {
		target := filepath.Join(dst, rel)

		switch {
		case d.IsDir():
			return mkdir(w, target)
		case d.Type()&fs.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return &PathError{Op: "readlink", Src: path, Err: err}
			}

			err = w.Symlink(link, target)
			if err != nil {
				return &PathError{Op: "symlink", Src: link, Dst: target, Err: err}
			}

			return nil
		case d.Type().IsRegular():
			err := w.CopyFile(path, target)
			if err != nil {
				return &PathError{Op: "copy", Src: path, Dst: target, Err: err}
			}

			return nil
		default:
			return &PathError{Op: "clone", Src: path, Err: ErrUnsupportedType}
		}
	})
}

// Remove removes path if it exists.
func Remove(w Writer, path string) error {
	if !Exists(path) {
		return nil
	}

	err := w.RemoveAll(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &PathError{Op: "remove", Src: path, Err: err}
	}

	return nil
}

func mkdir(w Writer, path string) error {
	err := w.MkdirAll(path)
	if err != nil {
		return &PathError{Op: "mkdir", Src: path, Err: err}
	}

	return nil
}

// RealDir makes sure dir and all its parents up to root are real
// directories. Missing directories are created. Symbolic links to
// directories are split with [SplitLink], anything else in the way is
// removed. Nothing outside of root is modified.
func RealDir(w Writer, root, dir string) error {
	rel, err := filepath.Rel(root, dir)
	if err != nil || (rel != "." && !filepath.IsLocal(rel)) {
		return &PathError{Op: "realdir", Src: dir, Err: ErrOutsideRoot}
	}

	current := root

	for _, name := range strings.Split(rel, string(filepath.Separator)) {
		current = filepath.Join(current, name)

		err := realDir(w, current)
		if err != nil {
			return err
		}
	}

	return nil
}

func realDir(w Writer, path string) error {
	info, err := os.Lstat(path)

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return mkdir(w, path)
	case err != nil:
		return &PathError{Op: "stat", Src: path, Err: err}
	case info.IsDir():
		return nil
	case info.Mode()&fs.ModeSymlink != 0 && IsDir(path):
		return SplitLink(w, path)
	default:
		err := w.RemoveAll(path)
		if err != nil {
			return &PathError{Op: "remove", Src: path, Err: err}
		}

		return mkdir(w, path)
	}
}

// SplitLink replaces the symbolic link to a directory at path by a real
// directory. Every entry of the linked directory is linked into it, so the
// content stays the same. Entries that are directories are linked as well.
// The linked directory is not modified.
func SplitLink(w Writer, path string) error {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return &PathError{Op: "resolve", Src: path, Err: err}
	}

	entries, err := os.ReadDir(target)
	if err != nil {
		return &PathError{Op: "readdir", Src: target, Err: err}
	}

	err = w.RemoveAll(path)
	if err != nil {
		return &PathError{Op: "remove", Src: path, Err: err}
	}

	err = mkdir(w, path)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		src := filepath.Join(target, entry.Name())
		link := filepath.Join(path, entry.Name())

		err := w.Symlink(src, link)
		if err != nil {
			return &PathError{Op: "symlink", Src: src, Dst: link, Err: err}
		}
	}

	return nil
}
