// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package script

import (
	"fmt"
	"slices"
)

// NullDevice is bound over masked device nodes.
const NullDevice = "/dev/null"

// MountKind is the kind of a [Mount].
type MountKind int

// Mount kinds.
const (
	// MountBind binds a directory read-write.
	MountBind MountKind = iota
	// MountDevBind binds a directory with device access.
	MountDevBind
	// MountTmpfs mounts a fresh tmpfs.
	MountTmpfs
	// MountMask binds [NullDevice] over a device node.
	MountMask
)

var mountOptions = map[MountKind]string{
	MountBind:    "--bind",
	MountDevBind: "--dev-bind",
	MountTmpfs:   "--tmpfs",
	MountMask:    "--bind",
}

// Mount is a single mount option of the namespace isolation tool.
//
// Targets must be unique in a list of mounts.
type Mount struct {
	kind   MountKind
	source string
	target string
}

// Bind returns a [Mount] that binds source onto target.
func Bind(source, target string) Mount {
	return Mount{kind: MountBind, source: source, target: target}
}

// DevBind returns a [Mount] that binds source onto target with device
// access.
func DevBind(source, target string) Mount {
	return Mount{kind: MountDevBind, source: source, target: target}
}

// Tmpfs returns a [Mount] that mounts a tmpfs at target.
func Tmpfs(target string) Mount {
	return Mount{kind: MountTmpfs, target: target}
}

// Mask returns a [Mount] that hides the device node at path.
func Mask(path string) Mount {
	return Mount{kind: MountMask, source: NullDevice, target: path}
}

// Kind returns the [MountKind].
func (m Mount) Kind() MountKind {
	return m.kind
}

// Source returns the source path. It is empty for [MountTmpfs].
func (m Mount) Source() string {
	return m.source
}

// Target returns the target path.
func (m Mount) Target() string {
	return m.target
}

// Args returns the command line arguments of the [Mount].
func (m Mount) Args() []string {
	args := []string{mountOptions[m.kind]}
	if m.kind != MountTmpfs {
		args = append(args, m.source)
	}

	return append(args, m.target)
}

// String implements [fmt.Stringer].
func (m Mount) String() string {
	return fmt.Sprint(m.Args())
}

// Equal compares the targets of the [Mount]s.
func (m Mount) Equal(other Mount) bool {
	return m.target == other.target
}

// BuildMountArgs compiles the [Mount]s into a slice of strings which can be
// used as arguments of the namespace isolation tool.
//
// It returns an error if any target is used more than once.
func BuildMountArgs(mounts []Mount) ([]string, error) {
	args := make([]string, 0, 3*len(mounts))

	for idx, mount := range mounts {
		if i := slices.IndexFunc(mounts[:idx], mount.Equal); i != -1 {
			return nil, fmt.Errorf(
				"%w: %s, %s",
				ErrMountCollision,
				mount.String(),
				mounts[i].String(),
			)
		}

		args = append(args, mount.Args()...)
	}

	return args, nil
}
