// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package profile

import "path/filepath"

// Dir is the directory of a single profile.
type Dir string

// Save is bound onto the save directory of the online service shim.
func (d Dir) Save() string {
	return filepath.Join(string(d), "steam")
}

// Settings holds the settings files of the online service shim.
func (d Dir) Settings() string {
	return filepath.Join(d.Save(), "settings")
}

// AppData is bound onto the Windows application data directory.
func (d Dir) AppData() string {
	return filepath.Join(string(d), "windata", "AppData")
}

// Documents is bound onto the Windows documents directory.
func (d Dir) Documents() string {
	return filepath.Join(string(d), "windata", "Documents")
}

// LocalShare is bound onto the Linux XDG data directory.
func (d Dir) LocalShare() string {
	return filepath.Join(string(d), "share")
}

// Unique is the per title directory bound onto path in the sandbox root.
func (d Dir) Unique(titleID, path string) string {
	return filepath.Join(string(d), titleID, path)
}
