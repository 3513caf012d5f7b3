// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package compat

import "errors"

// ErrNoTemplate is returned if the reference prefix does not exist.
var ErrNoTemplate = errors.New("compatibility data template not found")
