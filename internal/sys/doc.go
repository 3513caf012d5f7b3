// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package sys runs external programs partyrun depends on, like the shim
// interface discovery script, the Wine registry editor, the compositor
// scripting client and the generated launch script itself.
package sys
