// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package input discovers game controllers and maps their raw evdev events
// to a small set of symbolic navigation actions.
//
// Devices are polled non-blockingly: [Device.Poll] returns at most one
// [Action] per call and [ActionNone] if no event is pending.
package input
