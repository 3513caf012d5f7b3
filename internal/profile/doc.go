// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package profile manages the persistent per user save areas.
//
// A profile is a directory below the profiles directory. Its existence is the
// only source of truth for the existence of the profile. Besides the
// isolation directories bound into the player sandboxes, it holds the
// settings files read by the online service shim.
//
// Guest profiles are taken from a fixed pool of names. They are removed at the
// start of each session and recreated for the players that use them, so no
// guest identity survives a session.
package profile
