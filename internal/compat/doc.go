// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package compat prepares the compatibility layer prefix shared by all
// titles that run with Proton.
package compat
