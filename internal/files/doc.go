// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package files provides the file tree operations used to build sandbox roots
// and compatibility prefixes.
//
// All mutations go through a [Writer], so the tree operations can be run
// against the real file system with [OS] or against a [Recorder] in tests.
// Only regular files, directories and symbolic links are supported.
package files
