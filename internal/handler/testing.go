// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import "testing"

// MustValidate validates the handler against the given library and fails
// the test if it is not usable.
func MustValidate(tb testing.TB, h *Handler, library string) *Handler {
	tb.Helper()

	err := h.Check(library)
	if err != nil {
		tb.Fatalf("validate handler: %v", err)
	}

	return h
}
