// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/aibor/partyrun/internal/files"
)

// ProfileNameToken is replaced by the profile name of each player in the
// launch arguments.
const ProfileNameToken = "$PROFILENAME"

// Handler is a single title record.
//
// All fields are optional in the record. Whether a handler is usable is
// decided by [Handler.Validate], which also resolves the installation root.
type Handler struct {
	// ID is the name of the handler directory.
	ID string `json:"-"`

	// Dir is the handler directory.
	Dir string `json:"-"`

	// DisplayName overrides the identifier in listings.
	DisplayName string `json:"fancyname"`

	// SteamAppDir is the installation directory name in the games library.
	SteamAppDir string `json:"steam_appdir"`

	// SteamAppID is the numeric application id.
	SteamAppID string `json:"steam_appid"`

	// Exec is the executable path relative to the installation root.
	Exec string `json:"exec"`

	Runtime Runtime `json:"runtime"`

	// ShimPath is the directory relative to the installation root the shim
	// bundle is injected into. Empty disables shim injection.
	ShimPath string `json:"path_goldberg"`

	// Args is the launch argument template. [ProfileNameToken] is replaced
	// per player.
	Args []string `json:"args"`

	// UniquePaths are bound fresh per profile on every run.
	UniquePaths []string `json:"game_unique_paths"`

	// CopyPaths must be real files in the sandbox root.
	CopyPaths []string `json:"copy_paths"`

	// RemovePaths must not exist in the sandbox root.
	RemovePaths []string `json:"remove_paths"`

	Is32Bit               bool `json:"is_32bit"`
	WinUniqueAppData      bool `json:"win_unique_appdata"`
	WinUniqueDocuments    bool `json:"win_unique_documents"`
	LinuxUniqueLocalShare bool `json:"linux_unique_localshare"`

	root string
}

// Name returns the display name if set, the identifier otherwise.
func (h *Handler) Name() string {
	if h.DisplayName != "" {
		return h.DisplayName
	}

	return h.ID
}

// Root returns the installation root resolved by [Handler.Validate]. It is
// empty for handlers that did not pass validation.
func (h *Handler) Root() string {
	return h.root
}

// Validated returns true if the handler passed [Handler.Validate].
func (h *Handler) Validated() bool {
	return h.root != ""
}

// Validate checks the usability invariants of the handler and resolves its
// installation root in the given games library.
//
// It returns false if any invariant is violated. The reason is logged. Use
// [Handler.Check] to get the reason as error.
func (h *Handler) Validate(library string) bool {
	err := h.Check(library)
	if err != nil {
		slog.Warn("Handler not usable",
			slog.String("handler", h.ID),
			slog.Any("error", err))

		return false
	}

	return true
}

// Check is like [Handler.Validate] but returns a [ValidationError] with the
// reason instead of false.
//
// On success the installation root is set. On failure it is reset.
func (h *Handler) Check(library string) error {
	h.root = ""

	root, err := h.check(library)
	if err != nil {
		return &ValidationError{Handler: h.ID, Err: err}
	}

	h.root = root

	return nil
}

func (h *Handler) check(library string) (string, error) {
	if !IsAlnum(h.ID) {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, h.ID)
	}

	if h.SteamAppDir == "" || library == "" {
		return "", fmt.Errorf("%w: no installation directory", ErrNoInstallRoot)
	}

	root := filepath.Join(library, h.SteamAppDir)
	if filepath.Dir(root) != filepath.Clean(library) {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, h.SteamAppDir)
	}

	if !files.IsDir(root) {
		return "", fmt.Errorf("%w: %s", ErrNoInstallRoot, root)
	}

	if h.Exec == "" {
		return "", ErrNoExecutable
	}

	if h.Runtime.NeedsCompatData() && !IsNumeric(h.SteamAppID) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAppID, h.SteamAppID)
	}

	paths := []string{h.Exec}
	if h.ShimPath != "" {
		paths = append(paths, h.ShimPath)
	}

	paths = append(paths, h.UniquePaths...)
	paths = append(paths, h.CopyPaths...)
	paths = append(paths, h.RemovePaths...)

	for _, path := range paths {
		if !isLocal(path) {
			return "", fmt.Errorf("%w: %s", ErrInvalidPath, path)
		}
	}

	return root, nil
}

// LaunchArgs returns the argument template with [ProfileNameToken]
// substituted by the given profile name.
func (h *Handler) LaunchArgs(profile string) []string {
	args := make([]string, len(h.Args))
	for idx, arg := range h.Args {
		if arg == ProfileNameToken {
			arg = profile
		}

		args[idx] = arg
	}

	return args
}

// ShimLibrary returns the name of the native online service library the
// shim replaces, depending on runtime and bit width.
func (h *Handler) ShimLibrary() string {
	switch {
	case !h.Runtime.Windows():
		return "libsteam_api.so"
	case h.Is32Bit:
		return "steam_api.dll"
	default:
		return "steam_api64.dll"
	}
}

// IsAlnum returns true if s is not empty and consists of ASCII letters and
// digits only.
func IsAlnum(s string) bool {
	if s == "" {
		return false
	}

	for _, c := range s {
		if !isDigit(c) && (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}

	return true
}

// IsNumeric returns true if s is not empty and consists of ASCII digits only.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}

	for _, c := range s {
		if !isDigit(c) {
			return false
		}
	}

	return true
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

// isLocal returns true if path is a proper descendant of the directory it is
// relative to.
func isLocal(path string) bool {
	return filepath.IsLocal(path) &&
		filepath.Clean(path) != "." &&
		!strings.ContainsRune(path, 0)
}
