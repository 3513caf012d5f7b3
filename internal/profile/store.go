// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package profile

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"

	"github.com/aibor/partyrun/internal/files"
	"github.com/aibor/partyrun/internal/handler"
)

// Guest is the name shown for the guest choice in the visible profile list.
const Guest = "Guest"

const (
	language   = "english"
	listenPort = "47584"

	// Exclusive upper bound of the 17 digit user id.
	userIDLimit = 100_000_000_000_000_000
)

var guestNames = []string{
	"Player1",
	"Player2",
	"Player3",
	"Player4",
	"Player5",
	"Player6",
}

// GuestNames returns the names of the guest pool in order.
func GuestNames() []string {
	return slices.Clone(guestNames)
}

// GuestName returns the guest profile name for the player with the given
// index.
func GuestName(idx int) (string, error) {
	if idx < 0 || idx >= len(guestNames) {
		return "", fmt.Errorf("%w: player %d", ErrNoGuestName, idx)
	}

	return guestNames[idx], nil
}

// IsGuest returns true if name is the guest choice or from the guest pool.
func IsGuest(name string) bool {
	return name == Guest || slices.Contains(guestNames, name)
}

// Store manages the profiles below a profiles directory.
type Store struct {
	// Dir is the profiles directory.
	Dir string

	// Writer performs all mutations.
	Writer files.Writer

	// UserID generates the pseudo user id of new profiles. Defaults to a
	// random 17 digit number.
	UserID func() uint64
}

// NewStore returns a [Store] for the given directory that writes to the real
// file system.
func NewStore(dir string) *Store {
	return &Store{
		Dir:    dir,
		Writer: files.OS{},
	}
}

// Path returns the [Dir] of the named profile. It does not check existence.
func (s *Store) Path(name string) Dir {
	return Dir(filepath.Join(s.Dir, name))
}

// Exists returns true if the named profile exists.
func (s *Store) Exists(name string) bool {
	return files.IsDir(string(s.Path(name)))
}

// Create creates a new profile with the given name.
func (s *Store) Create(name string) (Dir, error) {
	if !ValidName(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	if s.Exists(name) {
		return "", fmt.Errorf("%w: %s", ErrExists, name)
	}

	return s.create(name)
}

// Ensure creates the named profile if it does not exist yet.
func (s *Store) Ensure(name string) (Dir, error) {
	if !handler.IsAlnum(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	if s.Exists(name) {
		return s.Path(name), nil
	}

	return s.create(name)
}

func (s *Store) create(name string) (Dir, error) {
	dir := s.Path(name)

	for _, path := range []string{
		dir.Documents(),
		dir.AppData(),
		dir.LocalShare(),
		dir.Settings(),
	} {
		err := s.Writer.MkdirAll(path)
		if err != nil {
			return "", fmt.Errorf("create profile %s: %w", name, err)
		}
	}

	settings := map[string]string{
		"account_name.txt": name,
		"language.txt":     language,
		"listen_port.txt":  listenPort,
		"user_steam_id.txt": fmt.Sprintf("%017d",
			s.userID()%userIDLimit),
	}

	for file, content := range settings {
		path := filepath.Join(dir.Settings(), file)

		err := s.Writer.WriteFile(path, []byte(content))
		if err != nil {
			return "", fmt.Errorf("create profile %s: %w", name, err)
		}
	}

	slog.Info("Created profile", slog.String("profile", name))

	return dir, nil
}

func (s *Store) userID() uint64 {
	if s.UserID != nil {
		return s.UserID()
	}

	return rand.Uint64N(userIDLimit) //nolint:gosec
}

// List returns the names of all non-guest profiles sorted. If includeGuest
// is true, [Guest] is prepended, so the result is the visible profile list
// in which the guest has choice 0.
func (s *Store) List(includeGuest bool) ([]string, error) {
	names := []string{}
	if includeGuest {
		names = append(names, Guest)
	}

	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return names, nil
		}

		return nil, fmt.Errorf("list profiles: %w", err)
	}

	found := make([]string, 0, len(entries))

	for _, entry := range entries {
		if !entry.IsDir() || IsGuest(entry.Name()) {
			continue
		}

		found = append(found, entry.Name())
	}

	slices.Sort(found)

	return append(names, found...), nil
}

// RemoveGuests removes all profiles of the guest pool.
func (s *Store) RemoveGuests() error {
	for _, name := range guestNames {
		err := files.Remove(s.Writer, string(s.Path(name)))
		if err != nil {
			return fmt.Errorf("remove guest profile: %w", err)
		}
	}

	return nil
}

// RemoveAll removes all profiles.
func (s *Store) RemoveAll() error {
	err := files.Remove(s.Writer, s.Dir)
	if err != nil {
		return fmt.Errorf("remove profiles: %w", err)
	}

	return nil
}

// EnsureUniqueDirs creates the per title directories of the named profile for
// all unique paths of the given handler.
func (s *Store) EnsureUniqueDirs(name string, h *handler.Handler) error {
	dir := s.Path(name)

	for _, path := range h.UniquePaths {
		err := s.Writer.MkdirAll(dir.Unique(h.ID, path))
		if err != nil {
			return fmt.Errorf("create unique dir %s for %s: %w", path, name, err)
		}
	}

	return nil
}

// ValidName returns true if name can be used for a new user profile. Names
// must be alphanumeric and must not collide with the guest names.
func ValidName(name string) bool {
	return handler.IsAlnum(name) && !IsGuest(name)
}
