// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package compat

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aibor/partyrun/internal/config"
	"github.com/aibor/partyrun/internal/files"
	"github.com/aibor/partyrun/internal/handler"
	"github.com/aibor/partyrun/internal/sys"
)

// DefaultSettleDelay is the time waited after patching the prefix.
const DefaultSettleDelay = 5 * time.Second

// Registry patch that disables raw HID access of the Wine bus driver.
var registryPatch = []string{
	"reg", "add",
	`HKEY_LOCAL_MACHINE\System\CurrentControlSet\Services\winebus`,
	"/v", "DisableHidraw",
	"/t", "REG_DWORD",
	"/d", "1",
}

// Manager creates the compatibility data directory of its layout.
type Manager struct {
	Layout config.Layout

	// Writer performs all mutations.
	Writer files.Writer

	// Run runs the registry patch.
	Run sys.RunFunc

	// SettleDelay is waited after the registry patch.
	SettleDelay time.Duration
}

// NewManager returns a [Manager] that works on the real file system and runs
// real programs.
func NewManager(layout config.Layout, settleDelay time.Duration) *Manager {
	return &Manager{
		Layout:      layout,
		Writer:      files.OS{},
		Run:         sys.Run,
		SettleDelay: settleDelay,
	}
}

// Ensure creates the compatibility data directory for the given validated
// handler if its runtime needs one and it does not exist yet.
//
// The prefix is cloned from Steam's prefix of the title and patched once.
// The settle delay after the patch is cut short if ctx is done, which is not
// an error.
func (m *Manager) Ensure(ctx context.Context, h *handler.Handler) error {
	if !h.Runtime.NeedsCompatData() {
		return nil
	}

	if !h.Validated() {
		return handler.ErrNotValidated
	}

	dest := m.Layout.CompatData()
	if files.Exists(dest) {
		slog.Debug("Compatibility data exists", slog.String("path", dest))
		return nil
	}

	src := m.Layout.CompatDataTemplate(h.SteamAppID)
	if !files.IsDir(src) {
		return fmt.Errorf("%w: %s", ErrNoTemplate, src)
	}

	slog.Info("Create compatibility data",
		slog.String("template", src),
		slog.String("path", dest))

	err := files.Clone(m.Writer, src, dest)
	if err != nil {
		return fmt.Errorf("clone compatibility data: %w", err)
	}

	err = m.Run(ctx, sys.Command{
		Name: "wine",
		Args: registryPatch,
		Env:  []string{"WINEPREFIX=" + m.Layout.CompatPrefix()},
	})
	if err != nil {
		return fmt.Errorf("patch registry: %w", err)
	}

	m.settle(ctx)

	return nil
}

func (m *Manager) settle(ctx context.Context) {
	if m.SettleDelay <= 0 {
		return
	}

	slog.Debug("Wait for prefix to settle", slog.Duration("delay", m.SettleDelay))

	timer := time.NewTimer(m.SettleDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// Erase removes the compatibility data directory.
func (m *Manager) Erase() error {
	err := files.Remove(m.Writer, m.Layout.CompatData())
	if err != nil {
		return fmt.Errorf("erase compatibility data: %w", err)
	}

	return nil
}
