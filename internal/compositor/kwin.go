// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package compositor

import (
	"context"
	"log/slog"

	"github.com/aibor/partyrun/internal/sys"
)

const (
	qdbus     = "qdbus"
	service   = "org.kde.KWin"
	object    = "/Scripting"
	iface     = "org.kde.kwin.Scripting."
	pluginTag = "splitscreen"
)

// KWin manages the tiling script in KWin via its D-Bus scripting interface.
type KWin struct {
	// Script is the path of the tiling script.
	Script string

	Run sys.RunFunc
}

// NewKWin returns a [KWin] for the given script that runs real programs.
func NewKWin(script string) *KWin {
	return &KWin{Script: script, Run: sys.Run}
}

func (k *KWin) call(ctx context.Context, method string, args ...string) bool {
	err := k.Run(ctx, sys.Command{
		Name: qdbus,
		Args: append([]string{service, object, iface + method}, args...),
	})
	if err != nil {
		slog.Warn("Compositor call failed",
			slog.String("method", method),
			slog.Any("error", err))

		return false
	}

	return true
}

// Load loads and starts the tiling script.
func (k *KWin) Load(ctx context.Context) {
	if !k.call(ctx, "loadScript", k.Script, pluginTag) {
		return
	}

	k.call(ctx, "start")
}

// Unload unloads the tiling script.
func (k *KWin) Unload(ctx context.Context) {
	k.call(ctx, "unloadScript", pluginTag)
}
