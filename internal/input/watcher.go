// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package input

import (
	"fmt"
	"log/slog"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports device nodes that appear in an input directory.
//
// It does not run a goroutine of its own. [Watcher.Added] drains the pending
// notifications without blocking, so it fits into the polling loop.
type Watcher struct {
	watcher *fsnotify.Watcher
}

// Watch starts watching the given input directory.
func Watch(dir string) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	err = watcher.Add(dir)
	if err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	return &Watcher{watcher: watcher}, nil
}

// Added returns the paths of all device nodes created since the last call.
func (w *Watcher) Added() []string {
	var paths []string

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return paths
			}

			if event.Has(fsnotify.Create) && IsNode(event.Name) {
				paths = append(paths, event.Name)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return paths
			}

			slog.Warn("Input watcher error", slog.Any("error", err))
		default:
			return paths
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close() //nolint:wrapcheck
}
