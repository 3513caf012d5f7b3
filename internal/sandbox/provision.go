// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sandbox

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"

	"github.com/aibor/partyrun/internal/config"
	"github.com/aibor/partyrun/internal/files"
	"github.com/aibor/partyrun/internal/handler"
	"github.com/aibor/partyrun/internal/sys"
)

// Files generated in the shim directory.
const (
	SaveMarkerFile = "local_save.txt"
	AppIDFile      = "steam_appid.txt"
	InterfacesFile = "steam_interfaces.txt"

	// SaveDir is the shim's save directory the profile save area is bound
	// onto.
	SaveDir = "goldbergsave"
)

// Provisioner builds sandbox roots below the games directory of its layout.
type Provisioner struct {
	Layout config.Layout

	// Writer performs all mutations.
	Writer files.Writer

	// Run runs the interface discovery script.
	Run sys.RunFunc
}

// NewProvisioner returns a [Provisioner] that works on the real file system
// and runs real programs.
func NewProvisioner(layout config.Layout) *Provisioner {
	return &Provisioner{
		Layout: layout,
		Writer: files.OS{},
		Run:    sys.Run,
	}
}

// Provision builds the sandbox root of the given validated handler.
//
// If the sandbox root exists already, nothing is done. Its content is not
// checked. A failed provisioning leaves a partial sandbox root behind that
// must be removed with [Provisioner.Erase] before retrying.
func (p *Provisioner) Provision(ctx context.Context, h *handler.Handler) error {
	if !h.Validated() {
		return &StepError{Title: h.ID, Step: StepMirror, Err: handler.ErrNotValidated}
	}

	root := p.Layout.SandboxRoot(h.ID)
	if files.Exists(root) {
		slog.Debug("Sandbox root exists", slog.String("path", root))
		return nil
	}

	slog.Info("Provision sandbox root",
		slog.String("title", h.ID),
		slog.String("path", root))

	steps := []struct {
		name string
		fn   func() error
	}{
		{StepMirror, func() error { return files.Mirror(p.Writer, h.Root(), root) }},
		{StepShim, func() error { return p.injectShim(h, root) }},
		{StepInterfaces, func() error { return p.discoverInterfaces(ctx, h, root) }},
		{StepCopy, func() error { return p.copyPaths(h, root) }},
		{StepRemove, func() error { return p.removePaths(h, root) }},
		{StepSupplement, func() error { return p.supplement(h, root) }},
	}

	for _, step := range steps {
		err := step.fn()
		if err != nil {
			return &StepError{Title: h.ID, Step: step.name, Err: err}
		}
	}

	return nil
}

func (p *Provisioner) injectShim(h *handler.Handler, root string) error {
	if h.ShimPath == "" {
		return nil
	}

	dir := filepath.Join(root, h.ShimPath)

	err := files.RealDir(p.Writer, root, dir)
	if err != nil {
		return err //nolint:wrapcheck
	}

	err = files.Copy(p.Writer, p.Layout.ShimDir(h.Is32Bit), dir)
	if err != nil {
		return err //nolint:wrapcheck
	}

	err = p.writeFile(root, filepath.Join(dir, SaveMarkerFile), []byte(SaveDir+"\n"))
	if err != nil {
		return err
	}

	return p.writeFile(root, filepath.Join(dir, AppIDFile), []byte(h.SteamAppID))
}

func (p *Provisioner) discoverInterfaces(ctx context.Context, h *handler.Handler, root string) error {
	if h.ShimPath == "" {
		return nil
	}

	var stdout bytes.Buffer

	err := p.Run(ctx, sys.Command{
		Name:   p.Layout.FindInterfacesScript(),
		Args:   []string{filepath.Join(h.Root(), h.ShimPath, h.ShimLibrary())},
		Stdout: &stdout,
	})
	if err != nil {
		return err //nolint:wrapcheck
	}

	return p.writeFile(root, filepath.Join(root, h.ShimPath, InterfacesFile), stdout.Bytes())
}

func (p *Provisioner) copyPaths(h *handler.Handler, root string) error {
	for _, path := range h.CopyPaths {
		src := filepath.Join(h.Root(), path)
		if !files.Exists(src) {
			slog.Debug("Skip missing copy path", slog.String("path", src))
			continue
		}

		dst := filepath.Join(root, path)

		err := files.RealDir(p.Writer, root, filepath.Dir(dst))
		if err != nil {
			return err //nolint:wrapcheck
		}

		err = files.CopyEntry(p.Writer, src, dst)
		if err != nil {
			return err //nolint:wrapcheck
		}
	}

	return nil
}

func (p *Provisioner) removePaths(h *handler.Handler, root string) error {
	for _, path := range h.RemovePaths {
		dst := filepath.Join(root, path)
		if !files.Exists(dst) {
			continue
		}

		err := files.RealDir(p.Writer, root, filepath.Dir(dst))
		if err != nil {
			return err //nolint:wrapcheck
		}

		err = files.Remove(p.Writer, dst)
		if err != nil {
			return err //nolint:wrapcheck
		}
	}

	return nil
}

func (p *Provisioner) supplement(h *handler.Handler, root string) error {
	dir := p.Layout.SupplementDir(h.ID)
	if !files.IsDir(dir) {
		return nil
	}

	slog.Debug("Copy supplemental files", slog.String("path", dir))

	return files.Copy(p.Writer, dir, root) //nolint:wrapcheck
}

// writeFile replaces anything at path, so a mirrored symbolic link is never
// written through into the installation root.
func (p *Provisioner) writeFile(root, path string, data []byte) error {
	err := files.RealDir(p.Writer, root, filepath.Dir(path))
	if err != nil {
		return err //nolint:wrapcheck
	}

	err = files.Remove(p.Writer, path)
	if err != nil {
		return err //nolint:wrapcheck
	}

	err = p.Writer.WriteFile(path, data)
	if err != nil {
		return &files.PathError{Op: "write", Src: path, Err: err}
	}

	return nil
}

// Erase removes the sandbox root of the given title.
func (p *Provisioner) Erase(titleID string) error {
	if !handler.IsAlnum(titleID) {
		return &StepError{Title: titleID, Step: StepErase, Err: handler.ErrInvalidIdentifier}
	}

	err := files.Remove(p.Writer, p.Layout.SandboxRoot(titleID))
	if err != nil {
		return &StepError{Title: titleID, Step: StepErase, Err: err}
	}

	return nil
}

// EraseAll removes all sandbox roots.
func (p *Provisioner) EraseAll() error {
	err := files.Remove(p.Writer, p.Layout.GamesDir())
	if err != nil {
		return &StepError{Title: "all", Step: StepErase, Err: err}
	}

	return nil
}
