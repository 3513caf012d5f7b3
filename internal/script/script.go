// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package script

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

// External tools the script invokes.
const (
	Interpreter    = "/bin/bash"
	SandboxTool    = "bwrap"
	CompositorTool = "gamescope"
)

const fileMode = 0o700

// Env is an environment variable exported in the preamble.
type Env struct {
	Name  string
	Value string
}

// Block starts the instance of a single player.
type Block struct {
	// Player is the index of the player, starting at 0.
	Player  int
	Profile string
	Device  string

	// Delay is waited before the block is started.
	Delay time.Duration

	// Compositor is the nested compositor command including its argument
	// separator.
	Compositor []string

	Mounts []Mount

	// Launcher is the runtime launcher prefix. Empty for native titles.
	Launcher []string

	Exec string
	Args []string

	// Background is true for all but the last block.
	Background bool
}

// Masks returns the device nodes hidden from the instance.
func (b *Block) Masks() []string {
	var masks []string

	for _, mount := range b.Mounts {
		if mount.Kind() == MountMask {
			masks = append(masks, mount.Target())
		}
	}

	return masks
}

// Command returns the full command line of the block.
func (b *Block) Command() ([]string, error) {
	mountArgs, err := BuildMountArgs(b.Mounts)
	if err != nil {
		return nil, fmt.Errorf("player %d: %w", b.Player, err)
	}

	cmd := make([]string, 0, len(b.Compositor)+len(mountArgs)+len(b.Launcher)+len(b.Args)+2)
	cmd = append(cmd, b.Compositor...)
	cmd = append(cmd, SandboxTool)
	cmd = append(cmd, mountArgs...)
	cmd = append(cmd, b.Launcher...)
	cmd = append(cmd, b.Exec)
	cmd = append(cmd, b.Args...)

	return cmd, nil
}

// Script is the launch script of a single run.
type Script struct {
	Env []Env

	// Dir is the working directory of all instances.
	Dir string

	Blocks []Block
}

// Render returns the script text.
func (s *Script) Render() (string, error) {
	var out strings.Builder

	out.WriteString("#!" + Interpreter + "\n")

	for _, env := range s.Env {
		out.WriteString("export " + env.Name + "=" + Quote(env.Value) + "\n")
	}

	if s.Dir != "" {
		out.WriteString("cd " + Quote(s.Dir) + " || exit 1\n")
	}

	for idx := range s.Blocks {
		err := s.Blocks[idx].render(&out)
		if err != nil {
			return "", err
		}
	}

	return out.String(), nil
}

func (b *Block) render(out *strings.Builder) error {
	cmd, err := b.Command()
	if err != nil {
		return err
	}

	compositor := cmd[:len(b.Compositor)]
	sandboxed := cmd[len(b.Compositor)+1:]
	program := sandboxed[len(sandboxed)-len(b.Launcher)-1-len(b.Args):]
	mountArgs := sandboxed[:len(sandboxed)-len(program)]

	if b.Delay > 0 {
		out.WriteString("sleep " + formatSeconds(b.Delay) + "\n")
	}

	fmt.Fprintf(out, "\n# Player %d: %s\n", b.Player+1, b.Profile)

	if len(compositor) > 0 {
		out.WriteString(quoteAll(compositor) + " \\\n\t")
	}

	out.WriteString(SandboxTool + " \\\n")

	for idx := 0; idx < len(mountArgs); {
		n := 3
		if mountArgs[idx] == mountOptions[MountTmpfs] {
			n = 2
		}

		out.WriteString("\t" + quoteAll(mountArgs[idx:idx+n]) + " \\\n")
		idx += n
	}

	out.WriteString("\t" + quoteAll(program))

	if b.Background {
		out.WriteString(" &")
	}

	out.WriteString("\n")

	return nil
}

// Write renders the script into the file at path and makes it executable for
// the owner. The file is replaced if it exists.
func (s *Script) Write(path string) error {
	text, err := s.Render()
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		return fmt.Errorf("create script dir: %w", err)
	}

	err = os.WriteFile(path, []byte(text), fileMode)
	if err != nil {
		return fmt.Errorf("write script: %w", err)
	}

	// WriteFile does not change the mode of existing files.
	err = os.Chmod(path, fileMode)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotExecutable, err)
	}

	// Fails on file systems mounted noexec.
	err = unix.Access(path, unix.X_OK)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotExecutable, err)
	}

	return nil
}

var safeWord = regexp.MustCompile(`^[A-Za-z0-9_@%+=:,./-]+$`)

// Quote returns s as a single shell word.
func Quote(s string) string {
	if safeWord.MatchString(s) {
		return s
	}

	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func quoteAll(words []string) string {
	quoted := make([]string, len(words))
	for idx, word := range words {
		quoted[idx] = Quote(word)
	}

	return strings.Join(quoted, " ")
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}
