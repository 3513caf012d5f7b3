// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aibor/partyrun/internal/config"
	"github.com/spf13/pflag"
)

const (
	name = "partyrun"

	resolutionMin = 320
	resolutionMax = 7680

	usageMessage = `Usage of 'partyrun':
    partyrun [flags...] command [args...]

Commands:
    list                     list handlers and whether they are usable
    profiles                 list profiles
    profiles create NAME     create a profile
    play TITLE               collect players and launch the title
    erase games              remove all sandbox roots
    erase game TITLE         remove the sandbox root of a title
    erase profiles           remove all profiles
    erase compatdata         remove the compatibility data

All directories can also be set via environment variables, see
PARTYRUN_DATA_DIR, PARTYRUN_ASSETS_DIR and STEAM_BASE_FOLDER.
`
)

// commandArgs is the allowed number of positional arguments per command.
var commandArgs = map[string]struct{ min, max int }{
	"list":     {0, 0},
	"profiles": {0, 2},
	"play":     {1, 1},
	"erase":    {1, 2},
}

type flags struct {
	cfg     *config.Env
	flagSet *pflag.FlagSet

	logFile string
	dryRun  bool
	debug   bool
	verbose bool
	version bool

	command string
	args    []string
}

// newFlags returns flags that write into the given configuration, so flags
// override the values read from the environment.
func newFlags(cfg *config.Env, output io.Writer) *flags {
	flags := &flags{
		cfg: cfg,
	}

	flags.initFlagset(output)

	return flags
}

func (f *flags) initFlagset(output io.Writer) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = f.usage

	fs.StringVar(
		&f.cfg.DataDir,
		"data-dir",
		f.cfg.DataDir,
		"directory for profiles, sandbox roots and compatibility data",
	)

	fs.StringVar(
		&f.cfg.AssetsDir,
		"assets-dir",
		f.cfg.AssetsDir,
		"directory that contains the handlers and data directories",
	)

	fs.StringVar(
		&f.cfg.SteamDir,
		"steam-dir",
		f.cfg.SteamDir,
		"root of the Steam installation",
	)

	fs.Var(
		&limitedUintValue{
			Value: &f.cfg.Width,
			min:   resolutionMin,
			max:   resolutionMax,
		},
		"width",
		"width of each player's compositor",
	)

	fs.Var(
		&limitedUintValue{
			Value: &f.cfg.Height,
			min:   resolutionMin,
			max:   resolutionMax,
		},
		"height",
		"height of each player's compositor",
	)

	fs.StringVar(
		&f.logFile,
		"log-file",
		f.logFile,
		"additionally write the log into this file",
	)

	fs.BoolVar(
		&f.dryRun,
		"dry-run",
		f.dryRun,
		"play: write the launch script but do not run it",
	)

	fs.BoolVar(
		&f.verbose,
		"verbose",
		f.verbose,
		"enable informational output",
	)

	fs.BoolVar(
		&f.debug,
		"debug",
		f.debug,
		"enable debug output",
	)

	fs.BoolVar(
		&f.version,
		"version",
		f.version,
		"show version and exit",
	)

	f.flagSet = fs
}

// ParseArgs parses the arguments without the program name.
func (f *flags) ParseArgs(args []string) error {
	err := f.flagSet.Parse(args)
	if errors.Is(err, ErrHelp) {
		return &ParseArgsError{msg: "help requested", err: err}
	} else if err != nil {
		return f.fail("flag parse", err)
	}

	if f.version {
		return nil
	}

	positionalArgs := f.flagSet.Args()
	if len(positionalArgs) < 1 {
		return f.fail("command", ErrNoCommand)
	}

	f.command = positionalArgs[0]
	f.args = positionalArgs[1:]

	limits, exists := commandArgs[f.command]
	if !exists {
		return f.fail(f.command, ErrUnknownCommand)
	}

	if len(f.args) < limits.min {
		return f.fail(f.command, ErrMissingArgument)
	}

	if len(f.args) > limits.max {
		return f.fail(f.command, ErrTooManyArgs)
	}

	return nil
}

func (f *flags) logLevel() slog.Level {
	switch {
	case f.debug:
		return slog.LevelDebug
	case f.verbose:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}

// fail fails like pflag does. It prints the error first and then usage.
func (f *flags) fail(msg string, err error) error {
	err = &ParseArgsError{msg: msg, err: err}
	fmt.Fprintln(f.flagSet.Output(), err.Error())

	f.flagSet.Usage()

	return err
}

func (f *flags) usage() {
	fmt.Fprint(f.flagSet.Output(), usageMessage)
	fmt.Fprintln(f.flagSet.Output(), "\nFlags:")
	f.flagSet.PrintDefaults()
}
