// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	"github.com/aibor/partyrun/internal/config"
	"github.com/aibor/partyrun/internal/party"
)

// IO provides input and output details for the command.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func handleParseArgsError(err error) int {
	// [ErrHelp] is returned when help is requested. So exit without error
	// in this case.
	if errors.Is(err, ErrHelp) {
		return 0
	}

	// ParseArgs already prints errors, so we just exit without an error.
	if !errors.Is(err, &ParseArgsError{}) {
		slog.Error(err.Error())
	}

	return -1
}

func handleRunError(err error, titleID string, stderr io.Writer) int {
	if err == nil {
		return 0
	}

	exitCode := -1

	var launchErr *party.LaunchError
	if errors.As(err, &launchErr) && launchErr.ExitCode != 0 {
		exitCode = launchErr.ExitCode
	}

	fmt.Fprintf(stderr, "Error [%s]: %v\n", name, err)

	hint := party.EraseHint(err, titleID)
	if hint != "" {
		fmt.Fprintf(stderr,
			"Partial state is left on disk. Run '%s %s' before retrying.\n",
			name, hint)
	}

	return exitCode
}

// Run is the main entry point for the CLI command.
func Run(ctx context.Context, args []string, cfg IO) int {
	env, err := config.ParseEnv()
	if err != nil {
		fmt.Fprintf(cfg.Stderr, "Error [%s]: %v\n", name, err)
		return -1
	}

	flags := newFlags(&env, cfg.Stderr)

	if len(args) > 0 {
		args = args[1:]
	}

	err = flags.ParseArgs(args)
	if err != nil {
		return handleParseArgsError(err)
	}

	if flags.version {
		return printVersion(cfg.Stdout)
	}

	writer, closeLog, err := logWriter(cfg.Stderr, flags.logFile)
	if err != nil {
		fmt.Fprintf(cfg.Stderr, "Error [%s]: %v\n", name, err)
		return -1
	}
	defer closeLog()

	setupLogging(writer, flags.logLevel())

	slog.Debug("Configuration",
		slog.String("data_dir", env.DataDir),
		slog.String("assets_dir", env.AssetsDir),
		slog.String("steam_dir", env.SteamDir))

	app := &app{
		session:  party.NewSession(env),
		inputDir: env.InputDir,
		stdout:   cfg.Stdout,
		dryRun:   flags.dryRun,
	}

	err = app.run(ctx, flags.command, flags.args)

	return handleRunError(err, app.titleID, cfg.Stderr)
}

func printVersion(stdout io.Writer) int {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		slog.Error(ErrReadBuildInfo.Error())
		return -1
	}

	fmt.Fprintf(stdout, "Version: %s\n", buildInfo.Main.Version)

	return 0
}
