// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package party

import (
	"strconv"
)

// Provisioning steps reported in [ProvisionError].
const (
	StepProfiles   = "profiles"
	StepSandbox    = "sandbox"
	StepCompatData = "compatdata"
)

// ConfigError is returned if a title is not usable.
type ConfigError struct {
	Title string
	Err   error
}

// Error implements the [error] interface.
func (e *ConfigError) Error() string {
	return "title " + e.Title + " not usable: " + e.Err.Error()
}

// Is implements the [errors.Is] interface.
func (*ConfigError) Is(other error) bool {
	_, ok := other.(*ConfigError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ProvisionError is returned if building on-disk state failed. Partial state
// is left on disk and must be erased before retrying.
type ProvisionError struct {
	Step string
	Err  error
}

// Error implements the [error] interface.
func (e *ProvisionError) Error() string {
	return "provision " + e.Step + ": " + e.Err.Error()
}

// Is implements the [errors.Is] interface.
func (*ProvisionError) Is(other error) bool {
	_, ok := other.(*ProvisionError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *ProvisionError) Unwrap() error {
	return e.Err
}

// LaunchError is returned if the launch script could not be created or
// started, or if it exited non-zero.
type LaunchError struct {
	// ExitCode of the launch script. It is 0 if the script did not run.
	ExitCode int
	Err      error
}

// Error implements the [error] interface.
func (e *LaunchError) Error() string {
	msg := "launch: " + e.Err.Error()
	if e.ExitCode != 0 {
		msg += " (exit code " + strconv.Itoa(e.ExitCode) + ")"
	}

	return msg
}

// Is implements the [errors.Is] interface.
func (*LaunchError) Is(other error) bool {
	_, ok := other.(*LaunchError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *LaunchError) Unwrap() error {
	return e.Err
}
