// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sandbox

// Provisioning steps.
const (
	StepMirror     = "mirror"
	StepShim       = "shim"
	StepInterfaces = "interfaces"
	StepCopy       = "copy"
	StepRemove     = "remove"
	StepSupplement = "supplement"
	StepErase      = "erase"
)

// StepError is returned if a provisioning step fails. The sandbox root is
// left as it is and must be erased before retrying.
type StepError struct {
	Title string
	Step  string
	Err   error
}

// Error implements the [error] interface.
func (e *StepError) Error() string {
	return "provision " + e.Title + ": " + e.Step + ": " + e.Err.Error()
}

// Is implements the [errors.Is] interface.
func (*StepError) Is(other error) bool {
	_, ok := other.(*StepError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *StepError) Unwrap() error {
	return e.Err
}
