// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package input

import "errors"

// ErrNotController is returned for devices without primary action button.
var ErrNotController = errors.New("not a controller")

// DeviceError is returned for failed operations on a device node.
type DeviceError struct {
	Path string
	Op   string
	Err  error
}

// Error implements the [error] interface.
func (e *DeviceError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

// Is implements the [errors.Is] interface.
func (*DeviceError) Is(other error) bool {
	_, ok := other.(*DeviceError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *DeviceError) Unwrap() error {
	return e.Err
}
