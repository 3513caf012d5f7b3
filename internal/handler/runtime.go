// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import "fmt"

// Runtime is the kind of runtime a title's executable requires.
type Runtime int

const (
	// RuntimeNative runs a Linux binary directly.
	RuntimeNative Runtime = iota
	// RuntimeLegacy runs a Linux binary inside the legacy Steam runtime.
	RuntimeLegacy
	// RuntimeCompat runs a Windows binary with Proton. It requires a
	// compatibility prefix.
	RuntimeCompat
	// RuntimeRawCompat runs a Windows binary with plain Wine.
	RuntimeRawCompat
)

var runtimeNames = map[string]Runtime{
	"":                         RuntimeNative,
	"native":                   RuntimeNative,
	"native-linux":             RuntimeNative,
	"scout":                    RuntimeLegacy,
	"legacy-runtime":           RuntimeLegacy,
	"proton":                   RuntimeCompat,
	"compatibility-layer":      RuntimeCompat,
	"wine":                     RuntimeRawCompat,
	"raw-compatibility-binary": RuntimeRawCompat,
}

// String implements [fmt.Stringer].
func (r Runtime) String() string {
	switch r {
	case RuntimeNative:
		return "native"
	case RuntimeLegacy:
		return "scout"
	case RuntimeCompat:
		return "proton"
	case RuntimeRawCompat:
		return "wine"
	default:
		return fmt.Sprintf("Runtime(%d)", int(r))
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (r Runtime) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (r *Runtime) UnmarshalText(text []byte) error {
	runtime, exists := runtimeNames[string(text)]
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownRuntime, text)
	}

	*r = runtime

	return nil
}

// Windows returns true if the runtime executes Windows binaries.
func (r Runtime) Windows() bool {
	return r == RuntimeCompat || r == RuntimeRawCompat
}

// NeedsCompatData returns true if the runtime requires a compatibility
// prefix and so a numeric application id.
//
// Only [RuntimeCompat] does. [RuntimeRawCompat] is treated as Windows for
// isolation purposes but uses the default Wine prefix unpatched.
func (r Runtime) NeedsCompatData() bool {
	return r == RuntimeCompat
}
