// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeEvent(t *testing.T) {
	tests := []struct {
		name     string
		typ      uint16
		code     uint16
		value    int32
		expected Action
	}{
		{"south press", evKey, btnSouth, 1, ActionAccept},
		{"south release", evKey, btnSouth, 0, ActionNone},
		{"south repeat", evKey, btnSouth, 2, ActionNone},
		{"east press", evKey, btnEast, 1, ActionBack},
		{"north press", evKey, btnNorth, 1, ActionAlt1},
		{"west press", evKey, btnWest, 1, ActionAlt2},
		{"start press", evKey, btnStart, 1, ActionStart},
		{"unknown key", evKey, 0x110, 1, ActionNone},
		{"hat left", evAbs, absHat0X, -1, ActionLeft},
		{"hat right", evAbs, absHat0X, 1, ActionRight},
		{"hat up", evAbs, absHat0Y, -1, ActionUp},
		{"hat down", evAbs, absHat0Y, 1, ActionDown},
		{"hat center", evAbs, absHat0X, 0, ActionNone},
		{"stick", evAbs, 0x00, 1, ActionNone},
		{"sync", 0x00, 0x00, 0, ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, decodeEvent(tt.typ, tt.code, tt.value))
		})
	}
}

func TestIoctlNumbers(t *testing.T) {
	assert.Equal(t, uintptr(0x81004506), eviocgname(256), "EVIOCGNAME(256)")
	assert.Equal(t, uintptr(0x80604521), eviocgbit(evKey, 96), "EVIOCGBIT(EV_KEY, 96)")
	assert.Equal(t, uintptr(0x80084520), eviocgbit(0, 8), "EVIOCGBIT(0, 8)")
}

func TestTestBit(t *testing.T) {
	keys := make([]byte, keyMax/8+1)
	assert.False(t, testBit(keys, btnSouth))

	keys[btnSouth/8] |= 1 << (btnSouth % 8)
	assert.True(t, testBit(keys, btnSouth))
	assert.False(t, testBit(keys, btnEast))
	assert.False(t, testBit(keys[:2], btnSouth), "out of range")
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "accept", ActionAccept.String())
	assert.Equal(t, "right", ActionRight.String())
	assert.Equal(t, "Action(99)", Action(99).String())
}
