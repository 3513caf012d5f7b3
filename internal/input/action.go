// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package input

import "fmt"

// Action is a symbolic navigation action.
type Action int

// Actions.
const (
	ActionNone Action = iota
	ActionAccept
	ActionBack
	ActionAlt1
	ActionAlt2
	ActionStart
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
)

var actionNames = map[Action]string{
	ActionNone:   "none",
	ActionAccept: "accept",
	ActionBack:   "back",
	ActionAlt1:   "alt1",
	ActionAlt2:   "alt2",
	ActionStart:  "start",
	ActionUp:     "up",
	ActionDown:   "down",
	ActionLeft:   "left",
	ActionRight:  "right",
}

// String implements [fmt.Stringer].
func (a Action) String() string {
	name, exists := actionNames[a]
	if !exists {
		return fmt.Sprintf("Action(%d)", int(a))
	}

	return name
}

// Linux input event types and codes. See linux/input-event-codes.h.
const (
	evKey = 0x01
	evAbs = 0x03

	btnSouth = 0x130
	btnEast  = 0x131
	btnNorth = 0x133
	btnWest  = 0x134
	btnStart = 0x13b

	absHat0X = 0x10
	absHat0Y = 0x11

	keyMax = 0x2ff
)

var keyActions = map[uint16]Action{
	btnSouth: ActionAccept,
	btnEast:  ActionBack,
	btnNorth: ActionAlt1,
	btnWest:  ActionAlt2,
	btnStart: ActionStart,
}

// decodeEvent maps a single raw input event to an [Action].
//
// Buttons trigger on press only. The directional pad triggers on deflection
// only, its release reports 0 and is ignored.
func decodeEvent(typ, code uint16, value int32) Action {
	switch typ {
	case evKey:
		if value != 1 {
			return ActionNone
		}

		return keyActions[code]
	case evAbs:
		switch {
		case code == absHat0X && value == -1:
			return ActionLeft
		case code == absHat0X && value == 1:
			return ActionRight
		case code == absHat0Y && value == -1:
			return ActionUp
		case code == absHat0Y && value == 1:
			return ActionDown
		}
	}

	return ActionNone
}
