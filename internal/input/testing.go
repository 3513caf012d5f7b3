// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package input

// FakeDevice is a [Device] that replays a fixed list of actions.
type FakeDevice struct {
	DevicePath string
	Actions    []Action
	Err        error
	Closed     bool
}

var _ Device = (*FakeDevice)(nil)

// Path implements [Device].
func (d *FakeDevice) Path() string {
	return d.DevicePath
}

// Name implements [Device].
func (d *FakeDevice) Name() string {
	return "fake " + d.DevicePath
}

// Push appends actions to be returned by [FakeDevice.Poll].
func (d *FakeDevice) Push(actions ...Action) {
	d.Actions = append(d.Actions, actions...)
}

// Poll implements [Device]. It returns Err once all actions are consumed.
func (d *FakeDevice) Poll() (Action, error) {
	if len(d.Actions) == 0 {
		return ActionNone, d.Err
	}

	action := d.Actions[0]
	d.Actions = d.Actions[1:]

	return action, nil
}

// Close implements [Device].
func (d *FakeDevice) Close() error {
	d.Closed = true
	return nil
}
