// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package input

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"unsafe"

	"golang.org/x/sys/unix"
)

// NodePrefix is the name prefix of evdev device nodes.
const NodePrefix = "event"

// Device is an input device that can be polled for actions.
type Device interface {
	// Path is the device node. It is used for masking the device in other
	// players' sandboxes.
	Path() string

	// Name is the human readable device name.
	Name() string

	// Poll returns the next pending action or [ActionNone] without blocking.
	Poll() (Action, error)

	Close() error
}

// ioctl request encoding. See asm-generic/ioctl.h.
const (
	iocRead      = 2
	iocDirShift  = 30
	iocSizeShift = 16
	iocTypeShift = 8

	evdevType = 'E'
	nameLen   = 256
)

func ioc(dir, typ, nr, size uintptr) uintptr {
	return dir<<iocDirShift | size<<iocSizeShift | typ<<iocTypeShift | nr
}

// eviocgbit is EVIOCGBIT(ev, size).
func eviocgbit(ev, size uintptr) uintptr {
	return ioc(iocRead, evdevType, 0x20+ev, size)
}

// eviocgname is EVIOCGNAME(size).
func eviocgname(size uintptr) uintptr {
	return ioc(iocRead, evdevType, 0x06, size)
}

// Size of struct input_event: a struct timeval followed by type, code and
// value.
var (
	timevalSize = int(unsafe.Sizeof(unix.Timeval{}))
	eventSize   = timevalSize + 8
)

// Evdev is a [Device] backed by an evdev device node.
type Evdev struct {
	path string
	name string
	fd   int
	buf  []byte
}

var _ Device = (*Evdev)(nil)

// Open opens the evdev node at path non-blockingly.
//
// Devices that do not report the primary action button are not considered
// controllers. They are closed and [ErrNotController] is returned.
func Open(path string) (*Evdev, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, &DeviceError{Path: path, Op: "open", Err: err}
	}

	dev := &Evdev{
		path: path,
		fd:   fd,
		buf:  make([]byte, eventSize),
	}

	keys := make([]byte, keyMax/8+1)

	err = dev.ioctl(eviocgbit(evKey, uintptr(len(keys))), keys)
	if err != nil {
		_ = dev.Close()
		return nil, &DeviceError{Path: path, Op: "query keys", Err: err}
	}

	if !testBit(keys, btnSouth) {
		_ = dev.Close()
		return nil, &DeviceError{Path: path, Op: "probe", Err: ErrNotController}
	}

	name := make([]byte, nameLen)

	err = dev.ioctl(eviocgname(nameLen), name)
	if err != nil {
		slog.Debug("Failed to query device name",
			slog.String("path", path),
			slog.Any("error", err))
	}

	dev.name = unix.ByteSliceToString(name)

	return dev, nil
}

func (d *Evdev) ioctl(req uintptr, buf []byte) error {
	_, _, errno := unix.Syscall(
		unix.SYS_IOCTL,
		uintptr(d.fd),
		req,
		uintptr(unsafe.Pointer(&buf[0])),
	)
	if errno != 0 {
		return errno
	}

	return nil
}

// Path implements [Device].
func (d *Evdev) Path() string {
	return d.path
}

// Name implements [Device].
func (d *Evdev) Name() string {
	return d.name
}

// Poll implements [Device]. It reads at most one raw event.
func (d *Evdev) Poll() (Action, error) {
	n, err := unix.Read(d.fd, d.buf)
	if err != nil {
		if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EINTR) {
			return ActionNone, nil
		}

		return ActionNone, &DeviceError{Path: d.path, Op: "read", Err: err}
	}

	if n < eventSize {
		return ActionNone, nil
	}

	return decodeEvent(
		binary.NativeEndian.Uint16(d.buf[timevalSize:]),
		binary.NativeEndian.Uint16(d.buf[timevalSize+2:]),
		int32(binary.NativeEndian.Uint32(d.buf[timevalSize+4:])), //nolint:gosec
	), nil
}

// Close implements [Device].
func (d *Evdev) Close() error {
	if d.fd < 0 {
		return nil
	}

	err := unix.Close(d.fd)
	d.fd = -1

	if err != nil {
		return &DeviceError{Path: d.path, Op: "close", Err: err}
	}

	return nil
}

func testBit(bits []byte, bit int) bool {
	idx := bit / 8
	return idx < len(bits) && bits[idx]&(1<<(bit%8)) != 0
}

// IsNode returns true if the base name of path is an evdev node name.
func IsNode(path string) bool {
	return strings.HasPrefix(filepath.Base(path), NodePrefix)
}

// Discover opens all controllers found in the given input directory.
//
// Nodes that can not be opened or are no controllers are skipped. The
// devices are sorted by path.
func Discover(dir string) ([]Device, error) {
	paths, err := filepath.Glob(filepath.Join(dir, NodePrefix+"*"))
	if err != nil {
		return nil, fmt.Errorf("find device nodes: %w", err)
	}

	slices.Sort(paths)

	devices := make([]Device, 0, len(paths))

	for _, path := range paths {
		dev, err := Open(path)
		if err != nil {
			slog.Debug("Skip input device",
				slog.String("path", path),
				slog.Any("error", err))

			continue
		}

		slog.Info("Found controller",
			slog.String("path", dev.Path()),
			slog.String("name", dev.Name()))

		devices = append(devices, dev)
	}

	return devices, nil
}

// OpenDevice is like [Open] but returns the [Device] interface. It can be
// used as open function for the [Watcher].
func OpenDevice(path string) (Device, error) {
	dev, err := Open(path)
	if err != nil {
		return nil, err
	}

	return dev, nil
}
