// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package upscaler

import "github.com/gogpu/upscaler/device"

// DeviceEventType is a host device lifecycle signal.
type DeviceEventType int

const (
	// DeviceInitialize is sent once the host's native device exists.
	DeviceInitialize DeviceEventType = iota

	// DeviceShutdown is sent before the host destroys its device.
	DeviceShutdown
)

func (t DeviceEventType) String() string {
	switch t {
	case DeviceInitialize:
		return "Initialize"
	case DeviceShutdown:
		return "Shutdown"
	default:
		return "Unknown"
	}
}

// DeviceEvent is a device lifecycle signal together with the API the host
// renders with.
type DeviceEvent struct {
	Type DeviceEventType
	Kind device.APIKind
}

// PassEvent is the pass part of a render event id.
type PassEvent uint16

const (
	PassInitialize PassEvent = iota + 1
	PassDispatch
	PassReactiveMask
	PassDestroy
)

func (p PassEvent) String() string {
	switch p {
	case PassInitialize:
		return "Initialize"
	case PassDispatch:
		return "Dispatch"
	case PassReactiveMask:
		return "ReactiveMask"
	case PassDestroy:
		return "Destroy"
	default:
		return "Unknown"
	}
}

// Render event ids and texture update user data pack an instance id in the
// high 16 bits and a pass or texture slot in the low 16 bits.
const eventShift = 16

// EncodeEvent builds the render event id for pass on instance.
func EncodeEvent(instance uint32, pass PassEvent) int32 {
	return int32(instance<<eventShift | uint32(pass))
}

// DecodeEvent splits a render event id.
func DecodeEvent(eventID int32) (instance uint32, pass PassEvent) {
	v := uint32(eventID)
	return v >> eventShift, PassEvent(v & 0xFFFF)
}
