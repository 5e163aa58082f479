// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

import "math"

// APIKind identifies the graphics API a host engine runs on.
type APIKind int

const (
	// APIUnknown is reported by hosts that run on an API without a backend.
	APIUnknown APIKind = iota

	// APID3D11 is Direct3D 11.
	APID3D11

	// APID3D12 is Direct3D 12.
	APID3D12

	// APIVulkan is Vulkan.
	APIVulkan
)

// String returns the API name.
func (k APIKind) String() string {
	switch k {
	case APID3D11:
		return "D3D11"
	case APID3D12:
		return "D3D12"
	case APIVulkan:
		return "Vulkan"
	default:
		return "Unknown"
	}
}

// Valid reports whether k names one of the supported APIs.
func (k APIKind) Valid() bool {
	return k == APID3D11 || k == APID3D12 || k == APIVulkan
}

// Handle is an untyped native pointer (device, command list, resource)
// passed across the host boundary. The zero Handle is null.
type Handle uintptr

// IsNull reports whether h is the null handle.
func (h Handle) IsNull() bool { return h == 0 }

// Token is a completion token: a fence value after which the work of one
// submission is finished on the GPU. The zero Token means "nothing
// submitted" and is always complete.
type Token uint64

// PendingToken marks a command buffer slot that is checked out or has
// never been submitted. No fence value ever reaches it.
const PendingToken Token = math.MaxUint64

// Reached reports whether completed has reached t.
func (t Token) Reached(completed Token) bool { return completed >= t }

// Host is the engine side of the device boundary. Graphics returns the
// engine's graphics interface for kind (for example a d3d12.Host) or nil
// when the engine cannot supply one.
type Host interface {
	Graphics(kind APIKind) any
}

// HostFunc adapts a function to the Host interface.
type HostFunc func(kind APIKind) any

// Graphics calls f(kind).
func (f HostFunc) Graphics(kind APIKind) any { return f(kind) }

// Device is one backend bound to the host's native device.
//
// All methods except Kind and Initialized are meant for one goroutine at a
// time, normally the host's render thread. The state transitions recorded
// by ResolveResource belong to the command buffer most recently acquired,
// so callers must not interleave two outstanding command buffers.
type Device interface {
	// Kind returns the API this backend drives.
	Kind() APIKind

	// Init binds the backend to the host's native device. It is a no-op
	// returning true when the backend is already initialized. It returns
	// false when the host cannot supply a native device or the backend
	// cannot create its synchronization primitive; Init may be retried.
	Init(host Host) bool

	// Destroy blocks until every submitted command buffer has completed,
	// then releases everything the backend created. Calling Destroy on an
	// uninitialized backend does nothing.
	Destroy()

	// Initialized reports whether Init succeeded and Destroy has not run.
	Initialized() bool

	// NativeDevice returns the host's native device, or 0 outside of
	// Init..Destroy. The backend never releases it.
	NativeDevice() Handle

	// AcquireCommandBuffer returns a command buffer in the recording state,
	// reusing a pooled one whose last submission has completed or
	// allocating a new one. It returns 0 on allocation failure; callers
	// treat that as a skipped frame. It never blocks.
	AcquireCommandBuffer() Handle

	// SubmitCommandBuffer closes and submits cmd together with the state
	// transitions recorded since it was acquired and returns its completion
	// token. Tokens increase strictly. It returns 0 on failure.
	SubmitCommandBuffer(cmd Handle) Token

	// WaitAll blocks until every submitted command buffer has completed.
	WaitAll()

	// WaitFor blocks until token has completed.
	WaitFor(token Token)

	// CompletedValue returns the highest token the GPU has finished
	// without blocking.
	CompletedValue() Token

	// ResolveResource translates ref into the native resource it names.
	// A null ref or an unknown texture yields the zero Resource and records
	// nothing.
	ResolveResource(ref ResourceRef, opts ResolveOptions) Resource
}
