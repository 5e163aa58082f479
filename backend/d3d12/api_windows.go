// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows && amd64

package d3d12

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/gogpu/upscaler/device"
	"github.com/gogpu/upscaler/internal/com"
	"github.com/gogpu/upscaler/internal/oswait"
)

var (
	iidCommandAllocator = windows.GUID{
		Data1: 0x6102dee4, Data2: 0xaf59, Data3: 0x4b09,
		Data4: [8]byte{0xb9, 0x99, 0xb4, 0x4d, 0x73, 0xf0, 0x9b, 0x24},
	}
	iidGraphicsCommandList = windows.GUID{
		Data1: 0x5b160d0f, Data2: 0xac1b, Data3: 0x4185,
		Data4: [8]byte{0x8b, 0xa8, 0xb3, 0xae, 0x42, 0xa5, 0xa4, 0x55},
	}
	iidFence = windows.GUID{
		Data1: 0x0a753dcf, Data2: 0xc4d8, Data3: 0x4b91,
		Data4: [8]byte{0xad, 0xf6, 0xbe, 0x5a, 0x60, 0xd9, 0x5a, 0x76},
	}
)

// Vtable slots, counted from IUnknown.
const (
	vtblDeviceCreateCommandAllocator = 9
	vtblDeviceCreateCommandList      = 12
	vtblDeviceCreateFence            = 36

	vtblFenceGetCompletedValue    = 8
	vtblFenceSetEventOnCompletion = 9

	vtblAllocatorReset = 8

	vtblListClose = 9
	vtblListReset = 10

	vtblQueueSignal = 14

	vtblResourceGetDesc = 10
)

const commandListTypeDirect = 0

// comAPI binds API to the COM interfaces of d3d12.dll objects.
type comAPI struct{}

func nativeAPI() (API, error) { return comAPI{}, nil }

func check(call string, hr uintptr) error {
	if com.Failed(hr) {
		return &HRESULTError{Call: call, Code: uint32(hr)}
	}
	return nil
}

func (comAPI) CreateCommandAllocator(dev device.Handle) (device.Handle, error) {
	var out uintptr
	hr := com.Call(uintptr(dev), vtblDeviceCreateCommandAllocator,
		commandListTypeDirect,
		uintptr(unsafe.Pointer(&iidCommandAllocator)),
		uintptr(unsafe.Pointer(&out)),
	)
	if err := check("CreateCommandAllocator", hr); err != nil {
		return 0, err
	}
	if out == 0 {
		return 0, ErrNullObject
	}
	return device.Handle(out), nil
}

func (comAPI) CreateCommandList(dev, allocator device.Handle) (device.Handle, error) {
	var out uintptr
	hr := com.Call(uintptr(dev), vtblDeviceCreateCommandList,
		0, // node mask
		commandListTypeDirect,
		uintptr(allocator),
		0, // initial pipeline state
		uintptr(unsafe.Pointer(&iidGraphicsCommandList)),
		uintptr(unsafe.Pointer(&out)),
	)
	if err := check("CreateCommandList", hr); err != nil {
		return 0, err
	}
	if out == 0 {
		return 0, ErrNullObject
	}
	return device.Handle(out), nil
}

func (comAPI) ResetCommandAllocator(allocator device.Handle) error {
	return check("ID3D12CommandAllocator::Reset", com.Call(uintptr(allocator), vtblAllocatorReset))
}

func (comAPI) ResetCommandList(list, allocator device.Handle) error {
	return check("ID3D12GraphicsCommandList::Reset", com.Call(uintptr(list), vtblListReset, uintptr(allocator), 0))
}

func (comAPI) CloseCommandList(list device.Handle) error {
	return check("ID3D12GraphicsCommandList::Close", com.Call(uintptr(list), vtblListClose))
}

func (comAPI) CreateFence(dev device.Handle, initial uint64) (device.Handle, error) {
	var out uintptr
	hr := com.Call(uintptr(dev), vtblDeviceCreateFence,
		uintptr(initial),
		0, // D3D12_FENCE_FLAG_NONE
		uintptr(unsafe.Pointer(&iidFence)),
		uintptr(unsafe.Pointer(&out)),
	)
	if err := check("CreateFence", hr); err != nil {
		return 0, err
	}
	if out == 0 {
		return 0, ErrNullObject
	}
	return device.Handle(out), nil
}

func (comAPI) FenceCompletedValue(fence device.Handle) uint64 {
	return uint64(com.Call(uintptr(fence), vtblFenceGetCompletedValue))
}

func (comAPI) SetEventOnCompletion(fence device.Handle, value uint64, ev *oswait.Event) error {
	hr := com.Call(uintptr(fence), vtblFenceSetEventOnCompletion, uintptr(value), ev.Handle())
	return check("ID3D12Fence::SetEventOnCompletion", hr)
}

func (comAPI) QueueSignal(queue, fence device.Handle, value uint64) error {
	hr := com.Call(uintptr(queue), vtblQueueSignal, uintptr(fence), uintptr(value))
	return check("ID3D12CommandQueue::Signal", hr)
}

func (comAPI) ResourceDesc(resource device.Handle) (ResourceDesc, error) {
	// GetDesc returns the struct through a hidden out pointer that follows
	// the this pointer.
	var desc ResourceDesc
	com.Call(uintptr(resource), vtblResourceGetDesc, uintptr(unsafe.Pointer(&desc)))
	return desc, nil
}

func (comAPI) Release(obj device.Handle) {
	com.ReleaseObject(uintptr(obj))
}
