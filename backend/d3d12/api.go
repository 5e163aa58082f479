// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package d3d12

import (
	"github.com/gogpu/upscaler/device"
	"github.com/gogpu/upscaler/internal/dxgi"
	"github.com/gogpu/upscaler/internal/oswait"
)

// Host is the engine's Direct3D 12 interface.
type Host interface {
	// Device returns the engine's ID3D12Device.
	Device() device.Handle

	// CommandQueue returns the queue the engine executes lists on.
	CommandQueue() device.Handle

	// ExecuteCommandList executes a closed command list on CommandQueue,
	// transitioning each resource to its After state around the list. It
	// returns the engine's frame fence value for the submission. states is
	// only valid for the duration of the call.
	ExecuteCommandList(list device.Handle, states []ResourceState) uint64

	// TextureFromNativeTexture returns the ID3D12Resource behind an engine
	// texture, or 0.
	TextureFromNativeTexture(id device.TextureID) device.Handle
}

// ResourceState is one state transition carried with a submission.
type ResourceState struct {
	Resource device.Handle
	Before   State
	After    State
}

// State is a D3D12_RESOURCE_STATES bit set.
type State uint32

// D3D12_RESOURCE_STATES values.
const (
	StateCommon                 State = 0
	StateRenderTarget           State = 0x4
	StateUnorderedAccess        State = 0x8
	StateNonPixelShaderResource State = 0x40
	StatePixelShaderResource    State = 0x80
	StateCopyDest               State = 0x400
	StateCopySource             State = 0x800
)

// Dimension is a D3D12_RESOURCE_DIMENSION value.
type Dimension uint32

const (
	DimensionUnknown   Dimension = 0
	DimensionBuffer    Dimension = 1
	DimensionTexture1D Dimension = 2
	DimensionTexture2D Dimension = 3
	DimensionTexture3D Dimension = 4
)

// ResourceFlagAllowUnorderedAccess is D3D12_RESOURCE_FLAG_ALLOW_UNORDERED_ACCESS.
const ResourceFlagAllowUnorderedAccess uint32 = 0x4

// SampleDesc mirrors DXGI_SAMPLE_DESC.
type SampleDesc struct {
	Count   uint32
	Quality uint32
}

// ResourceDesc mirrors D3D12_RESOURCE_DESC field for field, so the native
// binding can have GetDesc write into it directly.
type ResourceDesc struct {
	Dimension        Dimension
	Alignment        uint64
	Width            uint64
	Height           uint32
	DepthOrArraySize uint16
	MipLevels        uint16
	Format           dxgi.Format
	SampleDesc       SampleDesc
	Layout           uint32
	Flags            uint32
}

// API is the slice of the Direct3D 12 object model the backend calls.
// The Windows build binds it to COM; tests supply fakes through WithAPI.
type API interface {
	CreateCommandAllocator(dev device.Handle) (device.Handle, error)
	// CreateCommandList returns a direct command list in the recording
	// state on allocator.
	CreateCommandList(dev, allocator device.Handle) (device.Handle, error)
	ResetCommandAllocator(allocator device.Handle) error
	ResetCommandList(list, allocator device.Handle) error
	CloseCommandList(list device.Handle) error

	CreateFence(dev device.Handle, initial uint64) (device.Handle, error)
	FenceCompletedValue(fence device.Handle) uint64
	SetEventOnCompletion(fence device.Handle, value uint64, ev *oswait.Event) error
	// QueueSignal enqueues ID3D12CommandQueue::Signal(fence, value).
	QueueSignal(queue, fence device.Handle, value uint64) error

	ResourceDesc(resource device.Handle) (ResourceDesc, error)

	// Release drops one COM reference.
	Release(obj device.Handle)
}

// queueFence adapts a backend-owned ID3D12Fence signaled on the host's
// queue to gpusync.Fence.
type queueFence struct {
	api   API
	queue device.Handle
	fence device.Handle
}

func (f *queueFence) Signal(value uint64) error {
	return f.api.QueueSignal(f.queue, f.fence, value)
}

func (f *queueFence) CompletedValue() uint64 {
	return f.api.FenceCompletedValue(f.fence)
}

func (f *queueFence) SetEventOnCompletion(value uint64, ev *oswait.Event) error {
	return f.api.SetEventOnCompletion(f.fence, value, ev)
}
