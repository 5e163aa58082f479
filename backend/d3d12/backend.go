// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package d3d12

import (
	"log/slog"

	"github.com/gogpu/upscaler/device"
	"github.com/gogpu/upscaler/internal/cmdpool"
	"github.com/gogpu/upscaler/internal/gpusync"
)

func init() {
	device.Register(device.APID3D12, func() device.Device { return New() })
}

// commandBuffer is one pooled allocator and the list recording into it.
type commandBuffer struct {
	allocator device.Handle
	list      device.Handle
}

// Backend drives Direct3D 12 through the host's device and queue.
//
// It owns one ID3D12Fence that it signals on the host's queue after every
// submission; the fence value is the completion token.
type Backend struct {
	api API

	host    Host
	dev     device.Handle
	queue   device.Handle
	fence   device.Handle
	sync    *gpusync.Timeline
	pool    cmdpool.Pool[commandBuffer]
	pending []ResourceState

	initialized bool
}

// New creates an uninitialized backend.
func New(opts ...Option) *Backend {
	b := &Backend{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Backend) log() *slog.Logger {
	return device.Logger().With("api", "D3D12")
}

// Kind returns device.APID3D12.
func (b *Backend) Kind() device.APIKind { return device.APID3D12 }

// Init binds to the host's device and queue and creates the backend fence.
func (b *Backend) Init(host device.Host) bool {
	if b.initialized {
		return true
	}
	if host == nil {
		b.log().Warn("init: no host")
		return false
	}
	h, ok := host.Graphics(device.APID3D12).(Host)
	if !ok || h == nil {
		b.log().Warn("init: host has no D3D12 interface")
		return false
	}
	dev := h.Device()
	if dev.IsNull() {
		b.log().Warn("init: host returned no device")
		return false
	}

	if b.api == nil {
		api, err := nativeAPI()
		if err != nil {
			b.log().Error("init: native API unavailable", "err", err)
			return false
		}
		b.api = api
	}

	fence, err := b.api.CreateFence(dev, 0)
	if err != nil {
		b.log().Error("CreateFence", "err", err)
		return false
	}

	b.host = h
	b.dev = dev
	b.queue = h.CommandQueue()
	b.fence = fence
	b.sync = gpusync.NewTimeline(&queueFence{api: b.api, queue: b.queue, fence: fence})
	b.initialized = true
	b.log().Info("backend initialized", "device", uintptr(dev))
	return true
}

// Destroy waits for all submitted lists, then releases every pooled
// allocator and list and the fence. The host's device and queue are not
// released.
func (b *Backend) Destroy() {
	if !b.initialized {
		return
	}
	b.WaitAll()

	b.pool.Drain(func(cb commandBuffer) {
		b.api.Release(cb.list)
		b.api.Release(cb.allocator)
	})
	b.api.Release(b.fence)

	b.pending = b.pending[:0]
	b.host = nil
	b.dev = 0
	b.queue = 0
	b.fence = 0
	b.sync = nil
	b.initialized = false
	b.log().Info("backend destroyed")
}

// Initialized reports whether the backend is usable.
func (b *Backend) Initialized() bool { return b.initialized }

// NativeDevice returns the host's ID3D12Device.
func (b *Backend) NativeDevice() device.Handle { return b.dev }

// AcquireCommandBuffer returns a direct command list in the recording
// state.
func (b *Backend) AcquireCommandBuffer() device.Handle {
	if !b.initialized {
		return 0
	}

	if slot, ok := b.pool.Claim(b.sync.CompletedValue()); ok {
		cb := slot.Payload
		if err := b.api.ResetCommandAllocator(cb.allocator); err != nil {
			b.log().Warn("ID3D12CommandAllocator::Reset", "err", err)
		}
		if err := b.api.ResetCommandList(cb.list, cb.allocator); err != nil {
			b.log().Warn("ID3D12GraphicsCommandList::Reset", "err", err)
		}
		b.log().Debug("command list reused", "pool", b.pool.Len())
		return cb.list
	}

	alloc, err := b.api.CreateCommandAllocator(b.dev)
	if err != nil {
		b.log().Error("CreateCommandAllocator", "err", err)
		return 0
	}
	list, err := b.api.CreateCommandList(b.dev, alloc)
	if err != nil {
		b.log().Error("CreateCommandList", "err", err)
		b.api.Release(alloc)
		return 0
	}
	b.pool.Add(commandBuffer{allocator: alloc, list: list})
	b.log().Debug("command list allocated", "pool", b.pool.Len())
	return list
}

// SubmitCommandBuffer closes cmd, executes it through the host together
// with the pending state transitions and signals the backend fence.
func (b *Backend) SubmitCommandBuffer(cmd device.Handle) device.Token {
	if !b.initialized || cmd.IsNull() {
		return 0
	}
	slot := b.pool.Find(func(cb commandBuffer) bool { return cb.list == cmd })
	if slot == nil {
		b.log().Warn("submit: unknown command list", "list", uintptr(cmd))
		return 0
	}
	if !slot.CheckedOut() {
		b.log().Warn("submit: command list not checked out", "list", uintptr(cmd))
		return 0
	}

	if err := b.api.CloseCommandList(cmd); err != nil {
		b.log().Error("ID3D12GraphicsCommandList::Close", "err", err)
		b.pending = b.pending[:0]
		slot.Complete(0)
		return 0
	}
	frame := b.host.ExecuteCommandList(cmd, b.pending)
	b.pending = b.pending[:0]

	token, err := b.sync.Signal()
	if err != nil {
		// The list is on the GPU with nothing to tell us when it is done:
		// the slot is retired and never reused.
		b.log().Error("ID3D12CommandQueue::Signal", "err", err)
		slot.Retire()
		return 0
	}
	slot.Complete(token)
	b.log().Debug("command list submitted", "token", uint64(token), "frame", frame)
	return token
}

// WaitAll blocks until the last submitted list has completed.
func (b *Backend) WaitAll() {
	if !b.initialized {
		return
	}
	if last := b.pool.LastToken(); last != 0 {
		b.WaitFor(last)
	}
}

// WaitFor blocks until the fence reaches token.
func (b *Backend) WaitFor(token device.Token) {
	if !b.initialized {
		return
	}
	if err := b.sync.BlockUntil(token); err != nil {
		b.log().Error("fence wait", "token", uint64(token), "err", err)
	}
}

// CompletedValue returns the fence's completed value.
func (b *Backend) CompletedValue() device.Token {
	if !b.initialized {
		return 0
	}
	return b.sync.CompletedValue()
}

// ResolveResource returns the ID3D12Resource behind ref. Unless
// opts.ObserveOnly is set, the requested state is queued for the next
// submission.
func (b *Backend) ResolveResource(ref device.ResourceRef, opts device.ResolveOptions) device.Resource {
	if !b.initialized || ref.IsNull() {
		return device.Resource{}
	}

	native := ref.Native
	if native.IsNull() {
		native = b.host.TextureFromNativeTexture(ref.TextureID)
		if native.IsNull() {
			b.log().Warn("TextureFromNativeTexture", "texture", uint32(ref.TextureID))
			return device.Resource{}
		}
	}

	state := StateFor(opts.Access)
	res := device.Resource{Native: native, Kind: device.APID3D12, State: uint32(state)}

	if opts.Describe {
		desc, err := b.api.ResourceDesc(native)
		if err != nil {
			b.log().Warn("ID3D12Resource::GetDesc", "err", err)
		} else {
			res.Desc = Describe(desc, opts.Usage)
		}
	}

	if !opts.ObserveOnly {
		b.pending = append(b.pending, ResourceState{Resource: native, Before: state, After: state})
	}
	return res
}

// PendingStates returns the transitions queued for the next submission.
func (b *Backend) PendingStates() []ResourceState { return b.pending }

// PoolSize returns the number of pooled command lists.
func (b *Backend) PoolSize() int { return b.pool.Len() }

var _ device.Device = (*Backend)(nil)
