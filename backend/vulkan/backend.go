// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vulkan

import (
	"log/slog"

	vk "github.com/vulkan-go/vulkan"

	"github.com/gogpu/upscaler/device"
	"github.com/gogpu/upscaler/internal/cmdpool"
)

func init() {
	device.Register(device.APIVulkan, func() device.Device { return New() })
}

// commandBuffer is one pooled command buffer with the transient pool it
// was allocated from and the fence its submissions signal.
type commandBuffer struct {
	pool   vk.CommandPool
	buffer vk.CommandBuffer
	fence  vk.Fence
}

// Backend drives Vulkan through the host's device and graphics queue.
type Backend struct {
	cmds        Commands
	queueFamily *uint32

	host      Host
	dev       vk.Device
	queue     vk.Queue
	family    uint32
	sync      *fenceTimeline
	pool      cmdpool.Pool[commandBuffer]
	recording vk.CommandBuffer
	pending   []*transition

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
	return device.Logger().With("api", "Vulkan")
}

// Kind returns device.APIVulkan.
func (b *Backend) Kind() device.APIKind { return device.APIVulkan }

// Init binds to the host's device and graphics queue. Unless commands were
// injected, vulkan-go is initialized through the host's loader.
func (b *Backend) Init(host device.Host) bool {
	if b.initialized {
		return true
	}
	if host == nil {
		b.log().Warn("init: no host")
		return false
	}
	h, ok := host.Graphics(device.APIVulkan).(Host)
	if !ok || h == nil {
		b.log().Warn("init: host has no Vulkan interface")
		return false
	}
	inst := h.Instance()
	if inst.Device == nil || inst.Queue == nil {
		b.log().Warn("init: host returned no device or queue")
		return false
	}

	if b.cmds == nil {
		cmds, err := loadCommands(inst)
		if err != nil {
			b.log().Error("init: loading entry points", "err", err)
			return false
		}
		b.cmds = cmds
	}

	b.host = h
	b.dev = inst.Device
	b.queue = inst.Queue
	b.family = inst.QueueFamilyIndex
	if b.queueFamily != nil {
		b.family = *b.queueFamily
	}
	b.sync = newFenceTimeline(b.cmds, b.dev)
	b.initialized = true
	b.log().Info("backend initialized", "device", uintptr(handleOf(b.dev)), "queueFamily", b.family)
	return true
}

// Destroy waits for all submitted command buffers, then frees every pooled
// buffer, pool and fence. The host's device and queue are not destroyed.
func (b *Backend) Destroy() {
	if !b.initialized {
		return
	}
	b.WaitAll()

	b.pool.Drain(func(cb commandBuffer) {
		b.cmds.FreeCommandBuffer(b.dev, cb.pool, cb.buffer)
		b.cmds.DestroyCommandPool(b.dev, cb.pool)
		b.cmds.DestroyFence(b.dev, cb.fence)
	})

	b.pending = nil
	b.recording = nil
	b.host = nil
	b.dev = nil
	b.queue = nil
	b.sync = nil
	b.initialized = false
	b.log().Info("backend destroyed")
}

// Initialized reports whether the backend is usable.
func (b *Backend) Initialized() bool { return b.initialized }

// NativeDevice returns the host's VkDevice.
func (b *Backend) NativeDevice() device.Handle {
	if !b.initialized {
		return 0
	}
	return handleOf(b.dev)
}

// AcquireCommandBuffer returns a primary command buffer in the recording
// state. Barriers for images resolved while no buffer was recording are
// recorded first.
func (b *Backend) AcquireCommandBuffer() device.Handle {
	if !b.initialized {
		return 0
	}

	slot, ok := b.pool.Claim(b.sync.CompletedValue())
	if ok {
		if err := b.cmds.ResetCommandPool(b.dev, slot.Payload.pool); err != nil {
			b.log().Warn("vkResetCommandPool", "err", err)
		}
	} else {
		cb, err := b.allocate()
		if err != nil {
			return 0
		}
		slot = b.pool.Add(cb)
		b.log().Debug("command buffer allocated", "pool", b.pool.Len())
	}

	cmd := slot.Payload.buffer
	if err := b.cmds.BeginCommandBuffer(cmd); err != nil {
		b.log().Error("vkBeginCommandBuffer", "err", err)
		// Nothing was submitted; the slot is free again.
		slot.Complete(0)
		return 0
	}
	b.recording = cmd

	for _, t := range b.pending {
		if !t.recorded {
			b.barrier(cmd, t, t.host(), t.after)
			t.recorded = true
		}
	}
	return handleOf(cmd)
}

func (b *Backend) allocate() (commandBuffer, error) {
	pool, err := b.cmds.CreateCommandPool(b.dev, b.family)
	if err != nil {
		b.log().Error("vkCreateCommandPool", "err", err)
		return commandBuffer{}, err
	}
	buffer, err := b.cmds.AllocateCommandBuffer(b.dev, pool)
	if err != nil {
		b.log().Error("vkAllocateCommandBuffers", "err", err)
		b.cmds.DestroyCommandPool(b.dev, pool)
		return commandBuffer{}, err
	}
	fence, err := b.cmds.CreateFence(b.dev)
	if err != nil {
		b.log().Error("vkCreateFence", "err", err)
		b.cmds.FreeCommandBuffer(b.dev, pool, buffer)
		b.cmds.DestroyCommandPool(b.dev, pool)
		return commandBuffer{}, err
	}
	return commandBuffer{pool: pool, buffer: buffer, fence: fence}, nil
}

// SubmitCommandBuffer moves every resolved image back to its host layout,
// ends cmd and submits it with the slot's fence.
func (b *Backend) SubmitCommandBuffer(cmd device.Handle) device.Token {
	if !b.initialized || cmd.IsNull() {
		return 0
	}
	slot := b.pool.Find(func(cb commandBuffer) bool { return handleOf(cb.buffer) == cmd })
	if slot == nil {
		b.log().Warn("submit: unknown command buffer", "buffer", uintptr(cmd))
		return 0
	}
	if !slot.CheckedOut() {
		b.log().Warn("submit: command buffer not checked out", "buffer", uintptr(cmd))
		return 0
	}
	cb := slot.Payload

	for _, t := range b.pending {
		if t.recorded && t.restorable() {
			b.barrier(cb.buffer, t, t.after, t.host())
		}
	}
	b.pending = b.pending[:0]
	b.recording = nil

	if err := b.cmds.EndCommandBuffer(cb.buffer); err != nil {
		b.log().Error("vkEndCommandBuffer", "err", err)
		slot.Complete(0)
		return 0
	}
	if err := b.cmds.ResetFence(b.dev, cb.fence); err != nil {
		// The fence state is unknown; the slot is never reused.
		b.log().Error("vkResetFences", "err", err)
		slot.Retire()
		return 0
	}
	if err := b.cmds.QueueSubmit(b.queue, cb.buffer, cb.fence); err != nil {
		// Nothing will ever signal the fence; the slot is never reused.
		b.log().Error("vkQueueSubmit", "err", err)
		slot.Retire()
		return 0
	}

	token := b.sync.Signal(cb.fence)
	slot.Complete(token)
	b.log().Debug("command buffer submitted", "token", uint64(token))
	return token
}

// WaitAll blocks until the last submitted command buffer has completed.
func (b *Backend) WaitAll() {
	if !b.initialized {
		return
	}
	if last := b.pool.LastToken(); last != 0 {
		b.WaitFor(last)
	}
}

// WaitFor blocks until every submission up to token has completed.
func (b *Backend) WaitFor(token device.Token) {
	if !b.initialized {
		return
	}
	if err := b.sync.BlockUntil(token); err != nil {
		b.log().Error("fence wait", "token", uint64(token), "err", err)
	}
}

// CompletedValue returns the newest token whose fence has signaled.
func (b *Backend) CompletedValue() device.Token {
	if !b.initialized {
		return 0
	}
	return b.sync.CompletedValue()
}

// ResolveResource returns the VkImage behind ref. Unless opts.ObserveOnly
// is set, a barrier into the layout opts.Access needs is recorded and the
// returned State is that layout; otherwise State is the host's layout.
func (b *Backend) ResolveResource(ref device.ResourceRef, opts device.ResolveOptions) device.Resource {
	if !b.initialized || ref.IsNull() {
		return device.Resource{}
	}

	img, ok := b.host.AccessTexture(ref, opts.ObserveOnly)
	if !ok || img.Image == nil {
		b.log().Warn("AccessTexture", "texture", uint32(ref.TextureID), "native", uintptr(ref.Native))
		return device.Resource{}
	}

	res := device.Resource{
		Native: handleOf(img.Image),
		Kind:   device.APIVulkan,
		State:  uint32(img.Layout),
	}
	if opts.Describe {
		res.Desc = Describe(img, opts.Usage)
	}
	if !opts.ObserveOnly {
		target := BarrierFor(opts.Access, HasDepth(img.Format))
		b.transition(img, target)
		res.State = uint32(target.Layout)
	}
	return res
}

// transition moves img into target in the recording command buffer, or
// queues the move for the next acquire.
func (b *Backend) transition(img Image, target Barrier) {
	for _, t := range b.pending {
		if t.image != img.Image {
			continue
		}
		if t.after == target {
			return
		}
		if t.recorded {
			b.barrier(b.recording, t, t.after, target)
		}
		if t.after.Layout == target.Layout {
			t.after.Stage |= target.Stage
			t.after.Access |= target.Access
		} else {
			t.after = target
		}
		return
	}

	t := &transition{
		image:  img.Image,
		before: img.Layout,
		after:  target,
		rng: vk.ImageSubresourceRange{
			AspectMask: aspectOf(img.Format),
			LevelCount: max(img.MipLevels, 1),
			LayerCount: max(img.ArrayLayers, 1),
		},
	}
	if b.recording != nil {
		b.barrier(b.recording, t, t.host(), target)
		t.recorded = true
	}
	b.pending = append(b.pending, t)
}

func (b *Backend) barrier(cmd vk.CommandBuffer, t *transition, from, to Barrier) {
	b.cmds.PipelineBarrier(cmd, from.Stage, to.Stage, []vk.ImageMemoryBarrier{imageBarrier(t, from, to)})
}

// PendingTransitions returns the number of images moved away from their
// host layout since the last submission.
func (b *Backend) PendingTransitions() int { return len(b.pending) }

// PoolSize returns the number of pooled command buffers.
func (b *Backend) PoolSize() int { return b.pool.Len() }

var _ device.Device = (*Backend)(nil)
