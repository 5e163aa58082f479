// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vulkan

import (
	"errors"
	"slices"
	"testing"

	vk "github.com/vulkan-go/vulkan"

	"github.com/gogpu/upscaler/device"
)

func newTestBackend(t *testing.T, opts ...Option) (*Backend, *fakeCommands, *fakeHost) {
	t.Helper()
	cmds := newFakeCommands()
	host := newFakeHost()
	b := New(append([]Option{WithCommands(cmds)}, opts...)...)
	if !b.Init(host) {
		t.Fatal("Init() = false")
	}
	return b, cmds, host
}

// bufferOf returns the pooled command buffer behind h.
func bufferOf(t *testing.T, b *Backend, h device.Handle) vk.CommandBuffer {
	t.Helper()
	slot := b.pool.Find(func(cb commandBuffer) bool { return handleOf(cb.buffer) == h })
	if slot == nil {
		t.Fatalf("no pooled command buffer %#x", h)
	}
	return slot.Payload.buffer
}

func TestInitFailures(t *testing.T) {
	b := New(WithCommands(newFakeCommands()))
	if b.Init(nil) {
		t.Error("Init(nil) = true")
	}
	if b.Init(device.HostFunc(func(device.APIKind) any { return nil })) {
		t.Error("Init(host without Vulkan) = true")
	}
	host := newFakeHost()
	host.inst.Device = nil
	if b.Init(host) {
		t.Error("Init(host without device) = true")
	}
	if b.Initialized() {
		t.Error("Initialized() = true")
	}
}

func TestInitWithoutLoader(t *testing.T) {
	b := New()
	if b.Init(newFakeHost()) {
		t.Error("Init() = true without vkGetInstanceProcAddr")
	}
}

func TestInitQueueFamily(t *testing.T) {
	b, _, host := newTestBackend(t)
	if b.family != host.inst.QueueFamilyIndex {
		t.Errorf("family = %d, want %d", b.family, host.inst.QueueFamilyIndex)
	}
	if b.NativeDevice() != handleOf(host.inst.Device) {
		t.Error("NativeDevice() is not the host device")
	}

	o, _, _ := newTestBackend(t, WithQueueFamilyIndex(7))
	if o.family != 7 {
		t.Errorf("family = %d, want 7", o.family)
	}
}

func TestAcquireGrowsPool(t *testing.T) {
	b, cmds, _ := newTestBackend(t)

	var got []device.Handle
	for range 3 {
		cmd := b.AcquireCommandBuffer()
		if cmd == 0 {
			t.Fatal("AcquireCommandBuffer() = 0")
		}
		if slices.Contains(got, cmd) {
			t.Fatal("AcquireCommandBuffer() returned a checked-out buffer")
		}
		got = append(got, cmd)
	}
	if b.PoolSize() != 3 || cmds.pools != 3 || cmds.fences != 3 {
		t.Errorf("pool %d, vk pools %d, fences %d; want 3 each", b.PoolSize(), cmds.pools, cmds.fences)
	}
	if len(cmds.poolResets) != 0 {
		t.Errorf("pool resets = %d, want 0", len(cmds.poolResets))
	}
}

func TestAcquireReusesSignaledSlot(t *testing.T) {
	b, cmds, _ := newTestBackend(t)

	a := b.AcquireCommandBuffer()
	tok := b.SubmitCommandBuffer(a)
	if tok != 1 {
		t.Fatalf("SubmitCommandBuffer() = %d, want 1", tok)
	}

	if other := b.AcquireCommandBuffer(); other == a {
		t.Fatal("slot reused before its fence signaled")
	} else {
		b.SubmitCommandBuffer(other)
	}

	cmds.signalAll()
	if got := b.CompletedValue(); got != 2 {
		t.Fatalf("CompletedValue() = %d, want 2", got)
	}
	if again := b.AcquireCommandBuffer(); again != a {
		t.Errorf("AcquireCommandBuffer() = %#x, want first slot %#x", again, a)
	}
	if len(cmds.poolResets) != 1 {
		t.Errorf("pool resets = %d, want 1", len(cmds.poolResets))
	}
	if b.PoolSize() != 2 {
		t.Errorf("PoolSize() = %d, want 2", b.PoolSize())
	}
}

func TestSubmitTokensIncrease(t *testing.T) {
	b, cmds, _ := newTestBackend(t)
	cmds.autoSignal = true

	var prev device.Token
	for i := range 8 {
		tok := b.SubmitCommandBuffer(b.AcquireCommandBuffer())
		if tok <= prev {
			t.Fatalf("submission %d token %d, not greater than %d", i, tok, prev)
		}
		prev = tok
	}
	if b.PoolSize() != 1 {
		t.Errorf("PoolSize() = %d, want 1", b.PoolSize())
	}
	if len(cmds.submitted) != 8 {
		t.Errorf("submitted %d, want 8", len(cmds.submitted))
	}
}

func TestSubmitFailureRetiresSlot(t *testing.T) {
	b, cmds, _ := newTestBackend(t)
	cmds.submitErr = errors.New("VK_ERROR_DEVICE_LOST")

	cmd := b.AcquireCommandBuffer()
	if tok := b.SubmitCommandBuffer(cmd); tok != 0 {
		t.Errorf("SubmitCommandBuffer() = %d, want 0", tok)
	}
	cmds.submitErr = nil
	cmds.signalAll()
	if b.AcquireCommandBuffer() == cmd {
		t.Error("slot with a failed submission was reused")
	}

	b.WaitAll()
	if len(cmds.waits) != 0 {
		t.Error("WaitAll() waited on a submission that never happened")
	}
}

func TestSubmitTwiceKeepsSlotInFlight(t *testing.T) {
	b, cmds, _ := newTestBackend(t)

	cmd := b.AcquireCommandBuffer()
	if tok := b.SubmitCommandBuffer(cmd); tok != 1 {
		t.Fatalf("SubmitCommandBuffer() = %d, want 1", tok)
	}
	if tok := b.SubmitCommandBuffer(cmd); tok != 0 {
		t.Errorf("second SubmitCommandBuffer() = %d, want 0", tok)
	}
	if len(cmds.submitted) != 1 {
		t.Errorf("submitted %d, want 1", len(cmds.submitted))
	}
	if got := b.AcquireCommandBuffer(); got == cmd {
		t.Error("AcquireCommandBuffer() reused a buffer whose fence has not signaled")
	}
}

func TestSubmitRetiredBuffer(t *testing.T) {
	b, cmds, _ := newTestBackend(t)
	cmds.submitErr = errors.New("VK_ERROR_DEVICE_LOST")

	cmd := b.AcquireCommandBuffer()
	b.SubmitCommandBuffer(cmd)
	cmds.submitErr = nil
	if tok := b.SubmitCommandBuffer(cmd); tok != 0 {
		t.Errorf("SubmitCommandBuffer(retired) = %d, want 0", tok)
	}
	if len(cmds.submitted) != 0 {
		t.Errorf("submitted %d, want 0", len(cmds.submitted))
	}
	cmds.signalAll()
	if b.AcquireCommandBuffer() == cmd {
		t.Error("retired buffer was reused")
	}
}

func TestBeginFailureFreesSlot(t *testing.T) {
	b, cmds, _ := newTestBackend(t)
	cmds.beginErr = errors.New("VK_ERROR_OUT_OF_HOST_MEMORY")
	if cmd := b.AcquireCommandBuffer(); cmd != 0 {
		t.Fatalf("AcquireCommandBuffer() = %#x, want 0", cmd)
	}
	cmds.beginErr = nil
	if b.AcquireCommandBuffer() == 0 {
		t.Fatal("AcquireCommandBuffer() = 0 after recovery")
	}
	if b.PoolSize() != 1 {
		t.Errorf("PoolSize() = %d, want 1", b.PoolSize())
	}
}

func TestAllocationFailure(t *testing.T) {
	b, cmds, _ := newTestBackend(t)
	cmds.allocateErr = errors.New("VK_ERROR_OUT_OF_DEVICE_MEMORY")
	if cmd := b.AcquireCommandBuffer(); cmd != 0 {
		t.Errorf("AcquireCommandBuffer() = %#x, want 0", cmd)
	}
	if cmds.pools != 0 {
		t.Errorf("%d command pools leaked", cmds.pools)
	}
}

func TestResolveRecordsAndRestoresBarrier(t *testing.T) {
	b, cmds, host := newTestBackend(t)
	img := host.addImage(1, Image{
		Layout: vk.ImageLayoutShaderReadOnlyOptimal, Format: vk.FormatR8g8b8a8Unorm, Type: vk.ImageType2d,
		Extent: vk.Extent3D{Width: 1920, Height: 1080, Depth: 1}, MipLevels: 1, ArrayLayers: 1,
	})

	h := b.AcquireCommandBuffer()
	cmd := bufferOf(t, b, h)
	res := b.ResolveResource(device.ResourceRef{TextureID: 1}, device.ResolveOptions{Access: device.AccessUnorderedAccess})
	if res.Native != handleOf(img.Image) {
		t.Fatal("ResolveResource() returned the wrong image")
	}
	if vk.ImageLayout(res.State) != vk.ImageLayoutGeneral {
		t.Errorf("State = %d, want GENERAL", res.State)
	}
	if b.PendingTransitions() != 1 {
		t.Fatalf("PendingTransitions() = %d, want 1", b.PendingTransitions())
	}

	b.SubmitCommandBuffer(h)
	got := cmds.barriersOn(cmd)
	if len(got) != 2 {
		t.Fatalf("recorded %d barriers, want 2", len(got))
	}
	if got[0].OldLayout != vk.ImageLayoutShaderReadOnlyOptimal || got[0].NewLayout != vk.ImageLayoutGeneral {
		t.Errorf("into barrier %d -> %d", got[0].OldLayout, got[0].NewLayout)
	}
	if got[1].OldLayout != vk.ImageLayoutGeneral || got[1].NewLayout != vk.ImageLayoutShaderReadOnlyOptimal {
		t.Errorf("restore barrier %d -> %d", got[1].OldLayout, got[1].NewLayout)
	}
	if got[0].Image != img.Image || got[0].SubresourceRange.AspectMask != vk.ImageAspectFlags(vk.ImageAspectColorBit) {
		t.Errorf("barrier targets %+v", got[0].SubresourceRange)
	}

	// The restore barrier is recorded before the buffer ends.
	end := slices.Index(cmds.log, "end")
	last := -1
	for i, e := range cmds.log {
		if e == "barrier" {
			last = i
		}
	}
	if last > end {
		t.Error("restore barrier recorded after vkEndCommandBuffer")
	}
	if b.PendingTransitions() != 0 {
		t.Error("transitions not cleared by submit")
	}
}

func TestResolveBeforeAcquire(t *testing.T) {
	b, cmds, host := newTestBackend(t)
	host.addImage(1, Image{Layout: vk.ImageLayoutGeneral, Format: vk.FormatD32Sfloat, Type: vk.ImageType2d})

	res := b.ResolveResource(device.ResourceRef{TextureID: 1}, device.ResolveOptions{})
	if vk.ImageLayout(res.State) != vk.ImageLayoutDepthStencilReadOnlyOptimal {
		t.Errorf("State = %d, want DEPTH_STENCIL_READ_ONLY_OPTIMAL", res.State)
	}
	if len(cmds.barriers) != 0 {
		t.Fatal("barrier recorded with no command buffer recording")
	}

	cmd := bufferOf(t, b, b.AcquireCommandBuffer())
	got := cmds.barriersOn(cmd)
	if len(got) != 1 || got[0].NewLayout != vk.ImageLayoutDepthStencilReadOnlyOptimal {
		t.Fatalf("barriers after acquire = %+v", got)
	}
	if got[0].SubresourceRange.AspectMask != vk.ImageAspectFlags(vk.ImageAspectDepthBit) {
		t.Errorf("aspect = %#x, want depth", got[0].SubresourceRange.AspectMask)
	}
}

func TestResolveObserveOnly(t *testing.T) {
	b, cmds, host := newTestBackend(t)
	host.addImage(1, Image{Layout: vk.ImageLayoutTransferSrcOptimal, Format: vk.FormatR8g8b8a8Unorm, Type: vk.ImageType2d})

	b.AcquireCommandBuffer()
	res := b.ResolveResource(device.ResourceRef{TextureID: 1}, device.ResolveOptions{ObserveOnly: true, Access: device.AccessUnorderedAccess})
	if vk.ImageLayout(res.State) != vk.ImageLayoutTransferSrcOptimal {
		t.Errorf("State = %d, want host layout", res.State)
	}
	if len(cmds.barriers) != 0 || b.PendingTransitions() != 0 {
		t.Error("observe-only resolve recorded a barrier")
	}
	if !host.observed[0] {
		t.Error("host not told the access is observe-only")
	}
}

func TestResolveTwice(t *testing.T) {
	b, cmds, host := newTestBackend(t)
	host.addImage(1, Image{Layout: vk.ImageLayoutShaderReadOnlyOptimal, Format: vk.FormatR16g16b16a16Sfloat, Type: vk.ImageType2d})

	h := b.AcquireCommandBuffer()
	ref := device.ResourceRef{TextureID: 1}
	b.ResolveResource(ref, device.ResolveOptions{Access: device.AccessCopyDst})
	b.ResolveResource(ref, device.ResolveOptions{Access: device.AccessCopyDst})
	b.ResolveResource(ref, device.ResolveOptions{Access: device.AccessUnorderedAccess})
	b.SubmitCommandBuffer(h)

	got := cmds.barriersOn(bufferOf(t, b, h))
	want := [][2]vk.ImageLayout{
		{vk.ImageLayoutShaderReadOnlyOptimal, vk.ImageLayoutTransferDstOptimal},
		{vk.ImageLayoutTransferDstOptimal, vk.ImageLayoutGeneral},
		{vk.ImageLayoutGeneral, vk.ImageLayoutShaderReadOnlyOptimal},
	}
	if len(got) != len(want) {
		t.Fatalf("recorded %d barriers, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].OldLayout != w[0] || got[i].NewLayout != w[1] {
			t.Errorf("barrier %d: %d -> %d, want %d -> %d", i, got[i].OldLayout, got[i].NewLayout, w[0], w[1])
		}
	}
}

func TestUndefinedLayoutNotRestored(t *testing.T) {
	b, cmds, host := newTestBackend(t)
	host.addImage(1, Image{Layout: vk.ImageLayoutUndefined, Format: vk.FormatR8g8b8a8Unorm, Type: vk.ImageType2d})

	h := b.AcquireCommandBuffer()
	b.ResolveResource(device.ResourceRef{TextureID: 1}, device.ResolveOptions{Access: device.AccessUnorderedAccess})
	b.SubmitCommandBuffer(h)
	if n := len(cmds.barriersOn(bufferOf(t, b, h))); n != 1 {
		t.Errorf("recorded %d barriers, want 1", n)
	}
}

func TestResolveUnknown(t *testing.T) {
	b, _, _ := newTestBackend(t)
	if res := b.ResolveResource(device.ResourceRef{}, device.ResolveOptions{}); !res.IsNull() {
		t.Errorf("ResolveResource(null) = %+v", res)
	}
	if res := b.ResolveResource(device.ResourceRef{TextureID: 42}, device.ResolveOptions{Describe: true}); !res.IsNull() || !res.Desc.IsZero() {
		t.Errorf("ResolveResource(unknown) = %+v", res)
	}
	if b.PendingTransitions() != 0 {
		t.Error("unknown texture recorded a transition")
	}
}

func TestDestroyWaitsBeforeFreeing(t *testing.T) {
	b, cmds, _ := newTestBackend(t)
	b.SubmitCommandBuffer(b.AcquireCommandBuffer())
	b.SubmitCommandBuffer(b.AcquireCommandBuffer())
	b.AcquireCommandBuffer() // checked out, never submitted

	b.Destroy()

	wait := slices.Index(cmds.log, "wait")
	free := slices.Index(cmds.log, "free buffer")
	if wait < 0 || free < 0 || wait > free {
		t.Fatalf("log = %v, want wait before free", cmds.log)
	}
	if len(cmds.waits) != 1 || len(cmds.waits[0]) != 2 {
		t.Errorf("waited on %v, want both submitted fences", cmds.waits)
	}
	if cmds.pools != 0 || cmds.buffers != 0 || cmds.fences != 0 {
		t.Errorf("leaked pools %d, buffers %d, fences %d", cmds.pools, cmds.buffers, cmds.fences)
	}

	n := len(cmds.log)
	b.Destroy()
	if len(cmds.log) != n {
		t.Error("second Destroy() did work")
	}
	if b.NativeDevice() != 0 {
		t.Error("NativeDevice() != 0 after Destroy")
	}
}

func TestWaitFor(t *testing.T) {
	b, cmds, _ := newTestBackend(t)
	first := b.SubmitCommandBuffer(b.AcquireCommandBuffer())
	b.SubmitCommandBuffer(b.AcquireCommandBuffer())

	b.WaitFor(first)
	if len(cmds.waits) != 1 || len(cmds.waits[0]) != 1 {
		t.Fatalf("waited on %v, want only the first fence", cmds.waits)
	}
	if got := b.CompletedValue(); got != first {
		t.Errorf("CompletedValue() = %d, want %d", got, first)
	}
}

func TestRegistered(t *testing.T) {
	d, err := device.NewFactory().GetOrCreate(device.APIVulkan)
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	if _, ok := d.(*Backend); !ok {
		t.Errorf("GetOrCreate() = %T, want *Backend", d)
	}
}
