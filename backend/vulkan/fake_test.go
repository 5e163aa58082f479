// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vulkan

import (
	"errors"
	"unsafe"

	vk "github.com/vulkan-go/vulkan"

	"github.com/gogpu/upscaler/device"
)

type recordedBarrier struct {
	cmd vk.CommandBuffer
	vk.ImageMemoryBarrier
}

// fakeCommands tracks Vulkan objects as opaque Go allocations. Fences are
// signaled on creation and only signal again when the test says so, unless
// autoSignal is set.
type fakeCommands struct {
	keep []*uint64

	pools   int
	buffers int
	fences  int

	signaled map[vk.Fence]bool
	recorder map[vk.CommandBuffer]bool

	log        []string
	poolResets []vk.CommandPool
	barriers   []recordedBarrier
	submitted  []vk.CommandBuffer
	waits      [][]vk.Fence

	autoSignal  bool
	beginErr    error
	submitErr   error
	resetErr    error
	allocateErr error
}

func newFakeCommands() *fakeCommands {
	return &fakeCommands{
		signaled: make(map[vk.Fence]bool),
		recorder: make(map[vk.CommandBuffer]bool),
	}
}

func (f *fakeCommands) object() unsafe.Pointer {
	p := new(uint64)
	f.keep = append(f.keep, p)
	return unsafe.Pointer(p)
}

func (f *fakeCommands) CreateCommandPool(vk.Device, uint32) (vk.CommandPool, error) {
	f.pools++
	return vk.CommandPool(f.object()), nil
}

func (f *fakeCommands) ResetCommandPool(_ vk.Device, pool vk.CommandPool) error {
	f.poolResets = append(f.poolResets, pool)
	return nil
}

func (f *fakeCommands) DestroyCommandPool(vk.Device, vk.CommandPool) {
	f.pools--
	f.log = append(f.log, "destroy pool")
}

func (f *fakeCommands) AllocateCommandBuffer(vk.Device, vk.CommandPool) (vk.CommandBuffer, error) {
	if f.allocateErr != nil {
		return nil, f.allocateErr
	}
	f.buffers++
	return vk.CommandBuffer(f.object()), nil
}

func (f *fakeCommands) FreeCommandBuffer(vk.Device, vk.CommandPool, vk.CommandBuffer) {
	f.buffers--
	f.log = append(f.log, "free buffer")
}

func (f *fakeCommands) BeginCommandBuffer(cmd vk.CommandBuffer) error {
	if f.beginErr != nil {
		return f.beginErr
	}
	if f.recorder[cmd] {
		return errors.New("already recording")
	}
	f.recorder[cmd] = true
	f.log = append(f.log, "begin")
	return nil
}

func (f *fakeCommands) EndCommandBuffer(cmd vk.CommandBuffer) error {
	if !f.recorder[cmd] {
		return errors.New("not recording")
	}
	f.recorder[cmd] = false
	f.log = append(f.log, "end")
	return nil
}

func (f *fakeCommands) PipelineBarrier(cmd vk.CommandBuffer, _, _ vk.PipelineStageFlags, barriers []vk.ImageMemoryBarrier) {
	for _, b := range barriers {
		f.barriers = append(f.barriers, recordedBarrier{cmd: cmd, ImageMemoryBarrier: b})
	}
	f.log = append(f.log, "barrier")
}

func (f *fakeCommands) CreateFence(vk.Device) (vk.Fence, error) {
	f.fences++
	fence := vk.Fence(f.object())
	f.signaled[fence] = true
	return fence, nil
}

func (f *fakeCommands) FenceSignaled(_ vk.Device, fence vk.Fence) (bool, error) {
	return f.signaled[fence], nil
}

// WaitForFences stands in for the GPU finishing the work.
func (f *fakeCommands) WaitForFences(_ vk.Device, fences []vk.Fence) error {
	f.waits = append(f.waits, fences)
	f.log = append(f.log, "wait")
	for _, fence := range fences {
		f.signaled[fence] = true
	}
	return nil
}

func (f *fakeCommands) ResetFence(_ vk.Device, fence vk.Fence) error {
	if f.resetErr != nil {
		return f.resetErr
	}
	f.signaled[fence] = false
	return nil
}

func (f *fakeCommands) DestroyFence(vk.Device, vk.Fence) {
	f.fences--
	f.log = append(f.log, "destroy fence")
}

func (f *fakeCommands) QueueSubmit(_ vk.Queue, cmd vk.CommandBuffer, fence vk.Fence) error {
	if f.submitErr != nil {
		return f.submitErr
	}
	f.submitted = append(f.submitted, cmd)
	f.log = append(f.log, "submit")
	if f.autoSignal {
		f.signaled[fence] = true
	}
	return nil
}

// signalAll completes every submission.
func (f *fakeCommands) signalAll() {
	for fence := range f.signaled {
		f.signaled[fence] = true
	}
}

func (f *fakeCommands) barriersOn(cmd vk.CommandBuffer) []vk.ImageMemoryBarrier {
	var out []vk.ImageMemoryBarrier
	for _, b := range f.barriers {
		if b.cmd == cmd {
			out = append(out, b.ImageMemoryBarrier)
		}
	}
	return out
}

type fakeHost struct {
	inst     Instance
	images   map[device.TextureID]Image
	observed []bool
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		inst: Instance{
			Device:           vk.Device(unsafe.Pointer(new(uint64))),
			Queue:            vk.Queue(unsafe.Pointer(new(uint64))),
			QueueFamilyIndex: 2,
		},
		images: make(map[device.TextureID]Image),
	}
}

func (h *fakeHost) Instance() Instance { return h.inst }

func (h *fakeHost) AccessTexture(ref device.ResourceRef, observeOnly bool) (Image, bool) {
	h.observed = append(h.observed, observeOnly)
	img, ok := h.images[ref.TextureID]
	return img, ok
}

func (h *fakeHost) Graphics(kind device.APIKind) any {
	if kind != device.APIVulkan {
		return nil
	}
	return h
}

func (h *fakeHost) addImage(id device.TextureID, img Image) Image {
	img.Image = vk.Image(unsafe.Pointer(new(uint64)))
	h.images[id] = img
	return img
}
