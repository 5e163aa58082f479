// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vulkan

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// Commands is the slice of the Vulkan API the backend calls. The default
// binding goes through vulkan-go; tests supply fakes through WithCommands.
type Commands interface {
	// CreateCommandPool creates a transient pool on the queue family.
	CreateCommandPool(dev vk.Device, queueFamily uint32) (vk.CommandPool, error)
	ResetCommandPool(dev vk.Device, pool vk.CommandPool) error
	DestroyCommandPool(dev vk.Device, pool vk.CommandPool)

	// AllocateCommandBuffer allocates one primary command buffer.
	AllocateCommandBuffer(dev vk.Device, pool vk.CommandPool) (vk.CommandBuffer, error)
	FreeCommandBuffer(dev vk.Device, pool vk.CommandPool, cmd vk.CommandBuffer)
	BeginCommandBuffer(cmd vk.CommandBuffer) error
	EndCommandBuffer(cmd vk.CommandBuffer) error
	PipelineBarrier(cmd vk.CommandBuffer, src, dst vk.PipelineStageFlags, barriers []vk.ImageMemoryBarrier)

	// CreateFence creates a fence in the signaled state.
	CreateFence(dev vk.Device) (vk.Fence, error)
	FenceSignaled(dev vk.Device, fence vk.Fence) (bool, error)
	WaitForFences(dev vk.Device, fences []vk.Fence) error
	ResetFence(dev vk.Device, fence vk.Fence) error
	DestroyFence(dev vk.Device, fence vk.Fence)

	// QueueSubmit submits cmd alone and signals fence on completion.
	QueueSubmit(queue vk.Queue, cmd vk.CommandBuffer, fence vk.Fence) error
}

// loadCommands points vulkan-go at the host's loader and resolves the
// instance-level entry points.
func loadCommands(inst Instance) (Commands, error) {
	if inst.GetInstanceProcAddr == nil {
		return nil, ErrNoLoader
	}
	vk.SetGetInstanceProcAddr(inst.GetInstanceProcAddr)
	if err := vk.Init(); err != nil {
		return nil, fmt.Errorf("vulkan: vk.Init: %w", err)
	}
	if err := vk.InitInstance(inst.Instance); err != nil {
		return nil, fmt.Errorf("vulkan: vk.InitInstance: %w", err)
	}
	return vkCommands{}, nil
}

// vkCommands binds Commands to vulkan-go.
type vkCommands struct{}

func (vkCommands) CreateCommandPool(dev vk.Device, queueFamily uint32) (pool vk.CommandPool, err error) {
	info := vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		Flags:            vk.CommandPoolCreateFlags(vk.CommandPoolCreateTransientBit),
		QueueFamilyIndex: queueFamily,
	}
	err = vk.Error(vk.CreateCommandPool(dev, &info, nil, &pool))
	return pool, err
}

func (vkCommands) ResetCommandPool(dev vk.Device, pool vk.CommandPool) error {
	return vk.Error(vk.ResetCommandPool(dev, pool, 0))
}

func (vkCommands) DestroyCommandPool(dev vk.Device, pool vk.CommandPool) {
	vk.DestroyCommandPool(dev, pool, nil)
}

func (vkCommands) AllocateCommandBuffer(dev vk.Device, pool vk.CommandPool) (vk.CommandBuffer, error) {
	info := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        pool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: 1,
	}
	buffers := make([]vk.CommandBuffer, 1)
	if err := vk.Error(vk.AllocateCommandBuffers(dev, &info, buffers)); err != nil {
		return nil, err
	}
	return buffers[0], nil
}

func (vkCommands) FreeCommandBuffer(dev vk.Device, pool vk.CommandPool, cmd vk.CommandBuffer) {
	vk.FreeCommandBuffers(dev, pool, 1, []vk.CommandBuffer{cmd})
}

func (vkCommands) BeginCommandBuffer(cmd vk.CommandBuffer) error {
	info := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit),
	}
	return vk.Error(vk.BeginCommandBuffer(cmd, &info))
}

func (vkCommands) EndCommandBuffer(cmd vk.CommandBuffer) error {
	return vk.Error(vk.EndCommandBuffer(cmd))
}

func (vkCommands) PipelineBarrier(cmd vk.CommandBuffer, src, dst vk.PipelineStageFlags, barriers []vk.ImageMemoryBarrier) {
	vk.CmdPipelineBarrier(cmd, src, dst, 0, 0, nil, 0, nil, uint32(len(barriers)), barriers)
}

func (vkCommands) CreateFence(dev vk.Device) (fence vk.Fence, err error) {
	info := vk.FenceCreateInfo{
		SType: vk.StructureTypeFenceCreateInfo,
		Flags: vk.FenceCreateFlags(vk.FenceCreateSignaledBit),
	}
	err = vk.Error(vk.CreateFence(dev, &info, nil, &fence))
	return fence, err
}

func (vkCommands) FenceSignaled(dev vk.Device, fence vk.Fence) (bool, error) {
	switch ret := vk.GetFenceStatus(dev, fence); ret {
	case vk.Success:
		return true, nil
	case vk.NotReady:
		return false, nil
	default:
		return false, vk.Error(ret)
	}
}

func (vkCommands) WaitForFences(dev vk.Device, fences []vk.Fence) error {
	return vk.Error(vk.WaitForFences(dev, uint32(len(fences)), fences, vk.True, vk.MaxUint64))
}

func (vkCommands) ResetFence(dev vk.Device, fence vk.Fence) error {
	return vk.Error(vk.ResetFences(dev, 1, []vk.Fence{fence}))
}

func (vkCommands) DestroyFence(dev vk.Device, fence vk.Fence) {
	vk.DestroyFence(dev, fence, nil)
}

func (vkCommands) QueueSubmit(queue vk.Queue, cmd vk.CommandBuffer, fence vk.Fence) error {
	submit := []vk.SubmitInfo{{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: 1,
		PCommandBuffers:    []vk.CommandBuffer{cmd},
	}}
	return vk.Error(vk.QueueSubmit(queue, 1, submit, fence))
}
