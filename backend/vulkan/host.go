// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vulkan

import (
	"unsafe"

	vk "github.com/vulkan-go/vulkan"

	"github.com/gogpu/upscaler/device"
)

// Instance is the engine's Vulkan setup.
type Instance struct {
	// GetInstanceProcAddr is the engine's vkGetInstanceProcAddr. The
	// vulkan-go binding loads every entry point through it.
	GetInstanceProcAddr unsafe.Pointer

	Instance         vk.Instance
	PhysicalDevice   vk.PhysicalDevice
	Device           vk.Device
	Queue            vk.Queue
	QueueFamilyIndex uint32
}

// Image is an engine texture as the host exposes it.
type Image struct {
	Image vk.Image

	// Layout is the layout the host believes the image is in.
	Layout vk.ImageLayout

	Format      vk.Format
	Type        vk.ImageType
	Extent      vk.Extent3D
	MipLevels   uint32
	ArrayLayers uint32
	Usage       vk.ImageUsageFlags
	Flags       vk.ImageCreateFlags
}

// Host is the engine's Vulkan interface.
type Host interface {
	Instance() Instance

	// AccessTexture returns the image behind ref. Unless observeOnly is set
	// the engine ends any open render pass so the caller may record
	// barriers on the image. It reports false for unknown textures.
	AccessTexture(ref device.ResourceRef, observeOnly bool) (Image, bool)
}

// handleOf converts a dispatchable or non-dispatchable Vulkan handle to
// the untyped form used across the device boundary. T must be
// pointer-shaped; cgo handles point at incomplete structs, so the pointer
// bits are read directly instead of naming the element type.
func handleOf[T any](h T) device.Handle {
	return device.Handle(*(*uintptr)(unsafe.Pointer(&h)))
}
