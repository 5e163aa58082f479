// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vulkan

import (
	vk "github.com/vulkan-go/vulkan"

	"github.com/gogpu/upscaler/device"
)

// Depth and stencil planes translate to the format of their readable
// plane.
var surfaceFormats = map[vk.Format]device.SurfaceFormat{
	vk.FormatR32g32b32a32Sfloat:     device.SurfaceFormatR32G32B32A32Float,
	vk.FormatR32g32b32Sfloat:        device.SurfaceFormatR32G32B32Float,
	vk.FormatR32g32b32a32Uint:       device.SurfaceFormatR32G32B32A32Uint,
	vk.FormatR16g16b16a16Sfloat:     device.SurfaceFormatR16G16B16A16Float,
	vk.FormatR32g32Sfloat:           device.SurfaceFormatR32G32Float,
	vk.FormatR32Uint:                device.SurfaceFormatR32Uint,
	vk.FormatD24UnormS8Uint:         device.SurfaceFormatR32Uint,
	vk.FormatX8D24UnormPack32:       device.SurfaceFormatR32Uint,
	vk.FormatR8g8b8a8Unorm:          device.SurfaceFormatR8G8B8A8Unorm,
	vk.FormatR8g8b8a8Snorm:          device.SurfaceFormatR8G8B8A8Snorm,
	vk.FormatR8g8b8a8Srgb:           device.SurfaceFormatR8G8B8A8Srgb,
	vk.FormatB8g8r8a8Unorm:          device.SurfaceFormatB8G8R8A8Unorm,
	vk.FormatB8g8r8a8Srgb:           device.SurfaceFormatB8G8R8A8Srgb,
	vk.FormatB10g11r11UfloatPack32:  device.SurfaceFormatR11G11B10Float,
	vk.FormatA2b10g10r10UnormPack32: device.SurfaceFormatR10G10B10A2Unorm,
	vk.FormatR16g16Sfloat:           device.SurfaceFormatR16G16Float,
	vk.FormatR16g16Uint:             device.SurfaceFormatR16G16Uint,
	vk.FormatR16g16Sint:             device.SurfaceFormatR16G16Sint,
	vk.FormatR16Sfloat:              device.SurfaceFormatR16Float,
	vk.FormatR16Uint:                device.SurfaceFormatR16Uint,
	vk.FormatR16Unorm:               device.SurfaceFormatR16Unorm,
	vk.FormatD16Unorm:               device.SurfaceFormatR16Unorm,
	vk.FormatD16UnormS8Uint:         device.SurfaceFormatR16Unorm,
	vk.FormatR16Snorm:               device.SurfaceFormatR16Snorm,
	vk.FormatR8Unorm:                device.SurfaceFormatR8Unorm,
	vk.FormatR8Uint:                 device.SurfaceFormatR8Uint,
	vk.FormatS8Uint:                 device.SurfaceFormatR8Uint,
	vk.FormatR8g8Unorm:              device.SurfaceFormatR8G8Unorm,
	vk.FormatR8g8Uint:               device.SurfaceFormatR8G8Uint,
	vk.FormatR32Sfloat:              device.SurfaceFormatR32Float,
	vk.FormatD32Sfloat:              device.SurfaceFormatR32Float,
	vk.FormatD32SfloatS8Uint:        device.SurfaceFormatR32Float,
	vk.FormatE5b9g9r9UfloatPack32:   device.SurfaceFormatR9G9B9E5SharedExp,
}

// SurfaceFormat translates f. Formats without a counterpart yield
// device.SurfaceFormatUnknown.
func SurfaceFormat(f vk.Format) device.SurfaceFormat {
	return surfaceFormats[f]
}

// HasDepth reports whether f has a depth plane.
func HasDepth(f vk.Format) bool {
	switch f {
	case vk.FormatD16Unorm, vk.FormatX8D24UnormPack32, vk.FormatD32Sfloat,
		vk.FormatD16UnormS8Uint, vk.FormatD24UnormS8Uint, vk.FormatD32SfloatS8Uint:
		return true
	}
	return false
}

// HasStencil reports whether f has a stencil plane.
func HasStencil(f vk.Format) bool {
	switch f {
	case vk.FormatS8Uint, vk.FormatD16UnormS8Uint, vk.FormatD24UnormS8Uint, vk.FormatD32SfloatS8Uint:
		return true
	}
	return false
}

// aspectOf returns the aspects a barrier on an image of format f covers.
func aspectOf(f vk.Format) vk.ImageAspectFlags {
	var aspect vk.ImageAspectFlagBits
	if HasDepth(f) {
		aspect |= vk.ImageAspectDepthBit
	}
	if HasStencil(f) {
		aspect |= vk.ImageAspectStencilBit
	}
	if aspect == 0 {
		aspect = vk.ImageAspectColorBit
	}
	return vk.ImageAspectFlags(aspect)
}

// Describe translates the host's image record. extra is merged into the
// usage; device.UsageArrayView keeps cube-compatible images as 2D arrays.
func Describe(img Image, extra device.Usage) device.Description {
	d := device.Description{
		Width:    img.Extent.Width,
		Height:   img.Extent.Height,
		MipCount: img.MipLevels,
		Format:   SurfaceFormat(img.Format),
	}

	if HasDepth(img.Format) {
		d.Usage |= device.UsageDepthTarget
	}
	if HasStencil(img.Format) {
		d.Usage |= device.UsageStencilTarget
	}
	if img.Usage&vk.ImageUsageFlags(vk.ImageUsageStorageBit) != 0 {
		d.Usage |= device.UsageUAV
	}
	d.Usage |= extra

	if img.Flags&vk.ImageCreateFlags(vk.ImageCreateMutableFormatBit) != 0 {
		d.Format = d.Format.Gamma()
	}

	switch img.Type {
	case vk.ImageType1d:
		d.Type = device.ResourceTexture1D
		d.Depth = img.ArrayLayers
	case vk.ImageType2d:
		d.Depth = img.ArrayLayers
		switch {
		case d.Usage.Has(device.UsageArrayView):
			d.Type = device.ResourceTexture2D
		case img.Flags&vk.ImageCreateFlags(vk.ImageCreateCubeCompatibleBit) != 0:
			d.Type = device.ResourceTextureCube
		default:
			d.Type = device.ResourceTexture2D
		}
	case vk.ImageType3d:
		d.Type = device.ResourceTexture3D
		d.Depth = img.Extent.Depth
	}
	return d
}
