// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package dxgi holds the DXGI_FORMAT values shared by the Direct3D
// backends and their translation to device.SurfaceFormat.
package dxgi

import "github.com/gogpu/upscaler/device"

// Format is a DXGI_FORMAT value.
type Format uint32

// DXGI_FORMAT values used by the translator.
const (
	FormatUnknown                  Format = 0
	FormatR32G32B32A32Typeless     Format = 1
	FormatR32G32B32A32Float        Format = 2
	FormatR32G32B32A32Uint         Format = 3
	FormatR32G32B32A32Sint         Format = 4
	FormatR32G32B32Typeless        Format = 5
	FormatR32G32B32Float           Format = 6
	FormatR16G16B16A16Typeless     Format = 9
	FormatR16G16B16A16Float        Format = 10
	FormatR16G16B16A16Unorm        Format = 11
	FormatR32G32Typeless           Format = 15
	FormatR32G32Float              Format = 16
	FormatR32G8X24Typeless         Format = 19
	FormatD32FloatS8X24Uint        Format = 20
	FormatR32FloatX8X24Typeless    Format = 21
	FormatX32TypelessG8X24Uint     Format = 22
	FormatR10G10B10A2Typeless      Format = 23
	FormatR10G10B10A2Unorm         Format = 24
	FormatR11G11B10Float           Format = 26
	FormatR8G8B8A8Typeless         Format = 27
	FormatR8G8B8A8Unorm            Format = 28
	FormatR8G8B8A8UnormSRGB        Format = 29
	FormatR8G8B8A8Uint             Format = 30
	FormatR8G8B8A8Snorm            Format = 31
	FormatR16G16Typeless           Format = 33
	FormatR16G16Float              Format = 34
	FormatR16G16Uint               Format = 36
	FormatR16G16Sint               Format = 38
	FormatR32Typeless              Format = 39
	FormatD32Float                 Format = 40
	FormatR32Float                 Format = 41
	FormatR32Uint                  Format = 42
	FormatR24G8Typeless            Format = 44
	FormatD24UnormS8Uint           Format = 45
	FormatR24UnormX8Typeless       Format = 46
	FormatX24TypelessG8Uint        Format = 47
	FormatR8G8Typeless             Format = 48
	FormatR8G8Unorm                Format = 49
	FormatR8G8Uint                 Format = 50
	FormatR16Typeless              Format = 53
	FormatR16Float                 Format = 54
	FormatD16Unorm                 Format = 55
	FormatR16Unorm                 Format = 56
	FormatR16Uint                  Format = 57
	FormatR16Snorm                 Format = 58
	FormatR8Typeless               Format = 60
	FormatR8Unorm                  Format = 61
	FormatR8Uint                   Format = 62
	FormatA8Unorm                  Format = 65
	FormatR9G9B9E5SharedExp        Format = 67
	FormatB8G8R8A8Unorm            Format = 87
	FormatB8G8R8A8Typeless         Format = 90
	FormatB8G8R8A8UnormSRGB        Format = 91
)

// surfaceFormats maps every translatable DXGI format. Typeless formats and
// anything absent map to SurfaceFormatUnknown.
var surfaceFormats = map[Format]device.SurfaceFormat{
	FormatR32G32B32A32Float: device.SurfaceFormatR32G32B32A32Float,
	FormatR32G32B32A32Uint:  device.SurfaceFormatR32G32B32A32Uint,
	FormatR32G32B32Float:    device.SurfaceFormatR32G32B32Float,
	FormatR16G16B16A16Float: device.SurfaceFormatR16G16B16A16Float,
	FormatR32G32Float:       device.SurfaceFormatR32G32Float,

	// Depth formats translate to the format of their readable plane.
	FormatD32FloatS8X24Uint:    device.SurfaceFormatR32Float,
	FormatD24UnormS8Uint:       device.SurfaceFormatR32Uint,
	FormatX32TypelessG8X24Uint: device.SurfaceFormatR8Uint,
	FormatX24TypelessG8Uint:    device.SurfaceFormatR8Uint,
	FormatD32Float:             device.SurfaceFormatR32Float,
	FormatD16Unorm:             device.SurfaceFormatR16Unorm,

	FormatR10G10B10A2Unorm:  device.SurfaceFormatR10G10B10A2Unorm,
	FormatR11G11B10Float:    device.SurfaceFormatR11G11B10Float,
	FormatR8G8B8A8Unorm:     device.SurfaceFormatR8G8B8A8Unorm,
	FormatR8G8B8A8UnormSRGB: device.SurfaceFormatR8G8B8A8Srgb,
	FormatR8G8B8A8Snorm:     device.SurfaceFormatR8G8B8A8Snorm,
	FormatB8G8R8A8Unorm:     device.SurfaceFormatB8G8R8A8Unorm,
	FormatB8G8R8A8UnormSRGB: device.SurfaceFormatB8G8R8A8Srgb,
	FormatR16G16Float:       device.SurfaceFormatR16G16Float,
	FormatR16G16Uint:        device.SurfaceFormatR16G16Uint,
	FormatR16G16Sint:        device.SurfaceFormatR16G16Sint,
	FormatR32Uint:           device.SurfaceFormatR32Uint,
	FormatR32Float:          device.SurfaceFormatR32Float,
	FormatR8G8Uint:          device.SurfaceFormatR8G8Uint,
	FormatR8G8Unorm:         device.SurfaceFormatR8G8Unorm,
	FormatR16Float:          device.SurfaceFormatR16Float,
	FormatR16Uint:           device.SurfaceFormatR16Uint,
	FormatR16Unorm:          device.SurfaceFormatR16Unorm,
	FormatR16Snorm:          device.SurfaceFormatR16Snorm,
	FormatR8Unorm:           device.SurfaceFormatR8Unorm,
	FormatA8Unorm:           device.SurfaceFormatR8Unorm,
	FormatR8Uint:            device.SurfaceFormatR8Uint,
	FormatR9G9B9E5SharedExp: device.SurfaceFormatR9G9B9E5SharedExp,
}

// Surface translates f. Unknown and typeless formats yield
// device.SurfaceFormatUnknown.
func (f Format) Surface() device.SurfaceFormat {
	return surfaceFormats[f]
}

// IsDepth reports whether f is a depth format without stencil.
func (f Format) IsDepth() bool {
	return f == FormatD16Unorm || f == FormatD32Float
}

// IsDepthStencil reports whether f is a combined depth/stencil format.
func (f Format) IsDepthStencil() bool {
	return f == FormatD24UnormS8Uint || f == FormatD32FloatS8X24Uint
}

// Usage returns the depth/stencil usage implied by f, or
// device.UsageReadOnly for color formats.
func (f Format) Usage() device.Usage {
	switch {
	case f.IsDepth():
		return device.UsageDepthTarget
	case f.IsDepthStencil():
		return device.UsageDepthTarget | device.UsageStencilTarget
	default:
		return device.UsageReadOnly
	}
}
