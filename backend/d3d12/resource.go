// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package d3d12

import "github.com/gogpu/upscaler/device"

// StateFor returns the D3D12 state a submission needs for access.
func StateFor(access device.Access) State {
	switch access {
	case device.AccessUnorderedAccess:
		return StateUnorderedAccess
	case device.AccessCopySrc:
		return StateCopySource
	case device.AccessCopyDst:
		return StateCopyDest
	case device.AccessGenericRead:
		return StateNonPixelShaderResource | StateCopySource
	case device.AccessPixelRead:
		return StatePixelShaderResource
	case device.AccessRenderTarget:
		return StateRenderTarget
	default:
		return StateNonPixelShaderResource
	}
}

// Describe translates a native resource description.
func Describe(desc ResourceDesc, extra device.Usage) device.Description {
	var d device.Description
	if desc.Dimension == DimensionBuffer {
		d.Type = device.ResourceBuffer
		d.Usage = device.UsageUAV
		d.Size = uint32(desc.Width)
		d.Stride = desc.Height
	} else {
		d.Usage = desc.Format.Usage()
		if desc.Flags&ResourceFlagAllowUnorderedAccess != 0 {
			d.Usage |= device.UsageUAV
		}
		d.Width = uint32(desc.Width)
		d.Height = desc.Height
		d.Depth = uint32(desc.DepthOrArraySize)
		d.MipCount = uint32(desc.MipLevels)

		switch desc.Dimension {
		case DimensionTexture1D:
			d.Type = device.ResourceTexture1D
		case DimensionTexture2D:
			if desc.DepthOrArraySize == 6 {
				d.Type = device.ResourceTextureCube
			} else {
				d.Type = device.ResourceTexture2D
			}
		case DimensionTexture3D:
			d.Type = device.ResourceTexture3D
		}
	}
	d.Format = desc.Format.Surface()
	d.Usage |= extra
	return d
}
