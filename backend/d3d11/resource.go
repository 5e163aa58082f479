// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package d3d11

import "github.com/gogpu/upscaler/device"

// Describe translates a native resource description. Bind flags supply the
// writable usages the format alone cannot tell.
func Describe(desc ResourceDesc, extra device.Usage) device.Description {
	var d device.Description
	if desc.BindFlags&BindUnorderedAccess != 0 {
		d.Usage |= device.UsageUAV
	}

	if desc.Dimension == DimensionBuffer {
		d.Type = device.ResourceBuffer
		d.Size = desc.ByteWidth
		d.Stride = desc.StructureByteStride
		d.Usage |= extra
		return d
	}

	d.Usage |= desc.Format.Usage()
	if desc.BindFlags&BindRenderTarget != 0 {
		d.Usage |= device.UsageRenderTarget
	}
	if desc.BindFlags&BindDepthStencil != 0 {
		d.Usage |= device.UsageDepthTarget
	}
	d.Width = desc.Width
	d.Height = desc.Height
	d.Depth = desc.DepthOrArraySize
	d.MipCount = desc.MipLevels
	d.Format = desc.Format.Surface()

	switch desc.Dimension {
	case DimensionTexture1D:
		d.Type = device.ResourceTexture1D
	case DimensionTexture2D:
		if desc.MiscFlags&MiscTextureCube != 0 {
			d.Type = device.ResourceTextureCube
		} else {
			d.Type = device.ResourceTexture2D
		}
	case DimensionTexture3D:
		d.Type = device.ResourceTexture3D
	}
	d.Usage |= extra
	return d
}
