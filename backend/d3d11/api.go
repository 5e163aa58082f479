// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package d3d11

import (
	"github.com/gogpu/upscaler/device"
	"github.com/gogpu/upscaler/internal/dxgi"
)

// Host is the engine's Direct3D 11 interface.
type Host interface {
	// Device returns the engine's ID3D11Device.
	Device() device.Handle

	// TextureFromNativeTexture returns the ID3D11Resource behind an engine
	// texture, or 0.
	TextureFromNativeTexture(id device.TextureID) device.Handle
}

// Dimension is a D3D11_RESOURCE_DIMENSION value.
type Dimension uint32

const (
	DimensionUnknown   Dimension = 0
	DimensionBuffer    Dimension = 1
	DimensionTexture1D Dimension = 2
	DimensionTexture2D Dimension = 3
	DimensionTexture3D Dimension = 4
)

// D3D11_BIND_FLAG values the translator reads.
const (
	BindShaderResource  = 0x8
	BindRenderTarget    = 0x20
	BindDepthStencil    = 0x40
	BindUnorderedAccess = 0x80
)

// MiscTextureCube is D3D11_RESOURCE_MISC_TEXTURECUBE.
const MiscTextureCube = 0x4

// ResourceDesc is the union of the D3D11 buffer and texture descriptions
// the translator needs. Buffers fill ByteWidth and StructureByteStride;
// textures fill the rest. DepthOrArraySize is the depth of a volume
// texture and the array size otherwise.
type ResourceDesc struct {
	Dimension           Dimension
	Width               uint32
	Height              uint32
	DepthOrArraySize    uint32
	MipLevels           uint32
	Format              dxgi.Format
	BindFlags           uint32
	MiscFlags           uint32
	ByteWidth           uint32
	StructureByteStride uint32
}

// API is the slice of the Direct3D 11 object model the backend calls.
type API interface {
	// ImmediateContext returns the device's immediate context with one
	// reference added.
	ImmediateContext(dev device.Handle) (device.Handle, error)

	// Flush sends queued commands on ctx to the GPU.
	Flush(ctx device.Handle)

	ResourceDesc(resource device.Handle) (ResourceDesc, error)

	// Release drops one COM reference.
	Release(obj device.Handle)
}
