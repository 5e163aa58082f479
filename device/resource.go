// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

import "github.com/gogpu/gputypes"

// TextureID is the host engine's identifier for a texture. Zero is invalid.
type TextureID uint32

// ResourceRef names a resource either by a native pointer the caller
// already holds or by the host's texture identifier. Native takes
// precedence when both are set.
type ResourceRef struct {
	Native    Handle
	TextureID TextureID
}

// IsNull reports whether r names nothing.
func (r ResourceRef) IsNull() bool { return r.Native == 0 && r.TextureID == 0 }

// ResolveOptions controls ResolveResource.
type ResolveOptions struct {
	// Describe fills Resource.Desc from the native resource.
	Describe bool

	// Access is the way the next submission uses the resource.
	Access Access

	// ObserveOnly skips recording a state transition.
	ObserveOnly bool

	// Usage is OR-ed into the description's usage flags.
	Usage Usage
}

// Resource is a resolved native resource.
type Resource struct {
	// Native is the ID3D11Resource, ID3D12Resource or VkImage pointer.
	Native Handle

	// Kind tags which API Native belongs to.
	Kind APIKind

	// Desc is filled when ResolveOptions.Describe was set.
	Desc Description

	// State is the requested state in the backend's native enumeration:
	// D3D12_RESOURCE_STATES for D3D12, VkImageLayout for Vulkan, zero for
	// D3D11.
	State uint32
}

// IsNull reports whether r resolved to nothing.
func (r Resource) IsNull() bool { return r.Native == 0 }

// ResourceType is the shape of a resource.
type ResourceType uint8

const (
	ResourceUnknown ResourceType = iota
	ResourceBuffer
	ResourceTexture1D
	ResourceTexture2D
	ResourceTextureCube
	ResourceTexture3D
)

var resourceTypeNames = [...]string{
	ResourceUnknown:     "Unknown",
	ResourceBuffer:      "Buffer",
	ResourceTexture1D:   "Texture1D",
	ResourceTexture2D:   "Texture2D",
	ResourceTextureCube: "TextureCube",
	ResourceTexture3D:   "Texture3D",
}

func (t ResourceType) String() string {
	if int(t) < len(resourceTypeNames) {
		return resourceTypeNames[t]
	}
	return "Unknown"
}

// Usage is a set of ways a resource may be bound. The zero value means
// read-only.
type Usage uint32

const (
	UsageReadOnly      Usage = 0
	UsageRenderTarget  Usage = 1 << 0
	UsageUAV           Usage = 1 << 1
	UsageDepthTarget   Usage = 1 << 2
	UsageIndirect      Usage = 1 << 3
	UsageArrayView     Usage = 1 << 4
	UsageStencilTarget Usage = 1 << 5
)

// Has reports whether all bits of f are set in u.
func (u Usage) Has(f Usage) bool { return u&f == f }

// Access is how a submission uses a resource. The zero value is ComputeRead.
type Access uint8

const (
	AccessComputeRead Access = iota
	AccessUnorderedAccess
	AccessCopySrc
	AccessCopyDst
	AccessGenericRead
	AccessPixelRead
	AccessRenderTarget
)

var accessNames = [...]string{
	AccessComputeRead:     "ComputeRead",
	AccessUnorderedAccess: "UnorderedAccess",
	AccessCopySrc:         "CopySrc",
	AccessCopyDst:         "CopyDst",
	AccessGenericRead:     "GenericRead",
	AccessPixelRead:       "PixelRead",
	AccessRenderTarget:    "RenderTarget",
}

func (a Access) String() string {
	if int(a) < len(accessNames) {
		return accessNames[a]
	}
	return "Unknown"
}

// Description is the API-neutral description of a resolved resource.
type Description struct {
	Type     ResourceType
	Width    uint32
	Height   uint32
	Depth    uint32 // depth for 3D textures, array size otherwise
	MipCount uint32
	Size     uint32 // buffers only
	Stride   uint32 // buffers only
	Format   SurfaceFormat
	Usage    Usage
}

// IsZero reports whether d is the zero description.
func (d Description) IsZero() bool { return d == Description{} }

// Dimension returns the texture dimension of d. ok is false for buffers
// and unknown resources.
func (d Description) Dimension() (dim gputypes.TextureDimension, ok bool) {
	switch d.Type {
	case ResourceTexture1D:
		return gputypes.TextureDimension1D, true
	case ResourceTexture2D, ResourceTextureCube:
		return gputypes.TextureDimension2D, true
	case ResourceTexture3D:
		return gputypes.TextureDimension3D, true
	default:
		return dim, false
	}
}

// Extent returns the size of d. Zero sizes are clamped to one.
func (d Description) Extent() gputypes.Extent3D {
	return gputypes.Extent3D{
		Width:              max(d.Width, 1),
		Height:             max(d.Height, 1),
		DepthOrArrayLayers: max(d.Depth, 1),
	}
}

// TextureUsage maps the usage flags onto gputypes texture usage.
func (d Description) TextureUsage() gputypes.TextureUsage {
	u := gputypes.TextureUsageTextureBinding
	if d.Usage&UsageUAV != 0 {
		u |= gputypes.TextureUsageStorageBinding
	}
	if d.Usage&(UsageRenderTarget|UsageDepthTarget|UsageStencilTarget) != 0 {
		u |= gputypes.TextureUsageRenderAttachment
	}
	return u
}

var textureFormats = [...]gputypes.TextureFormat{
	SurfaceFormatR32G32B32A32Float: gputypes.TextureFormatRGBA32Float,
	SurfaceFormatR32G32B32A32Uint:  gputypes.TextureFormatRGBA32Uint,
	SurfaceFormatR16G16B16A16Float: gputypes.TextureFormatRGBA16Float,
	SurfaceFormatR32G32Float:       gputypes.TextureFormatRG32Float,
	SurfaceFormatR32Uint:           gputypes.TextureFormatR32Uint,
	SurfaceFormatR10G10B10A2Unorm:  gputypes.TextureFormatRGB10A2Unorm,
	SurfaceFormatR11G11B10Float:    gputypes.TextureFormatRG11B10Ufloat,
	SurfaceFormatR8G8B8A8Unorm:     gputypes.TextureFormatRGBA8Unorm,
	SurfaceFormatR8G8B8A8Snorm:     gputypes.TextureFormatRGBA8Snorm,
	SurfaceFormatR8G8B8A8Srgb:      gputypes.TextureFormatRGBA8UnormSrgb,
	SurfaceFormatB8G8R8A8Unorm:     gputypes.TextureFormatBGRA8Unorm,
	SurfaceFormatB8G8R8A8Srgb:      gputypes.TextureFormatBGRA8UnormSrgb,
	SurfaceFormatR16G16Float:       gputypes.TextureFormatRG16Float,
	SurfaceFormatR16G16Uint:        gputypes.TextureFormatRG16Uint,
	SurfaceFormatR16G16Sint:        gputypes.TextureFormatRG16Sint,
	SurfaceFormatR32Float:          gputypes.TextureFormatR32Float,
	SurfaceFormatR8G8Uint:          gputypes.TextureFormatRG8Uint,
	SurfaceFormatR8G8Unorm:         gputypes.TextureFormatRG8Unorm,
	SurfaceFormatR16Float:          gputypes.TextureFormatR16Float,
	SurfaceFormatR16Uint:           gputypes.TextureFormatR16Uint,
	SurfaceFormatR16Unorm:          gputypes.TextureFormatR16Unorm,
	SurfaceFormatR16Snorm:          gputypes.TextureFormatR16Snorm,
	SurfaceFormatR8Unorm:           gputypes.TextureFormatR8Unorm,
	SurfaceFormatR8Uint:            gputypes.TextureFormatR8Uint,
	SurfaceFormatR9G9B9E5SharedExp: gputypes.TextureFormatRGB9E5Ufloat,
}

// TextureFormat maps the surface format onto the nearest gputypes format.
// Depth targets map to the depth format their native format was
// translated from. Formats without a counterpart (three-channel R32G32B32)
// map to TextureFormatUndefined.
func (d Description) TextureFormat() gputypes.TextureFormat {
	depthStencil := d.Usage.Has(UsageDepthTarget | UsageStencilTarget)
	if d.Usage.Has(UsageDepthTarget) {
		switch d.Format {
		case SurfaceFormatR32Uint:
			if depthStencil {
				return gputypes.TextureFormatDepth24PlusStencil8
			}
		case SurfaceFormatR32Float:
			if depthStencil {
				return gputypes.TextureFormatDepth32FloatStencil8
			}
			return gputypes.TextureFormatDepth32Float
		case SurfaceFormatR16Unorm:
			return gputypes.TextureFormatDepth16Unorm
		}
	}
	if int(d.Format) < len(textureFormats) {
		return textureFormats[d.Format]
	}
	return gputypes.TextureFormatUndefined
}
