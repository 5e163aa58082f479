// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

// SurfaceFormat is the API-neutral pixel format handed to the upscaler.
// Typeless native formats have no entry: they translate to
// SurfaceFormatUnknown.
type SurfaceFormat uint32

const (
	SurfaceFormatUnknown SurfaceFormat = iota
	SurfaceFormatR32G32B32A32Float
	SurfaceFormatR32G32B32A32Uint
	SurfaceFormatR32G32B32Float
	SurfaceFormatR16G16B16A16Float
	SurfaceFormatR32G32Float
	SurfaceFormatR32Uint
	SurfaceFormatR10G10B10A2Unorm
	SurfaceFormatR11G11B10Float
	SurfaceFormatR8G8B8A8Unorm
	SurfaceFormatR8G8B8A8Snorm
	SurfaceFormatR8G8B8A8Srgb
	SurfaceFormatB8G8R8A8Unorm
	SurfaceFormatB8G8R8A8Srgb
	SurfaceFormatR16G16Float
	SurfaceFormatR16G16Uint
	SurfaceFormatR16G16Sint
	SurfaceFormatR32Float
	SurfaceFormatR8G8Uint
	SurfaceFormatR8G8Unorm
	SurfaceFormatR16Float
	SurfaceFormatR16Uint
	SurfaceFormatR16Unorm
	SurfaceFormatR16Snorm
	SurfaceFormatR8Unorm
	SurfaceFormatR8Uint
	SurfaceFormatR9G9B9E5SharedExp
)

var surfaceFormatNames = [...]string{
	SurfaceFormatUnknown:           "Unknown",
	SurfaceFormatR32G32B32A32Float: "R32G32B32A32Float",
	SurfaceFormatR32G32B32A32Uint:  "R32G32B32A32Uint",
	SurfaceFormatR32G32B32Float:    "R32G32B32Float",
	SurfaceFormatR16G16B16A16Float: "R16G16B16A16Float",
	SurfaceFormatR32G32Float:       "R32G32Float",
	SurfaceFormatR32Uint:           "R32Uint",
	SurfaceFormatR10G10B10A2Unorm:  "R10G10B10A2Unorm",
	SurfaceFormatR11G11B10Float:    "R11G11B10Float",
	SurfaceFormatR8G8B8A8Unorm:     "R8G8B8A8Unorm",
	SurfaceFormatR8G8B8A8Snorm:     "R8G8B8A8Snorm",
	SurfaceFormatR8G8B8A8Srgb:      "R8G8B8A8Srgb",
	SurfaceFormatB8G8R8A8Unorm:     "B8G8R8A8Unorm",
	SurfaceFormatB8G8R8A8Srgb:      "B8G8R8A8Srgb",
	SurfaceFormatR16G16Float:       "R16G16Float",
	SurfaceFormatR16G16Uint:        "R16G16Uint",
	SurfaceFormatR16G16Sint:        "R16G16Sint",
	SurfaceFormatR32Float:          "R32Float",
	SurfaceFormatR8G8Uint:          "R8G8Uint",
	SurfaceFormatR8G8Unorm:         "R8G8Unorm",
	SurfaceFormatR16Float:          "R16Float",
	SurfaceFormatR16Uint:           "R16Uint",
	SurfaceFormatR16Unorm:          "R16Unorm",
	SurfaceFormatR16Snorm:          "R16Snorm",
	SurfaceFormatR8Unorm:           "R8Unorm",
	SurfaceFormatR8Uint:            "R8Uint",
	SurfaceFormatR9G9B9E5SharedExp: "R9G9B9E5SharedExp",
}

func (f SurfaceFormat) String() string {
	if int(f) < len(surfaceFormatNames) {
		return surfaceFormatNames[f]
	}
	return "Unknown"
}

// Gamma returns the sRGB variant of f, or f itself when it has none.
func (f SurfaceFormat) Gamma() SurfaceFormat {
	switch f {
	case SurfaceFormatR8G8B8A8Unorm:
		return SurfaceFormatR8G8B8A8Srgb
	case SurfaceFormatB8G8R8A8Unorm:
		return SurfaceFormatB8G8R8A8Srgb
	default:
		return f
	}
}
