// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package effect

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/upscaler/device"
)

// TextureName is a logical texture slot of an instance. The host binds
// engine textures to slots through Instance.SetTexture.
type TextureName uint32

const (
	TextureInvalid TextureName = iota
	TextureColor
	TextureDepth
	TextureMotionVectors
	TextureReactive
	TextureTransparencyAndComposition
	TextureOutput
	TextureColorOpaqueOnly
	TextureColorPreUpscale

	textureNameMax
)

var textureNames = [...]string{
	TextureInvalid:                    "Invalid",
	TextureColor:                      "Color",
	TextureDepth:                      "Depth",
	TextureMotionVectors:              "MotionVectors",
	TextureReactive:                   "Reactive",
	TextureTransparencyAndComposition: "TransparencyAndComposition",
	TextureOutput:                     "Output",
	TextureColorOpaqueOnly:            "ColorOpaqueOnly",
	TextureColorPreUpscale:            "ColorPreUpscale",
}

func (n TextureName) String() string {
	if n < textureNameMax {
		return textureNames[n]
	}
	return "TextureName(?)"
}

// Valid reports whether n names a texture slot.
func (n TextureName) Valid() bool { return n > TextureInvalid && n < textureNameMax }

// InitParams configures an instance's engine context.
type InitParams struct {
	Flags       uint32
	DisplaySize gputypes.Extent3D

	// Version selects an engine version; zero picks the engine's default.
	// An engine without a provider for a nonzero Version fails
	// CreateContext with ErrNoProvider, and Init returns that error.
	Version uint32
}

// ReactiveMaskParams are the host's reactive mask pass parameters. A zero
// handle falls back to the texture bound to the matching slot.
type ReactiveMaskParams struct {
	ColorOpaqueOnly device.Handle
	ColorPreUpscale device.Handle
	OutReactive     device.Handle

	RenderSize      gputypes.Extent3D
	Scale           float32
	CutoffThreshold float32
	BinaryValue     float32
	Flags           uint32
}

// DispatchParams are the host's upscale pass parameters. A zero handle
// falls back to the texture bound to the matching slot.
type DispatchParams struct {
	Color                      device.Handle
	Depth                      device.Handle
	MotionVectors              device.Handle
	Reactive                   device.Handle
	TransparencyAndComposition device.Handle
	Output                     device.Handle

	JitterOffsetX      float32
	JitterOffsetY      float32
	MotionVectorScaleX float32
	MotionVectorScaleY float32
	RenderSize         gputypes.Extent3D
	EnableSharpening   bool
	Sharpness          float32

	// FrameTimeDelta is in seconds.
	FrameTimeDelta float32

	CameraNear             float32
	CameraFar              float32
	CameraFovAngleVertical float32
}
