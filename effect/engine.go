// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package effect

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/upscaler/device"
)

// Engine creates upscaler contexts on a device backend.
type Engine interface {
	CreateContext(dev device.Device, desc ContextDesc) (Context, error)
}

// Context is one engine context. Its passes record into cmd; the caller
// submits.
type Context interface {
	GenerateReactiveMask(cmd device.Handle, desc ReactiveMaskDesc) error
	Dispatch(cmd device.Handle, desc DispatchDesc) error
	Destroy() error
}

// ContextDesc describes the context to create.
type ContextDesc struct {
	Flags   uint32
	Version uint32

	MaxRenderSize     gputypes.Extent3D
	UpscaleOutputSize gputypes.Extent3D
	DisplaySize       gputypes.Extent3D
}

// ReactiveMaskDesc is the reactive mask pass with resolved resources.
type ReactiveMaskDesc struct {
	ColorOpaqueOnly device.Resource
	ColorPreUpscale device.Resource
	OutReactive     device.Resource

	RenderSize      gputypes.Extent3D
	Scale           float32
	CutoffThreshold float32
	BinaryValue     float32
	Flags           uint32
}

// DispatchDesc is the upscale pass with resolved resources.
type DispatchDesc struct {
	Color                      device.Resource
	Depth                      device.Resource
	MotionVectors              device.Resource
	Reactive                   device.Resource
	TransparencyAndComposition device.Resource
	Output                     device.Resource

	JitterOffset      [2]float32
	MotionVectorScale [2]float32
	RenderSize        gputypes.Extent3D
	EnableSharpening  bool
	Sharpness         float32

	// FrameTimeDelta is in milliseconds.
	FrameTimeDelta float32
	PreExposure    float32
	Reset          bool

	CameraNear             float32
	CameraFar              float32
	CameraFovAngleVertical float32
}
