// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package effect

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/upscaler/device"
)

// Instance is one upscaler effect: an engine context plus the textures
// the host bound to its slots. Its methods are called from the host's
// render thread.
type Instance struct {
	id  uint32
	reg *Registry

	ctx      Context
	reset    bool
	textures [textureNameMax]device.TextureID
	token    device.Token
}

func newInstance(id uint32, reg *Registry) *Instance {
	return &Instance{id: id, reg: reg, reset: true}
}

func (in *Instance) log() *slog.Logger {
	return device.Logger().With("instance", in.id)
}

// ID returns the instance id.
func (in *Instance) ID() uint32 { return in.id }

// Initialized reports whether the instance has an engine context.
func (in *Instance) Initialized() bool { return in.ctx != nil }

// Token returns the completion token of the last submitted pass.
func (in *Instance) Token() device.Token { return in.token }

// Init replaces the engine context with one sized for p.DisplaySize. The
// next dispatch resets the engine's history.
func (in *Instance) Init(p InitParams) error {
	in.Destroy()
	in.reset = true

	dev := in.reg.devices.Current()
	if dev == nil || !dev.Initialized() {
		in.log().Error("init: no device backend")
		return ErrNoDevice
	}

	ctx, err := in.reg.engine.CreateContext(dev, ContextDesc{
		Flags:             p.Flags,
		Version:           p.Version,
		MaxRenderSize:     p.DisplaySize,
		UpscaleOutputSize: p.DisplaySize,
		DisplaySize:       p.DisplaySize,
	})
	if err != nil {
		in.log().Error("engine context creation failed", "err", err)
		return fmt.Errorf("effect: create context: %w", err)
	}
	in.ctx = ctx
	in.log().Info("instance initialized", "api", dev.Kind().String(),
		"width", p.DisplaySize.Width, "height", p.DisplaySize.Height)
	return nil
}

// Destroy waits for the GPU to finish every submission and destroys the
// engine context. It does nothing on an uninitialized instance.
func (in *Instance) Destroy() {
	if in.ctx == nil {
		return
	}
	if dev := in.reg.devices.Current(); dev != nil {
		dev.WaitAll()
	}
	if err := in.ctx.Destroy(); err != nil {
		in.log().Warn("engine context destroy failed", "err", err)
	}
	in.ctx = nil
	in.log().Info("instance destroyed")
}

// JitterOffset returns the projection jitter for frame index.
func (in *Instance) JitterOffset(index, renderWidth, displayWidth int32) (x, y float32) {
	return JitterOffset(index, renderWidth, displayWidth)
}

// SetTexture binds an engine texture to slot name. Invalid names are
// ignored.
func (in *Instance) SetTexture(name TextureName, id device.TextureID) {
	if !name.Valid() {
		return
	}
	in.textures[name] = id
}

// Texture returns the engine texture bound to name, or 0.
func (in *Instance) Texture(name TextureName) device.TextureID {
	if !name.Valid() {
		return 0
	}
	return in.textures[name]
}

// GenerateReactiveMask records and submits the reactive mask pass.
func (in *Instance) GenerateReactiveMask(p ReactiveMaskParams) error {
	dev, cmd, err := in.begin()
	if err != nil {
		return err
	}

	desc := ReactiveMaskDesc{
		ColorOpaqueOnly: in.resolve(dev, p.ColorOpaqueOnly, TextureColorOpaqueOnly, device.AccessComputeRead),
		ColorPreUpscale: in.resolve(dev, p.ColorPreUpscale, TextureColorPreUpscale, device.AccessComputeRead),
		OutReactive:     in.resolve(dev, p.OutReactive, TextureReactive, device.AccessUnorderedAccess),
		RenderSize:      p.RenderSize,
		Scale:           p.Scale,
		CutoffThreshold: p.CutoffThreshold,
		BinaryValue:     p.BinaryValue,
		Flags:           p.Flags,
	}
	passErr := in.ctx.GenerateReactiveMask(cmd, desc)
	if passErr != nil {
		in.log().Error("reactive mask pass failed", "err", passErr)
		passErr = fmt.Errorf("effect: reactive mask: %w", passErr)
	}
	in.submit(dev, cmd)
	return passErr
}

// Dispatch records and submits the upscale pass.
func (in *Instance) Dispatch(p DispatchParams) error {
	dev, cmd, err := in.begin()
	if err != nil {
		return err
	}

	desc := DispatchDesc{
		Color:                      in.resolve(dev, p.Color, TextureColor, device.AccessComputeRead),
		Depth:                      in.resolve(dev, p.Depth, TextureDepth, device.AccessComputeRead),
		MotionVectors:              in.resolve(dev, p.MotionVectors, TextureMotionVectors, device.AccessComputeRead),
		Reactive:                   in.resolve(dev, p.Reactive, TextureReactive, device.AccessComputeRead),
		TransparencyAndComposition: in.resolve(dev, p.TransparencyAndComposition, TextureTransparencyAndComposition, device.AccessComputeRead),
		Output:                     in.resolve(dev, p.Output, TextureOutput, device.AccessUnorderedAccess),

		JitterOffset:      [2]float32{p.JitterOffsetX, p.JitterOffsetY},
		MotionVectorScale: [2]float32{p.MotionVectorScaleX, p.MotionVectorScaleY},
		RenderSize:        p.RenderSize,
		EnableSharpening:  p.EnableSharpening,
		Sharpness:         p.Sharpness,
		FrameTimeDelta:    p.FrameTimeDelta * 1000,
		PreExposure:       1,
		Reset:             in.reset,

		CameraNear:             p.CameraNear,
		CameraFar:              p.CameraFar,
		CameraFovAngleVertical: p.CameraFovAngleVertical,
	}
	in.reset = false

	passErr := in.ctx.Dispatch(cmd, desc)
	if passErr != nil {
		in.log().Error("upscale pass failed", "err", passErr)
		passErr = fmt.Errorf("effect: dispatch: %w", passErr)
	}
	in.submit(dev, cmd)
	return passErr
}

func (in *Instance) begin() (device.Device, device.Handle, error) {
	if in.ctx == nil {
		return nil, 0, ErrNotInitialized
	}
	dev := in.reg.devices.Current()
	if dev == nil || !dev.Initialized() {
		return nil, 0, ErrNoDevice
	}
	cmd := dev.AcquireCommandBuffer()
	if cmd.IsNull() {
		in.log().Warn("no command buffer, frame skipped")
		return nil, 0, ErrSkipped
	}
	return dev, cmd, nil
}

func (in *Instance) submit(dev device.Device, cmd device.Handle) {
	if token := dev.SubmitCommandBuffer(cmd); token != 0 {
		in.token = token
	}
}

// resolve translates one pass input. A zero handle falls back to the
// texture bound to slot.
func (in *Instance) resolve(dev device.Device, native device.Handle, slot TextureName, access device.Access) device.Resource {
	ref := device.ResourceRef{Native: native}
	if native.IsNull() {
		ref.TextureID = in.textures[slot]
	}
	return dev.ResolveResource(ref, device.ResolveOptions{Describe: true, Access: access})
}
