// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package effect runs upscaler effect instances on top of the current
// device backend.
//
// The upscaling algorithm itself is an external Engine. An Instance owns
// one engine context and, per frame, acquires a command buffer, resolves
// the frame's textures into native resources, lets the engine record its
// passes and submits the buffer.
//
//	reg := effect.NewRegistry(engine)
//	in := reg.Instance(0)
//	if err := in.Init(effect.InitParams{DisplaySize: display}); err != nil {
//		return err
//	}
//	defer in.Destroy()
//
//	x, y := in.JitterOffset(frame, int32(render.Width), int32(display.Width))
//	err := in.Dispatch(effect.DispatchParams{JitterOffsetX: x, JitterOffsetY: y})
package effect
