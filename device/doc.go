// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package device defines the uniform GPU device contract shared by the
// Direct3D 11, Direct3D 12 and Vulkan backends.
//
// A host engine reports which graphics API it runs on when its device
// becomes ready. The [Factory] turns that report into exactly one live
// [Device], constructed through the backend registry. Backends register
// themselves from init functions:
//
//	import (
//	    _ "github.com/gogpu/upscaler/backend/d3d12"
//	    _ "github.com/gogpu/upscaler/backend/vulkan"
//	)
//
//	dev, err := device.Default().GetOrCreate(device.APID3D12)
//	if err != nil {
//	    return err
//	}
//	if !dev.Init(host) {
//	    return errors.New("no native device")
//	}
//
// Per frame, callers acquire a command buffer, resolve the textures they
// need, record into the buffer and submit it:
//
//	cmd := dev.AcquireCommandBuffer()
//	if cmd == 0 {
//	    return // skip this frame
//	}
//	color := dev.ResolveResource(device.ResourceRef{TextureID: id}, device.ResolveOptions{Describe: true})
//	// ... record work into cmd ...
//	token := dev.SubmitCommandBuffer(cmd)
//	dev.WaitFor(token)
//
// Command buffers are pooled per backend. A buffer is only handed out again
// once the backend's fence has reached the completion token of its last
// submission, so recorded memory is never reset while the GPU reads it.
//
// The device contract returns primitive values (bool, zero handle, zero
// token) instead of errors. Native failures are logged through [Logger]
// and degrade to those zero values.
package device
