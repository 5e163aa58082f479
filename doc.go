// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package upscaler connects a host rendering engine to an external
// temporal upscaling engine.
//
// # Overview
//
// The host renders with Direct3D 11, Direct3D 12 or Vulkan and owns the
// native device. The upscaling engine records its passes into command
// buffers it is handed. Between the two sits the device layer: it borrows
// the host's device, pools command buffers, tracks their completion with a
// fence and translates the host's texture references into native resources.
//
// # Quick Start
//
//	p := upscaler.New(host, engine)
//
//	// On the host's device-ready signal:
//	if err := p.OnDeviceEvent(upscaler.DeviceEvent{
//	    Type: upscaler.DeviceInitialize,
//	    Kind: device.APID3D12,
//	}); err != nil {
//	    return err
//	}
//
//	// Per frame, from the render thread:
//	p.OnRenderEvent(upscaler.EncodeEvent(0, upscaler.PassDispatch), &params)
//
// # Architecture
//
// The module is organized into:
//   - device: the API-neutral Device contract, resource model and Factory
//   - backend/d3d11, backend/d3d12, backend/vulkan: the three backends
//   - effect: per-instance entry points over an external engine
//   - loader: lookup and loading of the engine's native modules
//
// Importing this package registers all three backends.
//
// # Logging
//
// Nothing is logged by default. See SetLogger.
package upscaler
