// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package d3d11 implements the device contract for Direct3D 11.
//
// Direct3D 11 has no command allocators, fences or explicit resource
// states. The backend hands out the device's immediate context as the only
// command buffer, flushes it on submit and issues tokens that are complete
// as soon as they are returned.
//
// Importing the package registers the backend with the device registry.
package d3d11
