// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package vulkan implements the device contract for Vulkan.
//
// Each pooled command buffer owns a transient command pool and a fence.
// Submissions signal the slot's fence, and a fence timeline turns the
// stream of binary fences into the monotonically increasing completion
// tokens the device contract speaks.
//
// Resolving an image for anything other than observation records a layout
// barrier into the recording command buffer. At submit the image is moved
// back to the layout the host tracks, so the host's own barrier bookkeeping
// stays valid.
//
// Importing the package registers the backend with the device registry.
package vulkan
