// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package oswait provides the auto-reset OS event used to block on GPU
// fences. On Windows it is a kernel event that native fences signal
// directly; elsewhere it is a channel that test fences and the Vulkan
// path signal through Set.
package oswait

import "errors"

// ErrClosed is returned when waiting on or setting a closed event.
var ErrClosed = errors.New("oswait: event closed")
