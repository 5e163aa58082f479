// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vulkan

import "errors"

var (
	// ErrNoLoader is returned when the host supplies no
	// vkGetInstanceProcAddr.
	ErrNoLoader = errors.New("vulkan: host supplied no vkGetInstanceProcAddr")

	// ErrFenceWait is returned when waiting on a submission fence fails.
	ErrFenceWait = errors.New("vulkan: fence wait failed")
)
