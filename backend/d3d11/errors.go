// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package d3d11

import "errors"

var (
	// ErrUnsupportedPlatform is returned by the native binding outside
	// Windows.
	ErrUnsupportedPlatform = errors.New("d3d11: native API requires windows")

	// ErrNoContext is returned when the device has no immediate context.
	ErrNoContext = errors.New("d3d11: device returned no immediate context")

	// ErrUnknownDimension is returned for resources GetType cannot classify.
	ErrUnknownDimension = errors.New("d3d11: unknown resource dimension")
)
