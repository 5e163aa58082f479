// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

import "errors"

// Package errors for device selection.
var (
	// ErrUnsupportedAPI is returned when the host reports an API kind that
	// has no backend. It is a fatal configuration error: no device exists
	// until the host reports a supported kind.
	ErrUnsupportedAPI = errors.New("device: unsupported graphics API")

	// ErrKindMismatch is returned when a device of another kind is still
	// live. Shut the factory down before switching APIs.
	ErrKindMismatch = errors.New("device: a device of another API is active")

	// ErrNilDevice is returned when a registered constructor returns nil.
	ErrNilDevice = errors.New("device: constructor returned nil")
)
