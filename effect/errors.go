// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package effect

import "errors"

var (
	// ErrNoDevice is returned when no device backend is current.
	ErrNoDevice = errors.New("effect: no device backend")

	// ErrNotInitialized is returned by passes on an instance without an
	// engine context.
	ErrNotInitialized = errors.New("effect: instance not initialized")

	// ErrSkipped is returned when the backend could not supply a command
	// buffer. The frame is skipped; the next one may succeed.
	ErrSkipped = errors.New("effect: no command buffer, frame skipped")

	// ErrNoProvider is returned by engines asked for a version they do not
	// provide.
	ErrNoProvider = errors.New("effect: no provider for requested version")
)
