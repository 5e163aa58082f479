// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package loader

import "errors"

var (
	// ErrNotFound is returned when no file under the root matches a
	// module name.
	ErrNotFound = errors.New("loader: module not found")

	// ErrUnsupported is returned by the default opener on platforms without
	// native module loading.
	ErrUnsupported = errors.New("loader: native modules not supported on this platform")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("loader: closed")
)
