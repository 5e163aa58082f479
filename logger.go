// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package upscaler

import (
	"log/slog"

	"github.com/gogpu/upscaler/device"
)

// SetLogger configures the logger for upscaler and all its sub-packages.
// By default nothing is logged. Pass nil to restore silence.
//
// SetLogger is safe for concurrent use.
//
// Log levels used:
//   - [slog.LevelDebug]: command buffer pool growth and reuse, tokens
//   - [slog.LevelInfo]: backend and instance lifecycle
//   - [slog.LevelWarn]: non-fatal native failures (allocator reset, missing textures)
//   - [slog.LevelError]: synchronization and allocation failures, bad configuration
//
// Example:
//
//	upscaler.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	device.SetLogger(l)
}

// Logger returns the logger shared by upscaler and its sub-packages.
func Logger() *slog.Logger {
	return device.Logger()
}
