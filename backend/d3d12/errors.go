// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package d3d12

import (
	"errors"
	"fmt"
)

// Package errors for the D3D12 backend.
var (
	// ErrUnsupportedPlatform is returned by the native binding outside
	// Windows.
	ErrUnsupportedPlatform = errors.New("d3d12: native API requires windows")

	// ErrNullObject is returned when a native call yields a null object.
	ErrNullObject = errors.New("d3d12: native call returned a null object")
)

// HRESULTError is a failed HRESULT from a COM call.
type HRESULTError struct {
	Call string
	Code uint32
}

func (e *HRESULTError) Error() string {
	return fmt.Sprintf("d3d12: %s failed: HRESULT %#08x", e.Call, e.Code)
}
