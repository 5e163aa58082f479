// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package com calls COM methods through their vtables. It is used by the
// Direct3D bindings on Windows.
package com

// IUnknown vtable slots.
const (
	QueryInterface = 0
	AddRef         = 1
	Release        = 2
)

// Failed reports whether hr is a failure HRESULT.
func Failed(hr uintptr) bool { return int32(uint32(hr)) < 0 }
