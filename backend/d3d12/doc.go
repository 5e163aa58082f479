// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package d3d12 implements the device contract for Direct3D 12.
//
// The backend borrows the host's ID3D12Device and command queue. Command
// lists are recorded on pooled allocators and executed through the host,
// which applies the resource state transitions gathered by ResolveResource
// around the list. After each execution the backend signals its own fence
// on the host queue, so completion tokens increase strictly even when the
// host submits several lists per frame.
//
// Importing the package registers the backend with the device registry.
package d3d12
