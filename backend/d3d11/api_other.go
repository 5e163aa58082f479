// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !windows

package d3d11

func nativeAPI() (API, error) { return nil, ErrUnsupportedPlatform }
