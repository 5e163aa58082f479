// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !(windows && amd64)

package d3d12

func nativeAPI() (API, error) { return nil, ErrUnsupportedPlatform }
