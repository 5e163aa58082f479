// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !windows

package loader

func openNative(string) (Library, error) { return nil, ErrUnsupported }
