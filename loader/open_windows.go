// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows

package loader

import "golang.org/x/sys/windows"

type dll struct {
	h windows.Handle
}

// openNative loads path with its own directory first in the dependency
// search order, so engine modules find their sibling DLLs.
func openNative(path string) (Library, error) {
	h, err := windows.LoadLibraryEx(path, 0, windows.LOAD_WITH_ALTERED_SEARCH_PATH)
	if err != nil {
		return nil, err
	}
	return &dll{h: h}, nil
}

func (d *dll) Proc(symbol string) (uintptr, error) {
	return windows.GetProcAddress(d.h, symbol)
}

func (d *dll) Close() error {
	return windows.FreeLibrary(d.h)
}
