// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows

package com

import (
	"syscall"
	"unsafe"
)

// Method returns the function pointer in vtable slot idx of obj.
func Method(obj uintptr, idx int) uintptr {
	vtbl := *(*uintptr)(unsafe.Pointer(obj))
	return *(*uintptr)(unsafe.Pointer(vtbl + uintptr(idx)*unsafe.Sizeof(uintptr(0))))
}

// Call invokes vtable slot idx of obj with obj as the this pointer and
// returns the raw result register.
func Call(obj uintptr, idx int, args ...uintptr) uintptr {
	ret, _, _ := syscall.SyscallN(Method(obj, idx), append([]uintptr{obj}, args...)...)
	return ret
}

// ReleaseObject drops one reference on obj. A zero obj is ignored.
func ReleaseObject(obj uintptr) {
	if obj != 0 {
		Call(obj, Release)
	}
}
