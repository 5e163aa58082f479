// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows

package oswait

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// Event is an auto-reset Win32 event.
type Event struct {
	h windows.Handle
}

// NewEvent creates an unsignaled auto-reset event.
func NewEvent() (*Event, error) {
	h, err := windows.CreateEvent(nil, 0, 0, nil)
	if err != nil {
		return nil, fmt.Errorf("oswait: CreateEvent: %w", err)
	}
	return &Event{h: h}, nil
}

// Handle returns the native HANDLE for APIs such as
// ID3D12Fence::SetEventOnCompletion.
func (e *Event) Handle() uintptr { return uintptr(e.h) }

// Set signals the event.
func (e *Event) Set() error {
	if e.h == 0 {
		return ErrClosed
	}
	return windows.SetEvent(e.h)
}

// Wait blocks without timeout until the event is signaled.
func (e *Event) Wait() error {
	if e.h == 0 {
		return ErrClosed
	}
	ev, err := windows.WaitForSingleObject(e.h, windows.INFINITE)
	if err != nil {
		return fmt.Errorf("oswait: WaitForSingleObject: %w", err)
	}
	if ev != windows.WAIT_OBJECT_0 {
		return fmt.Errorf("oswait: WaitForSingleObject returned %#x", ev)
	}
	return nil
}

// Close releases the event. Close is idempotent.
func (e *Event) Close() error {
	if e.h == 0 {
		return nil
	}
	err := windows.CloseHandle(e.h)
	e.h = 0
	return err
}
