// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !windows

package oswait

import "sync"

// Event is an auto-reset event backed by a one-slot channel.
type Event struct {
	mu     sync.Mutex
	ch     chan struct{}
	closed bool
}

// NewEvent creates an unsignaled auto-reset event.
func NewEvent() (*Event, error) {
	return &Event{ch: make(chan struct{}, 1)}, nil
}

// Handle returns 0: there is no native handle off Windows.
func (e *Event) Handle() uintptr { return 0 }

// Set signals the event. Setting a signaled event is a no-op.
func (e *Event) Set() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	select {
	case e.ch <- struct{}{}:
	default:
	}
	return nil
}

// Wait blocks without timeout until the event is signaled, then resets it.
func (e *Event) Wait() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	ch := e.ch
	e.mu.Unlock()

	<-ch
	return nil
}

// Close releases the event. Close is idempotent.
func (e *Event) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	return nil
}
