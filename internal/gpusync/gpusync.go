// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpusync wraps native GPU fences as monotonically increasing
// completion-token counters.
//
// Signal enqueues a GPU-side signal of the next token and returns it.
// CompletedValue asks the fence how far the GPU has got and never blocks.
// BlockUntil waits on an OS event the fence sets on completion; the event
// lives only for the duration of one wait.
package gpusync

import (
	"errors"
	"fmt"

	"github.com/gogpu/upscaler/device"
	"github.com/gogpu/upscaler/internal/oswait"
)

// ErrSignal is returned when the native fence refuses a signal.
// Any synchronization failure leaves GPU memory lifetimes undefined.
var ErrSignal = errors.New("gpusync: fence signal failed")

// Primitive is the query and wait side of a completion-token counter.
type Primitive interface {
	CompletedValue() device.Token
	BlockUntil(token device.Token) error
}

// Fence is a native fence whose value the GPU advances.
type Fence interface {
	// Signal enqueues a GPU-side write of value after all prior work.
	Signal(value uint64) error

	// CompletedValue returns the last value the GPU wrote.
	CompletedValue() uint64

	// SetEventOnCompletion makes the fence set ev once it reaches value.
	SetEventOnCompletion(value uint64, ev *oswait.Event) error
}

// Timeline is a completion-token counter backed by one native fence.
// It is not safe for concurrent Signal calls.
type Timeline struct {
	fence Fence
	value uint64
}

// NewTimeline wraps fence, whose current value becomes the base token.
func NewTimeline(fence Fence) *Timeline {
	return &Timeline{fence: fence, value: fence.CompletedValue()}
}

// Signal enqueues the next token and returns it. On failure the counter
// does not advance.
func (t *Timeline) Signal() (device.Token, error) {
	next := t.value + 1
	if err := t.fence.Signal(next); err != nil {
		return 0, fmt.Errorf("%w: value %d: %v", ErrSignal, next, err)
	}
	t.value = next
	return device.Token(next), nil
}

// Last returns the most recently signaled token.
func (t *Timeline) Last() device.Token { return device.Token(t.value) }

// CompletedValue returns the token the GPU has reached.
func (t *Timeline) CompletedValue() device.Token {
	return device.Token(t.fence.CompletedValue())
}

// BlockUntil blocks until the GPU reaches token. It returns at once when
// the token is already reached.
func (t *Timeline) BlockUntil(token device.Token) error {
	if token.Reached(t.CompletedValue()) {
		return nil
	}

	ev, err := oswait.NewEvent()
	if err != nil {
		return err
	}
	defer ev.Close()

	if err := t.fence.SetEventOnCompletion(uint64(token), ev); err != nil {
		return fmt.Errorf("gpusync: SetEventOnCompletion(%d): %w", token, err)
	}
	return ev.Wait()
}

// Immediate is the counter for APIs whose submissions are complete from
// the caller's point of view as soon as they return. Every signaled token
// is immediately reached.
type Immediate struct {
	value uint64
}

// Signal returns the next token.
func (c *Immediate) Signal() (device.Token, error) {
	c.value++
	return device.Token(c.value), nil
}

// CompletedValue returns the last signaled token.
func (c *Immediate) CompletedValue() device.Token { return device.Token(c.value) }

// BlockUntil returns immediately.
func (c *Immediate) BlockUntil(device.Token) error { return nil }
