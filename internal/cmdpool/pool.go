// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package cmdpool implements the command buffer slot pool shared by the
// D3D12 and Vulkan backends.
//
// The pool is a free list with lazy growth. A slot is free once the fence
// has reached the completion token of its last submission. Claiming a slot
// marks it pending before the caller resets it, so a reentrant claim can
// never hand the same slot out twice. The pool only grows: under steady
// load its size converges to the number of command buffers in flight.
package cmdpool

import "github.com/gogpu/upscaler/device"

// Slot pairs a backend payload (allocator and list, or pool and buffer)
// with the completion token of its last submission.
type Slot[T any] struct {
	Payload T
	token   device.Token
	retired bool
}

// Token returns the completion token, or device.PendingToken while the
// slot is checked out.
func (s *Slot[T]) Token() device.Token { return s.token }

// Pending reports whether the slot is checked out or was never submitted.
func (s *Slot[T]) Pending() bool { return s.token == device.PendingToken }

// CheckedOut reports whether the slot is pending and may still be
// submitted. A slot that was submitted or retired is not checked out.
func (s *Slot[T]) CheckedOut() bool { return s.Pending() && !s.retired }

// Complete records the token of the submission that checked the slot in.
func (s *Slot[T]) Complete(token device.Token) { s.token = token }

// Retire keeps the slot pending forever. It is used when the slot's work
// reached the GPU with no token to wait on.
func (s *Slot[T]) Retire() { s.retired = true }

// Pool is an ordered set of slots. It is not safe for concurrent use.
type Pool[T any] struct {
	slots []*Slot[T]
}

// Claim returns the first slot, in insertion order, whose token completed
// has reached, and marks it pending. It reports false when no slot is free.
func (p *Pool[T]) Claim(completed device.Token) (*Slot[T], bool) {
	for _, s := range p.slots {
		if s.token.Reached(completed) {
			s.token = device.PendingToken
			return s, true
		}
	}
	return nil, false
}

// Add appends a new pending slot holding payload.
func (p *Pool[T]) Add(payload T) *Slot[T] {
	s := &Slot[T]{Payload: payload, token: device.PendingToken}
	p.slots = append(p.slots, s)
	return s
}

// Find returns the first slot whose payload matches, or nil.
func (p *Pool[T]) Find(match func(T) bool) *Slot[T] {
	for _, s := range p.slots {
		if match(s.Payload) {
			return s
		}
	}
	return nil
}

// Len returns the number of slots.
func (p *Pool[T]) Len() int { return len(p.slots) }

// Slot returns the i-th slot in insertion order.
func (p *Pool[T]) Slot(i int) *Slot[T] { return p.slots[i] }

// LastToken returns the highest token among submitted slots, or 0 when
// nothing is in flight. Pending slots are skipped: they hold no work the
// GPU will ever finish.
func (p *Pool[T]) LastToken() device.Token {
	var last device.Token
	for _, s := range p.slots {
		if !s.Pending() && s.token > last {
			last = s.token
		}
	}
	return last
}

// Drain calls release for every payload in insertion order and empties
// the pool. Callers wait for LastToken before draining.
func (p *Pool[T]) Drain(release func(T)) {
	for _, s := range p.slots {
		release(s.Payload)
	}
	clear(p.slots)
	p.slots = p.slots[:0]
}
