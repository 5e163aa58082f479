// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package effect

import (
	"sync"

	"github.com/gogpu/upscaler/device"
)

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithFactory makes instances run on the backend current in f instead of
// device.Default().
func WithFactory(f *device.Factory) RegistryOption {
	return func(r *Registry) {
		r.devices = f
	}
}

// Registry holds the effect instances of a process, addressed by the id
// the host encodes into its events.
type Registry struct {
	engine  Engine
	devices *device.Factory

	mu        sync.Mutex
	instances []*Instance
}

// NewRegistry creates an empty registry running engine.
func NewRegistry(engine Engine, opts ...RegistryOption) *Registry {
	r := &Registry{engine: engine, devices: device.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Instance returns instance id, creating it and every lower id on first
// use.
func (r *Registry) Instance(id uint32) *Instance {
	r.mu.Lock()
	defer r.mu.Unlock()
	for uint32(len(r.instances)) <= id {
		r.instances = append(r.instances, newInstance(uint32(len(r.instances)), r))
	}
	return r.instances[id]
}

// Len returns the number of instances created so far.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.instances)
}

// DestroyAll destroys every instance's engine context.
func (r *Registry) DestroyAll() {
	r.mu.Lock()
	instances := append([]*Instance(nil), r.instances...)
	r.mu.Unlock()
	for _, in := range instances {
		in.Destroy()
	}
}
