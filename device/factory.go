// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

import (
	"fmt"
	"sync"
)

// FactoryOption configures a Factory.
type FactoryOption func(*factoryOptions)

type factoryOptions struct {
	ctors map[APIKind]Constructor
}

// WithConstructor makes the factory build kind with ctor instead of the
// package registry. Use it to inject fake backends in tests.
func WithConstructor(kind APIKind, ctor Constructor) FactoryOption {
	return func(o *factoryOptions) {
		if o.ctors == nil {
			o.ctors = make(map[APIKind]Constructor)
		}
		o.ctors[kind] = ctor
	}
}

// Factory owns at most one live Device.
//
// The device is created on the host's device-ready signal and destroyed on
// its shutdown signal; Factory never recreates it implicitly. Calls are
// serialized on one mutex, so two goroutines racing on GetOrCreate observe
// the same instance.
type Factory struct {
	mu      sync.Mutex
	current Device
	opts    factoryOptions
}

// NewFactory creates an empty factory.
func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{}
	for _, opt := range opts {
		opt(&f.opts)
	}
	return f
}

var defaultFactory = NewFactory()

// Default returns the process-wide factory used by the host glue.
func Default() *Factory { return defaultFactory }

// GetOrCreate returns the live device of the given kind, constructing it
// on first use and after every Shutdown.
//
// An unknown kind, or one without a backend, is a fatal configuration
// error: GetOrCreate logs it, returns ErrUnsupportedAPI and leaves the
// factory without a device. Asking for a different kind while a device is
// live returns ErrKindMismatch rather than a device of the wrong API.
func (f *Factory) GetOrCreate(kind APIKind) (Device, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.current != nil {
		if f.current.Kind() != kind {
			return nil, fmt.Errorf("%w: have %s, want %s", ErrKindMismatch, f.current.Kind(), kind)
		}
		return f.current, nil
	}

	ctor, ok := f.constructor(kind)
	if !kind.Valid() || !ok {
		Logger().Error("device: fatal configuration error", "api", kind.String(), "err", ErrUnsupportedAPI)
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAPI, kind)
	}

	d := ctor()
	if d == nil {
		return nil, fmt.Errorf("%w: %s", ErrNilDevice, kind)
	}
	f.current = d
	Logger().Info("device: backend created", "api", kind.String())
	return d, nil
}

// Current returns the live device, or nil.
func (f *Factory) Current() Device {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

// Shutdown destroys the live device and forgets it. The next GetOrCreate
// builds a fresh instance, possibly of another kind. The lock is held
// while the device drains so no second instance can appear meanwhile.
func (f *Factory) Shutdown() {
	f.mu.Lock()
	defer f.mu.Unlock()

	d := f.current
	if d == nil {
		return
	}
	d.Destroy()
	f.current = nil
	Logger().Info("device: backend shut down", "api", d.Kind().String())
}

func (f *Factory) constructor(kind APIKind) (Constructor, bool) {
	if ctor, ok := f.opts.ctors[kind]; ok {
		return ctor, true
	}
	return lookup(kind)
}
