// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

import (
	"slices"
	"sync"
)

// Constructor creates an uninitialized backend.
type Constructor func() Device

// registry holds the registered backends.
var (
	registryMu   sync.RWMutex
	constructors = make(map[APIKind]Constructor)
)

// Register registers a backend constructor for kind.
// This is typically called from init() functions in backend packages.
// A later registration for the same kind replaces the earlier one.
func Register(kind APIKind, ctor Constructor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	constructors[kind] = ctor
}

// Unregister removes the constructor for kind.
// This is useful for testing.
func Unregister(kind APIKind) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(constructors, kind)
}

// IsRegistered reports whether a constructor exists for kind.
func IsRegistered(kind APIKind) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := constructors[kind]
	return ok
}

// Available returns the registered API kinds in ascending order.
func Available() []APIKind {
	registryMu.RLock()
	defer registryMu.RUnlock()

	kinds := make([]APIKind, 0, len(constructors))
	for k := range constructors {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

func lookup(kind APIKind) (Constructor, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	ctor, ok := constructors[kind]
	return ctor, ok
}
