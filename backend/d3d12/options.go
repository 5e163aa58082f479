// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package d3d12

// Option configures a Backend.
type Option func(*Backend)

// WithAPI replaces the native COM binding, typically with a fake.
func WithAPI(api API) Option {
	return func(b *Backend) {
		b.api = api
	}
}
