// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package d3d11

// Option configures a Backend.
type Option func(*Backend)

// WithAPI replaces the native COM binding.
func WithAPI(api API) Option {
	return func(b *Backend) {
		b.api = api
	}
}
