// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vulkan

// Option configures a Backend.
type Option func(*Backend)

// WithCommands replaces the vulkan-go binding.
func WithCommands(cmds Commands) Option {
	return func(b *Backend) {
		b.cmds = cmds
	}
}

// WithQueueFamilyIndex overrides the queue family the host reports for its
// graphics queue. Command pools are created on this family.
func WithQueueFamilyIndex(index uint32) Option {
	return func(b *Backend) {
		b.queueFamily = &index
	}
}
