// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package d3d11

import (
	"log/slog"

	"github.com/gogpu/upscaler/device"
	"github.com/gogpu/upscaler/internal/gpusync"
)

func init() {
	device.Register(device.APID3D11, func() device.Device { return New() })
}

// Backend drives Direct3D 11 through the host device's immediate context.
type Backend struct {
	api API

	host   Host
	dev    device.Handle
	ctx    device.Handle
	tokens gpusync.Immediate

	initialized bool
}

// New creates an uninitialized backend.
func New(opts ...Option) *Backend {
	b := &Backend{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Backend) log() *slog.Logger {
	return device.Logger().With("api", "D3D11")
}

// Kind returns device.APID3D11.
func (b *Backend) Kind() device.APIKind { return device.APID3D11 }

// Init binds to the host's device and takes a reference on its immediate
// context.
func (b *Backend) Init(host device.Host) bool {
	if b.initialized {
		return true
	}
	if host == nil {
		b.log().Warn("init: no host")
		return false
	}
	h, ok := host.Graphics(device.APID3D11).(Host)
	if !ok || h == nil {
		b.log().Warn("init: host has no D3D11 interface")
		return false
	}
	dev := h.Device()
	if dev.IsNull() {
		b.log().Warn("init: host returned no device")
		return false
	}

	if b.api == nil {
		api, err := nativeAPI()
		if err != nil {
			b.log().Error("init: native API unavailable", "err", err)
			return false
		}
		b.api = api
	}

	ctx, err := b.api.ImmediateContext(dev)
	if err != nil {
		b.log().Error("GetImmediateContext", "err", err)
		return false
	}

	b.host = h
	b.dev = dev
	b.ctx = ctx
	b.initialized = true
	b.log().Info("backend initialized", "device", uintptr(dev))
	return true
}

// Destroy releases the immediate context reference taken by Init.
func (b *Backend) Destroy() {
	if !b.initialized {
		return
	}
	b.WaitAll()
	b.api.Release(b.ctx)

	b.host = nil
	b.dev = 0
	b.ctx = 0
	b.initialized = false
	b.log().Info("backend destroyed")
}

// Initialized reports whether the backend is usable.
func (b *Backend) Initialized() bool { return b.initialized }

// NativeDevice returns the host's ID3D11Device.
func (b *Backend) NativeDevice() device.Handle { return b.dev }

// AcquireCommandBuffer returns the immediate context.
func (b *Backend) AcquireCommandBuffer() device.Handle {
	if !b.initialized {
		return 0
	}
	return b.ctx
}

// SubmitCommandBuffer flushes the immediate context. The returned token is
// already complete.
func (b *Backend) SubmitCommandBuffer(cmd device.Handle) device.Token {
	if !b.initialized || cmd.IsNull() {
		return 0
	}
	if cmd != b.ctx {
		b.log().Warn("submit: not the immediate context", "context", uintptr(cmd))
		return 0
	}
	b.api.Flush(b.ctx)
	token, _ := b.tokens.Signal()
	return token
}

// WaitAll returns at once; every token is complete when issued.
func (b *Backend) WaitAll() {
	if b.initialized {
		b.WaitFor(b.tokens.CompletedValue())
	}
}

// WaitFor returns at once.
func (b *Backend) WaitFor(token device.Token) {
	_ = b.tokens.BlockUntil(token)
}

// CompletedValue returns the last issued token.
func (b *Backend) CompletedValue() device.Token { return b.tokens.CompletedValue() }

// ResolveResource returns the ID3D11Resource behind ref. Direct3D 11
// tracks resource state itself, so nothing is recorded and the returned
// State is zero.
func (b *Backend) ResolveResource(ref device.ResourceRef, opts device.ResolveOptions) device.Resource {
	if !b.initialized || ref.IsNull() {
		return device.Resource{}
	}

	native := ref.Native
	if native.IsNull() {
		native = b.host.TextureFromNativeTexture(ref.TextureID)
		if native.IsNull() {
			b.log().Warn("TextureFromNativeTexture", "texture", uint32(ref.TextureID))
			return device.Resource{}
		}
	}

	res := device.Resource{Native: native, Kind: device.APID3D11}
	if opts.Describe {
		desc, err := b.api.ResourceDesc(native)
		if err != nil {
			b.log().Warn("ID3D11Resource::GetDesc", "err", err)
		} else {
			res.Desc = Describe(desc, opts.Usage)
		}
	}
	return res
}

var _ device.Device = (*Backend)(nil)
