// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows

package d3d11

import (
	"unsafe"

	"github.com/gogpu/upscaler/device"
	"github.com/gogpu/upscaler/internal/com"
	"github.com/gogpu/upscaler/internal/dxgi"
)

// Vtable slots, counted from IUnknown.
const (
	vtblDeviceGetImmediateContext = 40
	vtblContextFlush              = 111
	vtblResourceGetType           = 7
	vtblResourceGetDesc           = 10
)

type bufferDesc struct {
	ByteWidth           uint32
	Usage               uint32
	BindFlags           uint32
	CPUAccessFlags      uint32
	MiscFlags           uint32
	StructureByteStride uint32
}

type texture1DDesc struct {
	Width          uint32
	MipLevels      uint32
	ArraySize      uint32
	Format         dxgi.Format
	Usage          uint32
	BindFlags      uint32
	CPUAccessFlags uint32
	MiscFlags      uint32
}

type texture2DDesc struct {
	Width          uint32
	Height         uint32
	MipLevels      uint32
	ArraySize      uint32
	Format         dxgi.Format
	SampleCount    uint32
	SampleQuality  uint32
	Usage          uint32
	BindFlags      uint32
	CPUAccessFlags uint32
	MiscFlags      uint32
}

type texture3DDesc struct {
	Width          uint32
	Height         uint32
	Depth          uint32
	MipLevels      uint32
	Format         dxgi.Format
	Usage          uint32
	BindFlags      uint32
	CPUAccessFlags uint32
	MiscFlags      uint32
}

// comAPI binds API to the COM interfaces of d3d11.dll objects.
type comAPI struct{}

func nativeAPI() (API, error) { return comAPI{}, nil }

func (comAPI) ImmediateContext(dev device.Handle) (device.Handle, error) {
	var ctx uintptr
	com.Call(uintptr(dev), vtblDeviceGetImmediateContext, uintptr(unsafe.Pointer(&ctx)))
	if ctx == 0 {
		return 0, ErrNoContext
	}
	return device.Handle(ctx), nil
}

func (comAPI) Flush(ctx device.Handle) {
	com.Call(uintptr(ctx), vtblContextFlush)
}

// ResourceDesc classifies the resource with GetType and reads the matching
// description. Buffers and textures derive from ID3D11Resource by single
// inheritance, so GetDesc sits in the same vtable.
func (comAPI) ResourceDesc(resource device.Handle) (ResourceDesc, error) {
	var dim Dimension
	obj := uintptr(resource)
	com.Call(obj, vtblResourceGetType, uintptr(unsafe.Pointer(&dim)))

	switch dim {
	case DimensionBuffer:
		var d bufferDesc
		com.Call(obj, vtblResourceGetDesc, uintptr(unsafe.Pointer(&d)))
		return ResourceDesc{
			Dimension:           dim,
			BindFlags:           d.BindFlags,
			MiscFlags:           d.MiscFlags,
			ByteWidth:           d.ByteWidth,
			StructureByteStride: d.StructureByteStride,
		}, nil
	case DimensionTexture1D:
		var d texture1DDesc
		com.Call(obj, vtblResourceGetDesc, uintptr(unsafe.Pointer(&d)))
		return ResourceDesc{
			Dimension:        dim,
			Width:            d.Width,
			Height:           1,
			DepthOrArraySize: d.ArraySize,
			MipLevels:        d.MipLevels,
			Format:           d.Format,
			BindFlags:        d.BindFlags,
			MiscFlags:        d.MiscFlags,
		}, nil
	case DimensionTexture2D:
		var d texture2DDesc
		com.Call(obj, vtblResourceGetDesc, uintptr(unsafe.Pointer(&d)))
		return ResourceDesc{
			Dimension:        dim,
			Width:            d.Width,
			Height:           d.Height,
			DepthOrArraySize: d.ArraySize,
			MipLevels:        d.MipLevels,
			Format:           d.Format,
			BindFlags:        d.BindFlags,
			MiscFlags:        d.MiscFlags,
		}, nil
	case DimensionTexture3D:
		var d texture3DDesc
		com.Call(obj, vtblResourceGetDesc, uintptr(unsafe.Pointer(&d)))
		return ResourceDesc{
			Dimension:        dim,
			Width:            d.Width,
			Height:           d.Height,
			DepthOrArraySize: d.Depth,
			MipLevels:        d.MipLevels,
			Format:           d.Format,
			BindFlags:        d.BindFlags,
			MiscFlags:        d.MiscFlags,
		}, nil
	}
	return ResourceDesc{}, ErrUnknownDimension
}

func (comAPI) Release(obj device.Handle) {
	com.ReleaseObject(uintptr(obj))
}
