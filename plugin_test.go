// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package upscaler

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/upscaler/device"
	"github.com/gogpu/upscaler/effect"
	"github.com/gogpu/upscaler/loader"
)

// stubDevice is a Device that succeeds at everything and counts lifecycle
// calls.
type stubDevice struct {
	kind        device.APIKind
	failInit    bool
	host        device.Host
	initialized bool
	destroys    int
	submits     int
}

func (d *stubDevice) Kind() device.APIKind        { return d.kind }
func (d *stubDevice) Initialized() bool           { return d.initialized }
func (d *stubDevice) NativeDevice() device.Handle { return 1 }
func (d *stubDevice) WaitAll()                    {}
func (d *stubDevice) WaitFor(device.Token)        {}

func (d *stubDevice) Init(host device.Host) bool {
	if d.failInit {
		return false
	}
	d.host = host
	d.initialized = true
	return true
}

func (d *stubDevice) Destroy() {
	if d.initialized {
		d.destroys++
		d.initialized = false
	}
}

func (d *stubDevice) AcquireCommandBuffer() device.Handle { return 0x10 }

func (d *stubDevice) SubmitCommandBuffer(device.Handle) device.Token {
	d.submits++
	return device.Token(d.submits)
}

func (d *stubDevice) CompletedValue() device.Token { return device.Token(d.submits) }

func (d *stubDevice) ResolveResource(ref device.ResourceRef, _ device.ResolveOptions) device.Resource {
	if ref.IsNull() {
		return device.Resource{}
	}
	if ref.Native != 0 {
		return device.Resource{Native: ref.Native, Kind: d.kind}
	}
	return device.Resource{Native: device.Handle(0x1000 + ref.TextureID), Kind: d.kind}
}

type stubEngine struct {
	created int
	ctx     stubContext
}

func (e *stubEngine) CreateContext(device.Device, effect.ContextDesc) (effect.Context, error) {
	e.created++
	return &e.ctx, nil
}

type stubContext struct {
	dispatches []effect.DispatchDesc
	masks      int
	destroyed  int
}

func (c *stubContext) GenerateReactiveMask(device.Handle, effect.ReactiveMaskDesc) error {
	c.masks++
	return nil
}

func (c *stubContext) Dispatch(_ device.Handle, desc effect.DispatchDesc) error {
	c.dispatches = append(c.dispatches, desc)
	return nil
}

func (c *stubContext) Destroy() error {
	c.destroyed++
	return nil
}

type testPlugin struct {
	*Plugin
	dev    *stubDevice
	engine *stubEngine
}

func newTestPlugin(t *testing.T) testPlugin {
	t.Helper()
	dev := &stubDevice{kind: device.APIVulkan}
	f := device.NewFactory(device.WithConstructor(device.APIVulkan, func() device.Device { return dev }))
	engine := &stubEngine{}
	host := device.HostFunc(func(device.APIKind) any { return nil })
	return testPlugin{Plugin: New(host, engine, WithFactory(f)), dev: dev, engine: engine}
}

func (tp testPlugin) start(t *testing.T) {
	t.Helper()
	if err := tp.OnDeviceEvent(DeviceEvent{Type: DeviceInitialize, Kind: device.APIVulkan}); err != nil {
		t.Fatalf("OnDeviceEvent(Initialize) error = %v", err)
	}
}

var display = gputypes.Extent3D{Width: 1920, Height: 1080, DepthOrArrayLayers: 1}

func TestEventEncoding(t *testing.T) {
	tests := []struct {
		instance uint32
		pass     PassEvent
	}{
		{0, PassInitialize},
		{1, PassDispatch},
		{7, PassReactiveMask},
		{0x7FFF, PassDestroy},
	}
	for _, tt := range tests {
		id := EncodeEvent(tt.instance, tt.pass)
		instance, pass := DecodeEvent(id)
		if instance != tt.instance || pass != tt.pass {
			t.Errorf("DecodeEvent(%#x) = %d, %v; want %d, %v", id, instance, pass, tt.instance, tt.pass)
		}
	}
	if instance, pass := DecodeEvent(0x00030002); instance != 3 || pass != PassDispatch {
		t.Errorf("DecodeEvent(0x30002) = %d, %v; want 3, Dispatch", instance, pass)
	}
}

func TestDeviceInitialize(t *testing.T) {
	tp := newTestPlugin(t)
	tp.start(t)

	if tp.Device() != tp.dev {
		t.Fatal("Device() is not the constructed backend")
	}
	if !tp.dev.initialized || tp.dev.host == nil {
		t.Error("backend not initialized with the plugin's host")
	}

	// A repeated signal reuses the live backend.
	tp.start(t)
	if tp.Device() != tp.dev {
		t.Error("second Initialize replaced the backend")
	}
}

func TestDeviceInitializeUnsupported(t *testing.T) {
	tp := newTestPlugin(t)
	err := tp.OnDeviceEvent(DeviceEvent{Type: DeviceInitialize, Kind: device.APIUnknown})
	if !errors.Is(err, device.ErrUnsupportedAPI) {
		t.Errorf("OnDeviceEvent() error = %v, want ErrUnsupportedAPI", err)
	}
	if tp.Device() != nil {
		t.Error("Device() != nil after unsupported Initialize")
	}
}

func TestDeviceInitializeFailure(t *testing.T) {
	tp := newTestPlugin(t)
	tp.dev.failInit = true
	err := tp.OnDeviceEvent(DeviceEvent{Type: DeviceInitialize, Kind: device.APIVulkan})
	if !errors.Is(err, ErrInitFailed) {
		t.Errorf("OnDeviceEvent() error = %v, want ErrInitFailed", err)
	}
}

func TestDeviceShutdown(t *testing.T) {
	tp := newTestPlugin(t)
	tp.start(t)
	if err := tp.OnRenderEvent(EncodeEvent(0, PassInitialize), effect.InitParams{DisplaySize: display}); err != nil {
		t.Fatal(err)
	}

	if err := tp.OnDeviceEvent(DeviceEvent{Type: DeviceShutdown}); err != nil {
		t.Fatalf("OnDeviceEvent(Shutdown) error = %v", err)
	}
	if tp.engine.ctx.destroyed != 1 {
		t.Errorf("engine contexts destroyed = %d, want 1", tp.engine.ctx.destroyed)
	}
	if tp.dev.destroys != 1 || tp.Device() != nil {
		t.Errorf("destroys = %d, Device() = %v; want 1, nil", tp.dev.destroys, tp.Device())
	}
}

func TestDeviceEventUnknown(t *testing.T) {
	tp := newTestPlugin(t)
	if err := tp.OnDeviceEvent(DeviceEvent{Type: 9}); !errors.Is(err, ErrUnknownEvent) {
		t.Errorf("OnDeviceEvent() error = %v, want ErrUnknownEvent", err)
	}
}

func TestRenderEvents(t *testing.T) {
	tp := newTestPlugin(t)
	tp.start(t)

	if err := tp.OnRenderEvent(EncodeEvent(2, PassInitialize), &effect.InitParams{DisplaySize: display}); err != nil {
		t.Fatalf("Initialize error = %v", err)
	}
	if !tp.Effects().Instance(2).Initialized() {
		t.Fatal("instance 2 not initialized")
	}

	tp.OnTextureUpdate(2<<16|uint32(effect.TextureColor), 42)
	if err := tp.OnRenderEvent(EncodeEvent(2, PassDispatch), effect.DispatchParams{FrameTimeDelta: 0.02}); err != nil {
		t.Fatalf("Dispatch error = %v", err)
	}
	if len(tp.engine.ctx.dispatches) != 1 {
		t.Fatalf("dispatches = %d, want 1", len(tp.engine.ctx.dispatches))
	}
	if got := tp.engine.ctx.dispatches[0].Color.Native; got != 0x1000+42 {
		t.Errorf("Color = %#x, want texture 42", got)
	}

	if err := tp.OnRenderEvent(EncodeEvent(2, PassReactiveMask), &effect.ReactiveMaskParams{}); err != nil {
		t.Fatalf("ReactiveMask error = %v", err)
	}
	if tp.engine.ctx.masks != 1 {
		t.Errorf("masks = %d, want 1", tp.engine.ctx.masks)
	}
	if tp.dev.submits != 2 {
		t.Errorf("submits = %d, want 2", tp.dev.submits)
	}

	if err := tp.OnRenderEvent(EncodeEvent(2, PassDestroy), nil); err != nil {
		t.Fatalf("Destroy error = %v", err)
	}
	if tp.Effects().Instance(2).Initialized() {
		t.Error("instance 2 still initialized after Destroy")
	}
}

func TestRenderEventMissingPayload(t *testing.T) {
	tp := newTestPlugin(t)
	tp.start(t)

	if err := tp.OnRenderEvent(EncodeEvent(0, PassInitialize), nil); err != nil {
		t.Errorf("nil payload error = %v, want nil", err)
	}
	if err := tp.OnRenderEvent(EncodeEvent(0, PassDispatch), (*effect.DispatchParams)(nil)); err != nil {
		t.Errorf("typed nil payload error = %v, want nil", err)
	}
	if tp.engine.created != 0 || tp.dev.submits != 0 {
		t.Error("event without payload reached the engine")
	}
}

func TestRenderEventBadPayload(t *testing.T) {
	tp := newTestPlugin(t)
	tp.start(t)
	err := tp.OnRenderEvent(EncodeEvent(0, PassDispatch), effect.InitParams{})
	if !errors.Is(err, ErrBadPayload) {
		t.Errorf("OnRenderEvent() error = %v, want ErrBadPayload", err)
	}
}

func TestRenderEventUnknownPass(t *testing.T) {
	tp := newTestPlugin(t)
	if err := tp.OnRenderEvent(EncodeEvent(5, 99), nil); !errors.Is(err, ErrUnknownEvent) {
		t.Errorf("OnRenderEvent() error = %v, want ErrUnknownEvent", err)
	}
	if n := tp.Effects().Len(); n != 0 {
		t.Errorf("unknown pass created %d instances", n)
	}
}

func TestTextureUpdateInvalidSlot(t *testing.T) {
	tp := newTestPlugin(t)
	tp.OnTextureUpdate(1<<16|0xFF, 42)
	if n := tp.Effects().Len(); n != 0 {
		t.Errorf("invalid slot created %d instances", n)
	}
	tp.OnTextureUpdate(1<<16|uint32(effect.TextureOutput), 42)
	if got := tp.Effects().Instance(1).Texture(effect.TextureOutput); got != 42 {
		t.Errorf("Texture(Output) = %d, want 42", got)
	}
}

func TestCloseUnloadsModules(t *testing.T) {
	dev := &stubDevice{kind: device.APIVulkan}
	f := device.NewFactory(device.WithConstructor(device.APIVulkan, func() device.Device { return dev }))
	l := loader.New(t.TempDir())
	p := New(nil, &stubEngine{}, WithFactory(f), WithLoader(l))
	if err := p.OnDeviceEvent(DeviceEvent{Type: DeviceInitialize, Kind: device.APIVulkan}); err != nil {
		t.Fatal(err)
	}

	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if dev.destroys != 1 {
		t.Errorf("destroys = %d, want 1", dev.destroys)
	}
	if _, err := l.Module("engine.dll"); !errors.Is(err, loader.ErrClosed) {
		t.Errorf("Module() after Close error = %v, want ErrClosed", err)
	}
}

type stubLibrary struct {
	path   string
	closed bool
}

func (l *stubLibrary) Proc(symbol string) (uintptr, error) {
	if symbol != "ffxFsr2ContextCreate" {
		return 0, errors.New("no such symbol")
	}
	return 0x1234, nil
}

func (l *stubLibrary) Close() error {
	l.closed = true
	return nil
}

func TestModule(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "plugins", "x86_64")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "engine.dll"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	var opened []*stubLibrary
	l := loader.New(root, loader.WithOpener(func(path string) (loader.Library, error) {
		lib := &stubLibrary{path: path}
		opened = append(opened, lib)
		return lib, nil
	}))
	p := New(nil, &stubEngine{}, WithFactory(device.NewFactory()), WithLoader(l))

	m, err := p.Module("engine.dll")
	if err != nil {
		t.Fatalf("Module() error = %v", err)
	}
	if m.Path() != filepath.Join(dir, "engine.dll") {
		t.Errorf("Path() = %q", m.Path())
	}
	if addr, err := m.Proc("ffxFsr2ContextCreate"); err != nil || addr != 0x1234 {
		t.Errorf("Proc() = %#x, %v", addr, err)
	}
	if _, err := p.Module("engine.dll"); err != nil {
		t.Fatalf("second Module() error = %v", err)
	}
	if len(opened) != 1 {
		t.Errorf("opened %d times, want 1", len(opened))
	}
	if _, err := p.Module("missing.dll"); !errors.Is(err, loader.ErrNotFound) {
		t.Errorf("Module(missing) error = %v, want ErrNotFound", err)
	}

	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
	if !opened[0].closed {
		t.Error("module not closed with the plugin")
	}
}

func TestModuleWithoutLoader(t *testing.T) {
	p := New(nil, &stubEngine{}, WithFactory(device.NewFactory()))
	if _, err := p.Module("engine.dll"); !errors.Is(err, ErrNoLoader) {
		t.Errorf("Module() error = %v, want ErrNoLoader", err)
	}
}

func TestBackendsRegistered(t *testing.T) {
	for _, kind := range []device.APIKind{device.APID3D11, device.APID3D12, device.APIVulkan} {
		if !device.IsRegistered(kind) {
			t.Errorf("%s backend not registered", kind)
		}
	}
}
