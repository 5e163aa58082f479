// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package upscaler

import (
	"errors"
	"fmt"

	"github.com/gogpu/upscaler/device"
	"github.com/gogpu/upscaler/effect"
	"github.com/gogpu/upscaler/loader"

	// Backends register themselves with the device package.
	_ "github.com/gogpu/upscaler/backend/d3d11"
	_ "github.com/gogpu/upscaler/backend/d3d12"
	_ "github.com/gogpu/upscaler/backend/vulkan"
)

var (
	// ErrInitFailed is returned when the backend could not bind to the
	// host's device.
	ErrInitFailed = errors.New("upscaler: device backend initialization failed")

	// ErrBadPayload is returned when a render event carries a payload of
	// the wrong type.
	ErrBadPayload = errors.New("upscaler: unexpected render event payload")

	// ErrUnknownEvent is returned for render and device events with an
	// unknown type.
	ErrUnknownEvent = errors.New("upscaler: unknown event")

	// ErrNoLoader is returned by Module when the plugin was created
	// without WithLoader.
	ErrNoLoader = errors.New("upscaler: no module loader")
)

// Option configures a Plugin.
type Option func(*Plugin)

// WithFactory makes the plugin manage backends through f instead of
// device.Default().
func WithFactory(f *device.Factory) Option {
	return func(p *Plugin) {
		p.devices = f
	}
}

// WithLoader hands the plugin the loader that holds the engine's native
// modules. Close closes it.
func WithLoader(l *loader.Loader) Option {
	return func(p *Plugin) {
		p.modules = l
	}
}

// Plugin routes host callbacks to the device layer and the effect
// instances.
type Plugin struct {
	host    device.Host
	devices *device.Factory
	effects *effect.Registry
	modules *loader.Loader
}

// New creates a plugin for host running engine.
func New(host device.Host, engine effect.Engine, opts ...Option) *Plugin {
	p := &Plugin{host: host, devices: device.Default()}
	for _, opt := range opts {
		opt(p)
	}
	p.effects = effect.NewRegistry(engine, effect.WithFactory(p.devices))
	return p
}

// Effects returns the plugin's effect instances.
func (p *Plugin) Effects() *effect.Registry { return p.effects }

// Module returns the engine module named name, loading it on first use.
func (p *Plugin) Module(name string) (*loader.Module, error) {
	if p.modules == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoLoader, name)
	}
	return p.modules.Module(name)
}

// Device returns the live backend, or nil.
func (p *Plugin) Device() device.Device { return p.devices.Current() }

// OnDeviceEvent handles the host's device lifecycle signals.
func (p *Plugin) OnDeviceEvent(ev DeviceEvent) error {
	switch ev.Type {
	case DeviceInitialize:
		dev, err := p.devices.GetOrCreate(ev.Kind)
		if err != nil {
			return err
		}
		if !dev.Init(p.host) {
			Logger().Error("upscaler: device init failed", "api", ev.Kind.String())
			return fmt.Errorf("%w: %s", ErrInitFailed, ev.Kind)
		}
		return nil
	case DeviceShutdown:
		p.effects.DestroyAll()
		p.devices.Shutdown()
		return nil
	default:
		return fmt.Errorf("%w: device event %d", ErrUnknownEvent, ev.Type)
	}
}

// OnRenderEvent runs one pass of one effect instance. It is called on the
// host's render thread. The payload type depends on the pass:
// effect.InitParams for PassInitialize, effect.DispatchParams for
// PassDispatch and effect.ReactiveMaskParams for PassReactiveMask, by value
// or pointer. PassDestroy takes none. A missing payload is logged and the
// event ignored.
func (p *Plugin) OnRenderEvent(eventID int32, payload any) error {
	id, pass := DecodeEvent(eventID)

	switch pass {
	case PassInitialize:
		return runPass(id, pass, payload, p.effects.Instance(id).Init)
	case PassDispatch:
		return runPass(id, pass, payload, p.effects.Instance(id).Dispatch)
	case PassReactiveMask:
		return runPass(id, pass, payload, p.effects.Instance(id).GenerateReactiveMask)
	case PassDestroy:
		p.effects.Instance(id).Destroy()
		return nil
	default:
		Logger().Warn("upscaler: unknown render event", "instance", id, "pass", uint16(pass))
		return fmt.Errorf("%w: pass %d", ErrUnknownEvent, pass)
	}
}

// OnTextureUpdate binds textureID to a slot of an instance. userData
// encodes the instance like a render event id, with the effect.TextureName
// in place of the pass.
func (p *Plugin) OnTextureUpdate(userData, textureID uint32) {
	id, name := userData>>eventShift, effect.TextureName(userData&0xFFFF)
	if !name.Valid() {
		Logger().Warn("upscaler: texture update for unknown slot", "instance", id, "slot", uint32(name))
		return
	}
	p.effects.Instance(id).SetTexture(name, device.TextureID(textureID))
}

// Close destroys every effect instance, shuts the backend down and unloads
// the engine modules.
func (p *Plugin) Close() error {
	p.effects.DestroyAll()
	p.devices.Shutdown()
	if p.modules != nil {
		return p.modules.Close()
	}
	return nil
}

// runPass calls run with the payload as T, accepting T or *T.
func runPass[T any](id uint32, pass PassEvent, payload any, run func(T) error) error {
	switch v := payload.(type) {
	case T:
		return run(v)
	case *T:
		if v != nil {
			return run(*v)
		}
	case nil:
	default:
		Logger().Error("upscaler: unexpected render event payload", "instance", id, "pass", pass.String(), "type", fmt.Sprintf("%T", payload))
		return fmt.Errorf("%w: %T for %s", ErrBadPayload, payload, pass)
	}
	Logger().Warn("upscaler: render event without payload", "instance", id, "pass", pass.String())
	return nil
}
