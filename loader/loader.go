// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gogpu/upscaler/device"
)

// Library is a loaded native module.
type Library interface {
	Proc(symbol string) (uintptr, error)
	Close() error
}

// Opener loads the module at path.
type Opener func(path string) (Library, error)

// Option configures a Loader.
type Option func(*Loader)

// WithOpener replaces the platform opener.
func WithOpener(open Opener) Option {
	return func(l *Loader) {
		l.open = open
	}
}

// Module is a module found and loaded by a Loader.
type Module struct {
	name string
	path string
	lib  Library
}

// Name returns the name the module was requested by.
func (m *Module) Name() string { return m.name }

// Path returns the file the module was loaded from.
func (m *Module) Path() string { return m.path }

// Proc returns the address of an exported symbol.
func (m *Module) Proc(symbol string) (uintptr, error) {
	p, err := m.lib.Proc(symbol)
	if err != nil {
		return 0, fmt.Errorf("loader: %s: %s: %w", m.name, symbol, err)
	}
	return p, nil
}

type entry struct {
	mod *Module
	err error
}

// Loader loads modules found below a root directory. It is safe for
// concurrent use.
type Loader struct {
	root string
	open Opener

	mu      sync.Mutex
	modules map[string]entry
	closed  bool
}

// New creates a loader searching below root.
func New(root string, opts ...Option) *Loader {
	l := &Loader{
		root:    root,
		open:    openNative,
		modules: make(map[string]entry),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Module returns the module named name, searching the tree and loading it
// on first request. File names match case-insensitively; when several
// files match, the first one in lexical walk order wins. The outcome,
// including failure, is cached per name.
func (l *Loader) Module(name string) (*Module, error) {
	key := strings.ToLower(name)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil, ErrClosed
	}
	if e, ok := l.modules[key]; ok {
		return e.mod, e.err
	}

	mod, err := l.load(name)
	if err != nil {
		device.Logger().Warn("loader: module unavailable", "name", name, "err", err)
	} else {
		device.Logger().Info("loader: module loaded", "name", name, "path", mod.path)
	}
	l.modules[key] = entry{mod: mod, err: err}
	return mod, err
}

func (l *Loader) load(name string) (*Module, error) {
	path, err := find(l.root, name)
	if err != nil {
		return nil, err
	}
	lib, err := l.open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: open %s: %w", path, err)
	}
	return &Module{name: name, path: path, lib: lib}, nil
}

var errFound = errors.New("found")

// find walks root depth-first for a regular file named name.
func find(root, name string) (string, error) {
	var path string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return err
			}
			device.Logger().Debug("loader: skipping unreadable entry", "path", p, "err", err)
			return nil
		}
		if !d.IsDir() && strings.EqualFold(d.Name(), name) {
			path = p
			return errFound
		}
		return nil
	})
	switch {
	case errors.Is(err, errFound):
		return path, nil
	case err != nil:
		return "", fmt.Errorf("loader: search %s: %w", root, err)
	default:
		return "", fmt.Errorf("%w: %s under %s", ErrNotFound, name, root)
	}
}

// Close unloads every module. Modules returned earlier must not be used
// afterwards.
func (l *Loader) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true

	var errs []error
	for _, e := range l.modules {
		if e.mod == nil {
			continue
		}
		if err := e.mod.lib.Close(); err != nil {
			errs = append(errs, fmt.Errorf("loader: close %s: %w", e.mod.name, err))
		}
	}
	l.modules = nil
	return errors.Join(errs...)
}
