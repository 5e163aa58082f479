// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package loader finds and loads the upscaling engine's native modules.
//
// The host ships the engine libraries somewhere under its plugin directory
// without a fixed layout. A Loader searches that tree once per module name,
// keeps the loaded module for the life of the process and remembers failed
// lookups so the tree is never walked twice for the same name.
//
//	l := loader.New(pluginDir)
//	defer l.Close()
//	m, err := l.Module("ffx_backend_dx12_x64.dll")
//	if err != nil {
//	    return err
//	}
//	create, err := m.Proc("ffxFsr2ContextCreate")
package loader
