// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render turns layer2d layers into backend draw calls.
//
// The host application owns the GPU. A Pass receives a Backend that wraps the
// host's device and queue and, for every layer drawn, it:
//
//   - flushes pending glyph rasters into the backend's glyph texture
//   - uploads sprite bucket arrays that changed since the previous frame
//   - re-uploads the layer's vertices when its version moved
//   - issues one DrawCall per run of consecutive quads sharing a bucket
//
// # Usage
//
//	ctx, _ := layer2d.NewContext(layer2d.DefaultConfig())
//	pass := render.New(ctx, backend, render.WithDevice(app))
//	ctx.SetRenderer(pass)
//
//	l := ctx.NewLayer(800, 600)
//	l.Sprite(hero, 0, 100, 100, layer2d.White, 0, 1, 1)
//	_ = l.Draw()
//
// Recorder is a CPU-side Backend for headless use and tests.
package render
