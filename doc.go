// Package layer2d batches sprites and text into GPU-ready vertex streams.
//
// # Overview
//
// A Context owns the shared resources: the sprite texture store (one texture
// array per size bucket), the glyph cache texture, and the id allocators for
// layers and fonts. Layers are ordered vertex buffers that any goroutine may
// append to; a renderer draws them.
//
// # Quick Start
//
//	ctx, err := layer2d.NewContext(layer2d.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pass := render.New(ctx, render.NewRecorder())
//	ctx.SetRenderer(pass)
//
//	hero, err := ctx.LoadSprite("assets/hero_32x32x4.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	font, err := ctx.FontFromBytes(goregular.TTF)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	layer := ctx.NewLayer(800, 600)
//	hero.Draw(layer, 0, 100, 100, layer2d.White)
//	font.WithSize(24).Write(layer, "Hello", 10, 10)
//	layer.Draw()
//
// # Sprite sheets
//
// A file named "name_<W>x<H>x<N>.png" holds N frames of W x H pixels. If H
// equals the image height the frames run left to right, otherwise top to
// bottom. Frames are padded to the smallest power-of-two bucket (16 to 2048
// pixels) that holds them.
//
// # Concurrency
//
// Layer, Sprite, Font and Context methods are safe for concurrent use. A
// layer's version is bumped after every change, so a renderer that reads
// Version before copying the vertices never caches stale data.
//
// # Coordinate System
//
// Pixel coordinates with the origin at the top-left, x to the right and y
// down. The default view matrix of a layer maps this space to clip space.
package layer2d

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
