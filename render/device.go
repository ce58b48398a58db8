// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/layer2d/atlas"
	"github.com/gogpu/layer2d/glyphcache"
)

// DeviceHandle provides GPU device access from the host application.
//
// The pass never creates a device. Backends built on a real GPU receive the
// handle through WithDevice and create textures and buffers on the host's
// device and queue.
type DeviceHandle = gpucontext.DeviceProvider

// TextureDescriptor describes a texture the backend must create or resize.
// This mirrors the WebGPU GPUTextureDescriptor specification.
type TextureDescriptor struct {
	// Label is an optional debug label for the texture.
	Label string

	// Width is the texture width in pixels.
	Width uint32

	// Height is the texture height in pixels.
	Height uint32

	// Depth is the array layer count. Use 1 for regular 2D textures.
	Depth uint32

	// MipLevelCount is the number of mipmap levels.
	MipLevelCount uint32

	// SampleCount is the number of samples for multisampling.
	SampleCount uint32

	// Format is the texture pixel format.
	Format gputypes.TextureFormat

	// Usage specifies how the texture will be used.
	Usage TextureUsage
}

// TextureUsage specifies how a texture can be used.
// These flags can be combined with bitwise OR.
type TextureUsage uint32

const (
	// TextureUsageCopySrc allows the texture to be used as a copy source.
	TextureUsageCopySrc TextureUsage = 1 << iota

	// TextureUsageCopyDst allows the texture to be used as a copy destination.
	TextureUsageCopyDst

	// TextureUsageTextureBinding allows the texture to be used in a texture binding.
	TextureUsageTextureBinding

	// TextureUsageStorageBinding allows the texture to be used in a storage binding.
	TextureUsageStorageBinding

	// TextureUsageRenderAttachment allows the texture to be used as a render attachment.
	TextureUsageRenderAttachment
)

// Has reports whether every flag in f is set.
func (u TextureUsage) Has(f TextureUsage) bool { return u&f == f }

// DefaultTextureDescriptor returns a single-layer sampled texture descriptor
// that can be written from the CPU.
func DefaultTextureDescriptor(width, height uint32, format gputypes.TextureFormat) TextureDescriptor {
	return TextureDescriptor{
		Width:         width,
		Height:        height,
		Depth:         1,
		MipLevelCount: 1,
		SampleCount:   1,
		Format:        format,
		Usage:         TextureUsageCopyDst | TextureUsageTextureBinding,
	}
}

// GlyphTextureDescriptor describes the single-channel texture backing c.
func GlyphTextureDescriptor(c *glyphcache.Cache) TextureDescriptor {
	w, h := c.Size()
	desc := DefaultTextureDescriptor(uint32(w), uint32(h), c.Format())
	desc.Label = "layer2d.glyphs"
	return desc
}

// BucketTextureDescriptor describes the RGBA texture array for a dirty bucket.
// Depth is the number of layers currently stored in it.
func BucketTextureDescriptor(b atlas.DirtyBucket) TextureDescriptor {
	desc := DefaultTextureDescriptor(uint32(b.Size), uint32(b.Size), gputypes.TextureFormatRGBA8Unorm)
	desc.Label = "layer2d.bucket"
	desc.Depth = uint32(len(b.Layers))
	return desc
}

// NullDeviceHandle is a DeviceHandle that provides nil implementations.
// Used for headless rendering where no GPU is available.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// AdapterInfo returns a zero AdapterInfo for the null device.
func (NullDeviceHandle) AdapterInfo() gpucontext.AdapterInfo { return gpucontext.AdapterInfo{} }

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// Ensure NullDeviceHandle implements DeviceHandle.
var _ DeviceHandle = NullDeviceHandle{}
