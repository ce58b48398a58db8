package layer2d

import (
	"github.com/gogpu/layer2d/atlas"
	"github.com/gogpu/layer2d/idgen"
	"github.com/gogpu/layer2d/text"
)

// Option configures a Context during creation.
//
// Example:
//
//	ctx, err := layer2d.NewContext(layer2d.DefaultConfig(),
//	    layer2d.WithRenderer(myRenderer),
//	    layer2d.WithLayerIDs(idgen.New(1)),
//	)
type Option func(*options)

type options struct {
	renderer    Renderer
	layerIDs    *idgen.Allocator
	fontIDs     *idgen.Allocator
	decoder     atlas.Decoder
	systemFonts *text.SystemFonts
	noSystem    bool
}

// WithRenderer sets the renderer Layer.Draw hands layers to.
// Renderers that need the Context can be set later with SetRenderer.
func WithRenderer(r Renderer) Option {
	return func(o *options) {
		o.renderer = r
	}
}

// WithLayerIDs sets the allocator layer ids are drawn from. Contexts
// sharing one allocator never hand out the same layer id.
func WithLayerIDs(a *idgen.Allocator) Option {
	return func(o *options) {
		o.layerIDs = a
	}
}

// WithFontIDs sets the allocator font ids are drawn from.
func WithFontIDs(a *idgen.Allocator) Option {
	return func(o *options) {
		o.fontIDs = a
	}
}

// WithDecoder sets the image decoder used by LoadSprite.
// The default is atlas.FileDecoder.
func WithDecoder(d atlas.Decoder) Option {
	return func(o *options) {
		o.decoder = d
	}
}

// WithSystemFonts sets the system font service. Passing nil disables
// system font queries.
func WithSystemFonts(s *text.SystemFonts) Option {
	return func(o *options) {
		o.systemFonts = s
		o.noSystem = s == nil
	}
}
