package layer2d

// Sprite is an immutable handle to frames stored in a bucket texture array.
type Sprite struct {
	width, height int
	frames        int
	bucket        uint32
	base          uint32
	uMax, vMax    float32
	anchorX       float32
	anchorY       float32
	loaded        bool
}

// Width returns the frame width in pixels.
func (s *Sprite) Width() int { return s.width }

// Height returns the frame height in pixels.
func (s *Sprite) Height() int { return s.height }

// Frames returns the number of frames.
func (s *Sprite) Frames() int { return s.frames }

// BucketID returns the texture array holding the frames.
func (s *Sprite) BucketID() uint32 { return s.bucket }

// Loaded reports whether the sprite's frames are in the texture store.
func (s *Sprite) Loaded() bool { return s.loaded }

// UV returns the texture coordinates of the frame's bottom-right corner.
func (s *Sprite) UV() (uMax, vMax float32) { return s.uMax, s.vMax }

// Anchor returns the anchor as a fraction of the frame size.
func (s *Sprite) Anchor() (x, y float32) { return s.anchorX, s.anchorY }

// TextureID returns the texture array layer of frame. Frames wrap around,
// so animation counters can increase without bound.
func (s *Sprite) TextureID(frame int) uint32 {
	if s.frames <= 0 {
		return s.base
	}
	f := frame % s.frames
	if f < 0 {
		f += s.frames
	}
	return s.base + uint32(f)
}

// WithAnchor returns a copy of s rotating and scaling around (x, y), given
// as a fraction of the frame size.
func (s *Sprite) WithAnchor(x, y float32) *Sprite {
	c := *s
	c.anchorX, c.anchorY = x, y
	return &c
}

// Draw adds frame at (x, y) to l.
func (s *Sprite) Draw(l *Layer, frame int, x, y float32, color Color) {
	l.Sprite(s, frame, x, y, color, 0, 1, 1)
}

// DrawTransformed adds a rotated and scaled frame to l.
func (s *Sprite) DrawTransformed(l *Layer, frame int, x, y float32, color Color, rotation, sx, sy float32) {
	l.Sprite(s, frame, x, y, color, rotation, sx, sy)
}
