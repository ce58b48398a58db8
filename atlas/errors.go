package atlas

import (
	"errors"
	"fmt"
)

// Sentinel errors for atlas package.
var (
	// ErrNotImage is returned when a file's content is not a known image type.
	ErrNotImage = errors.New("atlas: not an image")

	// ErrUnsupportedFormat is returned for image types without a decoder.
	ErrUnsupportedFormat = errors.New("atlas: unsupported image format")

	// ErrInvalidFrameSize is returned when a filename declares a zero frame
	// width, height or count.
	ErrInvalidFrameSize = errors.New("atlas: invalid frame size")

	// ErrInvalidBucket is returned by Store for ids that are not sprite buckets.
	ErrInvalidBucket = errors.New("atlas: invalid bucket")

	// ErrBucketFull is returned when a texture array reached its layer limit.
	ErrBucketFull = errors.New("atlas: bucket texture array full")
)

// Axis names the image dimension a MismatchError refers to.
type Axis string

const (
	AxisWidth  Axis = "width"
	AxisHeight Axis = "height"
)

// MismatchError reports a filename frame declaration that disagrees with
// the image dimensions.
type MismatchError struct {
	File     string
	Axis     Axis
	Expected int // frame size times frame count
	Actual   int // image size
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("atlas: %s: frames need image %s %d, image is %d",
		e.File, e.Axis, e.Expected, e.Actual)
}

// LoadError wraps a failure to load a sprite sheet.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("atlas: load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
