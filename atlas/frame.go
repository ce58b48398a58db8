package atlas

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
)

// FrameLayout is the direction frames are laid out in a sheet.
type FrameLayout int

const (
	// Horizontal sheets hold frames left to right, wrapping into rows.
	Horizontal FrameLayout = iota

	// Vertical sheets hold frames top to bottom, wrapping into columns.
	Vertical
)

// String returns the layout name.
func (l FrameLayout) String() string {
	switch l {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("FrameLayout(%d)", int(l))
	}
}

// FrameParameters describe how a sheet is divided into frames.
type FrameParameters struct {
	Width  int
	Height int
	Count  int
	Layout FrameLayout
}

// frameSuffix matches "name_<W>x<H>x<N>.ext".
var frameSuffix = regexp.MustCompile(`_(\d+)x(\d+)x(\d+)\.`)

// ParseFrameParameters derives frame parameters from a file name and the
// decoded image size.
//
// Without a "_<W>x<H>x<N>." suffix the whole image is one frame. With one,
// the sheet is horizontal when H equals the image height and vertical
// otherwise; the frames must then exactly cover the image along that axis,
// and a vertical sheet's frames may not be wider than the image.
func ParseFrameParameters(name string, imgW, imgH int) (FrameParameters, error) {
	base := filepath.Base(name)
	m := frameSuffix.FindStringSubmatch(base)
	if m == nil {
		return FrameParameters{Width: imgW, Height: imgH, Count: 1, Layout: Horizontal}, nil
	}

	var v [3]int
	for i := range v {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return FrameParameters{}, fmt.Errorf("%w: %s: %w", ErrInvalidFrameSize, base, err)
		}
		if n == 0 {
			return FrameParameters{}, fmt.Errorf("%w: %s", ErrInvalidFrameSize, base)
		}
		v[i] = n
	}
	p := FrameParameters{Width: v[0], Height: v[1], Count: v[2]}

	if p.Height == imgH {
		p.Layout = Horizontal
		if p.Width*p.Count != imgW {
			return FrameParameters{}, &MismatchError{File: base, Axis: AxisWidth, Expected: p.Width * p.Count, Actual: imgW}
		}
	} else {
		p.Layout = Vertical
		if p.Height*p.Count != imgH {
			return FrameParameters{}, &MismatchError{File: base, Axis: AxisHeight, Expected: p.Height * p.Count, Actual: imgH}
		}
		if p.Width > imgW {
			return FrameParameters{}, &MismatchError{File: base, Axis: AxisWidth, Expected: p.Width, Actual: imgW}
		}
	}
	return p, nil
}

// FrameOrigin returns the top-left pixel of frame i.
// It panics if i is outside [0, p.Count).
func FrameOrigin(imgW, imgH int, p FrameParameters, i int) (x, y int) {
	if i < 0 || i >= p.Count {
		panic(fmt.Sprintf("atlas: frame %d out of range [0, %d)", i, p.Count))
	}
	switch p.Layout {
	case Vertical:
		perColumn := max(imgH/p.Height, 1)
		return (i / perColumn) * p.Width, (i % perColumn) * p.Height
	default:
		perRow := max(imgW/p.Width, 1)
		return (i % perRow) * p.Width, (i / perRow) * p.Height
	}
}
