package atlas

import (
	"errors"
	"testing"
)

func TestParseFrameParameters(t *testing.T) {
	tests := []struct {
		name       string
		file       string
		imgW, imgH int
		want       FrameParameters
	}{
		{"no suffix", "hero.png", 40, 30, FrameParameters{40, 30, 1, Horizontal}},
		{"horizontal", "hero_32x32x4.png", 128, 32, FrameParameters{32, 32, 4, Horizontal}},
		{"vertical", "assets/coin_16x8x3.png", 16, 24, FrameParameters{16, 8, 3, Vertical}},
		{"directory ignored", "walk_1x1x1.d/hero.png", 40, 30, FrameParameters{40, 30, 1, Horizontal}},
		{"single frame suffix", "icon_20x20x1.bmp", 20, 20, FrameParameters{20, 20, 1, Horizontal}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFrameParameters(tt.file, tt.imgW, tt.imgH)
			if err != nil {
				t.Fatalf("ParseFrameParameters() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseFrameParameters() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseFrameParametersMismatch(t *testing.T) {
	tests := []struct {
		file       string
		imgW, imgH int
		want       MismatchError
	}{
		{"name_32x32x5.png", 128, 32, MismatchError{File: "name_32x32x5.png", Axis: AxisWidth, Expected: 160, Actual: 128}},
		{"name_16x8x4.png", 16, 24, MismatchError{File: "name_16x8x4.png", Axis: AxisHeight, Expected: 32, Actual: 24}},
		{"x_64x16x4.png", 32, 64, MismatchError{File: "x_64x16x4.png", Axis: AxisWidth, Expected: 64, Actual: 32}},
	}
	for _, tt := range tests {
		_, err := ParseFrameParameters(tt.file, tt.imgW, tt.imgH)
		var me *MismatchError
		if !errors.As(err, &me) {
			t.Errorf("%s: error = %v, want *MismatchError", tt.file, err)
			continue
		}
		if *me != tt.want {
			t.Errorf("%s: error = %+v, want %+v", tt.file, *me, tt.want)
		}
	}
}

func TestParseFrameParametersZero(t *testing.T) {
	for _, file := range []string{"a_0x32x4.png", "a_32x0x4.png", "a_32x32x0.png"} {
		if _, err := ParseFrameParameters(file, 128, 32); !errors.Is(err, ErrInvalidFrameSize) {
			t.Errorf("%s: error = %v, want ErrInvalidFrameSize", file, err)
		}
	}
}

func TestFrameOrigin(t *testing.T) {
	horizontal := FrameParameters{Width: 32, Height: 32, Count: 4, Layout: Horizontal}
	vertical := FrameParameters{Width: 16, Height: 8, Count: 6, Layout: Vertical}

	tests := []struct {
		name       string
		imgW, imgH int
		p          FrameParameters
		frame      int
		x, y       int
	}{
		{"first", 128, 32, horizontal, 0, 0, 0},
		{"last in row", 128, 32, horizontal, 3, 96, 0},
		{"wraps into second row", 64, 64, horizontal, 3, 32, 32},
		{"vertical first", 16, 48, vertical, 0, 0, 0},
		{"vertical down", 16, 48, vertical, 5, 0, 40},
		{"vertical wraps into second column", 32, 24, vertical, 4, 16, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := FrameOrigin(tt.imgW, tt.imgH, tt.p, tt.frame)
			if x != tt.x || y != tt.y {
				t.Errorf("FrameOrigin() = (%d, %d), want (%d, %d)", x, y, tt.x, tt.y)
			}
		})
	}
}

func TestFrameOriginPanics(t *testing.T) {
	p := FrameParameters{Width: 32, Height: 32, Count: 4}
	for _, frame := range []int{-1, 4} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("FrameOrigin(frame=%d) did not panic", frame)
				}
			}()
			FrameOrigin(128, 32, p, frame)
		}()
	}
}

func TestFrameLayoutString(t *testing.T) {
	if Horizontal.String() != "horizontal" || Vertical.String() != "vertical" {
		t.Errorf("String() = %q, %q", Horizontal, Vertical)
	}
	if got := FrameLayout(7).String(); got != "FrameLayout(7)" {
		t.Errorf("String() = %q", got)
	}
}
