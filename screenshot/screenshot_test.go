package screenshot

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"snapclip/geometry"
)

func TestCaptureRectRejectsDegenerateBounds(t *testing.T) {
	cases := []struct {
		name string
		rect geometry.Rect
	}{
		{"zero area", geometry.Rect{Left: 10, Top: 10, Right: 10, Bottom: 10}},
		{"zero width", geometry.Rect{Left: 10, Top: 10, Right: 10, Bottom: 50}},
		{"zero height", geometry.Rect{Left: 10, Top: 10, Right: 50, Bottom: 10}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := CaptureRect(tc.rect); err == nil {
				t.Errorf("CaptureRect(%v) succeeded, want error", tc.rect)
			}
		})
	}
}

func TestEncodePNGRoundTrip(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			src.Set(x, y, color.RGBA{R: uint8(x * 60), G: uint8(y * 80), B: 128, A: 255})
		}
	}

	data, err := EncodePNG(src)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got := decoded.Bounds(); got.Dx() != 4 || got.Dy() != 3 {
		t.Fatalf("decoded bounds = %v, want 4x3", got)
	}
}
