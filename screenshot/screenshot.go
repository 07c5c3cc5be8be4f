// Package screenshot is the pixel-capture backend: it grabs a rectangle
// of the virtual screen and encodes it for clipboard publication.
package screenshot

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/kbinani/screenshot"

	"snapclip/geometry"
)

// CaptureRect captures a region of the virtual screen. The rectangle is
// in virtual-screen coordinates and may have a negative origin (secondary
// monitors left of or above the primary).
func CaptureRect(r geometry.Rect) (*image.RGBA, error) {
	if r.Width() <= 0 || r.Height() <= 0 {
		return nil, fmt.Errorf("invalid capture bounds: width=%d height=%d", r.Width(), r.Height())
	}
	bounds := image.Rect(r.Left, r.Top, r.Right, r.Bottom)
	img, err := screenshot.CaptureRect(bounds)
	if err != nil {
		return nil, fmt.Errorf("capture %dx%d at (%d,%d): %w", r.Width(), r.Height(), r.Left, r.Top, err)
	}
	return img, nil
}

// EncodePNG encodes an image for the clipboard.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// VirtualBounds returns the union of all active display bounds.
func VirtualBounds() (image.Rectangle, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return image.Rectangle{}, fmt.Errorf("no active displays found")
	}
	union := screenshot.GetDisplayBounds(0)
	for i := 1; i < n; i++ {
		union = union.Union(screenshot.GetDisplayBounds(i))
	}
	return union, nil
}
