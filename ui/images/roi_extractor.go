package images

import (
	"errors"
	"image"
)

// ExtractROI returns the square of side size centred at c, shifted to stay
// inside the frame and shrunk only when the frame is smaller than size.
// The ROI shares pixels with frame; the rectangle is in frame coordinates.
func ExtractROI(frame *image.RGBA, c image.Point, size int) (*image.RGBA, image.Rectangle, error) {
	if frame == nil {
		return nil, image.Rectangle{}, errors.New("nil frame")
	}
	b := frame.Bounds()
	if b.Empty() {
		return nil, image.Rectangle{}, errors.New("empty frame")
	}
	if size < 1 {
		size = 1
	}
	w, h := min(size, b.Dx()), min(size, b.Dy())
	x0 := clamp(c.X-size/2, b.Min.X, b.Max.X-w)
	y0 := clamp(c.Y-size/2, b.Min.Y, b.Max.Y-h)
	roi := image.Rect(x0, y0, x0+w, y0+h)
	return frame.SubImage(roi).(*image.RGBA), roi, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
