package capture

import (
	"image"

	"github.com/disintegration/imaging"
)

// Mirror returns a horizontally flipped copy of an opaque frame, anchored at
// (0,0). The source is left untouched.
func Mirror(img *image.RGBA) *image.RGBA {
	if img == nil {
		return nil
	}
	n := imaging.FlipH(img)
	// opaque NRGBA and RGBA share one byte layout
	return &image.RGBA{Pix: n.Pix, Stride: n.Stride, Rect: n.Rect}
}

// Clone returns a copy of img anchored at (0,0).
func Clone(img *image.RGBA) *image.RGBA {
	if img == nil {
		return nil
	}
	n := imaging.Clone(img)
	return &image.RGBA{Pix: n.Pix, Stride: n.Stride, Rect: n.Rect}
}
