package canvas

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
)

// Renderer rasterises filled shapes into RGBA buffers and blends the overlay
// with the backdrop. The production backend is OpenCV; GoRenderer needs no
// cgo.
type Renderer interface {
	// FillRect fills the half-open rectangle r, clipped to dst.
	FillRect(dst *image.RGBA, r image.Rectangle, c color.RGBA) error
	// FillCircle paints a filled disc of the given radius, clipped to dst.
	FillCircle(dst *image.RGBA, p image.Point, radius int, c color.RGBA) error
	// Compose returns round(lw*live + ow*overlay) saturated to [0,255] with
	// alpha 255, in a new buffer.
	Compose(live, overlay *image.RGBA, lw, ow float64) (*image.RGBA, error)
}

// SameSize returns ErrSizeMismatch unless both images exist and have equal
// dimensions.
func SameSize(live, overlay *image.RGBA) error {
	if live == nil || overlay == nil {
		return errors.Wrap(ErrSizeMismatch, "nil input")
	}
	if live.Bounds().Size() != overlay.Bounds().Size() {
		return errors.Wrapf(ErrSizeMismatch, "live %v overlay %v", live.Bounds(), overlay.Bounds())
	}
	return nil
}

// Blank returns a w x h buffer filled with bg.
func Blank(r Renderer, w, h int, bg color.RGBA) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	bg.A = 255
	if err := r.FillRect(img, img.Bounds(), bg); err != nil {
		return nil, errors.Wrap(err, "can't fill background")
	}
	return img, nil
}
