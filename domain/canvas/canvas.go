package canvas

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
)

// ErrSizeMismatch is returned by Compose when the inputs differ in size.
var ErrSizeMismatch = errors.New("canvas: image sizes differ")

// Canvas is the persistent drawing overlay. Strokes are only ever added.
type Canvas struct {
	r       Renderer
	overlay *image.RGBA
	strokes int
}

// New returns a w x h overlay filled with bg. A nil renderer selects
// GoRenderer.
func New(r Renderer, w, h int, bg color.RGBA) (*Canvas, error) {
	if r == nil {
		r = GoRenderer
	}
	img, err := Blank(r, w, h, bg)
	if err != nil {
		return nil, err
	}
	return &Canvas{r: r, overlay: img}, nil
}

// Stroke paints a filled disc of radius rad centred at p, clipped to the
// overlay.
func (c *Canvas) Stroke(p image.Point, col color.RGBA, rad int) error {
	if c == nil || rad < 0 {
		return nil
	}
	col.A = 255
	if err := c.r.FillCircle(c.overlay, p, rad, col); err != nil {
		return errors.Wrap(err, "can't draw stroke")
	}
	c.strokes++
	return nil
}

// Strokes returns how many strokes were applied.
func (c *Canvas) Strokes() int {
	if c == nil {
		return 0
	}
	return c.strokes
}

// Overlay returns the overlay buffer. Callers must not write to it.
func (c *Canvas) Overlay() *image.RGBA {
	if c == nil {
		return nil
	}
	return c.overlay
}

// Bounds returns the overlay rectangle.
func (c *Canvas) Bounds() image.Rectangle { return c.overlay.Bounds() }
