package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// GoRenderer draws with image/draw. It is the cgo-free backend used by tests
// and builds without OpenCV.
var GoRenderer Renderer = goRenderer{}

type goRenderer struct{}

func (goRenderer) FillRect(dst *image.RGBA, r image.Rectangle, c color.RGBA) error {
	draw.Draw(dst, r.Intersect(dst.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
	return nil
}

func (goRenderer) FillCircle(dst *image.RGBA, p image.Point, r int, c color.RGBA) error {
	m := &circle{p: p, r: r}
	clip := m.Bounds().Intersect(dst.Bounds())
	draw.DrawMask(dst, clip, image.NewUniform(c), image.Point{}, m, clip.Min, draw.Over)
	return nil
}

func (goRenderer) Compose(live, overlay *image.RGBA, lw, ow float64) (*image.RGBA, error) {
	if err := SameSize(live, overlay); err != nil {
		return nil, err
	}
	size := live.Bounds().Size()
	out := image.NewRGBA(image.Rectangle{Max: size})
	lb, ob := live.Bounds().Min, overlay.Bounds().Min
	for y := 0; y < size.Y; y++ {
		lrow := live.Pix[live.PixOffset(lb.X, lb.Y+y):]
		orow := overlay.Pix[overlay.PixOffset(ob.X, ob.Y+y):]
		drow := out.Pix[out.PixOffset(0, y):]
		for x := 0; x < size.X*4; x += 4 {
			drow[x] = blend(lrow[x], orow[x], lw, ow)
			drow[x+1] = blend(lrow[x+1], orow[x+1], lw, ow)
			drow[x+2] = blend(lrow[x+2], orow[x+2], lw, ow)
			drow[x+3] = 255
		}
	}
	return out, nil
}

func blend(a, b uint8, wa, wb float64) uint8 {
	v := math.Round(wa*float64(a) + wb*float64(b))
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// circle is an alpha mask, opaque inside the disc.
type circle struct {
	p image.Point
	r int
}

func (c *circle) ColorModel() color.Model { return color.AlphaModel }

func (c *circle) Bounds() image.Rectangle {
	return image.Rect(c.p.X-c.r, c.p.Y-c.r, c.p.X+c.r+1, c.p.Y+c.r+1)
}

func (c *circle) At(x, y int) color.Color {
	dx, dy := x-c.p.X, y-c.p.Y
	if dx*dx+dy*dy <= c.r*c.r {
		return color.Alpha{255}
	}
	return color.Alpha{}
}
