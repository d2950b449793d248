package canvas

import (
	"image"
	"image/color"

	"github.com/soocke/airpaint-go/domain/interaction"
)

var (
	Red   = color.RGBA{255, 0, 0, 255}
	Green = color.RGBA{0, 255, 0, 255}
	Black = color.RGBA{0, 0, 0, 255}
	White = color.RGBA{255, 255, 255, 255}
)

// DrawBox outlines rect with the given thickness, the border growing inward.
func DrawBox(r Renderer, dst *image.RGBA, rect image.Rectangle, c color.RGBA, thickness int) error {
	rect = rect.Canon()
	if thickness < 1 {
		thickness = 1
	}
	if thickness*2 >= rect.Dx() || thickness*2 >= rect.Dy() {
		return r.FillRect(dst, rect, c)
	}
	edges := [4]image.Rectangle{
		image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+thickness),
		image.Rect(rect.Min.X, rect.Max.Y-thickness, rect.Max.X, rect.Max.Y),
		image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+thickness, rect.Max.Y),
		image.Rect(rect.Max.X-thickness, rect.Min.Y, rect.Max.X, rect.Max.Y),
	}
	for _, e := range edges {
		if err := r.FillRect(dst, e, c); err != nil {
			return err
		}
	}
	return nil
}

// DrawZones paints the palette: each swatch filled in its colour, then the
// panel frames in black.
func DrawZones(r Renderer, dst *image.RGBA, z interaction.Zones, panels []image.Rectangle, thickness int) error {
	for _, s := range z.Swatches {
		if err := r.FillRect(dst, s.Rect, s.Color); err != nil {
			return err
		}
	}
	for _, p := range panels {
		if err := DrawBox(r, dst, p, Black, thickness); err != nil {
			return err
		}
	}
	return nil
}
