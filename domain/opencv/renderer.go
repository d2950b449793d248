package opencv

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/soocke/airpaint-go/domain/canvas"
)

// Renderer draws HUD shapes and strokes with cv::rectangle and cv::circle
// and blends with cv::addWeighted.
var Renderer canvas.Renderer = renderer{}

type renderer struct{}

// bgr reorders c for gocv, which takes colours as BGR scalars, while the
// wrapped Mat holds RGBA bytes.
func bgr(c color.RGBA) color.RGBA { return color.RGBA{R: c.B, G: c.G, B: c.R, A: c.A} }

func (renderer) FillRect(dst *image.RGBA, r image.Rectangle, c color.RGBA) error {
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return nil
	}
	return paint(dst, func(m *gocv.Mat) error {
		return gocv.Rectangle(m, r.Sub(dst.Bounds().Min), bgr(c), -1)
	})
}

func (renderer) FillCircle(dst *image.RGBA, p image.Point, radius int, c color.RGBA) error {
	if radius < 0 {
		return nil
	}
	return paint(dst, func(m *gocv.Mat) error {
		return gocv.Circle(m, p.Sub(dst.Bounds().Min), radius, bgr(c), -1)
	})
}

func (renderer) Compose(live, overlay *image.RGBA, lw, ow float64) (*image.RGBA, error) {
	if err := canvas.SameSize(live, overlay); err != nil {
		return nil, err
	}
	lm, err := bgrMat(live)
	if err != nil {
		return nil, err
	}
	defer lm.Close()
	om, err := bgrMat(overlay)
	if err != nil {
		return nil, err
	}
	defer om.Close()
	sum := gocv.NewMat()
	defer sum.Close()
	if err := gocv.AddWeighted(lm, lw, om, ow, 0, &sum); err != nil {
		return nil, errors.Wrap(err, "add weighted")
	}
	out := gocv.NewMat()
	defer out.Close()
	// BGR -> RGBA restores channel order and sets alpha to 255
	if err := gocv.CvtColor(sum, &out, gocv.ColorBGRToRGBA); err != nil {
		return nil, errors.Wrap(err, "bgr to rgba")
	}
	img := image.NewRGBA(image.Rectangle{Max: live.Bounds().Size()})
	copy(img.Pix, out.ToBytes())
	return img, nil
}

func paint(dst *image.RGBA, fn func(m *gocv.Mat) error) error {
	m, err := rgbaMat(dst)
	if err != nil {
		return err
	}
	defer m.Close()
	if err := fn(&m); err != nil {
		return errors.Wrap(err, "draw")
	}
	writeBack(m, dst)
	return nil
}

func bgrMat(img *image.RGBA) (gocv.Mat, error) {
	rgba, err := rgbaMat(img)
	if err != nil {
		return gocv.Mat{}, err
	}
	defer rgba.Close()
	m := gocv.NewMat()
	if err := gocv.CvtColor(rgba, &m, gocv.ColorRGBAToBGR); err != nil {
		m.Close()
		return gocv.Mat{}, errors.Wrap(err, "rgba to bgr")
	}
	return m, nil
}
