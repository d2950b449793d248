package opencv

import (
	"image"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// rgbaMat wraps the pixels of img in a CV_8UC4 Mat. When img is not tightly
// packed the Mat holds a packed copy; writeBack copies drawing results into
// img in either case.
func rgbaMat(img *image.RGBA) (gocv.Mat, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	pix := img.Pix
	if img.Stride != w*4 || b.Min != (image.Point{}) {
		pix = make([]byte, w*h*4)
		for y := 0; y < h; y++ {
			copy(pix[y*w*4:(y+1)*w*4], img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):])
		}
	}
	m, err := gocv.NewMatFromBytes(h, w, gocv.MatTypeCV8UC4, pix)
	if err != nil {
		return gocv.Mat{}, errors.Wrap(err, "can't wrap frame")
	}
	return m, nil
}

func writeBack(m gocv.Mat, img *image.RGBA) {
	b := img.Bounds()
	w := b.Dx() * 4
	data := m.ToBytes()
	for y := 0; y < b.Dy(); y++ {
		copy(img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):img.PixOffset(b.Min.X, b.Min.Y+y)+w], data[y*w:(y+1)*w])
	}
}
