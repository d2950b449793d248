package opencv

import (
	"image"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/soocke/airpaint-go/domain/tracking"
)

// HSVConverter converts frames with cv::cvtColor. Output uses the same 8-bit
// ranges as the pure Go converter.
var HSVConverter tracking.Converter = tracking.ConverterFunc(toHSV)

func toHSV(frame *image.RGBA) (*tracking.HSVImage, error) {
	if frame == nil {
		return nil, tracking.ErrNilFrame
	}
	b := frame.Bounds()
	rgba, err := rgbaMat(frame)
	if err != nil {
		return nil, err
	}
	defer rgba.Close()
	bgr := gocv.NewMat()
	defer bgr.Close()
	if err := gocv.CvtColor(rgba, &bgr, gocv.ColorRGBAToBGR); err != nil {
		return nil, errors.Wrap(err, "rgba to bgr")
	}
	hsv := gocv.NewMat()
	defer hsv.Close()
	if err := gocv.CvtColor(bgr, &hsv, gocv.ColorBGRToHSV); err != nil {
		return nil, errors.Wrap(err, "bgr to hsv")
	}
	out := tracking.NewHSVImage(b)
	copy(out.Pix, hsv.ToBytes())
	return out, nil
}
