package opencv

import (
	"image"
	"time"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// Window shows frames in a highgui window. Any key press or closing the
// window requests exit.
type Window struct {
	win *gocv.Window
}

// NewWindow opens a window titled title.
func NewWindow(title string) *Window {
	return &Window{win: gocv.NewWindow(title)}
}

func (w *Window) Show(img image.Image) error {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return errors.Wrap(err, "can't convert frame")
	}
	defer mat.Close()
	w.win.IMShow(mat)
	return nil
}

// PollExit waits up to timeout for a key.
func (w *Window) PollExit(timeout time.Duration) bool {
	ms := int(timeout / time.Millisecond)
	if ms < 1 {
		ms = 1
	}
	if key := w.win.WaitKey(ms); key >= 0 {
		return true
	}
	return !w.win.IsOpen()
}

func (w *Window) Close() error { return w.win.Close() }
