// Package opencv holds the gocv bindings: camera and video-file sources, the
// highgui window sink and the OpenCV HSV converter.
package opencv

import (
	"context"
	"image"
	"log/slog"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/soocke/airpaint-go/domain/capture"
)

// Camera reads BGR frames from a capture device or a video file.
type Camera struct {
	vc     *gocv.VideoCapture
	mat    gocv.Mat
	logger *slog.Logger
	name   string
}

// OpenDevice opens camera index id.
func OpenDevice(id int, logger *slog.Logger) (*Camera, error) {
	vc, err := gocv.VideoCaptureDevice(id)
	return newCamera(vc, err, "device", logger)
}

// OpenFile opens a video file or stream URL.
func OpenFile(path string, logger *slog.Logger) (*Camera, error) {
	vc, err := gocv.VideoCaptureFile(path)
	return newCamera(vc, err, path, logger)
}

func newCamera(vc *gocv.VideoCapture, err error, name string, logger *slog.Logger) (*Camera, error) {
	if err != nil {
		return nil, errors.Wrapf(capture.ErrSourceUnavailable, "%s: %v", name, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, errors.Wrapf(capture.ErrSourceUnavailable, "%s not opened", name)
	}
	if logger != nil {
		logger.Info("video source opened", "source", name)
	}
	return &Camera{vc: vc, mat: gocv.NewMat(), logger: logger, name: name}, nil
}

// Next blocks until the device delivers a frame. A failed read ends the stream.
func (c *Camera) Next(ctx context.Context) (*image.RGBA, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if ok := c.vc.Read(&c.mat); !ok || c.mat.Empty() {
		return nil, errors.Wrapf(capture.ErrStreamEnded, "%s: read failed", c.name)
	}
	return bgrToRGBA(c.mat)
}

// Recycle returns a frame to the shared pool.
func (c *Camera) Recycle(img *image.RGBA) { capture.RecycleFrame(img) }

func (c *Camera) Close() error {
	c.mat.Close()
	return c.vc.Close()
}

// bgrToRGBA copies a continuous 8UC3 BGR mat into a pooled RGBA frame.
func bgrToRGBA(m gocv.Mat) (*image.RGBA, error) {
	if m.Channels() != 3 {
		return nil, errors.Errorf("opencv: expected 3 channels, got %d", m.Channels())
	}
	w, h := m.Cols(), m.Rows()
	src := m.ToBytes()
	if len(src) < w*h*3 {
		return nil, errors.Errorf("opencv: short frame %d bytes for %dx%d", len(src), w, h)
	}
	out := capture.AcquireFrame(image.Rect(0, 0, w, h))
	for i, j := 0, 0; i < w*h*3; i, j = i+3, j+4 {
		out.Pix[j] = src[i+2]
		out.Pix[j+1] = src[i+1]
		out.Pix[j+2] = src[i]
		out.Pix[j+3] = 255
	}
	return out, nil
}

var (
	_ capture.Source   = (*Camera)(nil)
	_ capture.Recycler = (*Camera)(nil)
)
