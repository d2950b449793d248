package capture

import (
	"context"
	"image"
	"image/draw"

	"github.com/pkg/errors"
	"github.com/vova616/screenshot"
)

// ScreenSource grabs a fixed region of the desktop on every Next.
type ScreenSource struct {
	region image.Rectangle
	grab   func(image.Rectangle) (*image.RGBA, error)
}

// NewScreenSource validates region against the screen. An empty region
// selects the whole screen.
func NewScreenSource(region image.Rectangle) (*ScreenSource, error) {
	screen, err := screenshot.ScreenRect()
	if err != nil {
		return nil, errors.Wrap(ErrSourceUnavailable, err.Error())
	}
	if region.Empty() {
		region = screen
	}
	region = region.Intersect(screen)
	if region.Empty() {
		return nil, errors.Wrapf(ErrSourceUnavailable, "region outside screen %v", screen)
	}
	return &ScreenSource{region: region, grab: screenshot.CaptureRect}, nil
}

// Region returns the captured rectangle in screen coordinates.
func (s *ScreenSource) Region() image.Rectangle { return s.region }

// Next captures the region into a pooled frame anchored at (0,0).
func (s *ScreenSource) Next(ctx context.Context) (*image.RGBA, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, err := s.grab(s.region)
	if err != nil {
		return nil, errors.Wrap(ErrStreamEnded, err.Error())
	}
	out := AcquireFrame(image.Rect(0, 0, s.region.Dx(), s.region.Dy()))
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 255
	}
	return out, nil
}

// Recycle hands a frame back to the pool.
func (s *ScreenSource) Recycle(img *image.RGBA) { RecycleFrame(img) }

func (s *ScreenSource) Close() error { return nil }

var _ Recycler = (*ScreenSource)(nil)
