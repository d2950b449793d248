package capture

import (
	"context"
	"image"
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrSourceUnavailable is returned when a source cannot be opened. Fatal.
	ErrSourceUnavailable = errors.New("capture: source unavailable")
	// ErrStreamEnded signals that no further frames will be produced.
	ErrStreamEnded = errors.New("capture: stream ended")
)

// Source is a lazy, non-restartable sequence of frames. Next may block until
// a frame is available. All frames share the size of the first one.
type Source interface {
	Next(ctx context.Context) (*image.RGBA, error)
	Close() error
}

// Recycler is implemented by sources that pool their frame buffers. The
// pipeline hands frames back once it no longer reads them.
type Recycler interface {
	Recycle(*image.RGBA)
}

// FrameSource provides read-only access to the latest frame for presenters.
type FrameSource interface {
	LatestFrame() FrameSnapshot
}

// FrameSnapshot carries the latest captured frame and metadata.
type FrameSnapshot struct {
	Image      *image.RGBA
	CapturedAt time.Time
	Sequence   uint64
}

// CaptureStats summarises capture behaviour for instrumentation.
type CaptureStats struct {
	Captures         uint64
	Skipped          uint64
	AvgCapture       time.Duration
	AvgCaptureMicros float64
	LastCapture      time.Time
	LatestFrameAge   time.Duration
	Sequence         uint64
}
