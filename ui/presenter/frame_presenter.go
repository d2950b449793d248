package presenter

import (
	"image"
	"log/slog"

	"github.com/soocke/airpaint-go/domain/capture"
	"github.com/soocke/airpaint-go/ui/images"
)

// closeUpZoom is the magnification of the pen close-up.
const closeUpZoom = 3

// FrameView shows the composed frame and a magnified close-up of the pen.
type FrameView interface {
	UpdatePreview(img image.Image)
	UpdateCloseUp(img image.Image)
}

// FramePresenter pushes each new composed frame to the view.
type FramePresenter struct {
	source  capture.FrameSource
	pen     PenSource
	view    FrameView
	size    int // close-up side in frame pixels
	logger  *slog.Logger
	lastSeq uint64
}

func NewFramePresenter(source capture.FrameSource, pen PenSource, view FrameView, closeUpSize int, logger *slog.Logger) *FramePresenter {
	if closeUpSize < 8 {
		closeUpSize = 8
	}
	return &FramePresenter{source: source, pen: pen, view: view, size: closeUpSize, logger: logger}
}

// ProcessFrame updates the view when a frame newer than the last one exists.
func (p *FramePresenter) ProcessFrame() {
	if p == nil || p.source == nil || p.view == nil {
		return
	}
	snap := p.source.LatestFrame()
	if snap.Image == nil || snap.Sequence == p.lastSeq {
		return
	}
	p.lastSeq = snap.Sequence
	p.view.UpdatePreview(snap.Image)
	if p.pen == nil {
		return
	}
	roi, _, err := images.ExtractROI(snap.Image, p.pen.Pen(), p.size)
	if err != nil {
		if p.logger != nil {
			p.logger.Debug("close-up skipped", "error", err)
		}
		return
	}
	p.view.UpdateCloseUp(images.Zoom(roi, closeUpZoom))
}
