package view

import (
	"image"

	"github.com/soocke/airpaint-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// FramePreview shows the composed frame and the pen close-up side by side.
type FramePreview interface {
	UpdatePreview(img image.Image)
	UpdateCloseUp(img image.Image)
	Reset()
}

type framePreview struct {
	previewLabel *LabelWidget
	closeUpLabel *LabelWidget
	maxW, maxH   int
	prevPreview  *Img // current Tk photo, deleted before replacement
	prevCloseUp  *Img
}

const (
	defaultPreviewW = 640
	defaultPreviewH = 480
)

// NewFramePreview grids the preview across columns 0-3 and the close-up in
// column 4 of row.
func NewFramePreview(row, maxW, maxH int) FramePreview {
	if maxW < 50 || maxH < 50 {
		maxW, maxH = defaultPreviewW, defaultPreviewH
	}
	pngBytes := images.EncodePNG(image.NewRGBA(image.Rect(0, 0, 200, 150)))
	prev := NewPhoto(Data(pngBytes))
	close := NewPhoto(Data(pngBytes))
	preview := Label(Image(prev), Borderwidth(1), Relief("sunken"))
	closeUp := Label(Image(close), Borderwidth(1), Relief("sunken"))
	Grid(preview, Row(row), Column(0), Columnspan(4), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
	Grid(closeUp, Row(row), Column(4), Sticky("n"), Padx("0.4m"), Pady("0.4m"))
	return &framePreview{previewLabel: preview, closeUpLabel: closeUp, maxW: maxW, maxH: maxH, prevPreview: prev, prevCloseUp: close}
}

func (v *framePreview) UpdatePreview(img image.Image) {
	if v.previewLabel == nil || img == nil {
		return
	}
	v.prevPreview = replacePhoto(v.previewLabel, v.prevPreview, images.ScaleToFit(img, v.maxW, v.maxH))
}

func (v *framePreview) UpdateCloseUp(img image.Image) {
	if v.closeUpLabel == nil || img == nil {
		return
	}
	v.prevCloseUp = replacePhoto(v.closeUpLabel, v.prevCloseUp, img)
}

func (v *framePreview) Reset() {
	blank := image.NewRGBA(image.Rect(0, 0, 200, 150))
	if v.previewLabel != nil {
		v.prevPreview = replacePhoto(v.previewLabel, v.prevPreview, blank)
	}
	if v.closeUpLabel != nil {
		v.prevCloseUp = replacePhoto(v.closeUpLabel, v.prevCloseUp, blank)
	}
}

func replacePhoto(lbl *LabelWidget, old *Img, img image.Image) *Img {
	if old != nil {
		old.Delete()
	}
	photo := NewPhoto(Data(images.EncodePNG(img)))
	lbl.Configure(Image(photo))
	return photo
}
