package session

import (
	"image"
	"image/color"

	"github.com/soocke/airpaint-go/domain/canvas"
	"github.com/soocke/airpaint-go/domain/capture"
	"github.com/soocke/airpaint-go/domain/display"
	"github.com/soocke/airpaint-go/domain/interaction"
	"github.com/soocke/airpaint-go/domain/tracking"
)

// Phase is the session lifecycle stage.
type Phase int

const (
	PhaseWarmup Phase = iota
	PhaseLearning
	PhaseTracking
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseWarmup:
		return "warmup"
	case PhaseLearning:
		return "learning"
	case PhaseTracking:
		return "tracking"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Deps are the collaborators a session drives.
type Deps struct {
	Source    capture.Source
	Sink      display.Sink
	Converter tracking.Converter // nil selects the pure Go converter
	Renderer  canvas.Renderer    // nil selects canvas.GoRenderer
}

// Stats summarises a session so far.
type Stats struct {
	Phase         Phase
	Frames        int // frames pulled from the source
	TrackedFrames int
	ZeroWeight    int
	Strokes       int
	Pen           image.Point
	State         interaction.State
	Color         color.RGBA
	FrameSize     image.Rectangle
}

// FrameListener observes each composed frame after it was shown.
type FrameListener func(snap capture.FrameSnapshot, st Stats)

// PhaseListener is called on phase changes.
type PhaseListener func(prev, next Phase)
