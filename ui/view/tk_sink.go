package view

import (
	"image"
	"sync/atomic"
	"time"

	"github.com/soocke/airpaint-go/domain/display"
)

// TkSink is the session's display sink in the Tk front end. Frames reach the
// window through the frame presenter on the Tk tick, so Show only counts
// them; PollExit reports the Exit button or window close without blocking.
type TkSink struct {
	exit  atomic.Bool
	shown atomic.Uint64
}

func (s *TkSink) Show(image.Image) error {
	s.shown.Add(1)
	return nil
}

func (s *TkSink) PollExit(time.Duration) bool { return s.exit.Load() }

// RequestExit ends the session on its next step.
func (s *TkSink) RequestExit() { s.exit.Store(true) }

// Shown returns the number of frames the session produced.
func (s *TkSink) Shown() uint64 { return s.shown.Load() }

func (s *TkSink) Close() error { return nil }

var _ display.Sink = (*TkSink)(nil)
