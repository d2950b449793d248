// Package display defines where composed frames go.
package display

import (
	"image"
	"sync"
	"time"
)

// Sink shows frames and reports whether the user asked to exit. PollExit
// may block for up to timeout.
type Sink interface {
	Show(img image.Image) error
	PollExit(timeout time.Duration) bool
	Close() error
}

// Null discards frames. It keeps the last one for inspection and requests
// exit after ExitAfter frames when ExitAfter > 0. RequestExit acts like a
// single key press.
type Null struct {
	mu        sync.Mutex
	shown     int
	last      image.Image
	exit      bool
	ExitAfter int
}

func (n *Null) Show(img image.Image) error {
	n.mu.Lock()
	n.shown++
	n.last = img
	n.mu.Unlock()
	return nil
}

func (n *Null) PollExit(time.Duration) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	pressed := n.exit
	n.exit = false
	return pressed || (n.ExitAfter > 0 && n.shown >= n.ExitAfter)
}

// RequestExit makes the next PollExit report true.
func (n *Null) RequestExit() {
	n.mu.Lock()
	n.exit = true
	n.mu.Unlock()
}

// Shown returns the number of frames received.
func (n *Null) Shown() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.shown
}

// Last returns the most recent frame, or nil.
func (n *Null) Last() image.Image {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.last
}

func (n *Null) Close() error { return nil }

var _ Sink = (*Null)(nil)
