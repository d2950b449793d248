package capture

import (
	"context"
	"image"
	"sync"
)

// StaticSource replays an in-memory list of frames, then ends the stream.
// With Loop set it cycles forever.
type StaticSource struct {
	mu     sync.Mutex
	frames []*image.RGBA
	next   int
	closed bool
	Loop   bool
}

// NewStaticSource returns a source over frames. Frames are handed out as-is;
// callers must not modify them.
func NewStaticSource(frames ...*image.RGBA) *StaticSource {
	return &StaticSource{frames: frames}
}

func (s *StaticSource) Next(ctx context.Context) (*image.RGBA, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrStreamEnded
	}
	if s.next >= len(s.frames) {
		if !s.Loop || len(s.frames) == 0 {
			return nil, ErrStreamEnded
		}
		s.next = 0
	}
	f := s.frames[s.next]
	s.next++
	return f, nil
}

// Served reports how many frames were returned so far in the current pass.
func (s *StaticSource) Served() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}

func (s *StaticSource) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}
