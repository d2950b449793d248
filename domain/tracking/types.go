package tracking

import (
	"image"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrDegenerateSample is returned when a histogram sample region holds no pixels.
	ErrDegenerateSample = errors.New("tracking: degenerate sample region")
	// ErrNilFrame is returned when a conversion is asked for a nil frame.
	ErrNilFrame = errors.New("tracking: nil frame")
)

// SearchPolicy selects which pixels of a frame are scanned on update.
type SearchPolicy int

const (
	// SearchLocal scans a fixed-size box around the previous centroid.
	SearchLocal SearchPolicy = iota
	// SearchGlobal scans the whole frame.
	SearchGlobal
)

func (p SearchPolicy) String() string {
	switch p {
	case SearchLocal:
		return "local"
	case SearchGlobal:
		return "global"
	default:
		return "unknown"
	}
}

// ParseSearchPolicy maps "local"/"global" (case-insensitive) to a policy.
func ParseSearchPolicy(s string) (SearchPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "local", "":
		return SearchLocal, nil
	case "global":
		return SearchGlobal, nil
	default:
		return SearchLocal, errors.Errorf("tracking: unknown search policy %q", s)
	}
}

// TrackState is the tracked object's position and marker half-width.
// It lives for the whole tracking loop and is mutated once per frame.
type TrackState struct {
	X, Y      int
	HalfWidth int
}

// NewTrackState centres the state in bounds.
func NewTrackState(bounds image.Rectangle, halfWidth int) TrackState {
	c := Center(bounds)
	return TrackState{X: c.X, Y: c.Y, HalfWidth: halfWidth}
}

// Point returns the position.
func (s TrackState) Point() image.Point { return image.Pt(s.X, s.Y) }

// Apply moves the state to p.
func (s *TrackState) Apply(p image.Point) { s.X, s.Y = p.X, p.Y }

// Box returns the square marker box around the position.
func (s TrackState) Box() image.Rectangle {
	return image.Rect(s.X-s.HalfWidth, s.Y-s.HalfWidth, s.X+s.HalfWidth, s.Y+s.HalfWidth)
}

// Center returns the integer centre of r.
func Center(r image.Rectangle) image.Point {
	return image.Pt(r.Min.X+r.Dx()/2, r.Min.Y+r.Dy()/2)
}

// CenteredBox returns the square of side `side` centred at c. The box is
// [c-side/2, c-side/2+side) on both axes.
func CenteredBox(c image.Point, side int) image.Rectangle {
	half := side / 2
	return image.Rect(c.X-half, c.Y-half, c.X-half+side, c.Y-half+side)
}
