package tracking

import (
	"image"
	"math"
	"strings"

	kalman_filter "github.com/LdDl/kalman-filter"
	"github.com/pkg/errors"
)

// Smoother filters the pen position derived from the raw centroid. It never
// feeds back into the tracker's search state.
type Smoother interface {
	Smooth(p image.Point) (image.Point, error)
	Reset(p image.Point)
}

// passThrough returns positions unchanged.
type passThrough struct{}

func (passThrough) Smooth(p image.Point) (image.Point, error) { return p, nil }
func (passThrough) Reset(image.Point)                         {}

// NoSmoothing is the identity smoother.
var NoSmoothing Smoother = passThrough{}

// KalmanSmoother runs a constant-acceleration 2D Kalman filter over the
// centroid, one predict/update cycle per frame.
type KalmanSmoother struct {
	dt float64
	kf *kalman_filter.Kalman2D
}

// Kalman tuning, matching the blob tracker defaults it was taken from.
const (
	kalmanUx       = 1.0
	kalmanUy       = 1.0
	kalmanStdDevA  = 2.0
	kalmanStdDevMx = 0.1
	kalmanStdDevMy = 0.1
)

// NewKalmanSmoother returns a smoother seeded at start. dt is the frame
// period in seconds.
func NewKalmanSmoother(dt float64, start image.Point) *KalmanSmoother {
	if dt <= 0 {
		dt = 1.0 / 30.0
	}
	s := &KalmanSmoother{dt: dt}
	s.Reset(start)
	return s
}

// Reset re-seeds the filter state at p.
func (s *KalmanSmoother) Reset(p image.Point) {
	s.kf = kalman_filter.NewKalman2D(s.dt, kalmanUx, kalmanUy, kalmanStdDevA, kalmanStdDevMx, kalmanStdDevMy,
		kalman_filter.WithState2D(float64(p.X), float64(p.Y)))
}

// Smooth predicts, corrects with p and returns the filtered position.
func (s *KalmanSmoother) Smooth(p image.Point) (image.Point, error) {
	s.kf.Predict()
	if err := s.kf.Update(float64(p.X), float64(p.Y)); err != nil {
		return p, errors.Wrap(err, "can't update pen filter")
	}
	x, y := s.kf.GetState()
	return image.Pt(int(math.Round(x)), int(math.Round(y))), nil
}

// NewSmoother builds a smoother by name ("none" or "kalman").
func NewSmoother(kind string, dt float64, start image.Point) Smoother {
	if strings.EqualFold(strings.TrimSpace(kind), "kalman") {
		return NewKalmanSmoother(dt, start)
	}
	return NoSmoothing
}
