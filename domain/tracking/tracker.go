package tracking

import (
	"image"
	"log/slog"
	"math"
)

// minWeight is the total back-projection weight below which a frame counts
// as zero-weight and the previous position is kept.
const minWeight = 1e-3

// Result describes one tracker update.
type Result struct {
	Region image.Rectangle // pixels scanned (clipped to the frame)
	Weight float64         // summed histogram weight over Region
	Found  bool            // false when the previous position was retained
}

// Tracker moves a centroid by back-projecting a learned histogram onto each
// frame. Not safe for concurrent use; call Update from a single goroutine.
type Tracker struct {
	hist      *Histogram
	policy    SearchPolicy
	halfWidth int
	logger    *slog.Logger
}

// NewTracker returns a tracker over hist. halfWidth bounds the local search
// box and is ignored by the global policy.
func NewTracker(hist *Histogram, policy SearchPolicy, halfWidth int, logger *slog.Logger) *Tracker {
	if halfWidth < 1 {
		halfWidth = 1
	}
	return &Tracker{hist: hist, policy: policy, halfWidth: halfWidth, logger: logger}
}

// Policy reports the search policy.
func (t *Tracker) Policy() SearchPolicy { return t.policy }

// HalfWidth reports the local search half-width.
func (t *Tracker) HalfWidth() int { return t.halfWidth }

// Histogram returns the learned model.
func (t *Tracker) Histogram() *Histogram { return t.hist }

// SearchRegion returns the pixels scanned for a centroid previously at prev.
func (t *Tracker) SearchRegion(bounds image.Rectangle, prev image.Point) image.Rectangle {
	if t.policy == SearchGlobal {
		return bounds
	}
	r := image.Rect(prev.X-t.halfWidth, prev.Y-t.halfWidth, prev.X+t.halfWidth, prev.Y+t.halfWidth)
	return r.Intersect(bounds)
}

// Update computes the weighted centre of mass of the search region, each
// pixel weighted by the histogram count of its (hue, sat) bin. When the total
// weight does not exceed minWeight, prev is returned unchanged.
func (t *Tracker) Update(hsv *HSVImage, prev image.Point) (image.Point, Result) {
	if hsv == nil || t.hist == nil {
		return prev, Result{}
	}
	region := t.SearchRegion(hsv.Bounds(), prev)
	res := Result{Region: region}
	if region.Empty() {
		return prev, res
	}
	var sum, sumX, sumY float64
	for y := region.Min.Y; y < region.Max.Y; y++ {
		row := hsv.Pix[hsv.PixOffset(region.Min.X, y):]
		fy := float64(y)
		for dx := 0; dx < region.Dx(); dx++ {
			i := dx * 3
			w := t.hist.Query(row[i], row[i+1])
			if w == 0 {
				continue
			}
			sum += w
			sumX += float64(region.Min.X+dx) * w
			sumY += fy * w
		}
	}
	res.Weight = sum
	if sum <= minWeight {
		if t.logger != nil {
			t.logger.Debug("zero-weight frame; keeping position", "x", prev.X, "y", prev.Y, "region", region.String())
		}
		return prev, res
	}
	res.Found = true
	return image.Pt(int(math.Round(sumX/sum)), int(math.Round(sumY/sum))), res
}
