package tracking

import (
	"image"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Histogram is a joint Hue x Saturation frequency table. Cells hold raw
// sample pixel counts; no normalisation is applied. It is read-only once
// built and safe for concurrent queries.
type Histogram struct {
	hueBins, satBins   int
	hueSlice, satSlice float64
	counts             []float64 // row-major [hueBin*satBins + satBin]
}

// BuildHistogram counts the (hue, sat) pair of every pixel of region
// (clipped to the image bounds) into hueBins x satBins uniform bins.
func BuildHistogram(hsv *HSVImage, region image.Rectangle, hueBins, satBins int) (*Histogram, error) {
	if hsv == nil {
		return nil, ErrNilFrame
	}
	if hueBins <= 0 || satBins <= 0 || hueBins > HueRange || satBins > SatRange {
		return nil, errors.Wrapf(ErrDegenerateSample, "invalid bins %dx%d", hueBins, satBins)
	}
	r := region.Intersect(hsv.Bounds())
	if r.Empty() {
		return nil, errors.Wrapf(ErrDegenerateSample, "region %v outside frame %v", region, hsv.Bounds())
	}
	h := &Histogram{
		hueBins:  hueBins,
		satBins:  satBins,
		hueSlice: float64(HueRange) / float64(hueBins),
		satSlice: float64(SatRange) / float64(satBins),
		counts:   make([]float64, hueBins*satBins),
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := hsv.Pix[hsv.PixOffset(r.Min.X, y):]
		for x := 0; x < r.Dx(); x++ {
			i := x * 3
			if idx, ok := h.index(row[i], row[i+1]); ok {
				h.counts[idx]++
			}
		}
	}
	return h, nil
}

func (h *Histogram) index(hue, sat uint8) (int, bool) {
	if int(hue) >= HueRange {
		return 0, false
	}
	hb := int(float64(hue) / h.hueSlice)
	sb := int(float64(sat) / h.satSlice)
	if hb >= h.hueBins {
		hb = h.hueBins - 1
	}
	if sb >= h.satBins {
		sb = h.satBins - 1
	}
	return hb*h.satBins + sb, true
}

// Query returns the count stored in the bin of (hue, sat). Hue values outside
// [0,180) are a caller error and yield 0.
func (h *Histogram) Query(hue, sat uint8) float64 {
	if h == nil {
		return 0
	}
	idx, ok := h.index(hue, sat)
	if !ok {
		return 0
	}
	return h.counts[idx]
}

// Cell returns the count at bin (hueBin, satBin), or 0 when out of range.
func (h *Histogram) Cell(hueBin, satBin int) float64 {
	if h == nil || hueBin < 0 || satBin < 0 || hueBin >= h.hueBins || satBin >= h.satBins {
		return 0
	}
	return h.counts[hueBin*h.satBins+satBin]
}

// Bins returns the table dimensions.
func (h *Histogram) Bins() (hueBins, satBins int) { return h.hueBins, h.satBins }

// Total returns the sum of all cells; it equals the sample pixel count.
func (h *Histogram) Total() float64 {
	if h == nil {
		return 0
	}
	return floats.Sum(h.counts)
}

// Peak returns the bin with the highest count.
func (h *Histogram) Peak() (hueBin, satBin int, count float64) {
	if h == nil || len(h.counts) == 0 {
		return 0, 0, 0
	}
	idx := floats.MaxIdx(h.counts)
	return idx / h.satBins, idx % h.satBins, h.counts[idx]
}
