package tracking

import (
	"image"
)

// Channel ranges of the 8-bit HSV encoding (OpenCV convention).
const (
	HueRange = 180
	SatRange = 256
)

// HSVImage is a packed 3-byte-per-pixel image holding H, S, V.
// H is in [0,180), S and V in [0,256).
type HSVImage struct {
	Pix    []uint8
	Stride int
	Rect   image.Rectangle
}

// NewHSVImage allocates an HSV image covering r.
func NewHSVImage(r image.Rectangle) *HSVImage {
	w, h := r.Dx(), r.Dy()
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &HSVImage{Pix: make([]uint8, w*h*3), Stride: w * 3, Rect: r}
}

// Bounds returns the image rectangle.
func (m *HSVImage) Bounds() image.Rectangle { return m.Rect }

// PixOffset returns the index of the first byte of pixel (x, y).
func (m *HSVImage) PixOffset(x, y int) int {
	return (y-m.Rect.Min.Y)*m.Stride + (x-m.Rect.Min.X)*3
}

// At returns the H, S, V triple at (x, y). Out-of-bounds reads return zeros.
func (m *HSVImage) At(x, y int) (h, s, v uint8) {
	if !(image.Point{x, y}.In(m.Rect)) {
		return 0, 0, 0
	}
	i := m.PixOffset(x, y)
	return m.Pix[i], m.Pix[i+1], m.Pix[i+2]
}

// Set stores an H, S, V triple at (x, y).
func (m *HSVImage) Set(x, y int, h, s, v uint8) {
	if !(image.Point{x, y}.In(m.Rect)) {
		return
	}
	i := m.PixOffset(x, y)
	m.Pix[i], m.Pix[i+1], m.Pix[i+2] = h, s, v
}

// Converter turns an RGB frame into its HSV representation.
type Converter interface {
	ToHSV(frame *image.RGBA) (*HSVImage, error)
}

// ConverterFunc adapts a function to Converter.
type ConverterFunc func(frame *image.RGBA) (*HSVImage, error)

func (f ConverterFunc) ToHSV(frame *image.RGBA) (*HSVImage, error) { return f(frame) }

// GoConverter is the pure Go RGB -> HSV converter.
var GoConverter Converter = ConverterFunc(func(frame *image.RGBA) (*HSVImage, error) {
	if frame == nil {
		return nil, ErrNilFrame
	}
	return ToHSV(frame), nil
})

// ToHSV converts frame to HSV using the 8-bit OpenCV formulas
// (V = max, S = 255*(max-min)/max, H = hue degrees / 2).
func ToHSV(frame *image.RGBA) *HSVImage {
	b := frame.Bounds()
	out := NewHSVImage(b)
	w := b.Dx()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		src := frame.Pix[frame.PixOffset(b.Min.X, y):]
		dst := out.Pix[out.PixOffset(b.Min.X, y):]
		for x := 0; x < w; x++ {
			i := x * 4
			h, s, v := RGBToHSV(src[i], src[i+1], src[i+2])
			j := x * 3
			dst[j], dst[j+1], dst[j+2] = h, s, v
		}
	}
	return out
}

// RGBToHSV converts one 8-bit RGB pixel to 8-bit HSV.
func RGBToHSV(r, g, b uint8) (h, s, v uint8) {
	ri, gi, bi := int(r), int(g), int(b)
	maxC := max(ri, gi, bi)
	minC := min(ri, gi, bi)
	diff := maxC - minC
	v = uint8(maxC)
	if maxC == 0 || diff == 0 {
		return 0, 0, v
	}
	s = uint8((diff*255 + maxC/2) / maxC)

	// Hue in degrees scaled by 2*diff to stay in integer arithmetic.
	var num int
	switch maxC {
	case ri:
		num = 60 * (gi - bi)
	case gi:
		num = 120*diff + 60*(bi-ri)
	default:
		num = 240*diff + 60*(ri-gi)
	}
	if num < 0 {
		num += 360 * diff
	}
	hv := (num + diff) / (2 * diff) // round(deg/2)
	if hv >= HueRange {
		hv -= HueRange
	}
	return uint8(hv), s, v
}
