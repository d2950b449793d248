package canvas

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/soocke/airpaint-go/config"
	"github.com/soocke/airpaint-go/domain/interaction"
)

func uniform(w, h int, c color.RGBA) *image.RGBA {
	img, err := Blank(GoRenderer, w, h, c)
	if err != nil {
		panic(err)
	}
	return img
}

// marked returns pixels that differ from the white background.
func marked(img *image.RGBA) map[image.Point]bool {
	out := map[image.Point]bool{}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) != White {
				out[image.Pt(x, y)] = true
			}
		}
	}
	return out
}

func newCanvas(t *testing.T, w, h int) *Canvas {
	t.Helper()
	c, err := New(GoRenderer, w, h, White)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestNew_StartsWhite(t *testing.T) {
	c := newCanvas(t, 8, 6)
	if len(marked(c.Overlay())) != 0 || c.Strokes() != 0 {
		t.Fatalf("fresh canvas should be blank")
	}
	if c.Bounds() != image.Rect(0, 0, 8, 6) {
		t.Fatalf("unexpected bounds %v", c.Bounds())
	}
}

func TestStroke_FilledDisc(t *testing.T) {
	c := newCanvas(t, 40, 40)
	if err := c.Stroke(image.Pt(20, 20), Red, 5); err != nil {
		t.Fatal(err)
	}
	o := c.Overlay()
	if o.RGBAAt(20, 20) != Red || o.RGBAAt(25, 20) != Red || o.RGBAAt(20, 15) != Red {
		t.Fatalf("disc should cover its centre and axis extremes")
	}
	if o.RGBAAt(24, 24) != White || o.RGBAAt(26, 20) != White {
		t.Fatalf("disc should not cover corners of its bounding box")
	}
	// clipped at the border without panicking
	c.Stroke(image.Pt(0, 0), Red, 5)
	c.Stroke(image.Pt(100, 100), Red, 5)
	if c.Strokes() != 3 {
		t.Fatalf("expected 3 strokes, got %d", c.Strokes())
	}
}

func TestStrokes_AreCumulative(t *testing.T) {
	p1, p2 := image.Pt(10, 10), image.Pt(14, 12)
	blue := color.RGBA{0, 0, 255, 255}
	only1 := newCanvas(t, 30, 30)
	only1.Stroke(p1, Red, 4)
	only2 := newCanvas(t, 30, 30)
	only2.Stroke(p2, blue, 4)
	both := newCanvas(t, 30, 30)
	both.Stroke(p1, Red, 4)
	both.Stroke(p2, blue, 4)

	live := uniform(30, 30, color.RGBA{90, 90, 90, 255})
	compose := func(c *Canvas) map[image.Point]bool {
		out, err := GoRenderer.Compose(live, c.Overlay(), 0.5, 0.5)
		if err != nil {
			t.Fatal(err)
		}
		bg := out.RGBAAt(29, 29)
		m := map[image.Point]bool{}
		for y := 0; y < 30; y++ {
			for x := 0; x < 30; x++ {
				if out.RGBAAt(x, y) != bg {
					m[image.Pt(x, y)] = true
				}
			}
		}
		return m
	}
	all := compose(both)
	for p := range compose(only1) {
		if !all[p] {
			t.Fatalf("mark %v of first stroke lost", p)
		}
	}
	for p := range compose(only2) {
		if !all[p] {
			t.Fatalf("mark %v of second stroke lost", p)
		}
	}
}

func TestCompose_WeightedBlend(t *testing.T) {
	live := uniform(4, 4, color.RGBA{100, 200, 0, 255})
	over := uniform(4, 4, color.RGBA{255, 255, 255, 255})
	out, err := GoRenderer.Compose(live, over, 0.5, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if got := out.RGBAAt(2, 2); got != (color.RGBA{178, 228, 128, 255}) {
		t.Fatalf("unexpected blend %v", got)
	}
	if out == live || out == over {
		t.Fatalf("compose must write a new buffer")
	}
	if live.RGBAAt(0, 0) != (color.RGBA{100, 200, 0, 255}) {
		t.Fatalf("compose must not modify its inputs")
	}
	sat, _ := GoRenderer.Compose(over, over, 1, 1)
	if sat.RGBAAt(0, 0) != White {
		t.Fatalf("blend should saturate at 255")
	}
}

func TestCompose_SizeMismatch(t *testing.T) {
	_, err := GoRenderer.Compose(uniform(4, 4, White), uniform(5, 4, White), 0.5, 0.5)
	if !errors.Is(err, ErrSizeMismatch) {
		t.Fatalf("expected ErrSizeMismatch, got %v", err)
	}
	if _, err := GoRenderer.Compose(nil, uniform(1, 1, White), 1, 0); !errors.Is(err, ErrSizeMismatch) {
		t.Fatalf("expected ErrSizeMismatch for nil input, got %v", err)
	}
}

func TestDrawZones_PaintsPalette(t *testing.T) {
	img := uniform(640, 480, White)
	z := interaction.ZonesFromConfig(config.DefaultConfig())
	var panels []image.Rectangle
	for _, p := range config.DefaultPanels() {
		panels = append(panels, p.Rectangle())
	}
	if err := DrawZones(GoRenderer, img, z, panels, 5); err != nil {
		t.Fatal(err)
	}
	if img.RGBAAt(50, 100) != Red || img.RGBAAt(26, 100) != Red {
		t.Fatalf("red swatch should be filled edge to edge, got %v", img.RGBAAt(50, 100))
	}
	if img.RGBAAt(8, 100) != Black || img.RGBAAt(203, 100) != Black || img.RGBAAt(100, 12) != Black {
		t.Fatalf("palette panel should be framed in black")
	}
	if img.RGBAAt(252, 200) != Black || img.RGBAAt(597, 200) != Black || img.RGBAAt(400, 467) != Black {
		t.Fatalf("drawing panel should be framed in black")
	}
	if img.RGBAAt(400, 200) != White || img.RGBAAt(230, 200) != White {
		t.Fatalf("panel interiors and the gap should stay untouched")
	}
}

func TestDrawBox_ThickBoxFills(t *testing.T) {
	img := uniform(10, 10, White)
	DrawBox(GoRenderer, img, image.Rect(2, 2, 6, 6), Green, 3)
	if img.RGBAAt(3, 3) != Green {
		t.Fatalf("thick box should fill the rectangle")
	}
	img = uniform(20, 20, White)
	DrawBox(GoRenderer, img, image.Rect(2, 2, 18, 18), Green, 2)
	if img.RGBAAt(2, 10) != Green || img.RGBAAt(17, 10) != Green || img.RGBAAt(10, 10) != White {
		t.Fatalf("unexpected outline")
	}
}

// failingRenderer records calls and fails FillCircle.
type failingRenderer struct {
	goRenderer
	rects int
}

func (f *failingRenderer) FillRect(dst *image.RGBA, r image.Rectangle, c color.RGBA) error {
	f.rects++
	return f.goRenderer.FillRect(dst, r, c)
}

func (f *failingRenderer) FillCircle(*image.RGBA, image.Point, int, color.RGBA) error {
	return errors.New("no circles")
}

func TestCanvas_UsesItsRenderer(t *testing.T) {
	f := &failingRenderer{}
	c, err := New(f, 10, 10, White)
	if err != nil {
		t.Fatal(err)
	}
	if f.rects != 1 {
		t.Fatalf("background should be filled through the renderer, got %d fills", f.rects)
	}
	if err := c.Stroke(image.Pt(5, 5), Red, 2); err == nil {
		t.Fatalf("expected renderer error")
	}
	if c.Strokes() != 0 {
		t.Fatalf("failed stroke must not be counted")
	}
	if err := DrawBox(f, c.Overlay(), image.Rect(0, 0, 10, 10), Black, 1); err != nil || f.rects != 5 {
		t.Fatalf("box should be four renderer fills, got %d (%v)", f.rects, err)
	}
}

func TestNew_NilRendererFallsBackToGo(t *testing.T) {
	c, err := New(nil, 4, 4, Green)
	if err != nil || c.Overlay().RGBAAt(3, 3) != Green {
		t.Fatalf("unexpected canvas %v", err)
	}
}
