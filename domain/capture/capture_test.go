package capture

import (
	"context"
	"errors"
	"image"
	"image/color"
	"log/slog"
	"testing"
)

var discardLogger = slog.New(slog.NewTextHandler(&discardWriter{}, nil))

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestStaticSource_EndsStream(t *testing.T) {
	a, b := solid(2, 2, color.RGBA{1, 2, 3, 255}), solid(2, 2, color.RGBA{4, 5, 6, 255})
	src := NewStaticSource(a, b)
	ctx := context.Background()
	if f, err := src.Next(ctx); err != nil || f != a {
		t.Fatalf("first frame: %v %v", f, err)
	}
	if f, err := src.Next(ctx); err != nil || f != b {
		t.Fatalf("second frame: %v %v", f, err)
	}
	if _, err := src.Next(ctx); !errors.Is(err, ErrStreamEnded) {
		t.Fatalf("expected ErrStreamEnded, got %v", err)
	}
	if src.Served() != 2 {
		t.Fatalf("served %d", src.Served())
	}
}

func TestStaticSource_LoopAndClose(t *testing.T) {
	a := solid(1, 1, color.RGBA{9, 9, 9, 255})
	src := NewStaticSource(a)
	src.Loop = true
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if f, err := src.Next(ctx); err != nil || f != a {
			t.Fatalf("loop %d: %v", i, err)
		}
	}
	_ = src.Close()
	if _, err := src.Next(ctx); !errors.Is(err, ErrStreamEnded) {
		t.Fatalf("closed source should end, got %v", err)
	}
}

func TestStaticSource_ContextCancelled(t *testing.T) {
	src := NewStaticSource(solid(1, 1, color.RGBA{}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := src.Next(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

type poolingSource struct {
	*StaticSource
	recycled int
}

func (p *poolingSource) Recycle(*image.RGBA) { p.recycled++ }

func TestMetered_CountsAndForwards(t *testing.T) {
	inner := &poolingSource{StaticSource: NewStaticSource(solid(2, 2, color.RGBA{}), solid(2, 2, color.RGBA{}))}
	m := NewMetered(inner, discardLogger)
	ctx := context.Background()
	for {
		f, err := m.Next(ctx)
		if err != nil {
			break
		}
		m.Recycle(f)
	}
	st := m.Stats()
	if st.Captures != 2 || st.Skipped != 1 || st.Sequence != 2 {
		t.Fatalf("unexpected stats %+v", st)
	}
	if st.LastCapture.IsZero() {
		t.Fatalf("last capture time not recorded")
	}
	if inner.recycled != 2 {
		t.Fatalf("recycle not forwarded, got %d", inner.recycled)
	}
	// sources without pooling ignore Recycle
	NewMetered(NewStaticSource(), nil).Recycle(solid(1, 1, color.RGBA{}))
}

func TestMirror_FlipsHorizontally(t *testing.T) {
	img := solid(3, 2, color.RGBA{0, 0, 0, 255})
	img.SetRGBA(0, 1, color.RGBA{255, 0, 0, 255})
	m := Mirror(img)
	if m.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Fatalf("unexpected bounds %v", m.Bounds())
	}
	if m.RGBAAt(2, 1) != (color.RGBA{255, 0, 0, 255}) || m.RGBAAt(0, 1) != (color.RGBA{0, 0, 0, 255}) {
		t.Fatalf("pixel not mirrored")
	}
	if img.RGBAAt(0, 1) != (color.RGBA{255, 0, 0, 255}) {
		t.Fatalf("mirror must not modify its input")
	}
	if Mirror(nil) != nil {
		t.Fatalf("nil in, nil out")
	}
}

func TestClone_IsIndependent(t *testing.T) {
	img := solid(2, 2, color.RGBA{10, 20, 30, 255})
	c := Clone(img)
	c.SetRGBA(0, 0, color.RGBA{})
	if img.RGBAAt(0, 0) != (color.RGBA{10, 20, 30, 255}) {
		t.Fatalf("clone shares pixels with source")
	}
}

func TestAcquireFrame_Sizes(t *testing.T) {
	f := AcquireFrame(image.Rect(0, 0, 8, 4))
	if len(f.Pix) != 8*4*4 || f.Stride != 32 {
		t.Fatalf("unexpected frame layout len=%d stride=%d", len(f.Pix), f.Stride)
	}
	RecycleFrame(f)
	g := AcquireFrame(image.Rect(0, 0, 2, 2))
	if len(g.Pix) != 16 || g.Stride != 8 || g.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Fatalf("reused frame not resized")
	}
	if e := AcquireFrame(image.Rectangle{}); e.Pix != nil {
		t.Fatalf("empty rect should not allocate")
	}
	RecycleFrame(nil)
}
