package session

import (
	"context"
	"errors"
	"image"
	"image/color"
	"log/slog"
	"testing"

	"github.com/soocke/airpaint-go/config"
	"github.com/soocke/airpaint-go/domain/canvas"
	"github.com/soocke/airpaint-go/domain/capture"
	"github.com/soocke/airpaint-go/domain/display"
	"github.com/soocke/airpaint-go/domain/interaction"
)

var discardLogger = slog.New(slog.NewTextHandler(&discardWriter{}, nil))

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }

var (
	gray = color.RGBA{128, 128, 128, 255}
	red  = color.RGBA{255, 0, 0, 255}
)

// patchFrame is a 100x100 gray frame with a 10x10 red patch centred at c.
// A zero c leaves the frame plain.
func patchFrame(c image.Point) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = gray.R, gray.G, gray.B, 255
	}
	if c == (image.Point{}) {
		return img
	}
	for y := c.Y - 5; y < c.Y+5; y++ {
		for x := c.X - 5; x < c.X+5; x++ {
			img.SetRGBA(x, y, red)
		}
	}
	return img
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.WarmupFrames = 2
	cfg.Mirror = false
	cfg.SampleWidthDivisor = 10 // 10px sample box on a 100px frame
	cfg.SearchPolicy = "global"
	cfg.RequireExplicitColor = true
	cfg.DrawBox = config.Rect{X0: 60, Y0: 60, X1: 100, Y1: 100}
	cfg.Swatches = []config.Swatch{{Name: "red", Rect: config.Rect{X0: 0, Y0: 0, X1: 20, Y1: 20}, Color: config.RGB{R: 255}}}
	cfg.StrokeRadius = 3
	return cfg
}

func TestSession_WarmupLearnTrackDraw(t *testing.T) {
	centre := image.Pt(50, 50)
	src := capture.NewStaticSource(
		patchFrame(centre), patchFrame(centre), // warm-up
		patchFrame(centre),           // learning
		patchFrame(image.Pt(10, 10)), // red swatch
		patchFrame(image.Pt(70, 70)), // draw box
	)
	sink := &display.Null{}
	s, err := New(testConfig(), Deps{Source: src, Sink: sink}, discardLogger)
	if err != nil {
		t.Fatal(err)
	}
	var phases []Phase
	s.OnPhase(func(_, next Phase) { phases = append(phases, next) })
	var states []interaction.State
	s.Machine().AddListener(func(_, next interaction.State) { states = append(states, next) })
	frames := 0
	s.OnFrame(func(snap capture.FrameSnapshot, st Stats) {
		if snap.Image == nil {
			t.Errorf("frame listener got nil image")
		}
		frames++
	})

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	st := s.Stats()
	if st.Phase != PhaseDone || s.Phase() != PhaseDone {
		t.Fatalf("expected done, got %v", st.Phase)
	}
	if st.Frames != 5 || st.TrackedFrames != 3 || sink.Shown() != 5 || frames != 5 {
		t.Fatalf("unexpected counts %+v shown=%d listened=%d", st, sink.Shown(), frames)
	}
	if st.Pen != image.Pt(70, 70) || st.State != interaction.StateDraw || st.Color != red {
		t.Fatalf("unexpected final pen %+v", st)
	}
	if st.Strokes != 1 || s.Overlay().RGBAAt(70, 70) != red {
		t.Fatalf("expected one red stroke at (70,70), strokes=%d", st.Strokes)
	}
	wantPhases := []Phase{PhaseLearning, PhaseTracking, PhaseDone}
	if len(phases) != len(wantPhases) {
		t.Fatalf("phases %v", phases)
	}
	for i := range wantPhases {
		if phases[i] != wantPhases[i] {
			t.Fatalf("phases %v", phases)
		}
	}
	if len(states) != 2 || states[0] != interaction.StateColorSelect || states[1] != interaction.StateDraw {
		t.Fatalf("states %v", states)
	}
	if s.LatestFrame().Image == nil || s.LatestFrame().Image.Bounds() != image.Rect(0, 0, 100, 100) {
		t.Fatalf("latest frame not published")
	}
}

// countingRenderer forwards to the Go backend and counts calls.
type countingRenderer struct {
	rects, circles, composes int
}

func (c *countingRenderer) FillRect(dst *image.RGBA, r image.Rectangle, col color.RGBA) error {
	c.rects++
	return canvas.GoRenderer.FillRect(dst, r, col)
}

func (c *countingRenderer) FillCircle(dst *image.RGBA, p image.Point, r int, col color.RGBA) error {
	c.circles++
	return canvas.GoRenderer.FillCircle(dst, p, r, col)
}

func (c *countingRenderer) Compose(live, overlay *image.RGBA, lw, ow float64) (*image.RGBA, error) {
	c.composes++
	return canvas.GoRenderer.Compose(live, overlay, lw, ow)
}

func TestSession_DrawsThroughRenderer(t *testing.T) {
	centre := image.Pt(50, 50)
	src := capture.NewStaticSource(
		patchFrame(centre), patchFrame(centre),
		patchFrame(centre),
		patchFrame(image.Pt(10, 10)),
		patchFrame(image.Pt(70, 70)),
	)
	r := &countingRenderer{}
	s, err := New(testConfig(), Deps{Source: src, Sink: &display.Null{}, Renderer: r}, discardLogger)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if r.composes != 3 {
		t.Fatalf("expected one blend per tracked frame, got %d", r.composes)
	}
	if r.circles != 1 || s.Stats().Strokes != 1 {
		t.Fatalf("expected the stroke to be drawn by the renderer, got %d", r.circles)
	}
	if r.rects == 0 {
		t.Fatalf("HUD was not drawn through the renderer")
	}
}

func TestSession_ZeroWeightKeepsPen(t *testing.T) {
	cfg := testConfig()
	cfg.WarmupFrames = 0
	src := capture.NewStaticSource(
		patchFrame(image.Pt(50, 50)),
		patchFrame(image.Pt(30, 30)),
		patchFrame(image.Point{}),
	)
	s, err := New(cfg, Deps{Source: src, Sink: &display.Null{}}, discardLogger)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	st := s.Stats()
	if st.Pen != image.Pt(30, 30) || st.ZeroWeight != 1 {
		t.Fatalf("pen should stay put on a blank frame, got %+v", st)
	}
	if st.Strokes != 0 {
		t.Fatalf("no strokes expected, got %d", st.Strokes)
	}
}

func TestSession_LocalPolicyFollowsSmallMoves(t *testing.T) {
	cfg := testConfig()
	cfg.WarmupFrames = 0
	cfg.SearchPolicy = "local"
	src := capture.NewStaticSource(
		patchFrame(image.Pt(50, 50)),
		patchFrame(image.Pt(54, 54)), // only [49,53) is inside the 6px window
		patchFrame(image.Pt(90, 20)),
	)
	s, _ := New(cfg, Deps{Source: src, Sink: &display.Null{}}, discardLogger)
	if _, err := s.Step(context.Background()); err != nil {
		t.Fatal(err)
	}
	if s.Pen() != image.Pt(50, 50) {
		t.Fatalf("expected (50,50) after learning, got %v", s.Pen())
	}
	_, _ = s.Step(context.Background())
	if s.Pen() != image.Pt(51, 51) {
		t.Fatalf("expected partial move to (51,51), got %v", s.Pen())
	}
	_, _ = s.Step(context.Background())
	if s.Pen() != image.Pt(51, 51) {
		t.Fatalf("distant patch should be out of reach, got %v", s.Pen())
	}
}

func TestSession_PauseFreezesPen(t *testing.T) {
	cfg := testConfig()
	cfg.WarmupFrames = 0
	src := capture.NewStaticSource(patchFrame(image.Pt(50, 50)), patchFrame(image.Pt(70, 70)))
	s, _ := New(cfg, Deps{Source: src, Sink: &display.Null{}}, discardLogger)
	_, _ = s.Step(context.Background())
	s.SetPaused(true)
	_, _ = s.Step(context.Background())
	if s.Pen() != image.Pt(50, 50) || !s.Paused() {
		t.Fatalf("paused session moved the pen to %v", s.Pen())
	}
	if s.Stats().TrackedFrames != 1 {
		t.Fatalf("paused frames should not count as tracked")
	}
}

func TestSession_ExitRequested(t *testing.T) {
	src := capture.NewStaticSource(patchFrame(image.Pt(50, 50)))
	src.Loop = true
	sink := &display.Null{ExitAfter: 3}
	s, _ := New(testConfig(), Deps{Source: src, Sink: sink}, discardLogger)
	if err := s.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if sink.Shown() != 3 || s.Phase() != PhaseDone {
		t.Fatalf("expected exit after 3 frames, shown=%d phase=%v", sink.Shown(), s.Phase())
	}
	if done, err := s.Step(context.Background()); !done || err != nil {
		t.Fatalf("finished session should stay done")
	}
}

func TestSession_KeyDuringWarmupStartsLearning(t *testing.T) {
	cfg := testConfig()
	cfg.WarmupFrames = 80
	src := capture.NewStaticSource(patchFrame(image.Pt(50, 50)))
	src.Loop = true
	sink := &display.Null{}
	s, err := New(cfg, Deps{Source: src, Sink: sink}, discardLogger)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if done, err := s.Step(ctx); done || err != nil || s.Phase() != PhaseWarmup {
		t.Fatalf("first warm-up frame: done=%v err=%v phase=%v", done, err, s.Phase())
	}
	sink.RequestExit()
	done, err := s.Step(ctx)
	if done || err != nil {
		t.Fatalf("key during warm-up ended the session: done=%v err=%v", done, err)
	}
	if s.Phase() != PhaseLearning {
		t.Fatalf("expected learning after the key, got %v", s.Phase())
	}
	if done, err := s.Step(ctx); done || err != nil || s.Phase() != PhaseTracking {
		t.Fatalf("learning frame: done=%v err=%v phase=%v", done, err, s.Phase())
	}
	if s.Stats().Frames != 3 || s.Pen() != image.Pt(50, 50) {
		t.Fatalf("unexpected stats %+v", s.Stats())
	}
	sink.RequestExit()
	if done, err := s.Step(ctx); !done || err != nil || s.Phase() != PhaseDone {
		t.Fatalf("key while tracking should exit: done=%v err=%v phase=%v", done, err, s.Phase())
	}
}

func TestSession_ContextCancelled(t *testing.T) {
	src := capture.NewStaticSource(patchFrame(image.Pt(50, 50)))
	src.Loop = true
	s, _ := New(testConfig(), Deps{Source: src, Sink: &display.Null{}}, discardLogger)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Run(ctx); err != nil {
		t.Fatalf("cancel should end gracefully, got %v", err)
	}
	if s.Stats().Frames != 0 {
		t.Fatalf("no frame should be read after cancel")
	}
}

type brokenSource struct{}

func (brokenSource) Next(context.Context) (*image.RGBA, error) {
	return nil, capture.ErrSourceUnavailable
}
func (brokenSource) Close() error { return nil }

func TestSession_SourceUnavailableIsFatal(t *testing.T) {
	s, _ := New(testConfig(), Deps{Source: brokenSource{}, Sink: &display.Null{}}, discardLogger)
	if err := s.Run(context.Background()); !errors.Is(err, capture.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
	if _, err := New(testConfig(), Deps{Sink: &display.Null{}}, nil); !errors.Is(err, capture.ErrSourceUnavailable) {
		t.Fatalf("missing source should be unavailable, got %v", err)
	}
}

func TestSession_FrameSizeChangeEndsStream(t *testing.T) {
	cfg := testConfig()
	cfg.WarmupFrames = 0
	small := image.NewRGBA(image.Rect(0, 0, 50, 50))
	src := capture.NewStaticSource(patchFrame(image.Pt(50, 50)), small, patchFrame(image.Pt(50, 50)))
	s, _ := New(cfg, Deps{Source: src, Sink: &display.Null{}}, discardLogger)
	if err := s.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if src.Served() != 2 {
		t.Fatalf("session should stop at the resized frame, served %d", src.Served())
	}
}

func TestPhase_String(t *testing.T) {
	if PhaseWarmup.String() != "warmup" || PhaseTracking.String() != "tracking" || Phase(9).String() != "unknown" {
		t.Fatalf("unexpected phase names")
	}
}
