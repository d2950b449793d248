// Package session runs the capture → track → interact → render loop.
package session

import (
	"context"
	"image"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/soocke/airpaint-go/config"
	"github.com/soocke/airpaint-go/domain/canvas"
	"github.com/soocke/airpaint-go/domain/capture"
	"github.com/soocke/airpaint-go/domain/interaction"
	"github.com/soocke/airpaint-go/domain/tracking"
)

// Session owns all per-session state: tracker position, interaction machine
// and canvas. Step and Run must be called from one goroutine; the accessors
// may be called from others.
type Session struct {
	cfg    *config.Config
	deps   Deps
	logger *slog.Logger

	zones    interaction.Zones
	panels   []image.Rectangle
	machine  *interaction.Machine
	policy   tracking.SearchPolicy
	smoother tracking.Smoother
	tracker  *tracking.Tracker
	pen      tracking.TrackState
	canvas   *canvas.Canvas

	warm      int
	trackStep int

	mu             sync.RWMutex
	phase          Phase
	stats          Stats
	latest         capture.FrameSnapshot
	paused         bool
	frameListeners []FrameListener
	phaseListeners []PhaseListener
}

// New validates the dependencies and returns a session in the warm-up phase.
func New(cfg *config.Config, deps Deps, logger *slog.Logger) (*Session, error) {
	if deps.Source == nil {
		return nil, errors.Wrap(capture.ErrSourceUnavailable, "no frame source")
	}
	if deps.Sink == nil {
		return nil, errors.New("session: no display sink")
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	_ = cfg.Validate()
	if deps.Converter == nil {
		deps.Converter = tracking.GoConverter
	}
	if deps.Renderer == nil {
		deps.Renderer = canvas.GoRenderer
	}
	policy, err := tracking.ParseSearchPolicy(cfg.SearchPolicy)
	if err != nil {
		return nil, err
	}
	zones := interaction.ZonesFromConfig(cfg)
	s := &Session{
		cfg:     cfg,
		deps:    deps,
		logger:  logger,
		zones:   zones,
		panels:  panelRects(cfg.Panels),
		machine: interaction.NewMachine(zones, interaction.PolicyFromConfig(cfg), cfg.DefaultColor.RGBA(), cfg.StrokeRadius, logger),
		policy:  policy,
	}
	if cfg.WarmupFrames == 0 {
		s.phase = PhaseLearning
	}
	s.stats.Phase = s.phase
	return s, nil
}

// Machine exposes the interaction state machine for listeners.
func (s *Session) Machine() *interaction.Machine { return s.machine }

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// Stats returns a copy of the counters.
func (s *Session) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// Pen returns the tracked position.
func (s *Session) Pen() image.Point {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats.Pen
}

// LatestFrame returns the last composed frame.
func (s *Session) LatestFrame() capture.FrameSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// Overlay returns the drawing overlay, nil before the first frame.
func (s *Session) Overlay() *image.RGBA { return s.canvas.Overlay() }

// SetPaused freezes tracking and drawing while frames keep flowing.
func (s *Session) SetPaused(p bool) {
	s.mu.Lock()
	s.paused = p
	s.mu.Unlock()
	if s.logger != nil {
		s.logger.Info("tracking paused", "paused", p)
	}
}

// Paused reports whether tracking is frozen.
func (s *Session) Paused() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paused
}

// OnFrame registers l to observe every composed frame.
func (s *Session) OnFrame(l FrameListener) {
	if l == nil {
		return
	}
	s.mu.Lock()
	s.frameListeners = append(s.frameListeners, l)
	s.mu.Unlock()
}

// OnPhase registers l for phase changes.
func (s *Session) OnPhase(l PhaseListener) {
	if l == nil {
		return
	}
	s.mu.Lock()
	s.phaseListeners = append(s.phaseListeners, l)
	s.mu.Unlock()
}

// Run steps until the user exits, the stream ends or ctx is cancelled.
// Only a fatal error is returned.
func (s *Session) Run(ctx context.Context) error {
	for {
		done, err := s.Step(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// Step runs exactly one iteration and reports whether the session is over.
func (s *Session) Step(ctx context.Context) (done bool, err error) {
	if s.Phase() == PhaseDone {
		return true, nil
	}
	if ctx.Err() != nil {
		s.finish("cancelled")
		return true, nil
	}
	frame, err := s.deps.Source.Next(ctx)
	if err != nil {
		if errors.Is(err, capture.ErrSourceUnavailable) {
			s.finish("source unavailable")
			return true, err
		}
		// a missing frame mid-session ends the stream
		if s.logger != nil && !errors.Is(err, capture.ErrStreamEnded) && ctx.Err() == nil {
			s.logger.Warn("frame read failed", "error", err)
		}
		s.finish("stream ended")
		return true, nil
	}
	defer s.recycle(frame)

	phase := s.Phase()
	if fatal := s.process(frame); fatal != nil {
		s.finish("fatal error")
		return true, fatal
	}
	if s.deps.Sink.PollExit(time.Duration(s.cfg.PollTimeoutMs) * time.Millisecond) {
		if phase == PhaseWarmup {
			// a key during warm-up only cuts it short
			if s.logger != nil {
				s.logger.Info("warm-up skipped", "frames", s.warm)
			}
			s.setPhase(PhaseLearning)
			return false, nil
		}
		s.finish("exit requested")
		return true, nil
	}
	return s.Phase() == PhaseDone, nil
}

func (s *Session) recycle(frame *image.RGBA) {
	if r, ok := s.deps.Source.(capture.Recycler); ok {
		r.Recycle(frame)
	}
}

func (s *Session) process(frame *image.RGBA) error {
	s.mu.Lock()
	s.stats.Frames++
	first := s.stats.FrameSize.Empty()
	if first {
		s.stats.FrameSize = image.Rectangle{Max: frame.Bounds().Size()}
	}
	size := s.stats.FrameSize
	s.mu.Unlock()

	if first {
		c, err := canvas.New(s.deps.Renderer, size.Dx(), size.Dy(), canvas.White)
		if err != nil {
			return errors.Wrap(err, "can't create canvas")
		}
		s.canvas = c
		s.pen = tracking.NewTrackState(size, s.halfWidth(s.cfg.SearchWidthDivisor))
		s.smoother = tracking.NewSmoother(s.cfg.Smoothing, float64(s.cfg.PollTimeoutMs)/1000, s.pen.Point())
		s.publishPen(s.pen.Point())
		if s.logger != nil {
			s.logger.Info("frame dimensions", "width", size.Dx(), "height", size.Dy())
		}
	} else if frame.Bounds().Size() != size.Size() {
		if s.logger != nil {
			s.logger.Warn("frame size changed; ending stream", "want", size.String(), "got", frame.Bounds().String())
		}
		s.finish("frame size changed")
		return nil
	}

	var live *image.RGBA
	if s.cfg.Mirror {
		live = capture.Mirror(frame)
	} else {
		live = capture.Clone(frame)
	}

	switch s.Phase() {
	case PhaseWarmup:
		return s.warmup(live)
	case PhaseLearning:
		return s.learn(live)
	case PhaseTracking:
		return s.track(live)
	}
	return nil
}

func (s *Session) halfWidth(divisor int) int {
	if divisor <= 0 {
		divisor = 16
	}
	return s.stats.FrameSize.Dx() / divisor / 2
}

// sampleBox is the frame-centre square the histogram is learned from.
func (s *Session) sampleBox() image.Rectangle {
	side := 2 * s.halfWidth(s.cfg.SampleWidthDivisor)
	if side < 1 {
		side = 1
	}
	return tracking.CenteredBox(tracking.Center(s.stats.FrameSize), side)
}

func (s *Session) warmup(live *image.RGBA) error {
	if err := s.drawHUD(live); err != nil {
		return err
	}
	if err := canvas.DrawBox(s.deps.Renderer, live, s.sampleBox(), canvas.Green, 3); err != nil {
		return errors.Wrap(err, "can't draw sample box")
	}
	if err := s.show(live); err != nil {
		return err
	}
	s.warm++
	if s.warm >= s.cfg.WarmupFrames {
		s.setPhase(PhaseLearning)
	}
	return nil
}

func (s *Session) learn(live *image.RGBA) error {
	hsv, err := s.deps.Converter.ToHSV(live)
	if err != nil {
		return errors.Wrap(err, "can't convert sample frame")
	}
	box := s.sampleBox()
	hist, err := tracking.BuildHistogram(hsv, box, s.cfg.HueBins, s.cfg.SatBins)
	if err != nil {
		return err
	}
	s.tracker = tracking.NewTracker(hist, s.policy, s.halfWidth(s.cfg.SearchWidthDivisor), s.logger)
	if s.logger != nil {
		hb, sb, peak := hist.Peak()
		s.logger.Info("colour model learned",
			"sample", box.String(), "pixels", hist.Total(),
			"peak_hue_bin", hb, "peak_sat_bin", sb, "peak_count", peak,
			"policy", s.policy.String())
	}
	s.setPhase(PhaseTracking)
	return s.track(live)
}

func (s *Session) track(live *image.RGBA) error {
	var step interaction.Step
	zeroWeight := false
	if !s.Paused() {
		hsv, err := s.deps.Converter.ToHSV(live)
		if err != nil {
			return errors.Wrap(err, "can't convert frame")
		}
		next, res := s.tracker.Update(hsv, s.pen.Point())
		zeroWeight = !res.Found
		s.pen.Apply(next)
		pen, err := s.smoother.Smooth(next)
		if err != nil {
			if s.logger != nil {
				s.logger.Debug("smoothing failed; using raw centroid", "error", err)
			}
			s.smoother.Reset(next)
			pen = next
		}
		step = s.machine.Step(pen)
		if step.Stroke != nil {
			if err := s.canvas.Stroke(step.Stroke.At, step.Stroke.Color, step.Stroke.Radius); err != nil {
				return err
			}
		}
		s.trackStep++
		if s.logger != nil && (s.trackStep-1)%s.cfg.LogEveryFrames == 0 {
			s.logger.Info("pen position", "x", pen.X, "y", pen.Y, "state", step.State.String())
		}
		s.publishPen(pen)
	} else {
		step = interaction.Step{State: s.machine.Current(), Color: s.machine.SelectedColor()}
	}

	s.mu.Lock()
	if !s.paused {
		s.stats.TrackedFrames++
		if zeroWeight {
			s.stats.ZeroWeight++
		}
	}
	s.stats.State = step.State
	s.stats.Color = step.Color
	s.stats.Strokes = s.canvas.Strokes()
	pen := s.stats.Pen
	s.mu.Unlock()

	backdrop := live
	if s.cfg.Backdrop == "white" {
		blank, err := canvas.Blank(s.deps.Renderer, live.Bounds().Dx(), live.Bounds().Dy(), canvas.White)
		if err != nil {
			return err
		}
		backdrop = blank
	}
	if err := s.drawHUD(backdrop); err != nil {
		return err
	}
	marker := tracking.CenteredBox(pen, 2*s.pen.HalfWidth)
	if err := canvas.DrawBox(s.deps.Renderer, backdrop, marker, canvas.Red, s.cfg.MarkerThickness); err != nil {
		return errors.Wrap(err, "can't draw marker")
	}
	out, err := s.deps.Renderer.Compose(backdrop, s.canvas.Overlay(), s.cfg.LiveWeight, s.cfg.OverlayWeight)
	if err != nil {
		return err
	}
	return s.show(out)
}

func (s *Session) drawHUD(dst *image.RGBA) error {
	if err := canvas.DrawZones(s.deps.Renderer, dst, s.zones, s.panels, s.cfg.ZoneThickness); err != nil {
		return errors.Wrap(err, "can't draw palette")
	}
	return nil
}

func panelRects(rs []config.Rect) []image.Rectangle {
	out := make([]image.Rectangle, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Rectangle())
	}
	return out
}

func (s *Session) publishPen(p image.Point) {
	s.mu.Lock()
	s.stats.Pen = p
	s.mu.Unlock()
}

func (s *Session) show(img *image.RGBA) error {
	if err := s.deps.Sink.Show(img); err != nil {
		return errors.Wrap(err, "can't show frame")
	}
	s.mu.Lock()
	s.latest = capture.FrameSnapshot{Image: img, CapturedAt: time.Now(), Sequence: uint64(s.stats.Frames)}
	snap, st := s.latest, s.stats
	listeners := append([]FrameListener(nil), s.frameListeners...)
	s.mu.Unlock()
	for _, l := range listeners {
		func() {
			defer recoverLog(s.logger, "frame listener panic")
			l(snap, st)
		}()
	}
	return nil
}

func (s *Session) setPhase(next Phase) {
	s.mu.Lock()
	prev := s.phase
	if prev == next || prev == PhaseDone {
		s.mu.Unlock()
		return
	}
	s.phase = next
	s.stats.Phase = next
	listeners := append([]PhaseListener(nil), s.phaseListeners...)
	s.mu.Unlock()
	if s.logger != nil {
		s.logger.Debug("session phase transition", "from", prev.String(), "to", next.String())
	}
	for _, l := range listeners {
		l(prev, next)
	}
}

func (s *Session) finish(reason string) {
	if s.Phase() == PhaseDone {
		return
	}
	s.setPhase(PhaseDone)
	if s.logger != nil {
		st := s.Stats()
		s.logger.Info("session finished", "reason", reason, "frames", st.Frames,
			"tracked", st.TrackedFrames, "zero_weight", st.ZeroWeight, "strokes", st.Strokes)
	}
}

func recoverLog(logger *slog.Logger, msg string) {
	if r := recover(); r != nil {
		if logger != nil {
			logger.Error(msg, "error", r, "stack", string(debug.Stack()))
		}
	}
}
