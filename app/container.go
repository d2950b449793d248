package app

import (
	"log/slog"

	"github.com/pkg/errors"

	"github.com/soocke/airpaint-go/config"
	"github.com/soocke/airpaint-go/domain/canvas"
	"github.com/soocke/airpaint-go/domain/capture"
	"github.com/soocke/airpaint-go/domain/display"
	"github.com/soocke/airpaint-go/domain/interaction"
	"github.com/soocke/airpaint-go/domain/opencv"
	"github.com/soocke/airpaint-go/domain/session"
	"github.com/soocke/airpaint-go/domain/tracking"
	"github.com/soocke/airpaint-go/ui/model"
	"github.com/soocke/airpaint-go/ui/presenter"
	"github.com/soocke/airpaint-go/ui/view"
)

const closeUpSize = 64

// Container assembles the frame source, display sink, session and, in Tk
// mode, the models, presenters and root view.
type Container struct {
	Config  *config.Config
	CfgPath string
	Logger  *slog.Logger

	Source  *capture.Metered
	Sink    display.Sink
	TkSink  *view.TkSink // non-nil in Tk mode
	Session *session.Session

	// Tk front end
	RootView      *view.RootView
	SessionModel  *model.SessionModel
	TrackingModel *model.TrackingModel
	PenModel      *model.PenModel

	SessionPresenter  *presenter.SessionPresenter
	StatePresenter    *presenter.StatePresenter
	TrackingPresenter *presenter.TrackingPresenter
	FramePresenter    *presenter.FramePresenter
	Loop              *presenter.Loop
}

// BuildContainer opens the configured source and sink and wires the session.
// A source that cannot be opened yields an error wrapping
// capture.ErrSourceUnavailable.
func BuildContainer(cfg *config.Config, logger *slog.Logger, cfgPath string) (*Container, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	_ = cfg.Validate()
	c := &Container{Config: cfg, CfgPath: cfgPath, Logger: logger}

	src, err := openSource(cfg, logger)
	if err != nil {
		return nil, err
	}
	c.Source = capture.NewMetered(src, logger)
	c.Sink = c.openSink()

	sess, err := session.New(cfg, session.Deps{
		Source:    c.Source,
		Sink:      c.Sink,
		Converter: converterFor(cfg),
		Renderer:  rendererFor(cfg),
	}, logger)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Session = sess
	if c.TkSink != nil {
		c.buildTk()
	}
	return c, nil
}

func openSource(cfg *config.Config, logger *slog.Logger) (capture.Source, error) {
	switch cfg.Source {
	case "video":
		if cfg.VideoPath == "" {
			return nil, errors.Wrap(capture.ErrSourceUnavailable, "no video path configured")
		}
		return opencv.OpenFile(cfg.VideoPath, logger)
	case "screen":
		return capture.NewScreenSource(cfg.ScreenRegion.Rectangle())
	default:
		return opencv.OpenDevice(cfg.CameraIndex, logger)
	}
}

func (c *Container) openSink() display.Sink {
	switch c.Config.Display {
	case "tk":
		c.TkSink = &view.TkSink{}
		return c.TkSink
	case "none":
		return &display.Null{}
	default:
		return opencv.NewWindow(c.Config.WindowTitle)
	}
}

func converterFor(cfg *config.Config) tracking.Converter {
	if cfg.HSVBackend == "opencv" {
		return opencv.HSVConverter
	}
	return tracking.GoConverter
}

func rendererFor(cfg *config.Config) canvas.Renderer {
	if cfg.RenderBackend == "go" {
		return canvas.GoRenderer
	}
	return opencv.Renderer
}

func (c *Container) buildTk() {
	c.SessionModel = model.NewSessionModel()
	c.TrackingModel = &model.TrackingModel{}
	c.PenModel = model.NewPenModel()
	c.RootView = view.NewRootView(c.Config, c.CfgPath, c.Logger)

	c.SessionPresenter = presenter.NewSessionPresenter(c.SessionModel, trackingStatus{c.Session}, c.RootView)
	c.StatePresenter = presenter.NewStatePresenter(c.Session, c.Session.Machine(), c.PenModel, c.RootView)
	c.TrackingPresenter = presenter.NewTrackingPresenter(c.TrackingModel, c.Session, c.RootView)
	c.FramePresenter = presenter.NewFramePresenter(c.Session, c.Session, c.RootView, closeUpSize, c.Logger)
	c.Session.Machine().AddListener(func(_, next interaction.State) { c.StatePresenter.OnState(next) })
}

// Close releases the sink and the source.
func (c *Container) Close() {
	if c.Sink != nil {
		if err := c.Sink.Close(); err != nil && c.Logger != nil {
			c.Logger.Warn("display close failed", "error", err)
		}
	}
	if c.Source != nil {
		if err := c.Source.Close(); err != nil && c.Logger != nil {
			c.Logger.Warn("source close failed", "error", err)
		}
		if c.Logger != nil {
			st := c.Source.Stats()
			c.Logger.Info("capture totals", "captures", st.Captures, "failed", st.Skipped, "avg_capture", st.AvgCapture)
		}
	}
}

// trackingStatus reports live tracking: tracking phase and not paused.
type trackingStatus struct{ s *session.Session }

func (t trackingStatus) Tracking() bool {
	return t.s.Phase() == session.PhaseTracking && !t.s.Paused()
}
