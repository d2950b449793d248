package app

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/airpaint-go/ui/presenter"
	"github.com/soocke/airpaint-go/ui/theme"
)

const (
	tick     = 30 * time.Millisecond
	tkWidth  = 1100
	tkHeight = 860
)

// Run drives the session until it ends and releases the container. Only a
// fatal error is returned.
func Run(ctx context.Context, c *Container) error {
	defer c.Close()
	if c.TkSink == nil {
		return c.Session.Run(ctx)
	}
	return runTk(ctx, c)
}

// runTk steps the session from Tk timers so every widget update stays on the
// Tk event loop thread.
func runTk(ctx context.Context, c *Container) error {
	var (
		runErr  error
		afterID string
	)
	exit := func() { c.TkSink.RequestExit() }

	App.WmTitle(c.Config.WindowTitle)
	WmProtocol(App, "WM_DELETE_WINDOW", exit)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", tkWidth, tkHeight))
	theme.InitStyles()
	c.RootView.Build(c.TrackingPresenter.Toggle, exit)

	c.Loop = presenter.NewLoop(ctx, c.Session, c.SessionPresenter, c.StatePresenter, c.FramePresenter, nil, nil)
	c.Loop.Schedule = func() {
		afterID = TclAfter(tick, func() {
			defer recoverLog(c.Logger, "tick panic")
			c.Loop.Tick()
		})
	}
	c.Loop.OnDone = func(err error) {
		runErr = err
		if afterID != "" {
			TclAfterCancel(afterID)
		}
		Destroy(App)
	}
	c.Loop.Schedule()
	App.Wait()
	return runErr
}

func recoverLog(logger *slog.Logger, msg string) {
	if r := recover(); r != nil {
		if logger != nil {
			logger.Error(msg, "error", r, "stack", string(debug.Stack()))
		}
	}
}
