package presenter

import (
	"context"
	"time"
)

// Engine advances the tracking pipeline by one frame.
type Engine interface {
	Step(ctx context.Context) (done bool, err error)
}

// Loop drives the engine and the feature presenters from a UI timer.
//
// Each Tick steps the engine once, refreshes the sub-presenters and, unless
// the engine finished, asks Schedule for the next tick. The zero value is
// usable (methods are nil-safe).
type Loop struct {
	Ctx      context.Context
	Engine   Engine
	Session  *SessionPresenter
	State    *StatePresenter
	Frame    *FramePresenter
	Schedule func()
	OnDone   func(err error)

	done bool
}

func NewLoop(ctx context.Context, engine Engine, sess *SessionPresenter, state *StatePresenter, frame *FramePresenter, schedule func(), onDone func(error)) *Loop {
	return &Loop{Ctx: ctx, Engine: engine, Session: sess, State: state, Frame: frame, Schedule: schedule, OnDone: onDone}
}

// Done reports whether the engine finished.
func (l *Loop) Done() bool { return l != nil && l.done }

func (l *Loop) Tick() {
	if l == nil || l.done {
		return
	}
	ctx := l.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	var err error
	if l.Engine != nil {
		l.done, err = l.Engine.Step(ctx)
	}
	now := time.Now()
	if l.State != nil {
		l.State.Tick(now)
	}
	if l.Session != nil {
		l.Session.Tick(now)
	}
	if l.Frame != nil {
		l.Frame.ProcessFrame()
	}
	if l.done {
		if l.OnDone != nil {
			l.OnDone(err)
		}
		return
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
