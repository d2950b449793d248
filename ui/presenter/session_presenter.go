package presenter

import (
	"time"

	"github.com/soocke/airpaint-go/ui/model"
)

// TrackingStatus reports whether the pen is being tracked right now.
type TrackingStatus interface{ Tracking() bool }

// SessionView displays formatted tracking and total durations.
type SessionView interface {
	SetSession(session, total time.Duration)
}

// SessionPresenter formats tracked durations from the model to the view.
type SessionPresenter struct {
	sess   *model.SessionModel
	status TrackingStatus
	view   SessionView
}

// NewSessionPresenter returns a new SessionPresenter.
func NewSessionPresenter(sess *model.SessionModel, status TrackingStatus, view SessionView) *SessionPresenter {
	return &SessionPresenter{sess: sess, status: status, view: view}
}

// Tick advances the session model and pushes values to the view.
func (p *SessionPresenter) Tick(now time.Time) {
	if p == nil || p.sess == nil || p.status == nil || p.view == nil {
		return
	}
	p.sess.OnTick(p.status.Tracking(), now)
	s, t := p.sess.Values()
	p.view.SetSession(s, t)
}
