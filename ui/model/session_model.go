package model

import (
	"time"
)

// SessionModel tracks how long the pen has been actively tracked: the current
// stretch (since the last resume) and the accumulated total. Presenters poll
// Values() and update views. The zero value is ready to use.
type SessionModel struct {
	active      bool
	start       time.Time
	lastStretch time.Duration
	accumulated time.Duration
}

// NewSessionModel returns a pointer to a ready-to-use SessionModel.
func NewSessionModel() *SessionModel { return &SessionModel{} }

// OnTick advances the model given whether tracking is running at now.
func (m *SessionModel) OnTick(tracking bool, now time.Time) {
	if m == nil {
		return
	}
	if tracking {
		if !m.active {
			m.active = true
			m.start = now
			m.lastStretch = 0
		}
		m.lastStretch = now.Sub(m.start)
	} else if m.active {
		m.lastStretch = now.Sub(m.start)
		m.accumulated += m.lastStretch
		m.active = false
	}
}

// Values returns the current stretch and the total tracked time, including
// the ongoing stretch.
func (m *SessionModel) Values() (stretch, total time.Duration) {
	if m == nil {
		return 0, 0
	}
	stretch = m.lastStretch
	total = m.accumulated
	if m.active {
		total += stretch
	}
	return
}
