package model

import (
	"sync/atomic"
)

// TrackingModel holds the user's pause toggle. The zero value is running and
// usable. Button callbacks and the tick may race, hence the atomic.
type TrackingModel struct{ paused atomic.Bool }

// Paused reports whether the user paused tracking.
func (m *TrackingModel) Paused() bool {
	if m == nil {
		return false
	}
	return m.paused.Load()
}

// SetPaused stores the flag and reports whether it changed.
func (m *TrackingModel) SetPaused(b bool) bool {
	if m == nil {
		return false
	}
	return m.paused.Swap(b) != b
}
