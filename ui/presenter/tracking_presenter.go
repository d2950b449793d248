package presenter

// PauseModel holds the pause toggle.
type PauseModel interface {
	Paused() bool
	SetPaused(bool) bool
}

// Pausable is the part of the engine that can freeze tracking.
type Pausable interface{ SetPaused(bool) }

// TrackingView updates UI elements affected by pausing.
type TrackingView interface {
	SetPauseLabel(string)
	ConfigEditable(bool)
}

// TrackingPresenter owns the pause/resume button logic.
type TrackingPresenter struct {
	model  PauseModel
	engine Pausable
	view   TrackingView
}

func NewTrackingPresenter(m PauseModel, engine Pausable, view TrackingView) *TrackingPresenter {
	return &TrackingPresenter{model: m, engine: engine, view: view}
}

// Pause freezes the pen and unlocks the config panel. Idempotent.
func (p *TrackingPresenter) Pause() {
	if p == nil || p.model == nil || p.engine == nil || p.view == nil {
		return
	}
	if !p.model.SetPaused(true) {
		return
	}
	p.engine.SetPaused(true)
	p.view.SetPauseLabel("Resume")
	p.view.ConfigEditable(true)
}

// Resume continues tracking and locks the config panel. Idempotent.
func (p *TrackingPresenter) Resume() {
	if p == nil || p.model == nil || p.engine == nil || p.view == nil {
		return
	}
	if !p.model.SetPaused(false) {
		return
	}
	p.engine.SetPaused(false)
	p.view.SetPauseLabel("Pause")
	p.view.ConfigEditable(false)
}

// Toggle flips between Pause and Resume.
func (p *TrackingPresenter) Toggle() {
	if p == nil || p.model == nil {
		return
	}
	if p.model.Paused() {
		p.Resume()
		return
	}
	p.Pause()
}
