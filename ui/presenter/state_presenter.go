package presenter

import (
	"image"
	"image/color"
	"time"

	"github.com/soocke/airpaint-go/domain/interaction"
	"github.com/soocke/airpaint-go/ui/model"
)

// PenSource provides the current pen sample.
type PenSource interface {
	Pen() image.Point
}

// ColorSource reports the selected colour.
type ColorSource interface {
	Current() interaction.State
	SelectedColor() color.RGBA
}

// StateView sets the state label in the view.
type StateView interface{ SetStateLabel(string) }

// StatePresenter receives interaction transitions and reflects the latest
// state, colour and pen position on each tick.
type StatePresenter struct {
	pen     PenSource
	machine ColorSource
	model   *model.PenModel
	view    StateView
	latest  string // last label pushed to the view
	pending []interaction.State
}

func NewStatePresenter(pen PenSource, machine ColorSource, m *model.PenModel, view StateView) *StatePresenter {
	return &StatePresenter{pen: pen, machine: machine, model: m, view: view}
}

// OnState queues a transitioned state from the machine listener.
func (p *StatePresenter) OnState(s interaction.State) {
	if p == nil {
		return
	}
	p.pending = append(p.pending, s)
}

// Tick drains queued transitions and updates the label when it changed.
func (p *StatePresenter) Tick(now time.Time) {
	if p == nil || p.pen == nil || p.machine == nil || p.view == nil {
		return
	}
	state := p.machine.Current()
	if len(p.pending) > 0 {
		state = p.pending[len(p.pending)-1]
		p.pending = p.pending[:0]
	}
	p.model.Set(p.pen.Pen(), state.String(), p.machine.SelectedColor())
	label := "State: " + p.model.Label()
	if label != p.latest {
		p.latest = label
		p.view.SetStateLabel(label)
	}
}
