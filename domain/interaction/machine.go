package interaction

import (
	"image"
	"image/color"
	"log/slog"
)

// Classify maps p to a state. The draw box is tested first, then swatches
// in list order; the first match wins.
func Classify(z Zones, p image.Point) (State, *Swatch) {
	if p.In(z.DrawBox) {
		return StateDraw, nil
	}
	for i := range z.Swatches {
		if p.In(z.Swatches[i].Rect) {
			return StateColorSelect, &z.Swatches[i]
		}
	}
	return StateIdle, nil
}

// Machine recomputes the interaction state from the pen position each frame.
// The only carried state is the selected colour. Single goroutine use.
type Machine struct {
	zones        Zones
	policy       Policy
	defaultColor color.RGBA
	radius       int
	logger       *slog.Logger

	state     State
	selected  color.RGBA
	listeners []StateListener
}

// NewMachine returns a machine in Idle with the default colour selected.
func NewMachine(zones Zones, policy Policy, defaultColor color.RGBA, radius int, logger *slog.Logger) *Machine {
	if radius < 1 {
		radius = 1
	}
	defaultColor.A = 255
	return &Machine{zones: zones, policy: policy, defaultColor: defaultColor, radius: radius, logger: logger, selected: defaultColor}
}

// Armed reports whether a Draw classification would emit a stroke.
func (m *Machine) Armed() bool {
	if !m.policy.RequireExplicitColorBeforeDraw {
		return true
	}
	return m.selected != m.defaultColor
}

// Step classifies p, updates the selected colour and returns the outcome.
func (m *Machine) Step(p image.Point) Step {
	next, sw := Classify(m.zones, p)
	var out Step
	switch next {
	case StateDraw:
		if !m.Armed() {
			next = StateIdle
			break
		}
		out.Stroke = &Stroke{At: p, Color: m.selected, Radius: m.radius}
	case StateColorSelect:
		m.selected = sw.Color
		m.selected.A = 255
		out.Swatch = sw.Name
	}
	if next == StateIdle && m.policy.ResetColorOnIdle {
		m.selected = m.defaultColor
	}
	out.State = next
	out.Color = m.selected
	m.transition(next)
	return out
}

func (m *Machine) transition(next State) {
	prev := m.state
	if prev == next {
		return
	}
	m.state = next
	if m.logger != nil {
		m.logger.Debug("interaction state transition", "from", prev.String(), "to", next.String())
	}
	for _, l := range m.listeners {
		l(prev, next)
	}
}

// Current returns the state of the last step.
func (m *Machine) Current() State { return m.state }

// SelectedColor returns the colour strokes are drawn in.
func (m *Machine) SelectedColor() color.RGBA { return m.selected }

// DefaultColor returns the "nothing chosen" colour.
func (m *Machine) DefaultColor() color.RGBA { return m.defaultColor }

// Zones returns the layout.
func (m *Machine) Zones() Zones { return m.zones }

// AddListener registers l for state changes.
func (m *Machine) AddListener(l StateListener) {
	if l != nil {
		m.listeners = append(m.listeners, l)
	}
}

var _ MachineContract = (*Machine)(nil)
