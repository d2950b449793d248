package interaction

import (
	"image"
	"image/color"

	"github.com/soocke/airpaint-go/config"
)

// State enumerates what the pen is doing this frame.
type State int

const (
	StateIdle State = iota
	StateColorSelect
	StateDraw
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateColorSelect:
		return "color-select"
	case StateDraw:
		return "draw"
	default:
		return "unknown"
	}
}

// Swatch is a screen zone that selects Color when the pen enters it.
type Swatch struct {
	Name  string
	Rect  image.Rectangle
	Color color.RGBA
}

// Zones is the static screen layout. Containment is half-open.
type Zones struct {
	DrawBox  image.Rectangle
	Swatches []Swatch
}

// ZonesFromConfig converts the configured layout.
func ZonesFromConfig(cfg *config.Config) Zones {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	z := Zones{DrawBox: cfg.DrawBox.Rectangle()}
	for _, s := range cfg.Swatches {
		z.Swatches = append(z.Swatches, Swatch{Name: s.Name, Rect: s.Rect.Rectangle(), Color: s.Color.RGBA()})
	}
	return z
}

// Policy selects between the historical arming behaviours.
type Policy struct {
	// RequireExplicitColorBeforeDraw keeps the pen disarmed until a colour
	// other than the default was selected.
	RequireExplicitColorBeforeDraw bool
	// ResetColorOnIdle makes Idle drop the selection back to the default.
	ResetColorOnIdle bool
}

// PolicyFromConfig extracts the interaction policy.
func PolicyFromConfig(cfg *config.Config) Policy {
	if cfg == nil {
		return Policy{}
	}
	return Policy{RequireExplicitColorBeforeDraw: cfg.RequireExplicitColor, ResetColorOnIdle: cfg.ResetColorOnIdle}
}

// Stroke is one mark to append to the canvas.
type Stroke struct {
	At     image.Point
	Color  color.RGBA
	Radius int
}

// Step is the outcome of one frame.
type Step struct {
	State  State
	Color  color.RGBA // selected colour after the step
	Swatch string     // swatch name on ColorSelect
	Stroke *Stroke    // non-nil on Draw
}

// StateListener is called on each state change.
type StateListener func(prev, next State)

// StateSource exposes the current state to presenters.
type StateSource interface {
	Current() State
	SelectedColor() color.RGBA
}

// MachineContract is the surface the session and presenters depend on.
type MachineContract interface {
	StateSource
	Step(p image.Point) Step
	AddListener(StateListener)
}
