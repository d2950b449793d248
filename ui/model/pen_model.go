package model

import (
	"fmt"
	"image"
	"image/color"
)

// PenModel is the UI's view of the pen: position, interaction state and the
// selected colour. Updated on the UI tick only.
type PenModel struct {
	pos   image.Point
	state string
	color color.RGBA
	valid bool
}

func NewPenModel() *PenModel { return &PenModel{} }

// Set records the latest pen sample.
func (m *PenModel) Set(p image.Point, state string, c color.RGBA) {
	if m == nil {
		return
	}
	m.pos, m.state, m.color, m.valid = p, state, c, true
}

// Position returns the pen position and whether one was recorded.
func (m *PenModel) Position() (image.Point, bool) {
	if m == nil {
		return image.Point{}, false
	}
	return m.pos, m.valid
}

// Label formats the state line, e.g. "draw #ff0000 @ (70,70)".
func (m *PenModel) Label() string {
	if m == nil || !m.valid {
		return "-"
	}
	return fmt.Sprintf("%s #%02x%02x%02x @ (%d,%d)", m.state, m.color.R, m.color.G, m.color.B, m.pos.X, m.pos.Y)
}
