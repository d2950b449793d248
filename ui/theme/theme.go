// Package theme activates the Tk base theme and configures the semantic
// widget styles used by the airpaint control window.
package theme

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Palette is the set of resolved colours for one mode.
type Palette struct {
	AppBg     string
	Surface   string
	Border    string
	Primary   string
	Danger    string
	Accent    string
	Text      string
	TextMuted string
}

var (
	light = Palette{
		AppBg:     "#f7f9fb",
		Surface:   "#ffffff",
		Border:    "#d0d7de",
		Primary:   "#2563eb",
		Danger:    "#dc2626",
		Accent:    "#10b981",
		Text:      "#1e293b",
		TextMuted: "#64748b",
	}
	dark = Palette{
		AppBg:     "#0f172a",
		Surface:   "#1e293b",
		Border:    "#334155",
		Primary:   "#3b82f6",
		Danger:    "#ef4444",
		Accent:    "#10b981",
		Text:      "#f1f5f9",
		TextMuted: "#94a3b8",
	}
)

// Style names for Style(...) options.
const (
	StylePrimaryButton = "primary.TButton"
	StyleDangerButton  = "danger.TButton"
	StyleStateLabel    = "state.TLabel"
	StyleMutedLabel    = "muted.TLabel"
)

var darkMode bool

// Current returns the palette of the active mode.
func Current() Palette {
	if darkMode {
		return dark
	}
	return light
}

// InitStyles (re)applies styles for the current mode.
func InitStyles() { applyStyles(Current()) }

// SetDark switches mode and reapplies styles. Returns the new mode.
func SetDark(d bool) bool {
	darkMode = d
	applyStyles(Current())
	return darkMode
}

// ToggleDark flips the mode.
func ToggleDark() bool { return SetDark(!darkMode) }

// IsDark reports the current mode.
func IsDark() bool { return darkMode }

func applyStyles(p Palette) {
	_ = ActivateTheme("azure light")
	App.Configure(Background(p.AppBg))

	StyleConfigure(StylePrimaryButton,
		Background(p.Primary),
		Foreground("white"),
		Padding("4p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	StyleConfigure(StyleDangerButton,
		Background(p.Danger),
		Foreground("white"),
		Padding("4p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	StyleConfigure(StyleStateLabel,
		Foreground("white"),
		Background(p.Accent),
		Padding("4p 2p"),
		Borderwidth(1),
		Relief("groove"),
	)
	StyleConfigure(StyleMutedLabel,
		Foreground(p.TextMuted),
		Background(p.Surface),
		Padding("2p 1p"),
	)
}
