package view

import (
	"image"
	"log/slog"
	"time"

	"github.com/soocke/airpaint-go/config"
	"github.com/soocke/airpaint-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// RootView composes the control window layout and wires UI callbacks.
// It satisfies the presenter view contracts by forwarding to its subviews.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	Session     SessionStats
	ConfigPanel ConfigPanel
	Preview     FramePreview

	StateLabel *TLabelWidget
	PauseBtn   *TButtonWidget
	ThemeBtn   *ButtonWidget
}

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// Build constructs the layout. Handlers are invoked on user actions.
func (rv *RootView) Build(onTogglePause func(), onExit func()) {
	if rv == nil {
		return
	}
	// Row 0: session stats, state label, buttons frame
	stats := Frame()
	Grid(stats, Row(0), Column(0), Columnspan(2), Sticky("w"), Padx("0.3m"), Pady("0.3m"))
	rv.Session = NewSessionStats(stats, 0, 0)
	rv.StateLabel = TLabel(Txt("State: -"), Style(theme.StyleStateLabel))
	Grid(rv.StateLabel, Row(0), Column(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	btnFrame := Frame()
	Grid(btnFrame, Row(0), Column(4), Sticky("ne"), Padx("0.3m"), Pady("0.3m"))
	rv.PauseBtn = TButton(Txt("Pause"), Style(theme.StylePrimaryButton), Command(onTogglePause))
	Grid(rv.PauseBtn, In(btnFrame), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	rv.ThemeBtn = Button(Txt("Dark Mode"), Command(rv.toggleTheme))
	Grid(rv.ThemeBtn, In(btnFrame), Row(1), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	exitBtn := TButton(Txt("Exit"), Style(theme.StyleDangerButton), Command(onExit))
	Grid(exitBtn, In(btnFrame), Row(2), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))

	rv.ConfigPanel = NewConfigPanel(rv.cfg, rv.cfgPath, rv.logger)
	endRow := rv.ConfigPanel.Build(1)

	hint := TLabel(Txt("Settings apply to the next session."), Style(theme.StyleMutedLabel))
	Grid(hint, Row(endRow), Column(0), Columnspan(2), Sticky("w"), Padx("0.4m"))

	rv.Preview = NewFramePreview(endRow+1, defaultPreviewW, defaultPreviewH)
}

func (rv *RootView) toggleTheme() {
	label := "Dark Mode"
	if theme.ToggleDark() {
		label = "Light Mode"
	}
	if rv.ThemeBtn != nil {
		rv.ThemeBtn.Configure(Txt(label))
	}
}

// SetStateLabel updates the state label text.
func (rv *RootView) SetStateLabel(text string) {
	if rv != nil && rv.StateLabel != nil {
		rv.StateLabel.Configure(Txt(text))
	}
}

// SetPauseLabel updates the pause button caption.
func (rv *RootView) SetPauseLabel(text string) {
	if rv != nil && rv.PauseBtn != nil {
		rv.PauseBtn.Configure(Txt(text))
	}
}

func (rv *RootView) ConfigEditable(enabled bool) {
	if rv != nil && rv.ConfigPanel != nil {
		rv.ConfigPanel.SetEditable(enabled)
	}
}

func (rv *RootView) UpdatePreview(img image.Image) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.UpdatePreview(img)
	}
}

func (rv *RootView) UpdateCloseUp(img image.Image) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.UpdateCloseUp(img)
	}
}

// SetSession updates the tracked stretch and total durations.
func (rv *RootView) SetSession(session, total time.Duration) {
	if rv == nil || rv.Session == nil {
		return
	}
	rv.Session.SetSession(session)
	rv.Session.SetTotal(total)
}
