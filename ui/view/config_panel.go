package view

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/airpaint-go/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ConfigPanel is the settings form. Changes are validated and saved to the
// config file; they take effect with the next session.
type ConfigPanel interface {
	Build(startRow int) (endRow int) // constructs widgets starting at startRow, returns next free row
	SetEditable(enabled bool)
	ApplyChanges() error
}

type configPanel struct {
	cfg      *config.Config
	cfgPath  string
	logger   *slog.Logger
	applyBtn *ButtonWidget
	widgets  map[string]*TextWidget
}

// NewConfigPanel creates the view bound to cfg.
func NewConfigPanel(cfg *config.Config, cfgPath string, logger *slog.Logger) ConfigPanel {
	return &configPanel{cfg: cfg, cfgPath: cfgPath, logger: logger, widgets: make(map[string]*TextWidget)}
}

func (v *configPanel) Build(startRow int) (row int) {
	c := v.cfg
	row = startRow
	makeRow := func(id, label, value string) {
		lbl := Label(Txt(label), Anchor("w"))
		Grid(lbl, Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := Text(Height(1), Width(16))
		Grid(w, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		w.Delete("1.0", END)
		w.Insert("1.0", value)
		v.widgets[id] = w
		row++
	}
	makeRow("searchPolicy", "Search Policy (local/global)", c.SearchPolicy)
	makeRow("smoothing", "Smoothing (none/kalman)", c.Smoothing)
	makeRow("hsvBackend", "HSV Backend (opencv/go)", c.HSVBackend)
	makeRow("renderBackend", "Render Backend (opencv/go)", c.RenderBackend)
	makeRow("warmupFrames", "Warm-up Frames", strconv.Itoa(c.WarmupFrames))
	makeRow("sampleWidthDivisor", "Sample Width Divisor", strconv.Itoa(c.SampleWidthDivisor))
	makeRow("searchWidthDivisor", "Search Width Divisor", strconv.Itoa(c.SearchWidthDivisor))
	makeRow("hueBins", "Hue Bins", strconv.Itoa(c.HueBins))
	makeRow("satBins", "Saturation Bins", strconv.Itoa(c.SatBins))
	makeRow("strokeRadius", "Stroke Radius", strconv.Itoa(c.StrokeRadius))
	makeRow("backdrop", "Backdrop (live/white)", c.Backdrop)
	makeRow("liveWeight", "Live Weight", fmt.Sprintf("%.2f", c.LiveWeight))
	makeRow("overlayWeight", "Overlay Weight", fmt.Sprintf("%.2f", c.OverlayWeight))
	makeRow("requireExplicitColor", "Require Colour Before Draw (true/false)", fmt.Sprintf("%t", c.RequireExplicitColor))
	makeRow("resetColorOnIdle", "Reset Colour On Idle (true/false)", fmt.Sprintf("%t", c.ResetColorOnIdle))
	makeRow("mirror", "Mirror (true/false)", fmt.Sprintf("%t", c.Mirror))
	v.applyBtn = Button(Txt("Apply Changes"), Command(func() { _ = v.ApplyChanges() }))
	Grid(v.applyBtn, Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++
	v.SetEditable(false)
	return row
}

func (v *configPanel) SetEditable(enabled bool) {
	state := "disabled"
	if enabled {
		state = "normal"
	}
	for _, w := range v.widgets {
		if w != nil {
			w.Configure(State(state))
		}
	}
	if v.applyBtn != nil {
		v.applyBtn.Configure(State(state))
	}
}

func (v *configPanel) text(id string) (string, bool) {
	w := v.widgets[id]
	if w == nil {
		return "", false
	}
	return strings.TrimSpace(strings.Join(w.Get("1.0", END), "")), true
}

func (v *configPanel) ApplyChanges() error {
	if v.cfg == nil {
		return nil
	}
	cfg := *v.cfg
	cfg.Swatches = append([]config.Swatch(nil), v.cfg.Swatches...)
	cfg.Panels = append([]config.Rect(nil), v.cfg.Panels...)
	applyFields(&cfg, v.text)
	if err := cfg.Validate(); err != nil {
		return err
	}
	*v.cfg = cfg
	if err := v.cfg.Save(v.cfgPath); err != nil {
		if v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
		return err
	}
	if v.logger != nil {
		v.logger.Info("config saved, applies to the next session", "path", v.cfgPath)
	}
	return nil
}

// applyFields copies every parsable field value into cfg. Unparsable or
// missing fields leave the current value.
func applyFields(cfg *config.Config, field func(id string) (string, bool)) {
	assignString := func(id string, dst *string) {
		if s, ok := field(id); ok && s != "" {
			*dst = s
		}
	}
	assignFloat := func(id string, dst *float64) {
		if s, ok := field(id); ok {
			if f, ok := parseFloatField(s); ok {
				*dst = f
			}
		}
	}
	assignInt := func(id string, dst *int) {
		if s, ok := field(id); ok {
			if i, ok := parseIntField(s); ok {
				*dst = i
			}
		}
	}
	assignBool := func(id string, dst *bool) {
		if s, ok := field(id); ok {
			if b, ok := parseBoolLoose(s); ok {
				*dst = b
			}
		}
	}
	assignString("searchPolicy", &cfg.SearchPolicy)
	assignString("smoothing", &cfg.Smoothing)
	assignString("hsvBackend", &cfg.HSVBackend)
	assignString("renderBackend", &cfg.RenderBackend)
	assignInt("warmupFrames", &cfg.WarmupFrames)
	assignInt("sampleWidthDivisor", &cfg.SampleWidthDivisor)
	assignInt("searchWidthDivisor", &cfg.SearchWidthDivisor)
	assignInt("hueBins", &cfg.HueBins)
	assignInt("satBins", &cfg.SatBins)
	assignInt("strokeRadius", &cfg.StrokeRadius)
	assignString("backdrop", &cfg.Backdrop)
	assignFloat("liveWeight", &cfg.LiveWeight)
	assignFloat("overlayWeight", &cfg.OverlayWeight)
	assignBool("requireExplicitColor", &cfg.RequireExplicitColor)
	assignBool("resetColorOnIdle", &cfg.ResetColorOnIdle)
	assignBool("mirror", &cfg.Mirror)
}

func parseFloatField(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func parseIntField(s string) (int, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return i, true
}

func parseBoolLoose(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "on", "t":
		return true, true
	case "false", "0", "no", "n", "off", "f":
		return false, true
	default:
		return false, false
	}
}
