package config

import (
	"encoding/json"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Rect is a half-open screen rectangle [X0,X1)x[Y0,Y1) in JSON-friendly form.
type Rect struct {
	X0 int `json:"x0"`
	Y0 int `json:"y0"`
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
}

// Rectangle converts r to an image.Rectangle.
func (r Rect) Rectangle() image.Rectangle { return image.Rect(r.X0, r.Y0, r.X1, r.Y1) }

// RGB is an 8-bit colour triple.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// RGBA returns the opaque color.RGBA for c.
func (c RGB) RGBA() color.RGBA { return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255} }

// Swatch binds a screen zone to the colour it selects.
type Swatch struct {
	Name  string `json:"name"`
	Rect  Rect   `json:"rect"`
	Color RGB    `json:"color"`
}

// Config holds runtime configuration for tracking, interaction and display.
// Fields may be loaded from a JSON file and overridden by environment variables.
type Config struct {
	Debug bool `json:"debug"`

	// Frame source
	Source       string `json:"source"` // camera | video | screen
	CameraIndex  int    `json:"camera_index"`
	VideoPath    string `json:"video_path"`
	ScreenRegion Rect   `json:"screen_region"` // empty = full screen
	Mirror       bool   `json:"mirror"`

	// Display sink
	Display       string `json:"display"` // window | tk | none
	WindowTitle   string `json:"window_title"`
	PollTimeoutMs int    `json:"poll_timeout_ms"`

	// Tracking
	HSVBackend         string `json:"hsv_backend"` // opencv | go
	HueBins            int    `json:"hue_bins"`
	SatBins            int    `json:"sat_bins"`
	WarmupFrames       int    `json:"warmup_frames"`
	SampleWidthDivisor int    `json:"sample_width_divisor"`
	SearchWidthDivisor int    `json:"search_width_divisor"`
	SearchPolicy       string `json:"search_policy"` // local | global
	Smoothing          string `json:"smoothing"`     // none | kalman
	LogEveryFrames     int    `json:"log_every_frames"`

	// Interaction
	RequireExplicitColor bool     `json:"require_explicit_color"`
	ResetColorOnIdle     bool     `json:"reset_color_on_idle"`
	DefaultColor         RGB      `json:"default_color"`
	DrawBox              Rect     `json:"draw_box"`
	Swatches             []Swatch `json:"swatches"`

	// Rendering
	RenderBackend   string  `json:"render_backend"` // opencv | go
	Panels          []Rect  `json:"panels"`         // HUD frames drawn around the palette and the drawing area
	Backdrop        string  `json:"backdrop"`       // live | white
	StrokeRadius    int     `json:"stroke_radius"`
	MarkerThickness int     `json:"marker_thickness"`
	ZoneThickness   int     `json:"zone_thickness"`
	LiveWeight      float64 `json:"live_weight"`
	OverlayWeight   float64 `json:"overlay_weight"`
}

// DefaultSwatches returns the colour palette of the classic layout.
func DefaultSwatches() []Swatch {
	return []Swatch{
		{Name: "red", Rect: Rect{25, 20, 95, 215}, Color: RGB{255, 0, 0}},
		{Name: "green", Rect: Rect{110, 20, 180, 215}, Color: RGB{0, 255, 0}},
		{Name: "blue", Rect: Rect{25, 230, 95, 435}, Color: RGB{0, 0, 255}},
		{Name: "black", Rect: Rect{110, 230, 180, 435}, Color: RGB{0, 0, 0}},
	}
}

// DefaultPanels returns the palette panel and the drawing panel frames.
func DefaultPanels() []Rect {
	return []Rect{{6, 10, 206, 470}, {250, 10, 600, 470}}
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:                false,
		Source:               "camera",
		CameraIndex:          0,
		VideoPath:            "",
		Mirror:               true,
		Display:              "window",
		WindowTitle:          "Original Video",
		PollTimeoutMs:        20,
		HSVBackend:           "opencv",
		HueBins:              60,
		SatBins:              32,
		WarmupFrames:         80,
		SampleWidthDivisor:   16,
		SearchWidthDivisor:   16,
		SearchPolicy:         "local",
		Smoothing:            "none",
		LogEveryFrames:       10,
		RequireExplicitColor: true,
		ResetColorOnIdle:     false,
		DefaultColor:         RGB{255, 255, 255},
		DrawBox:              Rect{255, 15, 605, 475},
		Swatches:             DefaultSwatches(),
		RenderBackend:        "opencv",
		Panels:               DefaultPanels(),
		Backdrop:             "live",
		StrokeRadius:         10,
		MarkerThickness:      2,
		ZoneThickness:        5,
		LiveWeight:           0.5,
		OverlayWeight:        0.5,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	c.Source = strings.ToLower(strings.TrimSpace(c.Source))
	switch c.Source {
	case "camera", "video", "screen":
	default:
		c.Source = "camera"
	}
	if c.CameraIndex < 0 {
		c.CameraIndex = 0
	}
	c.Display = strings.ToLower(strings.TrimSpace(c.Display))
	switch c.Display {
	case "window", "tk", "none":
	default:
		c.Display = "window"
	}
	if c.WindowTitle == "" {
		c.WindowTitle = "Original Video"
	}
	if c.PollTimeoutMs <= 0 {
		c.PollTimeoutMs = 20
	}
	c.HSVBackend = strings.ToLower(strings.TrimSpace(c.HSVBackend))
	if c.HSVBackend != "go" {
		c.HSVBackend = "opencv"
	}
	c.RenderBackend = strings.ToLower(strings.TrimSpace(c.RenderBackend))
	if c.RenderBackend != "go" {
		c.RenderBackend = "opencv"
	}
	if c.HueBins <= 0 || c.HueBins > 180 {
		c.HueBins = 60
	}
	if c.SatBins <= 0 || c.SatBins > 256 {
		c.SatBins = 32
	}
	if c.WarmupFrames < 0 {
		c.WarmupFrames = 80
	}
	if c.SampleWidthDivisor <= 0 {
		c.SampleWidthDivisor = 16
	}
	if c.SearchWidthDivisor <= 0 {
		c.SearchWidthDivisor = 16
	}
	c.SearchPolicy = strings.ToLower(strings.TrimSpace(c.SearchPolicy))
	if c.SearchPolicy != "global" {
		c.SearchPolicy = "local"
	}
	c.Smoothing = strings.ToLower(strings.TrimSpace(c.Smoothing))
	if c.Smoothing != "kalman" {
		c.Smoothing = "none"
	}
	if c.LogEveryFrames <= 0 {
		c.LogEveryFrames = 10
	}
	if c.DrawBox.Rectangle().Empty() {
		c.DrawBox = Rect{255, 15, 605, 475}
	}
	if c.Swatches == nil {
		c.Swatches = DefaultSwatches()
	}
	if c.Panels == nil {
		c.Panels = DefaultPanels()
	}
	c.Backdrop = strings.ToLower(strings.TrimSpace(c.Backdrop))
	if c.Backdrop != "white" {
		c.Backdrop = "live"
	}
	if c.StrokeRadius <= 0 {
		c.StrokeRadius = 10
	}
	if c.MarkerThickness <= 0 {
		c.MarkerThickness = 2
	}
	if c.ZoneThickness <= 0 {
		c.ZoneThickness = 5
	}
	if c.LiveWeight < 0 || c.LiveWeight > 1 {
		c.LiveWeight = 0.5
	}
	if c.OverlayWeight < 0 || c.OverlayWeight > 1 {
		c.OverlayWeight = 0.5
	}
	return nil
}

// DefaultPath returns the config file location: $AIRPAINT_CONFIG when set,
// otherwise airpaint/config.json under the XDG config directory.
func DefaultPath() string {
	if p := os.Getenv(envConfig); p != "" {
		return p
	}
	if p, err := xdg.SearchConfigFile(filepath.Join("airpaint", "config.json")); err == nil {
		return p
	}
	return filepath.Join(xdg.ConfigHome, "airpaint", "config.json")
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return DefaultConfig(), err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format, creating
// the parent directory when needed.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
