// Package config loads chunkstream settings from YAML.
package config

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"chunkstream/world"
)

// Config holds every tunable of the game and the replay tool.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Stream  world.Config  `yaml:"stream"`
	Motion  MotionConfig  `yaml:"motion"`
	Camera  CameraConfig  `yaml:"camera"`
	Render  RenderConfig  `yaml:"render"`
	Runtime RuntimeConfig `yaml:"runtime"`
	Trace   TraceConfig   `yaml:"trace"`
	Profile ProfileConfig `yaml:"profile"`
	Script  ScriptConfig  `yaml:"script"`
	Log     LogConfig     `yaml:"log"`
}

// WindowConfig sizes the game window
type WindowConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	Resizable bool   `yaml:"resizable"`
}

// MotionConfig drives the viewpoint velocity model, in pixels per tick.
type MotionConfig struct {
	Acceleration float64 `yaml:"acceleration"`
	MaxSpeed     float64 `yaml:"max_speed"`
	Friction     float64 `yaml:"friction"`
}

// CameraConfig holds the zoom (camera scale) limits.
type CameraConfig struct {
	Zoom     float64 `yaml:"zoom"`
	MinZoom  float64 `yaml:"min_zoom"`
	MaxZoom  float64 `yaml:"max_zoom"`
	ZoomStep float64 `yaml:"zoom_step"`
}

// RenderConfig configures chunk drawing.
type RenderConfig struct {
	// FontPath is a TTF/OTF file for chunk labels. Empty uses the embedded Go Mono.
	FontPath string  `yaml:"font_path"`
	FontSize float64 `yaml:"font_size"`

	// TileCacheSize bounds the number of pre-rendered chunk tiles kept in memory
	TileCacheSize int64 `yaml:"tile_cache_size"`

	// LogMissing logs chunks absent from the grid at draw time
	LogMissing bool `yaml:"log_missing"`
}

// RuntimeConfig controls the game loop.
type RuntimeConfig struct {
	TPS int `yaml:"tps"`

	// MaxStreamFailures is how many consecutive failing ticks end the game
	MaxStreamFailures int `yaml:"max_stream_failures"`
}

// TraceConfig enables motion trace recording when Dir is set.
type TraceConfig struct {
	Dir string `yaml:"dir"`
}

// ProfileConfig captures a CPU profile when a tick's streaming work exceeds the budget.
type ProfileConfig struct {
	Dir          string `yaml:"dir"`
	TickBudgetMS int    `yaml:"tick_budget_ms"`
}

// ScriptConfig points at a JavaScript motion script used instead of the keyboard.
type ScriptConfig struct {
	Path string `yaml:"path"`
}

// LogConfig sets the zap level.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the reference configuration.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:     1280,
			Height:    720,
			Title:     "chunkstream",
			Resizable: false,
		},
		Stream: world.DefaultConfig(),
		Motion: MotionConfig{
			Acceleration: 0.5,
			MaxSpeed:     5,
			Friction:     0.5,
		},
		Camera: CameraConfig{
			Zoom:     2,
			MinZoom:  1,
			MaxZoom:  2,
			ZoomStep: 0.1,
		},
		Render: RenderConfig{
			FontSize:      12,
			TileCacheSize: 4096,
			LogMissing:    true,
		},
		Runtime: RuntimeConfig{
			TPS:               60,
			MaxStreamFailures: 30,
		},
		Profile: ProfileConfig{
			Dir:          "profiles",
			TickBudgetMS: 0,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads a YAML file on top of Default. The document is checked against
// the embedded schema before it is decoded.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config")
	}
	cfg, err := Parse(raw)
	if err != nil {
		return Config{}, errors.Wrapf(err, "%s", path)
	}
	return cfg, nil
}

// Parse decodes a YAML document on top of Default.
func Parse(raw []byte) (Config, error) {
	if err := validateSchema(raw); err != nil {
		return Config{}, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// normalize fills values derived from other sections.
func (c *Config) normalize() {
	if c.Stream.ViewportWidth == 0 {
		c.Stream.ViewportWidth = float64(c.Window.Width)
	}
	if c.Stream.ViewportHeight == 0 {
		c.Stream.ViewportHeight = float64(c.Window.Height)
	}
	if c.Stream.CrossingPolicy == "" {
		c.Stream.CrossingPolicy = world.CrossExact
	}
}

// Validate checks cross-field constraints the schema cannot express.
func (c Config) Validate() error {
	err := c.Stream.Validate()
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		err = multierr.Append(err, errors.Errorf("window must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Camera.MinZoom <= 0 || c.Camera.MinZoom > c.Camera.MaxZoom {
		err = multierr.Append(err, errors.Errorf("camera zoom range [%v, %v] is invalid", c.Camera.MinZoom, c.Camera.MaxZoom))
	} else if c.Camera.Zoom < c.Camera.MinZoom || c.Camera.Zoom > c.Camera.MaxZoom {
		err = multierr.Append(err, errors.Errorf("camera zoom %v outside [%v, %v]", c.Camera.Zoom, c.Camera.MinZoom, c.Camera.MaxZoom))
	}
	if c.Motion.MaxSpeed < 0 || c.Motion.Acceleration < 0 || c.Motion.Friction < 0 {
		err = multierr.Append(err, errors.New("motion parameters must not be negative"))
	}
	if c.Render.FontSize <= 0 {
		err = multierr.Append(err, errors.Errorf("font_size must be positive, got %v", c.Render.FontSize))
	}
	if c.Runtime.TPS <= 0 {
		err = multierr.Append(err, errors.Errorf("tps must be positive, got %d", c.Runtime.TPS))
	}
	return err
}
