package world

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Config holds the streaming parameters.
type Config struct {
	// ChunkSize is the edge length of a chunk in world pixels
	ChunkSize float64 `yaml:"chunk_size" json:"chunk_size"`

	// ViewportWidth and ViewportHeight size the initial visible window
	ViewportWidth  float64 `yaml:"viewport_width" json:"viewport_width"`
	ViewportHeight float64 `yaml:"viewport_height" json:"viewport_height"`

	// DrawMargin is the number of extra chunks drawn on each side of the viewport
	DrawMargin int `yaml:"draw_margin" json:"draw_margin"`

	// LoadMargin is the number of chunks kept loaded beyond the visible window
	LoadMargin int `yaml:"load_margin" json:"load_margin"`

	// InitialLoadMargin is the margin populated before the first frame
	InitialLoadMargin int `yaml:"initial_load_margin" json:"initial_load_margin"`

	// CrossingPolicy selects exact or single-step crossing per tick
	CrossingPolicy CrossingPolicy `yaml:"crossing_policy" json:"crossing_policy"`
}

// DefaultConfig returns the reference streaming parameters.
func DefaultConfig() Config {
	return Config{
		ChunkSize:         64,
		ViewportWidth:     1280,
		ViewportHeight:    720,
		DrawMargin:        2,
		LoadMargin:        50,
		InitialLoadMargin: 55,
		CrossingPolicy:    CrossExact,
	}
}

// Validate checks the parameters are usable.
func (c Config) Validate() error {
	var err error
	if c.ChunkSize <= 0 {
		err = multierr.Append(err, errors.Errorf("chunk_size must be positive, got %v", c.ChunkSize))
	}
	if c.ViewportWidth <= 0 || c.ViewportHeight <= 0 {
		err = multierr.Append(err, errors.Errorf("viewport must be positive, got %vx%v", c.ViewportWidth, c.ViewportHeight))
	}
	if c.DrawMargin < 0 {
		err = multierr.Append(err, errors.Errorf("draw_margin must not be negative, got %d", c.DrawMargin))
	}
	if c.LoadMargin < 0 {
		err = multierr.Append(err, errors.Errorf("load_margin must not be negative, got %d", c.LoadMargin))
	}
	if c.InitialLoadMargin < c.LoadMargin {
		err = multierr.Append(err, errors.Errorf("initial_load_margin (%d) must be at least load_margin (%d)",
			c.InitialLoadMargin, c.LoadMargin))
	}
	switch c.CrossingPolicy {
	case CrossExact, CrossSingle, "":
	default:
		err = multierr.Append(err, errors.Errorf("unknown crossing_policy %q", c.CrossingPolicy))
	}
	return err
}
