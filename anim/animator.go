// Package anim tracks which frame of the viewpoint sprite to show.
package anim

import (
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
)

// State selects an animation row.
type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	}
	return "unknown"
}

// Defaults for the viewpoint sprite.
const (
	DefaultFrames        = 8
	DefaultFrameDuration = 100 * time.Millisecond
)

// Animator loops through Frames frames per state, each shown for
// FrameDuration. Changing state restarts the loop at frame 0.
type Animator struct {
	clock         clock.Clock
	logger        *zap.Logger
	frames        int
	frameDuration time.Duration

	state   State
	started time.Time
}

// NewAnimator starts an idle animation at the clock's current time.
func NewAnimator(clk clock.Clock, frames int, frameDuration time.Duration, logger *zap.Logger) *Animator {
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if frames < 1 {
		frames = 1
	}
	if frameDuration <= 0 {
		frameDuration = DefaultFrameDuration
	}
	return &Animator{
		clock:         clk,
		logger:        logger,
		frames:        frames,
		frameDuration: frameDuration,
		state:         Idle,
		started:       clk.Now(),
	}
}

// SetState switches animation. Setting the current state is a no-op.
func (a *Animator) SetState(s State) {
	if s == a.state {
		return
	}
	a.logger.Debug("animation restart", zap.Stringer("from", a.state), zap.Stringer("to", s))
	a.state = s
	a.started = a.clock.Now()
}

// State returns the current animation state.
func (a *Animator) State() State {
	return a.state
}

// Frame returns the frame index to draw now.
func (a *Animator) Frame() int {
	elapsed := a.clock.Since(a.started)
	if elapsed < 0 {
		return 0
	}
	return int(elapsed/a.frameDuration) % a.frames
}

// Frames returns the loop length.
func (a *Animator) Frames() int {
	return a.frames
}
