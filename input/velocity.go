package input

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Velocity integrates held controls into a per-tick position delta.
// Holding a direction accelerates toward MaxSpeed, releasing both keys of an
// axis decays that axis toward zero by Friction per tick.
type Velocity struct {
	Acceleration float64
	MaxSpeed     float64
	Friction     float64

	v mgl64.Vec2
}

// NewVelocity returns a resting velocity model.
func NewVelocity(acceleration, maxSpeed, friction float64) *Velocity {
	return &Velocity{
		Acceleration: acceleration,
		MaxSpeed:     maxSpeed,
		Friction:     friction,
	}
}

// Step applies one tick of controls and returns the delta to move the viewpoint by.
func (m *Velocity) Step(c Controls) mgl64.Vec2 {
	m.v[1] = m.axis(m.v[1], c.Up, c.Down)
	m.v[0] = m.axis(m.v[0], c.Left, c.Right)
	return m.v
}

func (m *Velocity) axis(v float64, neg, pos bool) float64 {
	if neg {
		v = math.Max(v-m.Acceleration, -m.MaxSpeed)
	}
	if pos {
		v = math.Min(v+m.Acceleration, m.MaxSpeed)
	}
	if !neg && !pos {
		v -= math.Min(math.Abs(v), m.Friction) * sign(v)
	}
	return v
}

// Current is the velocity after the last Step.
func (m *Velocity) Current() mgl64.Vec2 {
	return m.v
}

// Moving reports whether the viewpoint is in motion.
func (m *Velocity) Moving() bool {
	return m.v[0] != 0 || m.v[1] != 0
}

// Reset stops all motion.
func (m *Velocity) Reset() {
	m.v = mgl64.Vec2{}
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
