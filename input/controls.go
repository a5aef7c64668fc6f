// Package input turns held controls into viewpoint motion.
package input

import (
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Controls is the set of movement inputs held during one tick.
type Controls struct {
	Up    bool `json:"up"`
	Down  bool `json:"down"`
	Left  bool `json:"left"`
	Right bool `json:"right"`
}

// Any reports whether any movement input is held.
func (c Controls) Any() bool {
	return c.Up || c.Down || c.Left || c.Right
}

func (c Controls) String() string {
	var held []string
	if c.Up {
		held = append(held, "up")
	}
	if c.Down {
		held = append(held, "down")
	}
	if c.Left {
		held = append(held, "left")
	}
	if c.Right {
		held = append(held, "right")
	}
	if len(held) == 0 {
		return "none"
	}
	return strings.Join(held, "+")
}

// Source yields the controls for a tick. The position is the viewpoint
// before the tick's motion is applied.
type Source interface {
	Controls(tick uint64, pos mgl64.Vec2) (Controls, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(tick uint64, pos mgl64.Vec2) (Controls, error)

// Controls calls f.
func (f SourceFunc) Controls(tick uint64, pos mgl64.Vec2) (Controls, error) {
	return f(tick, pos)
}
