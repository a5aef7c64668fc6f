// Package trace records viewpoint motion and streaming results as
// zstd-compressed JSON lines, and reads them back for replay.
package trace

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"chunkstream/world"
)

// FormatVersion is written in every header.
const FormatVersion = 1

// Header is the first line of a trace file.
type Header struct {
	Version int          `json:"version"`
	Started time.Time    `json:"started"`
	Config  world.Config `json:"config"`
}

// Entry is one tick of motion.
type Entry struct {
	Tick    uint64              `json:"tick"`
	DX      float64             `json:"dx"`
	DY      float64             `json:"dy"`
	X       float64             `json:"x"`
	Y       float64             `json:"y"`
	Crossed []world.Direction   `json:"crossed,omitempty"`
	Jumped  bool                `json:"jumped,omitempty"`
	Window  world.VisibleWindow `json:"window"`
	Built   int                 `json:"built"`
	Loaded  int                 `json:"loaded"`
	Error   string              `json:"error,omitempty"`
}

// Delta returns the motion applied during the tick.
func (e Entry) Delta() mgl64.Vec2 {
	return mgl64.Vec2{e.DX, e.DY}
}

// NewEntry captures the state of w after a Tick that moved by delta.
func NewEntry(delta mgl64.Vec2, report world.TickReport, w *world.World, tickErr error) Entry {
	e := Entry{
		Tick:    report.Tick,
		DX:      delta[0],
		DY:      delta[1],
		X:       report.Position[0],
		Y:       report.Position[1],
		Crossed: report.Crossed,
		Jumped:  report.Jumped,
		Window:  w.Window(),
		Built:   report.Built,
		Loaded:  w.Loaded(),
	}
	if tickErr != nil {
		e.Error = tickErr.Error()
	}
	return e
}
