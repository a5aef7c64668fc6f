package world

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// World owns the chunk grid, the visible window and the viewpoint position.
// It is driven by one Tick per simulation step and read by the renderer
// between ticks.
type World struct {
	config     Config
	grid       *ChunkGrid
	window     VisibleWindow
	controller *StreamingController
	tracker    *MotionTracker
	position   mgl64.Vec2

	tick     uint64
	lastAxis Axis
	logger   *zap.Logger
}

// TickReport describes the streaming work done by one Tick.
type TickReport struct {
	Tick     uint64
	Position mgl64.Vec2
	Crossed  []Direction
	Built    int
	Elapsed  time.Duration

	// Jumped is set when the window was moved straight to the viewpoint
	// instead of cross by cross.
	Jumped bool
}

// New creates a world centered on the origin and synchronously loads the
// initial window plus its margin. Any construction failure is returned.
func New(cfg Config, factory ChunkFactory, logger *zap.Logger) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid world config")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	w := &World{
		config:     cfg,
		grid:       NewChunkGrid(),
		window:     NewVisibleWindow(cfg.ViewportWidth, cfg.ViewportHeight, cfg.ChunkSize, cfg.DrawMargin),
		controller: NewStreamingController(cfg.LoadMargin, factory, logger),
		tracker:    NewMotionTracker(mgl64.Vec2{}, cfg.ChunkSize, cfg.CrossingPolicy),
		logger:     logger,
	}

	start := time.Now()
	built, err := w.controller.Populate(w.grid, w.window, cfg.InitialLoadMargin)
	if err != nil {
		return nil, err
	}
	logger.Info("world ready",
		zap.Stringer("window", w.window),
		zap.Int("chunks", built),
		zap.Duration("elapsed", time.Since(start)))
	return w, nil
}

// Tick moves the viewpoint by delta and applies every pending boundary cross.
// The position always advances. If a cross fails the remaining crosses are
// skipped and will be retried on the next tick.
//
// Under the exact policy a move further than the window span plus the load
// margin on either axis is not walked: the window jumps to the viewpoint and
// the area around it is populated instead.
func (w *World) Tick(delta mgl64.Vec2) (TickReport, error) {
	start := time.Now()
	w.tick++
	w.position = w.position.Add(delta)

	report := TickReport{Tick: w.tick, Position: w.position}
	if off := w.tracker.Offset(w.position); w.tracker.Policy() == CrossExact && w.beyondWalk(off) {
		return w.jump(off, report, start)
	}
	for _, d := range w.tracker.Pending(w.position) {
		built, err := w.controller.OnBoundaryCross(w.grid, &w.window, d)
		report.Built += built
		if err != nil {
			report.Elapsed = time.Since(start)
			w.logger.Warn("boundary cross failed",
				zap.Uint64("tick", w.tick),
				zap.Stringer("direction", d),
				zap.Stringer("window", w.window),
				zap.Error(err))
			return report, err
		}
		w.tracker.Commit(d)
		w.lastAxis = d.Axis()
		report.Crossed = append(report.Crossed, d)
	}
	report.Elapsed = time.Since(start)

	if len(report.Crossed) > 0 {
		w.logger.Debug("window moved",
			zap.Uint64("tick", w.tick),
			zap.Stringers("crossed", report.Crossed),
			zap.Stringer("window", w.window),
			zap.Int("built", report.Built))
	}
	return report, nil
}

// beyondWalk reports whether off is too far to reach cross by cross.
func (w *World) beyondWalk(off ChunkCoord) bool {
	return abs(off.Col) > w.window.Cols()+w.config.LoadMargin ||
		abs(off.Row) > w.window.Rows()+w.config.LoadMargin
}

// jump moves the window by off in one step. Like a cross it is committed only
// once the window and its load margin are fully populated.
func (w *World) jump(off ChunkCoord, report TickReport, start time.Time) (TickReport, error) {
	target := w.window.Translated(off.Col, off.Row)
	built, err := w.controller.Populate(w.grid, target, w.config.LoadMargin)
	report.Built = built
	report.Elapsed = time.Since(start)
	if err != nil {
		w.logger.Warn("window jump failed",
			zap.Uint64("tick", w.tick),
			zap.Stringer("target", target),
			zap.Error(err))
		return report, err
	}

	w.window = target
	w.tracker.Jump(off)
	report.Jumped = true
	w.logger.Debug("window jumped",
		zap.Uint64("tick", w.tick),
		zap.Stringer("window", w.window),
		zap.Int("built", built))
	return report, nil
}

// VisitWindow calls fn for every coordinate of the visible window, column by
// column. Chunks that are not loaded are passed as nil. It returns how many
// were missing.
func (w *World) VisitWindow(fn func(c ChunkCoord, ch *Chunk)) int {
	missing := 0
	for i := w.window.MinCol; i <= w.window.MaxCol; i++ {
		for j := w.window.MinRow; j <= w.window.MaxRow; j++ {
			c := ChunkCoord{Col: i, Row: j}
			ch, ok := w.grid.Get(c)
			if !ok {
				missing++
				ch = nil
			}
			fn(c, ch)
		}
	}
	return missing
}

// Get returns the loaded chunk at c.
func (w *World) Get(c ChunkCoord) (*Chunk, bool) {
	return w.grid.Get(c)
}

// Window returns the current visible window.
func (w *World) Window() VisibleWindow {
	return w.window
}

// Position returns the viewpoint position in world pixels.
func (w *World) Position() mgl64.Vec2 {
	return w.position
}

// Loaded returns the number of chunks in the grid.
func (w *World) Loaded() int {
	return w.grid.Len()
}

// CurrentTick returns the number of ticks processed.
func (w *World) CurrentTick() uint64 {
	return w.tick
}

// LastAxis returns the axis of the most recent successful cross.
func (w *World) LastAxis() Axis {
	return w.lastAxis
}

// Config returns the world's streaming configuration.
func (w *World) Config() Config {
	return w.config
}

// CheckCoverage verifies that the visible window expanded by the load margin
// is fully loaded, returning the first gap.
func (w *World) CheckCoverage() error {
	area := w.window.Expand(w.config.LoadMargin)
	if c, ok := w.grid.Covers(area); !ok {
		return errors.Errorf("chunk %s missing inside %s", c, area)
	}
	return nil
}
