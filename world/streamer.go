package world

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// StreamingController keeps chunks loaded ahead of the visible window. It
// holds no per-call state: every cross recomputes the strip from the window
// it is given.
type StreamingController struct {
	LoadMargin int
	Factory    ChunkFactory

	logger *zap.Logger
}

// NewStreamingController creates a controller that keeps loadMargin chunks
// loaded beyond the window.
func NewStreamingController(loadMargin int, factory ChunkFactory, logger *zap.Logger) *StreamingController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StreamingController{
		LoadMargin: loadMargin,
		Factory:    factory,
		logger:     logger,
	}
}

// Populate loads every chunk in window expanded by margin.
func (s *StreamingController) Populate(grid *ChunkGrid, window VisibleWindow, margin int) (int, error) {
	area := window.Expand(margin)
	before := grid.Len()
	for i := area.MinCol; i <= area.MaxCol; i++ {
		for j := area.MinRow; j <= area.MaxRow; j++ {
			if _, err := grid.Ensure(ChunkCoord{Col: i, Row: j}, s.Factory); err != nil {
				return grid.Len() - before, errors.Wrapf(err, "populate %s", area)
			}
		}
	}
	built := grid.Len() - before
	s.logger.Debug("populated grid", zap.Stringer("area", area), zap.Int("built", built))
	return built, nil
}

// OnBoundaryCross shifts window one chunk in d and loads the strip of chunks
// that becomes the new far edge of the load margin. The shift is committed
// only if the whole strip was loaded; chunks built before a failure stay in
// the grid. It returns the number of chunks built.
func (s *StreamingController) OnBoundaryCross(grid *ChunkGrid, window *VisibleWindow, d Direction) (int, error) {
	next := window.Shifted(d)
	axis := d.Axis()

	lo, hi := next.Span(axis)
	edge := hi + s.LoadMargin
	if d.Sign() < 0 {
		edge = lo - s.LoadMargin
	}

	otherLo, otherHi := next.Span(axis.Other())
	built := 0
	for k := otherLo - s.LoadMargin; k <= otherHi+s.LoadMargin; k++ {
		c := ChunkCoord{Col: edge, Row: k}
		if axis == AxisRow {
			c = ChunkCoord{Col: k, Row: edge}
		}
		if grid.Has(c) {
			continue
		}
		if _, err := grid.Ensure(c, s.Factory); err != nil {
			return built, &BackfillError{Dir: d, Coord: c, Err: err}
		}
		built++
	}

	*window = next
	return built, nil
}

// StripLen returns how many coordinates a cross on axis visits for window w.
func (s *StreamingController) StripLen(w VisibleWindow, axis Axis) int {
	lo, hi := w.Span(axis.Other())
	return hi - lo + 1 + 2*s.LoadMargin
}
