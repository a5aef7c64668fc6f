package world

import "fmt"

// VisibleWindow is the closed rectangle of chunk coordinates that should be
// drawn. Both bounds are inclusive.
type VisibleWindow struct {
	MinCol int `json:"min_col"`
	MaxCol int `json:"max_col"`
	MinRow int `json:"min_row"`
	MaxRow int `json:"max_row"`
}

// initialDrawMagnitude returns the number of chunks drawn on each side of
// the origin for a viewport dimension, truncated toward zero.
func initialDrawMagnitude(pixels, chunkSize float64, drawMargin int) int {
	return int((pixels/chunkSize)/2 + float64(drawMargin))
}

// NewVisibleWindow centers a window on chunk (0,0) sized for the viewport plus
// drawMargin chunks on every side. The margin ignores camera zoom.
func NewVisibleWindow(viewportWidth, viewportHeight, chunkSize float64, drawMargin int) VisibleWindow {
	cols := initialDrawMagnitude(viewportWidth, chunkSize, drawMargin)
	rows := initialDrawMagnitude(viewportHeight, chunkSize, drawMargin)
	return VisibleWindow{
		MinCol: -cols,
		MaxCol: cols,
		MinRow: -rows,
		MaxRow: rows,
	}
}

// Shift moves both bounds on axis by delta, which must be -1 or +1.
func (w *VisibleWindow) Shift(axis Axis, delta int) error {
	if delta != -1 && delta != 1 {
		return ErrInvalidShift
	}
	if axis == AxisRow {
		w.MinRow += delta
		w.MaxRow += delta
	} else {
		w.MinCol += delta
		w.MaxCol += delta
	}
	return nil
}

// Shifted returns a copy moved one chunk in d.
func (w VisibleWindow) Shifted(d Direction) VisibleWindow {
	_ = w.Shift(d.Axis(), d.Sign())
	return w
}

// Translated returns a copy moved by dc columns and dr rows.
func (w VisibleWindow) Translated(dc, dr int) VisibleWindow {
	w.MinCol += dc
	w.MaxCol += dc
	w.MinRow += dr
	w.MaxRow += dr
	return w
}

// Span returns the inclusive bounds on an axis.
func (w VisibleWindow) Span(axis Axis) (int, int) {
	if axis == AxisRow {
		return w.MinRow, w.MaxRow
	}
	return w.MinCol, w.MaxCol
}

// Expand grows the window by n chunks on every side.
func (w VisibleWindow) Expand(n int) VisibleWindow {
	return VisibleWindow{
		MinCol: w.MinCol - n,
		MaxCol: w.MaxCol + n,
		MinRow: w.MinRow - n,
		MaxRow: w.MaxRow + n,
	}
}

// ExpandAxis grows the window by n chunks on both ends of one axis only.
func (w VisibleWindow) ExpandAxis(axis Axis, n int) VisibleWindow {
	if axis == AxisRow {
		w.MinRow -= n
		w.MaxRow += n
	} else {
		w.MinCol -= n
		w.MaxCol += n
	}
	return w
}

// Contains reports whether c lies inside the window.
func (w VisibleWindow) Contains(c ChunkCoord) bool {
	return c.Col >= w.MinCol && c.Col <= w.MaxCol && c.Row >= w.MinRow && c.Row <= w.MaxRow
}

// Cols returns the number of columns covered.
func (w VisibleWindow) Cols() int { return w.MaxCol - w.MinCol + 1 }

// Rows returns the number of rows covered.
func (w VisibleWindow) Rows() int { return w.MaxRow - w.MinRow + 1 }

// Area returns the number of chunks covered.
func (w VisibleWindow) Area() int { return w.Cols() * w.Rows() }

func (w VisibleWindow) String() string {
	return fmt.Sprintf("cols[%d,%d] rows[%d,%d]", w.MinCol, w.MaxCol, w.MinRow, w.MaxRow)
}
