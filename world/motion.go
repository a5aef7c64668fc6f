package world

import (
	"github.com/go-gl/mathgl/mgl64"
)

// CrossingPolicy controls how many boundary crosses a single tick may emit per axis.
type CrossingPolicy string

const (
	// CrossExact emits one cross for every chunk boundary actually passed.
	CrossExact CrossingPolicy = "exact"

	// CrossSingle emits at most one cross per axis per tick. Motion faster
	// than one chunk per tick is caught up over the following ticks.
	CrossSingle CrossingPolicy = "single"
)

// BoundaryCrossings compares two positions and returns at most one direction
// per axis, vertical first. Magnitude beyond one chunk is ignored.
func BoundaryCrossings(oldPos, newPos mgl64.Vec2, chunkSize float64) []Direction {
	var out []Direction
	if d := sign(ChunkOf(newPos.Y(), chunkSize) - ChunkOf(oldPos.Y(), chunkSize)); d != 0 {
		out = append(out, DirectionOf(AxisRow, d))
	}
	if d := sign(ChunkOf(newPos.X(), chunkSize) - ChunkOf(oldPos.X(), chunkSize)); d != 0 {
		out = append(out, DirectionOf(AxisCol, d))
	}
	return out
}

// MotionTracker turns viewpoint positions into boundary crosses. It remembers
// the chunk the window was last committed to, so a cross that could not be
// applied is produced again on the next call.
type MotionTracker struct {
	chunkSize float64
	policy    CrossingPolicy
	committed ChunkCoord
}

// NewMotionTracker creates a tracker whose viewpoint starts at pos.
func NewMotionTracker(pos mgl64.Vec2, chunkSize float64, policy CrossingPolicy) *MotionTracker {
	if policy == "" {
		policy = CrossExact
	}
	return &MotionTracker{
		chunkSize: chunkSize,
		policy:    policy,
		committed: ChunkCoord{
			Col: ChunkOf(pos.X(), chunkSize),
			Row: ChunkOf(pos.Y(), chunkSize),
		},
	}
}

// Committed returns the chunk the tracker last committed to.
func (t *MotionTracker) Committed() ChunkCoord {
	return t.committed
}

// Offset returns how far, in chunks, pos lies from the committed chunk.
func (t *MotionTracker) Offset(pos mgl64.Vec2) ChunkCoord {
	return ChunkCoord{
		Col: ChunkOf(pos.X(), t.chunkSize) - t.committed.Col,
		Row: ChunkOf(pos.Y(), t.chunkSize) - t.committed.Row,
	}
}

// Policy returns the tracker's crossing policy.
func (t *MotionTracker) Policy() CrossingPolicy {
	return t.policy
}

// Pending returns the crosses needed to bring the committed chunk to the
// chunk containing pos. Rows are listed before columns.
func (t *MotionTracker) Pending(pos mgl64.Vec2) []Direction {
	target := ChunkCoord{
		Col: ChunkOf(pos.X(), t.chunkSize),
		Row: ChunkOf(pos.Y(), t.chunkSize),
	}
	var out []Direction
	out = t.appendAxis(out, AxisRow, target.Row-t.committed.Row)
	out = t.appendAxis(out, AxisCol, target.Col-t.committed.Col)
	return out
}

func (t *MotionTracker) appendAxis(out []Direction, axis Axis, diff int) []Direction {
	if diff == 0 {
		return out
	}
	steps := abs(diff)
	if t.policy == CrossSingle {
		steps = 1
	}
	d := DirectionOf(axis, sign(diff))
	for i := 0; i < steps; i++ {
		out = append(out, d)
	}
	return out
}

// Jump commits a move of off chunks in one step.
func (t *MotionTracker) Jump(off ChunkCoord) {
	t.committed.Col += off.Col
	t.committed.Row += off.Row
}

// Commit records that one cross in d was applied.
func (t *MotionTracker) Commit(d Direction) {
	if d.Axis() == AxisRow {
		t.committed.Row += d.Sign()
	} else {
		t.committed.Col += d.Sign()
	}
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
