package world

import (
	"sort"

	"github.com/pkg/errors"
)

// ChunkGrid is a sparse two-level mapping from column, then row, to chunk.
// It has a single writer (the world's tick) and is not safe for concurrent use.
type ChunkGrid struct {
	cols  map[int]map[int]*Chunk
	count int
}

// NewChunkGrid creates an empty grid
func NewChunkGrid() *ChunkGrid {
	return &ChunkGrid{
		cols: make(map[int]map[int]*Chunk),
	}
}

// Get returns the chunk at c, or false if it was never loaded.
func (g *ChunkGrid) Get(c ChunkCoord) (*Chunk, bool) {
	col, ok := g.cols[c.Col]
	if !ok {
		return nil, false
	}
	ch, ok := col[c.Row]
	return ch, ok
}

// Has reports whether a chunk exists at c.
func (g *ChunkGrid) Has(c ChunkCoord) bool {
	_, ok := g.Get(c)
	return ok
}

// Ensure returns the chunk at c, building it with factory if absent.
// A failed build leaves the grid untouched.
func (g *ChunkGrid) Ensure(c ChunkCoord, factory ChunkFactory) (*Chunk, error) {
	if ch, ok := g.Get(c); ok {
		return ch, nil
	}

	ch, err := factory.NewChunk(c)
	if err != nil {
		return nil, errors.Wrapf(err, "build chunk %s", c)
	}
	if ch == nil {
		return nil, errors.Errorf("build chunk %s: factory returned nil", c)
	}

	// Only touch the maps once the chunk is complete.
	col, ok := g.cols[c.Col]
	if !ok {
		col = make(map[int]*Chunk)
		g.cols[c.Col] = col
	}
	col[c.Row] = ch
	g.count++
	return ch, nil
}

// Len returns the number of loaded chunks.
func (g *ChunkGrid) Len() int {
	return g.count
}

// Columns returns the loaded column indices in ascending order.
func (g *ChunkGrid) Columns() []int {
	cols := make([]int, 0, len(g.cols))
	for c := range g.cols {
		cols = append(cols, c)
	}
	sort.Ints(cols)
	return cols
}

// Covers reports whether every coordinate in w is loaded, along with the
// first missing coordinate when it is not.
func (g *ChunkGrid) Covers(w VisibleWindow) (ChunkCoord, bool) {
	for i := w.MinCol; i <= w.MaxCol; i++ {
		col, ok := g.cols[i]
		for j := w.MinRow; j <= w.MaxRow; j++ {
			if !ok {
				return ChunkCoord{Col: i, Row: j}, false
			}
			if _, found := col[j]; !found {
				return ChunkCoord{Col: i, Row: j}, false
			}
		}
	}
	return ChunkCoord{}, true
}
