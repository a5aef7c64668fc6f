package world

import (
	"fmt"
	"math"
)

// ChunkCoord identifies a chunk by signed column and row.
type ChunkCoord struct {
	Col int
	Row int
}

// Key packs the coordinate into a single uint64 (column in the high half).
// Each half keeps the low 32 bits, so coordinates 2^32 apart share a key. It
// seeds per-chunk decoration only and must not be used to identify a chunk.
func (c ChunkCoord) Key() uint64 {
	return uint64(uint32(int32(c.Col)))<<32 | uint64(uint32(int32(c.Row)))
}

func (c ChunkCoord) String() string {
	return fmt.Sprintf("(%d, %d)", c.Col, c.Row)
}

// Rect is an axis-aligned rectangle in world pixels.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Chunk is a single cell of the world grid. Chunks are built once by a
// ChunkFactory and never modified afterwards.
type Chunk struct {
	Coord ChunkCoord

	// Outline is the chunk's square in world pixels
	Outline Rect

	// Label is the coordinate text drawn in the chunk's corner
	Label string

	// Variant is a decorative per-chunk value derived from the coordinate
	Variant uint8

	// Resource holds the presentation handle acquired while the chunk was
	// built (the label font face in the game). Nil for headless chunks.
	Resource any
}

// NewChunk builds the plain payload for a coordinate.
func NewChunk(c ChunkCoord, chunkSize float64) *Chunk {
	return &Chunk{
		Coord: c,
		Outline: Rect{
			X:      float64(c.Col) * chunkSize,
			Y:      float64(c.Row) * chunkSize,
			Width:  chunkSize,
			Height: chunkSize,
		},
		Label:   c.String(),
		Variant: uint8(mix64(c.Key()) >> 56),
	}
}

// ChunkFactory constructs the chunk for a coordinate. It may fail when a
// resource the chunk depends on cannot be acquired.
type ChunkFactory interface {
	NewChunk(c ChunkCoord) (*Chunk, error)
}

// ChunkFactoryFunc adapts a function to ChunkFactory.
type ChunkFactoryFunc func(c ChunkCoord) (*Chunk, error)

// NewChunk calls f(c).
func (f ChunkFactoryFunc) NewChunk(c ChunkCoord) (*Chunk, error) {
	return f(c)
}

// PlainChunkFactory builds chunks without presentation resources.
type PlainChunkFactory struct {
	ChunkSize float64
}

// NewChunk implements ChunkFactory and never fails.
func (f PlainChunkFactory) NewChunk(c ChunkCoord) (*Chunk, error) {
	return NewChunk(c, f.ChunkSize), nil
}

// ChunkOf returns the chunk index containing a world position on one axis.
func ChunkOf(pos, chunkSize float64) int {
	return int(math.Floor(pos / chunkSize))
}

func mix64(z uint64) uint64 {
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
