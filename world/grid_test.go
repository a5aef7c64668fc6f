package world

import (
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
)

type countingFactory struct {
	size  float64
	calls map[ChunkCoord]int
	fail  func(c ChunkCoord) bool
}

func newCountingFactory(size float64) *countingFactory {
	return &countingFactory{size: size, calls: make(map[ChunkCoord]int)}
}

func (f *countingFactory) NewChunk(c ChunkCoord) (*Chunk, error) {
	f.calls[c]++
	if f.fail != nil && f.fail(c) {
		return nil, errors.Wrap(ErrResourceLoad, "font missing")
	}
	return NewChunk(c, f.size), nil
}

func (f *countingFactory) total() int {
	n := 0
	for _, v := range f.calls {
		n += v
	}
	return n
}

func TestChunkGridGetMissing(t *testing.T) {
	g := NewChunkGrid()
	ch, ok := g.Get(ChunkCoord{Col: 1000, Row: -1000})
	test.That(t, ok, test.ShouldBeFalse)
	test.That(t, ch, test.ShouldBeNil)
	test.That(t, g.Len(), test.ShouldEqual, 0)
}

func TestChunkGridEnsureIdempotent(t *testing.T) {
	g := NewChunkGrid()
	f := newCountingFactory(64)
	c := ChunkCoord{Col: -3, Row: 7}

	first, err := g.Ensure(c, f)
	test.That(t, err, test.ShouldBeNil)
	second, err := g.Ensure(c, f)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, second, test.ShouldEqual, first)
	test.That(t, f.calls[c], test.ShouldEqual, 1)
	test.That(t, g.Len(), test.ShouldEqual, 1)

	got, ok := g.Get(c)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, got, test.ShouldEqual, first)
	test.That(t, got.Label, test.ShouldEqual, "(-3, 7)")
	test.That(t, got.Outline, test.ShouldResemble, Rect{X: -192, Y: 448, Width: 64, Height: 64})
}

func TestChunkGridEnsureFailureLeavesGridUntouched(t *testing.T) {
	g := NewChunkGrid()
	f := newCountingFactory(64)
	f.fail = func(ChunkCoord) bool { return true }

	ch, err := g.Ensure(ChunkCoord{Col: 4, Row: 4}, f)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, errors.Is(err, ErrResourceLoad), test.ShouldBeTrue)
	test.That(t, ch, test.ShouldBeNil)
	test.That(t, g.Len(), test.ShouldEqual, 0)
	test.That(t, g.Columns(), test.ShouldBeEmpty)

	// a later attempt can still succeed
	f.fail = nil
	ch, err = g.Ensure(ChunkCoord{Col: 4, Row: 4}, f)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ch, test.ShouldNotBeNil)
	test.That(t, g.Columns(), test.ShouldResemble, []int{4})
}

func TestChunkGridEnsureRejectsNilChunk(t *testing.T) {
	g := NewChunkGrid()
	nilFactory := ChunkFactoryFunc(func(ChunkCoord) (*Chunk, error) { return nil, nil })
	_, err := g.Ensure(ChunkCoord{}, nilFactory)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, g.Len(), test.ShouldEqual, 0)
}

func TestChunkGridCovers(t *testing.T) {
	g := NewChunkGrid()
	f := PlainChunkFactory{ChunkSize: 16}
	w := VisibleWindow{MinCol: -1, MaxCol: 1, MinRow: -1, MaxRow: 1}
	for i := -1; i <= 1; i++ {
		for j := -1; j <= 1; j++ {
			if i == 1 && j == 0 {
				continue
			}
			_, err := g.Ensure(ChunkCoord{Col: i, Row: j}, f)
			test.That(t, err, test.ShouldBeNil)
		}
	}

	missing, ok := g.Covers(w)
	test.That(t, ok, test.ShouldBeFalse)
	test.That(t, missing, test.ShouldResemble, ChunkCoord{Col: 1, Row: 0})

	_, err := g.Ensure(missing, f)
	test.That(t, err, test.ShouldBeNil)
	_, ok = g.Covers(w)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, g.Columns(), test.ShouldResemble, []int{-1, 0, 1})
}

func TestChunkCoordKeyDistinct(t *testing.T) {
	seen := map[uint64]ChunkCoord{}
	for i := -3; i <= 3; i++ {
		for j := -3; j <= 3; j++ {
			c := ChunkCoord{Col: i, Row: j}
			_, dup := seen[c.Key()]
			test.That(t, dup, test.ShouldBeFalse)
			seen[c.Key()] = c
		}
	}
	// only the low 32 bits of each half take part
	test.That(t, ChunkCoord{Col: 1 << 32, Row: 5}.Key(), test.ShouldEqual, ChunkCoord{Row: 5}.Key())
}
