package world

import (
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
)

func TestStreamingControllerConsecutiveCrossesExtendMargin(t *testing.T) {
	grid := NewChunkGrid()
	f := newCountingFactory(64)
	s := NewStreamingController(50, f, nil)
	window := NewVisibleWindow(1280, 720, 64, 2)
	start := window

	_, err := s.Populate(grid, window, 50)
	test.That(t, err, test.ShouldBeNil)

	for n := 1; n <= 5; n++ {
		built, err := s.OnBoundaryCross(grid, &window, Left)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, built, test.ShouldEqual, s.StripLen(window, AxisCol))
		test.That(t, window.MinCol, test.ShouldEqual, start.MinCol-n)
		test.That(t, window.MaxCol, test.ShouldEqual, start.MaxCol-n)
		test.That(t, window.MinRow, test.ShouldEqual, start.MinRow)

		edge := window.MinCol - 50
		test.That(t, edge, test.ShouldEqual, start.MinCol-50-n)
		test.That(t, grid.Has(ChunkCoord{Col: edge, Row: window.MinRow - 50}), test.ShouldBeTrue)
		test.That(t, grid.Has(ChunkCoord{Col: edge, Row: window.MaxRow + 50}), test.ShouldBeTrue)
		test.That(t, grid.Has(ChunkCoord{Col: edge, Row: window.MaxRow + 51}), test.ShouldBeFalse)
	}
}

func TestStreamingControllerRoundTripBuildsNothing(t *testing.T) {
	grid := NewChunkGrid()
	f := newCountingFactory(64)
	s := NewStreamingController(3, f, nil)
	window := VisibleWindow{MinCol: -1, MaxCol: 1, MinRow: -1, MaxRow: 1}
	_, err := s.Populate(grid, window, 3)
	test.That(t, err, test.ShouldBeNil)

	built, err := s.OnBoundaryCross(grid, &window, Up)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, built, test.ShouldEqual, 9)

	// coming back exposes an edge that is already loaded
	built, err = s.OnBoundaryCross(grid, &window, Down)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, built, test.ShouldEqual, 0)
	test.That(t, window, test.ShouldResemble, VisibleWindow{MinCol: -1, MaxCol: 1, MinRow: -1, MaxRow: 1})
}

func TestStreamingControllerFailureKeepsWindow(t *testing.T) {
	grid := NewChunkGrid()
	f := newCountingFactory(64)
	s := NewStreamingController(2, f, nil)
	window := VisibleWindow{MinCol: 0, MaxCol: 0, MinRow: 0, MaxRow: 0}
	_, err := s.Populate(grid, window, 2)
	test.That(t, err, test.ShouldBeNil)

	f.fail = func(c ChunkCoord) bool { return c.Row == -3 }
	_, err = s.OnBoundaryCross(grid, &window, Up)
	test.That(t, errors.Is(err, ErrResourceLoad), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, "backfill up at (-2, -3)")
	test.That(t, window, test.ShouldResemble, VisibleWindow{})
}
