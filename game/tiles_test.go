package game

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.viam.com/test"

	"chunkstream/world"
)

type fakeTile struct{ released int }

func defaultWindow() world.VisibleWindow {
	return world.NewVisibleWindow(1280, 720, 64, 2)
}

func TestTileCacheHoldsWindow(t *testing.T) {
	tc, err := newTileCache(4096, func(ft *fakeTile) { ft.released++ })
	test.That(t, err, test.ShouldBeNil)
	defer tc.Close()

	win := defaultWindow()
	test.That(t, win.Area(), test.ShouldEqual, 375)

	pass := func() (hits int) {
		for i := win.MinCol; i <= win.MaxCol; i++ {
			for j := win.MinRow; j <= win.MaxRow; j++ {
				c := world.ChunkCoord{Col: i, Row: j}
				if _, ok := tc.Get(c); ok {
					hits++
					continue
				}
				tc.Set(c, &fakeTile{})
			}
		}
		tc.Wait()
		return hits
	}

	test.That(t, pass(), test.ShouldEqual, 0)
	test.That(t, pass(), test.ShouldEqual, win.Area())
	test.That(t, tc.Drain(), test.ShouldEqual, 0)
}

func TestTileCacheReleasesOnDrain(t *testing.T) {
	tc, err := newTileCache(16, func(ft *fakeTile) { ft.released++ })
	test.That(t, err, test.ShouldBeNil)

	tiles := make([]*fakeTile, 8)
	for i := range tiles {
		tiles[i] = &fakeTile{}
		tc.Set(world.ChunkCoord{Col: i}, tiles[i])
	}
	tc.Wait()

	tc.Close()
	for _, ft := range tiles {
		test.That(t, ft.released, test.ShouldEqual, 1)
	}
	test.That(t, tc.Drain(), test.ShouldEqual, 0)
}

func TestTileKeyDistinguishesFarCoordinates(t *testing.T) {
	a := world.ChunkCoord{Col: 1, Row: 2}
	b := world.ChunkCoord{Col: 1 + 1<<32, Row: 2}
	test.That(t, tileKey(a), test.ShouldNotEqual, tileKey(b))
	test.That(t, tileKey(world.ChunkCoord{Col: -3, Row: 4}), test.ShouldEqual, "-3,4")
}

func TestMissingChunkLoggedOnce(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	r := &Renderer{
		logger:     zap.New(core),
		logMissing: true,
		reported:   make(map[world.ChunkCoord]struct{}),
	}
	win := defaultWindow()

	for i := 0; i < 3; i++ {
		r.reportMissing(world.ChunkCoord{Col: 12, Row: 7}, win)
	}
	r.reportMissing(world.ChunkCoord{Col: -12, Row: 7}, win)

	entries := logs.FilterMessage("chunk missing at render").All()
	test.That(t, entries, test.ShouldHaveLength, 2)
	test.That(t, entries[0].ContextMap()["chunk"], test.ShouldEqual, "(12, 7)")
	test.That(t, entries[1].ContextMap()["chunk"], test.ShouldEqual, "(-12, 7)")

	r.logMissing = false
	r.reportMissing(world.ChunkCoord{Col: 0, Row: 0}, win)
	test.That(t, logs.Len(), test.ShouldEqual, 2)
}
