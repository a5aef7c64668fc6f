package game

import (
	"strconv"
	"sync"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/pkg/errors"

	"chunkstream/world"
)

// tileCache holds pre-rendered chunk tiles, at most size of them. Tiles that
// leave the cache are not released where ristretto drops them, on its own
// goroutine, but queued until the render loop calls Drain.
type tileCache[V any] struct {
	cache   *ristretto.Cache[string, V]
	release func(V)

	mu      sync.Mutex
	retired []V
}

func newTileCache[V any](size int64, release func(V)) (*tileCache[V], error) {
	tc := &tileCache[V]{release: release}
	retire := func(item *ristretto.Item[V]) {
		tc.mu.Lock()
		tc.retired = append(tc.retired, item.Value)
		tc.mu.Unlock()
	}
	cache, err := ristretto.NewCache(&ristretto.Config[string, V]{
		NumCounters: 10 * size,
		MaxCost:     size,
		BufferItems: 64,
		// Every tile costs 1, so MaxCost is a tile count.
		IgnoreInternalCost: true,
		OnEvict:            retire,
		OnReject:           retire,
	})
	if err != nil {
		return nil, errors.Wrap(err, "tile cache")
	}
	tc.cache = cache
	return tc, nil
}

// tileKey is the cache key of the tile for c.
func tileKey(c world.ChunkCoord) string {
	return strconv.Itoa(c.Col) + "," + strconv.Itoa(c.Row)
}

func (tc *tileCache[V]) Get(c world.ChunkCoord) (V, bool) {
	return tc.cache.Get(tileKey(c))
}

// Set offers a tile to the cache. Admission is asynchronous.
func (tc *tileCache[V]) Set(c world.ChunkCoord, v V) bool {
	return tc.cache.Set(tileKey(c), v, 1)
}

// Wait blocks until pending Sets are applied.
func (tc *tileCache[V]) Wait() {
	tc.cache.Wait()
}

// Drain releases every tile evicted or rejected since the last call and
// returns how many there were. It must run on the render goroutine.
func (tc *tileCache[V]) Drain() int {
	tc.mu.Lock()
	retired := tc.retired
	tc.retired = nil
	tc.mu.Unlock()

	for _, v := range retired {
		tc.release(v)
	}
	return len(retired)
}

// Close empties the cache and releases every tile it held.
func (tc *tileCache[V]) Close() {
	tc.cache.Close()
	tc.Drain()
}
