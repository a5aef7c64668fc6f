package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"chunkstream/world"
)

// Camera represents the viewport into the world
type Camera struct {
	X, Y   float64 // Camera position in world coordinates
	Zoom   float64 // Zoom level
	Width  float64 // Viewport width
	Height float64 // Viewport height
}

// NewCamera creates a new camera
func NewCamera(width, height, zoom float64) *Camera {
	return &Camera{
		Zoom:   zoom,
		Width:  width,
		Height: height,
	}
}

// WorldToScreen converts world coordinates to screen coordinates
func (c *Camera) WorldToScreen(wx, wy float64) (float64, float64) {
	sx := (wx-c.X)*c.Zoom + c.Width/2
	sy := (wy-c.Y)*c.Zoom + c.Height/2
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates
func (c *Camera) ScreenToWorld(sx, sy float64) (float64, float64) {
	wx := (sx-c.Width/2)/c.Zoom + c.X
	wy := (sy-c.Height/2)/c.Zoom + c.Y
	return wx, wy
}

// ZoomBy changes the zoom by step. A change that would leave [min, max] is
// ignored rather than clamped.
func (c *Camera) ZoomBy(step, min, max float64) bool {
	next := c.Zoom + step
	const eps = 1e-9
	if next < min-eps || next > max+eps {
		return false
	}
	c.Zoom = next
	return true
}

// Apply appends the world-to-screen transform to geo.
func (c *Camera) Apply(geo *ebiten.GeoM) {
	geo.Translate(-c.X, -c.Y)
	geo.Scale(c.Zoom, c.Zoom)
	geo.Translate(c.Width/2, c.Height/2)
}

// Renderer draws the chunks of the visible window.
type Renderer struct {
	camera *Camera
	theme  Theme
	logger *zap.Logger

	// tiles holds one pre-rendered image per chunk
	tiles      *tileCache[*ebiten.Image]
	logMissing bool
	reported   map[world.ChunkCoord]struct{}

	lastMissing int
}

// NewRenderer creates a renderer whose tile cache holds at most tileCacheSize tiles.
func NewRenderer(camera *Camera, theme Theme, tileCacheSize int64, logMissing bool, logger *zap.Logger) (*Renderer, error) {
	tiles, err := newTileCache(tileCacheSize, (*ebiten.Image).Deallocate)
	if err != nil {
		return nil, err
	}
	return &Renderer{
		camera:     camera,
		theme:      theme,
		logger:     logger,
		tiles:      tiles,
		logMissing: logMissing,
		reported:   make(map[world.ChunkCoord]struct{}),
	}, nil
}

// Close releases the tile cache.
func (r *Renderer) Close() {
	r.tiles.Close()
}

// Render draws every chunk of the visible window. Chunks missing from the
// grid are skipped and logged once per coordinate.
func (r *Renderer) Render(screen *ebiten.Image, w *world.World) {
	// Tiles retired since the last frame are no longer drawn by anyone.
	r.tiles.Drain()
	r.lastMissing = w.VisitWindow(func(c world.ChunkCoord, ch *world.Chunk) {
		if ch == nil {
			r.reportMissing(c, w.Window())
			return
		}
		r.RenderChunk(screen, ch)
	})
}

// Missing returns the number of chunks skipped by the last Render.
func (r *Renderer) Missing() int {
	return r.lastMissing
}

func (r *Renderer) reportMissing(c world.ChunkCoord, win world.VisibleWindow) {
	if !r.logMissing {
		return
	}
	if _, ok := r.reported[c]; ok {
		return
	}
	r.reported[c] = struct{}{}
	r.logger.Warn("chunk missing at render", zap.Stringer("chunk", c), zap.Stringer("window", win))
}

// RenderChunk draws a single chunk's outline and label.
func (r *Renderer) RenderChunk(screen *ebiten.Image, ch *world.Chunk) {
	tile, ok := r.tiles.Get(ch.Coord)
	fresh := !ok
	if fresh {
		tile = r.renderTile(ch)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(ch.Outline.X, ch.Outline.Y)
	r.camera.Apply(&op.GeoM)
	screen.DrawImage(tile, op)

	if fresh {
		r.tiles.Set(ch.Coord, tile)
	}
}

// renderTile draws the outline and label of a chunk onto its own image.
func (r *Renderer) renderTile(ch *world.Chunk) *ebiten.Image {
	size := int(ch.Outline.Width)
	tile := ebiten.NewImage(size, size)

	vector.StrokeRect(tile, 0.5, 0.5, float32(size)-1, float32(size)-1, 1, r.theme.Outline, false)
	if ch.Variant%7 == 0 {
		vector.DrawFilledRect(tile, 2, float32(size)-4, 2, 2, r.theme.Outline, false)
	}

	if face, ok := ch.Resource.(text.Face); ok {
		op := &text.DrawOptions{}
		op.GeoM.Translate(2, 1)
		op.ColorScale.ScaleWithColor(r.theme.Label)
		text.Draw(tile, ch.Label, face, op)
	}
	return tile
}
