package game

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"chunkstream/input"
)

// windowedSizeRatio sizes the window relative to the monitor when leaving fullscreen
const windowedSizeRatio = 0.9

// Keyboard reads WASD and the arrow keys.
type Keyboard struct{}

// Controls implements input.Source.
func (Keyboard) Controls(uint64, mgl64.Vec2) (input.Controls, error) {
	return input.Controls{
		Up:    ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp),
		Down:  ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown),
		Left:  ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft),
		Right: ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight),
	}, nil
}

// quitRequested reports whether Escape was pressed this tick
func quitRequested() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}

// handleInput processes window and debug keys
func (g *Game) handleInput() {
	// F1 toggles the debug overlay
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		debugState := GetDebugState()
		debugState.ShowOverlay = !debugState.ShowOverlay
	}

	// Handle Alt+Enter to toggle fullscreen
	altPressed := ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight)
	enterPressed := ebiten.IsKeyPressed(ebiten.KeyEnter)
	altEnterPressed := altPressed && enterPressed

	if altEnterPressed && !g.prevAltEnter {
		isCurrentlyFullscreen := ebiten.IsFullscreen()
		ebiten.SetFullscreen(!isCurrentlyFullscreen)

		if isCurrentlyFullscreen {
			// Going to windowed - use 90% of monitor size
			monitorWidth, monitorHeight := ebiten.ScreenSizeInFullscreen()
			ebiten.SetWindowSize(int(float64(monitorWidth)*windowedSizeRatio), int(float64(monitorHeight)*windowedSizeRatio))
		}
	}
	g.prevAltEnter = altEnterPressed

	// Mouse wheel zooms the camera
	if _, dy := ebiten.Wheel(); dy != 0 {
		step := g.cfg.Camera.ZoomStep
		if dy < 0 {
			step = -step
		}
		if g.camera.ZoomBy(step, g.cfg.Camera.MinZoom, g.cfg.Camera.MaxZoom) {
			g.logger.Debug("zoom", zap.Float64("zoom", g.camera.Zoom))
		}
	}
}
