package game

import (
	"image/png"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"chunkstream/anim"
)

// Player draws the animated viewpoint marker.
type Player struct {
	animator *anim.Animator
	frames   map[anim.State][]*ebiten.Image
}

// NewPlayer rasterizes the sprite sheet into ebiten images.
func NewPlayer(animator *anim.Animator, logger *zap.Logger) (*Player, error) {
	sheet, err := anim.PlayerSheet(1)
	if err != nil {
		return nil, err
	}

	// Optionally save the sheet for debugging
	if os.Getenv("DEBUG_SPRITES") == "1" {
		if err := saveDebugPNG(sheet, "debug_player.png"); err != nil {
			logger.Warn("failed to save debug sprite", zap.Error(err))
		}
	}

	p := &Player{animator: animator, frames: make(map[anim.State][]*ebiten.Image)}
	for _, s := range []anim.State{anim.Idle, anim.Running} {
		for i := 0; i < sheet.Frames; i++ {
			p.frames[s] = append(p.frames[s], ebiten.NewImageFromImage(sheet.Frame(s, i)))
		}
	}
	return p, nil
}

// SetMoving switches between the idle and running animations.
func (p *Player) SetMoving(moving bool) {
	if moving {
		p.animator.SetState(anim.Running)
	} else {
		p.animator.SetState(anim.Idle)
	}
}

// Draw renders the current frame centered on pos.
func (p *Player) Draw(screen *ebiten.Image, camera *Camera, pos mgl64.Vec2) {
	frames := p.frames[p.animator.State()]
	if len(frames) == 0 {
		return
	}
	img := frames[p.animator.Frame()%len(frames)]

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(pos[0]-anim.FrameSize/2, pos[1]-anim.FrameSize/2)
	camera.Apply(&op.GeoM)
	screen.DrawImage(img, op)
}

func saveDebugPNG(sheet *anim.Sheet, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "create debug png")
	}
	defer f.Close()
	return errors.Wrap(png.Encode(f, sheet.Image), "encode debug png")
}
