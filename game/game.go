package game

import (
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"chunkstream/anim"
	"chunkstream/config"
	"chunkstream/input"
	"chunkstream/trace"
	"chunkstream/world"
)

// Game represents the main game state
type Game struct {
	cfg    config.Config
	logger *zap.Logger

	world    *world.World
	camera   *Camera
	renderer *Renderer
	player   *Player
	velocity *input.Velocity
	source   input.Source

	// Optional motion trace, nil when disabled
	recorder *trace.Recorder
	profiler *Profiler

	// Consecutive ticks whose boundary cross failed
	failures int

	prevAltEnter bool
	lastReport   world.TickReport
}

// NewGame builds the world and loads its initial chunks. A nil source
// reads the keyboard.
func NewGame(cfg config.Config, source input.Source, logger *zap.Logger) (*Game, error) {
	if source == nil {
		source = Keyboard{}
	}

	fonts := NewFontLoader(cfg.Render.FontPath, cfg.Render.FontSize)
	factory := LabeledChunkFactory{ChunkSize: cfg.Stream.ChunkSize, Fonts: fonts}
	w, err := world.New(cfg.Stream, factory, logger.Named("world"))
	if err != nil {
		return nil, errors.Wrap(err, "initial world")
	}

	camera := NewCamera(float64(cfg.Window.Width), float64(cfg.Window.Height), cfg.Camera.Zoom)
	renderer, err := NewRenderer(camera, DefaultTheme(), cfg.Render.TileCacheSize, cfg.Render.LogMissing, logger.Named("render"))
	if err != nil {
		return nil, err
	}

	animator := anim.NewAnimator(clock.New(), anim.DefaultFrames, anim.DefaultFrameDuration, logger.Named("anim"))
	player, err := NewPlayer(animator, logger)
	if err != nil {
		renderer.Close()
		return nil, errors.Wrap(err, "player sprite")
	}

	g := &Game{
		cfg:      cfg,
		logger:   logger,
		world:    w,
		camera:   camera,
		renderer: renderer,
		player:   player,
		velocity: input.NewVelocity(cfg.Motion.Acceleration, cfg.Motion.MaxSpeed, cfg.Motion.Friction),
		source:   source,
		profiler: NewProfiler(cfg.Profile.Dir, time.Duration(cfg.Profile.TickBudgetMS)*time.Millisecond, logger.Named("profiler")),
	}

	if cfg.Trace.Dir != "" {
		rec, err := trace.NewRecorder(cfg.Trace.Dir, trace.Header{Started: time.Now(), Config: cfg.Stream})
		if err != nil {
			renderer.Close()
			return nil, err
		}
		g.recorder = rec
		logger.Info("recording motion trace", zap.String("path", rec.Path()))
	}
	return g, nil
}

// Update advances one tick
func (g *Game) Update() error {
	if quitRequested() {
		return ebiten.Termination
	}
	g.handleInput()
	return g.step()
}

// step moves the viewpoint and streams chunks for one tick. It returns an
// error only once streaming has failed MaxStreamFailures ticks in a row.
func (g *Game) step() error {
	controls, err := g.source.Controls(g.world.CurrentTick()+1, g.world.Position())
	if err != nil {
		return errors.Wrap(err, "motion input")
	}
	delta := g.velocity.Step(controls)

	report, tickErr := g.world.Tick(delta)
	g.lastReport = report
	g.record(delta, report, tickErr)
	g.profiler.Observe(report.Tick, report.Elapsed, report.Built)

	pos := g.world.Position()
	g.camera.X, g.camera.Y = pos[0], pos[1]
	g.player.SetMoving(g.velocity.Moving())

	if tickErr != nil {
		g.failures++
		if g.failures >= g.cfg.Runtime.MaxStreamFailures {
			return errors.Wrapf(tickErr, "streaming failed %d ticks in a row", g.failures)
		}
		return nil
	}
	if g.failures > 0 {
		g.logger.Info("streaming recovered", zap.Int("failed_ticks", g.failures))
		g.failures = 0
	}
	return nil
}

func (g *Game) record(delta mgl64.Vec2, report world.TickReport, tickErr error) {
	if g.recorder == nil {
		return
	}
	if err := g.recorder.Record(trace.NewEntry(delta, report, g.world, tickErr)); err != nil {
		g.logger.Warn("trace disabled", zap.Error(err))
		_ = g.recorder.Close()
		g.recorder = nil
	}
}

// Draw renders the game
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.renderer.theme.Background)
	g.renderer.Render(screen, g.world)
	g.player.Draw(screen, g.camera, g.world.Position())

	if GetDebugState().ShowOverlay {
		g.drawOverlay(screen)
	}
}

func (g *Game) drawOverlay(screen *ebiten.Image) {
	pos := g.world.Position()
	v := g.velocity.Current()
	c := g.cfg.Stream.ChunkSize
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"TPS %.0f  FPS %.0f\ntick %d\npos (%.1f, %.1f) chunk (%d, %d)\nvel (%.1f, %.1f)  zoom %.1f\nwindow %s\nloaded %d  missing %d\nlast built %d in %v",
		ebiten.ActualTPS(), ebiten.ActualFPS(),
		g.world.CurrentTick(),
		pos[0], pos[1], world.ChunkOf(pos[0], c), world.ChunkOf(pos[1], c),
		v[0], v[1], g.camera.Zoom,
		g.world.Window(),
		g.world.Loaded(), g.renderer.Missing(),
		g.lastReport.Built, g.lastReport.Elapsed,
	))
}

// Layout returns the game's screen size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}

// World exposes the streamed world.
func (g *Game) World() *world.World {
	return g.world
}

// Close flushes the trace and frees cached tiles.
func (g *Game) Close() error {
	var err error
	if g.recorder != nil {
		err = multierr.Append(err, g.recorder.Close())
		g.recorder = nil
	}
	g.renderer.Close()
	return err
}
