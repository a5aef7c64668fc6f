package main

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"chunkstream/config"
	"chunkstream/input"
	"chunkstream/trace"
	"chunkstream/world"
)

func replayTrace(path string, logger *zap.Logger) (trace.Summary, error) {
	r, err := trace.Open(path)
	if err != nil {
		return trace.Summary{}, err
	}
	defer r.Close()

	cfg := r.Header.Config
	w, err := world.New(cfg, world.PlainChunkFactory{ChunkSize: cfg.ChunkSize}, logger.Named("world"))
	if err != nil {
		return trace.Summary{}, err
	}
	return trace.Replay(r, w)
}

type scriptSummary struct {
	Ticks       int
	Crossings   int
	Built       int
	FailedTicks int
	Loaded      int
	Window      world.VisibleWindow
	Trace       string
}

func runScriptFile(scriptPath, configPath string, ticks int, outDir string, logger *zap.Logger) (scriptSummary, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return scriptSummary{}, err
		}
	}
	src, err := input.LoadScriptInput(scriptPath)
	if err != nil {
		return scriptSummary{}, err
	}

	var rec *trace.Recorder
	if outDir != "" {
		if rec, err = trace.NewRecorder(outDir, trace.Header{Started: time.Now(), Config: cfg.Stream}); err != nil {
			return scriptSummary{}, err
		}
	}
	sum, err := runScript(cfg, src, ticks, rec, logger)
	if rec != nil {
		sum.Trace = rec.Path()
		err = multierr.Append(err, rec.Close())
	}
	return sum, err
}

// runScript drives a headless world for the given number of ticks and checks
// grid coverage after every tick.
func runScript(cfg config.Config, src input.Source, ticks int, rec *trace.Recorder, logger *zap.Logger) (scriptSummary, error) {
	w, err := world.New(cfg.Stream, world.PlainChunkFactory{ChunkSize: cfg.Stream.ChunkSize}, logger.Named("world"))
	if err != nil {
		return scriptSummary{}, err
	}
	v := input.NewVelocity(cfg.Motion.Acceleration, cfg.Motion.MaxSpeed, cfg.Motion.Friction)

	var sum scriptSummary
	for i := 0; i < ticks; i++ {
		c, err := src.Controls(w.CurrentTick()+1, w.Position())
		if err != nil {
			return sum, err
		}
		delta := v.Step(c)
		report, tickErr := w.Tick(delta)
		sum.Ticks++
		sum.Crossings += len(report.Crossed)
		sum.Built += report.Built
		if tickErr != nil {
			sum.FailedTicks++
		}
		if rec != nil {
			if err := rec.Record(trace.NewEntry(delta, report, w, tickErr)); err != nil {
				return sum, err
			}
		}
		if err := w.CheckCoverage(); err != nil {
			return sum, errors.Wrapf(err, "coverage at tick %d", report.Tick)
		}
	}
	sum.Loaded = w.Loaded()
	sum.Window = w.Window()
	return sum, nil
}
