package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"chunkstream/config"
	"chunkstream/game"
	"chunkstream/input"
	"chunkstream/logging"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults are used when empty)")
	scriptPath := flag.String("script", "", "JavaScript motion script to drive the viewpoint instead of the keyboard")
	traceDir := flag.String("trace-dir", "", "record a motion trace into this directory")
	logLevel := flag.String("log-level", "", "override log.level (debug, info, warn, error)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, "config:", err)
			os.Exit(2)
		}
	}
	if *scriptPath != "" {
		cfg.Script.Path = *scriptPath
	}
	if *traceDir != "" {
		cfg.Trace.Dir = *traceDir
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	logger, err := logging.New("chunkstream", cfg.Log.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(2)
	}
	defer logger.Sync() //nolint:errcheck

	if err := run(cfg, logger); err != nil {
		logger.Error("exiting", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	var source input.Source
	if cfg.Script.Path != "" {
		script, err := input.LoadScriptInput(cfg.Script.Path)
		if err != nil {
			return err
		}
		source = script
		logger.Info("viewpoint driven by script", zap.String("script", cfg.Script.Path))
	}

	g, err := game.NewGame(cfg, source, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := g.Close(); err != nil {
			logger.Warn("close", zap.Error(err))
		}
	}()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(cfg.Runtime.TPS)

	return ebiten.RunGame(g)
}
