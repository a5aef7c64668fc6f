// Command replay runs chunk streaming without a window: it verifies a
// recorded motion trace or drives the world from a motion script.
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"chunkstream/logging"
)

const (
	flagConfig   = "config"
	flagLogLevel = "log-level"
	flagTicks    = "ticks"
	flagOut      = "out"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "replay:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	var logger *zap.Logger

	return &cli.App{
		Name:  "replay",
		Usage: "verify chunk streaming headlessly",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  flagLogLevel,
				Value: "warn",
				Usage: "log level (debug, info, warn, error)",
			},
		},
		Before: func(c *cli.Context) error {
			var err error
			logger, err = logging.New("replay", c.String(flagLogLevel))
			return err
		},
		Commands: []*cli.Command{
			{
				Name:      "trace",
				Usage:     "replay a recorded trace and check positions, windows and coverage",
				ArgsUsage: "<trace.jsonl.zst>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return errors.New("expected one trace file")
					}
					sum, err := replayTrace(c.Args().First(), logger)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "replay ok: ticks=%d crossings=%d built=%d windows_checked=%d recorded_failures=%d\n",
						sum.Ticks, sum.Crossings, sum.Built, sum.WindowsChecked, sum.RecordedFailures)
					return nil
				},
			},
			{
				Name:      "script",
				Usage:     "drive the viewpoint from a JavaScript controls(tick, x, y) function",
				ArgsUsage: "<script.js>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    flagConfig,
						Aliases: []string{"c"},
						Usage:   "load configuration from `FILE`",
					},
					&cli.IntFlag{
						Name:  flagTicks,
						Value: 600,
						Usage: "number of ticks to run",
					},
					&cli.StringFlag{
						Name:  flagOut,
						Usage: "record a trace into `DIR`",
					},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return errors.New("expected one script file")
					}
					sum, err := runScriptFile(c.Args().First(), c.String(flagConfig), c.Int(flagTicks), c.String(flagOut), logger)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "script ok: ticks=%d crossings=%d built=%d failed_ticks=%d loaded=%d window=%s\n",
						sum.Ticks, sum.Crossings, sum.Built, sum.FailedTicks, sum.Loaded, sum.Window)
					if sum.Trace != "" {
						fmt.Fprintf(c.App.Writer, "trace: %s\n", sum.Trace)
					}
					return nil
				},
			},
		},
	}
}
