package trace

import (
	"io"

	"github.com/pkg/errors"

	"chunkstream/world"
)

// Summary reports what a replay checked.
type Summary struct {
	Ticks            uint64
	Crossings        int
	Built            int
	WindowsChecked   int
	RecordedFailures int
}

// Replay feeds every recorded delta into w and checks that it ends up where
// the recording did. w must be freshly created from the header's config.
//
// Positions and grid coverage are checked on every tick. Windows and build
// counts are compared until the recording shows a failed tick, since a
// replay with a different chunk factory cannot reproduce the failure. With
// the exact crossing policy the window is a function of the position, so
// windows keep being compared on every later tick that did not fail.
func Replay(r *Reader, w *world.World) (Summary, error) {
	var sum Summary
	exact := w.Config().CrossingPolicy != world.CrossSingle
	diverged := false

	for {
		e, err := r.Next()
		if errors.Is(err, io.EOF) {
			return sum, nil
		}
		if err != nil {
			return sum, err
		}
		if e.Tick != w.CurrentTick()+1 {
			return sum, errors.Errorf("tick mismatch: want=%d got=%d", w.CurrentTick()+1, e.Tick)
		}

		report, tickErr := w.Tick(e.Delta())
		if tickErr != nil {
			return sum, errors.Wrapf(tickErr, "tick %d", e.Tick)
		}
		sum.Ticks++
		sum.Crossings += len(report.Crossed)
		sum.Built += report.Built

		if e.Error != "" {
			sum.RecordedFailures++
			diverged = true
		}

		pos := w.Position()
		if pos[0] != e.X || pos[1] != e.Y {
			return sum, errors.Errorf("position mismatch at tick %d: got=(%v, %v) want=(%v, %v)", e.Tick, pos[0], pos[1], e.X, e.Y)
		}
		if err := w.CheckCoverage(); err != nil {
			return sum, errors.Wrapf(err, "coverage at tick %d", e.Tick)
		}

		if e.Error == "" && (!diverged || exact) {
			sum.WindowsChecked++
			if got := w.Window(); got != e.Window {
				return sum, errors.Errorf("window mismatch at tick %d: got=%s want=%s", e.Tick, got, e.Window)
			}
		}
		if !diverged && report.Built != e.Built {
			return sum, errors.Errorf("build count mismatch at tick %d: got=%d want=%d", e.Tick, report.Built, e.Built)
		}
	}
}
