package anim

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"go.viam.com/test"
)

func TestAnimatorLoops(t *testing.T) {
	mock := clock.NewMock()
	a := NewAnimator(mock, DefaultFrames, DefaultFrameDuration, nil)
	test.That(t, a.State(), test.ShouldEqual, Idle)
	test.That(t, a.Frame(), test.ShouldEqual, 0)

	mock.Add(150 * time.Millisecond)
	test.That(t, a.Frame(), test.ShouldEqual, 1)

	mock.Add(700 * time.Millisecond)
	test.That(t, a.Frame(), test.ShouldEqual, 0)

	mock.Add(250 * time.Millisecond)
	test.That(t, a.Frame(), test.ShouldEqual, 3)
}

func TestAnimatorRestartOnStateChange(t *testing.T) {
	mock := clock.NewMock()
	core, logs := observer.New(zapcore.DebugLevel)
	a := NewAnimator(mock, DefaultFrames, DefaultFrameDuration, zap.New(core))

	mock.Add(350 * time.Millisecond)
	test.That(t, a.Frame(), test.ShouldEqual, 3)

	a.SetState(Running)
	test.That(t, a.State(), test.ShouldEqual, Running)
	test.That(t, a.Frame(), test.ShouldEqual, 0)

	// same state keeps running
	mock.Add(200 * time.Millisecond)
	a.SetState(Running)
	test.That(t, a.Frame(), test.ShouldEqual, 2)

	test.That(t, logs.FilterMessage("animation restart").Len(), test.ShouldEqual, 1)
	entry := logs.All()[0]
	test.That(t, entry.ContextMap()["from"], test.ShouldEqual, "idle")
	test.That(t, entry.ContextMap()["to"], test.ShouldEqual, "running")
}

func TestAnimatorClampsArguments(t *testing.T) {
	a := NewAnimator(clock.NewMock(), 0, 0, nil)
	test.That(t, a.Frames(), test.ShouldEqual, 1)
	test.That(t, a.Frame(), test.ShouldEqual, 0)
	test.That(t, State(9).String(), test.ShouldEqual, "unknown")
}
