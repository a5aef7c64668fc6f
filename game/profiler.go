package game

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	rtrace "runtime/trace"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Profiler captures a CPU profile and an execution trace when the streaming
// work of a tick takes longer than its budget.
type Profiler struct {
	mu              sync.Mutex
	isProfiling     bool
	lastCaptureTime time.Time
	captureCooldown time.Duration
	profilesDir     string
	captureDuration time.Duration
	budget          time.Duration
	logger          *zap.Logger
}

// NewProfiler creates a profiler writing into dir. A zero budget disables it.
func NewProfiler(dir string, budget time.Duration, logger *zap.Logger) *Profiler {
	return &Profiler{
		captureCooldown: 10 * time.Second, // Don't capture more than once every 10 seconds
		profilesDir:     dir,
		captureDuration: 5 * time.Second,
		budget:          budget,
		logger:          logger,
	}
}

// Observe checks one tick's streaming time against the budget.
func (p *Profiler) Observe(tick uint64, elapsed time.Duration, built int) {
	if p.budget <= 0 || elapsed <= p.budget {
		return
	}
	p.logger.Warn("tick over budget",
		zap.Uint64("tick", tick),
		zap.Duration("elapsed", elapsed),
		zap.Duration("budget", p.budget),
		zap.Int("built", built))

	reason := fmt.Sprintf("tick%d-built%d", tick, built)
	if err := p.CaptureProfile(reason); err != nil {
		p.logger.Debug("profile not captured", zap.Error(err))
	}
}

// CaptureProfile starts a background CPU profile and trace capture
func (p *Profiler) CaptureProfile(reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Check cooldown to avoid capturing too frequently
	if since := time.Since(p.lastCaptureTime); since < p.captureCooldown {
		return errors.Errorf("capture on cooldown (last capture was %v ago)", since)
	}
	if p.isProfiling {
		return errors.New("already profiling")
	}
	if err := os.MkdirAll(p.profilesDir, 0o755); err != nil {
		return errors.Wrap(err, "create profiles dir")
	}

	p.isProfiling = true
	p.lastCaptureTime = time.Now()
	baseName := fmt.Sprintf("slow-tick-%s-%s", p.lastCaptureTime.Format("20060102-150405"), reason)

	// Capture in a goroutine to avoid blocking the game
	go func() {
		defer func() {
			p.mu.Lock()
			p.isProfiling = false
			p.mu.Unlock()
		}()

		var wg sync.WaitGroup
		var cpuErr, traceErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			cpuErr = p.captureCPUProfile(baseName)
		}()
		go func() {
			defer wg.Done()
			traceErr = p.captureTrace(baseName)
		}()
		wg.Wait()

		if err := multierr.Combine(cpuErr, traceErr); err != nil {
			p.logger.Warn("profile capture failed", zap.Error(err))
			return
		}
		p.logSummary(baseName)
	}()

	return nil
}

// captureCPUProfile records a CPU profile for captureDuration
func (p *Profiler) captureCPUProfile(baseName string) error {
	profilePath := filepath.Join(p.profilesDir, baseName+".cpu.prof")

	file, err := os.Create(profilePath)
	if err != nil {
		return errors.Wrap(err, "failed to create profile file")
	}
	defer file.Close()

	if err := pprof.StartCPUProfile(file); err != nil {
		return errors.Wrap(err, "failed to start CPU profile")
	}
	time.Sleep(p.captureDuration)
	pprof.StopCPUProfile()
	return nil
}

// captureTrace records an execution trace for captureDuration
func (p *Profiler) captureTrace(baseName string) error {
	tracePath := filepath.Join(p.profilesDir, baseName+".trace")

	file, err := os.Create(tracePath)
	if err != nil {
		return errors.Wrap(err, "failed to create trace file")
	}
	defer file.Close()

	if err := rtrace.Start(file); err != nil {
		return errors.Wrap(err, "failed to start trace")
	}
	time.Sleep(p.captureDuration)
	rtrace.Stop()
	return nil
}

// logSummary reports where the capture went and the heap at that moment
func (p *Profiler) logSummary(baseName string) {
	profilePath := filepath.Join(p.profilesDir, baseName+".cpu.prof")
	info, err := os.Stat(profilePath)
	if err != nil {
		p.logger.Warn("could not stat profile", zap.Error(err))
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	p.logger.Info("profile saved",
		zap.String("cpu", profilePath),
		zap.String("trace", filepath.Join(p.profilesDir, baseName+".trace")),
		zap.Int64("bytes", info.Size()),
		zap.Uint64("heap_alloc_kb", m.HeapAlloc/1024),
		zap.Uint32("num_gc", m.NumGC),
		zap.String("view", "go tool pprof -http=:8080 "+profilePath))
}

// IsProfiling returns whether a profile capture is currently in progress
func (p *Profiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}
