// Package playback replays a recorded timeline by synthesizing key events
// with the original inter-event timing.
package playback

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/yejue/key-overlay/internal/core/model"
)

// RepeatMode selects how many cycles a playback run executes.
type RepeatMode int

const (
	RepeatOnce RepeatMode = iota
	RepeatNTimes
	RepeatLoop
)

// Synthesizer issues virtual key events. Failures are per-call and
// best-effort; playback never aborts on a synthesis error.
type Synthesizer interface {
	Press(name string) error
	Release(name string) error
}

// Config contains runtime options for the engine.
type Config struct {
	// SliceInterval bounds each sleep slice, and therefore the cancellation
	// latency during long inter-event delays.
	SliceInterval time.Duration
}

// Engine replays timelines on a dedicated worker goroutine. At most one run
// is active at a time; Play while running is a no-op.
type Engine struct {
	mu            sync.Mutex
	config        Config
	synth         Synthesizer
	logger        *zap.SugaredLogger
	onActive      func(bool)
	playing       bool
	stopRequested bool
	stopCh        chan struct{}
}

// New creates a playback engine. onActive is invoked from the worker on
// every active-state transition and may be nil.
func New(synth Synthesizer, logger *zap.SugaredLogger, config Config, onActive func(bool)) *Engine {
	if config.SliceInterval <= 0 {
		config.SliceInterval = 10 * time.Millisecond
	}
	return &Engine{
		config:   config,
		synth:    synth,
		logger:   logger,
		onActive: onActive,
	}
}

// Play starts replaying the timeline. The count parameter is only used with
// RepeatNTimes and coerces to at least one cycle. Returns false if a run is
// already active.
func (engine *Engine) Play(timeline model.Timeline, mode RepeatMode, count int) bool {
	engine.mu.Lock()
	if engine.playing {
		engine.mu.Unlock()
		engine.logger.Debugw("playback already running, ignoring play request")
		return false
	}
	engine.playing = true
	engine.stopRequested = false
	engine.stopCh = make(chan struct{})
	stopCh := engine.stopCh
	engine.mu.Unlock()

	go engine.run(timeline, mode, count, stopCh)
	return true
}

// Stop requests cancellation. It is idempotent and returns without waiting
// for the worker to unwind.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	if !engine.playing || engine.stopRequested {
		return
	}
	engine.stopRequested = true
	close(engine.stopCh)
}

// IsPlaying reports whether a run is active.
func (engine *Engine) IsPlaying() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.playing
}

func (engine *Engine) run(timeline model.Timeline, mode RepeatMode, count int, stopCh chan struct{}) {
	defer func() {
		engine.releaseAll(timeline)
		engine.mu.Lock()
		engine.playing = false
		engine.mu.Unlock()
		if engine.onActive != nil {
			engine.onActive(false)
		}
	}()

	if engine.onActive != nil {
		engine.onActive(true)
	}

	if count < 1 {
		count = 1
	}

	cycles := 0
	for !cancelled(stopCh) {
		if !engine.runCycle(timeline, stopCh) {
			return
		}
		cycles++

		switch mode {
		case RepeatLoop:
			// Runs until Stop.
		case RepeatNTimes:
			if cycles >= count {
				return
			}
		default:
			return
		}
	}
}

// runCycle executes one full pass through the timeline. Returns false if the
// cycle was cancelled mid-way.
func (engine *Engine) runCycle(timeline model.Timeline, stopCh chan struct{}) bool {
	lastElapsed := 0.0
	for _, event := range timeline.Events {
		delay := time.Duration((event.Elapsed - lastElapsed) * float64(time.Second))
		if delay > 0 {
			if !engine.sleepSliced(delay, stopCh) {
				return false
			}
		}
		if cancelled(stopCh) {
			return false
		}

		var err error
		switch event.Transition {
		case model.TransitionDown:
			err = engine.synth.Press(event.Name)
		case model.TransitionUp:
			err = engine.synth.Release(event.Name)
		}
		if err != nil {
			engine.logger.Debugw("key synthesis failed", "key", event.Name, "error", err)
		}

		// Timing always advances, even when a key could not be synthesized.
		lastElapsed = event.Elapsed
	}
	return true
}

// sleepSliced waits for the full delay in bounded slices so a Stop takes
// effect within one slice interval. Returns false when cancelled.
func (engine *Engine) sleepSliced(delay time.Duration, stopCh chan struct{}) bool {
	deadline := time.Now().Add(delay)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return true
		}
		slice := engine.config.SliceInterval
		if remaining < slice {
			slice = remaining
		}
		select {
		case <-stopCh:
			return false
		case <-time.After(slice):
		}
	}
}

// releaseAll issues a release for every key named in the timeline so no key
// is left logically held after any exit path.
func (engine *Engine) releaseAll(timeline model.Timeline) {
	for _, name := range timeline.UniqueKeyNames() {
		if err := engine.synth.Release(name); err != nil {
			engine.logger.Debugw("emergency release failed", "key", name, "error", err)
		}
	}
}

func cancelled(stopCh chan struct{}) bool {
	select {
	case <-stopCh:
		return true
	default:
		return false
	}
}
