// Package session coordinates the shared keyboard hook between the pressed-key
// overlay, the recorder and the playback engine.
package session

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/yejue/key-overlay/internal/core/keys"
	"github.com/yejue/key-overlay/internal/core/model"
	"github.com/yejue/key-overlay/internal/core/playback"
	"github.com/yejue/key-overlay/internal/core/recorder"
	"github.com/yejue/key-overlay/internal/hook"
	"github.com/yejue/key-overlay/internal/storage"
)

// Config contains runtime options for the session.
type Config struct {
	// DefaultRecordPath receives recordings stopped without an explicit
	// destination and feeds playback requests without an explicit source.
	DefaultRecordPath string
	// SliceInterval is forwarded to the playback engine.
	SliceInterval time.Duration
}

// Session is the outward-facing state machine: whether the hook is attached,
// whether a recording is active and whether playback is running.
type Session struct {
	mu       sync.Mutex
	config   Config
	keyboard hook.Keyboard
	logger   *zap.SugaredLogger

	handle     *hook.Handle
	monitoring bool

	pressed  *keys.PressedSet
	recorder *recorder.Recorder
	player   *playback.Engine

	events []chan Event
}

// New creates a session around the given keyboard capability.
func New(keyboard hook.Keyboard, logger *zap.SugaredLogger, config Config) *Session {
	s := &Session{
		config:   config,
		keyboard: keyboard,
		logger:   logger,
		pressed:  keys.NewPressedSet(),
		recorder: recorder.New(),
	}
	s.player = playback.New(keyboard, logger, playback.Config{SliceInterval: config.SliceInterval}, func(active bool) {
		s.emit(Event{Type: EventPlaybackChanged, Active: active, At: time.Now()})
	})
	return s
}

// Subscribe registers a new observer channel.
func (s *Session) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	s.mu.Lock()
	s.events = append(s.events, ch)
	s.mu.Unlock()
	return ch
}

// SetMonitoring attaches or detaches the hook. Idempotent: requesting the
// current state is a no-op. Disabling clears the pressed set and publishes an
// empty display string.
func (s *Session) SetMonitoring(enabled bool) error {
	s.mu.Lock()
	if enabled == s.monitoring {
		s.mu.Unlock()
		return nil
	}

	if enabled {
		handle, err := s.keyboard.Hook(s.onKeyEvent)
		if err != nil {
			s.mu.Unlock()
			return fmt.Errorf("attach keyboard hook: %w", err)
		}
		s.handle = handle
		s.monitoring = true
		s.mu.Unlock()
		return nil
	}

	handle := s.handle
	s.handle = nil
	s.monitoring = false
	s.mu.Unlock()

	s.keyboard.Unhook(handle)
	s.pressed.Clear()
	s.emit(Event{Type: EventKeysChanged, Keys: "", At: time.Now()})
	return nil
}

// IsMonitoring reports whether the hook is attached.
func (s *Session) IsMonitoring() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.monitoring
}

// StartRecording begins a new recording, forcing monitoring on so events
// arrive. Starting while already recording is a no-op.
func (s *Session) StartRecording() error {
	if s.recorder.IsRecording() {
		return nil
	}
	if err := s.SetMonitoring(true); err != nil {
		return err
	}
	if s.recorder.Start() {
		s.emit(Event{Type: EventRecordingChanged, Active: true, At: time.Now()})
	}
	return nil
}

// StopRecording ends the recording and serializes it to path, or to the
// default record path when path is empty. Returns the written path, or
// ok=false if no recording was active (in which case nothing is written).
func (s *Session) StopRecording(path string) (string, bool, error) {
	timeline, ok := s.recorder.Stop()
	if !ok {
		return "", false, nil
	}
	s.emit(Event{Type: EventRecordingChanged, Active: false, At: time.Now()})

	if path == "" {
		path = s.config.DefaultRecordPath
	}
	if err := storage.SaveTimeline(path, timeline); err != nil {
		return "", true, fmt.Errorf("save recording: %w", err)
	}
	s.logger.Infow("recording saved", "path", path, "events", len(timeline.Events))
	return path, true, nil
}

// IsRecording reports whether a recording is active.
func (s *Session) IsRecording() bool {
	return s.recorder.IsRecording()
}

// Play loads the timeline at path (default record path when empty) and
// replays it. Missing or unreadable files and an already-running playback
// are logged no-ops.
func (s *Session) Play(path string, mode playback.RepeatMode, count int) {
	if path == "" {
		path = s.config.DefaultRecordPath
	}
	timeline, err := storage.LoadTimeline(path)
	if err != nil {
		s.logger.Warnw("cannot load timeline", "path", path, "error", err)
		return
	}
	s.player.Play(timeline, mode, count)
}

// StopPlayback requests cancellation of the running playback, if any.
func (s *Session) StopPlayback() {
	s.player.Stop()
}

// IsPlaying reports whether a playback run is active.
func (s *Session) IsPlaying() bool {
	return s.player.IsPlaying()
}

// KeysDisplay returns the current pressed-keys display string.
func (s *Session) KeysDisplay() string {
	return s.pressed.Display()
}

// Shutdown detaches any hook, stops playback and closes observer channels.
// Safe to call multiple times; used at process exit.
func (s *Session) Shutdown() {
	s.player.Stop()

	s.mu.Lock()
	handle := s.handle
	s.handle = nil
	s.monitoring = false
	events := s.events
	s.events = nil
	s.mu.Unlock()

	if handle != nil {
		s.keyboard.Unhook(handle)
	}
	s.pressed.Clear()

	for _, ch := range events {
		close(ch)
	}
}

// onKeyEvent is the hook callback. It never blocks: set mutation and record
// append are O(1) under their own locks, and observer sends are buffered and
// dropped when full.
func (s *Session) onKeyEvent(raw model.RawKeyEvent) {
	if raw.Name == "" {
		return
	}
	token := keys.Normalize(raw.Name)
	display := s.pressed.Apply(token, raw.Transition)
	s.emit(Event{Type: EventKeysChanged, Keys: display, At: time.Now()})
	s.recorder.Record(raw)
}

func (s *Session) emit(event Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emitLocked(event)
}

func (s *Session) emitLocked(event Event) {
	observers := append([]chan Event(nil), s.events...)
	for _, ch := range observers {
		select {
		case ch <- event:
		default:
		}
	}
}
