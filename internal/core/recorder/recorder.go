// Package recorder turns a live hook event stream into an ordered,
// elapsed-stamped timeline.
package recorder

import (
	"sync"
	"time"

	"github.com/yejue/key-overlay/internal/core/model"
)

// Recorder accumulates key transitions while active. Start and Stop are
// idempotent; Record is a no-op outside a recording.
type Recorder struct {
	mu        sync.Mutex
	recording bool
	startedAt time.Time
	events    []model.KeyEvent
}

// New creates an idle recorder.
func New() *Recorder {
	return &Recorder{}
}

// Start resets the event log and captures the monotonic start time.
// Returns false if a recording is already active.
func (recorder *Recorder) Start() bool {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()

	if recorder.recording {
		return false
	}
	recorder.recording = true
	recorder.startedAt = time.Now()
	recorder.events = nil
	return true
}

// Record appends one transition stamped with the time elapsed since Start.
func (recorder *Recorder) Record(event model.RawKeyEvent) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()

	if !recorder.recording {
		return
	}
	scanCode := event.ScanCode
	recorder.events = append(recorder.events, model.KeyEvent{
		Elapsed:    time.Since(recorder.startedAt).Seconds(),
		Transition: event.Transition,
		Name:       event.Name,
		ScanCode:   &scanCode,
	})
}

// Stop ends the recording and returns the accumulated timeline.
// Returns false if no recording was active; the timeline is then empty.
func (recorder *Recorder) Stop() (model.Timeline, bool) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()

	if !recorder.recording {
		return model.Timeline{}, false
	}
	recorder.recording = false

	timeline := model.Timeline{
		Version:   model.TimelineVersion,
		CreatedAt: float64(time.Now().UnixNano()) / float64(time.Second),
		Events:    recorder.events,
	}
	recorder.events = nil
	return timeline, true
}

// IsRecording reports whether a recording is active.
func (recorder *Recorder) IsRecording() bool {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	return recorder.recording
}

// EventCount returns the number of events captured so far.
func (recorder *Recorder) EventCount() int {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	return len(recorder.events)
}
