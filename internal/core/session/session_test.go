package session

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yejue/key-overlay/internal/core/model"
	"github.com/yejue/key-overlay/internal/core/playback"
	"github.com/yejue/key-overlay/internal/hook"
	"github.com/yejue/key-overlay/internal/storage"
)

// fakeKeyboard delivers scripted events to the hook callback and records
// synthesized presses.
type fakeKeyboard struct {
	mu       sync.Mutex
	callback func(model.RawKeyEvent)
	hooked   bool
	pressed  []string
	released []string
}

func (fake *fakeKeyboard) Hook(callback func(model.RawKeyEvent)) (*hook.Handle, error) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	if fake.hooked {
		return nil, hook.ErrHookActive
	}
	fake.hooked = true
	fake.callback = callback
	return &hook.Handle{}, nil
}

func (fake *fakeKeyboard) Unhook(handle *hook.Handle) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.hooked = false
	fake.callback = nil
}

func (fake *fakeKeyboard) Press(name string) error {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.pressed = append(fake.pressed, name)
	return nil
}

func (fake *fakeKeyboard) Release(name string) error {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.released = append(fake.released, name)
	return nil
}

func (fake *fakeKeyboard) send(name string, transition model.Transition) {
	fake.mu.Lock()
	callback := fake.callback
	fake.mu.Unlock()
	if callback != nil {
		callback(model.RawKeyEvent{Name: name, ScanCode: 1, Transition: transition})
	}
}

func (fake *fakeKeyboard) pressCount() int {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return len(fake.pressed)
}

func newTestSession(t *testing.T) (*Session, *fakeKeyboard, string) {
	t.Helper()
	fake := &fakeKeyboard{}
	recordPath := filepath.Join(t.TempDir(), "last_record.json")
	s := New(fake, zap.NewNop().Sugar(), Config{
		DefaultRecordPath: recordPath,
		SliceInterval:     2 * time.Millisecond,
	})
	t.Cleanup(s.Shutdown)
	return s, fake, recordPath
}

func TestMonitoringUpdatesDisplay(t *testing.T) {
	s, fake, _ := newTestSession(t)

	require.NoError(t, s.SetMonitoring(true))
	assert.True(t, s.IsMonitoring())

	fake.send("left shift", model.TransitionDown)
	fake.send("a", model.TransitionDown)
	assert.Equal(t, "A+LEFT_SHIFT", s.KeysDisplay())

	fake.send("a", model.TransitionUp)
	assert.Equal(t, "LEFT_SHIFT", s.KeysDisplay())
}

func TestMonitoringOffClearsDisplay(t *testing.T) {
	s, fake, _ := newTestSession(t)

	require.NoError(t, s.SetMonitoring(true))
	fake.send("a", model.TransitionDown)
	require.Equal(t, "A", s.KeysDisplay())

	events := s.Subscribe(4)
	require.NoError(t, s.SetMonitoring(false))

	assert.False(t, s.IsMonitoring())
	assert.Equal(t, "", s.KeysDisplay())
	assert.False(t, fake.hooked)

	event := <-events
	assert.Equal(t, EventKeysChanged, event.Type)
	assert.Equal(t, "", event.Keys)
}

func TestSetMonitoringIsIdempotent(t *testing.T) {
	s, fake, _ := newTestSession(t)

	require.NoError(t, s.SetMonitoring(true))
	require.NoError(t, s.SetMonitoring(true))
	assert.True(t, fake.hooked)

	require.NoError(t, s.SetMonitoring(false))
	require.NoError(t, s.SetMonitoring(false))
	assert.False(t, fake.hooked)
}

func TestRecordingForcesMonitoring(t *testing.T) {
	s, fake, _ := newTestSession(t)

	require.NoError(t, s.StartRecording())
	assert.True(t, s.IsMonitoring())
	assert.True(t, s.IsRecording())
	assert.True(t, fake.hooked)
}

func TestRecordingRoundTrip(t *testing.T) {
	s, fake, recordPath := newTestSession(t)

	require.NoError(t, s.StartRecording())
	fake.send("a", model.TransitionDown)
	fake.send("a", model.TransitionUp)

	path, ok, err := s.StopRecording("")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, recordPath, path)
	assert.False(t, s.IsRecording())

	timeline, err := storage.LoadTimeline(path)
	require.NoError(t, err)
	require.Len(t, timeline.Events, 2)
	assert.Equal(t, "a", timeline.Events[0].Name)
	assert.Equal(t, model.TransitionDown, timeline.Events[0].Transition)
}

func TestStopRecordingWhenIdle(t *testing.T) {
	s, _, recordPath := newTestSession(t)

	_, ok, err := s.StopRecording("")
	require.NoError(t, err)
	assert.False(t, ok)

	_, statErr := os.Stat(recordPath)
	assert.True(t, os.IsNotExist(statErr), "no file may be written without a recording")
}

func TestPlayReplaysSavedRecording(t *testing.T) {
	s, fake, _ := newTestSession(t)

	require.NoError(t, s.StartRecording())
	fake.send("a", model.TransitionDown)
	fake.send("a", model.TransitionUp)
	_, ok, err := s.StopRecording("")
	require.NoError(t, err)
	require.True(t, ok)

	events := s.Subscribe(8)
	s.Play("", playback.RepeatOnce, 1)

	deadline := time.After(5 * time.Second)
	for {
		select {
		case event := <-events:
			if event.Type == EventPlaybackChanged && !event.Active {
				assert.Equal(t, 1, fake.pressCount())
				return
			}
		case <-deadline:
			t.Fatal("playback did not finish in time")
		}
	}
}

func TestPlayMissingFileIsNoOp(t *testing.T) {
	s, fake, _ := newTestSession(t)

	s.Play("", playback.RepeatOnce, 1)
	time.Sleep(20 * time.Millisecond)

	assert.False(t, s.IsPlaying())
	assert.Equal(t, 0, fake.pressCount())
}

func TestShutdownClosesSubscribers(t *testing.T) {
	s, fake, _ := newTestSession(t)

	require.NoError(t, s.SetMonitoring(true))
	events := s.Subscribe(4)

	s.Shutdown()
	s.Shutdown()

	_, open := <-events
	assert.False(t, open)
	assert.False(t, fake.hooked)
}
