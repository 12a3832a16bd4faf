package recorder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yejue/key-overlay/internal/core/model"
)

func rawDown(name string, scanCode int) model.RawKeyEvent {
	return model.RawKeyEvent{Name: name, ScanCode: scanCode, Transition: model.TransitionDown}
}

func TestStartIsIdempotent(t *testing.T) {
	rec := New()

	assert.True(t, rec.Start())
	assert.False(t, rec.Start())
	assert.True(t, rec.IsRecording())
}

func TestRecordIgnoredWhenIdle(t *testing.T) {
	rec := New()

	rec.Record(rawDown("a", 30))

	_, ok := rec.Stop()
	assert.False(t, ok)
	assert.Equal(t, 0, rec.EventCount())
}

func TestStopReturnsTimeline(t *testing.T) {
	rec := New()
	require.True(t, rec.Start())

	rec.Record(rawDown("a", 30))
	rec.Record(model.RawKeyEvent{Name: "a", ScanCode: 30, Transition: model.TransitionUp})

	timeline, ok := rec.Stop()
	require.True(t, ok)
	assert.False(t, rec.IsRecording())

	assert.Equal(t, model.TimelineVersion, timeline.Version)
	assert.InDelta(t, float64(time.Now().Unix()), timeline.CreatedAt, 2)
	require.Len(t, timeline.Events, 2)

	assert.Equal(t, "a", timeline.Events[0].Name)
	assert.Equal(t, model.TransitionDown, timeline.Events[0].Transition)
	require.NotNil(t, timeline.Events[0].ScanCode)
	assert.Equal(t, 30, *timeline.Events[0].ScanCode)
	assert.Equal(t, model.TransitionUp, timeline.Events[1].Transition)
}

func TestElapsedIsMonotonic(t *testing.T) {
	rec := New()
	require.True(t, rec.Start())

	rec.Record(rawDown("a", 30))
	time.Sleep(5 * time.Millisecond)
	rec.Record(rawDown("b", 48))

	timeline, ok := rec.Stop()
	require.True(t, ok)
	require.Len(t, timeline.Events, 2)

	assert.GreaterOrEqual(t, timeline.Events[0].Elapsed, 0.0)
	assert.Greater(t, timeline.Events[1].Elapsed, timeline.Events[0].Elapsed)
}

func TestRestartResetsLog(t *testing.T) {
	rec := New()
	require.True(t, rec.Start())
	rec.Record(rawDown("a", 30))

	_, ok := rec.Stop()
	require.True(t, ok)

	require.True(t, rec.Start())
	assert.Equal(t, 0, rec.EventCount())

	rec.Record(rawDown("b", 48))
	timeline, ok := rec.Stop()
	require.True(t, ok)
	require.Len(t, timeline.Events, 1)
	assert.Equal(t, "b", timeline.Events[0].Name)
}

func TestStopWhenIdle(t *testing.T) {
	rec := New()

	_, ok := rec.Stop()
	assert.False(t, ok)
}
