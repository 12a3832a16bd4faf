package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yejue/key-overlay/internal/core/model"
	"github.com/yejue/key-overlay/internal/ui/controls"
)

func sampleTimeline() model.Timeline {
	scanCode := 30
	return model.Timeline{
		Version:   model.TimelineVersion,
		CreatedAt: 1756166400.25,
		Events: []model.KeyEvent{
			{Elapsed: 0, Transition: model.TransitionDown, Name: "a", ScanCode: &scanCode},
			{Elapsed: 0.1, Transition: model.TransitionUp, Name: "a", ScanCode: &scanCode},
		},
	}
}

func TestTimelineRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records", "last_record.json")
	saved := sampleTimeline()

	require.NoError(t, SaveTimeline(path, saved))

	loaded, err := LoadTimeline(path)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestLoadTimelineMissingFile(t *testing.T) {
	_, err := LoadTimeline(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, ErrNoTimeline)
}

func TestLoadTimelineCoercesMalformedEvents(t *testing.T) {
	raw := `{
  "version": 1,
  "created_at": 1756166400.0,
  "events": [
    {"type": "down", "name": "a", "scan_code": 30},
    {"t": 0.5, "type": "down", "name": ""},
    {"t": 0.6, "type": "sideways", "name": "b"},
    {"t": 0.7, "type": "up", "name": "a", "scan_code": null}
  ]
}`
	path := filepath.Join(t.TempDir(), "record.json")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	timeline, err := LoadTimeline(path)
	require.NoError(t, err)
	require.Len(t, timeline.Events, 2)

	assert.Equal(t, 0.0, timeline.Events[0].Elapsed)
	assert.Equal(t, model.TransitionDown, timeline.Events[0].Transition)
	require.NotNil(t, timeline.Events[0].ScanCode)
	assert.Equal(t, 30, *timeline.Events[0].ScanCode)

	assert.Equal(t, 0.7, timeline.Events[1].Elapsed)
	assert.Equal(t, model.TransitionUp, timeline.Events[1].Transition)
	assert.Nil(t, timeline.Events[1].ScanCode)
}

func TestLoadTimelineInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "record.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadTimeline(path)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoTimeline)
}

func TestSettingsRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	saved := controls.Settings{
		AutoClearDelay:   800 * time.Millisecond,
		DefaultPlayCount: 3,
		Autostart:        true,
		ShowOverlay:      false,
	}
	require.NoError(t, SaveSettings("key-overlay-test", saved))

	loaded, err := LoadSettings("key-overlay-test")
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestLoadSettingsMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	loaded, err := LoadSettings("key-overlay-test")
	require.NoError(t, err)
	assert.Equal(t, controls.DefaultSettings(), loaded)
}
