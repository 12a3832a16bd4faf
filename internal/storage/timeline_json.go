package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yejue/key-overlay/internal/core/model"
)

const recordFileName = "last_record.json"

// ErrNoTimeline indicates the requested timeline file does not exist.
var ErrNoTimeline = errors.New("timeline file not found")

// DefaultRecordPath returns the per-user location of the last recording.
func DefaultRecordPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, recordFileName), nil
}

// SaveTimeline serializes the timeline to path, creating parent directories
// as needed. An existing file is overwritten.
func SaveTimeline(path string, timeline model.Timeline) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create record directory: %w", err)
	}

	serialized, err := json.MarshalIndent(timeline, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal timeline: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write timeline file: %w", err)
	}
	return nil
}

// rawTimeline mirrors the on-disk shape with loosely typed events so a
// single malformed entry does not abort the whole load.
type rawTimeline struct {
	Version   int             `json:"version"`
	CreatedAt float64         `json:"created_at"`
	Events    []rawTimelineEvent `json:"events"`
}

type rawTimelineEvent struct {
	Elapsed    *float64 `json:"t"`
	Transition string   `json:"type"`
	Name       string   `json:"name"`
	ScanCode   *int     `json:"scan_code"`
}

// LoadTimeline reads a timeline file, coercing malformed events instead of
// failing: a missing elapsed stamp defaults to 0, events without a name or
// with an unknown transition are skipped.
func LoadTimeline(path string) (model.Timeline, error) {
	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.Timeline{}, ErrNoTimeline
		}
		return model.Timeline{}, fmt.Errorf("read timeline file: %w", err)
	}

	var fileData rawTimeline
	if err := json.Unmarshal(rawData, &fileData); err != nil {
		return model.Timeline{}, fmt.Errorf("parse timeline json: %w", err)
	}

	timeline := model.Timeline{
		Version:   fileData.Version,
		CreatedAt: fileData.CreatedAt,
		Events:    make([]model.KeyEvent, 0, len(fileData.Events)),
	}
	for _, raw := range fileData.Events {
		transition := model.Transition(raw.Transition)
		if raw.Name == "" || !transition.Valid() {
			continue
		}
		elapsed := 0.0
		if raw.Elapsed != nil {
			elapsed = *raw.Elapsed
		}
		timeline.Events = append(timeline.Events, model.KeyEvent{
			Elapsed:    elapsed,
			Transition: transition,
			Name:       raw.Name,
			ScanCode:   raw.ScanCode,
		})
	}
	return timeline, nil
}
