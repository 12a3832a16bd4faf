package session

import "time"

// EventType defines the type of session event.
type EventType string

const (
	EventKeysChanged      EventType = "keys_changed"
	EventRecordingChanged EventType = "recording_changed"
	EventPlaybackChanged  EventType = "playback_changed"
)

// Event represents a session update for observers.
type Event struct {
	Type   EventType
	Keys   string
	Active bool
	At     time.Time
}
