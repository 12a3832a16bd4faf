package model

// Transition is the direction of a single key event.
type Transition string

const (
	TransitionDown Transition = "down"
	TransitionUp   Transition = "up"
)

// Valid reports whether the transition is one of the known directions.
func (transition Transition) Valid() bool {
	return transition == TransitionDown || transition == TransitionUp
}

// TimelineVersion is the current on-disk format version.
const TimelineVersion = 1

// RawKeyEvent is a key transition as delivered by the hook, before
// normalization or time stamping.
type RawKeyEvent struct {
	Name       string
	ScanCode   int
	Transition Transition
}

// KeyEvent is one recorded key transition. Elapsed is seconds since the
// recording started and is non-decreasing within a Timeline.
type KeyEvent struct {
	Elapsed    float64    `json:"t"`
	Transition Transition `json:"type"`
	Name       string     `json:"name"`
	ScanCode   *int       `json:"scan_code"`
}

// Timeline is an ordered recording of key transitions.
type Timeline struct {
	Version   int        `json:"version"`
	CreatedAt float64    `json:"created_at"`
	Events    []KeyEvent `json:"events"`
}

// UniqueKeyNames returns every distinct key name appearing in the timeline,
// in first-appearance order. Used for the emergency release on playback exit.
func (timeline Timeline) UniqueKeyNames() []string {
	seen := make(map[string]struct{}, len(timeline.Events))
	names := make([]string, 0, len(timeline.Events))
	for _, event := range timeline.Events {
		if event.Name == "" {
			continue
		}
		if _, ok := seen[event.Name]; ok {
			continue
		}
		seen[event.Name] = struct{}{}
		names = append(names, event.Name)
	}
	return names
}

// Duration returns the elapsed stamp of the final event, in seconds.
func (timeline Timeline) Duration() float64 {
	if len(timeline.Events) == 0 {
		return 0
	}
	return timeline.Events[len(timeline.Events)-1].Elapsed
}
