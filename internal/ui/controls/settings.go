package controls

import "time"

// Settings defines editable user preferences.
type Settings struct {
	// AutoClearDelay is how long the overlay keeps showing keys after the
	// last transition.
	AutoClearDelay time.Duration
	// DefaultPlayCount is the preset for the "play N times" mode.
	DefaultPlayCount int
	Autostart        bool
	ShowOverlay      bool
}

// DefaultSettings returns default settings for Key Overlay.
func DefaultSettings() Settings {
	return Settings{
		AutoClearDelay:   1200 * time.Millisecond,
		DefaultPlayCount: 5,
		Autostart:        false,
		ShowOverlay:      true,
	}
}
