package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShowControls    func()
	OnToggleMonitor   func()
	OnToggleRecord    func()
	OnPlayLast        func()
	OnPlayLastN       func()
	OnLoopLast        func()
	OnStopPlayback    func()
	OnToggleOverlay   func()
	OnToggleAutostart func()
	OnQuit            func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	statusItem    *fyne.MenuItem
	monitorItem   *fyne.MenuItem
	recordItem    *fyne.MenuItem
	playItem      *fyne.MenuItem
	playNItem     *fyne.MenuItem
	loopItem      *fyne.MenuItem
	stopItem      *fyne.MenuItem
	overlayItem   *fyne.MenuItem
	autostartItem *fyne.MenuItem
	callbacks     Callbacks
	recording     bool
	playing       bool
	statusLabel   string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: idle", nil)
	manager.statusItem.Disabled = true

	manager.monitorItem = fyne.NewMenuItem("Start monitoring", func() {
		if manager.callbacks.OnToggleMonitor != nil {
			manager.callbacks.OnToggleMonitor()
		}
	})

	manager.recordItem = fyne.NewMenuItem("Start recording", func() {
		if manager.callbacks.OnToggleRecord != nil {
			manager.callbacks.OnToggleRecord()
		}
	})

	manager.playItem = fyne.NewMenuItem("Play last recording", func() {
		if manager.callbacks.OnPlayLast != nil {
			manager.callbacks.OnPlayLast()
		}
	})

	manager.playNItem = fyne.NewMenuItem("Play last N times", func() {
		if manager.callbacks.OnPlayLastN != nil {
			manager.callbacks.OnPlayLastN()
		}
	})

	manager.loopItem = fyne.NewMenuItem("Loop last recording", func() {
		if manager.callbacks.OnLoopLast != nil {
			manager.callbacks.OnLoopLast()
		}
	})

	manager.stopItem = fyne.NewMenuItem("Stop playback", func() {
		if manager.callbacks.OnStopPlayback != nil {
			manager.callbacks.OnStopPlayback()
		}
	})
	manager.stopItem.Disabled = true

	manager.overlayItem = fyne.NewMenuItem("Toggle overlay", func() {
		if manager.callbacks.OnToggleOverlay != nil {
			manager.callbacks.OnToggleOverlay()
		}
	})

	manager.autostartItem = fyne.NewMenuItem("Start at login", func() {
		if manager.callbacks.OnToggleAutostart != nil {
			manager.callbacks.OnToggleAutostart()
		}
	})

	manager.refreshMenu()

	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.refreshStatus()
}

// SetRecording updates record-related menu items.
func (manager *Manager) SetRecording(recording bool) {
	manager.recording = recording
	if recording {
		manager.recordItem.Label = "Stop recording"
	} else {
		manager.recordItem.Label = "Start recording"
	}
	manager.refreshStatus()
}

// SetPlaying updates playback-related menu items.
func (manager *Manager) SetPlaying(playing bool) {
	manager.playing = playing
	manager.stopItem.Disabled = !playing
	manager.playItem.Disabled = playing
	manager.playNItem.Disabled = playing
	manager.loopItem.Disabled = playing
	manager.refreshStatus()
}

// SetAutostart updates the autostart check mark.
func (manager *Manager) SetAutostart(enabled bool) {
	manager.autostartItem.Checked = enabled
	manager.refreshMenu()
}

// SetMonitoring updates the monitor menu item label.
func (manager *Manager) SetMonitoring(enabled bool) {
	if enabled {
		manager.monitorItem.Label = "Stop monitoring"
	} else {
		manager.monitorItem.Label = "Start monitoring"
	}
	manager.refreshMenu()
}

func (manager *Manager) refreshStatus() {
	status := manager.statusLabel
	switch {
	case manager.recording:
		status = "recording"
	case manager.playing:
		status = "playing"
	case status == "":
		status = "idle"
	}
	manager.statusItem.Label = fmt.Sprintf("Status: %s", status)
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(fyne.NewMenu("Key Overlay",
			manager.statusItem,
			fyne.NewMenuItem("Controls", func() {
				if manager.callbacks.OnShowControls != nil {
					manager.callbacks.OnShowControls()
				}
			}),
			manager.monitorItem,
			manager.recordItem,
			manager.playItem,
			manager.playNItem,
			manager.loopItem,
			manager.stopItem,
			manager.overlayItem,
			manager.autostartItem,
			fyne.NewMenuItem("Quit", func() {
				if manager.callbacks.OnQuit != nil {
					manager.callbacks.OnQuit()
				}
			}),
		))
	}
}
