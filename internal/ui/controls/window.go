// Package controls implements the control panel window: monitoring,
// recording and playback actions around the core session.
package controls

import (
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/yejue/key-overlay/internal/core/playback"
)

const (
	modeOnce   = "Play once"
	modeNTimes = "Play N times"
	modeLoop   = "Loop"
)

// Callbacks defines control panel action handlers.
type Callbacks struct {
	OnMonitorToggle   func()
	OnRecordToggle    func()
	OnOverlayToggle   func()
	OnPlay            func(path string, mode playback.RepeatMode, count int)
	OnStopPlayback    func()
	OnSettingsChanged func(Settings)
}

// Window is the control panel.
type Window struct {
	window    fyne.Window
	settings  Settings
	callbacks Callbacks

	countdownSeconds int
	selectedPath     string // empty means the last recording

	monitorButton *widget.Button
	recordButton  *widget.Button
	overlayButton *widget.Button
	playButton    *widget.Button
	modeSelect    *widget.Select
	countEntry    *widget.Entry
	fileLabel     *widget.Label
	statusLabel   *widget.Label

	playing bool
}

// New creates the control panel window.
func New(app fyne.App, settings Settings, countdownSeconds int, callbacks Callbacks) *Window {
	window := app.NewWindow("Key Overlay Controls")

	panel := &Window{
		window:           window,
		settings:         settings,
		callbacks:        callbacks,
		countdownSeconds: countdownSeconds,
	}

	panel.monitorButton = widget.NewButton("Start monitoring", func() {
		if panel.callbacks.OnMonitorToggle != nil {
			panel.callbacks.OnMonitorToggle()
		}
	})
	panel.recordButton = widget.NewButton("Start recording", func() {
		if panel.callbacks.OnRecordToggle != nil {
			panel.callbacks.OnRecordToggle()
		}
	})
	panel.overlayButton = widget.NewButton("Hide overlay", func() {
		if panel.callbacks.OnOverlayToggle != nil {
			panel.callbacks.OnOverlayToggle()
		}
	})

	panel.fileLabel = widget.NewLabel("Last recording")
	chooseFile := widget.NewButton("Choose file...", panel.handleChooseFile)
	useLast := widget.NewButton("Use last recording", func() {
		panel.selectedPath = ""
		panel.fileLabel.SetText("Last recording")
	})

	panel.countEntry = widget.NewEntry()
	panel.countEntry.SetText(strconv.Itoa(settings.DefaultPlayCount))
	panel.countEntry.Disable()

	panel.modeSelect = widget.NewSelect([]string{modeOnce, modeNTimes, modeLoop}, func(selected string) {
		if selected == modeNTimes {
			panel.countEntry.Enable()
			return
		}
		panel.countEntry.Disable()
	})
	panel.modeSelect.SetSelected(modeOnce)

	panel.playButton = widget.NewButton("Play", panel.handlePlayToggle)
	panel.statusLabel = widget.NewLabel("")

	form := container.NewVBox(
		widget.NewLabelWithStyle("Monitoring", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(panel.monitorButton, panel.recordButton, panel.overlayButton),
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Playback", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(panel.fileLabel, chooseFile, useLast),
		container.NewHBox(panel.modeSelect, widget.NewLabel("times"), panel.countEntry, layout.NewSpacer(), panel.playButton),
		widget.NewSeparator(),
		panel.buildSettingsForm(),
		panel.statusLabel,
	)

	window.SetContent(form)
	window.Resize(fyne.NewSize(560, 420))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	return panel
}

// Show displays the control panel.
func (panel *Window) Show() {
	panel.window.Show()
	panel.window.RequestFocus()
}

// SetMonitoring updates the monitor button label.
func (panel *Window) SetMonitoring(enabled bool) {
	if enabled {
		panel.monitorButton.SetText("Stop monitoring")
		return
	}
	panel.monitorButton.SetText("Start monitoring")
}

// SetRecording updates the record button label.
func (panel *Window) SetRecording(active bool) {
	if active {
		panel.recordButton.SetText("Stop recording")
		return
	}
	panel.recordButton.SetText("Start recording")
}

// SetPlaying updates the play button label.
func (panel *Window) SetPlaying(active bool) {
	panel.playing = active
	if active {
		panel.playButton.SetText("Stop playback")
		return
	}
	panel.playButton.SetText("Play")
}

// SetOverlayVisible updates the overlay toggle label.
func (panel *Window) SetOverlayVisible(visible bool) {
	if visible {
		panel.overlayButton.SetText("Hide overlay")
		return
	}
	panel.overlayButton.SetText("Show overlay")
}

// SetStatus shows a short status line (e.g. the saved recording path).
func (panel *Window) SetStatus(status string) {
	panel.statusLabel.SetText(status)
}

func (panel *Window) handleChooseFile() {
	fileOpen := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		panel.selectedPath = reader.URI().Path()
		panel.fileLabel.SetText(reader.URI().Name())
		_ = reader.Close()
	}, panel.window)
	fileOpen.Show()
}

func (panel *Window) handlePlayToggle() {
	if panel.playing {
		if panel.callbacks.OnStopPlayback != nil {
			panel.callbacks.OnStopPlayback()
		}
		return
	}

	mode, count := panel.selectedMode()
	path := panel.selectedPath
	RunCountdown(panel.window, panel.countdownSeconds, func() {
		if panel.callbacks.OnPlay != nil {
			panel.callbacks.OnPlay(path, mode, count)
		}
	})
}

func (panel *Window) selectedMode() (playback.RepeatMode, int) {
	switch panel.modeSelect.Selected {
	case modeLoop:
		return playback.RepeatLoop, 0
	case modeNTimes:
		count, err := strconv.Atoi(panel.countEntry.Text)
		if err != nil || count < 1 {
			count = panel.settings.DefaultPlayCount
		}
		return playback.RepeatNTimes, count
	default:
		return playback.RepeatOnce, 1
	}
}

func (panel *Window) buildSettingsForm() fyne.CanvasObject {
	clearEntry := widget.NewEntry()
	clearEntry.SetText(strconv.Itoa(int(panel.settings.AutoClearDelay / time.Millisecond)))

	playCountEntry := widget.NewEntry()
	playCountEntry.SetText(strconv.Itoa(panel.settings.DefaultPlayCount))

	autostartCheck := widget.NewCheck("Start at login", nil)
	autostartCheck.SetChecked(panel.settings.Autostart)

	saveButton := widget.NewButton("Save settings", func() {
		settings := panel.settings
		if millis, err := strconv.Atoi(clearEntry.Text); err == nil && millis > 0 {
			settings.AutoClearDelay = time.Duration(millis) * time.Millisecond
		}
		if count, err := strconv.Atoi(playCountEntry.Text); err == nil && count > 0 {
			settings.DefaultPlayCount = count
		}
		settings.Autostart = autostartCheck.Checked

		panel.settings = settings
		if panel.callbacks.OnSettingsChanged != nil {
			panel.callbacks.OnSettingsChanged(settings)
		}
	})

	return container.NewVBox(
		widget.NewLabelWithStyle("Settings", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Overlay clear delay"), clearEntry, widget.NewLabel("ms")),
		container.NewHBox(widget.NewLabel("Default play count"), playCountEntry),
		autostartCheck,
		saveButton,
	)
}
