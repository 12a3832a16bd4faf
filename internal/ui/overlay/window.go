// Package overlay renders the currently held keys in a small undecorated
// always-available window.
package overlay

import (
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

// Config defines overlay visuals and behavior.
type Config struct {
	// AutoClearDelay is how long the key text stays visible after the last
	// update. Zero disables auto-clearing.
	AutoClearDelay time.Duration
}

// Window manages the key display overlay.
type Window struct {
	window     fyne.Window
	config     Config
	background *canvas.Rectangle
	keysLabel  *canvas.Text

	mu         sync.Mutex
	clearTimer *time.Timer
	visible    bool
}

const (
	overlayWidth  = float32(720)
	overlayHeight = float32(140)
)

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates the overlay window. It starts hidden.
func New(app fyne.App, config Config) *Window {
	window := app.NewWindow("Key Overlay")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(color.NRGBA{R: 20, G: 20, B: 24, A: 180})
	background.CornerRadius = 14

	keysLabel := canvas.NewText("", color.NRGBA{R: 255, G: 255, B: 255, A: 220})
	keysLabel.Alignment = fyne.TextAlignCenter
	keysLabel.TextStyle = fyne.TextStyle{Bold: true}
	keysLabel.TextSize = 36

	window.SetContent(container.NewStack(background, container.NewCenter(keysLabel)))
	window.Resize(fyne.NewSize(overlayWidth, overlayHeight))

	return &Window{
		window:     window,
		config:     config,
		background: background,
		keysLabel:  keysLabel,
	}
}

// SetKeys updates the displayed key combination and restarts the auto-clear
// timer. Safe to call from any goroutine.
func (overlay *Window) SetKeys(text string) {
	fyne.Do(func() {
		overlay.keysLabel.Text = text
		overlay.keysLabel.Refresh()
	})
	overlay.resetClearTimer(text)
}

// Show makes the overlay visible.
func (overlay *Window) Show() {
	overlay.mu.Lock()
	overlay.visible = true
	overlay.mu.Unlock()
	overlay.window.Show()
}

// Hide conceals the overlay without destroying it.
func (overlay *Window) Hide() {
	overlay.mu.Lock()
	overlay.visible = false
	overlay.mu.Unlock()
	overlay.window.Hide()
}

// Toggle flips visibility and returns the new state.
func (overlay *Window) Toggle() bool {
	overlay.mu.Lock()
	overlay.visible = !overlay.visible
	visible := overlay.visible
	overlay.mu.Unlock()

	if visible {
		overlay.window.Show()
	} else {
		overlay.window.Hide()
	}
	return visible
}

// Visible reports whether the overlay is shown.
func (overlay *Window) Visible() bool {
	overlay.mu.Lock()
	defer overlay.mu.Unlock()
	return overlay.visible
}

// UpdateConfig replaces overlay behavior settings.
func (overlay *Window) UpdateConfig(config Config) {
	overlay.mu.Lock()
	overlay.config = config
	overlay.mu.Unlock()
}

func (overlay *Window) resetClearTimer(text string) {
	overlay.mu.Lock()
	defer overlay.mu.Unlock()

	if overlay.clearTimer != nil {
		overlay.clearTimer.Stop()
		overlay.clearTimer = nil
	}
	if text == "" || overlay.config.AutoClearDelay <= 0 {
		return
	}
	overlay.clearTimer = time.AfterFunc(overlay.config.AutoClearDelay, func() {
		fyne.Do(func() {
			overlay.keysLabel.Text = ""
			overlay.keysLabel.Refresh()
		})
	})
}
