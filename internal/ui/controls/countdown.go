package controls

import (
	"fmt"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

const countdownTick = 100 * time.Millisecond

// RunCountdown shows a cancellable countdown dialog over the parent
// window and invokes onDone when it elapses. A non-positive duration
// skips the dialog entirely.
func RunCountdown(parent fyne.Window, seconds int, onDone func()) {
	if seconds <= 0 {
		onDone()
		return
	}

	label := widget.NewLabel(countdownText(seconds))
	progress := widget.NewProgressBar()
	progress.Max = float64(seconds)
	progress.SetValue(0)

	popup := dialog.NewCustom("Playback", "Cancel", container.NewVBox(label, progress), parent)

	var mu sync.Mutex
	cancelled := false
	finished := false

	popup.SetOnClosed(func() {
		mu.Lock()
		if !finished {
			cancelled = true
		}
		mu.Unlock()
	})
	popup.Show()

	go func() {
		start := time.Now()
		total := time.Duration(seconds) * time.Second

		ticker := time.NewTicker(countdownTick)
		defer ticker.Stop()

		for range ticker.C {
			mu.Lock()
			if cancelled {
				mu.Unlock()
				return
			}
			mu.Unlock()

			elapsed := time.Since(start)
			if elapsed >= total {
				break
			}

			remaining := int((total - elapsed + time.Second - 1) / time.Second)
			fyne.Do(func() {
				label.SetText(countdownText(remaining))
				progress.SetValue(elapsed.Seconds())
			})
		}

		mu.Lock()
		finished = true
		mu.Unlock()

		fyne.Do(popup.Hide)
		onDone()
	}()
}

func countdownText(remaining int) string {
	return fmt.Sprintf("Playback starts in %d...", remaining)
}
