package main

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/yejue/key-overlay/internal/config"
	"github.com/yejue/key-overlay/internal/core/playback"
	"github.com/yejue/key-overlay/internal/core/session"
	"github.com/yejue/key-overlay/internal/hook"
	"github.com/yejue/key-overlay/internal/platform"
	"github.com/yejue/key-overlay/internal/storage"
	"github.com/yejue/key-overlay/internal/ui/controls"
	"github.com/yejue/key-overlay/internal/ui/overlay"
	"github.com/yejue/key-overlay/internal/ui/tray"
)

const appName = "key-overlay"

func main() {
	cfg := config.NewConfig()

	logger, err := newLogger(cfg.DebugMode)
	if err != nil {
		log.Printf("logger: %v", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()
	sugar := logger.Sugar()

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		sugar.Warnw("another instance is running", "error", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	recordPath := cfg.RecordPath
	if recordPath == "" {
		recordPath, err = storage.DefaultRecordPath(appName)
		if err != nil {
			sugar.Errorw("cannot resolve record path", "error", err)
			return
		}
	}

	settings, err := storage.LoadSettings(appName)
	if err != nil {
		sugar.Warnw("cannot load settings, using defaults", "error", err)
		settings = controls.DefaultSettings()
	}

	fyneApp := app.NewWithID("com.yejue.key-overlay")
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		sugar.Errorw("system tray unsupported on this platform")
		return
	}

	trayWindow := fyneApp.NewWindow("Key Overlay")
	trayWindow.SetContent(widget.NewLabel("Key Overlay is running in the system tray."))
	trayWindow.SetCloseIntercept(func() {
		trayWindow.Hide()
	})
	trayWindow.Hide()
	desktopApp.SetSystemTrayWindow(trayWindow)

	keySession := session.New(hook.NewSystemKeyboard(), sugar, session.Config{
		DefaultRecordPath: recordPath,
		SliceInterval:     cfg.SliceInterval(),
	})

	overlayWindow := overlay.New(fyneApp, overlay.Config{
		AutoClearDelay: settings.AutoClearDelay,
	})

	var trayManager *tray.Manager
	var panel *controls.Window

	toggleMonitor := func() {
		if err := keySession.SetMonitoring(!keySession.IsMonitoring()); err != nil {
			sugar.Errorw("cannot toggle monitoring", "error", err)
			return
		}
		trayManager.SetMonitoring(keySession.IsMonitoring())
		panel.SetMonitoring(keySession.IsMonitoring())
	}

	toggleRecord := func() {
		if keySession.IsRecording() {
			path, ok, err := keySession.StopRecording("")
			if err != nil {
				sugar.Errorw("cannot save recording", "error", err)
				return
			}
			if ok {
				panel.SetStatus("Saved " + path)
			}
			return
		}
		if err := keySession.StartRecording(); err != nil {
			sugar.Errorw("cannot start recording", "error", err)
			return
		}
		trayManager.SetMonitoring(true)
		panel.SetMonitoring(true)
	}

	toggleOverlay := func() {
		overlayWindow.Toggle()
		panel.SetOverlayVisible(overlayWindow.Visible())
		settings.ShowOverlay = overlayWindow.Visible()
		if err := storage.SaveSettings(appName, settings); err != nil {
			sugar.Warnw("cannot save settings", "error", err)
		}
	}

	panel = controls.New(fyneApp, settings, cfg.CountdownSeconds, controls.Callbacks{
		OnMonitorToggle: func() { toggleMonitor() },
		OnRecordToggle:  func() { toggleRecord() },
		OnOverlayToggle: func() { toggleOverlay() },
		OnPlay: func(path string, mode playback.RepeatMode, count int) {
			keySession.Play(path, mode, count)
		},
		OnStopPlayback: func() {
			keySession.StopPlayback()
		},
		OnSettingsChanged: func(updated controls.Settings) {
			applyAutostart := updated.Autostart != settings.Autostart
			settings = updated
			overlayWindow.UpdateConfig(overlay.Config{AutoClearDelay: settings.AutoClearDelay})
			if err := storage.SaveSettings(appName, settings); err != nil {
				sugar.Warnw("cannot save settings", "error", err)
			}
			if !applyAutostart {
				return
			}
			var autostartErr error
			if settings.Autostart {
				autostartErr = platform.EnableAutostart(appName)
			} else {
				autostartErr = platform.DisableAutostart(appName)
			}
			if autostartErr != nil {
				sugar.Warnw("cannot update autostart", "enabled", settings.Autostart, "error", autostartErr)
			}
			trayManager.SetAutostart(settings.Autostart)
		},
	})

	trayManager = tray.New(desktopApp, tray.Callbacks{
		OnShowControls: func() {
			panel.Show()
		},
		OnToggleMonitor: func() { toggleMonitor() },
		OnToggleRecord:  func() { toggleRecord() },
		OnPlayLast: func() {
			keySession.Play("", playback.RepeatOnce, 1)
		},
		OnPlayLastN: func() {
			keySession.Play("", playback.RepeatNTimes, settings.DefaultPlayCount)
		},
		OnLoopLast: func() {
			keySession.Play("", playback.RepeatLoop, 0)
		},
		OnStopPlayback: func() {
			keySession.StopPlayback()
		},
		OnToggleOverlay: func() { toggleOverlay() },
		OnToggleAutostart: func() {
			settings.Autostart = !settings.Autostart
			var autostartErr error
			if settings.Autostart {
				autostartErr = platform.EnableAutostart(appName)
			} else {
				autostartErr = platform.DisableAutostart(appName)
			}
			if autostartErr != nil {
				sugar.Warnw("cannot update autostart", "enabled", settings.Autostart, "error", autostartErr)
			}
			if err := storage.SaveSettings(appName, settings); err != nil {
				sugar.Warnw("cannot save settings", "error", err)
			}
			trayManager.SetAutostart(settings.Autostart)
		},
		OnQuit: func() {
			keySession.Shutdown()
			fyneApp.Quit()
		},
	})

	events := keySession.Subscribe(16)
	go func() {
		for event := range events {
			switch event.Type {
			case session.EventKeysChanged:
				overlayWindow.SetKeys(event.Keys)
			case session.EventRecordingChanged:
				active := event.Active
				fyne.Do(func() {
					trayManager.SetRecording(active)
					panel.SetRecording(active)
				})
			case session.EventPlaybackChanged:
				active := event.Active
				fyne.Do(func() {
					trayManager.SetPlaying(active)
					panel.SetPlaying(active)
				})
			}
		}
	}()

	if settings.ShowOverlay {
		overlayWindow.Show()
	}
	if err := keySession.SetMonitoring(true); err != nil {
		sugar.Warnw("cannot attach keyboard hook", "error", err)
	}
	trayManager.SetMonitoring(keySession.IsMonitoring())
	trayManager.SetAutostart(settings.Autostart)
	panel.SetMonitoring(keySession.IsMonitoring())
	panel.SetOverlayVisible(overlayWindow.Visible())

	panel.Show()
	fyneApp.Run()
	keySession.Shutdown()
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
