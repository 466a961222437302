package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hoverclock/internal/core/model"
	"hoverclock/internal/core/position"
	"hoverclock/internal/core/scheduler"
	"hoverclock/internal/core/settings"
	"hoverclock/internal/core/timer"
	"hoverclock/internal/platform"
	"hoverclock/internal/sampler"
	"hoverclock/internal/storage"
	"hoverclock/internal/ui/overlay"
	"hoverclock/internal/ui/preferences"
	"hoverclock/internal/ui/tray"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/rs/zerolog"
)

const appName = "HoverClock"

// The toolkit exposes no monitor geometry, so clamping works against a
// common panel size. An off-screen position on a smaller panel is pulled
// back in by the same clamp on the next drag.
var screenBounds = position.Bounds{Width: 1920, Height: 1080}

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	log := newLogger(*debug)

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.Error().Err(err).Msg("another instance is already running")
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	var store *storage.Store
	if fileStore, err := storage.New(appName, log); err != nil {
		log.Warn().Err(err).Msg("no config directory, settings will not persist")
	} else {
		store = fileStore
	}

	config := model.Default()
	if store != nil {
		config = store.Load()
	}

	manager := settings.NewManager(config, store, log)
	engine := timer.New()
	probes := sampler.New(log)
	sched := scheduler.New(manager, engine, probes, scheduler.Config{}, log)

	fyneApp := app.NewWithID("com.hoverclock.app")
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		log.Error().Msg("system tray unsupported on this platform")
		return
	}

	overlayWindow := overlay.New(fyneApp, manager.Config())
	overlayWindow.SetOnDrag(func(deltaX, deltaY float64) {
		current := manager.Config()
		resolved := position.Resolve(current.Position, current.Scale, screenBounds)
		manager.SetPosition(model.Point{X: resolved.X + deltaX, Y: resolved.Y + deltaY}, screenBounds)
	})

	service := platform.NewService()
	loginEnabled := false

	var trayManager *tray.Manager
	var prefsWindow *preferences.Window

	prefsWindow = preferences.New(fyneApp, manager.Config(), func(updated model.Config) {
		manager.Apply(updated)
		applied := manager.Config()
		trayManager.SetShowSeconds(applied.ShowSeconds)
		trayManager.SetShowSubtext(applied.ShowTimeSubtext)
		for _, metric := range model.AllMetrics() {
			trayManager.SetMetric(metric, applied.MetricEnabled(metric))
		}
	})

	trayManager = tray.New(desktopApp, manager.Config(), tray.Callbacks{
		OnPreferences: func() {
			prefsWindow.UpdateConfig(manager.Config())
			prefsWindow.Show()
		},
		OnArmTimer: func(duration time.Duration) {
			// A menu preset arms and starts in one action.
			engine.Arm(duration)
			engine.Start()
		},
		OnToggleTimer: func() {
			if engine.State().Phase == timer.PhaseRunning {
				engine.Pause()
			} else {
				engine.Start()
			}
		},
		OnResetTimer: func() {
			engine.Reset()
		},
		OnToggleSeconds: func() {
			trayManager.SetShowSeconds(manager.ToggleShowSeconds())
		},
		OnToggleSubtext: func() {
			trayManager.SetShowSubtext(manager.ToggleTimeSubtext())
		},
		OnToggleMetric: func(metric model.Metric) {
			trayManager.SetMetric(metric, manager.ToggleMetric(metric))
		},
		OnScaleStep: func(direction int) {
			manager.StepScale(direction, screenBounds)
		},
		OnPickColors: func(preset tray.ColorPreset) {
			manager.SetBackground(preset.Background)
			manager.SetForeground(preset.Foreground)
		},
		OnToggleLoginItem: func() {
			execPath, err := os.Executable()
			if err != nil {
				log.Error().Err(err).Msg("resolve executable path")
				return
			}
			if loginEnabled {
				err = service.DisableLoginItem(appName)
			} else {
				err = service.EnableLoginItem(appName, execPath)
			}
			if err != nil {
				log.Error().Err(err).Msg("update login item")
				return
			}
			loginEnabled = !loginEnabled
			trayManager.SetLoginItem(loginEnabled)
		},
		OnQuit: func() {
			sched.Stop()
			fyneApp.Quit()
		},
	})

	frames := sched.Subscribe(5)
	go func() {
		for frame := range frames {
			overlayWindow.ApplyFrame(frame)
			fyne.Do(func() {
				trayManager.SetTimerPhase(frame.TimerPhase)
				trayManager.SetStatus(statusText(frame))
			})
		}
	}()

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-interrupts
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		sched.Stop()
		fyne.Do(func() {
			fyneApp.Quit()
		})
	}()

	sched.Start()
	overlayWindow.Show()
	fyneApp.Run()

	sched.Stop()
}

func statusText(frame scheduler.Frame) string {
	if frame.TimerText != "" {
		return "timer " + frame.TimerText
	}
	return frame.Clock
}

func newLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
