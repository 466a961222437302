package tray

import (
	"fmt"
	"time"

	"hoverclock/internal/core/model"
	"hoverclock/internal/core/timer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// ColorPreset pairs a menu label with a background/foreground combination.
type ColorPreset struct {
	Name       string
	Background model.Color
	Foreground model.Color
}

// DefaultPresets returns the built-in color combinations. The first one
// matches the configuration defaults.
func DefaultPresets() []ColorPreset {
	return []ColorPreset{
		{
			Name:       "Dark",
			Background: model.Color{R: 0, G: 0, B: 0, A: 0.55},
			Foreground: model.Color{R: 1, G: 1, B: 1, A: 1},
		},
		{
			Name:       "Light",
			Background: model.Color{R: 1, G: 1, B: 1, A: 0.75},
			Foreground: model.Color{R: 0.1, G: 0.1, B: 0.1, A: 1},
		},
		{
			Name:       "Midnight",
			Background: model.Color{R: 0.05, G: 0.08, B: 0.2, A: 0.7},
			Foreground: model.Color{R: 0.7, G: 0.85, B: 1, A: 1},
		},
		{
			Name:       "Amber",
			Background: model.Color{R: 0.12, G: 0.08, B: 0, A: 0.65},
			Foreground: model.Color{R: 1, G: 0.75, B: 0.25, A: 1},
		},
	}
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnPreferences     func()
	OnArmTimer        func(time.Duration)
	OnToggleTimer     func()
	OnResetTimer      func()
	OnToggleSeconds   func()
	OnToggleSubtext   func()
	OnToggleMetric    func(model.Metric)
	OnScaleStep       func(direction int)
	OnPickColors      func(ColorPreset)
	OnToggleLoginItem func()
	OnQuit            func()
}

// Manager owns the system tray menu and mirrors the current configuration
// into its checkmarks.
type Manager struct {
	app       desktop.App
	callbacks Callbacks
	presets   []ColorPreset

	statusLabel  string
	timerPhase   timer.Phase
	showSeconds  bool
	showSubtext  bool
	metricStates map[model.Metric]bool
	loginItem    bool
}

// New creates a tray manager seeded from the current configuration.
func New(app desktop.App, config model.Config, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:          app,
		callbacks:    callbacks,
		presets:      DefaultPresets(),
		statusLabel:  "starting...",
		timerPhase:   timer.PhaseIdle,
		showSeconds:  config.ShowSeconds,
		showSubtext:  config.ShowTimeSubtext,
		metricStates: map[model.Metric]bool{},
	}
	for _, metric := range model.AllMetrics() {
		manager.metricStates[metric] = config.MetricEnabled(metric)
	}
	manager.refreshMenu()
	return manager
}

// SetStatus updates the status line.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.refreshMenu()
}

// SetTimerPhase relabels the timer controls for the current phase.
func (manager *Manager) SetTimerPhase(phase timer.Phase) {
	if manager.timerPhase == phase {
		return
	}
	manager.timerPhase = phase
	manager.refreshMenu()
}

// SetShowSeconds mirrors the seconds toggle.
func (manager *Manager) SetShowSeconds(enabled bool) {
	manager.showSeconds = enabled
	manager.refreshMenu()
}

// SetShowSubtext mirrors the subtext toggle.
func (manager *Manager) SetShowSubtext(enabled bool) {
	manager.showSubtext = enabled
	manager.refreshMenu()
}

// SetMetric mirrors one metric toggle.
func (manager *Manager) SetMetric(metric model.Metric, enabled bool) {
	manager.metricStates[metric] = enabled
	manager.refreshMenu()
}

// SetLoginItem mirrors the start-at-login toggle.
func (manager *Manager) SetLoginItem(enabled bool) {
	manager.loginItem = enabled
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}

	status := fyne.NewMenuItem(fmt.Sprintf("Status: %s", manager.statusLabel), nil)
	status.Disabled = true

	items := []*fyne.MenuItem{
		status,
		fyne.NewMenuItemSeparator(),
		manager.timerMenu(),
		manager.displayMenu(),
		manager.metricsMenu(),
		manager.colorsMenu(),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", func() {
			if manager.callbacks.OnPreferences != nil {
				manager.callbacks.OnPreferences()
			}
		}),
		manager.loginItemEntry(),
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	}

	manager.app.SetSystemTrayMenu(fyne.NewMenu("HoverClock", items...))
}

func (manager *Manager) timerMenu() *fyne.MenuItem {
	preset := func(label string, duration time.Duration) *fyne.MenuItem {
		return fyne.NewMenuItem(label, func() {
			if manager.callbacks.OnArmTimer != nil {
				manager.callbacks.OnArmTimer(duration)
			}
		})
	}

	toggleLabel := "Start"
	switch manager.timerPhase {
	case timer.PhaseRunning:
		toggleLabel = "Pause"
	case timer.PhasePaused:
		toggleLabel = "Resume"
	}
	toggle := fyne.NewMenuItem(toggleLabel, func() {
		if manager.callbacks.OnToggleTimer != nil {
			manager.callbacks.OnToggleTimer()
		}
	})

	reset := fyne.NewMenuItem("Reset", func() {
		if manager.callbacks.OnResetTimer != nil {
			manager.callbacks.OnResetTimer()
		}
	})

	root := fyne.NewMenuItem("Timer", nil)
	root.ChildMenu = fyne.NewMenu("",
		preset("5 minutes", 5*time.Minute),
		preset("10 minutes", 10*time.Minute),
		preset("25 minutes", 25*time.Minute),
		preset("1 hour", time.Hour),
		fyne.NewMenuItemSeparator(),
		toggle,
		reset,
	)
	return root
}

func (manager *Manager) displayMenu() *fyne.MenuItem {
	seconds := fyne.NewMenuItem("Show seconds", func() {
		if manager.callbacks.OnToggleSeconds != nil {
			manager.callbacks.OnToggleSeconds()
		}
	})
	seconds.Checked = manager.showSeconds

	subtext := fyne.NewMenuItem("Clock while timing", func() {
		if manager.callbacks.OnToggleSubtext != nil {
			manager.callbacks.OnToggleSubtext()
		}
	})
	subtext.Checked = manager.showSubtext

	bigger := fyne.NewMenuItem("Bigger", func() {
		if manager.callbacks.OnScaleStep != nil {
			manager.callbacks.OnScaleStep(1)
		}
	})
	smaller := fyne.NewMenuItem("Smaller", func() {
		if manager.callbacks.OnScaleStep != nil {
			manager.callbacks.OnScaleStep(-1)
		}
	})

	root := fyne.NewMenuItem("Display", nil)
	root.ChildMenu = fyne.NewMenu("", seconds, subtext, fyne.NewMenuItemSeparator(), bigger, smaller)
	return root
}

func (manager *Manager) metricsMenu() *fyne.MenuItem {
	labels := map[model.Metric]string{
		model.MetricNetwork: "Network throughput",
		model.MetricCPU:     "CPU usage",
		model.MetricMemory:  "Memory usage",
		model.MetricGPU:     "GPU usage",
	}

	var items []*fyne.MenuItem
	for _, metric := range model.AllMetrics() {
		metric := metric
		item := fyne.NewMenuItem(labels[metric], func() {
			if manager.callbacks.OnToggleMetric != nil {
				manager.callbacks.OnToggleMetric(metric)
			}
		})
		item.Checked = manager.metricStates[metric]
		items = append(items, item)
	}

	root := fyne.NewMenuItem("Readouts", nil)
	root.ChildMenu = fyne.NewMenu("", items...)
	return root
}

func (manager *Manager) colorsMenu() *fyne.MenuItem {
	var items []*fyne.MenuItem
	for _, preset := range manager.presets {
		preset := preset
		items = append(items, fyne.NewMenuItem(preset.Name, func() {
			if manager.callbacks.OnPickColors != nil {
				manager.callbacks.OnPickColors(preset)
			}
		}))
	}

	root := fyne.NewMenuItem("Colors", nil)
	root.ChildMenu = fyne.NewMenu("", items...)
	return root
}

func (manager *Manager) loginItemEntry() *fyne.MenuItem {
	item := fyne.NewMenuItem("Start at login", func() {
		if manager.callbacks.OnToggleLoginItem != nil {
			manager.callbacks.OnToggleLoginItem()
		}
	})
	item.Checked = manager.loginItem
	return item
}
