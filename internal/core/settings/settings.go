package settings

import (
	"sync"

	"hoverclock/internal/core/model"
	"hoverclock/internal/core/position"

	"github.com/rs/zerolog"
)

// Persister durably stores the configuration document.
type Persister interface {
	Save(model.Config) error
}

// Manager owns the live configuration. Every user action goes through a
// setter here: the mutation is validated, applied and persisted before the
// setter returns. A failed save is logged and the in-memory document stays
// authoritative for the rest of the session.
type Manager struct {
	mu     sync.Mutex
	config model.Config
	store  Persister
	log    zerolog.Logger
}

// NewManager wraps an already-loaded configuration. store may be nil when no
// backing file is available; the manager then runs in-memory only.
func NewManager(config model.Config, store Persister, log zerolog.Logger) *Manager {
	if config.EnabledMetrics == nil {
		config.EnabledMetrics = map[model.Metric]bool{}
	}
	return &Manager{config: config, store: store, log: log}
}

// Config returns a copy of the current document.
func (manager *Manager) Config() model.Config {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	return manager.config.Clone()
}

// StepScale moves the scale one quarter step up (direction > 0) or down
// (direction < 0), clamped to the valid range. A persisted position is
// re-clamped against screen since the larger box may no longer fit.
func (manager *Manager) StepScale(direction int, screen position.Bounds) float64 {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	delta := model.ScaleStep
	if direction < 0 {
		delta = -model.ScaleStep
	}
	manager.config.Scale = model.SnapScale(manager.config.Scale + delta)

	if manager.config.Position != nil {
		clamped := position.Clamp(*manager.config.Position, manager.config.Scale, screen)
		manager.config.Position = &clamped
	}

	manager.persistLocked()
	return manager.config.Scale
}

// SetPosition clamps point against screen at the current scale, stores it
// and persists. The clamped point is returned for the caller to apply.
func (manager *Manager) SetPosition(point model.Point, screen position.Bounds) model.Point {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	clamped := position.Clamp(point, manager.config.Scale, screen)
	manager.config.Position = &clamped
	manager.persistLocked()
	return clamped
}

// SetBackground replaces the background color; invalid components are
// ignored.
func (manager *Manager) SetBackground(color model.Color) {
	manager.setColor(&manager.config.Background, color)
}

// SetForeground replaces the foreground color; invalid components are
// ignored.
func (manager *Manager) SetForeground(color model.Color) {
	manager.setColor(&manager.config.Foreground, color)
}

func (manager *Manager) setColor(target *model.Color, color model.Color) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	if !color.Valid() {
		manager.log.Warn().
			Float64("r", color.R).Float64("g", color.G).
			Float64("b", color.B).Float64("a", color.A).
			Msg("rejecting color outside [0,1]")
		return
	}
	*target = color
	manager.persistLocked()
}

// ToggleMetric flips a metric on or off and reports the new state.
func (manager *Manager) ToggleMetric(metric model.Metric) bool {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	if !model.KnownMetric(metric) {
		return false
	}
	enabled := !manager.config.EnabledMetrics[metric]
	if enabled {
		manager.config.EnabledMetrics[metric] = true
	} else {
		delete(manager.config.EnabledMetrics, metric)
	}
	manager.persistLocked()
	return enabled
}

// ToggleShowSeconds flips seconds visibility and reports the new state.
func (manager *Manager) ToggleShowSeconds() bool {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	manager.config.ShowSeconds = !manager.config.ShowSeconds
	manager.persistLocked()
	return manager.config.ShowSeconds
}

// ToggleTimeSubtext flips the wall-clock subtext and reports the new state.
func (manager *Manager) ToggleTimeSubtext() bool {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	manager.config.ShowTimeSubtext = !manager.config.ShowTimeSubtext
	manager.persistLocked()
	return manager.config.ShowTimeSubtext
}

// Apply replaces the whole document in one mutation, normalizing the scale
// and rejecting invalid colors field-by-field. Used by the preferences
// window, which edits a copy and saves once.
func (manager *Manager) Apply(config model.Config) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	config = config.Clone()
	config.Scale = model.SnapScale(config.Scale)
	if !config.Background.Valid() {
		config.Background = manager.config.Background
	}
	if !config.Foreground.Valid() {
		config.Foreground = manager.config.Foreground
	}
	for metric := range config.EnabledMetrics {
		if !model.KnownMetric(metric) {
			delete(config.EnabledMetrics, metric)
		}
	}

	manager.config = config
	manager.persistLocked()
}

func (manager *Manager) persistLocked() {
	if manager.store == nil {
		return
	}
	if err := manager.store.Save(manager.config.Clone()); err != nil {
		manager.log.Warn().Err(err).Msg("persist settings failed, keeping in-memory state")
	}
}
