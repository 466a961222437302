package model

// Metric identifies an optional resource readout line shown under the clock.
type Metric string

const (
	MetricNetwork Metric = "network"
	MetricCPU     Metric = "cpu"
	MetricMemory  Metric = "memory"
	MetricGPU     Metric = "gpu"
)

// AllMetrics returns every known metric in display order.
func AllMetrics() []Metric {
	return []Metric{MetricNetwork, MetricCPU, MetricMemory, MetricGPU}
}

// KnownMetric reports whether value names a supported metric.
func KnownMetric(value Metric) bool {
	switch value {
	case MetricNetwork, MetricCPU, MetricMemory, MetricGPU:
		return true
	}
	return false
}

// Color is a normalized RGBA color. Each component lies in [0, 1].
type Color struct {
	R float64 `yaml:"r"`
	G float64 `yaml:"g"`
	B float64 `yaml:"b"`
	A float64 `yaml:"a"`
}

// Valid reports whether every component is a normalized value.
func (color Color) Valid() bool {
	for _, component := range [4]float64{color.R, color.G, color.B, color.A} {
		if component < 0 || component > 1 {
			return false
		}
	}
	return true
}

// Point is a screen coordinate in pixels, origin at the top-left corner.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Scale bounds for the overlay magnification.
const (
	ScaleMin  = 0.5
	ScaleMax  = 4.0
	ScaleStep = 0.25
)

// Config is the persisted user-visible configuration document.
// Position is nil until the overlay has been moved at least once;
// nil means the default top-right placement.
type Config struct {
	Scale           float64
	Background      Color
	Foreground      Color
	Position        *Point
	ShowSeconds     bool
	ShowTimeSubtext bool
	EnabledMetrics  map[Metric]bool
}

// Default returns the documented defaults: scale 1.0, semi-transparent black
// background, opaque white foreground, seconds and subtext shown, position
// unset and no metrics enabled.
func Default() Config {
	return Config{
		Scale:           1.0,
		Background:      Color{R: 0, G: 0, B: 0, A: 0.55},
		Foreground:      Color{R: 1, G: 1, B: 1, A: 1},
		ShowSeconds:     true,
		ShowTimeSubtext: true,
		EnabledMetrics:  map[Metric]bool{},
	}
}

// SnapScale clamps value into [ScaleMin, ScaleMax] and rounds it to the
// nearest quarter step.
func SnapScale(value float64) float64 {
	if value < ScaleMin {
		return ScaleMin
	}
	if value > ScaleMax {
		return ScaleMax
	}
	steps := int((value-ScaleMin)/ScaleStep + 0.5)
	return ScaleMin + float64(steps)*ScaleStep
}

// MetricEnabled reports whether metric is switched on.
func (config Config) MetricEnabled(metric Metric) bool {
	return config.EnabledMetrics[metric]
}

// Clone returns a deep copy so the live document can be handed out safely.
func (config Config) Clone() Config {
	clone := config
	clone.EnabledMetrics = make(map[Metric]bool, len(config.EnabledMetrics))
	for metric, enabled := range config.EnabledMetrics {
		clone.EnabledMetrics[metric] = enabled
	}
	if config.Position != nil {
		position := *config.Position
		clone.Position = &position
	}
	return clone
}
