package scheduler

import (
	"time"

	"hoverclock/internal/core/model"
	"hoverclock/internal/core/timer"
)

// MetricLine is one pre-formatted resource readout.
type MetricLine struct {
	Metric model.Metric
	Text   string
}

// Frame is the consolidated per-tick snapshot handed to the presentation
// layer. It carries everything the overlay needs to draw: the layer itself
// holds no state.
type Frame struct {
	At    time.Time
	Clock string

	TimerPhase timer.Phase
	TimerText  string
	Subtext    string

	Metrics []MetricLine

	Scale      float64
	Background model.Color
	Foreground model.Color
	Position   *model.Point
}
