package timer

import (
	"fmt"
	"sync"
	"time"
)

// Phase represents the countdown engine state.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseRunning Phase = "running"
	PhasePaused  Phase = "paused"
	PhaseExpired Phase = "expired"
)

// State is a point-in-time snapshot of the countdown.
type State struct {
	Phase     Phase
	Total     time.Duration
	Remaining time.Duration
}

// Engine is the countdown state machine. Invalid transition requests are
// silent no-ops so a misbehaving caller can never corrupt the state.
type Engine struct {
	mu        sync.Mutex
	phase     Phase
	total     time.Duration
	remaining time.Duration
}

// New creates an idle, unarmed engine.
func New() *Engine {
	return &Engine{phase: PhaseIdle}
}

// Arm loads a new countdown duration without starting it. A subsequent Start
// is required to begin counting. Arming while running, or with a
// non-positive duration, is ignored.
func (engine *Engine) Arm(duration time.Duration) {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	if engine.phase == PhaseRunning || duration <= 0 {
		return
	}
	engine.phase = PhaseIdle
	engine.total = duration
	engine.remaining = duration
}

// Start begins or resumes the countdown. Valid from an armed idle state or
// from paused.
func (engine *Engine) Start() {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	switch engine.phase {
	case PhaseIdle:
		if engine.remaining <= 0 {
			return
		}
		engine.phase = PhaseRunning
	case PhasePaused:
		engine.phase = PhaseRunning
	}
}

// Pause freezes the countdown. Valid only while running.
func (engine *Engine) Pause() {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	if engine.phase != PhaseRunning {
		return
	}
	engine.phase = PhasePaused
}

// Reset clears the countdown from any phase.
func (engine *Engine) Reset() {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	engine.phase = PhaseIdle
	engine.total = 0
	engine.remaining = 0
}

// Tick advances the countdown by one second. It only decrements while
// running; hitting zero moves the engine to expired.
func (engine *Engine) Tick() {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	if engine.phase != PhaseRunning {
		return
	}
	engine.remaining -= time.Second
	if engine.remaining <= 0 {
		engine.remaining = 0
		engine.phase = PhaseExpired
	}
}

// State returns the current snapshot.
func (engine *Engine) State() State {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	return State{
		Phase:     engine.phase,
		Total:     engine.total,
		Remaining: engine.remaining,
	}
}

// DisplayText returns the formatted remaining time, or an empty string when
// there is nothing to show (unarmed idle or expired countdown).
func (state State) DisplayText() string {
	switch state.Phase {
	case PhaseRunning, PhasePaused:
		return formatCountdown(state.Remaining, state.Total)
	case PhaseIdle:
		if state.Remaining > 0 {
			return formatCountdown(state.Remaining, state.Total)
		}
	}
	return ""
}

// WantsSubtext reports whether the wall-clock subtext line applies: only
// while a countdown is running or paused.
func (state State) WantsSubtext() bool {
	return state.Phase == PhaseRunning || state.Phase == PhasePaused
}

// formatCountdown renders HH:MM:SS for countdowns armed at an hour or more,
// MM:SS otherwise.
func formatCountdown(remaining, total time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	seconds := int(remaining.Seconds())
	minutes := seconds / 60
	seconds = seconds % 60

	if total >= time.Hour {
		hours := minutes / 60
		minutes = minutes % 60
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
