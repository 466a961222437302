package timer_test

import (
	"testing"
	"time"

	"hoverclock/internal/core/timer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountdownRunsToExpiry(t *testing.T) {
	engine := timer.New()
	engine.Arm(5 * time.Second)
	engine.Start()

	for elapsed := 1; elapsed < 5; elapsed++ {
		engine.Tick()
		state := engine.State()
		assert.Equal(t, timer.PhaseRunning, state.Phase)
		assert.Equal(t, time.Duration(5-elapsed)*time.Second, state.Remaining)
	}

	engine.Tick()
	state := engine.State()
	assert.Equal(t, timer.PhaseExpired, state.Phase)
	assert.Equal(t, time.Duration(0), state.Remaining)
}

func TestArmRequiresExplicitStart(t *testing.T) {
	engine := timer.New()
	engine.Arm(30 * time.Second)

	state := engine.State()
	require.Equal(t, timer.PhaseIdle, state.Phase)
	assert.Equal(t, 30*time.Second, state.Remaining)

	// Ticks must not decrement an armed but unstarted countdown.
	engine.Tick()
	engine.Tick()
	assert.Equal(t, 30*time.Second, engine.State().Remaining)

	engine.Start()
	assert.Equal(t, timer.PhaseRunning, engine.State().Phase)
}

func TestPauseFreezesRemaining(t *testing.T) {
	engine := timer.New()
	engine.Arm(10 * time.Second)
	engine.Start()
	engine.Tick()
	engine.Tick()

	engine.Pause()
	require.Equal(t, timer.PhasePaused, engine.State().Phase)

	for i := 0; i < 7; i++ {
		engine.Tick()
	}
	assert.Equal(t, 8*time.Second, engine.State().Remaining)

	engine.Start()
	engine.Tick()
	state := engine.State()
	assert.Equal(t, timer.PhaseRunning, state.Phase)
	assert.Equal(t, 7*time.Second, state.Remaining)
}

func TestResetFromAnyPhase(t *testing.T) {
	cases := []struct {
		name    string
		prepare func(engine *timer.Engine)
	}{
		{"idle", func(engine *timer.Engine) {}},
		{"armed", func(engine *timer.Engine) {
			engine.Arm(time.Minute)
		}},
		{"running", func(engine *timer.Engine) {
			engine.Arm(time.Minute)
			engine.Start()
			engine.Tick()
		}},
		{"paused", func(engine *timer.Engine) {
			engine.Arm(time.Minute)
			engine.Start()
			engine.Pause()
		}},
		{"expired", func(engine *timer.Engine) {
			engine.Arm(time.Second)
			engine.Start()
			engine.Tick()
		}},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			engine := timer.New()
			testCase.prepare(engine)

			engine.Reset()
			state := engine.State()
			assert.Equal(t, timer.PhaseIdle, state.Phase)
			assert.Equal(t, time.Duration(0), state.Remaining)
			assert.Equal(t, time.Duration(0), state.Total)
		})
	}
}

func TestInvalidTransitionsAreNoOps(t *testing.T) {
	engine := timer.New()

	// Pause and tick do nothing while idle.
	engine.Pause()
	engine.Tick()
	assert.Equal(t, timer.PhaseIdle, engine.State().Phase)

	// Start without an armed duration does nothing.
	engine.Start()
	assert.Equal(t, timer.PhaseIdle, engine.State().Phase)

	// Non-positive durations are rejected.
	engine.Arm(0)
	engine.Start()
	assert.Equal(t, timer.PhaseIdle, engine.State().Phase)
	engine.Arm(-time.Second)
	assert.Equal(t, time.Duration(0), engine.State().Remaining)

	// Arming while running is ignored.
	engine.Arm(time.Minute)
	engine.Start()
	engine.Arm(time.Hour)
	state := engine.State()
	assert.Equal(t, timer.PhaseRunning, state.Phase)
	assert.Equal(t, time.Minute, state.Total)

	// Start from expired requires a new Arm.
	engine.Reset()
	engine.Arm(time.Second)
	engine.Start()
	engine.Tick()
	require.Equal(t, timer.PhaseExpired, engine.State().Phase)
	engine.Start()
	assert.Equal(t, timer.PhaseExpired, engine.State().Phase)
}

func TestRearmFromExpired(t *testing.T) {
	engine := timer.New()
	engine.Arm(time.Second)
	engine.Start()
	engine.Tick()
	require.Equal(t, timer.PhaseExpired, engine.State().Phase)

	engine.Arm(2 * time.Minute)
	state := engine.State()
	assert.Equal(t, timer.PhaseIdle, state.Phase)
	assert.Equal(t, 2*time.Minute, state.Remaining)
}

func TestDisplayText(t *testing.T) {
	cases := []struct {
		name  string
		state timer.State
		want  string
	}{
		{"unarmed idle", timer.State{Phase: timer.PhaseIdle}, ""},
		{"expired", timer.State{Phase: timer.PhaseExpired}, ""},
		{
			"armed idle",
			timer.State{Phase: timer.PhaseIdle, Total: 5 * time.Minute, Remaining: 5 * time.Minute},
			"05:00",
		},
		{
			"short countdown",
			timer.State{Phase: timer.PhaseRunning, Total: 25 * time.Minute, Remaining: 4*time.Minute + 32*time.Second},
			"04:32",
		},
		{
			"long countdown uses hours",
			timer.State{Phase: timer.PhaseRunning, Total: 2 * time.Hour, Remaining: time.Hour + 5*time.Minute + 9*time.Second},
			"01:05:09",
		},
		{
			"hour-armed countdown keeps hour format near zero",
			timer.State{Phase: timer.PhasePaused, Total: time.Hour, Remaining: 42 * time.Second},
			"00:00:42",
		},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, testCase.state.DisplayText())
		})
	}
}

func TestWantsSubtext(t *testing.T) {
	assert.False(t, timer.State{Phase: timer.PhaseIdle}.WantsSubtext())
	assert.False(t, timer.State{Phase: timer.PhaseExpired}.WantsSubtext())
	assert.True(t, timer.State{Phase: timer.PhaseRunning}.WantsSubtext())
	assert.True(t, timer.State{Phase: timer.PhasePaused}.WantsSubtext())
}
