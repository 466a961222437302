package sampler

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	current time.Time
}

func (clock *fakeClock) now() time.Time {
	return clock.current
}

func (clock *fakeClock) advance(delta time.Duration) {
	clock.current = clock.current.Add(delta)
}

type stubGPU struct {
	value float64
	err   error
}

func (probe stubGPU) Utilization() (float64, error) {
	return probe.value, probe.err
}

func newTestSampler(clock *fakeClock) *Sampler {
	return &Sampler{
		log: zerolog.Nop(),
		now: clock.now,
	}
}

func TestNetworkFirstSampleIsAbsent(t *testing.T) {
	clock := &fakeClock{current: time.Unix(1000, 0)}
	sampler := newTestSampler(clock)

	counters := byteCounters{sent: 1000, recv: 5000}
	sampler.netCounters = func() (byteCounters, error) { return counters, nil }

	assert.Nil(t, sampler.SampleNetwork(), "first sample only seeds the counters")

	clock.advance(time.Second)
	counters = byteCounters{sent: 3048, recv: 10120}
	rate := sampler.SampleNetwork()
	require.NotNil(t, rate)
	assert.Equal(t, 2048.0, rate.Up)
	assert.Equal(t, 5120.0, rate.Down)
}

func TestNetworkRateUsesElapsedTime(t *testing.T) {
	clock := &fakeClock{current: time.Unix(1000, 0)}
	sampler := newTestSampler(clock)

	counters := byteCounters{}
	sampler.netCounters = func() (byteCounters, error) { return counters, nil }

	sampler.SampleNetwork()
	clock.advance(4 * time.Second)
	counters = byteCounters{sent: 4096, recv: 8192}

	rate := sampler.SampleNetwork()
	require.NotNil(t, rate)
	assert.Equal(t, 1024.0, rate.Up)
	assert.Equal(t, 2048.0, rate.Down)
}

func TestNetworkCounterResetReseeds(t *testing.T) {
	clock := &fakeClock{current: time.Unix(1000, 0)}
	sampler := newTestSampler(clock)

	counters := byteCounters{sent: 900000, recv: 900000}
	sampler.netCounters = func() (byteCounters, error) { return counters, nil }
	sampler.SampleNetwork()

	// Counters went backwards (interface bounce): absent, not negative.
	clock.advance(time.Second)
	counters = byteCounters{sent: 100, recv: 100}
	assert.Nil(t, sampler.SampleNetwork())

	clock.advance(time.Second)
	counters = byteCounters{sent: 612, recv: 1124}
	rate := sampler.SampleNetwork()
	require.NotNil(t, rate)
	assert.Equal(t, 512.0, rate.Up)
	assert.Equal(t, 1024.0, rate.Down)
}

func TestNetworkProbeFailureIsAbsentForOneTick(t *testing.T) {
	clock := &fakeClock{current: time.Unix(1000, 0)}
	sampler := newTestSampler(clock)

	fail := true
	counters := byteCounters{}
	sampler.netCounters = func() (byteCounters, error) {
		if fail {
			return byteCounters{}, errors.New("no interfaces")
		}
		return counters, nil
	}

	assert.Nil(t, sampler.SampleNetwork())

	// Recovery re-seeds and then produces rates again.
	fail = false
	sampler.SampleNetwork()
	clock.advance(time.Second)
	counters = byteCounters{sent: 256, recv: 256}
	assert.NotNil(t, sampler.SampleNetwork())
}

func TestCPUAndMemoryFailIndependently(t *testing.T) {
	clock := &fakeClock{current: time.Unix(1000, 0)}
	sampler := newTestSampler(clock)

	sampler.cpuPercent = func() (float64, error) { return 0, errors.New("proc unavailable") }
	sampler.memoryPercent = func() (float64, error) { return 57.8, nil }

	assert.Nil(t, sampler.SampleCPU())
	memory := sampler.SampleMemory()
	require.NotNil(t, memory)
	assert.Equal(t, 57.8, *memory)
}

func TestPercentagesAreClamped(t *testing.T) {
	clock := &fakeClock{current: time.Unix(1000, 0)}
	sampler := newTestSampler(clock)

	sampler.cpuPercent = func() (float64, error) { return 112.4, nil }
	sampler.memoryPercent = func() (float64, error) { return -3, nil }

	cpu := sampler.SampleCPU()
	require.NotNil(t, cpu)
	assert.Equal(t, 100.0, *cpu)

	memory := sampler.SampleMemory()
	require.NotNil(t, memory)
	assert.Equal(t, 0.0, *memory)
}

func TestGPUAbsentOnFailure(t *testing.T) {
	clock := &fakeClock{current: time.Unix(1000, 0)}
	sampler := newTestSampler(clock)

	sampler.gpu = stubGPU{err: ErrGPUUnavailable}
	assert.Nil(t, sampler.SampleGPU())

	sampler.gpu = stubGPU{err: errors.New("command not found")}
	assert.Nil(t, sampler.SampleGPU())

	sampler.gpu = nil
	assert.Nil(t, sampler.SampleGPU())

	sampler.gpu = stubGPU{value: 31}
	value := sampler.SampleGPU()
	require.NotNil(t, value)
	assert.Equal(t, 31.0, *value)
}
