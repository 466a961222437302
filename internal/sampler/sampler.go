package sampler

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
)

// Rate is a pair of network throughput values in bytes per second.
type Rate struct {
	Up   float64
	Down float64
}

// Snapshot holds one tick's worth of resource readings. A nil field means
// the metric is absent for this tick: not sampled, not yet warmed up, or the
// probe failed. Absent is rendered by omission, never as zero.
type Snapshot struct {
	Network       *Rate
	CPUPercent    *float64
	MemoryPercent *float64
	GPUPercent    *float64
}

type byteCounters struct {
	sent uint64
	recv uint64
}

// Sampler probes network, CPU, memory and GPU. Each probe fails
// independently: an error is logged, the metric goes absent for the tick and
// the next eligible tick re-attempts from scratch.
type Sampler struct {
	log zerolog.Logger

	netCounters   func() (byteCounters, error)
	cpuPercent    func() (float64, error)
	memoryPercent func() (float64, error)
	gpu           GPUProbe
	now           func() time.Time

	prevCounters *byteCounters
	prevSampleAt time.Time
}

// New creates a sampler backed by the host OS counters and the platform GPU
// probe.
func New(log zerolog.Logger) *Sampler {
	return &Sampler{
		log:           log,
		netCounters:   readNetCounters,
		cpuPercent:    readCPUPercent,
		memoryPercent: readMemoryPercent,
		gpu:           NewGPUProbe(),
		now:           time.Now,
	}
}

// SampleNetwork returns aggregate throughput since the previous successful
// sample. The first sample after startup only seeds the counters and is
// absent; a counter reset re-seeds the same way.
func (sampler *Sampler) SampleNetwork() *Rate {
	counters, err := sampler.netCounters()
	if err != nil {
		sampler.log.Debug().Err(err).Msg("network sample failed")
		return nil
	}

	now := sampler.now()
	previous := sampler.prevCounters
	elapsed := now.Sub(sampler.prevSampleAt).Seconds()

	sampler.prevCounters = &counters
	sampler.prevSampleAt = now

	if previous == nil || elapsed <= 0 {
		return nil
	}
	if counters.sent < previous.sent || counters.recv < previous.recv {
		sampler.log.Debug().Msg("network counters went backwards, reseeding")
		return nil
	}

	return &Rate{
		Up:   float64(counters.sent-previous.sent) / elapsed,
		Down: float64(counters.recv-previous.recv) / elapsed,
	}
}

// SampleCPU returns the aggregate CPU utilization percentage.
func (sampler *Sampler) SampleCPU() *float64 {
	value, err := sampler.cpuPercent()
	if err != nil {
		sampler.log.Debug().Err(err).Msg("cpu sample failed")
		return nil
	}
	clamped := clampPercent(value)
	return &clamped
}

// SampleMemory returns the used-memory percentage.
func (sampler *Sampler) SampleMemory() *float64 {
	value, err := sampler.memoryPercent()
	if err != nil {
		sampler.log.Debug().Err(err).Msg("memory sample failed")
		return nil
	}
	clamped := clampPercent(value)
	return &clamped
}

// SampleGPU returns GPU utilization from the platform diagnostic command, or
// nil when the platform does not expose it or the probe fails. This metric
// is best-effort and must never destabilize the tick loop.
func (sampler *Sampler) SampleGPU() *float64 {
	if sampler.gpu == nil {
		return nil
	}
	value, err := sampler.gpu.Utilization()
	if err != nil {
		if !errors.Is(err, ErrGPUUnavailable) {
			sampler.log.Debug().Err(err).Msg("gpu sample failed")
		}
		return nil
	}
	clamped := clampPercent(value)
	return &clamped
}

func clampPercent(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}

func readNetCounters() (byteCounters, error) {
	stats, err := net.IOCounters(false)
	if err != nil {
		return byteCounters{}, fmt.Errorf("read net counters: %w", err)
	}
	if len(stats) == 0 {
		return byteCounters{}, errors.New("read net counters: no interfaces")
	}
	var counters byteCounters
	for _, stat := range stats {
		counters.sent += stat.BytesSent
		counters.recv += stat.BytesRecv
	}
	return counters, nil
}

func readCPUPercent() (float64, error) {
	values, err := cpu.Percent(0, false)
	if err != nil {
		return 0, fmt.Errorf("read cpu percent: %w", err)
	}
	if len(values) == 0 {
		return 0, errors.New("read cpu percent: no values")
	}
	return values[0], nil
}

func readMemoryPercent() (float64, error) {
	virtualMemory, err := mem.VirtualMemory()
	if err != nil {
		return 0, fmt.Errorf("read memory stats: %w", err)
	}
	return virtualMemory.UsedPercent, nil
}
