package scheduler

import (
	"sync"
	"time"

	"hoverclock/internal/core/model"
	"hoverclock/internal/core/settings"
	"hoverclock/internal/core/timer"
	"hoverclock/internal/sampler"

	"github.com/rs/zerolog"
)

// Source provides one reading per metric. A nil result means the metric is
// absent for this tick.
type Source interface {
	SampleNetwork() *sampler.Rate
	SampleCPU() *float64
	SampleMemory() *float64
	SampleGPU() *float64
}

// Config contains runtime options for the scheduler.
type Config struct {
	// TickInterval is the primary heartbeat driving all state.
	TickInterval time.Duration
	// AuxInterval keeps the select loop hot between ticks so stop and
	// interrupt requests are observed promptly. No work happens on it.
	AuxInterval time.Duration
	// GPUCadence samples the GPU only every Nth tick to bound the cost of
	// the external probe command.
	GPUCadence uint64
}

// Scheduler is the process-wide heartbeat. Each primary tick advances the
// countdown engine, samples the enabled metrics through their cadence gates
// and fans a render frame out to subscribers.
type Scheduler struct {
	mu        sync.Mutex
	options   Config
	settings  *settings.Manager
	engine    *timer.Engine
	source    Source
	log       zerolog.Logger
	tickCount uint64
	events    []chan Frame
	stopCh    chan struct{}
	running   bool
}

// New creates a scheduler. Zero options fall back to the 1 s primary tick,
// 500 ms auxiliary tick and GPU sampling every 3rd tick.
func New(manager *settings.Manager, engine *timer.Engine, source Source, options Config, log zerolog.Logger) *Scheduler {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.AuxInterval <= 0 {
		options.AuxInterval = 500 * time.Millisecond
	}
	if options.GPUCadence == 0 {
		options.GPUCadence = 3
	}
	return &Scheduler{
		options:  options,
		settings: manager,
		engine:   engine,
		source:   source,
		log:      log,
		stopCh:   make(chan struct{}),
	}
}

// Subscribe registers a new observer channel. Frames are dropped rather than
// blocking when the subscriber falls behind.
func (sched *Scheduler) Subscribe(buffer int) <-chan Frame {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Frame, buffer)
	sched.mu.Lock()
	sched.events = append(sched.events, ch)
	sched.mu.Unlock()
	return ch
}

// Start launches the ticking loop.
func (sched *Scheduler) Start() {
	sched.mu.Lock()
	if sched.running {
		sched.mu.Unlock()
		return
	}
	sched.running = true
	sched.mu.Unlock()

	go sched.run()
}

// Stop terminates the ticking loop and closes observer channels.
func (sched *Scheduler) Stop() {
	sched.mu.Lock()
	if !sched.running {
		sched.mu.Unlock()
		return
	}
	close(sched.stopCh)
	sched.running = false
	events := sched.events
	sched.events = nil
	sched.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (sched *Scheduler) run() {
	primary := time.NewTicker(sched.options.TickInterval)
	defer primary.Stop()
	auxiliary := time.NewTicker(sched.options.AuxInterval)
	defer auxiliary.Stop()

	for {
		select {
		case <-sched.stopCh:
			return
		case tickTime := <-primary.C:
			sched.tick(tickTime)
		case <-auxiliary.C:
			// Re-enter the select so a pending stop is seen within
			// half a tick even if the primary ticker is mid-period.
		}
	}
}

func (sched *Scheduler) tick(tickTime time.Time) {
	sched.mu.Lock()
	if !sched.running {
		sched.mu.Unlock()
		return
	}
	sched.tickCount++
	count := sched.tickCount
	sched.mu.Unlock()

	sched.engine.Tick()

	config := sched.settings.Config()
	frame := sched.assembleFrame(tickTime, count, config)
	sched.emit(frame)
}

func (sched *Scheduler) assembleFrame(tickTime time.Time, count uint64, config model.Config) Frame {
	state := sched.engine.State()

	frame := Frame{
		At:         tickTime,
		Clock:      formatClock(tickTime, config.ShowSeconds),
		TimerPhase: state.Phase,
		TimerText:  state.DisplayText(),
		Scale:      config.Scale,
		Background: config.Background,
		Foreground: config.Foreground,
		Position:   config.Position,
	}
	if config.ShowTimeSubtext && state.WantsSubtext() {
		frame.Subtext = tickTime.Format("15:04:05")
	}

	for _, metric := range model.AllMetrics() {
		if !config.MetricEnabled(metric) {
			continue
		}
		if line, ok := sched.sampleMetric(metric, count); ok {
			frame.Metrics = append(frame.Metrics, line)
		}
	}
	return frame
}

// sampleMetric applies the metric's cadence gate and formats its reading.
// Absent readings yield no line at all.
func (sched *Scheduler) sampleMetric(metric model.Metric, count uint64) (MetricLine, bool) {
	switch metric {
	case model.MetricNetwork:
		if rate := sched.source.SampleNetwork(); rate != nil {
			return MetricLine{Metric: metric, Text: rate.NetworkLine()}, true
		}
	case model.MetricCPU:
		if value := sched.source.SampleCPU(); value != nil {
			return MetricLine{Metric: metric, Text: "CPU " + sampler.FormatPercent(*value)}, true
		}
	case model.MetricMemory:
		if value := sched.source.SampleMemory(); value != nil {
			return MetricLine{Metric: metric, Text: "MEM " + sampler.FormatPercent(*value)}, true
		}
	case model.MetricGPU:
		if count%sched.options.GPUCadence != 0 {
			return MetricLine{}, false
		}
		if value := sched.source.SampleGPU(); value != nil {
			return MetricLine{Metric: metric, Text: "GPU " + sampler.FormatPercent(*value)}, true
		}
	}
	return MetricLine{}, false
}

func (sched *Scheduler) emit(frame Frame) {
	sched.mu.Lock()
	events := append([]chan Frame(nil), sched.events...)
	sched.mu.Unlock()

	for _, ch := range events {
		select {
		case ch <- frame:
		default:
		}
	}
}

func formatClock(at time.Time, showSeconds bool) string {
	if showSeconds {
		return at.Format("15:04:05")
	}
	return at.Format("15:04")
}
