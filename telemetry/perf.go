package telemetry

import (
	"log/slog"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Phase names for one frame.
const (
	PhaseInput     = "input"
	PhaseEvaluate  = "evaluate"
	PhaseApply     = "apply"
	PhaseTelemetry = "telemetry"
)

var phases = []string{PhaseInput, PhaseEvaluate, PhaseApply, PhaseTelemetry}

// Tick durations are recorded in microseconds between 1us and 10s.
const (
	histLowestUS  = 1
	histHighestUS = 10_000_000
	histSigFigs   = 3
)

// PerfCollector tracks frame timing over a window. Tick durations go into an
// HDR histogram so percentiles stay cheap regardless of window length.
type PerfCollector struct {
	hist          *hdrhistogram.Histogram
	phaseSum      map[string]time.Duration
	currentPhases map[string]time.Duration
	tickStart     time.Time
	phaseStart    time.Time
	lastPhase     string

	// Frame timing (for graphics mode)
	lastFrameTime time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a new performance collector.
func NewPerfCollector() *PerfCollector {
	return &PerfCollector{
		hist:          hdrhistogram.New(histLowestUS, histHighestUS, histSigFigs),
		phaseSum:      make(map[string]time.Duration),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartTick begins timing a new frame.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	clear(p.currentPhases)
	p.lastPhase = ""
}

// StartPhase begins timing a specific phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	// End previous phase if any
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndTick finishes timing the current frame and records the sample.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
		p.lastPhase = ""
	}
	p.recordTick(now.Sub(p.tickStart), p.currentPhases)
}

func (p *PerfCollector) recordTick(d time.Duration, phaseDurations map[string]time.Duration) {
	us := d.Microseconds()
	if us < histLowestUS {
		us = histLowestUS
	}
	if us > histHighestUS {
		us = histHighestUS
	}
	if err := p.hist.RecordValue(us); err != nil {
		slog.Debug("dropping tick sample", "us", us, "error", err)
	}

	for phase, dur := range phaseDurations {
		p.phaseSum[phase] += dur
	}
}

// RecordFrame records frame timing for graphics mode.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// Reset starts a new window. Frame timing is kept.
func (p *PerfCollector) Reset() {
	p.hist.Reset()
	clear(p.phaseSum)
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	Ticks int64

	// Tick timing
	AvgTickDuration time.Duration
	P50TickDuration time.Duration
	P99TickDuration time.Duration
	MaxTickDuration time.Duration

	// Phase percentages of total tick time
	PhasePct map[string]float64

	// Throughput
	TicksPerSecond float64

	// Frame timing (graphics mode)
	FrameDuration time.Duration
	FPS           float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	var fps float64
	if p.frameDuration > 0 {
		fps = float64(time.Second) / float64(p.frameDuration)
	}

	s := PerfStats{
		Ticks:         p.hist.TotalCount(),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frameDuration,
		FPS:           fps,
	}
	if s.Ticks == 0 {
		return s
	}

	s.AvgTickDuration = time.Duration(p.hist.Mean() * float64(time.Microsecond))
	s.P50TickDuration = time.Duration(p.hist.ValueAtQuantile(50)) * time.Microsecond
	s.P99TickDuration = time.Duration(p.hist.ValueAtQuantile(99)) * time.Microsecond
	s.MaxTickDuration = time.Duration(p.hist.Max()) * time.Microsecond

	var total time.Duration
	for _, d := range p.phaseSum {
		total += d
	}
	if total > 0 {
		for phase, d := range p.phaseSum {
			s.PhasePct[phase] = float64(d) / float64(total) * 100
		}
	}

	if s.AvgTickDuration > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTickDuration)
	}
	return s
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"ticks", s.Ticks,
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"p50_tick_us", s.P50TickDuration.Microseconds(),
		"p99_tick_us", s.P99TickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}

	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}

	for _, phase := range phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", float64(int(pct*10))/10)
		}
	}

	slog.Info("perf", attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd    int64   `csv:"window_end"`
	Ticks        int64   `csv:"ticks"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	P50TickUS    int64   `csv:"p50_tick_us"`
	P99TickUS    int64   `csv:"p99_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	FPS          float64 `csv:"fps"`
	InputPct     float64 `csv:"input_pct"`
	EvaluatePct  float64 `csv:"evaluate_pct"`
	ApplyPct     float64 `csv:"apply_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		Ticks:        s.Ticks,
		AvgTickUS:    s.AvgTickDuration.Microseconds(),
		P50TickUS:    s.P50TickDuration.Microseconds(),
		P99TickUS:    s.P99TickDuration.Microseconds(),
		MaxTickUS:    s.MaxTickDuration.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		FPS:          s.FPS,
		InputPct:     s.PhasePct[PhaseInput],
		EvaluatePct:  s.PhasePct[PhaseEvaluate],
		ApplyPct:     s.PhasePct[PhaseApply],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
