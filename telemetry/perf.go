package telemetry

import (
	"log/slog"
	"time"
)

// Phase identifies one stage of the simulation step.
type Phase uint8

const (
	PhaseWind Phase = iota
	PhaseColliders
	PhasePhysics
	PhaseFire
	PhaseTelemetry
	numPhases
)

var phaseNames = [numPhases]string{"wind", "colliders", "physics", "fire", "telemetry"}

func (p Phase) String() string {
	if p >= numPhases {
		return "unknown"
	}
	return phaseNames[p]
}

// Phases lists the phase names in execution order.
var Phases = phaseNames[:]

const noPhase = numPhases

// tickSample is the timing of one step. Work is particles times sub-steps.
type tickSample struct {
	total  time.Duration
	phases [numPhases]time.Duration
	work   int
}

// PerfCollector keeps step timings in a ring of the last windowSize ticks.
// It does not allocate per tick.
type PerfCollector struct {
	ring  []tickSample
	next  int
	count int

	cur        tickSample
	tickStart  time.Time
	phaseStart time.Time
	open       Phase

	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		ring: make([]tickSample, windowSize),
		open: noPhase,
	}
}

// StartTick begins timing a step.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.cur = tickSample{}
	p.open = noPhase
}

// StartPhase closes the running phase, if any, and opens phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := time.Now()
	p.closePhase(now)
	p.phaseStart = now
	p.open = phase
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.open < numPhases {
		p.cur.phases[p.open] += now.Sub(p.phaseStart)
	}
	p.open = noPhase
}

// RecordWork notes how many particles were integrated how many times
// during the current step.
func (p *PerfCollector) RecordWork(live, subSteps int) {
	p.cur.work += live * subSteps
}

// EndTick closes the step and stores it in the ring.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.cur.total = now.Sub(p.tickStart)

	p.ring[p.next] = p.cur
	p.next = (p.next + 1) % len(p.ring)
	if p.count < len(p.ring) {
		p.count++
	}
}

// Reset drops all recorded ticks. Frame timing is kept.
func (p *PerfCollector) Reset() {
	p.next, p.count = 0, 0
	p.cur = tickSample{}
	p.open = noPhase
}

// RecordFrame marks a rendered frame.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats summarizes the ticks in the window.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	// Keyed by phase name.
	PhaseAvg map[string]time.Duration
	PhaseMax map[string]time.Duration
	PhasePct map[string]float64

	TicksPerSecond float64

	// Physics phase time per particle per sub-step; zero when no work was recorded.
	NsPerParticleStep float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg:      make(map[string]time.Duration, numPhases),
		PhaseMax:      make(map[string]time.Duration, numPhases),
		PhasePct:      make(map[string]float64, numPhases),
		FrameDuration: p.frame,
	}
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.count == 0 {
		return s
	}

	var total time.Duration
	var sum, peak [numPhases]time.Duration
	work := 0
	s.MinTickDuration = p.ring[0].total
	for _, t := range p.ring[:p.count] {
		total += t.total
		s.MinTickDuration = min(s.MinTickDuration, t.total)
		s.MaxTickDuration = max(s.MaxTickDuration, t.total)
		for ph, d := range t.phases {
			sum[ph] += d
			peak[ph] = max(peak[ph], d)
		}
		work += t.work
	}

	n := time.Duration(p.count)
	s.AvgTickDuration = total / n
	if s.AvgTickDuration > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTickDuration)
	}
	for ph := Phase(0); ph < numPhases; ph++ {
		if sum[ph] == 0 {
			continue
		}
		name := ph.String()
		s.PhaseAvg[name] = sum[ph] / n
		s.PhaseMax[name] = peak[ph]
		if total > 0 {
			s.PhasePct[name] = float64(sum[ph]) / float64(total) * 100
		}
	}
	if work > 0 {
		s.NsPerParticleStep = float64(sum[PhasePhysics].Nanoseconds()) / float64(work)
	}
	return s
}

// LogStats logs the window at info level.
func (s PerfStats) LogStats() {
	slog.Info("perf", "window", s)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Int("ticks_per_sec", int(s.TicksPerSecond)),
	}
	if s.NsPerParticleStep > 0 {
		attrs = append(attrs, slog.Float64("ns_per_particle_step", s.NsPerParticleStep))
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for _, name := range Phases {
		if pct := s.PhasePct[name]; pct >= 0.1 {
			attrs = append(attrs, slog.Float64(name+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one row of perf.csv.
type PerfStatsCSV struct {
	WindowEnd         int32   `csv:"window_end"`
	AvgTickUS         int64   `csv:"avg_tick_us"`
	MinTickUS         int64   `csv:"min_tick_us"`
	MaxTickUS         int64   `csv:"max_tick_us"`
	TicksPerSec       float64 `csv:"ticks_per_sec"`
	FPS               float64 `csv:"fps"`
	NsPerParticleStep float64 `csv:"ns_per_particle_step"`
	WindPct           float64 `csv:"wind_pct"`
	CollidersPct      float64 `csv:"colliders_pct"`
	PhysicsPct        float64 `csv:"physics_pct"`
	FirePct           float64 `csv:"fire_pct"`
	TelemetryPct      float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats for the window ending at windowEnd.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	pct := func(p Phase) float64 { return s.PhasePct[p.String()] }
	return PerfStatsCSV{
		WindowEnd:         windowEnd,
		AvgTickUS:         s.AvgTickDuration.Microseconds(),
		MinTickUS:         s.MinTickDuration.Microseconds(),
		MaxTickUS:         s.MaxTickDuration.Microseconds(),
		TicksPerSec:       s.TicksPerSecond,
		FPS:               s.FPS,
		NsPerParticleStep: s.NsPerParticleStep,
		WindPct:           pct(PhaseWind),
		CollidersPct:      pct(PhaseColliders),
		PhysicsPct:        pct(PhasePhysics),
		FirePct:           pct(PhaseFire),
		TelemetryPct:      pct(PhaseTelemetry),
	}
}
