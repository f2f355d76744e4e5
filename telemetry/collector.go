package telemetry

import (
	"math"

	"github.com/pthm-cable/drape/cloth"
)

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	tears      int
	cascades   int
	manual     int
	burns      int
	grabs      int
	pins       int
	unpins     int
	ignitions  int
	degenerate int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int32(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// Record counts one event.
func (c *Collector) Record(e Event) {
	switch e.Type {
	case EventDestroy:
		switch e.Cause {
		case cloth.CauseTear:
			c.tears++
		case cloth.CauseCascade:
			c.cascades++
		case cloth.CauseManual:
			c.manual++
		case cloth.CauseBurn:
			c.burns++
		}
	case EventGrab:
		c.grabs++
	case EventPin:
		c.pins++
	case EventUnpin:
		c.unpins++
	case EventIgnite:
		c.ignitions++
	}
}

// RecordStep adds the solver stats of one tick.
func (c *Collector) RecordStep(s cloth.StepStats) {
	c.degenerate += s.Degenerate
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Sample is the cloth state measured at the end of a window.
type Sample struct {
	Live, Total, Triangles, Burning int
	Speeds                          []float64 // per live particle, units per second
	MeanHeight                      float64
	Wind                            float64
}

// SampleGrid measures a grid. dt converts per-step displacement to speed.
func SampleGrid(g *cloth.Grid, dt float64) Sample {
	s := Sample{
		Live:      g.LiveCount(),
		Total:     g.Len(),
		Triangles: len(g.Triangles()) / 3,
		Speeds:    make([]float64, 0, g.LiveCount()),
	}
	origin := g.Params().Origin
	var height float64
	g.Each(func(p *cloth.Particle) {
		v := p.Velocity()
		s.Speeds = append(s.Speeds, math.Sqrt(v.X*v.X+v.Y*v.Y+v.Z*v.Z)/dt)
		height += p.Pos.Y - origin.Y
		if g.Burning(p.Index) {
			s.Burning++
		}
	})
	if s.Live > 0 {
		s.MeanHeight = height / float64(s.Live)
	}
	return s
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, sample Sample) WindowStats {
	speed := ComputeSpeedStats(sample.Speeds)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Live:      sample.Live,
		Total:     sample.Total,
		Triangles: sample.Triangles,
		Burning:   sample.Burning,

		Tears:    c.tears,
		Cascades: c.cascades,
		Manual:   c.manual,
		Burns:    c.burns,

		Grabs:      c.grabs,
		Pins:       c.pins,
		Unpins:     c.unpins,
		Ignitions:  c.ignitions,
		Degenerate: c.degenerate,

		SpeedMean: speed.Mean,
		SpeedStd:  speed.Std,
		SpeedP50:  speed.P50,
		SpeedP95:  speed.P95,
		SpeedMax:  speed.Max,

		MeanHeight: sample.MeanHeight,
		Wind:       sample.Wind,
	}

	c.Reset(currentTick)

	return stats
}

// Reset discards the counts of the current window and starts a new one at tick.
func (c *Collector) Reset(tick int32) {
	c.windowStartTick = tick
	c.tears = 0
	c.cascades = 0
	c.manual = 0
	c.burns = 0
	c.grabs = 0
	c.pins = 0
	c.unpins = 0
	c.ignitions = 0
	c.degenerate = 0
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
