package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Cloth state at window end
	Live      int `csv:"live"`
	Total     int `csv:"total"`
	Triangles int `csv:"triangles"`
	Burning   int `csv:"burning"`

	// Removals during window
	Tears    int `csv:"tears"`
	Cascades int `csv:"cascades"`
	Manual   int `csv:"manual"`
	Burns    int `csv:"burns"`

	// Interaction during window
	Grabs      int `csv:"grabs"`
	Pins       int `csv:"pins"`
	Unpins     int `csv:"unpins"`
	Ignitions  int `csv:"ignitions"`
	Degenerate int `csv:"degenerate"`

	// Particle speed in units per second (sampled at window end)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP95  float64 `csv:"speed_p95"`
	SpeedMax  float64 `csv:"speed_max"`

	// Mean height of live particles relative to the cloth origin
	MeanHeight float64 `csv:"mean_height"`

	Wind float64 `csv:"wind"` // Wind force magnitude at window end
}

// Removed returns all removals in the window.
func (s WindowStats) Removed() int {
	return s.Tears + s.Cascades + s.Manual + s.Burns
}

// LiveFraction returns Live/Total, or 1 for an empty cloth.
func (s WindowStats) LiveFraction() float64 {
	if s.Total == 0 {
		return 1
	}
	return float64(s.Live) / float64(s.Total)
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// SpeedStats summarises a set of particle speeds.
type SpeedStats struct {
	Mean, Std, P50, P95, Max float64
}

// ComputeSpeedStats calculates mean, standard deviation, median, p95 and
// max. values is not modified.
func ComputeSpeedStats(values []float64) SpeedStats {
	if len(values) == 0 {
		return SpeedStats{}
	}

	mean, std := stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return SpeedStats{
		Mean: mean,
		Std:  std,
		P50:  Percentile(sorted, 0.50),
		P95:  Percentile(sorted, 0.95),
		Max:  floats.Max(sorted),
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("live", s.Live),
		slog.Int("total", s.Total),
		slog.Int("triangles", s.Triangles),
		slog.Int("burning", s.Burning),
		slog.Int("tears", s.Tears),
		slog.Int("cascades", s.Cascades),
		slog.Int("manual", s.Manual),
		slog.Int("burns", s.Burns),
		slog.Int("degenerate", s.Degenerate),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_p95", s.SpeedP95),
		slog.Float64("speed_max", s.SpeedMax),
		slog.Float64("mean_height", s.MeanHeight),
		slog.Float64("wind", s.Wind),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"live", s.Live,
		"triangles", s.Triangles,
		"burning", s.Burning,
		"tears", s.Tears,
		"cascades", s.Cascades,
		"manual", s.Manual,
		"burns", s.Burns,
		"grabs", s.Grabs,
		"pins", s.Pins,
		"degenerate", s.Degenerate,
		"speed_mean", s.SpeedMean,
		"speed_p95", s.SpeedP95,
		"mean_height", s.MeanHeight,
		"wind", s.Wind,
	)
}
