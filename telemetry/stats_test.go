package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p95", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.95, 9.55},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeSpeedStats(t *testing.T) {
	values := []float64{0.4, 0.1, 0.3, 0.2}
	s := ComputeSpeedStats(values)

	if math.Abs(s.Mean-0.25) > 1e-9 {
		t.Errorf("mean = %v, want 0.25", s.Mean)
	}
	if math.Abs(s.Std-math.Sqrt(0.0125)) > 1e-9 {
		t.Errorf("std = %v, want %v", s.Std, math.Sqrt(0.0125))
	}
	if math.Abs(s.P50-0.25) > 1e-9 {
		t.Errorf("p50 = %v, want 0.25", s.P50)
	}
	if s.Max != 0.4 {
		t.Errorf("max = %v, want 0.4", s.Max)
	}
	if values[0] != 0.4 {
		t.Error("input slice was reordered")
	}
}

func TestComputeSpeedStatsEmpty(t *testing.T) {
	if s := ComputeSpeedStats(nil); s != (SpeedStats{}) {
		t.Errorf("empty input = %+v, want zero", s)
	}
}

func TestWindowStats_LiveFraction(t *testing.T) {
	if got := (WindowStats{}).LiveFraction(); got != 1 {
		t.Errorf("empty cloth fraction = %v, want 1", got)
	}
	s := WindowStats{Live: 25, Total: 100, Tears: 3, Cascades: 70, Burns: 2}
	if got := s.LiveFraction(); got != 0.25 {
		t.Errorf("fraction = %v, want 0.25", got)
	}
	if got := s.Removed(); got != 75 {
		t.Errorf("removed = %d, want 75", got)
	}
}
