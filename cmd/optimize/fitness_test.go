package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/drape/config"
)

func smallConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Defaults()
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	cfg.Cloth.Width = 4
	cfg.Cloth.Height = 4
	cfg.Wind.Enabled = false
	cfg.Scene.Active = "none"
	cfg.Fire.GrowthRate = 0
	return cfg
}

func TestParamVector_ClampRoundsSubSteps(t *testing.T) {
	pv := NewParamVector()
	got := pv.Clamp([]float64{1e9, -1, 3.6})

	if got[0] != pv.Specs[0].Max {
		t.Errorf("spring = %v, want %v", got[0], pv.Specs[0].Max)
	}
	if got[1] != pv.Specs[1].Min {
		t.Errorf("damping = %v, want %v", got[1], pv.Specs[1].Min)
	}
	if got[2] != 4 {
		t.Errorf("sub_steps = %v, want 4", got[2])
	}
}

func TestParamVector_NormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	def := pv.ExtractFromConfig(smallConfig(t))
	back := pv.Denormalize(pv.Normalize(def))
	for i := range def {
		if math.Abs(back[i]-def[i]) > 1e-9*math.Max(1, def[i]) {
			t.Errorf("%s: got %v, want %v", pv.Specs[i].Name, back[i], def[i])
		}
	}
}

func TestParamVector_LogScale(t *testing.T) {
	pv := NewParamVector()
	spring := pv.Specs[0]
	if !spring.Log {
		t.Fatal("spring should be log scaled")
	}

	// The geometric midpoint sits at 0.5
	mid := math.Sqrt(spring.Min * spring.Max)
	if u := pv.Normalize([]float64{mid, 0.02, 4})[0]; math.Abs(u-0.5) > 1e-9 {
		t.Errorf("normalized geometric midpoint = %v, want 0.5", u)
	}

	// Out of range inputs clamp instead of producing NaN
	u := pv.Normalize([]float64{-5, 0, 100})
	for i, v := range u {
		if math.IsNaN(v) || v < 0 || v > 1 {
			t.Errorf("%s normalized to %v", pv.Specs[i].Name, v)
		}
	}
}

func TestParamVector_ApplyToConfig(t *testing.T) {
	pv := NewParamVector()
	cfg := smallConfig(t)
	pv.ApplyToConfig(cfg, []float64{8000, 0.05, 6.2})

	if cfg.Cloth.Spring != 8000 || cfg.Cloth.Damping != 0.05 || cfg.Cloth.SubSteps != 6 {
		t.Errorf("cloth = %+v", cfg.Cloth)
	}
	got := pv.ExtractFromConfig(cfg)
	if got[2] != 6 {
		t.Errorf("extracted sub_steps = %v, want 6", got[2])
	}
}

func TestComputeFitness_Ordering(t *testing.T) {
	fast := runResult{settled: true, settleSec: 2, runSec: 10}
	slow := runResult{settled: true, settleSec: 8, runSec: 10}
	never := runResult{settleSec: 10, runSec: 10}
	torn := runResult{settled: true, settleSec: 2, runSec: 10, tornFraction: 0.2}

	if computeFitness(fast) >= computeFitness(slow) {
		t.Error("faster settle should score better")
	}
	if computeFitness(slow) >= computeFitness(never) {
		t.Error("unsettled run should score worst")
	}
	if computeFitness(fast) >= computeFitness(torn) {
		t.Error("tearing should be penalized")
	}
}

func TestRunScenario_SmallCloth(t *testing.T) {
	cfg := smallConfig(t)

	r, err := runScenario(cfg, 1, 200)
	if err != nil {
		t.Fatalf("runScenario: %v", err)
	}
	if r.tornFraction != 0 {
		t.Errorf("tornFraction = %v, want 0", r.tornFraction)
	}
	if r.sag < 0 || r.sag >= 1 {
		t.Errorf("sag = %v, want within [0, 1)", r.sag)
	}
	if r.settleSec <= 0 || r.settleSec > r.runSec {
		t.Errorf("settleSec = %v, runSec = %v", r.settleSec, r.runSec)
	}
}

func TestRunScenario_InvalidParams(t *testing.T) {
	cfg := smallConfig(t)
	cfg.Cloth.Width = 0

	if _, err := runScenario(cfg, 1, 10); err == nil {
		t.Error("expected error for zero width")
	}
}

func TestEvaluate_ParallelSeeds(t *testing.T) {
	cfg := smallConfig(t)
	pv := NewParamVector()
	fe := NewFitnessEvaluator(pv, 100, []int64{1, 2, 3}, cfg)

	f := fe.Evaluate(pv.ExtractFromConfig(cfg))
	if math.IsNaN(f) || math.IsInf(f, 0) {
		t.Fatalf("fitness = %v", f)
	}
	if s := fe.LastSummary(); s.runSec <= 0 {
		t.Errorf("summary runSec = %v", s.runSec)
	}
}
