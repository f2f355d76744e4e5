package main

import (
	"math"

	"github.com/pthm-cable/drape/config"
)

// ParamSpec is one tunable cloth parameter. CMA-ES searches the unit
// interval; Log specs are mapped geometrically so that a step changes the
// value by a ratio rather than an amount.
type ParamSpec struct {
	Name     string
	Path     string
	Min, Max float64
	Log      bool
	Integer  bool

	get func(*config.Config) float64
	set func(*config.Config, float64)
}

type ParamVector struct {
	Specs []ParamSpec
}

func NewParamVector() *ParamVector {
	return &ParamVector{Specs: []ParamSpec{
		{
			Name: "spring", Path: "cloth.spring", Min: 500, Max: 20000, Log: true,
			get: func(c *config.Config) float64 { return c.Cloth.Spring },
			set: func(c *config.Config, v float64) { c.Cloth.Spring = v },
		},
		{
			Name: "damping", Path: "cloth.damping", Min: 0.001, Max: 0.2, Log: true,
			get: func(c *config.Config) float64 { return c.Cloth.Damping },
			set: func(c *config.Config, v float64) { c.Cloth.Damping = v },
		},
		{
			Name: "sub_steps", Path: "cloth.sub_steps", Min: 1, Max: 12, Integer: true,
			get: func(c *config.Config) float64 { return float64(c.Cloth.SubSteps) },
			set: func(c *config.Config, v float64) { c.Cloth.SubSteps = int(v) },
		},
	}}
}

func (pv *ParamVector) Dim() int { return len(pv.Specs) }

func (s ParamSpec) toUnit(v float64) float64 {
	if s.Log {
		return math.Log(v/s.Min) / math.Log(s.Max/s.Min)
	}
	return (v - s.Min) / (s.Max - s.Min)
}

func (s ParamSpec) fromUnit(u float64) float64 {
	if s.Log {
		return s.Min * math.Pow(s.Max/s.Min, u)
	}
	return s.Min + u*(s.Max-s.Min)
}

func (s ParamSpec) clamp(v float64) float64 {
	v = math.Max(s.Min, math.Min(s.Max, v))
	if s.Integer {
		v = math.Round(v)
	}
	return v
}

// Normalize maps raw values into search space. Values outside the bounds
// are clamped first so Log specs never see a non-positive input.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, s := range pv.Specs {
		out[i] = s.toUnit(math.Max(s.Min, math.Min(s.Max, raw[i])))
	}
	return out
}

func (pv *ParamVector) Denormalize(unit []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, s := range pv.Specs {
		out[i] = s.fromUnit(unit[i])
	}
	return out
}

// Clamp bounds every value and rounds integer specs.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, s := range pv.Specs {
		out[i] = s.clamp(v[i])
	}
	return out
}

// ApplyToConfig writes clamped values into cfg.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	for i, s := range pv.Specs {
		s.set(cfg, s.clamp(values[i]))
	}
}

func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, s := range pv.Specs {
		out[i] = s.get(cfg)
	}
	return out
}
