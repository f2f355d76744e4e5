package cloth

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Params configures grid generation and the solver.
type Params struct {
	Width  int // quads along X
	Height int // quads along Y

	CellX float64
	CellY float64

	Mass         float64
	Damping      float64 // 0 = no damping, 1 = velocity discarded every step
	GravityScale float64
	Gravity      r3.Vec

	Spring            float64 // spring constant shared by all spring kinds
	CollisionDistance float64 // extra clearance kept from colliders
	TearThreshold     float64 // acceleration magnitude that tears a particle
	SubSteps          int

	Ground       bool
	GroundHeight float64

	FireGrowth float64 // heat growth rate per second, 0 disables spreading

	// Origin is the world position of the local mesh origin. Mesh vertices
	// are reported relative to it.
	Origin r3.Vec
}

// DefaultParams returns a 20x20 cloth hanging two units above the ground.
func DefaultParams() Params {
	return Params{
		Width:             20,
		Height:            20,
		CellX:             0.1,
		CellY:             0.1,
		Mass:              1,
		Damping:           0.02,
		GravityScale:      1,
		Gravity:           r3.Vec{Y: -9.81},
		Spring:            5000,
		CollisionDistance: 0.05,
		TearThreshold:     3000,
		SubSteps:          4,
		Ground:            true,
		GroundHeight:      0.01,
		FireGrowth:        2,
		Origin:            r3.Vec{Y: 2},
	}
}

// Validate checks that the parameters describe a usable grid.
func (p Params) Validate() error {
	switch {
	case p.Width < 1:
		return &ValidationError{Field: "width", Reason: "must be at least 1"}
	case p.Height < 1:
		return &ValidationError{Field: "height", Reason: "must be at least 1"}
	case !positive(p.CellX):
		return &ValidationError{Field: "cell_x", Reason: "must be positive"}
	case !positive(p.CellY):
		return &ValidationError{Field: "cell_y", Reason: "must be positive"}
	case !positive(p.Mass):
		return &ValidationError{Field: "mass", Reason: "must be positive"}
	case p.Damping < 0 || p.Damping > 1 || math.IsNaN(p.Damping):
		return &ValidationError{Field: "damping", Reason: "must be within [0, 1]"}
	case !positive(p.Spring):
		return &ValidationError{Field: "spring", Reason: "must be positive"}
	case p.CollisionDistance < 0 || math.IsNaN(p.CollisionDistance):
		return &ValidationError{Field: "collision_distance", Reason: "must not be negative"}
	case !positive(p.TearThreshold):
		return &ValidationError{Field: "tear_threshold", Reason: "must be positive"}
	case p.SubSteps < 1:
		return &ValidationError{Field: "sub_steps", Reason: "must be at least 1"}
	case p.FireGrowth < 0 || math.IsNaN(p.FireGrowth):
		return &ValidationError{Field: "fire_growth", Reason: "must not be negative"}
	case !finite(p.GravityScale):
		return &ValidationError{Field: "gravity_scale", Reason: "must be finite"}
	case !finite(p.Gravity.X) || !finite(p.Gravity.Y) || !finite(p.Gravity.Z):
		return &ValidationError{Field: "gravity", Reason: "must be finite"}
	case p.Ground && !finite(p.GroundHeight):
		return &ValidationError{Field: "ground_height", Reason: "must be finite"}
	case !finite(p.Origin.X) || !finite(p.Origin.Y) || !finite(p.Origin.Z):
		return &ValidationError{Field: "origin", Reason: "must be finite"}
	}
	return nil
}

// VertexCount returns (Width+1)*(Height+1).
func (p Params) VertexCount() int {
	return (p.Width + 1) * (p.Height + 1)
}

// Diagonal returns the rest length of a shear spring.
func (p Params) Diagonal() float64 {
	return math.Hypot(p.CellX, p.CellY)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func positive(f float64) bool {
	return f > 0 && !math.IsInf(f, 1)
}
