// Package components defines ECS components for scene entities.
package components

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drape/collider"
)

// Transform places an entity in the world. Anchor is the rest position
// animations are computed around.
type Transform struct {
	Position r3.Vec
	Anchor   r3.Vec
}

// Collider describes the collision shape of an entity. HalfAxis is only
// used by capsules: the segment runs from Position-HalfAxis to
// Position+HalfAxis.
type Collider struct {
	Kind     collider.Kind
	Radius   float64 `inspect:"label,fmt:%.2f"`
	HalfAxis r3.Vec
}

// Shape returns the collider placed at pos.
func (c Collider) Shape(pos r3.Vec) collider.Shape {
	switch c.Kind {
	case collider.KindSphere:
		return collider.NewSphere(pos, c.Radius)
	case collider.KindCapsule:
		return collider.NewCapsule(r3.Sub(pos, c.HalfAxis), r3.Add(pos, c.HalfAxis), c.Radius)
	default:
		return collider.Shape{}
	}
}

// OrbitAxis selects the plane an orbit turns in.
type OrbitAxis uint8

const (
	OrbitY OrbitAxis = iota // turns in the XZ plane
	OrbitX                  // turns in the YZ plane
	OrbitZ                  // turns in the XY plane
)

// ParseOrbitAxis maps "x", "y" or "z" to an axis. Anything else is Y.
func ParseOrbitAxis(s string) OrbitAxis {
	switch s {
	case "x":
		return OrbitX
	case "z":
		return OrbitZ
	default:
		return OrbitY
	}
}

// Orbit moves an entity on a circle around its anchor.
type Orbit struct {
	Radius float64 // 0 = static
	Period float64 // seconds per revolution
	Axis   OrbitAxis
	Phase  float64 // radians
}

// Name labels an entity for UI and logs.
type Name struct {
	Value string
}
