// Package camera provides a 3D fly camera for viewing the cloth.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// WorldUp is the camera's up reference.
var WorldUp = r3.Vec{Y: 1}

// Camera is a free-flying perspective camera.
// Yaw rotates about +Y starting from +Z; positive pitch looks down.
type Camera struct {
	// Position is the eye position in world coordinates
	Position r3.Vec

	// Orientation in degrees
	Yaw, Pitch float64

	// Vertical field of view in degrees
	FOV float64

	MoveSpeed  float64 // world units per second
	LookSpeed  float64 // degrees per pixel of mouse motion
	PitchLimit float64 // |Pitch| never exceeds this

	home struct {
		pos        r3.Vec
		yaw, pitch float64
	}
}

// New creates a camera at pos looking along yaw/pitch.
func New(pos r3.Vec, yaw, pitch, fov float64) *Camera {
	c := &Camera{
		Position:   pos,
		Yaw:        yaw,
		FOV:        fov,
		MoveSpeed:  3,
		LookSpeed:  0.2,
		PitchLimit: 89,
	}
	c.SetPitch(pitch)
	c.home.pos = pos
	c.home.yaw = yaw
	c.home.pitch = c.Pitch
	return c
}

// Forward returns the unit view direction.
func (c *Camera) Forward() r3.Vec {
	p := c.Pitch * math.Pi / 180
	y := c.Yaw * math.Pi / 180
	return r3.Vec{
		X: math.Cos(p) * math.Sin(y),
		Y: -math.Sin(p),
		Z: math.Cos(p) * math.Cos(y),
	}
}

// Right returns the unit vector to the right of the view, parallel to the ground.
func (c *Camera) Right() r3.Vec {
	y := c.Yaw * math.Pi / 180
	return r3.Vec{X: -math.Cos(y), Z: math.Sin(y)}
}

// Target returns a point one unit in front of the camera.
func (c *Camera) Target() r3.Vec {
	return r3.Add(c.Position, c.Forward())
}

// Move translates the camera in its own frame. forward and right follow the
// view, up follows WorldUp. Amounts are scaled by MoveSpeed*dt.
func (c *Camera) Move(forward, right, up, dt float64) {
	step := c.MoveSpeed * dt
	d := r3.Add(r3.Scale(forward, c.Forward()), r3.Scale(right, c.Right()))
	d = r3.Add(d, r3.Scale(up, WorldUp))
	c.Position = r3.Add(c.Position, r3.Scale(step, d))
}

// Look rotates the camera by a mouse delta in pixels.
func (c *Camera) Look(dx, dy float64) {
	c.Yaw = mod(c.Yaw-dx*c.LookSpeed, 360)
	c.SetPitch(c.Pitch + dy*c.LookSpeed)
}

// SetPitch sets the pitch, clamped to PitchLimit.
func (c *Camera) SetPitch(pitch float64) {
	c.Pitch = clamp(pitch, -c.PitchLimit, c.PitchLimit)
}

// Depth returns the distance of p in front of the camera along Forward.
func (c *Camera) Depth(p r3.Vec) float64 {
	return r3.Dot(r3.Sub(p, c.Position), c.Forward())
}

// PointAtDepth returns where a ray from the camera along dir meets the plane
// at the given view depth. ok is false when dir is parallel to that plane or
// points away from it.
func (c *Camera) PointAtDepth(dir r3.Vec, depth float64) (r3.Vec, bool) {
	along := r3.Dot(dir, c.Forward())
	if along <= 1e-9 {
		return r3.Vec{}, false
	}
	return r3.Add(c.Position, r3.Scale(depth/along, dir)), true
}

// Reset returns the camera to where it was created.
func (c *Camera) Reset() {
	c.Position = c.home.pos
	c.Yaw = c.home.yaw
	c.Pitch = c.home.pitch
}

// mod computes the positive modulo (Go's % can return negative).
func mod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	return r
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
