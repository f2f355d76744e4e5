// Package collider defines the primitive shapes cloth particles collide with.
//
// Shapes carry no physics state. They only answer geometric queries: the
// closest sphere centre for a point and the push-out position that keeps a
// point outside the shape by a given margin.
package collider

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Kind identifies which variant a Shape holds.
type Kind uint8

const (
	KindNone Kind = iota
	KindSphere
	KindCapsule
)

// String returns the lowercase kind name used in config files.
func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindCapsule:
		return "capsule"
	default:
		return "none"
	}
}

// ParseKind maps a config name back to a Kind. Unknown names map to KindNone.
func ParseKind(s string) Kind {
	switch s {
	case "sphere":
		return KindSphere
	case "capsule":
		return KindCapsule
	default:
		return KindNone
	}
}

// Sphere is a ball collider.
type Sphere struct {
	Center r3.Vec
	Radius float64
}

// Capsule is a swept sphere between Start and End.
type Capsule struct {
	Start  r3.Vec
	End    r3.Vec
	Radius float64
}

// Shape is a tagged variant over the supported collider primitives.
// Only the field matching Kind is meaningful.
type Shape struct {
	Kind    Kind
	Sphere  Sphere
	Capsule Capsule
}

// NewSphere wraps a sphere in a Shape.
func NewSphere(center r3.Vec, radius float64) Shape {
	return Shape{Kind: KindSphere, Sphere: Sphere{Center: center, Radius: radius}}
}

// NewCapsule wraps a capsule in a Shape.
func NewCapsule(start, end r3.Vec, radius float64) Shape {
	return Shape{Kind: KindCapsule, Capsule: Capsule{Start: start, End: end, Radius: radius}}
}

// Closest returns the centre and radius of the sphere that represents the
// shape locally around p. For a capsule that is the closest point on its
// segment.
func (s Shape) Closest(p r3.Vec) (r3.Vec, float64) {
	switch s.Kind {
	case KindSphere:
		return s.Sphere.Center, s.Sphere.Radius
	case KindCapsule:
		return ClosestPointOnSegment(p, s.Capsule.Start, s.Capsule.End), s.Capsule.Radius
	default:
		return p, 0
	}
}

// PushOut moves p radially away from the shape so that it lies exactly
// radius+margin from the closest centre. It reports false and returns p
// unchanged when p is already outside, or when p sits on the centre and
// no push direction exists.
func (s Shape) PushOut(p r3.Vec, margin float64) (r3.Vec, bool) {
	if s.Kind == KindNone {
		return p, false
	}
	center, radius := s.Closest(p)
	limit := radius + margin
	d := r3.Sub(p, center)
	dist := r3.Norm(d)
	if dist >= limit || dist < 1e-12 {
		return p, false
	}
	return r3.Add(center, r3.Scale(limit/dist, d)), true
}

// Contains reports whether p lies strictly inside the shape inflated by margin.
func (s Shape) Contains(p r3.Vec, margin float64) bool {
	if s.Kind == KindNone {
		return false
	}
	center, radius := s.Closest(p)
	limit := radius + margin
	return r3.Norm2(r3.Sub(p, center)) < limit*limit
}

// Translate returns the shape moved by offset.
func (s Shape) Translate(offset r3.Vec) Shape {
	switch s.Kind {
	case KindSphere:
		s.Sphere.Center = r3.Add(s.Sphere.Center, offset)
	case KindCapsule:
		s.Capsule.Start = r3.Add(s.Capsule.Start, offset)
		s.Capsule.End = r3.Add(s.Capsule.End, offset)
	}
	return s
}

// ClosestPointOnSegment returns the point of segment ab nearest to p.
func ClosestPointOnSegment(p, a, b r3.Vec) r3.Vec {
	ab := r3.Sub(b, a)
	lenSq := r3.Norm2(ab)
	if lenSq == 0 {
		return a
	}
	t := clamp01(r3.Dot(r3.Sub(p, a), ab) / lenSq)
	return r3.Add(a, r3.Scale(t, ab))
}

func clamp01(f float64) float64 {
	return math.Max(0, math.Min(f, 1))
}
