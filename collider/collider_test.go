package collider

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestSpherePushOut(t *testing.T) {
	s := NewSphere(r3.Vec{}, 1)

	got, moved := s.PushOut(r3.Vec{Z: 1.05}, 0.1)
	if !moved {
		t.Fatal("expected point inside the margin to be pushed")
	}
	if d := r3.Norm(got); math.Abs(d-1.1) > 1e-12 {
		t.Errorf("distance after push = %v, want 1.1", d)
	}
	if got.X != 0 || got.Y != 0 {
		t.Errorf("push should be radial, got %v", got)
	}

	outside := r3.Vec{X: 2}
	if got, moved := s.PushOut(outside, 0.1); moved || got != outside {
		t.Errorf("outside point moved to %v", got)
	}
}

func TestPushOutAtCenter(t *testing.T) {
	s := NewSphere(r3.Vec{X: 1, Y: 1}, 1)
	if _, moved := s.PushOut(r3.Vec{X: 1, Y: 1}, 0); moved {
		t.Error("point exactly at the centre has no push direction")
	}
}

func TestCapsulePushOut(t *testing.T) {
	c := NewCapsule(r3.Vec{X: -1}, r3.Vec{X: 1}, 0.5)

	tests := []struct {
		name   string
		p      r3.Vec
		center r3.Vec
	}{
		{"middle", r3.Vec{X: 0.3, Y: 0.2}, r3.Vec{X: 0.3}},
		{"past end", r3.Vec{X: 1.2, Y: 0.1}, r3.Vec{X: 1}},
		{"before start", r3.Vec{X: -1.3}, r3.Vec{X: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			center, radius := c.Closest(tt.p)
			if r3.Norm(r3.Sub(center, tt.center)) > 1e-12 {
				t.Errorf("Closest = %v, want %v", center, tt.center)
			}
			if radius != 0.5 {
				t.Errorf("radius = %v, want 0.5", radius)
			}
			got, moved := c.PushOut(tt.p, 0.1)
			if !moved {
				t.Fatal("expected push")
			}
			if d := r3.Norm(r3.Sub(got, tt.center)); math.Abs(d-0.6) > 1e-12 {
				t.Errorf("distance after push = %v, want 0.6", d)
			}
		})
	}
}

func TestClosestPointOnDegenerateSegment(t *testing.T) {
	a := r3.Vec{X: 2, Y: 3, Z: 4}
	if got := ClosestPointOnSegment(r3.Vec{}, a, a); got != a {
		t.Errorf("ClosestPointOnSegment = %v, want %v", got, a)
	}
}

func TestNoneShape(t *testing.T) {
	var s Shape
	p := r3.Vec{X: 0.1}
	if _, moved := s.PushOut(p, 1); moved {
		t.Error("empty shape should never push")
	}
	if s.Contains(p, 1) {
		t.Error("empty shape contains nothing")
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindNone, KindSphere, KindCapsule} {
		if got := ParseKind(k.String()); got != k {
			t.Errorf("ParseKind(%q) = %v, want %v", k.String(), got, k)
		}
	}
	if ParseKind("cube") != KindNone {
		t.Error("unknown kind should parse as none")
	}
}

func TestTranslate(t *testing.T) {
	c := NewCapsule(r3.Vec{}, r3.Vec{Y: 1}, 0.2).Translate(r3.Vec{X: 1})
	if c.Capsule.Start != (r3.Vec{X: 1}) || c.Capsule.End != (r3.Vec{X: 1, Y: 1}) {
		t.Errorf("Translate moved capsule to %v..%v", c.Capsule.Start, c.Capsule.End)
	}
}
