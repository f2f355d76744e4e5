package systems

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drape/collider"
	"github.com/pthm-cable/drape/config"
)

func testScene() config.SceneConfig {
	return config.SceneConfig{
		Active: "sphere",
		Colliders: []config.ColliderConfig{
			{Name: "ball", Kind: "sphere", Center: config.Vec3{Y: 1}, Radius: 0.5,
				Orbit: config.OrbitConfig{Radius: 1, Period: 4, Axis: "y"}},
			{Name: "bar", Kind: "capsule", Center: config.Vec3{Y: 2}, Radius: 0.2,
				Axis: config.Vec3{X: 1}},
		},
	}
}

func TestColliderSystemGather(t *testing.T) {
	s := NewColliderSystem(ecs.NewWorld(), testScene())
	if s.Count() != 2 {
		t.Fatalf("Count = %d, want 2", s.Count())
	}

	shapes := s.Gather(nil)
	if len(shapes) != 1 || shapes[0].Kind != collider.KindSphere {
		t.Fatalf("Gather = %+v, want the sphere only", shapes)
	}

	s.SetActive(collider.KindCapsule)
	shapes = s.Gather(shapes[:0])
	if len(shapes) != 1 || shapes[0].Kind != collider.KindCapsule {
		t.Fatalf("Gather = %+v, want the capsule only", shapes)
	}
	c := shapes[0].Capsule
	if c.Start != (r3.Vec{X: -1, Y: 2}) || c.End != (r3.Vec{X: 1, Y: 2}) {
		t.Errorf("capsule segment = %v..%v", c.Start, c.End)
	}

	s.SetActive(collider.KindNone)
	if got := s.Gather(nil); len(got) != 0 {
		t.Errorf("Gather with none active = %+v", got)
	}
}

func TestColliderSystemOrbit(t *testing.T) {
	s := NewColliderSystem(ecs.NewWorld(), testScene())

	start := s.Gather(nil)[0].Sphere.Center
	if math.Abs(start.Z-1) > 1e-12 || math.Abs(start.Y-1) > 1e-12 {
		t.Errorf("orbit start = %v, want (0, 1, 1)", start)
	}

	// A quarter period moves the sphere a quarter turn around its anchor.
	s.Update(1)
	got := s.Gather(nil)[0].Sphere.Center
	if math.Abs(got.X-1) > 1e-9 || math.Abs(got.Z) > 1e-9 || math.Abs(got.Y-1) > 1e-12 {
		t.Errorf("after quarter period = %v, want (1, 1, 0)", got)
	}

	s.SetActive(collider.KindCapsule)
	if c := s.Gather(nil)[0].Capsule; c.Start.Y != 2 {
		t.Errorf("static capsule moved to %v", c.Start)
	}
}

func TestColliderSystemEachAndRemove(t *testing.T) {
	s := NewColliderSystem(ecs.NewWorld(), testScene())

	var names []string
	var bar ecs.Entity
	s.Each(func(info ColliderInfo) {
		names = append(names, info.Name)
		if info.Name == "bar" {
			bar = info.Entity
			if info.Active {
				t.Error("capsule reported active while sphere is selected")
			}
		}
	})
	if len(names) != 2 {
		t.Fatalf("Each visited %v", names)
	}

	s.Remove(bar)
	if s.Count() != 1 {
		t.Errorf("Count after remove = %d, want 1", s.Count())
	}
}
