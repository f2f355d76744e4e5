package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drape/config"
)

type forceRecorder struct {
	forces []r3.Vec
}

func (f *forceRecorder) ApplyGlobalForce(v r3.Vec) {
	f.forces = append(f.forces, v)
}

func TestWindDisabled(t *testing.T) {
	w := NewWindSystem(config.WindConfig{Enabled: false, Speed: 5}, 1)
	rec := &forceRecorder{}
	w.Update(0.1, rec)
	if len(rec.forces) != 0 {
		t.Errorf("disabled wind applied %v", rec.forces)
	}
}

func TestWindSteady(t *testing.T) {
	w := NewWindSystem(config.WindConfig{Enabled: true, Yaw: 90, Speed: 3}, 1)
	rec := &forceRecorder{}
	for i := 0; i < 5; i++ {
		w.Update(0.1, rec)
	}
	if len(rec.forces) != 5 {
		t.Fatalf("applied %d forces, want 5", len(rec.forces))
	}
	for _, f := range rec.forces {
		if math.Abs(f.X-3) > 1e-9 || math.Abs(f.Y) > 1e-9 || math.Abs(f.Z) > 1e-9 {
			t.Errorf("steady wind force = %v, want (3, 0, 0)", f)
		}
	}
	if w.Last() != rec.forces[4] {
		t.Errorf("Last = %v, want %v", w.Last(), rec.forces[4])
	}
}

func TestWindGustsStayBounded(t *testing.T) {
	cfg := config.WindConfig{Enabled: true, Speed: 2, Gust: 0.5, GustScale: 1.3}
	w := NewWindSystem(cfg, 7)
	rec := &forceRecorder{}

	varied := false
	for i := 0; i < 200; i++ {
		w.Update(0.05, rec)
	}
	for i, f := range rec.forces {
		mag := r3.Norm(f)
		if mag > cfg.Speed*(1+cfg.Gust)+1e-9 || mag < cfg.Speed*(1-cfg.Gust)-1e-9 {
			t.Errorf("gust %d magnitude %v outside bounds", i, mag)
		}
		if i > 0 && math.Abs(mag-r3.Norm(rec.forces[0])) > 1e-6 {
			varied = true
		}
	}
	if !varied {
		t.Error("gusting wind never changed strength")
	}
}

func TestWindSeedFromConfig(t *testing.T) {
	cfg := config.WindConfig{Enabled: true, Speed: 1, Gust: 1, GustScale: 1, Seed: 42}
	a := NewWindSystem(cfg, 1)
	b := NewWindSystem(cfg, 2)
	ra, rb := &forceRecorder{}, &forceRecorder{}
	for i := 0; i < 10; i++ {
		a.Update(0.3, ra)
		b.Update(0.3, rb)
	}
	for i := range ra.forces {
		if ra.forces[i] != rb.forces[i] {
			t.Fatalf("config seed ignored: %v != %v", ra.forces[i], rb.forces[i])
		}
	}
}
