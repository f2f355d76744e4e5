package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/drape/cloth"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}
	if cfg.Physics.DT <= 0 {
		t.Errorf("dt = %v, want positive", cfg.Physics.DT)
	}
	if cfg.Derived.Vertices != (cfg.Cloth.Width+1)*(cfg.Cloth.Height+1) {
		t.Errorf("derived vertices = %d", cfg.Derived.Vertices)
	}
	if len(cfg.Scene.Colliders) == 0 {
		t.Error("default scene has no colliders")
	}
	if err := cfg.ClothParams().Validate(); err != nil {
		t.Errorf("default cloth params invalid: %v", err)
	}
}

func TestLoadOverlay(t *testing.T) {
	path := writeFile(t, "cloth:\n  width: 7\n  spring: 1200\nwind:\n  enabled: true\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Cloth.Width != 7 || cfg.Cloth.Spring != 1200 || !cfg.Wind.Enabled {
		t.Errorf("overlay not applied: %+v %+v", cfg.Cloth, cfg.Wind)
	}

	defaults, _ := Defaults()
	if cfg.Cloth.Height != defaults.Cloth.Height {
		t.Errorf("height = %d, want default %d", cfg.Cloth.Height, defaults.Cloth.Height)
	}
	if cfg.Derived.Vertices != 8*(defaults.Cloth.Height+1) {
		t.Errorf("derived vertices = %d", cfg.Derived.Vertices)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero width", "cloth:\n  width: 0\n"},
		{"negative height", "cloth:\n  height: -2\n"},
		{"damping", "cloth:\n  damping: 2\n"},
		{"dt", "physics:\n  dt: 0\n"},
		{"gust", "wind:\n  gust: 1.5\n"},
		{"collider kind", "scene:\n  colliders:\n    - kind: cube\n      radius: 1\n"},
		{"collider radius", "scene:\n  colliders:\n    - kind: sphere\n      radius: 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.body))
			if !errors.Is(err, cloth.ErrValidation) {
				t.Errorf("Load error = %v, want validation error", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load error = %v, want not-exist", err)
	}
}

func TestWindDirection(t *testing.T) {
	tests := []struct {
		pitch, yaw float64
		x, y, z    float64
	}{
		{0, 0, 0, 0, 1},
		{0, 90, 1, 0, 0},
		{90, 0, 0, -1, 0},
		{0, 180, 0, 0, -1},
	}
	for _, tt := range tests {
		d := WindDirection(tt.pitch, tt.yaw)
		if math.Abs(d.X-tt.x) > 1e-9 || math.Abs(d.Y-tt.y) > 1e-9 || math.Abs(d.Z-tt.z) > 1e-9 {
			t.Errorf("WindDirection(%v, %v) = %v, want (%v, %v, %v)", tt.pitch, tt.yaw, d, tt.x, tt.y, tt.z)
		}
	}
}

func TestWriteYAMLReloads(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Cloth.TearThreshold = 1234
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load written config: %v", err)
	}
	if got.Cloth.TearThreshold != 1234 {
		t.Errorf("tear threshold = %v, want 1234", got.Cloth.TearThreshold)
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("Cfg() did not panic before Init")
		}
	}()
	Cfg()
}
