// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/drape/cloth"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	Physics     PhysicsConfig     `yaml:"physics"`
	Cloth       ClothConfig       `yaml:"cloth"`
	Ground      GroundConfig      `yaml:"ground"`
	Fire        FireConfig        `yaml:"fire"`
	Wind        WindConfig        `yaml:"wind"`
	Interaction InteractionConfig `yaml:"interaction"`
	Scene       SceneConfig       `yaml:"scene"`
	Camera      CameraConfig      `yaml:"camera"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`
	Bookmarks   BookmarksConfig   `yaml:"bookmarks"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// Vec3 is a YAML-friendly 3D vector.
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// R3 converts to a gonum vector.
func (v Vec3) R3() r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PhysicsConfig holds global solver settings.
type PhysicsConfig struct {
	DT      float64 `yaml:"dt"`      // Fixed step in seconds
	Gravity Vec3    `yaml:"gravity"` // m/s^2
}

// ClothConfig holds grid generation and spring parameters.
type ClothConfig struct {
	Width             int     `yaml:"width"`              // Quads along X
	Height            int     `yaml:"height"`             // Quads along Y
	CellX             float64 `yaml:"cell_x"`             // Quad width in world units
	CellY             float64 `yaml:"cell_y"`             // Quad height in world units
	Mass              float64 `yaml:"mass"`               // Per particle
	Damping           float64 `yaml:"damping"`            // 0..1, fraction of velocity lost per pass
	GravityScale      float64 `yaml:"gravity_scale"`      // Multiplies physics.gravity
	Spring            float64 `yaml:"spring"`             // Spring constant for all spring kinds
	CollisionDistance float64 `yaml:"collision_distance"` // Clearance kept from colliders
	TearThreshold     float64 `yaml:"tear_threshold"`     // Acceleration that tears a particle
	SubSteps          int     `yaml:"sub_steps"`          // Solver passes per fixed step
	Origin            Vec3    `yaml:"origin"`             // World position of the cloth centre
}

// GroundConfig holds the ground plane.
type GroundConfig struct {
	Enabled bool    `yaml:"enabled"`
	Height  float64 `yaml:"height"` // Minimum particle Y
}

// FireConfig holds burn propagation parameters.
type FireConfig struct {
	GrowthRate float64 `yaml:"growth_rate"` // Heat growth per second, 0 disables
	IgniteHeat float64 `yaml:"ignite_heat"` // Heat given by the ignite tool
}

// WindConfig holds the global wind force.
type WindConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Pitch     float64 `yaml:"pitch"`      // Degrees about X
	Yaw       float64 `yaml:"yaw"`        // Degrees about Y
	Speed     float64 `yaml:"speed"`      // Force magnitude per particle
	Gust      float64 `yaml:"gust"`       // 0..1 noise modulation of speed
	GustScale float64 `yaml:"gust_scale"` // Noise frequency in 1/s
	Seed      int64   `yaml:"seed"`       // Noise seed, 0 = use the run seed
}

// InteractionConfig holds mouse interaction parameters.
type InteractionConfig struct {
	PickDistance float64 `yaml:"pick_distance"` // Max ray distance for selection
	Mode         string  `yaml:"mode"`          // grab, tear, pin, unpin, ignite
}

// SceneConfig holds colliders placed in the world.
type SceneConfig struct {
	Active    string           `yaml:"active"` // none, sphere, capsule
	Colliders []ColliderConfig `yaml:"colliders"`
}

// ColliderConfig defines one collider entity.
type ColliderConfig struct {
	Name   string      `yaml:"name"`
	Kind   string      `yaml:"kind"` // sphere or capsule
	Center Vec3        `yaml:"center"`
	Radius float64     `yaml:"radius"`
	Axis   Vec3        `yaml:"axis"` // Capsule half-segment from center
	Orbit  OrbitConfig `yaml:"orbit"`
}

// OrbitConfig animates a collider around its center.
type OrbitConfig struct {
	Radius float64 `yaml:"radius"` // 0 = static
	Period float64 `yaml:"period"` // Seconds per revolution
	Axis   string  `yaml:"axis"`   // x, y or z
}

// CameraConfig holds the fly camera.
type CameraConfig struct {
	Position   Vec3    `yaml:"position"`
	Yaw        float64 `yaml:"yaw"`   // Degrees
	Pitch      float64 `yaml:"pitch"` // Degrees
	FOV        float64 `yaml:"fov"`
	MoveSpeed  float64 `yaml:"move_speed"`
	LookSpeed  float64 `yaml:"look_speed"` // Degrees per pixel
	PitchLimit float64 `yaml:"pitch_limit"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	BookmarkHistorySize int     `yaml:"bookmark_history_size"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// BookmarksConfig holds bookmark detection thresholds.
type BookmarksConfig struct {
	Settled   SettledConfig   `yaml:"settled"`
	TearBurst TearBurstConfig `yaml:"tear_burst"`
	Shredded  ShreddedConfig  `yaml:"shredded"`
}

// SettledConfig detects a cloth that has come to rest.
type SettledConfig struct {
	MaxSpeed      float64 `yaml:"max_speed"`      // p95 particle speed below this
	StableWindows int     `yaml:"stable_windows"` // Consecutive windows required
}

// TearBurstConfig detects unusually many removals in one window.
type TearBurstConfig struct {
	Multiplier float64 `yaml:"multiplier"` // Removals vs. rolling average
	MinRemoved int     `yaml:"min_removed"`
}

// ShreddedConfig detects a cloth that has mostly been destroyed.
type ShreddedConfig struct {
	LiveFraction float64 `yaml:"live_fraction"` // Fires once live/total drops below this
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32      float32 // Physics.DT as float32
	ScreenW32 float32 // Screen.Width as float32
	ScreenH32 float32 // Screen.Height as float32
	Vertices  int     // (Cloth.Width+1)*(Cloth.Height+1)
	WindDir   r3.Vec  // Unit wind direction from pitch/yaw
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg, err := Defaults()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Defaults returns the embedded default configuration.
func Defaults() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	cfg.computeDerived()
	return cfg, nil
}

// Validate checks values the simulation cannot run with. Cloth errors are
// returned wrapped so callers can match cloth.ErrValidation.
func (c *Config) Validate() error {
	if c.Physics.DT <= 0 {
		return fmt.Errorf("physics.dt: %w", &cloth.ValidationError{Field: "dt", Reason: "must be positive"})
	}
	if err := c.ClothParams().Validate(); err != nil {
		return fmt.Errorf("cloth: %w", err)
	}
	if c.Wind.Gust < 0 || c.Wind.Gust > 1 {
		return fmt.Errorf("wind.gust: %w", &cloth.ValidationError{Field: "gust", Reason: "must be within [0, 1]"})
	}
	for i, cc := range c.Scene.Colliders {
		if cc.Kind != "sphere" && cc.Kind != "capsule" {
			return fmt.Errorf("scene.colliders[%d]: %w", i, &cloth.ValidationError{Field: "kind", Reason: fmt.Sprintf("unknown collider %q", cc.Kind)})
		}
		if cc.Radius <= 0 {
			return fmt.Errorf("scene.colliders[%d]: %w", i, &cloth.ValidationError{Field: "radius", Reason: "must be positive"})
		}
	}
	return nil
}

// ClothParams converts the cloth, physics, ground and fire sections into
// solver parameters.
func (c *Config) ClothParams() cloth.Params {
	return cloth.Params{
		Width:             c.Cloth.Width,
		Height:            c.Cloth.Height,
		CellX:             c.Cloth.CellX,
		CellY:             c.Cloth.CellY,
		Mass:              c.Cloth.Mass,
		Damping:           c.Cloth.Damping,
		GravityScale:      c.Cloth.GravityScale,
		Gravity:           c.Physics.Gravity.R3(),
		Spring:            c.Cloth.Spring,
		CollisionDistance: c.Cloth.CollisionDistance,
		TearThreshold:     c.Cloth.TearThreshold,
		SubSteps:          c.Cloth.SubSteps,
		Ground:            c.Ground.Enabled,
		GroundHeight:      c.Ground.Height,
		FireGrowth:        c.Fire.GrowthRate,
		Origin:            c.Cloth.Origin.R3(),
	}
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.Vertices = (c.Cloth.Width + 1) * (c.Cloth.Height + 1)
	c.Derived.WindDir = WindDirection(c.Wind.Pitch, c.Wind.Yaw)
}

// WindDirection rotates +Z by pitch about X and then yaw about Y.
// Angles are in degrees.
func WindDirection(pitch, yaw float64) r3.Vec {
	p := pitch * math.Pi / 180
	y := yaw * math.Pi / 180
	return r3.Vec{
		X: math.Cos(p) * math.Sin(y),
		Y: -math.Sin(p),
		Z: math.Cos(p) * math.Cos(y),
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
