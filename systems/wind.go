package systems

import (
	"github.com/ojrac/opensimplex-go"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drape/config"
)

// ForceTarget receives a force applied to every particle.
type ForceTarget interface {
	ApplyGlobalForce(f r3.Vec)
}

// WindSystem pushes the cloth with a directional force whose strength is
// modulated by smooth noise.
type WindSystem struct {
	Enabled bool
	dir     r3.Vec
	speed   float64
	gust    float64
	scale   float64

	noise opensimplex.Noise
	time  float64
	last  r3.Vec
}

// NewWindSystem builds wind from config. seed is used when the config
// does not fix one.
func NewWindSystem(cfg config.WindConfig, seed int64) *WindSystem {
	if cfg.Seed != 0 {
		seed = cfg.Seed
	}
	w := &WindSystem{
		Enabled: cfg.Enabled,
		speed:   cfg.Speed,
		gust:    cfg.Gust,
		scale:   cfg.GustScale,
		noise:   opensimplex.New(seed),
	}
	w.SetDirection(cfg.Pitch, cfg.Yaw)
	return w
}

// SetDirection sets the wind heading from pitch and yaw in degrees.
func (w *WindSystem) SetDirection(pitch, yaw float64) {
	w.dir = config.WindDirection(pitch, yaw)
}

// SetSpeed sets the base force magnitude.
func (w *WindSystem) SetSpeed(speed float64) {
	w.speed = speed
}

// Speed returns the base force magnitude.
func (w *WindSystem) Speed() float64 {
	return w.speed
}

// Direction returns the unit wind direction.
func (w *WindSystem) Direction() r3.Vec {
	return w.dir
}

// Force returns the wind force at the current time without advancing it.
func (w *WindSystem) Force() r3.Vec {
	if !w.Enabled {
		return r3.Vec{}
	}
	strength := w.speed
	if w.gust > 0 {
		strength *= 1 + w.gust*w.noise.Eval2(w.time*w.scale, 0)
	}
	return r3.Scale(strength, w.dir)
}

// Update advances the gust noise by dt and applies the wind to target.
func (w *WindSystem) Update(dt float64, target ForceTarget) {
	w.time += dt
	w.last = w.Force()
	if w.last == (r3.Vec{}) {
		return
	}
	target.ApplyGlobalForce(w.last)
}

// Last returns the force applied by the most recent Update.
func (w *WindSystem) Last() r3.Vec {
	return w.last
}
