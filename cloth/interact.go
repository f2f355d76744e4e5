package cloth

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// SelectNearest returns the live particle closest to the ray, measured
// perpendicular to it, if that distance is below maxDistance. Particles
// behind the ray origin are ignored.
func (g *Grid) SelectNearest(origin, dir r3.Vec, maxDistance float64) (Handle, bool) {
	l := r3.Norm(dir)
	if l == 0 {
		return Handle{}, false
	}
	dir = r3.Scale(1/l, dir)

	best := noLink
	bestDist := maxDistance
	for i, p := range g.particles {
		if p == nil || p.State != Alive {
			continue
		}
		rel := r3.Sub(p.Pos, origin)
		if r3.Dot(rel, dir) < 0 {
			continue
		}
		if d := r3.Norm(r3.Cross(dir, rel)); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best == noLink {
		return Handle{}, false
	}
	return g.Handle(best)
}

// Grab starts driving the particle externally. Only one particle is
// grabbed at a time; grabbing another releases the first. While grabbed
// the particle skips integration and ignores forces.
func (g *Grid) Grab(h Handle) bool {
	p, ok := g.resolve(h, "grab")
	if !ok {
		return false
	}
	g.Release()
	p.grabbed = true
	p.acc = r3.Vec{}
	g.grabbed = p.Index
	return true
}

// MoveGrabbed places the grabbed particle at pos with zero velocity.
func (g *Grid) MoveGrabbed(pos r3.Vec) bool {
	p := g.Particle(g.grabbed)
	if p == nil {
		return false
	}
	p.Pos = pos
	p.Prev = pos
	return true
}

// Release ends the current grab, if any.
func (g *Grid) Release() {
	if p := g.Particle(g.grabbed); p != nil {
		p.grabbed = false
		p.Prev = p.Pos
	}
	g.grabbed = noLink
}

// Grabbed returns the handle of the grabbed particle.
func (g *Grid) Grabbed() (Handle, bool) {
	if g.grabbed == noLink {
		return Handle{}, false
	}
	return g.Handle(g.grabbed)
}

// Pin fixes the particle in place.
func (g *Grid) Pin(h Handle) bool {
	p, ok := g.resolve(h, "pin")
	if !ok {
		return false
	}
	p.Pinned = true
	p.acc = r3.Vec{}
	return true
}

// Unpin releases a pinned particle at rest.
func (g *Grid) Unpin(h Handle) bool {
	p, ok := g.resolve(h, "unpin")
	if !ok {
		return false
	}
	p.Pinned = false
	p.Prev = p.Pos
	return true
}

// Tear destroys the particle and whatever cascades from it.
func (g *Grid) Tear(h Handle) bool {
	p, ok := g.resolve(h, "tear")
	if !ok {
		return false
	}
	return g.Destroy(p.Index, CauseManual)
}

// ApplyForce adds a force to one particle.
func (g *Grid) ApplyForce(h Handle, f r3.Vec) bool {
	p, ok := g.resolve(h, "apply_force")
	if !ok {
		return false
	}
	p.applyForce(f, g.params.Mass)
	return true
}

// ApplyGlobalForce adds f to every live particle, e.g. wind.
func (g *Grid) ApplyGlobalForce(f r3.Vec) {
	if math.IsNaN(f.X) || math.IsNaN(f.Y) || math.IsNaN(f.Z) {
		return
	}
	for _, p := range g.particles {
		if p != nil && p.State == Alive {
			p.applyForce(f, g.params.Mass)
		}
	}
}

func (g *Grid) resolve(h Handle, op string) (*Particle, bool) {
	p, err := g.Lookup(h)
	if err != nil {
		slog.Debug("ignoring stale handle", "op", op, "index", h.Index, "error", err)
		return nil, false
	}
	return p, true
}
