package cloth

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drape/collider"
)

// degenerateLength is the spring length below which no force direction exists.
const degenerateLength = 1e-9

// StepStats summarises the most recent FixedStep.
type StepStats struct {
	SubSteps   int
	Degenerate int // spring terms skipped for zero length
	Destroyed  int // particles removed during the step, cascades included
	Live       int
	Triangles  int
}

// FixedStep advances the cloth by dt, split into Params.SubSteps passes.
// Colliders are the shapes present for this tick; spheres are resolved
// before capsules.
func (g *Grid) FixedStep(dt float64, colliders []collider.Shape) StepStats {
	before := g.counters.Destroyed
	g.stats = StepStats{SubSteps: g.params.SubSteps}

	for s := 0; s < g.params.SubSteps; s++ {
		for _, p := range g.particles {
			if p == nil || p.State != Alive {
				continue
			}
			g.updateParticle(p, dt, colliders)
		}
	}

	g.syncMesh()

	g.stats.Destroyed = g.counters.Destroyed - before
	g.stats.Live = g.live
	g.stats.Triangles = len(g.mesh.Triangles) / 3
	return g.stats
}

// LastStep returns the stats of the most recent FixedStep.
func (g *Grid) LastStep() StepStats {
	return g.stats
}

func (g *Grid) updateParticle(p *Particle, dt float64, colliders []collider.Shape) {
	g.applySprings(p)

	if p.Anchored() {
		return
	}

	if g.params.Ground && p.Pos.Y < g.params.GroundHeight {
		p.Pos.Y = g.params.GroundHeight
	}
	g.collide(p, colliders, collider.KindSphere)
	g.collide(p, colliders, collider.KindCapsule)

	p.applyForce(r3.Scale(g.params.GravityScale*g.params.Mass, g.params.Gravity), g.params.Mass)

	if r3.Norm(p.acc) > g.params.TearThreshold {
		g.destroy(p.Index, CauseTear)
		return
	}

	g.integrate(p, dt)
}

func (g *Grid) collide(p *Particle, colliders []collider.Shape, kind collider.Kind) {
	for _, c := range colliders {
		if c.Kind != kind {
			continue
		}
		if pos, ok := c.PushOut(p.Pos, g.params.CollisionDistance); ok {
			p.Pos = pos
		}
	}
}

func (g *Grid) integrate(p *Particle, dt float64) {
	step := dt * dt / float64(g.params.SubSteps)
	vel := r3.Scale(1-g.params.Damping, r3.Sub(p.Pos, p.Prev))
	next := r3.Add(r3.Add(p.Pos, vel), r3.Scale(step, p.acc))
	p.Prev = p.Pos
	p.Pos = next
	p.acc = r3.Vec{}
}

// applySprings applies every spring owned by p: structural and shear to the
// east and south side, and the bend springs that pass through p.
func (g *Grid) applySprings(p *Particle) {
	cx, cy := g.params.CellX, g.params.CellY

	g.spring(p, g.Neighbor(p, East), cx)
	g.spring(p, g.Neighbor(p, South), cy)

	g.spring(p, g.Neighbor(p, SouthEast), g.diag)
	g.spring(p, g.Neighbor(p, SouthWest), g.diag)

	g.spring(g.Neighbor(p, West), g.Neighbor(p, East), 2*cx)
	g.spring(g.Neighbor(p, North), g.Neighbor(p, South), 2*cy)
	g.spring(g.Neighbor(p, NorthWest), g.Neighbor(p, SouthEast), 2*g.diag)
	g.spring(g.Neighbor(p, NorthEast), g.Neighbor(p, SouthWest), 2*g.diag)
}

// spring applies a Hooke force between a and b with rest length rest.
// An anchored endpoint passes its share to the other side.
func (g *Grid) spring(a, b *Particle, rest float64) {
	if a == nil || b == nil || a == b {
		return
	}
	f, ok := SpringForce(a.Pos, b.Pos, g.params.Spring, rest)
	if !ok {
		g.stats.Degenerate++
		return
	}

	m := g.params.Mass
	fa, fb := 0.5*m, -0.5*m
	if b.Anchored() {
		fa *= 2
	}
	if a.Anchored() {
		fb *= 2
	}
	a.applyForce(r3.Scale(fa, f), m)
	b.applyForce(r3.Scale(fb, f), m)
}

// SpringForce returns the force a spring of stiffness k and rest length rest
// exerts on a toward b, and false when the endpoints coincide.
func SpringForce(a, b r3.Vec, k, rest float64) (r3.Vec, bool) {
	delta := r3.Sub(b, a)
	length := r3.Norm(delta)
	if length < degenerateLength {
		return r3.Vec{}, false
	}
	return r3.Scale(k*(1-rest/length), delta), true
}
