// Package cloth implements a mass-spring cloth on a rectangular lattice.
//
// Particles are integrated with Verlet, connected by structural, shear and
// bend springs, and collide with the ground and with primitive colliders.
// Particles can be torn away at runtime. The triangle buffer, particle slice
// and neighbour links stay consistent through every removal.
//
// A Grid is not safe for concurrent use.
package cloth

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Grid owns the particles and mesh buffers of one cloth.
type Grid struct {
	params Params
	diag   float64

	particles []*Particle // indexed by vertex index, nil once destroyed
	live      int

	mesh      Mesh
	triSpare  []int32
	heatSpare []float64

	gen     uint32
	grabbed int

	stats    StepStats
	counters Counters

	// OnDestroy is called after each particle removal, including cascades.
	OnDestroy func(DestroyEvent)
	// Sink receives the mesh after every FixedStep and Generate.
	Sink MeshSink
}

// Handle refers to a particle of a particular grid generation.
type Handle struct {
	Index int32
	gen   uint32
}

// Counters are cumulative removal counts since the last Generate.
type Counters struct {
	Tears     int
	Cascades  int
	Manual    int
	Burns     int
	Destroyed int
}

// New validates params and generates a grid.
func New(params Params) (*Grid, error) {
	g := &Grid{grabbed: noLink}
	if err := g.Generate(params); err != nil {
		return nil, err
	}
	return g, nil
}

// Generate discards the current cloth and builds a fresh lattice.
// Handles from the previous generation stop resolving.
func (g *Grid) Generate(params Params) error {
	if err := params.Validate(); err != nil {
		return err
	}

	g.params = params
	g.diag = params.Diagonal()
	g.gen++
	g.grabbed = noLink
	g.stats = StepStats{}
	g.counters = Counters{}

	w, h := params.Width, params.Height
	n := params.VertexCount()
	g.particles = make([]*Particle, n)
	g.live = n

	g.mesh = Mesh{
		Vertices:  make([]r3.Vec, n),
		UVs:       make([]r2.Vec, n),
		Normals:   make([]r3.Vec, n),
		Triangles: make([]int32, 0, w*h*6),
	}
	g.triSpare = make([]int32, 0, w*h*6)

	halfW := float64(w) * params.CellX / 2
	halfH := float64(h) * params.CellY / 2
	for y := 0; y <= h; y++ {
		for x := 0; x <= w; x++ {
			i := g.vertexIndex(x, y)
			local := r3.Vec{
				X: float64(x)*params.CellX - halfW,
				Y: -float64(y)*params.CellY + halfH,
			}
			pos := r3.Add(local, params.Origin)
			g.particles[i] = &Particle{
				Pos:    pos,
				Prev:   pos,
				Pinned: y == 0,
				CellX:  x,
				CellY:  y,
				Index:  i,
			}
			g.mesh.Vertices[i] = local
			g.mesh.UVs[i] = texCoord(x, y, w, h)
		}
	}

	for _, p := range g.particles {
		for d := North; d < numDirections; d++ {
			dx, dy := d.Offset()
			p.links[d] = int32(g.latticeIndex(p.CellX+dx, p.CellY+dy))
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.mesh.Triangles = append(g.mesh.Triangles,
				int32(g.vertexIndex(x, y)), int32(g.vertexIndex(x+1, y)), int32(g.vertexIndex(x, y+1)),
				int32(g.vertexIndex(x, y+1)), int32(g.vertexIndex(x+1, y)), int32(g.vertexIndex(x+1, y+1)),
			)
		}
	}

	g.syncMesh()
	return nil
}

// Params returns the parameters of the current generation.
func (g *Grid) Params() Params {
	return g.params
}

// Generation increments on every Generate.
func (g *Grid) Generation() uint32 {
	return g.gen
}

// Len returns the number of vertex slots, live or not.
func (g *Grid) Len() int {
	return len(g.particles)
}

// LiveCount returns the number of particles that have not been destroyed.
func (g *Grid) LiveCount() int {
	return g.live
}

// Counters returns cumulative removal counts for the current generation.
func (g *Grid) Counters() Counters {
	return g.counters
}

// Particle returns the live particle at vertex index i, or nil.
func (g *Grid) Particle(i int) *Particle {
	if i < 0 || i >= len(g.particles) {
		return nil
	}
	p := g.particles[i]
	if p == nil || p.State == Destroyed {
		return nil
	}
	return p
}

// At returns the live particle at lattice cell (x, y), or nil.
func (g *Grid) At(x, y int) *Particle {
	return g.Particle(g.latticeIndex(x, y))
}

// Neighbor resolves p's link in direction d to a live particle, or nil.
func (g *Grid) Neighbor(p *Particle, d Direction) *Particle {
	l := p.links[d]
	if l == noLink {
		return nil
	}
	return g.Particle(int(l))
}

// Each calls fn for every live particle in index order.
func (g *Grid) Each(fn func(*Particle)) {
	for _, p := range g.particles {
		if p != nil && p.State == Alive {
			fn(p)
		}
	}
}

// Handle returns a handle for vertex index i if the particle is live.
func (g *Grid) Handle(i int) (Handle, bool) {
	if g.Particle(i) == nil {
		return Handle{}, false
	}
	return Handle{Index: int32(i), gen: g.gen}, true
}

// Lookup resolves a handle to its live particle.
func (g *Grid) Lookup(h Handle) (*Particle, error) {
	if h.gen != g.gen {
		return nil, fmt.Errorf("%w: generation %d, grid is at %d", ErrInvalidHandle, h.gen, g.gen)
	}
	p := g.Particle(int(h.Index))
	if p == nil {
		return nil, fmt.Errorf("%w: particle %d destroyed", ErrInvalidHandle, h.Index)
	}
	return p, nil
}

func (g *Grid) vertexIndex(x, y int) int {
	return y*(g.params.Width+1) + x
}

// latticeIndex is vertexIndex with bounds checking; out of range yields -1.
func (g *Grid) latticeIndex(x, y int) int {
	if x < 0 || y < 0 || x > g.params.Width || y > g.params.Height {
		return noLink
	}
	return g.vertexIndex(x, y)
}

// texCoord maps cell (x, y) to UV space with V growing upward.
func texCoord(x, y, w, h int) r2.Vec {
	return r2.Vec{X: float64(x) / float64(w), Y: 1 - float64(y)/float64(h)}
}
