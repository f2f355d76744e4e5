package cloth

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// ParticleState is the serialisable state of one live particle.
type ParticleState struct {
	Index  int      `json:"index"`
	Pos    r3.Vec   `json:"pos"`
	Prev   r3.Vec   `json:"prev"`
	Acc    r3.Vec   `json:"acc"`
	Pinned bool     `json:"pinned,omitempty"`
	Heat   float64  `json:"heat,omitempty"`
	Links  [8]int32 `json:"links"`
}

// Export returns the state of every live particle and a copy of the
// triangle buffer. Grabs are not exported.
func (g *Grid) Export() ([]ParticleState, []int32) {
	states := make([]ParticleState, 0, g.live)
	g.Each(func(p *Particle) {
		states = append(states, ParticleState{
			Index:  p.Index,
			Pos:    p.Pos,
			Prev:   p.Prev,
			Acc:    p.acc,
			Pinned: p.Pinned,
			Heat:   p.Heat,
			Links:  p.links,
		})
	})
	return states, append([]int32(nil), g.mesh.Triangles...)
}

// Restore replaces the grid with exported state. Every triangle index and
// link must refer to a restored particle. vertices, when not nil, is a saved
// local vertex buffer of VertexCount entries; holes take their position from
// it, otherwise they sit at the local origin. On error the grid is unchanged.
func (g *Grid) Restore(params Params, states []ParticleState, triangles []int32, vertices []r3.Vec) error {
	if err := params.Validate(); err != nil {
		return err
	}
	n := params.VertexCount()
	if vertices != nil && len(vertices) != n {
		return fmt.Errorf("cloth: restore: %d saved vertices, want %d", len(vertices), n)
	}
	if len(triangles)%3 != 0 {
		return fmt.Errorf("cloth: restore: triangle buffer length %d is not a multiple of 3", len(triangles))
	}

	particles := make([]*Particle, n)
	for _, s := range states {
		if s.Index < 0 || s.Index >= n {
			return fmt.Errorf("cloth: restore: particle index %d out of range", s.Index)
		}
		if particles[s.Index] != nil {
			return fmt.Errorf("cloth: restore: duplicate particle %d", s.Index)
		}
		particles[s.Index] = &Particle{
			Pos:    s.Pos,
			Prev:   s.Prev,
			acc:    s.Acc,
			Pinned: s.Pinned,
			Heat:   s.Heat,
			CellX:  s.Index % (params.Width + 1),
			CellY:  s.Index / (params.Width + 1),
			Index:  s.Index,
			links:  s.Links,
		}
	}
	for _, p := range particles {
		if p == nil {
			continue
		}
		for d, l := range p.links {
			if l != noLink && (int(l) >= n || l < 0 || particles[l] == nil) {
				return fmt.Errorf("cloth: restore: particle %d links %s to missing %d", p.Index, Direction(d), l)
			}
		}
	}
	for _, i := range triangles {
		if int(i) >= n || i < 0 || particles[i] == nil {
			return fmt.Errorf("cloth: restore: triangle references missing particle %d", i)
		}
	}

	g.params = params
	g.diag = params.Diagonal()
	g.gen++
	g.grabbed = noLink
	g.stats = StepStats{}
	g.counters = Counters{}
	g.particles = particles
	g.live = len(states)

	w, h := params.Width, params.Height
	g.mesh = Mesh{
		Vertices:  make([]r3.Vec, n),
		UVs:       make([]r2.Vec, n),
		Normals:   make([]r3.Vec, n),
		Triangles: append(make([]int32, 0, w*h*6), triangles...),
	}
	copy(g.mesh.Vertices, vertices)
	g.triSpare = make([]int32, 0, w*h*6)
	for i := range g.mesh.UVs {
		g.mesh.UVs[i] = texCoord(i%(w+1), i/(w+1), w, h)
	}

	g.syncMesh()
	return nil
}
