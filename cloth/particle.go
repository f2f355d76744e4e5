package cloth

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// State is a particle's lifecycle stage.
type State uint8

const (
	Alive State = iota
	PendingRemoval
	Destroyed
)

func (s State) String() string {
	switch s {
	case Alive:
		return "alive"
	case PendingRemoval:
		return "pending_removal"
	case Destroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Direction names one of the eight lattice neighbours. Y grows downward,
// so North is the row above.
type Direction uint8

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
	numDirections
)

var directionOffsets = [numDirections][2]int{
	North:     {0, -1},
	NorthEast: {1, -1},
	East:      {1, 0},
	SouthEast: {1, 1},
	South:     {0, 1},
	SouthWest: {-1, 1},
	West:      {-1, 0},
	NorthWest: {-1, -1},
}

// Opposite returns the direction pointing back.
func (d Direction) Opposite() Direction {
	return (d + numDirections/2) % numDirections
}

// Offset returns the cell delta for d.
func (d Direction) Offset() (dx, dy int) {
	o := directionOffsets[d]
	return o[0], o[1]
}

func (d Direction) String() string {
	return [...]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}[d]
}

const noLink = -1

// Particle is one lattice vertex of the cloth.
type Particle struct {
	Pos  r3.Vec // world position
	Prev r3.Vec // position before the last integration

	acc r3.Vec

	Pinned  bool
	grabbed bool

	// Heat accumulates while the particle burns. Above 1 it is destroyed.
	Heat float64

	CellX, CellY int
	Index        int
	State        State

	links [numDirections]int32
}

// Neighbor returns the vertex index linked in direction d, or -1.
// The index may refer to a particle that has since been destroyed; use
// Grid.Neighbor to resolve live neighbours.
func (p *Particle) Neighbor(d Direction) int {
	return int(p.links[d])
}

// LinkCount returns how many neighbour slots are set.
func (p *Particle) LinkCount() int {
	n := 0
	for _, l := range p.links {
		if l != noLink {
			n++
		}
	}
	return n
}

// Anchored reports whether the particle is held in place, either pinned
// or driven by a grab.
func (p *Particle) Anchored() bool {
	return p.Pinned || p.grabbed
}

// Grabbed reports whether the particle is driven by a grab.
func (p *Particle) Grabbed() bool {
	return p.grabbed
}

// Acceleration returns the acceleration accumulated since the last integration.
func (p *Particle) Acceleration() r3.Vec {
	return p.acc
}

// Velocity returns the implicit Verlet velocity per step.
func (p *Particle) Velocity() r3.Vec {
	return r3.Sub(p.Pos, p.Prev)
}

// applyForce adds f/mass to the accumulated acceleration. Anchored
// particles ignore forces.
func (p *Particle) applyForce(f r3.Vec, mass float64) {
	if p.Anchored() {
		return
	}
	p.acc = r3.Add(p.acc, r3.Scale(1/mass, f))
}

func (p *Particle) clearLinks() {
	for d := range p.links {
		p.links[d] = noLink
	}
}
