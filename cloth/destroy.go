package cloth

import (
	"slices"

	"gonum.org/v1/gonum/spatial/r3"
)

// Cause records why a particle was removed.
type Cause uint8

const (
	CauseTear    Cause = iota // acceleration exceeded the tear threshold
	CauseCascade              // lost its last triangle to a neighbour's removal
	CauseManual               // torn through the interaction API
	CauseBurn                 // heat exceeded 1
)

func (c Cause) String() string {
	switch c {
	case CauseTear:
		return "tear"
	case CauseCascade:
		return "cascade"
	case CauseManual:
		return "manual"
	case CauseBurn:
		return "burn"
	default:
		return "unknown"
	}
}

// DestroyEvent describes one particle removal.
type DestroyEvent struct {
	Index        int
	CellX, CellY int
	Cause        Cause
	Pos          r3.Vec
}

// Destroy removes the particle at vertex index i and cascades to
// neighbours left without triangles. It reports false if there was no
// live particle at i.
func (g *Grid) Destroy(i int, cause Cause) bool {
	p := g.Particle(i)
	if p == nil || p.State != Alive {
		return false
	}
	g.destroy(i, cause)
	return true
}

func (g *Grid) destroy(i int, cause Cause) {
	p := g.Particle(i)
	if p == nil || p.State != Alive {
		return
	}
	p.State = PendingRemoval

	affected := g.removeTriangles(int32(i))
	g.unlink(p)

	for _, j := range affected {
		if q := g.Particle(int(j)); q != nil && q.State == Alive {
			g.checkToBeDeleted(q)
		}
	}

	if g.grabbed == i {
		g.grabbed = noLink
	}
	p.grabbed = false
	p.State = Destroyed
	g.particles[i] = nil
	g.live--

	g.counters.Destroyed++
	switch cause {
	case CauseTear:
		g.counters.Tears++
	case CauseCascade:
		g.counters.Cascades++
	case CauseManual:
		g.counters.Manual++
	case CauseBurn:
		g.counters.Burns++
	}

	if g.OnDestroy != nil {
		g.OnDestroy(DestroyEvent{Index: i, CellX: p.CellX, CellY: p.CellY, Cause: cause, Pos: p.Pos})
	}
}

// removeTriangles drops every triangle that references i and returns the
// other vertices of the dropped triangles. The surviving triangles are
// written to the spare buffer, which then becomes the live one.
func (g *Grid) removeTriangles(i int32) []int32 {
	var affected []int32
	kept := g.triSpare[:0]

	tris := g.mesh.Triangles
	for t := 0; t+2 < len(tris); t += 3 {
		tri := [3]int32{tris[t], tris[t+1], tris[t+2]}
		if tri[0] != i && tri[1] != i && tri[2] != i {
			kept = append(kept, tri[0], tri[1], tri[2])
			continue
		}
		for _, v := range tri {
			if v != i && !slices.Contains(affected, v) {
				affected = append(affected, v)
			}
		}
	}

	g.triSpare, g.mesh.Triangles = tris, kept
	return affected
}

// unlink clears p's slots and every lattice neighbour slot pointing at p.
func (g *Grid) unlink(p *Particle) {
	for d := North; d < numDirections; d++ {
		dx, dy := d.Offset()
		n := g.latticeIndex(p.CellX+dx, p.CellY+dy)
		if n == noLink || g.particles[n] == nil {
			continue
		}
		q := g.particles[n]
		if q.links[d.Opposite()] == int32(p.Index) {
			q.links[d.Opposite()] = noLink
		}
	}
	p.clearLinks()
}

// checkToBeDeleted prunes q's links that no longer lie on a triangle edge
// and destroys q once no triangle references it.
func (g *Grid) checkToBeDeleted(q *Particle) {
	for d := range q.links {
		n := q.links[d]
		if n == noLink {
			continue
		}
		if g.Particle(int(n)) == nil || !g.sharesTriangle(int32(q.Index), n) {
			q.links[d] = noLink
		}
	}

	if !g.referenced(int32(q.Index)) {
		g.destroy(q.Index, CauseCascade)
	}
}

func (g *Grid) sharesTriangle(a, b int32) bool {
	tris := g.mesh.Triangles
	for t := 0; t+2 < len(tris); t += 3 {
		tri := tris[t : t+3]
		if slices.Contains(tri, a) && slices.Contains(tri, b) {
			return true
		}
	}
	return false
}

func (g *Grid) referenced(i int32) bool {
	return slices.Contains(g.mesh.Triangles, i)
}
