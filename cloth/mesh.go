package cloth

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is the renderable view of a grid. Vertices are in local space
// (world position minus Params.Origin) and indexed by vertex index.
// Destroyed vertices keep their last position and are referenced by no
// triangle.
type Mesh struct {
	Vertices  []r3.Vec
	UVs       []r2.Vec
	Normals   []r3.Vec
	Triangles []int32
	Bounds    r3.Box
}

// MeshSink receives the mesh after every sync. The mesh and its slices
// are only valid for the duration of the call.
type MeshSink interface {
	SyncMesh(m *Mesh)
}

// Vertices returns the local-space vertex buffer. The slice is reused by
// later steps.
func (g *Grid) Vertices() []r3.Vec {
	return g.mesh.Vertices
}

// Triangles returns the triangle index list. The slice is invalidated by
// the next removal.
func (g *Grid) Triangles() []int32 {
	return g.mesh.Triangles
}

// Normals returns area-weighted vertex normals of the remaining triangles.
func (g *Grid) Normals() []r3.Vec {
	return g.mesh.Normals
}

// UVs returns texture coordinates, fixed at generation.
func (g *Grid) UVs() []r2.Vec {
	return g.mesh.UVs
}

// Bounds returns the local-space bounding box of live vertices.
func (g *Grid) Bounds() r3.Box {
	return g.mesh.Bounds
}

// Mesh returns the current mesh.
func (g *Grid) Mesh() *Mesh {
	return &g.mesh
}

func (g *Grid) syncMesh() {
	origin := g.params.Origin
	lo := r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	hi := r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for i, p := range g.particles {
		if p == nil {
			continue
		}
		v := r3.Sub(p.Pos, origin)
		g.mesh.Vertices[i] = v
		lo = r3.Vec{X: math.Min(lo.X, v.X), Y: math.Min(lo.Y, v.Y), Z: math.Min(lo.Z, v.Z)}
		hi = r3.Vec{X: math.Max(hi.X, v.X), Y: math.Max(hi.Y, v.Y), Z: math.Max(hi.Z, v.Z)}
	}
	if g.live == 0 {
		lo, hi = r3.Vec{}, r3.Vec{}
	}
	g.mesh.Bounds = r3.Box{Min: lo, Max: hi}

	g.computeNormals()

	if g.Sink != nil {
		g.Sink.SyncMesh(&g.mesh)
	}
}

func (g *Grid) computeNormals() {
	normals := g.mesh.Normals
	for i := range normals {
		normals[i] = r3.Vec{}
	}
	verts := g.mesh.Vertices
	tris := g.mesh.Triangles
	for t := 0; t+2 < len(tris); t += 3 {
		a, b, c := tris[t], tris[t+1], tris[t+2]
		n := r3.Cross(r3.Sub(verts[b], verts[a]), r3.Sub(verts[c], verts[a]))
		normals[a] = r3.Add(normals[a], n)
		normals[b] = r3.Add(normals[b], n)
		normals[c] = r3.Add(normals[c], n)
	}
	for i, n := range normals {
		if l := r3.Norm(n); l > 0 {
			normals[i] = r3.Scale(1/l, n)
		}
	}
}
