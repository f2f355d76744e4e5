// Package renderer draws the cloth scene with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drape/cloth"
)

// Cloth colors
var (
	ColorClothFront = rl.Color{R: 70, G: 130, B: 200, A: 255}
	ColorClothBack  = rl.Color{R: 200, G: 90, B: 70, A: 255}
	ColorEmber      = rl.Color{R: 255, G: 150, B: 40, A: 255}
	ColorWire       = rl.Color{R: 20, G: 25, B: 30, A: 255}
	ColorPinned     = rl.Color{R: 240, G: 220, B: 60, A: 255}
	ColorSelected   = rl.Color{R: 255, G: 255, B: 255, A: 255}
)

// lightDir points toward the light.
var lightDir = r3.Unit(r3.Vec{X: 0.3, Y: 1, Z: 0.6})

// ClothRenderer draws a cloth mesh. It receives mesh updates through
// cloth.MeshSink and keeps float32 copies for drawing.
type ClothRenderer struct {
	origin   r3.Vec
	verts    []rl.Vector3
	normals  []r3.Vec
	tris     []int32
	heat     []float32
	pinned   []bool
	Wire     bool // draw triangle edges
	ShowPins bool
}

// NewClothRenderer creates an empty renderer. Attach binds it to a grid.
func NewClothRenderer() *ClothRenderer {
	return &ClothRenderer{ShowPins: true}
}

// SyncMesh implements cloth.MeshSink.
func (r *ClothRenderer) SyncMesh(m *cloth.Mesh) {
	if cap(r.verts) < len(m.Vertices) {
		r.verts = make([]rl.Vector3, len(m.Vertices))
	}
	r.verts = r.verts[:len(m.Vertices)]
	for i, v := range m.Vertices {
		r.verts[i] = toVec3(r3.Add(v, r.origin))
	}
	r.normals = append(r.normals[:0], m.Normals...)
	r.tris = append(r.tris[:0], m.Triangles...)
}

// Attach registers the renderer as the grid's mesh sink and copies the
// current mesh.
func (r *ClothRenderer) Attach(g *cloth.Grid) {
	r.origin = g.Params().Origin
	g.Sink = r
	r.SyncMesh(g.Mesh())
}

// Update copies per-particle state that is not part of the mesh.
func (r *ClothRenderer) Update(g *cloth.Grid) {
	n := g.Len()
	if cap(r.heat) < n {
		r.heat = make([]float32, n)
		r.pinned = make([]bool, n)
	}
	r.heat = r.heat[:n]
	r.pinned = r.pinned[:n]
	for i := range r.heat {
		r.heat[i] = 0
		r.pinned[i] = false
	}
	g.Each(func(p *cloth.Particle) {
		r.heat[p.Index] = float32(p.Heat)
		r.pinned[p.Index] = p.Pinned
	})
}

// Draw renders the cloth. Must be called between BeginMode3D and EndMode3D.
// selected is a vertex index to highlight, or -1.
func (r *ClothRenderer) Draw(selected int) {
	for t := 0; t+2 < len(r.tris); t += 3 {
		a, b, c := r.tris[t], r.tris[t+1], r.tris[t+2]
		n := r3.Add(r3.Add(r.normals[a], r.normals[b]), r.normals[c])
		heat := (r.vertexHeat(a) + r.vertexHeat(b) + r.vertexHeat(c)) / 3

		front := burnColor(shade(ColorClothFront, n), heat)
		back := burnColor(shade(ColorClothBack, r3.Scale(-1, n)), heat)

		// Two-sided: raylib culls clockwise triangles
		rl.DrawTriangle3D(r.verts[a], r.verts[b], r.verts[c], front)
		rl.DrawTriangle3D(r.verts[a], r.verts[c], r.verts[b], back)

		if r.Wire {
			rl.DrawLine3D(r.verts[a], r.verts[b], ColorWire)
			rl.DrawLine3D(r.verts[b], r.verts[c], ColorWire)
			rl.DrawLine3D(r.verts[c], r.verts[a], ColorWire)
		}
	}

	if r.ShowPins {
		for i, pinned := range r.pinned {
			if pinned && i < len(r.verts) {
				rl.DrawSphere(r.verts[i], 0.015, ColorPinned)
			}
		}
	}

	if selected >= 0 && selected < len(r.verts) {
		rl.DrawSphereWires(r.verts[selected], 0.03, 6, 6, ColorSelected)
	}
}

func (r *ClothRenderer) vertexHeat(i int32) float32 {
	if int(i) >= len(r.heat) {
		return 0
	}
	return r.heat[i]
}

// shade applies a half-Lambert term for normal n.
func shade(c rl.Color, n r3.Vec) rl.Color {
	l := r3.Norm(n)
	k := float32(0.5)
	if l > 0 {
		k = float32(0.5 + 0.5*r3.Dot(r3.Scale(1/l, n), lightDir))
	}
	k = 0.25 + 0.75*k
	return rl.Color{
		R: uint8(float32(c.R) * k),
		G: uint8(float32(c.G) * k),
		B: uint8(float32(c.B) * k),
		A: c.A,
	}
}

// burnColor blends toward ember orange as heat approaches 1.
func burnColor(c rl.Color, heat float32) rl.Color {
	if heat <= 0 {
		return c
	}
	if heat > 1 {
		heat = 1
	}
	return lerpColor(c, ColorEmber, heat)
}

// lerpColor interpolates between two colors.
func lerpColor(a, b rl.Color, t float32) rl.Color {
	return rl.Color{
		R: uint8(float32(a.R) + (float32(b.R)-float32(a.R))*t),
		G: uint8(float32(a.G) + (float32(b.G)-float32(a.G))*t),
		B: uint8(float32(a.B) + (float32(b.B)-float32(a.B))*t),
		A: 255,
	}
}

func toVec3(v r3.Vec) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}
