package main

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drape/cloth"
)

// glyphKind selects the style of a canvas cell.
type glyphKind uint8

const (
	glyphEmpty glyphKind = iota
	glyphCloth
	glyphPinned
	glyphBurning
	glyphGround
)

type glyph struct {
	r    rune
	kind glyphKind
}

// canvas is a character grid the cloth is rasterized into.
type canvas struct {
	w, h  int
	cells []glyph
}

func newCanvas(w, h int) *canvas {
	return &canvas{w: w, h: h, cells: make([]glyph, w*h)}
}

func (c *canvas) at(x, y int) glyph {
	return c.cells[y*c.w+x]
}

func (c *canvas) set(x, y int, g glyph) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y*c.w+x] = g
}

// projector maps world XY onto canvas cells, looking down -Z.
// Terminal cells are about twice as tall as wide, so X gets twice the scale.
type projector struct {
	min, max r3.Vec
	scale    float64
	offX     float64
	offY     float64
}

// fit builds a projector that fits box into a w×h canvas, centred.
func fit(box r3.Box, w, h int) projector {
	dx := box.Max.X - box.Min.X
	dy := box.Max.Y - box.Min.Y
	scale := math.Min(float64(w)/(2*dx), float64(h)/dy)
	return projector{
		min:   box.Min,
		max:   box.Max,
		scale: scale,
		offX:  (float64(w) - 2*dx*scale) / 2,
		offY:  (float64(h) - dy*scale) / 2,
	}
}

func (p projector) project(v r3.Vec) (x, y int) {
	x = int(math.Floor(p.offX + 2*(v.X-p.min.X)*p.scale))
	y = int(math.Floor(p.offY + (p.max.Y-v.Y)*p.scale))
	return x, y
}

// viewBox returns the world region shown for a cloth: its rest extent with
// room to swing and fall to the ground.
func viewBox(params cloth.Params) r3.Box {
	halfW := float64(params.Width) * params.CellX / 2
	halfH := float64(params.Height) * params.CellY / 2
	o := params.Origin
	bottom := o.Y - 3*halfH
	if params.Ground && params.GroundHeight < bottom {
		bottom = params.GroundHeight
	}
	return r3.Box{
		Min: r3.Vec{X: o.X - 1.5*halfW, Y: bottom - 0.1},
		Max: r3.Vec{X: o.X + 1.5*halfW, Y: o.Y + 1.2*halfH},
	}
}

// rasterize draws the ground line and every live particle into c.
func rasterize(c *canvas, g *cloth.Grid, p projector) {
	for i := range c.cells {
		c.cells[i] = glyph{}
	}

	params := g.Params()
	if params.Ground {
		_, gy := p.project(r3.Vec{Y: params.GroundHeight})
		for x := 0; x < c.w; x++ {
			c.set(x, gy, glyph{r: '_', kind: glyphGround})
		}
	}

	g.Each(func(pt *cloth.Particle) {
		x, y := p.project(pt.Pos)
		switch {
		case pt.Pinned:
			c.set(x, y, glyph{r: '#', kind: glyphPinned})
		case g.Burning(pt.Index):
			c.set(x, y, glyph{r: '*', kind: glyphBurning})
		default:
			c.set(x, y, glyph{r: depthRune(pt.Pos.Z - params.Origin.Z), kind: glyphCloth})
		}
	})
}

// depthRune shades by distance from the cloth plane, nearer is denser.
func depthRune(dz float64) rune {
	switch {
	case dz > 0.2:
		return '@'
	case dz > 0.05:
		return 'o'
	case dz < -0.2:
		return '.'
	default:
		return '+'
	}
}
