package main

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drape/cloth"
)

func TestProjector_CornersInsideCanvas(t *testing.T) {
	box := r3.Box{Min: r3.Vec{X: -1, Y: 0}, Max: r3.Vec{X: 1, Y: 2}}
	p := fit(box, 80, 24)

	for _, v := range []r3.Vec{box.Min, box.Max, {X: -1, Y: 2}, {X: 1, Y: 0}} {
		x, y := p.project(v)
		if x < 0 || x > 80 || y < 0 || y > 24 {
			t.Errorf("project(%v) = (%d, %d), outside 80x24", v, x, y)
		}
	}

	// Higher Y is nearer the top
	_, top := p.project(r3.Vec{Y: 2})
	_, bottom := p.project(r3.Vec{Y: 0})
	if top >= bottom {
		t.Errorf("top row %d should be above bottom row %d", top, bottom)
	}
}

func TestRasterize_DrawsPinnedRowAndGround(t *testing.T) {
	params := cloth.DefaultParams()
	params.Width, params.Height = 4, 4
	g, err := cloth.New(params)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	c := newCanvas(60, 30)
	rasterize(c, g, fit(viewBox(params), c.w, c.h))

	counts := map[glyphKind]int{}
	for _, cell := range c.cells {
		counts[cell.kind]++
	}
	if counts[glyphPinned] == 0 {
		t.Error("expected pinned particles on the canvas")
	}
	if counts[glyphCloth] == 0 {
		t.Error("expected free particles on the canvas")
	}
	if params.Ground && counts[glyphGround] == 0 {
		t.Error("expected a ground line")
	}
}

func TestCanvas_SetIgnoresOutOfRange(t *testing.T) {
	c := newCanvas(3, 2)
	c.set(-1, 0, glyph{r: 'x', kind: glyphCloth})
	c.set(3, 1, glyph{r: 'x', kind: glyphCloth})
	c.set(0, 2, glyph{r: 'x', kind: glyphCloth})
	for _, cell := range c.cells {
		if cell.kind != glyphEmpty {
			t.Fatalf("out of range set wrote %+v", cell)
		}
	}
}
