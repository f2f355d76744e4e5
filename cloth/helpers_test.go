package cloth

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// testParams is a unit-cell grid at the origin with no ground, no tearing
// and no fire.
func testParams(w, h int) Params {
	p := DefaultParams()
	p.Width, p.Height = w, h
	p.CellX, p.CellY = 1, 1
	p.Origin = r3.Vec{}
	p.Ground = false
	p.SubSteps = 1
	p.Spring = 500
	p.TearThreshold = math.MaxFloat64
	p.FireGrowth = 0
	return p
}

func newTestGrid(t *testing.T, w, h int, mutate func(*Params)) *Grid {
	t.Helper()
	p := testParams(w, h)
	if mutate != nil {
		mutate(&p)
	}
	g, err := New(p)
	require.NoError(t, err)
	return g
}

func mustHandle(t *testing.T, g *Grid, i int) Handle {
	t.Helper()
	h, ok := g.Handle(i)
	require.True(t, ok, "no live particle at %d", i)
	return h
}

// requireConsistent checks that triangles only reference live particles
// and that no link points at a destroyed particle.
func requireConsistent(t *testing.T, g *Grid) {
	t.Helper()
	tris := g.Triangles()
	require.Zero(t, len(tris)%3, "triangle buffer length")
	for _, i := range tris {
		require.NotNil(t, g.Particle(int(i)), "triangle references destroyed particle %d", i)
	}
	live := 0
	g.Each(func(p *Particle) {
		live++
		for d := North; d < numDirections; d++ {
			if n := p.Neighbor(d); n != noLink {
				require.NotNil(t, g.Particle(n), "particle %d links %s to destroyed %d", p.Index, d, n)
			}
		}
	})
	require.Equal(t, live, g.LiveCount())
}

func requireVecNear(t *testing.T, want, got r3.Vec, tol float64) {
	t.Helper()
	require.InDelta(t, want.X, got.X, tol, "x")
	require.InDelta(t, want.Y, got.Y, tol, "y")
	require.InDelta(t, want.Z, got.Z, tol, "z")
}
