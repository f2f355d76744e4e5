package cloth

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestGenerateCounts(t *testing.T) {
	tests := []struct {
		w, h int
	}{
		{1, 1},
		{2, 2},
		{4, 3},
		{10, 1},
	}
	for _, tt := range tests {
		g := newTestGrid(t, tt.w, tt.h, nil)
		require.Equal(t, (tt.w+1)*(tt.h+1), g.Len())
		require.Equal(t, g.Len(), g.LiveCount())
		require.Len(t, g.Triangles(), 6*tt.w*tt.h)
		require.Len(t, g.Vertices(), g.Len())

		g.Each(func(p *Particle) {
			require.Equal(t, p.CellY == 0, p.Pinned, "particle %d pinned", p.Index)
			require.Equal(t, p.CellY*(tt.w+1)+p.CellX, p.Index)
		})
		requireConsistent(t, g)
	}
}

func TestGenerateLayout(t *testing.T) {
	g := newTestGrid(t, 2, 2, nil)

	requireVecNear(t, r3.Vec{X: -1, Y: 1}, g.Particle(0).Pos, 1e-12)
	requireVecNear(t, r3.Vec{X: 0, Y: 0}, g.Particle(4).Pos, 1e-12)
	requireVecNear(t, r3.Vec{X: 1, Y: -1}, g.Particle(8).Pos, 1e-12)

	require.Equal(t, []int32{
		0, 1, 3, 3, 1, 4,
		1, 2, 4, 4, 2, 5,
		3, 4, 6, 6, 4, 7,
		4, 5, 7, 7, 5, 8,
	}, g.Triangles())

	uv := g.UVs()
	require.InDelta(t, 0, uv[0].X, 1e-12)
	require.InDelta(t, 1, uv[0].Y, 1e-12)
	require.InDelta(t, 1, uv[8].X, 1e-12)
	require.InDelta(t, 0, uv[8].Y, 1e-12)
}

func TestNeighborWiring(t *testing.T) {
	g := newTestGrid(t, 2, 2, nil)

	corner := g.Particle(0)
	require.Equal(t, 3, corner.LinkCount())
	require.Equal(t, 1, corner.Neighbor(East))
	require.Equal(t, 3, corner.Neighbor(South))
	require.Equal(t, 4, corner.Neighbor(SouthEast))
	require.Equal(t, noLink, corner.Neighbor(North))
	require.Equal(t, noLink, corner.Neighbor(West))

	center := g.Particle(4)
	require.Equal(t, 8, center.LinkCount())
	for d := North; d < numDirections; d++ {
		n := g.Neighbor(center, d)
		require.NotNil(t, n)
		require.Equal(t, center.Index, n.Neighbor(d.Opposite()), "link %s is not mirrored", d)
	}
}

func TestGenerateValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
		field  string
	}{
		{"zero width", func(p *Params) { p.Width = 0 }, "width"},
		{"zero height", func(p *Params) { p.Height = 0 }, "height"},
		{"negative cell", func(p *Params) { p.CellX = -1 }, "cell_x"},
		{"zero mass", func(p *Params) { p.Mass = 0 }, "mass"},
		{"damping above one", func(p *Params) { p.Damping = 1.5 }, "damping"},
		{"zero spring", func(p *Params) { p.Spring = 0 }, "spring"},
		{"negative collision distance", func(p *Params) { p.CollisionDistance = -0.1 }, "collision_distance"},
		{"zero tear threshold", func(p *Params) { p.TearThreshold = 0 }, "tear_threshold"},
		{"zero sub-steps", func(p *Params) { p.SubSteps = 0 }, "sub_steps"},
		{"NaN fire growth", func(p *Params) { p.FireGrowth = math.NaN() }, "fire_growth"},
		{"NaN gravity scale", func(p *Params) { p.GravityScale = math.NaN() }, "gravity_scale"},
		{"infinite gravity", func(p *Params) { p.Gravity.Y = math.Inf(-1) }, "gravity"},
		{"NaN ground height", func(p *Params) { p.Ground, p.GroundHeight = true, math.NaN() }, "ground_height"},
		{"NaN origin", func(p *Params) { p.Origin.Z = math.NaN() }, "origin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testParams(2, 2)
			tt.mutate(&p)
			_, err := New(p)
			require.ErrorIs(t, err, ErrValidation)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			require.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestRegenerateInvalidatesHandles(t *testing.T) {
	g := newTestGrid(t, 2, 2, nil)
	h := mustHandle(t, g, 5)

	require.NoError(t, g.Generate(testParams(3, 3)))
	require.Equal(t, 16, g.LiveCount())

	_, err := g.Lookup(h)
	require.ErrorIs(t, err, ErrInvalidHandle)
	require.False(t, g.Pin(h))

	require.Error(t, g.Generate(testParams(0, 3)))
	require.Equal(t, 16, g.LiveCount(), "failed generate must keep the old cloth")
}
