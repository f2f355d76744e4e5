package cloth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDestroyCenterCascades(t *testing.T) {
	g := newTestGrid(t, 2, 2, nil)
	var events []DestroyEvent
	g.OnDestroy = func(e DestroyEvent) { events = append(events, e) }

	require.True(t, g.Destroy(4, CauseManual))

	require.Equal(t, []int32{0, 1, 3, 7, 5, 8}, g.Triangles())
	require.Equal(t, 6, g.LiveCount())
	require.Nil(t, g.Particle(2), "corner 2 lost every triangle")
	require.Nil(t, g.Particle(6), "corner 6 lost every triangle")

	require.Len(t, events, 3)
	require.Equal(t, DestroyEvent{Index: 2, CellX: 2, CellY: 0, Cause: CauseCascade, Pos: events[0].Pos}, events[0])
	require.Equal(t, 6, events[1].Index)
	require.Equal(t, CauseCascade, events[1].Cause)
	require.Equal(t, 4, events[2].Index)
	require.Equal(t, CauseManual, events[2].Cause)

	c := g.Counters()
	require.Equal(t, 2, c.Cascades)
	require.Equal(t, 1, c.Manual)
	require.Equal(t, 3, c.Destroyed)

	requireConsistent(t, g)
}

func TestDestroyPrunesLinksOffTriangles(t *testing.T) {
	g := newTestGrid(t, 2, 2, nil)
	require.True(t, g.Destroy(4, CauseManual))

	p := g.Particle(3)
	require.Equal(t, 0, p.Neighbor(North))
	require.Equal(t, 1, p.Neighbor(NorthEast))
	require.Equal(t, noLink, p.Neighbor(East))
	require.Equal(t, noLink, p.Neighbor(South), "3-6 edge has no triangle left")
	require.Equal(t, noLink, p.Neighbor(SouthEast))

	p = g.Particle(8)
	require.Equal(t, 5, p.Neighbor(North))
	require.Equal(t, 7, p.Neighbor(West))
	require.Equal(t, noLink, p.Neighbor(NorthWest))
}

func TestDestroyTwiceIsNoop(t *testing.T) {
	g := newTestGrid(t, 2, 2, nil)
	calls := 0
	g.OnDestroy = func(DestroyEvent) { calls++ }

	require.True(t, g.Destroy(4, CauseManual))
	tris := append([]int32(nil), g.Triangles()...)
	live := g.LiveCount()

	require.False(t, g.Destroy(4, CauseManual))
	require.False(t, g.Destroy(2, CauseManual), "cascaded particle")
	require.False(t, g.Destroy(-1, CauseManual))
	require.False(t, g.Destroy(99, CauseManual))

	require.Equal(t, tris, g.Triangles())
	require.Equal(t, live, g.LiveCount())
	require.Equal(t, 3, calls)
}

func TestDestroySingleQuadSweepsEverything(t *testing.T) {
	g := newTestGrid(t, 1, 1, nil)
	require.True(t, g.Destroy(1, CauseManual))

	require.Empty(t, g.Triangles())
	require.Zero(t, g.LiveCount())
	require.Equal(t, 3, g.Counters().Cascades)
	requireConsistent(t, g)
}

func TestDestroyEdgeKeepsRemainingQuads(t *testing.T) {
	g := newTestGrid(t, 3, 3, nil)

	// Top-left corner only belongs to one triangle.
	require.True(t, g.Destroy(0, CauseManual))
	require.Equal(t, 15, g.LiveCount())
	require.Len(t, g.Triangles(), 3*17)
	requireConsistent(t, g)

	// Removing the remaining vertices of the first row one at a time never
	// leaves a dangling triangle index.
	for i := 1; i <= 3; i++ {
		g.Destroy(i, CauseManual)
		requireConsistent(t, g)
	}
	for _, idx := range g.Triangles() {
		require.GreaterOrEqual(t, idx, int32(4))
	}
}

func TestTearLineSplitsCloth(t *testing.T) {
	g := newTestGrid(t, 4, 4, nil)
	for y := 0; y <= 4; y++ {
		g.Destroy(g.vertexIndex(2, y), CauseManual)
		requireConsistent(t, g)
	}

	// No remaining triangle spans the torn column.
	tris := g.Triangles()
	for t3 := 0; t3 < len(tris); t3 += 3 {
		left, right := false, false
		for _, v := range tris[t3 : t3+3] {
			x := g.Particle(int(v)).CellX
			left = left || x < 2
			right = right || x > 2
		}
		require.False(t, left && right, "triangle %v crosses the tear", tris[t3:t3+3])
	}
	require.Equal(t, 20, g.LiveCount())
}
