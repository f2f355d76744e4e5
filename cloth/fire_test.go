package cloth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFireBurnsThrough(t *testing.T) {
	g := newTestGrid(t, 2, 2, func(p *Params) { p.FireGrowth = 2 })
	require.True(t, g.Ignite(mustHandle(t, g, 4), 0.6))
	require.True(t, g.Burning(4))
	require.False(t, g.Burning(0))

	burned := 0
	for i := 0; i < 100 && g.Particle(4) != nil; i++ {
		burned += g.SpreadFire(0.05)
		requireConsistent(t, g)
	}

	require.Nil(t, g.Particle(4))
	require.Positive(t, burned)
	require.Equal(t, burned, g.Counters().Burns)
}

func TestFireSpreadsToLinkedNeighbours(t *testing.T) {
	g := newTestGrid(t, 2, 2, func(p *Params) { p.FireGrowth = 1 })
	require.True(t, g.Ignite(mustHandle(t, g, 0), 0.5))

	require.Zero(t, g.SpreadFire(0.1))

	require.InDelta(t, 0.55, g.Particle(0).Heat, 1e-12)
	require.InDelta(t, 0.05, g.Particle(1).Heat, 1e-12)
	require.InDelta(t, 0.05, g.Particle(4).Heat, 1e-12)
	require.Zero(t, g.Particle(2).Heat)
	require.Zero(t, g.Particle(8).Heat)
}

func TestFireDisabled(t *testing.T) {
	g := newTestGrid(t, 2, 2, nil)
	require.True(t, g.Ignite(mustHandle(t, g, 4), 0.9))
	for i := 0; i < 10; i++ {
		require.Zero(t, g.SpreadFire(1))
	}
	require.Equal(t, 0.9, g.Particle(4).Heat)
}

func TestIgniteNeverCools(t *testing.T) {
	g := newTestGrid(t, 1, 1, nil)
	h := mustHandle(t, g, 3)
	require.True(t, g.Ignite(h, 0.8))
	require.True(t, g.Ignite(h, 0.2))
	require.Equal(t, 0.8, g.Particle(3).Heat)
}
