package game

import (
	"github.com/pthm-cable/drape/config"
	"github.com/pthm-cable/drape/telemetry"
)

// step runs a single tick of the simulation.
func (g *Game) step() {
	dt := config.Cfg().Physics.DT
	g.perfCollector.StartTick()

	// 1. Wind accumulates into particle acceleration
	g.perfCollector.StartPhase(telemetry.PhaseWind)
	g.wind.Update(dt, g.grid)

	// 2. Animate colliders and collect this tick's shapes
	g.perfCollector.StartPhase(telemetry.PhaseColliders)
	g.colliders.Update(dt)
	g.shapes = g.colliders.Gather(g.shapes[:0])

	// 3. Springs, collisions, tearing, integration
	g.perfCollector.StartPhase(telemetry.PhasePhysics)
	stats := g.grid.FixedStep(dt, g.shapes)
	g.perfCollector.RecordWork(stats.Live, stats.SubSteps)
	g.collector.RecordStep(stats)

	// 4. Fire
	g.perfCollector.StartPhase(telemetry.PhaseFire)
	g.grid.SpreadFire(dt)

	g.tick++

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perfCollector.EndTick()
}
