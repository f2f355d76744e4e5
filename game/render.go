package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drape/cloth"
	"github.com/pthm-cable/drape/config"
	"github.com/pthm-cable/drape/renderer"
	"github.com/pthm-cable/drape/telemetry"
	"github.com/pthm-cable/drape/ui"
)

const controlsHelp = "WASD/QE: fly  RMB: look  LMB: use mode  1-5: mode  Space: pause  R: regenerate  Tab: panel  F1-F6: overlays  F9: snapshot"

// Draw renders the game.
func (g *Game) Draw() {
	cfg := config.Cfg()

	rl.BeginDrawing()
	rl.ClearBackground(renderer.ColorSky)

	rl.BeginMode3D(g.camera3D())

	if cfg.Ground.Enabled {
		g.sceneRenderer.DrawGround(cfg.Ground.Height)
	}
	if g.overlays.IsEnabled(ui.OverlayColliders) {
		g.sceneRenderer.DrawColliders(g.colliders)
	}

	g.clothRenderer.Wire = g.overlays.IsEnabled(ui.OverlayWireframe)
	g.clothRenderer.ShowPins = g.overlays.IsEnabled(ui.OverlayPins)
	selected := -1
	if h, ok := g.inspector.Selected(); ok {
		selected = int(h.Index)
	}
	g.clothRenderer.Draw(selected)
	g.inspector.DrawSelectionHighlight(g.grid, 0.03)

	if g.overlays.IsEnabled(ui.OverlayWind) {
		g.drawWind()
	}

	rl.EndMode3D()

	g.drawUI()

	rl.EndDrawing()
}

// drawWind draws the wind arrow above the cloth origin, scaled by force.
func (g *Game) drawWind() {
	f := g.wind.Last()
	l := r3.Norm(f)
	if l == 0 {
		return
	}
	from := r3.Add(g.grid.Params().Origin, r3.Vec{Y: 0.3})
	length := float32(math.Min(0.2+0.1*l, 1.5))
	g.sceneRenderer.DrawWind(toVec3(from), toVec3(r3.Scale(1/l, f)), length)
}

// drawUI renders the 2D panels on top of the scene.
func (g *Game) drawUI() {
	counters := g.grid.Counters()
	burning := 0
	g.grid.Each(func(p *cloth.Particle) {
		if g.grid.Burning(p.Index) {
			burning++
		}
	})

	g.hud.Draw(ui.HUDData{
		Title:        "Drape",
		Tick:         g.tick,
		Live:         g.grid.LiveCount(),
		Total:        g.grid.Len(),
		Triangles:    len(g.grid.Triangles()) / 3,
		Burning:      burning,
		Tears:        counters.Tears + counters.Manual,
		Cascades:     counters.Cascades,
		Burns:        counters.Burns,
		Mode:         g.mode.String(),
		Wind:         r3.Norm(g.wind.Last()),
		Speed:        g.stepsPerUpdate,
		FPS:          rl.GetFPS(),
		Paused:       g.paused,
		ScreenWidth:  int32(g.screenWidth),
		ScreenHeight: int32(g.screenHeight),
	})
	g.hud.DrawControls(int32(g.screenWidth), int32(g.screenHeight), controlsHelp)

	g.inspector.Draw(g.grid, config.Cfg().Physics.DT)

	if g.overlays.IsEnabled(ui.OverlayHealth) {
		g.healthPanel.Draw()
	}

	if g.overlays.IsEnabled(ui.OverlayPerf) {
		stats := g.perfCollector.Stats()
		g.perfPanel.Draw(ui.PerfPanelData{
			PhaseTimes:        stats.PhaseAvg,
			PhasePct:          stats.PhasePct,
			Total:             stats.AvgTickDuration,
			TicksPerSecond:    stats.TicksPerSecond,
			NsPerParticleStep: stats.NsPerParticleStep,
			Registry:          g.registry,
		}, telemetry.Phases)
	}

	// Panel last so open dropdowns sit above everything else
	g.controlsEvents = g.controls.Draw(&g.controlsState, g.overlays)
}
