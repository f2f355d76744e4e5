package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drape/config"
	"github.com/pthm-cable/drape/ui"
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	// Mode hotkeys 1-5
	for i := Mode(0); i < numModes; i++ {
		if rl.IsKeyPressed(rl.KeyOne + int32(i)) {
			g.setMode(i)
		}
	}

	if rl.IsKeyPressed(rl.KeyR) {
		g.regenerateFromControls()
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.controls.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyF9) {
		g.saveSnapshot(nil)
	}

	for _, key := range g.overlays.Keys() {
		if rl.IsKeyPressed(key) {
			g.overlays.HandleKeyPress(key)
		}
	}

	g.handleCameraInput()
	g.applyControls()

	mouse := rl.GetMousePosition()
	if g.inspector.HandleInput(mouse.X, mouse.Y) {
		return
	}
	if g.overlays.IsEnabled(ui.OverlayHealth) && g.healthPanel.Contains(mouse.X, mouse.Y) {
		g.healthPanel.HandleInput()
		return
	}
	g.handleMouseInteraction(mouse)
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.inspector.Resize(int32(w), int32(h))
	g.healthPanel.Resize(int32(w), int32(h))
}

// handleCameraInput flies the camera with WASD/QE and looks with a right drag.
func (g *Game) handleCameraInput() {
	dt := float64(rl.GetFrameTime())

	var forward, right, up float64
	if rl.IsKeyDown(rl.KeyW) {
		forward++
	}
	if rl.IsKeyDown(rl.KeyS) {
		forward--
	}
	if rl.IsKeyDown(rl.KeyD) {
		right++
	}
	if rl.IsKeyDown(rl.KeyA) {
		right--
	}
	if rl.IsKeyDown(rl.KeyE) {
		up++
	}
	if rl.IsKeyDown(rl.KeyQ) {
		up--
	}
	if rl.IsKeyDown(rl.KeyLeftShift) {
		dt *= 3
	}
	if forward != 0 || right != 0 || up != 0 {
		g.camera.Move(forward, right, up, dt)
	}

	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		g.camera.Look(float64(d.X), float64(d.Y))
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}

// applyControls pushes panel edits into the simulation.
func (g *Game) applyControls() {
	ev := g.controlsEvents
	g.controlsEvents = ui.ControlsEvents{}
	st := &g.controlsState

	if ev.ModeChanged {
		g.setMode(Mode(st.Mode))
	}
	if ev.ColliderChanged {
		g.colliders.SetActive(colliderKind(st.Collider))
		slog.Info("collider changed", "active", g.colliders.Active().String())
	}
	if ev.WindChanged {
		g.wind.Enabled = st.WindEnabled
		g.wind.SetSpeed(float64(st.WindSpeed))
		g.wind.SetDirection(float64(st.WindPitch), float64(st.WindYaw))
	}
	if ev.Regenerate {
		g.regenerateFromControls()
	}
	if ev.SaveSnapshot {
		g.saveSnapshot(nil)
	}
}

// regenerateFromControls rebuilds the cloth with the panel's grid size.
func (g *Game) regenerateFromControls() {
	params := config.Cfg().ClothParams()
	params.Width = int(g.controlsState.Width)
	params.Height = int(g.controlsState.Height)
	params.CellX = float64(g.controlsState.Cell)
	params.CellY = float64(g.controlsState.Cell)
	if err := g.Regenerate(params); err != nil {
		slog.Error("failed to regenerate cloth", "error", err)
	}
}

func (g *Game) setMode(m Mode) {
	if m >= numModes || m == g.mode {
		return
	}
	if g.dragging {
		g.endDrag()
	}
	g.mode = m
	g.controlsState.Mode = int32(m)
	slog.Debug("interaction mode", "mode", m.String())
}
