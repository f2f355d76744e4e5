package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drape/cloth"
	"github.com/pthm-cable/drape/collider"
	"github.com/pthm-cable/drape/config"
	"github.com/pthm-cable/drape/telemetry"
)

// handleMouseInteraction applies the current mode to the particle under
// the cursor. Clicks over the controls panel are left to raygui.
func (g *Game) handleMouseInteraction(mouse rl.Vector2) {
	if g.dragging {
		if rl.IsMouseButtonReleased(rl.MouseButtonLeft) || !rl.IsMouseButtonDown(rl.MouseButtonLeft) {
			g.endDrag()
			return
		}
		g.drag(mouse)
		return
	}

	if g.controls.Contains(mouse.X, mouse.Y) {
		return
	}
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}

	origin, dir := g.mouseRay(mouse)
	h, ok := g.grid.SelectNearest(origin, dir, config.Cfg().Interaction.PickDistance)
	if !ok {
		g.inspector.Deselect()
		return
	}
	g.inspector.Select(h)
	g.apply(h)
}

// apply performs the current mode on h.
func (g *Game) apply(h cloth.Handle) {
	index := int(h.Index)
	switch g.mode {
	case ModeGrab:
		p, err := g.grid.Lookup(h)
		if err != nil || !g.grid.Grab(h) {
			return
		}
		g.grabDepth = g.camera.Depth(p.Pos)
		g.dragging = true
		g.record(telemetry.NewInteractionEvent(g.tick, telemetry.EventGrab, index))
	case ModeTear:
		// Drag keeps cutting along the cursor path
		g.dragging = true
		g.grid.Tear(h)
	case ModePin:
		if g.grid.Pin(h) {
			g.record(telemetry.NewInteractionEvent(g.tick, telemetry.EventPin, index))
		}
	case ModeUnpin:
		if g.grid.Unpin(h) {
			g.record(telemetry.NewInteractionEvent(g.tick, telemetry.EventUnpin, index))
		}
	case ModeIgnite:
		if g.grid.Ignite(h, config.Cfg().Fire.IgniteHeat) {
			g.record(telemetry.NewInteractionEvent(g.tick, telemetry.EventIgnite, index))
		}
	}
	g.syncIfPaused()
}

// drag continues a grab or a cut while the button is held.
func (g *Game) drag(mouse rl.Vector2) {
	origin, dir := g.mouseRay(mouse)

	switch g.mode {
	case ModeGrab:
		pos, ok := g.camera.PointAtDepth(dir, g.grabDepth)
		if !ok || !g.grid.MoveGrabbed(pos) {
			// Grabbed particle was torn away
			g.dragging = false
			return
		}
	case ModeTear:
		if h, ok := g.grid.SelectNearest(origin, dir, config.Cfg().Interaction.PickDistance); ok {
			g.grid.Tear(h)
		}
	}
	g.syncIfPaused()
}

func (g *Game) endDrag() {
	g.dragging = false
	if h, ok := g.grid.Grabbed(); ok {
		g.grid.Release()
		g.record(telemetry.NewInteractionEvent(g.tick, telemetry.EventRelease, int(h.Index)))
	}
}

// syncIfPaused pushes the edited mesh to the renderer when no step will.
func (g *Game) syncIfPaused() {
	if g.paused {
		g.clothRenderer.SyncMesh(g.grid.Mesh())
	}
}

// mouseRay returns the world-space picking ray under the cursor.
func (g *Game) mouseRay(mouse rl.Vector2) (origin, dir r3.Vec) {
	ray := rl.GetScreenToWorldRay(mouse, g.camera3D())
	return fromVec3(ray.Position), fromVec3(ray.Direction)
}

// camera3D converts the fly camera for raylib.
func (g *Game) camera3D() rl.Camera3D {
	return rl.Camera3D{
		Position:   toVec3(g.camera.Position),
		Target:     toVec3(g.camera.Target()),
		Up:         rl.Vector3{Y: 1},
		Fovy:       float32(g.camera.FOV),
		Projection: rl.CameraPerspective,
	}
}

func colliderKind(i int32) collider.Kind {
	k := collider.Kind(i)
	if k > collider.KindCapsule {
		return collider.KindNone
	}
	return k
}

func toVec3(v r3.Vec) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

func fromVec3(v rl.Vector3) r3.Vec {
	return r3.Vec{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}
