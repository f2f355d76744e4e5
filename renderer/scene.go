package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drape/collider"
	"github.com/pthm-cable/drape/systems"
)

// Scene colors
var (
	ColorSky            = rl.Color{R: 24, G: 28, B: 36, A: 255}
	ColorGround         = rl.Color{R: 45, G: 50, B: 55, A: 255}
	ColorColliderActive = rl.Color{R: 120, G: 220, B: 140, A: 255}
	ColorColliderIdle   = rl.Color{R: 90, G: 90, B: 100, A: 255}
	ColorWind           = rl.Color{R: 140, G: 200, B: 255, A: 255}
)

// SceneRenderer draws everything around the cloth.
type SceneRenderer struct {
	GroundSize float32
}

// NewSceneRenderer creates a scene renderer.
func NewSceneRenderer() *SceneRenderer {
	return &SceneRenderer{GroundSize: 6}
}

// DrawGround draws the ground plane at height y.
func (s *SceneRenderer) DrawGround(y float64) {
	rl.DrawPlane(rl.Vector3{Y: float32(y) - 0.001}, rl.Vector2{X: s.GroundSize, Y: s.GroundSize}, ColorGround)
	rl.DrawGrid(int32(s.GroundSize*2), 0.5)
}

// DrawColliders draws every collider as wires; active ones are highlighted.
func (s *SceneRenderer) DrawColliders(cs *systems.ColliderSystem) {
	cs.Each(func(info systems.ColliderInfo) {
		col := ColorColliderIdle
		if info.Active {
			col = ColorColliderActive
		}
		switch info.Shape.Kind {
		case collider.KindSphere:
			sp := info.Shape.Sphere
			rl.DrawSphereWires(toVec3(sp.Center), float32(sp.Radius), 12, 16, col)
		case collider.KindCapsule:
			c := info.Shape.Capsule
			rl.DrawCapsuleWires(toVec3(c.Start), toVec3(c.End), float32(c.Radius), 16, 8, col)
		}
	})
}

// DrawWind draws an arrow for the wind force anchored at from.
func (s *SceneRenderer) DrawWind(from rl.Vector3, dir rl.Vector3, length float32) {
	if length <= 0 {
		return
	}
	to := rl.Vector3{X: from.X + dir.X*length, Y: from.Y + dir.Y*length, Z: from.Z + dir.Z*length}
	rl.DrawLine3D(from, to, ColorWind)
	rl.DrawSphere(to, 0.02, ColorWind)
}
