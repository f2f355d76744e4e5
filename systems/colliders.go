package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drape/collider"
	"github.com/pthm-cable/drape/components"
	"github.com/pthm-cable/drape/config"
)

// ColliderSystem owns the scene colliders as ECS entities. It animates
// them and gathers the shapes present for a tick.
type ColliderSystem struct {
	mapper *ecs.Map4[components.Transform, components.Collider, components.Orbit, components.Name]
	filter *ecs.Filter3[components.Transform, components.Collider, components.Orbit]
	names  *ecs.Map1[components.Name]

	active collider.Kind
	time   float64
}

// NewColliderSystem creates the system and spawns the configured colliders.
func NewColliderSystem(world *ecs.World, scene config.SceneConfig) *ColliderSystem {
	s := &ColliderSystem{
		mapper: ecs.NewMap4[components.Transform, components.Collider, components.Orbit, components.Name](world),
		filter: ecs.NewFilter3[components.Transform, components.Collider, components.Orbit](world),
		names:  ecs.NewMap1[components.Name](world),
		active: collider.ParseKind(scene.Active),
	}
	for _, cc := range scene.Colliders {
		s.Spawn(cc)
	}
	return s
}

// Spawn creates one collider entity from its config.
func (s *ColliderSystem) Spawn(cc config.ColliderConfig) ecs.Entity {
	center := cc.Center.R3()
	tr := components.Transform{Position: center, Anchor: center}
	col := components.Collider{
		Kind:     collider.ParseKind(cc.Kind),
		Radius:   cc.Radius,
		HalfAxis: cc.Axis.R3(),
	}
	orbit := components.Orbit{
		Radius: cc.Orbit.Radius,
		Period: cc.Orbit.Period,
		Axis:   components.ParseOrbitAxis(cc.Orbit.Axis),
	}
	name := components.Name{Value: cc.Name}
	// NewEntity copies the components, so place before storing.
	s.place(&tr, &orbit)
	return s.mapper.NewEntity(&tr, &col, &orbit, &name)
}

// Remove deletes a collider entity.
func (s *ColliderSystem) Remove(e ecs.Entity) {
	s.mapper.Remove(e)
}

// Active returns which collider kind takes part in the simulation.
func (s *ColliderSystem) Active() collider.Kind {
	return s.active
}

// SetActive selects the collider kind that takes part in the simulation.
// KindNone disables all colliders.
func (s *ColliderSystem) SetActive(k collider.Kind) {
	s.active = k
}

// Update advances collider animations by dt seconds.
func (s *ColliderSystem) Update(dt float64) {
	s.time += dt
	query := s.filter.Query()
	for query.Next() {
		tr, _, orbit := query.Get()
		s.place(tr, orbit)
	}
}

func (s *ColliderSystem) place(tr *components.Transform, orbit *components.Orbit) {
	if orbit.Radius == 0 || orbit.Period <= 0 {
		tr.Position = tr.Anchor
		return
	}
	angle := orbit.Phase + 2*math.Pi*s.time/orbit.Period
	sin, cos := math.Sincos(angle)
	var off r3.Vec
	switch orbit.Axis {
	case components.OrbitX:
		off = r3.Vec{Y: sin, Z: cos}
	case components.OrbitZ:
		off = r3.Vec{X: cos, Y: sin}
	default:
		off = r3.Vec{X: sin, Z: cos}
	}
	tr.Position = r3.Add(tr.Anchor, r3.Scale(orbit.Radius, off))
}

// Gather appends the shapes of active colliders to dst.
func (s *ColliderSystem) Gather(dst []collider.Shape) []collider.Shape {
	if s.active == collider.KindNone {
		return dst
	}
	query := s.filter.Query()
	for query.Next() {
		tr, col, _ := query.Get()
		if col.Kind != s.active {
			continue
		}
		dst = append(dst, col.Shape(tr.Position))
	}
	return dst
}

// ColliderInfo is a read-only view of a collider for rendering and UI.
type ColliderInfo struct {
	Entity ecs.Entity
	Name   string
	Shape  collider.Shape
	Active bool
}

// Each calls fn for every collider, active or not.
func (s *ColliderSystem) Each(fn func(ColliderInfo)) {
	query := s.filter.Query()
	for query.Next() {
		tr, col, _ := query.Get()
		e := query.Entity()
		fn(ColliderInfo{
			Entity: e,
			Name:   s.names.Get(e).Value,
			Shape:  col.Shape(tr.Position),
			Active: col.Kind == s.active,
		})
	}
}

// Count returns the number of collider entities.
func (s *ColliderSystem) Count() int {
	n := 0
	query := s.filter.Query()
	for query.Next() {
		n++
	}
	return n
}
