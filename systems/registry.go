package systems

import "github.com/pthm-cable/drape/telemetry"

// StepSystem is the display metadata for one phase of the step.
type StepSystem struct {
	Phase telemetry.Phase
	Label string
	Doc   string
}

// stepSystems is in step order.
var stepSystems = []StepSystem{
	{telemetry.PhaseWind, "Wind", "Gusting wind force on every live particle"},
	{telemetry.PhaseColliders, "Colliders", "Orbit animation and shape gathering"},
	{telemetry.PhasePhysics, "Physics", "Springs, collisions, tearing and Verlet sub-steps"},
	{telemetry.PhaseFire, "Fire", "Heat spread and burn-out"},
	{telemetry.PhaseTelemetry, "Telemetry", "Window flush, bookmarks and CSV output"},
}

// SystemRegistry looks up step systems by perf phase name.
type SystemRegistry struct {
	byName map[string]StepSystem
}

func NewSystemRegistry() *SystemRegistry {
	r := &SystemRegistry{byName: make(map[string]StepSystem, len(stepSystems))}
	for _, s := range stepSystems {
		r.byName[s.Phase.String()] = s
	}
	return r
}

// GetName returns the label for a phase name, or the name when unknown.
func (r *SystemRegistry) GetName(phase string) string {
	if s, ok := r.byName[phase]; ok {
		return s.Label
	}
	return phase
}

// Doc returns the phase description, empty when unknown.
func (r *SystemRegistry) Doc(phase string) string {
	return r.byName[phase].Doc
}

// Steps returns the systems in step order.
func (r *SystemRegistry) Steps() []StepSystem {
	return stepSystems
}
