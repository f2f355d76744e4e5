package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID names a toggleable overlay. IDs index a bit set.
type OverlayID uint8

const (
	OverlayWireframe OverlayID = iota
	OverlayPins
	OverlayColliders
	OverlayWind
	OverlayPerf
	OverlayHealth
)

// OverlayDescriptor is the display metadata of an overlay.
type OverlayDescriptor struct {
	ID       OverlayID
	Name     string
	Key      int32
	KeyLabel string
	Hint     string
}

var overlayTable = []OverlayDescriptor{
	{OverlayWireframe, "Wireframe", rl.KeyF1, "F1", "triangle edges over the cloth"},
	{OverlayPins, "Pins", rl.KeyF2, "F2", "pinned particles"},
	{OverlayColliders, "Colliders", rl.KeyF3, "F3", "collider wireframes"},
	{OverlayWind, "Wind", rl.KeyF4, "F4", "current wind force"},
	{OverlayPerf, "Performance", rl.KeyF5, "F5", "per-phase step timings"},
	{OverlayHealth, "Health", rl.KeyF6, "F6", "cloth health per telemetry window"},
}

func (id OverlayID) String() string {
	if int(id) < len(overlayTable) {
		return overlayTable[id].Name
	}
	return "overlay?"
}

// OverlayRegistry holds which overlays are on.
type OverlayRegistry struct {
	on uint32
}

func NewOverlayRegistry() *OverlayRegistry {
	return &OverlayRegistry{}
}

func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.on&(1<<id) != 0
}

func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	if enabled {
		r.on |= 1 << id
	} else {
		r.on &^= 1 << id
	}
}

// Toggle flips id and returns its new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	r.on ^= 1 << id
	return r.IsEnabled(id)
}

// All returns the overlays in display order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return overlayTable
}

// HandleKeyPress toggles the overlay bound to key. Returns false if no
// overlay uses the key.
func (r *OverlayRegistry) HandleKeyPress(key int32) bool {
	for _, d := range overlayTable {
		if d.Key == key {
			r.Toggle(d.ID)
			return true
		}
	}
	return false
}

// Keys returns the toggle keys in display order.
func (r *OverlayRegistry) Keys() []int32 {
	keys := make([]int32, len(overlayTable))
	for i, d := range overlayTable {
		keys[i] = d.Key
	}
	return keys
}
