package ui

import (
	"fmt"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsState holds the values edited by the controls panel.
type ControlsState struct {
	Mode     int32 // index into the panel's mode list
	Collider int32 // index into the panel's collider list

	WindEnabled bool
	WindSpeed   float32
	WindPitch   float32 // degrees
	WindYaw     float32 // degrees

	Width  float32 // quads, applied on regenerate
	Height float32
	Cell   float32
}

// ControlsEvents reports what changed during one Draw.
type ControlsEvents struct {
	ModeChanged     bool
	ColliderChanged bool
	WindChanged     bool
	Regenerate      bool
	SaveSnapshot    bool
}

// ControlsPanel renders the left-side controls panel.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	height   int32
	visible  bool

	modes     string
	colliders string

	modeEdit     bool
	colliderEdit bool
}

// NewControlsPanel creates a new controls panel. modes and colliders are
// the dropdown entries in index order.
func NewControlsPanel(x, y, width int32, modes, colliders []string) *ControlsPanel {
	return &ControlsPanel{
		renderer:  NewRenderer(),
		x:         x,
		y:         y,
		width:     width,
		visible:   true,
		modes:     strings.Join(modes, ";"),
		colliders: strings.Join(colliders, ";"),
	}
}

// SetVisible shows or hides the panel.
func (c *ControlsPanel) SetVisible(visible bool) {
	c.visible = visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Contains reports whether a screen point is over the panel, so clicks
// there are not used for picking.
func (c *ControlsPanel) Contains(x, y float32) bool {
	if !c.visible {
		return false
	}
	if c.modeEdit || c.colliderEdit {
		return true
	}
	return x >= float32(c.x) && x <= float32(c.x+c.width) &&
		y >= float32(c.y) && y <= float32(c.y+c.height)
}

// Draw renders the panel, edits state in place and returns what changed.
func (c *ControlsPanel) Draw(state *ControlsState, overlays *OverlayRegistry) ControlsEvents {
	var ev ControlsEvents
	if !c.visible {
		return ev
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight
	inner := float32(c.width - padding*2)
	sliderW := inner - 50
	px := float32(c.x + padding)

	r.DrawPanel(c.x, c.y, c.width, c.height)

	y := c.y + padding
	rl.DrawText("Cloth", c.x+padding, y, 16, rl.White)
	y += lineHeight + 4

	// Dropdowns are drawn last so their open lists overlap the sliders.
	modeY := float32(y)
	y += 28
	colliderY := float32(y)
	y += 34

	if c.modeEdit || c.colliderEdit {
		gui.Lock()
	}

	// Wind
	y = r.DrawSectionHeader(c.x+padding, y, "Wind")
	label := "Wind: off"
	if state.WindEnabled {
		label = "Wind: on"
	}
	if gui.Button(rl.Rectangle{X: px, Y: float32(y), Width: inner, Height: 22}, label) {
		state.WindEnabled = !state.WindEnabled
		ev.WindChanged = true
	}
	y += 28
	ev.WindChanged = c.slider(&y, px, sliderW, "Speed", "%.1f", &state.WindSpeed, 0, 50) || ev.WindChanged
	ev.WindChanged = c.slider(&y, px, sliderW, "Pitch", "%.0f", &state.WindPitch, -90, 90) || ev.WindChanged
	ev.WindChanged = c.slider(&y, px, sliderW, "Yaw", "%.0f", &state.WindYaw, 0, 360) || ev.WindChanged
	y += 4

	// Grid, applied on regenerate
	y = r.DrawSectionHeader(c.x+padding, y, "Grid")
	c.slider(&y, px, sliderW, "Width", "%.0f", &state.Width, 1, 60)
	c.slider(&y, px, sliderW, "Height", "%.0f", &state.Height, 1, 60)
	c.slider(&y, px, sliderW, "Cell", "%.3f", &state.Cell, 0.01, 0.2)
	state.Width = float32(int(state.Width + 0.5))
	state.Height = float32(int(state.Height + 0.5))

	half := (inner - 6) / 2
	if gui.Button(rl.Rectangle{X: px, Y: float32(y), Width: half, Height: 26}, "Generate") {
		ev.Regenerate = true
	}
	if gui.Button(rl.Rectangle{X: px + half + 6, Y: float32(y), Width: half, Height: 26}, "Snapshot") {
		ev.SaveSnapshot = true
	}
	y += 34

	// Overlay toggles
	if overlays != nil {
		y = r.DrawSectionHeader(c.x+padding, y, "Overlays")
		for _, desc := range overlays.All() {
			if c.drawToggle(c.x+padding, y, desc, overlays.IsEnabled(desc.ID), c.width-padding*2) {
				overlays.Toggle(desc.ID)
			}
			y += lineHeight
		}
	}

	c.height = y - c.y + padding

	gui.Unlock()

	prevCollider := state.Collider
	if gui.DropdownBox(rl.Rectangle{X: px, Y: colliderY, Width: inner, Height: 24}, c.colliders, &state.Collider, c.colliderEdit) {
		c.colliderEdit = !c.colliderEdit
	}
	ev.ColliderChanged = state.Collider != prevCollider

	prevMode := state.Mode
	if gui.DropdownBox(rl.Rectangle{X: px, Y: modeY, Width: inner, Height: 24}, c.modes, &state.Mode, c.modeEdit) {
		c.modeEdit = !c.modeEdit
	}
	ev.ModeChanged = state.Mode != prevMode

	return ev
}

// slider draws a labelled slider and advances y. Returns true if the value changed.
func (c *ControlsPanel) slider(y *int32, x, width float32, label, format string, value *float32, lo, hi float32) bool {
	rl.DrawText(label, int32(x), *y, c.renderer.Theme.FontSize, c.renderer.Theme.LabelColor)
	*y += 14
	next := gui.SliderBar(
		rl.Rectangle{X: x, Y: float32(*y), Width: width, Height: 16},
		"", "",
		*value, lo, hi,
	)
	rl.DrawText(fmt.Sprintf(format, next), int32(x+width+6), *y+2, c.renderer.Theme.FontSize, c.renderer.Theme.ValueColor)
	*y += 22
	if next != *value {
		*value = next
		return true
	}
	return false
}

// drawToggle draws one overlay line and reports a click on it. Hovering
// shows the overlay hint in place of the key label.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) bool {
	r := c.renderer
	fs := r.Theme.FontSize

	dot, name := rl.Color{R: 80, G: 80, B: 80, A: 255}, r.Theme.LabelColor
	if enabled {
		dot, name = rl.Color{R: 100, G: 200, B: 100, A: 255}, rl.White
	}
	rl.DrawRectangle(x, y+2, 8, 8, dot)
	rl.DrawText(desc.Name, x+14, y, fs, name)

	row := rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(width), Height: float32(r.Theme.LineHeight)}
	hover := rl.CheckCollisionPointRec(rl.GetMousePosition(), row)

	side := "[" + desc.KeyLabel + "]"
	if hover {
		side = desc.Hint
	}
	rl.DrawText(side, x+width-rl.MeasureText(side, fs), y, fs, rl.Color{R: 150, G: 150, B: 150, A: 255})

	return hover && rl.IsMouseButtonPressed(rl.MouseLeftButton)
}
