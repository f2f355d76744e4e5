// Package inspector draws detail panels for the selected particle and for
// cloth health over time.
package inspector

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drape/cloth"
)

// Panel dimensions
const (
	PanelWidth   = 340
	PanelPadding = 10
	HeaderHeight = 30
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorSection     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 220, A: 255}
)

// Inspector tracks one selected particle and renders its state.
type Inspector struct {
	selected    cloth.Handle
	hasSelected bool
	panelX      int32
	panelY      int32
	panelHeight int32
}

// NewInspector creates a new inspector instance placed below the HUD.
func NewInspector(screenWidth, screenHeight int32) *Inspector {
	return &Inspector{
		panelX: screenWidth - PanelWidth - 10,
		panelY: 190,
	}
}

// Resize moves the panel to the right edge of a resized window.
func (ins *Inspector) Resize(screenWidth, screenHeight int32) {
	ins.panelX = screenWidth - PanelWidth - 10
}

// Select makes h the inspected particle.
func (ins *Inspector) Select(h cloth.Handle) {
	ins.selected = h
	ins.hasSelected = true
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Selected returns the currently selected particle handle.
func (ins *Inspector) Selected() (cloth.Handle, bool) {
	return ins.selected, ins.hasSelected
}

// Contains reports whether a screen point lies on the visible panel.
func (ins *Inspector) Contains(x, y float32) bool {
	if !ins.hasSelected {
		return false
	}
	return int32(x) >= ins.panelX && int32(x) <= ins.panelX+PanelWidth &&
		int32(y) >= ins.panelY && int32(y) <= ins.panelY+ins.panelHeight
}

// HandleInput closes the panel on Escape or a click on the close button.
// It returns true when the click was consumed.
func (ins *Inspector) HandleInput(mouseX, mouseY float32) bool {
	if !ins.hasSelected {
		return false
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		ins.Deselect()
		return true
	}
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return false
	}

	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	if int32(mouseX) >= closeX && int32(mouseX) <= closeX+20 &&
		int32(mouseY) >= closeY && int32(mouseY) <= closeY+20 {
		ins.Deselect()
		return true
	}
	return ins.Contains(mouseX, mouseY)
}

// Particle resolves the selection against g. A stale selection, from a
// destroyed particle or an older generation, is dropped.
func (ins *Inspector) Particle(g *cloth.Grid) *cloth.Particle {
	if !ins.hasSelected {
		return nil
	}
	p, err := g.Lookup(ins.selected)
	if err != nil {
		ins.Deselect()
		return nil
	}
	return p
}

// Draw renders the inspector panel if a particle is selected.
func (ins *Inspector) Draw(g *cloth.Grid, dt float64) {
	p := ins.Particle(g)
	if p == nil {
		return
	}

	fields := ExtractFields(NewParticleView(g, p, dt))
	ins.panelHeight = ins.calculatePanelHeight(fields)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, ins.panelHeight, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(ins.panelHeight)},
		1,
		ColorPanelBorder,
	)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText("PARTICLE", ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	rl.DrawRectangle(closeX, closeY, 20, 20, ColorCloseBtn)
	rl.DrawText("X", closeX+6, closeY+3, 14, rl.White)

	y := ins.panelY + HeaderHeight + PanelPadding
	x := ins.panelX + PanelPadding

	rl.DrawText(fmt.Sprintf("Generation %d", g.Generation()), x, y, 14, ColorHeaderText)
	y += 22
	rl.DrawLine(x, y, ins.panelX+PanelWidth-PanelPadding, y, ColorPanelBorder)
	y += 8

	section := ""
	for _, f := range fields {
		if f.Section != section {
			section = f.Section
			y += 4
			ins.drawSectionHeader(x, y, strings.ToUpper(section))
			y += 20
		}
		y += DrawField(x, y, f)
	}
}

// drawSectionHeader renders a section title.
func (ins *Inspector) drawSectionHeader(x, y int32, title string) {
	rl.DrawRectangle(x-2, y-2, PanelWidth-2*PanelPadding+4, 18, ColorSection)
	rl.DrawText(title, x+2, y, 14, ColorSectionText)
}

// calculatePanelHeight mirrors the row heights returned by the widgets.
func (ins *Inspector) calculatePanelHeight(fields []Field) int32 {
	height := int32(HeaderHeight + PanelPadding)
	height += 22 + 8 // generation line, separator
	section := ""
	for _, f := range fields {
		if f.Section != section {
			section = f.Section
			height += 24
		}
		switch f.Widget {
		case WidgetVec:
			height += 34
		case WidgetBar:
			if _, ok := GetFloatSlice(f.Value); ok {
				height += 24 + 30 + 10 + 4
			} else {
				height += 18
			}
		case WidgetBool:
			height += 18
		default:
			height += 20
		}
	}
	return height + PanelPadding
}

// DrawSelectionHighlight marks the selected particle in world space. It
// must be called inside a 3D mode block.
func (ins *Inspector) DrawSelectionHighlight(g *cloth.Grid, radius float32) {
	p := ins.Particle(g)
	if p == nil {
		return
	}
	c := rl.Vector3{X: float32(p.Pos.X), Y: float32(p.Pos.Y), Z: float32(p.Pos.Z)}
	rl.DrawSphereWires(c, radius, 6, 8, rl.Yellow)
	for d := cloth.North; d <= cloth.NorthWest; d++ {
		q := g.Neighbor(p, d)
		if q == nil {
			continue
		}
		rl.DrawLine3D(c, rl.Vector3{X: float32(q.Pos.X), Y: float32(q.Pos.Y), Z: float32(q.Pos.Z)}, rl.Gold)
	}
}
