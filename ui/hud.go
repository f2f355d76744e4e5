package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drape/systems"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Tick         int32
	Live         int
	Total        int
	Triangles    int
	Burning      int
	Tears        int
	Cascades     int
	Burns        int
	Mode         string
	Wind         float64
	Speed        int
	FPS          int32
	Paused       bool
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD in the top right corner.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	width := int32(230)
	x := data.ScreenWidth - width - 10
	y := int32(10)

	r.DrawPanel(x, y, width, 172)
	x += r.Theme.Padding
	y += r.Theme.Padding

	rl.DrawText(data.Title, x, y, 16, rl.White)
	y += 20

	y = r.DrawLabelValue(x, y, "Tick", fmt.Sprintf("%d  (%dx, %d fps)", data.Tick, data.Speed, data.FPS))
	y = r.DrawLabelValue(x, y, "Particles", fmt.Sprintf("%d / %d", data.Live, data.Total))
	y = r.DrawLabelValue(x, y, "Triangles", fmt.Sprintf("%d", data.Triangles))
	y = r.DrawLabelValue(x, y, "Removed", fmt.Sprintf("%d tear, %d cascade, %d burn", data.Tears, data.Cascades, data.Burns))
	y = r.DrawLabelValue(x, y, "Burning", fmt.Sprintf("%d", data.Burning))
	y = r.DrawLabelValue(x, y, "Wind", fmt.Sprintf("%.2f", data.Wind))
	y = r.DrawLabelValue(x, y, "Mode", data.Mode)

	if data.Paused {
		rl.DrawText("PAUSED", x, y, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	PhaseTimes        map[string]time.Duration
	PhasePct          map[string]float64
	Total             time.Duration
	TicksPerSecond    float64
	NsPerParticleStep float64
	Registry          *systems.SystemRegistry
}

// PerfPanel shows where step time goes, one row per phase.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the panel with phases in the given order. Hovering a row
// shows the phase description.
func (p *PerfPanel) Draw(data PerfPanelData, phases []string) {
	const width = 300
	r := p.renderer
	lh := r.Theme.LineHeight
	x, y := p.x, p.y

	r.DrawPanel(x-6, y-6, width, int32(len(phases)+3)*lh+12)
	y = r.DrawSectionHeader(x, y, "Step")
	y = r.DrawLabelValue(x, y, "Total", fmt.Sprintf("%s  %.0f tps", data.Total.Round(time.Microsecond), data.TicksPerSecond))
	y = r.DrawLabelValue(x, y, "Per particle", fmt.Sprintf("%.0f ns/substep", data.NsPerParticleStep))

	mouse := rl.GetMousePosition()
	hover := ""
	for _, name := range phases {
		label := name
		if data.Registry != nil {
			label = data.Registry.GetName(name)
		}
		var row rl.Rectangle
		row, y = r.DrawShare(x, y, width-12, label, data.PhasePct[name], data.PhaseTimes[name])
		if rl.CheckCollisionPointRec(mouse, row) {
			hover = name
		}
	}

	if hover != "" && data.Registry != nil {
		if doc := data.Registry.Doc(hover); doc != "" {
			rl.DrawText(doc, x, y+4, r.Theme.FontSize, r.Theme.LabelColor)
		}
	}
}
