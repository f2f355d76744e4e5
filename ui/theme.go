// Package ui provides HUD, overlay and control panels for the viewer.
package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Theme is the shared panel styling.
type Theme struct {
	PanelBg       rl.Color
	PanelBorder   rl.Color
	SectionHeader rl.Color
	LabelColor    rl.Color
	ValueColor    rl.Color
	ShareTrack    rl.Color
	ShareCool     rl.Color
	ShareWarm     rl.Color
	ShareHot      rl.Color

	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	FontSize       int32
	HeaderFontSize int32
}

func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 18, G: 22, B: 28, A: 235},
		PanelBorder:    rl.Color{R: 70, G: 78, B: 90, A: 255},
		SectionHeader:  rl.Color{R: 240, G: 200, B: 90, A: 255},
		LabelColor:     rl.LightGray,
		ValueColor:     rl.RayWhite,
		ShareTrack:     rl.Color{R: 45, G: 48, B: 55, A: 255},
		ShareCool:      rl.Color{R: 90, G: 160, B: 210, A: 255},
		ShareWarm:      rl.Orange,
		ShareHot:       rl.Color{R: 220, G: 70, B: 60, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     78,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}

// Renderer draws themed panel primitives.
type Renderer struct {
	Theme Theme
}

func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader returns the y of the next line.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

// DrawLabelValue returns the y of the next line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label, x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// shareColor grades a percentage of step time.
func (r *Renderer) shareColor(pct float64) rl.Color {
	switch {
	case pct > 50:
		return r.Theme.ShareHot
	case pct > 25:
		return r.Theme.ShareWarm
	}
	return r.Theme.ShareCool
}

// DrawShare draws one phase row: label, a bar of pct out of 100 and the
// average duration. Returns the row rectangle and the y of the next line.
func (r *Renderer) DrawShare(x, y, width int32, label string, pct float64, avg time.Duration) (rl.Rectangle, int32) {
	fs := r.Theme.FontSize
	barX := x + r.Theme.LabelWidth
	barW := width - r.Theme.LabelWidth - 90
	h := fs - 2

	rl.DrawText(label, x, y, fs, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+1, barW, h, r.Theme.ShareTrack)
	fill := int32(float64(barW) * min(max(pct, 0), 100) / 100)
	rl.DrawRectangle(barX, y+1, fill, h, r.shareColor(pct))
	rl.DrawText(fmt.Sprintf("%5.1f%% %s", pct, avg.Round(time.Microsecond)), barX+barW+6, y, fs, r.Theme.ValueColor)

	row := rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(width), Height: float32(r.Theme.LineHeight)}
	return row, y + r.Theme.LineHeight
}
