package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drape/telemetry"
)

const (
	// History buffer size (number of telemetry windows to keep)
	healthHistorySize = 120

	seriesLive     = 0
	seriesRemoved  = 1
	seriesSpeedP95 = 2
	seriesHeight   = 3
	seriesBurning  = 4
	numSeries      = 5
)

// HealthPanel graphs cloth health across telemetry windows.
type HealthPanel struct {
	panelWidth  int32
	panelHeight int32
	panelX      int32
	panelY      int32

	latest    telemetry.WindowStats
	hasLatest bool

	// Historical data for line graphs (ring buffers)
	history      [numSeries][]float64
	historyIndex int
	historyCount int

	// Series visibility (toggled by clicking legend)
	seriesVisible [numSeries]bool

	seriesNames  [numSeries]string
	seriesColors [numSeries]rl.Color
}

var (
	colorHealthTitle   = rl.Color{R: 200, G: 200, B: 220, A: 255}
	colorHealthPanelBg = rl.Color{R: 20, G: 20, B: 30, A: 230}
	colorGraphBg       = rl.Color{R: 15, G: 15, B: 25, A: 255}
	colorGraphGrid     = rl.Color{R: 40, G: 40, B: 50, A: 255}
	colorGraphBorder   = rl.Color{R: 60, G: 60, B: 70, A: 255}

	colorSeriesLive    = rl.Color{R: 100, G: 149, B: 237, A: 255}
	colorSeriesRemoved = rl.Color{R: 255, G: 100, B: 80, A: 255}
	colorSeriesSpeed   = rl.Color{R: 150, G: 255, B: 150, A: 255}
	colorSeriesHeight  = rl.Color{R: 200, G: 180, B: 120, A: 255}
	colorSeriesBurning = rl.Color{R: 255, G: 170, B: 40, A: 255}
)

// NewHealthPanel creates a panel along the bottom of the screen.
func NewHealthPanel(screenWidth, screenHeight int32) *HealthPanel {
	p := &HealthPanel{panelHeight: 180}
	p.Resize(screenWidth, screenHeight)

	for i := 0; i < numSeries; i++ {
		p.history[i] = make([]float64, healthHistorySize)
	}

	p.seriesVisible = [numSeries]bool{true, true, true, false, false}
	p.seriesNames = [numSeries]string{"Live %", "Removed", "Speed p95", "Height", "Burning"}
	p.seriesColors = [numSeries]rl.Color{
		colorSeriesLive,
		colorSeriesRemoved,
		colorSeriesSpeed,
		colorSeriesHeight,
		colorSeriesBurning,
	}
	return p
}

// Resize updates panel dimensions when the window is resized.
func (p *HealthPanel) Resize(screenWidth, screenHeight int32) {
	p.panelWidth = screenWidth - 420
	if p.panelWidth < 400 {
		p.panelWidth = 400
	}
	p.panelX = 10
	p.panelY = screenHeight - p.panelHeight - 10
}

// Update records one flushed telemetry window.
func (p *HealthPanel) Update(s telemetry.WindowStats) {
	p.latest = s
	p.hasLatest = true

	idx := p.historyIndex
	p.history[seriesLive][idx] = s.LiveFraction() * 100
	p.history[seriesRemoved][idx] = float64(s.Removed())
	p.history[seriesSpeedP95][idx] = s.SpeedP95
	p.history[seriesHeight][idx] = s.MeanHeight
	p.history[seriesBurning][idx] = float64(s.Burning)

	p.historyIndex = (p.historyIndex + 1) % healthHistorySize
	if p.historyCount < healthHistorySize {
		p.historyCount++
	}
}

// Reset clears the history, typically after the cloth is regenerated.
func (p *HealthPanel) Reset() {
	p.historyIndex = 0
	p.historyCount = 0
	p.hasLatest = false
}

// Contains reports whether a screen point lies on the panel.
func (p *HealthPanel) Contains(x, y float32) bool {
	return int32(x) >= p.panelX && int32(x) < p.panelX+p.panelWidth &&
		int32(y) >= p.panelY && int32(y) < p.panelY+p.panelHeight
}

// HandleInput toggles series when their legend entry is clicked.
func (p *HealthPanel) HandleInput() {
	if !rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		return
	}

	mx := rl.GetMouseX()
	my := rl.GetMouseY()

	legendY := p.panelY + p.panelHeight - 24
	legendX := p.panelX + 10

	for i := 0; i < numSeries; i++ {
		itemX := legendX + int32(i)*90
		if mx >= itemX && mx < itemX+85 && my >= legendY && my < legendY+18 {
			p.seriesVisible[i] = !p.seriesVisible[i]
			return
		}
	}
}

// Draw renders the health panel with graphs.
func (p *HealthPanel) Draw() {
	rl.DrawRectangle(p.panelX, p.panelY, p.panelWidth, p.panelHeight, colorHealthPanelBg)
	rl.DrawRectangleLines(p.panelX, p.panelY, p.panelWidth, p.panelHeight, colorGraphBorder)
	rl.DrawText("CLOTH HEALTH", p.panelX+10, p.panelY+6, 14, colorHealthTitle)

	if !p.hasLatest {
		rl.DrawText("Waiting for data...", p.panelX+140, p.panelY+80, 14, ColorTextDim)
		return
	}

	barsWidth := int32(170)
	graphX := p.panelX + barsWidth + 20
	graphY := p.panelY + 24
	graphW := p.panelWidth - barsWidth - 40
	graphH := p.panelHeight - 54

	p.drawSummary(p.panelX+10, p.panelY+28, barsWidth-20)
	p.drawGraph(graphX, graphY, graphW, graphH)
	p.drawLegend(p.panelX+10, p.panelY+p.panelHeight-24)
}

// drawSummary shows the latest window as proportion bars.
func (p *HealthPanel) drawSummary(x, y, width int32) {
	s := p.latest
	total := float64(s.Total)
	if total <= 0 {
		total = 1
	}
	removed := float64(s.Removed())

	p.drawSingleBar(x, y, width, "Live", float64(s.Live), total, colorSeriesLive)
	y += 18
	p.drawSingleBar(x, y, width, "Burn", float64(s.Burning), total, colorSeriesBurning)
	y += 18
	p.drawSingleBar(x, y, width, "Tear", float64(s.Tears), math.Max(removed, 1), colorSeriesRemoved)
	y += 18
	p.drawSingleBar(x, y, width, "Casc", float64(s.Cascades), math.Max(removed, 1), colorSeriesRemoved)
	y += 22
	rl.DrawText(fmt.Sprintf("Tris %d", s.Triangles), x, y, 11, ColorTextDim)
}

func (p *HealthPanel) drawSingleBar(x, y, width int32, label string, value, total float64, color rl.Color) {
	labelW := int32(35)
	barW := width - labelW - 45

	rl.DrawText(label, x, y, 11, ColorText)

	barX := x + labelW
	rl.DrawRectangle(barX, y, barW, 14, ColorBarBg)

	ratio := float32(value / total)
	if ratio > 1 {
		ratio = 1
	}
	if ratio < 0 {
		ratio = 0
	}
	rl.DrawRectangle(barX, y, int32(float32(barW)*ratio), 14, color)

	rl.DrawText(formatAxis(value), barX+barW+4, y, 10, ColorTextDim)
}

// drawGraph renders every visible series on its own normalized scale.
func (p *HealthPanel) drawGraph(x, y, w, h int32) {
	rl.DrawRectangle(x, y, w, h, colorGraphBg)
	rl.DrawRectangleLines(x, y, w, h, colorGraphBorder)

	for i := int32(1); i < 4; i++ {
		gridY := y + (h * i / 4)
		rl.DrawLine(x, gridY, x+w, gridY, colorGraphGrid)
	}
	for i := int32(1); i < 6; i++ {
		gridX := x + (w * i / 6)
		rl.DrawLine(gridX, y, gridX, y+h, colorGraphGrid)
	}

	if p.historyCount < 2 {
		return
	}

	labelY := y + 2
	for s := 0; s < numSeries; s++ {
		if !p.seriesVisible[s] {
			continue
		}
		lo, hi := p.seriesRange(s)
		p.drawSeriesLine(x, y, w, h, s, lo, hi)

		label := formatAxis(hi)
		textW := rl.MeasureText(label, 9)
		rl.DrawText(label, x+w-textW-2, labelY, 9, p.seriesColors[s])
		labelY += 10
	}
}

// seriesRange returns the padded min/max of one series.
func (p *HealthPanel) seriesRange(s int) (lo, hi float64) {
	lo = math.MaxFloat64
	hi = -math.MaxFloat64
	for i := 0; i < p.historyCount; i++ {
		v := p.history[s][p.ringIndex(i)]
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo >= hi {
		return lo - 0.5, hi + 0.5
	}
	padding := math.Max((hi-lo)*0.1, 0.001)
	return lo - padding, hi + padding
}

func (p *HealthPanel) ringIndex(i int) int {
	return (p.historyIndex - p.historyCount + i + healthHistorySize) % healthHistorySize
}

func (p *HealthPanel) drawSeriesLine(x, y, w, h int32, series int, minVal, maxVal float64) {
	color := p.seriesColors[series]
	valueRange := maxVal - minVal
	if valueRange <= 0 {
		valueRange = 1
	}

	var prevX, prevY int32
	for i := 0; i < p.historyCount; i++ {
		v := p.history[series][p.ringIndex(i)]

		px := x + int32(float64(i)*float64(w)/float64(p.historyCount-1))
		py := y + h - int32((v-minVal)/valueRange*float64(h))
		if py < y {
			py = y
		}
		if py > y+h {
			py = y + h
		}

		if i > 0 {
			rl.DrawLine(prevX, prevY, px, py, color)
		}
		prevX, prevY = px, py
	}
}

// drawLegend draws the interactive legend.
func (p *HealthPanel) drawLegend(x, y int32) {
	itemWidth := int32(90)

	for i := 0; i < numSeries; i++ {
		itemX := x + int32(i)*itemWidth
		color := p.seriesColors[i]
		textColor := ColorText
		if !p.seriesVisible[i] {
			color.A = 80
			textColor = ColorTextDim
		}
		rl.DrawRectangle(itemX, y+2, 10, 10, color)
		rl.DrawText(p.seriesNames[i], itemX+14, y, 11, textColor)
	}

	hintX := x + int32(numSeries)*itemWidth + 10
	rl.DrawText("(click to toggle)", hintX, y, 10, ColorTextDim)
}

func formatAxis(v float64) string {
	a := math.Abs(v)
	switch {
	case a >= 10000:
		return fmt.Sprintf("%.0fk", v/1000)
	case a >= 1000:
		return fmt.Sprintf("%.1fk", v/1000)
	case a >= 100:
		return fmt.Sprintf("%.0f", v)
	case a >= 10:
		return fmt.Sprintf("%.1f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
