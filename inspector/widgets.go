package inspector

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	ColorBarBg   = rl.Color{R: 40, G: 40, B: 40, A: 255}
	ColorBarCalm = rl.Color{R: 90, G: 90, B: 110, A: 255}
	ColorBarTaut = rl.Color{R: 230, G: 140, B: 60, A: 255}
	ColorBarOver = rl.Color{R: 235, G: 60, B: 50, A: 255}
	ColorText    = rl.Color{R: 220, G: 220, B: 220, A: 255}
	ColorTextDim = rl.Color{R: 150, G: 150, B: 150, A: 255}
	ColorVecNorm = rl.Color{R: 140, G: 170, B: 220, A: 255}
	ColorBoolOn  = rl.Color{R: 100, G: 200, B: 100, A: 255}
	ColorBoolOff = rl.Color{R: 80, G: 80, B: 80, A: 255}
)

const (
	labelFont = 14
	valueX    = 80
)

// DrawField draws one field with its widget and returns the height used.
func DrawField(x, y int32, field Field) int32 {
	switch field.Widget {
	case WidgetBar:
		if values, ok := GetFloatSlice(field.Value); ok {
			return drawBarGroup(x, y, field.Name, values, field.Options)
		}
		if v, ok := GetFloatValue(field.Value); ok {
			return drawBar(x, y, field.Name, v, GetMax(field.Options))
		}
	case WidgetVec:
		if v, ok := field.Value.(r3.Vec); ok {
			return drawVec(x, y, field.Name, v, field.Options["fmt"])
		}
	case WidgetBool:
		if v, ok := field.Value.(bool); ok {
			return drawBool(x, y, field.Name, v)
		}
	}
	return drawLabel(x, y, field.Name, FormatValue(field.Value, field.Options["fmt"]))
}

func drawLabel(x, y int32, name, text string) int32 {
	rl.DrawText(name, x, y, labelFont, ColorTextDim)
	rl.DrawText(text, x+valueX, y, labelFont, ColorText)
	return 18
}

// fill maps v against max to [0, 1] and picks a colour. Values at or past
// max, such as a spring stretched to its tear limit, draw in ColorBarOver.
func fill(v, max float32) (float32, rl.Color) {
	r := v / max
	switch {
	case r >= 1:
		return 1, ColorBarOver
	case r <= 0:
		return 0, ColorBarCalm
	}
	return r, lerpColor(ColorBarCalm, ColorBarTaut, r)
}

func drawBar(x, y int32, name string, v, max float32) int32 {
	const w, h = 120, 14
	bx := x + valueX

	rl.DrawText(name, x, y, labelFont, ColorTextDim)
	rl.DrawRectangle(bx, y, w, h, ColorBarBg)
	r, c := fill(v, max)
	rl.DrawRectangle(bx, y, int32(w*r), h, c)
	rl.DrawText(fmt.Sprintf("%.2f", v), bx+w+5, y, labelFont, ColorTextDim)
	return 18
}

// drawBarGroup draws one vertical bar per value, filled from the bottom,
// with optional per-bar captions from the labels option.
func drawBarGroup(x, y int32, name string, values []float32, options map[string]string) int32 {
	const w, h, gap = 20, 30, 2
	max := GetMax(options)
	captions := parseLabels(options["labels"], len(values))
	bx := x + valueX

	rl.DrawText(name, x, y+h/2-labelFont/2, labelFont, ColorTextDim)
	for i, v := range values {
		cx := bx + int32(i)*(w+gap)
		rl.DrawRectangle(cx, y, w, h, ColorBarBg)
		r, c := fill(v, max)
		fh := int32(h * r)
		rl.DrawRectangle(cx, y+h-fh, w, fh, c)

		if captions != nil && captions[i] != "" {
			tw := rl.MeasureText(captions[i], 8)
			rl.DrawText(captions[i], cx+w/2-tw/2, y+h+2, 8, ColorTextDim)
		}
	}
	if captions != nil {
		return h + 14
	}
	return h + 4
}

func drawVec(x, y int32, name string, v r3.Vec, format string) int32 {
	drawLabel(x, y, name, FormatValue(v, format))
	rl.DrawText(fmt.Sprintf("|%.2f|", r3.Norm(v)), x+valueX, y+16, 12, ColorVecNorm)
	return 34
}

func drawBool(x, y int32, name string, on bool) int32 {
	c, text := ColorBoolOff, "no"
	if on {
		c, text = ColorBoolOn, "yes"
	}
	rl.DrawText(name, x, y, labelFont, ColorTextDim)
	rl.DrawCircle(x+valueX+7, y+7, 6, c)
	rl.DrawText(text, x+valueX+18, y, labelFont, c)
	return 18
}

// parseLabels splits "N|E|S|W" into count captions, or nil on mismatch.
func parseLabels(raw string, count int) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, "|")
	if len(parts) != count {
		return nil
	}
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func lerpColor(a, b rl.Color, t float32) rl.Color {
	mix := func(p, q uint8) uint8 { return uint8(float32(p) + (float32(q)-float32(p))*t) }
	return rl.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}
