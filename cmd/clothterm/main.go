// Command clothterm runs the cloth in a terminal, drawn as an orthographic
// front view.
//
// Keys: space pause, w wind toggle, t tear nearest to centre, r regenerate,
// q quit.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drape/cloth"
	"github.com/pthm-cable/drape/collider"
	"github.com/pthm-cable/drape/config"
	"github.com/pthm-cable/drape/systems"
)

const frameInterval = 33 * time.Millisecond

var styles = map[glyphKind]tcell.Style{
	glyphEmpty:   tcell.StyleDefault,
	glyphCloth:   tcell.StyleDefault.Foreground(tcell.ColorLightSteelBlue),
	glyphPinned:  tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
	glyphBurning: tcell.StyleDefault.Foreground(tcell.ColorOrangeRed).Bold(true),
	glyphGround:  tcell.StyleDefault.Foreground(tcell.ColorDarkOliveGreen),
}

// viewer owns the simulation and the terminal.
type viewer struct {
	cfg    *config.Config
	screen tcell.Screen

	grid      *cloth.Grid
	colliders *systems.ColliderSystem
	wind      *systems.WindSystem
	shapes    []collider.Shape

	canvas *canvas
	proj   projector
	paused bool
	tick   int32
}

func newViewer(cfg *config.Config, seed int64) (*viewer, error) {
	grid, err := cloth.New(cfg.ClothParams())
	if err != nil {
		return nil, fmt.Errorf("creating cloth: %w", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	v := &viewer{
		cfg:       cfg,
		screen:    screen,
		grid:      grid,
		colliders: systems.NewColliderSystem(ecs.NewWorld(), cfg.Scene),
		wind:      systems.NewWindSystem(cfg.Wind, seed),
	}
	v.resize()
	return v, nil
}

func (v *viewer) resize() {
	w, h := v.screen.Size()
	h-- // status line
	if w < 1 || h < 1 {
		w, h = 1, 1
	}
	v.canvas = newCanvas(w, h)
	v.proj = fit(viewBox(v.grid.Params()), w, h)
}

func (v *viewer) step() {
	dt := v.cfg.Physics.DT
	v.wind.Update(dt, v.grid)
	v.colliders.Update(dt)
	v.shapes = v.colliders.Gather(v.shapes[:0])
	v.grid.FixedStep(dt, v.shapes)
	v.grid.SpreadFire(dt)
	v.tick++
}

// tearCentre cuts the particle closest to a ray through the cloth origin.
func (v *viewer) tearCentre() {
	params := v.grid.Params()
	from := r3.Add(params.Origin, r3.Vec{Z: 10})
	if h, ok := v.grid.SelectNearest(from, r3.Vec{Z: -1}, 2*params.CellX); ok {
		v.grid.Tear(h)
	}
}

func (v *viewer) regenerate() {
	if err := v.grid.Generate(v.cfg.ClothParams()); err != nil {
		slog.Error("failed to regenerate cloth", "error", err)
		return
	}
	v.tick = 0
	v.resize()
}

// handleKey returns false when the viewer should exit.
func (v *viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			v.paused = !v.paused
		case 'w':
			v.wind.Enabled = !v.wind.Enabled
		case 't':
			v.tearCentre()
		case 'r':
			v.regenerate()
		}
	}
	return true
}

func (v *viewer) draw() {
	rasterize(v.canvas, v.grid, v.proj)

	v.screen.Clear()
	for y := 0; y < v.canvas.h; y++ {
		for x := 0; x < v.canvas.w; x++ {
			g := v.canvas.at(x, y)
			if g.kind == glyphEmpty {
				continue
			}
			v.screen.SetContent(x, y, g.r, nil, styles[g.kind])
		}
	}

	state := "running"
	if v.paused {
		state = "paused"
	}
	wind := "off"
	if v.wind.Enabled {
		wind = fmt.Sprintf("%.1f", r3.Norm(v.wind.Last()))
	}
	status := fmt.Sprintf(" tick %d | %s | live %d/%d | wind %s | space pause  w wind  t tear  r regen  q quit",
		v.tick, state, v.grid.LiveCount(), v.grid.Len(), wind)
	for i, r := range status {
		v.screen.SetContent(i, v.canvas.h, r, nil, tcell.StyleDefault.Reverse(true))
	}
	v.screen.Show()
}

func (v *viewer) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	steps := int(frameInterval.Seconds()/v.cfg.Physics.DT + 0.5)
	if steps < 1 {
		steps = 1
	}

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !v.handleKey(ev) {
					return
				}
			case *tcell.EventResize:
				v.screen.Sync()
				v.resize()
			}
		case <-ticker.C:
			if !v.paused {
				for i := 0; i < steps; i++ {
					v.step()
				}
			}
			v.draw()
		}
	}
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed for wind gusts (0 = time-based)")
	logPath := flag.String("log", "", "Write JSON logs to this file (the terminal is in use)")
	flag.Parse()

	var out io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "opening log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(out, nil)))

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	v, err := newViewer(cfg, rngSeed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "starting viewer: %v\n", err)
		os.Exit(1)
	}
	defer v.screen.Fini()

	v.run()
}
