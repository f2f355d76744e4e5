// Package game wires the cloth, scene systems, telemetry and viewer into
// a single update/draw loop.
package game

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/drape/camera"
	"github.com/pthm-cable/drape/cloth"
	"github.com/pthm-cable/drape/collider"
	"github.com/pthm-cable/drape/config"
	"github.com/pthm-cable/drape/inspector"
	"github.com/pthm-cable/drape/renderer"
	"github.com/pthm-cable/drape/systems"
	"github.com/pthm-cable/drape/telemetry"
	"github.com/pthm-cable/drape/ui"
)

// Options configures a game instance.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	SnapshotDir    string
	OutputDir      string
	LoadSnapshot   string // path of a snapshot to restore at start
	Headless       bool
	StepsPerUpdate int
}

// Game holds the complete simulation and viewer state.
type Game struct {
	grid  *cloth.Grid
	world *ecs.World

	colliders *systems.ColliderSystem
	wind      *systems.WindSystem
	registry  *systems.SystemRegistry
	shapes    []collider.Shape // reused per tick

	// Viewer, nil when headless
	camera         *camera.Camera
	clothRenderer  *renderer.ClothRenderer
	sceneRenderer  *renderer.SceneRenderer
	inspector      *inspector.Inspector
	healthPanel    *inspector.HealthPanel
	hud            *ui.HUD
	perfPanel      *ui.PerfPanel
	controls       *ui.ControlsPanel
	controlsState  ui.ControlsState
	controlsEvents ui.ControlsEvents // from the last Draw, applied on the next Update
	overlays       *ui.OverlayRegistry

	// Interaction
	mode      Mode
	grabDepth float64
	dragging  bool

	// State
	tick           int32
	paused         bool
	headless       bool
	stepsPerUpdate int
	seed           int64

	screenWidth  float32
	screenHeight float32

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	logStats         bool
	snapshotDir      string
	lastStats        telemetry.WindowStats

	// Called after each telemetry window flush, if set
	statsCallback func(telemetry.WindowStats)
}

// NewGameWithOptions creates a game from the global config.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	grid, err := cloth.New(cfg.ClothParams())
	if err != nil {
		return nil, fmt.Errorf("creating cloth: %w", err)
	}

	world := ecs.NewWorld()

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	g := &Game{
		grid:             grid,
		world:            world,
		colliders:        systems.NewColliderSystem(world, cfg.Scene),
		wind:             systems.NewWindSystem(cfg.Wind, opts.Seed),
		registry:         systems.NewSystemRegistry(),
		mode:             ParseMode(cfg.Interaction.Mode),
		headless:         opts.Headless,
		stepsPerUpdate:   steps,
		seed:             opts.Seed,
		screenWidth:      cfg.Derived.ScreenW32,
		screenHeight:     cfg.Derived.ScreenH32,
		collector:        telemetry.NewCollector(statsWindow, cfg.Physics.DT),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		bookmarkDetector: telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistorySize, cfg.Bookmarks),
		logStats:         opts.LogStats,
		snapshotDir:      opts.SnapshotDir,
	}
	grid.OnDestroy = g.onDestroy

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	if !opts.Headless {
		g.initViewer(cfg)
	}

	if opts.LoadSnapshot != "" {
		if err := g.loadSnapshot(opts.LoadSnapshot); err != nil {
			g.Unload()
			return nil, err
		}
	}

	slog.Info("cloth generated",
		"width", cfg.Cloth.Width,
		"height", cfg.Cloth.Height,
		"particles", grid.LiveCount(),
		"triangles", len(grid.Triangles())/3,
		"colliders", g.colliders.Count(),
	)

	return g, nil
}

// initViewer creates the camera, renderers and UI.
func (g *Game) initViewer(cfg *config.Config) {
	c := cfg.Camera
	g.camera = camera.New(c.Position.R3(), c.Yaw, c.Pitch, c.FOV)
	if c.MoveSpeed > 0 {
		g.camera.MoveSpeed = c.MoveSpeed
	}
	if c.LookSpeed > 0 {
		g.camera.LookSpeed = c.LookSpeed
	}
	if c.PitchLimit > 0 {
		g.camera.PitchLimit = c.PitchLimit
	}

	g.clothRenderer = renderer.NewClothRenderer()
	g.clothRenderer.Attach(g.grid)
	g.sceneRenderer = renderer.NewSceneRenderer()

	w, h := int32(g.screenWidth), int32(g.screenHeight)
	g.inspector = inspector.NewInspector(w, h)
	g.healthPanel = inspector.NewHealthPanel(w, h)
	g.hud = ui.NewHUD()
	g.perfPanel = ui.NewPerfPanel(250, 10)
	g.overlays = ui.NewOverlayRegistry()
	g.overlays.SetEnabled(ui.OverlayPins, true)
	g.overlays.SetEnabled(ui.OverlayColliders, true)
	g.overlays.SetEnabled(ui.OverlayWind, true)

	g.controls = ui.NewControlsPanel(10, 10, 220, ModeNames(), colliderChoices)
	g.controlsState = ui.ControlsState{
		Mode:        int32(g.mode),
		Collider:    int32(g.colliders.Active()),
		WindEnabled: g.wind.Enabled,
		WindSpeed:   float32(g.wind.Speed()),
		WindPitch:   float32(cfg.Wind.Pitch),
		WindYaw:     float32(cfg.Wind.Yaw),
		Width:       float32(cfg.Cloth.Width),
		Height:      float32(cfg.Cloth.Height),
		Cell:        float32(cfg.Cloth.CellX),
	}
}

// colliderChoices lists dropdown entries in collider.Kind order.
var colliderChoices = []string{
	collider.KindNone.String(),
	collider.KindSphere.String(),
	collider.KindCapsule.String(),
}

// Update handles input and runs stepsPerUpdate simulation ticks unless paused.
func (g *Game) Update() {
	g.handleInput()

	if !g.paused {
		for i := 0; i < g.stepsPerUpdate; i++ {
			g.step()
		}
	}

	g.clothRenderer.Update(g.grid)
	g.perfCollector.RecordFrame()
}

// UpdateHeadless runs stepsPerUpdate ticks without input or rendering.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
}

// Regenerate rebuilds the cloth with params, keeping scene and telemetry
// configuration. Selections and grabs from the old cloth become stale.
func (g *Game) Regenerate(params cloth.Params) error {
	if err := g.grid.Generate(params); err != nil {
		return err
	}
	g.dragging = false
	g.bookmarkDetector.Reset()
	g.record(telemetry.NewRegenerateEvent(g.tick))
	if g.healthPanel != nil {
		g.healthPanel.Reset()
	}
	if g.clothRenderer != nil {
		g.clothRenderer.Attach(g.grid)
	}
	slog.Info("cloth regenerated",
		"tick", g.tick,
		"width", params.Width,
		"height", params.Height,
		"generation", g.grid.Generation(),
	)
	return nil
}

// Grid returns the simulated cloth.
func (g *Game) Grid() *cloth.Grid {
	return g.grid
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// SetStatsCallback registers fn to receive every flushed window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// Unload releases all resources.
func (g *Game) Unload() {
	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
		g.outputManager = nil
	}
}

// record counts e in the current window and queues it for events.csv.
func (g *Game) record(e telemetry.Event) {
	g.collector.Record(e)
	g.outputManager.RecordEvent(e)
}

func (g *Game) onDestroy(e cloth.DestroyEvent) {
	g.record(telemetry.NewDestroyEvent(g.tick, e))
	if e.Cause == cloth.CauseManual {
		slog.Debug("particle torn", "index", e.Index, "cell_x", e.CellX, "cell_y", e.CellY)
	}
}
