package game

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drape/config"
	"github.com/pthm-cable/drape/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	sample := telemetry.SampleGrid(g.grid, config.Cfg().Physics.DT)
	sample.Wind = r3.Norm(g.wind.Last())

	stats := g.collector.Flush(g.tick, sample)
	perfStats := g.perfCollector.Stats()
	g.lastStats = stats

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}
	if g.healthPanel != nil {
		g.healthPanel.Update(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if err := g.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
		if g.snapshotDir != "" {
			g.saveSnapshot(&bm)
		}
	}
}

// saveSnapshot captures the cloth and writes it to the snapshot directory.
func (g *Game) saveSnapshot(bookmark *telemetry.Bookmark) {
	dir := g.snapshotDir
	if dir == "" {
		dir = "snapshots"
	}

	snapshot := telemetry.CaptureSnapshot(g.grid, g.seed, g.tick, bookmark)
	path, err := telemetry.SaveSnapshot(snapshot, dir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}

	slog.Info("snapshot saved", "path", path, "tick", g.tick, "live", g.grid.LiveCount())
}

// loadSnapshot restores the cloth from a snapshot file and resumes at its tick.
func (g *Game) loadSnapshot(path string) error {
	snapshot, err := telemetry.LoadSnapshot(path)
	if err != nil {
		return fmt.Errorf("loading snapshot: %w", err)
	}
	if err := snapshot.Apply(g.grid); err != nil {
		return fmt.Errorf("applying snapshot %s: %w", path, err)
	}

	g.tick = snapshot.Tick
	g.collector.Reset(g.tick)
	g.bookmarkDetector.Reset()
	if g.clothRenderer != nil {
		g.clothRenderer.Attach(g.grid)
	}

	slog.Info("snapshot loaded",
		"path", path,
		"tick", snapshot.Tick,
		"seed", snapshot.Seed,
		"live", g.grid.LiveCount(),
	)
	return nil
}
