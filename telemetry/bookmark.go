package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/drape/config"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkSettled   BookmarkType = "settled"
	BookmarkTearBurst BookmarkType = "tear_burst"
	BookmarkShredded  BookmarkType = "shredded"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type" json:"type"`
	Tick        int32        `csv:"tick" json:"tick"`
	Description string       `csv:"description" json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in the simulation.
type BookmarkDetector struct {
	cfg config.BookmarksConfig

	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	settledWindows int  // consecutive windows below the settle speed
	shredded       bool // shredded already reported for this cloth
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int, cfg config.BookmarksConfig) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3 // minimum for a meaningful removal average
	}
	return &BookmarkDetector{
		cfg:         cfg,
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	// Tear burst: removals well above the rolling average
	if b := bd.checkTearBurst(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	// Settled: p95 speed stays low for several windows
	if b := bd.checkSettled(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	// Shredded: most of the cloth is gone
	if b := bd.checkShredded(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)

	return bookmarks
}

// Reset clears history, used when the cloth is regenerated.
func (bd *BookmarkDetector) Reset() {
	bd.historyIdx = 0
	bd.historyFull = false
	bd.settledWindows = 0
	bd.shredded = false
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkTearBurst(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	removed := stats.Removed()
	if removed < bd.cfg.TearBurst.MinRemoved {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.Removed()
	}
	avg := float64(total) / float64(len(history))

	if float64(removed) > avg*bd.cfg.TearBurst.Multiplier {
		return &Bookmark{
			Type:        BookmarkTearBurst,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d particles removed, rolling average %.1f", removed, avg),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkSettled(stats WindowStats) *Bookmark {
	if stats.Live == 0 || stats.SpeedP95 >= bd.cfg.Settled.MaxSpeed {
		bd.settledWindows = 0
		return nil
	}

	bd.settledWindows++
	if bd.settledWindows == bd.cfg.Settled.StableWindows { // trigger exactly once
		return &Bookmark{
			Type:        BookmarkSettled,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("p95 speed %.4f below %.4f for %d windows", stats.SpeedP95, bd.cfg.Settled.MaxSpeed, bd.settledWindows),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkShredded(stats WindowStats) *Bookmark {
	frac := stats.LiveFraction()
	if frac >= bd.cfg.Shredded.LiveFraction {
		bd.shredded = false
		return nil
	}
	if bd.shredded {
		return nil
	}

	bd.shredded = true
	return &Bookmark{
		Type:        BookmarkShredded,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%d of %d particles left (%.0f%%)", stats.Live, stats.Total, frac*100),
	}
}
