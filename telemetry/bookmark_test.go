package telemetry

import (
	"testing"

	"github.com/pthm-cable/drape/config"
)

func testBookmarksConfig() config.BookmarksConfig {
	return config.BookmarksConfig{
		Settled:   config.SettledConfig{MaxSpeed: 0.05, StableWindows: 3},
		TearBurst: config.TearBurstConfig{Multiplier: 3, MinRemoved: 5},
		Shredded:  config.ShreddedConfig{LiveFraction: 0.5},
	}
}

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_TearBurst(t *testing.T) {
	bd := NewBookmarkDetector(10, testBookmarksConfig())

	// Background of occasional tears
	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{
			WindowEndTick: int32(i * 60),
			Live:          100,
			Total:         100,
			Tears:         1,
			SpeedP95:      1,
		})
	}

	burst := WindowStats{
		WindowEndTick: 300,
		Live:          80,
		Total:         100,
		Tears:         6,
		Cascades:      4,
		SpeedP95:      1,
	}
	if !hasBookmark(bd.Check(burst), BookmarkTearBurst) {
		t.Error("expected tear_burst bookmark")
	}
}

func TestBookmarkDetector_TearBurstBelowMinimum(t *testing.T) {
	bd := NewBookmarkDetector(10, testBookmarksConfig())

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i * 60), Live: 100, Total: 100, SpeedP95: 1})
	}

	// Infinitely above a zero average but under MinRemoved
	small := WindowStats{WindowEndTick: 300, Live: 97, Total: 100, Tears: 3, SpeedP95: 1}
	if hasBookmark(bd.Check(small), BookmarkTearBurst) {
		t.Error("tear_burst should need at least MinRemoved removals")
	}
}

func TestBookmarkDetector_SettledOnce(t *testing.T) {
	bd := NewBookmarkDetector(10, testBookmarksConfig())

	count := 0
	for i := 0; i < 8; i++ {
		bms := bd.Check(WindowStats{
			WindowEndTick: int32(i * 60),
			Live:          100,
			Total:         100,
			SpeedP95:      0.01,
		})
		if hasBookmark(bms, BookmarkSettled) {
			count++
			if i != 2 {
				t.Errorf("settled fired at window %d, want 2", i)
			}
		}
	}
	if count != 1 {
		t.Errorf("settled fired %d times, want 1", count)
	}
}

func TestBookmarkDetector_SettledResetsOnMotion(t *testing.T) {
	bd := NewBookmarkDetector(10, testBookmarksConfig())

	speeds := []float64{0.01, 0.01, 2, 0.01, 0.01}
	for i, v := range speeds {
		bms := bd.Check(WindowStats{WindowEndTick: int32(i), Live: 100, Total: 100, SpeedP95: v})
		if hasBookmark(bms, BookmarkSettled) {
			t.Errorf("settled should not fire at window %d", i)
		}
	}
}

func TestBookmarkDetector_Shredded(t *testing.T) {
	bd := NewBookmarkDetector(10, testBookmarksConfig())

	if hasBookmark(bd.Check(WindowStats{Live: 60, Total: 100, SpeedP95: 1}), BookmarkShredded) {
		t.Error("60% live should not be shredded")
	}
	if !hasBookmark(bd.Check(WindowStats{Live: 40, Total: 100, SpeedP95: 1}), BookmarkShredded) {
		t.Error("expected shredded bookmark at 40% live")
	}
	if hasBookmark(bd.Check(WindowStats{Live: 30, Total: 100, SpeedP95: 1}), BookmarkShredded) {
		t.Error("shredded should fire once per cloth")
	}

	// A regenerated cloth re-arms the detector
	bd.Reset()
	bd.Check(WindowStats{Live: 100, Total: 100, SpeedP95: 1})
	if !hasBookmark(bd.Check(WindowStats{Live: 10, Total: 100, SpeedP95: 1}), BookmarkShredded) {
		t.Error("expected shredded bookmark after reset")
	}
}
