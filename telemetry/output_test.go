package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/drape/cloth"
	"github.com/pthm-cable/drape/config"
)

func TestOutputManager_Disabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	if om != nil {
		t.Fatal("empty dir should disable output")
	}

	// Nil manager accepts every call
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Errorf("WriteTelemetry on nil: %v", err)
	}
	if err := om.WriteBookmark(Bookmark{}); err != nil {
		t.Errorf("WriteBookmark on nil: %v", err)
	}
	om.RecordEvent(NewRegenerateEvent(0))
	if err := om.Close(); err != nil {
		t.Errorf("Close on nil: %v", err)
	}
	if om.Dir() != "" {
		t.Error("nil manager should have empty Dir")
	}
}

func TestOutputManager_WritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	for i := int32(1); i <= 3; i++ {
		if err := om.WriteTelemetry(WindowStats{WindowEndTick: i * 60, Live: 100, Total: 121}); err != nil {
			t.Fatalf("WriteTelemetry: %v", err)
		}
	}
	if err := om.WriteBookmark(Bookmark{Type: BookmarkSettled, Tick: 180, Description: "calm"}); err != nil {
		t.Fatalf("WriteBookmark: %v", err)
	}
	if err := om.WritePerf(PerfStats{}, 180); err != nil {
		t.Fatalf("WritePerf: %v", err)
	}
	cfg, err := config.Defaults()
	if err != nil {
		t.Fatalf("Defaults: %v", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatalf("read telemetry.csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("telemetry.csv has %d lines, want header + 3", len(lines))
	}
	if !strings.HasPrefix(lines[0], "window_end,sim_time,live") {
		t.Errorf("unexpected header %q", lines[0])
	}

	data, err = os.ReadFile(filepath.Join(dir, "bookmarks.csv"))
	if err != nil {
		t.Fatalf("read bookmarks.csv: %v", err)
	}
	if !strings.Contains(string(data), "settled,180,calm") {
		t.Errorf("bookmark row missing: %q", data)
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config.yaml not written: %v", err)
	}
}

func TestOutputManager_EventsFlushWithTelemetry(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	om.RecordEvent(NewDestroyEvent(5, cloth.DestroyEvent{Index: 7, Cause: cloth.CauseTear}))
	om.RecordEvent(NewInteractionEvent(6, EventPin, 3))

	path := filepath.Join(dir, "events.csv")
	if data, _ := os.ReadFile(path); len(data) != 0 {
		t.Errorf("events written before the window flushed: %q", data)
	}

	if err := om.WriteTelemetry(WindowStats{WindowEndTick: 10}); err != nil {
		t.Fatalf("WriteTelemetry: %v", err)
	}
	om.RecordEvent(NewRegenerateEvent(12))
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read events.csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("events.csv has %d lines, want header + 3: %q", len(lines), data)
	}
	if lines[0] != "tick,type,index,cause" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "5,destroy,7,tear" {
		t.Errorf("destroy row = %q", lines[1])
	}
	if lines[3] != "12,regenerate,-1," {
		t.Errorf("regenerate row = %q", lines[3])
	}
}
