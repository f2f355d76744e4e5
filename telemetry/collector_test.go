package telemetry

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drape/cloth"
)

func TestCollector_WindowTicks(t *testing.T) {
	c := NewCollector(1.0, 1.0/60)
	if got := c.WindowDurationTicks(); got != 60 {
		t.Errorf("WindowDurationTicks() = %d, want 60", got)
	}
	if c.ShouldFlush(59) {
		t.Error("should not flush before a full window")
	}
	if !c.ShouldFlush(60) {
		t.Error("should flush after a full window")
	}

	// Tiny windows still cover one tick
	if got := NewCollector(0.001, 1.0/60).WindowDurationTicks(); got != 1 {
		t.Errorf("WindowDurationTicks() = %d, want 1", got)
	}
}

func TestCollector_CountsAndResets(t *testing.T) {
	c := NewCollector(1.0, 0.5)

	c.Record(NewDestroyEvent(1, cloth.DestroyEvent{Index: 3, Cause: cloth.CauseTear}))
	c.Record(NewDestroyEvent(1, cloth.DestroyEvent{Index: 4, Cause: cloth.CauseCascade}))
	c.Record(NewDestroyEvent(1, cloth.DestroyEvent{Index: 5, Cause: cloth.CauseCascade}))
	c.Record(NewDestroyEvent(2, cloth.DestroyEvent{Index: 6, Cause: cloth.CauseBurn}))
	c.Record(NewInteractionEvent(2, EventGrab, 7))
	c.Record(NewInteractionEvent(2, EventRelease, 7))
	c.Record(NewInteractionEvent(2, EventIgnite, 8))
	c.RecordStep(cloth.StepStats{Degenerate: 2})

	stats := c.Flush(2, Sample{Live: 10, Total: 16, Speeds: []float64{1, 3}})

	if stats.Tears != 1 || stats.Cascades != 2 || stats.Burns != 1 || stats.Manual != 0 {
		t.Errorf("removals = %d/%d/%d/%d, want 1/2/0/1", stats.Tears, stats.Cascades, stats.Manual, stats.Burns)
	}
	if stats.Grabs != 1 || stats.Ignitions != 1 {
		t.Errorf("grabs=%d ignitions=%d, want 1/1", stats.Grabs, stats.Ignitions)
	}
	if stats.Degenerate != 2 {
		t.Errorf("degenerate = %d, want 2", stats.Degenerate)
	}
	if stats.SpeedMean != 2 || stats.SpeedMax != 3 {
		t.Errorf("speed mean/max = %v/%v, want 2/3", stats.SpeedMean, stats.SpeedMax)
	}
	if stats.SimTimeSec != 1 {
		t.Errorf("SimTimeSec = %v, want 1", stats.SimTimeSec)
	}

	next := c.Flush(4, Sample{})
	if next.WindowStartTick != 2 {
		t.Errorf("WindowStartTick = %d, want 2", next.WindowStartTick)
	}
	if next.Removed() != 0 || next.Grabs != 0 || next.Degenerate != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
}

func TestSampleGrid(t *testing.T) {
	params := cloth.DefaultParams()
	params.Width, params.Height = 2, 2
	params.Origin = r3.Vec{Y: 1}

	g, err := cloth.New(params)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	s := SampleGrid(g, 1.0/60)

	if s.Live != 9 || s.Total != 9 {
		t.Errorf("live/total = %d/%d, want 9/9", s.Live, s.Total)
	}
	if s.Triangles != 8 {
		t.Errorf("Triangles = %d, want 8", s.Triangles)
	}
	if len(s.Speeds) != 9 {
		t.Errorf("len(Speeds) = %d, want 9", len(s.Speeds))
	}
	for _, v := range s.Speeds {
		if v != 0 {
			t.Errorf("fresh cloth should be at rest, got speed %v", v)
		}
	}
}

func TestCollector_ResetStartsWindowAtTick(t *testing.T) {
	c := NewCollector(1.0, 0.1)
	c.Record(NewDestroyEvent(3, cloth.DestroyEvent{Cause: cloth.CauseManual}))

	c.Reset(500)

	if c.ShouldFlush(505) {
		t.Error("window restarted at 500 should not flush at 505")
	}
	if !c.ShouldFlush(510) {
		t.Error("window restarted at 500 should flush at 510")
	}
	if s := c.Flush(510, Sample{}); s.Manual != 0 || s.WindowStartTick != 500 {
		t.Errorf("after reset: manual=%d start=%d, want 0/500", s.Manual, s.WindowStartTick)
	}
}
