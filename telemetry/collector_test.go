package telemetry

import (
	"math"
	"testing"

	"github.com/google/uuid"
)

func testRun() RunInfo {
	return RunInfo{ID: uuid.MustParse("7f1d2c3b-0000-4000-8000-000000000001"), Seed: 42}
}

func TestCollector_ShouldFlush(t *testing.T) {
	c := NewCollector(testRun(), 1.0)
	if c.ShouldFlush() {
		t.Error("empty window should not flush")
	}
	for i := 0; i < 3; i++ {
		c.RecordTick(TickCounts{DT: 0.25})
	}
	if c.ShouldFlush() {
		t.Error("should not flush before the window is full")
	}
	c.RecordTick(TickCounts{DT: 0.25})
	if !c.ShouldFlush() {
		t.Error("should flush once the window is full")
	}

	// Non-positive windows close after every tick
	d := NewCollector(testRun(), 0)
	d.RecordTick(TickCounts{DT: 0.01})
	if !d.ShouldFlush() {
		t.Error("expected zero-length window to flush after one tick")
	}
}

func TestCollector_VariableDT(t *testing.T) {
	tests := []struct {
		name  string
		dt    float32
		ticks int // ticks needed to cover 10s
	}{
		{"60fps", 1.0 / 60, 600},
		{"144fps", 1.0 / 144, 1440},
		{"30fps", 1.0 / 30, 300},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCollector(testRun(), 10)
			n := 0
			for !c.ShouldFlush() {
				c.RecordTick(TickCounts{DT: tc.dt, Bounced: 1})
				n++
				if n > 10*tc.ticks {
					t.Fatal("window never closed")
				}
			}
			if n < tc.ticks-1 || n > tc.ticks+1 {
				t.Errorf("window closed after %d ticks, want about %d", n, tc.ticks)
			}

			stats := c.Flush(int32(n), Sample{})
			if math.Abs(stats.WindowSec-10) > 0.05 || math.Abs(stats.SimTimeSec-10) > 0.05 {
				t.Errorf("window %vs at sim time %vs, want about 10s", stats.WindowSec, stats.SimTimeSec)
			}
			// One bounce per tick, so bounces/s tracks the frame rate
			want := 1 / float64(tc.dt)
			if math.Abs(stats.BouncesPerSec()-want) > want*0.01 {
				t.Errorf("bounces/s %v, want about %v", stats.BouncesPerSec(), want)
			}
		})
	}
}

func TestCollector_MixedDT(t *testing.T) {
	c := NewCollector(testRun(), 1.0)
	for _, dt := range []float32{0.1, 0.05, 0.1, 0.25, 0.5} {
		c.RecordTick(TickCounts{DT: dt})
	}
	if !c.ShouldFlush() {
		t.Fatal("expected 1.0s window to be full")
	}
	first := c.Flush(5, Sample{})
	if math.Abs(first.WindowSec-1.0) > 1e-6 {
		t.Errorf("first window %v, want 1.0", first.WindowSec)
	}

	c.RecordTick(TickCounts{DT: 0.1})
	if c.ShouldFlush() {
		t.Error("window should restart after a flush")
	}
	second := c.Flush(6, Sample{})
	if math.Abs(second.SimTimeSec-1.1) > 1e-6 || math.Abs(second.WindowSec-0.1) > 1e-6 {
		t.Errorf("second window sim %v span %v, want 1.1 and 0.1", second.SimTimeSec, second.WindowSec)
	}
}

func TestCollector_Flush(t *testing.T) {
	c := NewCollector(testRun(), 1.0)

	c.RecordTick(TickCounts{DT: 0.25, Fleeing: 2, Bounced: 1, ThreatActive: true})
	c.RecordTick(TickCounts{DT: 0.25, Fleeing: 6, Respawned: 1, ThreatActive: true})
	c.RecordTick(TickCounts{DT: 0.25, Bounced: 3})
	c.RecordTick(TickCounts{DT: 0.25})

	stats := c.Flush(4, Sample{
		Mode:       "fixed",
		Agents:     10,
		Speeds:     []float64{0.2, 0.3, 0.4},
		RayDists:   []float64{0.5, 1.5},
		FleeRadius: 0.8,
	})

	if stats.RunID != "7f1d2c3b-0000-4000-8000-000000000001" {
		t.Errorf("unexpected run id %q", stats.RunID)
	}
	if stats.WindowStartTick != 0 || stats.WindowEndTick != 4 {
		t.Errorf("unexpected window [%d, %d]", stats.WindowStartTick, stats.WindowEndTick)
	}
	if stats.SimTimeSec != 1.0 || stats.WindowSec != 1.0 {
		t.Errorf("expected sim time and window 1.0, got %v and %v", stats.SimTimeSec, stats.WindowSec)
	}
	if stats.BouncesPerSec() != 4 {
		t.Errorf("bounces/s %v, want 4", stats.BouncesPerSec())
	}
	if stats.ThreatTicks != 2 || stats.ThreatFrac != 0.5 {
		t.Errorf("threat ticks %d frac %v, want 2 and 0.5", stats.ThreatTicks, stats.ThreatFrac)
	}
	if stats.FleeingMean != 2 || stats.FleeingPeak != 6 {
		t.Errorf("fleeing mean %v peak %d, want 2 and 6", stats.FleeingMean, stats.FleeingPeak)
	}
	if math.Abs(stats.FleeFraction-0.2) > 1e-9 {
		t.Errorf("flee fraction %v, want 0.2", stats.FleeFraction)
	}
	if stats.Bounces != 4 || stats.Respawns != 1 {
		t.Errorf("bounces %d respawns %d, want 4 and 1", stats.Bounces, stats.Respawns)
	}
	if stats.NearRayFrac != 0.5 || stats.RayDistMin != 0.5 {
		t.Errorf("near frac %v min %v", stats.NearRayFrac, stats.RayDistMin)
	}
	if stats.SpeedMax != 0.4 {
		t.Errorf("speed max %v, want 0.4", stats.SpeedMax)
	}

	// Counters reset for the next window
	next := c.Flush(8, Sample{})
	if next.WindowStartTick != 4 || next.Bounces != 0 || next.FleeingPeak != 0 || next.ThreatTicks != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
}
