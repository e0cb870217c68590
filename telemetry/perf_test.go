package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseCamera)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseSteering)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}
	if stats.PhaseAvg[PhaseCamera] <= 0 {
		t.Error("expected camera phase to be tracked")
	}
	if stats.PhaseAvg[PhaseSteering] <= 0 {
		t.Error("expected steering phase to be tracked")
	}
	if stats.PhaseAvg[PhaseThreat] != 0 {
		t.Errorf("threat phase never ran, got %v", stats.PhaseAvg[PhaseThreat])
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	// Overfill the ring
	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseCamera)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration after window filled")
	}
	if stats.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}
	if stats.MinTickDuration > stats.P95TickDuration || stats.P95TickDuration > stats.MaxTickDuration {
		t.Errorf("expected min <= p95 <= max, got %v %v %v",
			stats.MinTickDuration, stats.P95TickDuration, stats.MaxTickDuration)
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseCamera)
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase(PhaseSteering)
		time.Sleep(2 * time.Millisecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	fast := stats.PhasePct[PhaseCamera]
	slow := stats.PhasePct[PhaseSteering]
	if slow <= fast {
		t.Errorf("expected steering (%v%%) > camera (%v%%)", slow, fast)
	}
	if slow > 100.5 {
		t.Errorf("phase share cannot exceed the tick, got %v%%", slow)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	stats := NewPerfCollector(10).Stats()
	if stats.AvgTickDuration != 0 || stats.TicksPerSecond != 0 {
		t.Errorf("expected zero stats for empty collector, got %+v", stats)
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration < 15*time.Millisecond {
		t.Errorf("expected frame duration >= 15ms, got %v", stats.FrameDuration)
	}
	// Sleep overshoots, so only bound from above loosely
	if stats.FPS <= 0 || stats.FPS > 70 {
		t.Errorf("expected FPS in (0, 70] with 16ms frames, got %v", stats.FPS)
	}
}

func TestPhaseString(t *testing.T) {
	want := []string{"camera", "threat", "steering", "telemetry"}
	for i, ph := range Phases {
		if ph.String() != want[i] {
			t.Errorf("phase %d: got %q, want %q", i, ph.String(), want[i])
		}
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	var stats PerfStats
	stats.AvgTickDuration = 250 * time.Microsecond
	stats.P95TickDuration = 400 * time.Microsecond
	stats.PhasePct[PhaseCamera] = 10
	stats.PhasePct[PhaseSteering] = 85

	row := stats.ToCSV("run-1", 600)
	if row.RunID != "run-1" || row.WindowEnd != 600 {
		t.Errorf("unexpected identity columns: %+v", row)
	}
	if row.AvgTickUS != 250 || row.P95TickUS != 400 {
		t.Errorf("unexpected tick columns: %+v", row)
	}
	if row.CameraPct != 10 || row.SteeringPct != 85 || row.ThreatPct != 0 {
		t.Errorf("unexpected phase columns: %+v", row)
	}
}
