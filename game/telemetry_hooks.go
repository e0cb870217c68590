package game

import (
	"log/slog"

	"github.com/pthm-cable/aquarium/sim"
	"github.com/pthm-cable/aquarium/telemetry"
)

// afterStep records one tick of dt seconds and flushes the stats window
// once it covers the configured span of simulated time.
func (g *Game) afterStep(stats sim.StepStats, dt float32) {
	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)

	g.lastStep = stats
	g.collector.RecordTick(telemetry.TickCounts{
		DT:           dt,
		Fleeing:      stats.Fleeing,
		Bounced:      stats.Bounced,
		Respawned:    stats.Respawned,
		ThreatActive: g.sim.Threat().Active,
	})

	g.flushTelemetry()
}

// flushTelemetry checks if the stats window should be flushed and emits it.
func (g *Game) flushTelemetry() {
	tick := g.sim.Tick()
	if !g.collector.ShouldFlush() {
		return
	}

	stats := g.collector.Flush(tick, g.sampleSchool())
	perfStats := g.perfCollector.Stats()
	g.lastWindow = stats

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.RunID, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// sampleSchool collects per-agent speeds and distances to the current threat.
func (g *Game) sampleSchool() telemetry.Sample {
	s := g.sim.Sample(float64(g.sim.Params().FleeRadius))
	if g.headless {
		s.Mode = "sweep"
	}
	return s
}
