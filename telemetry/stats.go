package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	RunID           string  `csv:"run_id"`
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`   // simulated seconds at window end
	WindowSec       float64 `csv:"window_sec"` // simulated seconds covered by the window
	Mode            string  `csv:"mode"`

	// School size at window end
	Agents int `csv:"agents"`

	// Events during window
	ThreatTicks  int     `csv:"threat_ticks"`  // ticks with an active threat
	ThreatFrac   float64 `csv:"threat_frac"`   // ThreatTicks / window ticks
	FleeingMean  float64 `csv:"fleeing_mean"`  // mean fleeing agents per tick
	FleeingPeak  int     `csv:"fleeing_peak"`  // most agents fleeing in a single tick
	Bounces      int     `csv:"bounces"`       // agent-ticks with a wall reflection
	Respawns     int     `csv:"respawns"`      // degenerate velocities replaced
	FleeFraction float64 `csv:"flee_fraction"` // FleeingMean / Agents

	// Speed distribution (sampled at window end)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
	SpeedMax  float64 `csv:"speed_max"`

	// Distance to the threat ray (sampled at window end, zero when inactive)
	RayDistMean float64 `csv:"ray_dist_mean"`
	RayDistMin  float64 `csv:"ray_dist_min"`
	NearRayFrac float64 `csv:"near_ray_frac"` // fraction within the flee radius
}

// BouncesPerSec returns wall reflections per simulated second over the window.
func (s WindowStats) BouncesPerSec() float64 {
	if s.WindowSec <= 0 {
		return 0
	}
	return float64(s.Bounces) / s.WindowSec
}

// Percentile returns the p-th empirical quantile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[len(sorted)-1]
	}
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// ComputeSpeedStats calculates mean, sample std, median, p90 and max.
func ComputeSpeedStats(values []float64) (mean, std, p50, p90, max float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	if n > 1 {
		mean, std = stat.MeanStdDev(sorted, nil)
	} else {
		mean = sorted[0]
	}
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)
	max = sorted[n-1]

	return mean, std, p50, p90, max
}

// ComputeRayStats calculates the mean and minimum distance to the threat ray
// and the fraction of samples strictly inside radius.
func ComputeRayStats(dists []float64, radius float64) (mean, min, nearFrac float64) {
	if len(dists) == 0 {
		return 0, 0, 0
	}

	near := 0
	for _, d := range dists {
		if d < radius {
			near++
		}
	}
	return stat.Mean(dists, nil), floats.Min(dists), float64(near) / float64(len(dists))
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("run_id", s.RunID),
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Float64("window_sec", s.WindowSec),
		slog.String("mode", s.Mode),
		slog.Int("agents", s.Agents),
		slog.Int("threat_ticks", s.ThreatTicks),
		slog.Float64("threat_frac", s.ThreatFrac),
		slog.Float64("fleeing_mean", s.FleeingMean),
		slog.Int("fleeing_peak", s.FleeingPeak),
		slog.Int("bounces", s.Bounces),
		slog.Int("respawns", s.Respawns),
		slog.Float64("flee_fraction", s.FleeFraction),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("speed_max", s.SpeedMax),
		slog.Float64("ray_dist_mean", s.RayDistMean),
		slog.Float64("ray_dist_min", s.RayDistMin),
		slog.Float64("near_ray_frac", s.NearRayFrac),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"mode", s.Mode,
		"agents", s.Agents,
		"threat_frac", s.ThreatFrac,
		"fleeing_mean", s.FleeingMean,
		"fleeing_peak", s.FleeingPeak,
		"bounces", s.Bounces,
		"respawns", s.Respawns,
		"speed_mean", s.SpeedMean,
		"speed_p90", s.SpeedP90,
		"speed_max", s.SpeedMax,
		"ray_dist_mean", s.RayDistMean,
		"near_ray_frac", s.NearRayFrac,
	)
}
