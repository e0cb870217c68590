package telemetry

// Collector accumulates per-tick counts within windows of simulated time and
// produces WindowStats. Time advances by each tick's own dt, so windows stay
// the configured length whether ticks are fixed or follow the frame clock.
type Collector struct {
	runID             string
	windowDurationSec float64

	// Current window tracking
	windowStartTick int32
	windowElapsed   float64
	simTime         float64

	// Counters for current window
	ticks       int
	threatTicks int
	fleeingSum  int
	fleeingPeak int
	bounces     int
	respawns    int
}

// TickCounts is the per-tick summary fed to the collector.
type TickCounts struct {
	DT           float32 // seconds simulated by this tick
	Fleeing      int
	Bounced      int
	Respawned    int
	ThreatActive bool
}

// windowSlack absorbs float rounding when summing many small dts.
const windowSlack = 1e-9

// NewCollector creates a collector that closes a window every
// windowDurationSec simulated seconds. A non-positive duration closes a
// window after every tick.
func NewCollector(run RunInfo, windowDurationSec float64) *Collector {
	return &Collector{
		runID:             run.ID.String(),
		windowDurationSec: windowDurationSec,
	}
}

// RecordTick adds one tick's counts and duration to the current window.
func (c *Collector) RecordTick(tc TickCounts) {
	c.ticks++
	c.windowElapsed += float64(tc.DT)
	c.simTime += float64(tc.DT)
	if tc.ThreatActive {
		c.threatTicks++
	}
	c.fleeingSum += tc.Fleeing
	if tc.Fleeing > c.fleeingPeak {
		c.fleeingPeak = tc.Fleeing
	}
	c.bounces += tc.Bounced
	c.respawns += tc.Respawned
}

// ShouldFlush reports whether the current window has covered its duration.
func (c *Collector) ShouldFlush() bool {
	return c.ticks > 0 && c.windowElapsed+windowSlack >= c.windowDurationSec
}

// Sample is the end-of-window snapshot of the school.
type Sample struct {
	Mode       string
	Agents     int
	Speeds     []float64
	RayDists   []float64 // empty when the threat is inactive
	FleeRadius float64
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, s Sample) WindowStats {
	var threatFrac, fleeingMean, fleeFrac float64
	if c.ticks > 0 {
		threatFrac = float64(c.threatTicks) / float64(c.ticks)
		fleeingMean = float64(c.fleeingSum) / float64(c.ticks)
	}
	if s.Agents > 0 {
		fleeFrac = fleeingMean / float64(s.Agents)
	}

	speedMean, speedStd, speedP50, speedP90, speedMax := ComputeSpeedStats(s.Speeds)
	rayMean, rayMin, nearFrac := ComputeRayStats(s.RayDists, s.FleeRadius)

	stats := WindowStats{
		RunID:           c.runID,
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      c.simTime,
		WindowSec:       c.windowElapsed,
		Mode:            s.Mode,

		Agents: s.Agents,

		ThreatTicks:  c.threatTicks,
		ThreatFrac:   threatFrac,
		FleeingMean:  fleeingMean,
		FleeingPeak:  c.fleeingPeak,
		Bounces:      c.bounces,
		Respawns:     c.respawns,
		FleeFraction: fleeFrac,

		SpeedMean: speedMean,
		SpeedStd:  speedStd,
		SpeedP50:  speedP50,
		SpeedP90:  speedP90,
		SpeedMax:  speedMax,

		RayDistMean: rayMean,
		RayDistMin:  rayMin,
		NearRayFrac: nearFrac,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.windowElapsed = 0
	c.ticks = 0
	c.threatTicks = 0
	c.fleeingSum = 0
	c.fleeingPeak = 0
	c.bounces = 0
	c.respawns = 0

	return stats
}
