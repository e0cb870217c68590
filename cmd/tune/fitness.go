package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/aquarium/config"
	"github.com/pthm-cable/aquarium/sim"
	"github.com/pthm-cable/aquarium/telemetry"
)

// FitnessEvaluator runs headless sweeps and scores how well the school keeps
// clear of the ray without sprinting everywhere.
type FitnessEvaluator struct {
	params      *ParamVector
	ticks       int32
	seeds       []int64
	baseConfig  *config.Config
	clearance   float64 // distance the near-ray fraction is measured against
	speedWeight float64
	statsWindow float64

	mu          sync.Mutex
	lastNear    float64
	lastSpeed   float64
	bestFitness float64
}

// NewFitnessEvaluator creates an evaluator. The clearance is fixed at the base
// flee radius so candidates cannot win by shrinking it.
func NewFitnessEvaluator(params *ParamVector, ticks int32, seeds []int64, baseCfg *config.Config, speedWeight float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		ticks:       ticks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		clearance:   baseCfg.Flee.Radius,
		speedWeight: speedWeight,
		statsWindow: baseCfg.Telemetry.StatsWindow,
		bestFitness: math.Inf(1),
	}
}

// LastScores returns the mean near-ray fraction and mean speed of the most
// recent evaluation.
func (fe *FitnessEvaluator) LastScores() (near, speed float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastNear, fe.lastSpeed
}

// runResult holds the window stats from one seed.
type runResult struct {
	windows []telemetry.WindowStats
	err     error
}

// Evaluate returns the fitness of raw parameter values (lower is better).
func (fe *FitnessEvaluator) Evaluate(raw []float64) float64 {
	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(raw, s)
		}(i, seed)
	}
	wg.Wait()

	var nears, speeds []float64
	for _, r := range results {
		if r.err != nil {
			return math.Inf(1)
		}
		for _, w := range r.windows {
			nears = append(nears, w.NearRayFrac)
			speeds = append(speeds, w.SpeedMean)
		}
	}
	if len(nears) == 0 {
		return math.Inf(1)
	}

	near := stat.Mean(nears, nil)
	speed := stat.Mean(speeds, nil)
	fitness := fe.computeFitness(near, speed)

	fe.mu.Lock()
	fe.lastNear, fe.lastSpeed = near, speed
	if fitness < fe.bestFitness {
		fe.bestFitness = fitness
	}
	fe.mu.Unlock()

	return fitness
}

// computeFitness weighs time spent near the ray against speed relative to
// the school's top cruise speed.
func (fe *FitnessEvaluator) computeFitness(near, speed float64) float64 {
	return near + fe.speedWeight*speed/fe.baseConfig.School.MaxSpeed
}

// runSimulation steps one sim against the sweeping threat and collects a
// stats window every statsWindow seconds.
func (fe *FitnessEvaluator) runSimulation(raw []float64, seed int64) runResult {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, raw)

	s, err := sim.New(cfg, seed)
	if err != nil {
		return runResult{err: err}
	}
	run, err := telemetry.NewRunInfo(cfg, seed, true)
	if err != nil {
		return runResult{err: err}
	}
	collector := telemetry.NewCollector(run, fe.statsWindow)

	var res runResult
	dt := cfg.Derived.DT32
	for s.Tick() < fe.ticks {
		threat := sim.SweepThreat(s.Time(), cfg.Telemetry.SweepPeriod, s.Bounds(), cfg.Derived.Epsilon32)
		step := s.Step(dt, threat)
		collector.RecordTick(telemetry.TickCounts{
			DT:           dt,
			Fleeing:      step.Fleeing,
			Bounced:      step.Bounced,
			Respawned:    step.Respawned,
			ThreatActive: threat.Active,
		})
		if collector.ShouldFlush() {
			sample := s.Sample(fe.clearance)
			sample.Mode = "sweep"
			res.windows = append(res.windows, collector.Flush(s.Tick(), sample))
		}
	}
	return res
}
