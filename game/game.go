// Package game wires the simulation to a raylib window or a headless loop.
package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/aquarium/config"
	"github.com/pthm-cable/aquarium/renderer"
	"github.com/pthm-cable/aquarium/sim"
	"github.com/pthm-cable/aquarium/telemetry"
	"github.com/pthm-cable/aquarium/ui"
)

// maxFrameDT caps the graphical step after a stall (window drag, breakpoint)
// so agents cannot tunnel far past a wall in one tick.
const maxFrameDT = 0.1

// Options configures game initialization.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool
	StepsPerUpdate int
}

// Game holds the complete application state around one Sim.
type Game struct {
	cfg *config.Config
	sim *sim.Sim
	run telemetry.RunInfo

	// Graphics (nil when headless)
	input    *rlInput
	scene    *renderer.Context
	hud      *ui.HUD
	overlays *ui.OverlayRegistry
	controls *ui.ControlsPanel
	school   *ui.SchoolStatsPanel
	perfUI   *ui.PerfPanel
	tuning   *ui.TuningPanel

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	statsCallback func(telemetry.WindowStats)
	logStats      bool

	// State
	headless       bool
	stepsPerUpdate int
	lastStep       sim.StepStats
	lastWindow     telemetry.WindowStats
	cursorMode     cursorState

	// Window dimensions
	screenWidth, screenHeight float32
}

// NewGameWithOptions creates a game from the global config. Graphical mode
// requires an open raylib window.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	s, err := sim.New(cfg, opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("creating simulation: %w", err)
	}

	run, err := telemetry.NewRunInfo(cfg, opts.Seed, opts.Headless)
	if err != nil {
		return nil, err
	}

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	stepsPerUpdate := opts.StepsPerUpdate
	if stepsPerUpdate < 1 {
		stepsPerUpdate = 1
	}

	g := &Game{
		cfg:            cfg,
		sim:            s,
		run:            run,
		collector:      telemetry.NewCollector(run, statsWindow),
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		logStats:       opts.LogStats,
		headless:       opts.Headless,
		stepsPerUpdate: stepsPerUpdate,
		screenWidth:    float32(cfg.Screen.Width),
		screenHeight:   float32(cfg.Screen.Height),
	}
	s.SetPerf(g.perfCollector)

	g.outputManager, err = telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if err := g.outputManager.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}
	if err := g.outputManager.WriteRun(run); err != nil {
		slog.Error("failed to write run info", "error", err)
	}

	if !opts.Headless {
		if err := g.initGraphics(); err != nil {
			g.outputManager.Close()
			return nil, err
		}
	}

	slog.Info("game_created",
		"run", run,
		"agents", s.Count(),
		"headless", opts.Headless,
		"output_dir", g.outputManager.Dir(),
	)
	return g, nil
}

// initGraphics loads GPU resources and builds the UI panels.
func (g *Game) initGraphics() error {
	scene, err := renderer.Load(g.cfg)
	if err != nil {
		return fmt.Errorf("loading renderer: %w", err)
	}
	g.scene = scene
	g.input = newRLInput()
	g.hud = ui.NewHUD()
	g.overlays = ui.NewOverlayRegistry()
	g.controls = ui.NewControlsPanel(10, 100, 220)
	g.school = ui.NewSchoolStatsPanel(10, 100, 220)
	g.perfUI = ui.NewPerfPanel(int32(g.screenWidth)-270, 10)
	g.tuning = ui.NewTuningPanel(int32(g.screenWidth)-270, 130, 260)
	g.cursorMode = cursorUnknown
	return nil
}

// SetStatsCallback registers fn to receive every flushed stats window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// Update runs one graphical frame: input, then one sim update with the
// frame's wall-clock dt.
func (g *Game) Update() {
	g.perfCollector.RecordFrame()
	g.handleInput()

	dt := frameTime()
	if dt > maxFrameDT {
		dt = maxFrameDT
	}

	g.perfCollector.StartTick()
	stats := g.sim.Update(dt, g.input)
	if !g.sim.Paused() {
		g.afterStep(stats, dt)
	}
	g.perfCollector.EndTick()

	g.syncCursor()
}

// UpdateHeadless runs StepsPerUpdate fixed-dt ticks against the scripted
// sweeping threat.
func (g *Game) UpdateHeadless() {
	dt := g.cfg.Derived.DT32
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.perfCollector.StartTick()
		g.perfCollector.StartPhase(telemetry.PhaseThreat)
		threat := sim.SweepThreat(g.sim.Time(), g.cfg.Telemetry.SweepPeriod, g.sim.Bounds(), g.cfg.Derived.Epsilon32)
		stats := g.sim.Step(dt, threat)
		g.afterStep(stats, dt)
		g.perfCollector.EndTick()
	}
}

// Sim exposes the underlying simulation.
func (g *Game) Sim() *sim.Sim {
	return g.sim
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.sim.Tick()
}

// Run returns the run identity.
func (g *Game) Run() telemetry.RunInfo {
	return g.run
}

// Unload releases GPU resources and closes output files.
func (g *Game) Unload() {
	if g.scene != nil {
		g.scene.Unload()
		g.scene = nil
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
