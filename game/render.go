package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/aquarium/sim"
	"github.com/pthm-cable/aquarium/systems"
	"github.com/pthm-cable/aquarium/ui"
)

// rayDrawLength is how far the threat ray line extends from its origin.
const rayDrawLength = 50

// Draw renders the scene and the UI for the current frame.
func (g *Game) Draw() {
	rl.BeginDrawing()

	cam := g.sim.Camera()
	epsilon := g.cfg.Derived.Epsilon32

	g.scene.Begin(cam)
	g.sim.EachAgent(func(a sim.Agent) {
		g.scene.Draw(systems.ModelTransform(a.Position, a.Velocity, a.Size, epsilon))
	})
	if g.overlays.IsEnabled(ui.OverlayTank) {
		g.scene.DrawBounds(g.sim.Bounds())
	}
	if g.overlays.IsEnabled(ui.OverlayRay) {
		g.scene.DrawThreat(g.sim.Threat(), rayDrawLength)
	}
	g.scene.End()

	g.drawUI()

	rl.EndDrawing()
}

// drawUI renders the 2D panels over the scene.
func (g *Game) drawUI() {
	w, h := int32(g.screenWidth), int32(g.screenHeight)

	g.hud.Draw(ui.HUDData{
		Title:        "Aquarium",
		Agents:       g.sim.Count(),
		Fleeing:      g.lastStep.Fleeing,
		Tick:         g.sim.Tick(),
		FPS:          rl.GetFPS(),
		Mode:         g.sim.Mode().String(),
		Paused:       g.sim.Paused(),
		ScreenWidth:  w,
		ScreenHeight: h,
	})
	g.hud.DrawControls(w, h, controlsLegend)

	y := g.controls.Draw(g.overlays)
	if g.overlays.IsEnabled(ui.OverlayStats) {
		g.school.SetPosition(10, y+10)
		g.school.Draw(g.schoolStats())
	}
	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.perfUI.Draw(g.perfCollector.Stats())
	}
	if g.overlays.IsEnabled(ui.OverlayTuning) {
		g.applyTuning(g.tuning.Draw(g.sim.Params(), g.sim.Mode().String()))
	}
}

// applyTuning pushes slider edits and button presses back into the sim.
func (g *Game) applyTuning(res ui.TuningResult) {
	switch {
	case res.ResetDefaults:
		g.sim.SetParams(systems.SteeringParamsFromConfig(g.cfg))
	case res.Changed:
		g.sim.SetParams(res.Params)
	}
	if res.ToggleCamera {
		g.sim.Camera().Toggle(g.input.PointerPosition())
	}
}

// schoolStats summarizes the school for the stats panel.
func (g *Game) schoolStats() ui.SchoolStatsData {
	var sum, max float32
	n := 0
	g.sim.EachAgent(func(a sim.Agent) {
		s := a.Velocity.Len()
		sum += s
		if s > max {
			max = s
		}
		n++
	})

	data := ui.SchoolStatsData{
		Agents:       n,
		Fleeing:      g.lastStep.Fleeing,
		MaxSpeed:     max,
		ThreatActive: g.sim.Threat().Active,
	}
	if n > 0 {
		data.MeanSpeed = sum / float32(n)
	}
	data.BouncesPerSec = float32(math.Round(g.lastWindow.BouncesPerSec()*10) / 10)
	return data
}
