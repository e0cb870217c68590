package ui

import (
	"fmt"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/aquarium/systems"
	"github.com/pthm-cable/aquarium/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Agents       int
	Fleeing      int
	Tick         int32
	FPS          int32
	Mode         string
	Paused       bool
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Fish: %d | Fleeing: %d", data.Agents, data.Fleeing),
		10, 35, 16, rl.LightGray,
	)

	rl.DrawText(
		fmt.Sprintf("Tick: %d | FPS: %d | Camera: %s", data.Tick, data.FPS, data.Mode),
		10, 55, 16, rl.LightGray,
	)

	statusText := "Running"
	if data.Paused {
		statusText = "PAUSED"
	}
	rl.DrawText(statusText, 10, 75, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the per-phase timing panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	rl.DrawText("Frame Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Tick: %s p95 %s (%.0f/s)",
		stats.AvgTickDuration.Round(time.Microsecond),
		stats.P95TickDuration.Round(time.Microsecond),
		stats.TicksPerSecond), x, y, 14, rl.Yellow)
	y += 16

	for _, ph := range telemetry.Phases {
		avg := stats.PhaseAvg[ph]
		pct := stats.PhasePct[ph]

		color := rl.LightGray
		if pct > 60 {
			color = rl.Red
		} else if pct > 30 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", ph, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}

// TuningResult reports what the user changed in the tuning panel this frame.
type TuningResult struct {
	Params        systems.SteeringParams
	Changed       bool
	ToggleCamera  bool
	ResetDefaults bool
}

// TuningPanel exposes the flee parameters as sliders.
type TuningPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewTuningPanel creates a new tuning panel.
func NewTuningPanel(x, y, width int32) *TuningPanel {
	return &TuningPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (t *TuningPanel) SetPosition(x, y int32) {
	t.x = x
	t.y = y
}

// Draw renders the sliders and buttons and returns the edited params.
func (t *TuningPanel) Draw(params systems.SteeringParams, mode string) TuningResult {
	r := t.renderer
	padding := r.Theme.Padding
	inner := t.width - padding*2

	r.DrawPanel(t.x, t.y, t.width, 250)

	x := t.x + padding
	y := r.DrawSectionHeader(x, t.y+padding, "Flee Tuning")
	y += 4

	res := TuningResult{Params: params}
	res.Params.FleeRadius, y = r.DrawSlider(x, y, "Radius", params.FleeRadius, 0.1, 3.0, inner)
	res.Params.FleeStrength, y = r.DrawSlider(x, y, "Strength", params.FleeStrength, 0.1, 10.0, inner)
	res.Params.MaxFleeSpeed, y = r.DrawSlider(x, y, "Max speed", params.MaxFleeSpeed, 0.2, 4.0, inner)
	res.Changed = res.Params != params

	y += 6
	half := float32(inner-10) / 2
	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: half, Height: 24}, "Camera: "+mode) {
		res.ToggleCamera = true
	}
	if gui.Button(rl.Rectangle{X: float32(x) + half + 10, Y: float32(y), Width: half, Height: 24}, "Defaults") {
		res.ResetDefaults = true
	}
	y += 32

	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(inner), Height: 24}, "Copy YAML") {
		rl.SetClipboardText(FleeYAML(res.Params))
	}

	return res
}

// FleeYAML renders params as a config overlay snippet.
func FleeYAML(p systems.SteeringParams) string {
	return fmt.Sprintf("flee:\n  radius: %.3f\n  strength: %.3f\n  max_speed: %.3f\n",
		p.FleeRadius, p.FleeStrength, p.MaxFleeSpeed)
}
