package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/aquarium/camera"
	"github.com/pthm-cable/aquarium/sim"
)

// keyBindings maps logical controls to raylib keys.
var keyBindings = map[sim.Key]int32{
	sim.KeyForward:      rl.KeyW,
	sim.KeyBack:         rl.KeyS,
	sim.KeyLeft:         rl.KeyA,
	sim.KeyRight:        rl.KeyD,
	sim.KeyUp:           rl.KeyLeftShift,
	sim.KeyDown:         rl.KeyLeftControl,
	sim.KeyToggleCamera: rl.KeyTab,
	sim.KeyPause:        rl.KeySpace,
}

// controlsLegend is shown along the bottom edge.
const controlsLegend = "WASD move | Shift/Ctrl up/down | Mouse look | Tab camera | Space pause | B/R/I/T/F1/F3 overlays | Esc quit"

// rlInput reads the live raylib keyboard, mouse and window state.
type rlInput struct{}

func newRLInput() *rlInput {
	return &rlInput{}
}

func (rlInput) IsKeyDown(k sim.Key) bool {
	key, ok := keyBindings[k]
	return ok && rl.IsKeyDown(key)
}

func (rlInput) IsKeyPressed(k sim.Key) bool {
	key, ok := keyBindings[k]
	return ok && rl.IsKeyPressed(key)
}

func (rlInput) PointerPosition() mgl32.Vec2 {
	p := rl.GetMousePosition()
	return mgl32.Vec2{p.X, p.Y}
}

func (rlInput) ViewportSize() mgl32.Vec2 {
	return mgl32.Vec2{float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())}
}

func (rlInput) Focused() bool {
	return rl.IsWindowFocused()
}

// frameTime returns the last frame's duration in seconds.
func frameTime() float32 {
	return rl.GetFrameTime()
}

// handleInput processes window and overlay keys. Camera and pause keys are
// handled by the simulation through rlInput.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if key := rl.GetKeyPressed(); key != 0 {
		g.overlays.HandleKeyPress(key)
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	if h > 0 {
		g.sim.Camera().SetAspect(w / h)
	}
	g.perfUI.SetPosition(int32(w)-270, 10)
	g.tuning.SetPosition(int32(w)-270, 130)
}

// cursorState tracks which raylib cursor mode is applied.
type cursorState uint8

const (
	cursorUnknown cursorState = iota
	cursorCaptured
	cursorFree
)

// syncCursor captures the pointer for free-look and releases it in the fixed
// view so the threat ray and tuning panel can be aimed.
func (g *Game) syncCursor() {
	want := cursorFree
	if g.sim.Mode() == camera.FreeLook {
		want = cursorCaptured
	}
	if want == g.cursorMode {
		return
	}
	if want == cursorCaptured {
		rl.DisableCursor()
	} else {
		rl.EnableCursor()
	}
	g.cursorMode = want

	// Capturing or releasing warps the pointer
	g.sim.Camera().ResetPointerTracking(g.input.PointerPosition())
}
