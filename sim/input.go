package sim

import "github.com/go-gl/mathgl/mgl32"

// Key is a logical control, mapped to physical keys by the Input implementation.
type Key uint8

const (
	KeyForward Key = iota
	KeyBack
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyToggleCamera
	KeyPause
)

// Input is the per-frame view of the keyboard, pointer and window.
type Input interface {
	IsKeyDown(k Key) bool
	IsKeyPressed(k Key) bool // true only on the frame the key went down
	PointerPosition() mgl32.Vec2
	ViewportSize() mgl32.Vec2
	Focused() bool
}

// NoInput is an Input with nothing pressed, an unfocused window and an empty
// viewport. Useful for headless runs that drive Step directly.
type NoInput struct{}

func (NoInput) IsKeyDown(Key) bool          { return false }
func (NoInput) IsKeyPressed(Key) bool       { return false }
func (NoInput) PointerPosition() mgl32.Vec2 { return mgl32.Vec2{} }
func (NoInput) ViewportSize() mgl32.Vec2    { return mgl32.Vec2{} }
func (NoInput) Focused() bool               { return false }
