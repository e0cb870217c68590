// Package camera provides a perspective camera with free-look and fixed modes.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/aquarium/config"
)

// Mode selects how the camera responds to input.
type Mode uint8

const (
	// FreeLook moves with keys and rotates with the pointer.
	FreeLook Mode = iota
	// Fixed holds a set pose; the pointer aims the threat ray instead.
	Fixed
)

func (m Mode) String() string {
	switch m {
	case FreeLook:
		return "free_look"
	case Fixed:
		return "fixed"
	default:
		return "unknown"
	}
}

// pitchLimit keeps the forward vector away from the world up axis.
const pitchLimit = math.Pi/2 - 0.01

var worldUp = mgl32.Vec3{0, 1, 0}

// Options holds projection and control settings.
type Options struct {
	Fov         float32 // vertical, radians
	Near, Far   float32
	Speed       float32 // world units per second
	Sensitivity float32 // radians per pixel

	// Pose applied when switching into Fixed mode
	FixedPosition mgl32.Vec3
	FixedTarget   mgl32.Vec3
}

// DefaultOptions returns the stock camera settings.
func DefaultOptions() Options {
	return Options{
		Fov:           math.Pi / 2,
		Near:          0.1,
		Far:           100,
		Speed:         1.5,
		Sensitivity:   0.002,
		FixedPosition: mgl32.Vec3{0, 0.5, 4},
		FixedTarget:   mgl32.Vec3{0, 0, 0},
	}
}

// OptionsFromConfig maps the camera section onto Options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Fov:           float32(cfg.Camera.Fov),
		Near:          float32(cfg.Camera.Near),
		Far:           float32(cfg.Camera.Far),
		Speed:         float32(cfg.Camera.Speed),
		Sensitivity:   float32(cfg.Camera.Sensitivity),
		FixedPosition: cfg.Derived.FixedPos,
		FixedTarget:   cfg.Derived.FixedTarget,
	}
}

// Movement is the set of translation keys held this frame.
type Movement struct {
	Forward, Back bool
	Left, Right   bool
	Up, Down      bool
}

// Camera is a yaw/pitch camera. Forward, Right and Up are always derived from
// Yaw and Pitch; write those through the methods, not directly.
type Camera struct {
	Position mgl32.Vec3
	Forward  mgl32.Vec3
	Right    mgl32.Vec3
	Up       mgl32.Vec3

	Yaw, Pitch float32 // radians

	Fov       float32
	Aspect    float32
	Near, Far float32

	Speed       float32
	Sensitivity float32

	Mode Mode

	fixedPosition mgl32.Vec3
	fixedTarget   mgl32.Vec3

	// Pointer tracking: the first sample after construction or a reset only
	// records the baseline.
	lastPointer mgl32.Vec2
	firstSample bool
}

// New creates a free-look camera at position facing -Z.
func New(position mgl32.Vec3, aspect float32, opts Options) *Camera {
	c := &Camera{
		Position:      position,
		Yaw:           -math.Pi / 2,
		Fov:           opts.Fov,
		Aspect:        aspect,
		Near:          opts.Near,
		Far:           opts.Far,
		Speed:         opts.Speed,
		Sensitivity:   opts.Sensitivity,
		Mode:          FreeLook,
		fixedPosition: opts.FixedPosition,
		fixedTarget:   opts.FixedTarget,
		firstSample:   true,
	}
	c.updateBasis()
	return c
}

// updateBasis rebuilds Forward, Right and Up from Yaw and Pitch.
func (c *Camera) updateBasis() {
	yaw, pitch := float64(c.Yaw), float64(c.Pitch)
	c.Forward = mgl32.Vec3{
		float32(math.Cos(pitch) * math.Cos(yaw)),
		float32(math.Sin(pitch)),
		float32(math.Cos(pitch) * math.Sin(yaw)),
	}.Normalize()
	c.Right = c.Forward.Cross(worldUp).Normalize()
	c.Up = c.Right.Cross(c.Forward).Normalize()
}

// Move translates the camera along its basis. Ignored outside FreeLook.
func (c *Camera) Move(m Movement, dt float32) {
	if c.Mode != FreeLook {
		return
	}
	step := c.Speed * dt
	if m.Forward {
		c.Position = c.Position.Add(c.Forward.Mul(step))
	}
	if m.Back {
		c.Position = c.Position.Sub(c.Forward.Mul(step))
	}
	if m.Right {
		c.Position = c.Position.Add(c.Right.Mul(step))
	}
	if m.Left {
		c.Position = c.Position.Sub(c.Right.Mul(step))
	}
	if m.Up {
		c.Position = c.Position.Add(c.Up.Mul(step))
	}
	if m.Down {
		c.Position = c.Position.Sub(c.Up.Mul(step))
	}
}

// Look applies the pointer delta since the previous sample as yaw and pitch.
// Returns false when no rotation was applied: outside FreeLook, or on the
// first sample after construction or ResetPointerTracking.
func (c *Camera) Look(pointer mgl32.Vec2) bool {
	if c.Mode != FreeLook {
		return false
	}
	if c.firstSample {
		c.lastPointer = pointer
		c.firstSample = false
		return false
	}

	delta := pointer.Sub(c.lastPointer)
	c.lastPointer = pointer

	c.Yaw += delta.X() * c.Sensitivity
	c.Pitch -= delta.Y() * c.Sensitivity
	c.Pitch = clamp(c.Pitch, -pitchLimit, pitchLimit)
	c.updateBasis()
	return true
}

// SetPositionAndLookAt moves the camera and points it at target. Pointer
// tracking is left untouched. A target equal to the position keeps the
// current orientation.
func (c *Camera) SetPositionAndLookAt(position, target mgl32.Vec3) {
	c.Position = position
	dir := target.Sub(position)
	if dir.Dot(dir) < 1e-12 {
		return
	}
	dir = dir.Normalize()
	c.Pitch = clamp(float32(math.Asin(float64(clamp(dir.Y(), -1, 1)))), -pitchLimit, pitchLimit)
	c.Yaw = float32(math.Atan2(float64(dir.Z()), float64(dir.X())))
	c.updateBasis()
}

// SetMode switches modes. Entering Fixed teleports to the configured pose.
// Any actual transition restarts pointer tracking from pointer.
func (c *Camera) SetMode(mode Mode, pointer mgl32.Vec2) {
	if mode == c.Mode {
		return
	}
	c.Mode = mode
	if mode == Fixed {
		c.SetPositionAndLookAt(c.fixedPosition, c.fixedTarget)
	}
	c.ResetPointerTracking(pointer)
}

// Toggle flips between FreeLook and Fixed.
func (c *Camera) Toggle(pointer mgl32.Vec2) {
	if c.Mode == FreeLook {
		c.SetMode(Fixed, pointer)
	} else {
		c.SetMode(FreeLook, pointer)
	}
}

// ResetPointerTracking makes the next Look a baseline-only sample.
func (c *Camera) ResetPointerTracking(pointer mgl32.Vec2) {
	c.lastPointer = pointer
	c.firstSample = true
}

// View returns the world-to-eye matrix.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Forward), c.Up)
}

// Projection returns the eye-to-clip matrix.
func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(c.Fov, c.Aspect, c.Near, c.Far)
}

// SetAspect updates the aspect ratio after a viewport resize. Non-positive
// values are ignored.
func (c *Camera) SetAspect(aspect float32) {
	if aspect > 0 {
		c.Aspect = aspect
	}
}

// Ray casts from the camera through pointer using the current matrices.
func (c *Camera) Ray(pointer, viewport mgl32.Vec2) (origin, dir mgl32.Vec3, ok bool) {
	return ScreenToWorldRay(pointer, viewport, c.View(), c.Projection())
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
