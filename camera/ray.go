package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// minDirLengthSq rejects eye rays that collapse to zero after unprojection.
const minDirLengthSq = 1e-12

// ScreenToWorldRay unprojects a pixel into a world-space ray. The origin is the
// camera position recovered from inverse(view). ok is false for an empty
// viewport or a singular/degenerate result.
//
// Pixel coordinates grow right and down; NDC y grows up.
func ScreenToWorldRay(pointer, viewport mgl32.Vec2, view, proj mgl32.Mat4) (origin, dir mgl32.Vec3, ok bool) {
	w, h := viewport.X(), viewport.Y()
	if w <= 0 || h <= 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}, false
	}

	x := 2*pointer.X()/w - 1
	y := 1 - 2*pointer.Y()/h
	clip := mgl32.Vec4{x, y, -1, 1}

	invProj := proj.Inv()
	invView := view.Inv()
	if invProj == (mgl32.Mat4{}) || invView == (mgl32.Mat4{}) {
		return mgl32.Vec3{}, mgl32.Vec3{}, false
	}

	eye := invProj.Mul4x1(clip)
	eye = mgl32.Vec4{eye.X(), eye.Y(), -1, 0}

	world := invView.Mul4x1(eye).Vec3()
	if world.Dot(world) < minDirLengthSq {
		return mgl32.Vec3{}, mgl32.Vec3{}, false
	}

	return invView.Col(3).Vec3(), world.Normalize(), true
}
