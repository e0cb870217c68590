package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ModelForward is the model-space axis the fish mesh faces along.
var ModelForward = mgl32.Vec3{0, 0, 1}

// ModelTransform returns translate * rotate * scale for one agent. The rotation
// turns ModelForward onto the velocity direction; a near-zero velocity keeps the
// model unrotated, and a velocity anti-parallel to ModelForward turns half a
// revolution about Y.
func ModelTransform(pos, vel mgl32.Vec3, size, epsilon float32) mgl32.Mat4 {
	m := mgl32.Scale3D(size, size, size)

	if lengthSq(vel) > epsilon {
		dir := vel.Normalize()
		axis := ModelForward.Cross(dir)
		if lengthSq(axis) > epsilon {
			angle := float32(math.Acos(float64(clampFloat(ModelForward.Dot(dir), -1, 1))))
			m = mgl32.HomogRotate3D(angle, axis.Normalize()).Mul4(m)
		} else if dir.Z() < 0 {
			m = mgl32.HomogRotate3DY(math.Pi).Mul4(m)
		}
	}

	return mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).Mul4(m)
}
