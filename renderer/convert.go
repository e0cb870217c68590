package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/aquarium/camera"
)

// Vector3 converts to raylib's vector type.
func Vector3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X(), v.Y(), v.Z())
}

// Matrix converts a column-major mgl32 matrix to raylib's layout. Both store
// columns contiguously, so element i maps to field Mi.
func Matrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M4: m[4], M8: m[8], M12: m[12],
		M1: m[1], M5: m[5], M9: m[9], M13: m[13],
		M2: m[2], M6: m[6], M10: m[10], M14: m[14],
		M3: m[3], M7: m[7], M11: m[11], M15: m[15],
	}
}

// Camera3D mirrors cam for raylib's BeginMode3D. raylib wants the vertical
// field of view in degrees.
func Camera3D(cam *camera.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   Vector3(cam.Position),
		Target:     Vector3(cam.Position.Add(cam.Forward)),
		Up:         Vector3(cam.Up),
		Fovy:       cam.Fov * 180 / math.Pi,
		Projection: rl.CameraPerspective,
	}
}
