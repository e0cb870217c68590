package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestScreenToWorldRayIdentity(t *testing.T) {
	viewport := mgl32.Vec2{800, 600}
	origin, dir, ok := ScreenToWorldRay(mgl32.Vec2{400, 300}, viewport, mgl32.Ident4(), mgl32.Ident4())
	if !ok {
		t.Fatal("expected a ray")
	}
	if !vecApproxEq(dir, mgl32.Vec3{0, 0, -1}, tol) {
		t.Errorf("centre ray should be (0,0,-1), got %v", dir)
	}
	if !vecApproxEq(origin, mgl32.Vec3{}, tol) {
		t.Errorf("identity view origin should be zero, got %v", origin)
	}
}

func TestScreenToWorldRayCorners(t *testing.T) {
	viewport := mgl32.Vec2{800, 600}

	tests := []struct {
		name    string
		pointer mgl32.Vec2
		wantX   float32 // sign only
		wantY   float32
	}{
		{"top left", mgl32.Vec2{0, 0}, -1, 1},
		{"top right", mgl32.Vec2{800, 0}, 1, 1},
		{"bottom left", mgl32.Vec2{0, 600}, -1, -1},
		{"bottom right", mgl32.Vec2{800, 600}, 1, -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, dir, ok := ScreenToWorldRay(tc.pointer, viewport, mgl32.Ident4(), mgl32.Ident4())
			if !ok {
				t.Fatal("expected a ray")
			}
			if dir.X()*tc.wantX <= 0 || dir.Y()*tc.wantY <= 0 {
				t.Errorf("direction %v has wrong quadrant", dir)
			}
		})
	}
}

func TestCameraRayCentreMatchesForward(t *testing.T) {
	cam := newTestCamera()
	cam.SetPositionAndLookAt(mgl32.Vec3{1, 0.5, 4}, mgl32.Vec3{0, 0, 0})

	viewport := mgl32.Vec2{1280, 720}
	origin, dir, ok := cam.Ray(viewport.Mul(0.5), viewport)
	if !ok {
		t.Fatal("expected a ray")
	}
	if !vecApproxEq(dir, cam.Forward, tol) {
		t.Errorf("centre ray %v should match forward %v", dir, cam.Forward)
	}
	if !vecApproxEq(origin, cam.Position, tol) {
		t.Errorf("ray origin %v should match camera position %v", origin, cam.Position)
	}
}

func TestCameraRayEdgeWithinFov(t *testing.T) {
	cam := newTestCamera()
	viewport := mgl32.Vec2{1280, 720}

	// Top-centre pixel lies half a vertical fov above forward
	_, dir, ok := cam.Ray(mgl32.Vec2{640, 0}, viewport)
	if !ok {
		t.Fatal("expected a ray")
	}
	cos := dir.Dot(cam.Forward)
	want := float32(0.70710678) // cos(fov/2) for a 90 degree fov
	if !approxEq(cos, want, 1e-3) {
		t.Errorf("expected angle cosine %f, got %f", want, cos)
	}
}

func TestScreenToWorldRayZeroViewport(t *testing.T) {
	if _, _, ok := ScreenToWorldRay(mgl32.Vec2{}, mgl32.Vec2{0, 600}, mgl32.Ident4(), mgl32.Ident4()); ok {
		t.Error("zero-width viewport should not produce a ray")
	}
}

func TestScreenToWorldRaySingular(t *testing.T) {
	if _, _, ok := ScreenToWorldRay(mgl32.Vec2{1, 1}, mgl32.Vec2{2, 2}, mgl32.Mat4{}, mgl32.Ident4()); ok {
		t.Error("singular view should not produce a ray")
	}
}
