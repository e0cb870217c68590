package systems

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestWanderTurnPreservesSpeed(t *testing.T) {
	w := NewWander(42, 0.6, 0.35, DefaultEpsilon)
	vel := mgl32.Vec3{0.3, 0, 0.1}

	for i := 0; i < 100; i++ {
		out := w.Turn(vel, 3, float64(i)*0.1, 1.0/60, 0.35)
		if !approxEq(out.Len(), 0.35, 1e-5) {
			t.Fatalf("sample %d: speed %f, want 0.35", i, out.Len())
		}
	}
}

func TestWanderTurns(t *testing.T) {
	w := NewWander(42, 2.0, 0.5, DefaultEpsilon)
	vel := mgl32.Vec3{1, 0, 0}

	turned := false
	for i := 1; i <= 50; i++ {
		out := w.Turn(vel, 7, float64(i)*0.37, 0.1, 1)
		if !vecApproxEq(out, vel, 1e-4) {
			turned = true
			break
		}
	}
	if !turned {
		t.Error("wander never changed direction")
	}
}

func TestWanderSeeded(t *testing.T) {
	a := NewWander(1, 1, 0.5, DefaultEpsilon).Turn(mgl32.Vec3{0, 0, 1}, 2, 3.3, 0.1, 1)
	b := NewWander(1, 1, 0.5, DefaultEpsilon).Turn(mgl32.Vec3{0, 0, 1}, 2, 3.3, 0.1, 1)
	if a != b {
		t.Errorf("same seed should give the same turn: %v vs %v", a, b)
	}
}

func TestWanderDisabledOrDegenerate(t *testing.T) {
	off := NewWander(1, 0, 0.5, DefaultEpsilon)
	vel := mgl32.Vec3{0, 0, 1}
	if got := off.Turn(vel, 1, 1, 0.1, 1); got != vel {
		t.Errorf("zero turn rate should leave velocity unchanged, got %v", got)
	}

	w := NewWander(1, 1, 0.5, DefaultEpsilon)
	if got := w.Turn(mgl32.Vec3{}, 1, 1, 0.1, 1); got != (mgl32.Vec3{}) {
		t.Errorf("degenerate velocity should pass through, got %v", got)
	}
}

func TestWanderEpsilon(t *testing.T) {
	slow := mgl32.Vec3{0, 0, 0.005}
	if got := NewWander(1, 1, 0.5, DefaultEpsilon).Turn(slow, 1, 1, 0.1, 1); got != slow {
		t.Errorf("velocity below the default epsilon should pass through, got %v", got)
	}
	got := NewWander(1, 1, 0.5, 1e-6).Turn(slow, 1, 1, 0.1, 1)
	if !approxEq(got.Len(), 1, 1e-5) {
		t.Errorf("velocity above a smaller epsilon should be rescaled to speed 1, got length %f", got.Len())
	}
}
