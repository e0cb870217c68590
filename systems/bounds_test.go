package systems

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewBounds(t *testing.T) {
	tests := []struct {
		name     string
		min, max mgl32.Vec3
		wantErr  bool
	}{
		{"valid", mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}, false},
		{"flat x", mgl32.Vec3{1, -1, -1}, mgl32.Vec3{1, 1, 1}, true},
		{"inverted z", mgl32.Vec3{-1, -1, 2}, mgl32.Vec3{1, 1, 1}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewBounds(tc.min, tc.max)
			if (err != nil) != tc.wantErr {
				t.Errorf("NewBounds error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestBoundsGeometry(t *testing.T) {
	b := MustBounds(mgl32.Vec3{-2, -1, 0}, mgl32.Vec3{2, 1, 4})

	if b.Center() != (mgl32.Vec3{0, 0, 2}) {
		t.Errorf("unexpected center %v", b.Center())
	}
	if b.Size() != (mgl32.Vec3{4, 2, 4}) {
		t.Errorf("unexpected size %v", b.Size())
	}
	if !b.Contains(mgl32.Vec3{2, 1, 4}, 0) {
		t.Error("max corner should be contained")
	}
	if b.Contains(mgl32.Vec3{2.1, 0, 0}, 0) {
		t.Error("point past max should not be contained")
	}
	if !b.Contains(mgl32.Vec3{2.1, 0, 1}, 0.2) {
		t.Error("margin should widen containment")
	}
}

func TestBoundsRandomPoint(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	b := MustBounds(mgl32.Vec3{-2, -1, -1.5}, mgl32.Vec3{2, 1, 1.5})
	for i := 0; i < 1000; i++ {
		if p := b.RandomPoint(rng); !b.Contains(p, 0) {
			t.Fatalf("random point %v outside bounds", p)
		}
	}
}
