package systems

import (
	"fmt"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// Bounds is the axis-aligned swimming volume. The zero value is not usable;
// construct with NewBounds.
type Bounds struct {
	min, max mgl32.Vec3
}

// NewBounds validates that min < max on every axis.
func NewBounds(min, max mgl32.Vec3) (Bounds, error) {
	for i := 0; i < 3; i++ {
		if !(min[i] < max[i]) {
			return Bounds{}, fmt.Errorf("bounds axis %d: min %g must be < max %g", i, min[i], max[i])
		}
	}
	return Bounds{min: min, max: max}, nil
}

// MustBounds is like NewBounds but panics on invalid extents.
func MustBounds(min, max mgl32.Vec3) Bounds {
	b, err := NewBounds(min, max)
	if err != nil {
		panic(err)
	}
	return b
}

// Min returns the lower corner.
func (b Bounds) Min() mgl32.Vec3 { return b.min }

// Max returns the upper corner.
func (b Bounds) Max() mgl32.Vec3 { return b.max }

// Center returns the midpoint of the volume.
func (b Bounds) Center() mgl32.Vec3 {
	return b.min.Add(b.max).Mul(0.5)
}

// Size returns the extent along each axis.
func (b Bounds) Size() mgl32.Vec3 {
	return b.max.Sub(b.min)
}

// Contains reports whether p lies within the volume grown by margin on every side.
func (b Bounds) Contains(p mgl32.Vec3, margin float32) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.min[i]-margin || p[i] > b.max[i]+margin {
			return false
		}
	}
	return true
}

// RandomPoint returns a uniformly distributed point inside the volume.
func (b Bounds) RandomPoint(rng *rand.Rand) mgl32.Vec3 {
	size := b.Size()
	return mgl32.Vec3{
		b.min[0] + rng.Float32()*size[0],
		b.min[1] + rng.Float32()*size[1],
		b.min[2] + rng.Float32()*size[2],
	}
}
