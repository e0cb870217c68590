package systems

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultEpsilon is the squared-length threshold below which a vector is degenerate.
const DefaultEpsilon = 1e-4

// lengthSq returns the squared length of v.
func lengthSq(v mgl32.Vec3) float32 {
	return v.Dot(v)
}

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// RandomUnitVector returns a point uniformly distributed on the unit sphere.
// Uses inverse-CDF sampling of the polar angle so the poles are not oversampled.
func RandomUnitVector(rng *rand.Rand) mgl32.Vec3 {
	theta := rng.Float64() * 2 * math.Pi
	phi := math.Acos(1 - 2*rng.Float64())
	sinPhi := math.Sin(phi)
	return mgl32.Vec3{
		float32(sinPhi * math.Cos(theta)),
		float32(sinPhi * math.Sin(theta)),
		float32(math.Cos(phi)),
	}
}
