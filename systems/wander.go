package systems

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/ojrac/opensimplex-go"
)

// laneSpacing separates agents' samples in noise space so neighbours do not turn in lockstep.
const laneSpacing = 17.31

// Wander produces small, smooth idle turns from a seeded simplex noise field.
// Each agent reads its own lane, so the same seed always yields the same paths.
type Wander struct {
	noise     opensimplex.Noise
	turnRate  float32 // radians per second at full noise amplitude
	frequency float64 // noise samples per simulated second
	epsilon   float32
}

// NewWander creates a wander source. turnRate <= 0 disables turning. Velocities
// with squared length below epsilon are left untouched.
func NewWander(seed int64, turnRate, frequency float64, epsilon float32) *Wander {
	return &Wander{
		noise:     opensimplex.New(seed),
		turnRate:  float32(turnRate),
		frequency: frequency,
		epsilon:   epsilon,
	}
}

// Turn rotates vel by a noise-driven yaw and pitch and rescales it to speed.
// The result always has length speed when vel is non-degenerate.
func (w *Wander) Turn(vel mgl32.Vec3, id uint32, t float64, dt, speed float32) mgl32.Vec3 {
	if lengthSq(vel) < w.epsilon || w.turnRate <= 0 {
		return vel
	}

	lane := float64(id) * laneSpacing
	s := t * w.frequency
	yaw := float32(w.noise.Eval2(lane, s)) * w.turnRate * dt
	pitch := float32(w.noise.Eval2(lane+1000, s)) * w.turnRate * dt * 0.5

	dir := mgl32.QuatRotate(yaw, mgl32.Vec3{0, 1, 0}).Rotate(vel.Normalize())

	// Pitch about the horizontal axis perpendicular to the heading; skipped when
	// swimming straight up or down.
	side := dir.Cross(mgl32.Vec3{0, 1, 0})
	if lengthSq(side) > w.epsilon {
		dir = mgl32.QuatRotate(pitch, side.Normalize()).Rotate(dir)
	}

	return dir.Normalize().Mul(speed)
}
