// Package systems contains the per-agent steering model and the geometry it reads.
package systems

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/aquarium/components"
	"github.com/pthm-cable/aquarium/config"
)

// SteeringParams holds the flee and wall constants shared by every agent.
type SteeringParams struct {
	FleeRadius   float32 // max distance from the ray at which an agent reacts
	FleeStrength float32 // acceleration magnitude away from the ray
	MaxFleeSpeed float32 // target speed while fleeing
	Epsilon      float32 // squared-length threshold for degenerate vectors
	WallMargin   float32 // inward offset when clamping at a wall
}

// DefaultSteeringParams returns the stock tuning.
func DefaultSteeringParams() SteeringParams {
	return SteeringParams{
		FleeRadius:   0.8,
		FleeStrength: 2.5,
		MaxFleeSpeed: 1.2,
		Epsilon:      DefaultEpsilon,
		WallMargin:   0.001,
	}
}

// SteeringParamsFromConfig maps the flee and physics sections onto SteeringParams.
func SteeringParamsFromConfig(cfg *config.Config) SteeringParams {
	return SteeringParams{
		FleeRadius:   float32(cfg.Flee.Radius),
		FleeStrength: float32(cfg.Flee.Strength),
		MaxFleeSpeed: float32(cfg.Flee.MaxSpeed),
		Epsilon:      cfg.Derived.Epsilon32,
		WallMargin:   float32(cfg.Physics.WallMargin),
	}
}

// Frame is the read-only input shared by every agent update in one tick.
type Frame struct {
	DT     float32
	Time   float64 // simulation seconds, drives wander noise
	Bounds Bounds
	Threat Threat
}

// SteerResult reports what happened to one agent during a tick.
type SteerResult struct {
	Fleeing   bool
	Bounced   bool // velocity was reflected on at least one axis
	Respawned bool // degenerate velocity was replaced by a random direction
	Accel     mgl32.Vec3
}

// FleeAcceleration returns the acceleration away from the threat ray and whether
// the agent at pos is inside the flee radius.
func FleeAcceleration(pos mgl32.Vec3, threat Threat, p SteeringParams) (mgl32.Vec3, bool) {
	if !threat.Active || lengthSq(threat.Direction) < p.Epsilon {
		return mgl32.Vec3{}, false
	}

	diff := pos.Sub(threat.ClosestPoint(pos))
	distSq := lengthSq(diff)
	if distSq <= p.Epsilon || distSq >= p.FleeRadius*p.FleeRadius {
		return mgl32.Vec3{}, false
	}
	return diff.Normalize().Mul(p.FleeStrength), true
}

// Steer advances one agent by dt: flee, integrate velocity, normalize speed,
// reflect and clamp at the walls, integrate position, then optionally wander.
// w may be nil to disable wander.
func Steer(
	pos *components.Position,
	vel *components.Velocity,
	swim components.Swim,
	f Frame,
	p SteeringParams,
	w *Wander,
	rng *rand.Rand,
) SteerResult {
	var res SteerResult

	// 1. Flee
	res.Accel, res.Fleeing = FleeAcceleration(pos.Vec3, f.Threat, p)

	// 2. Explicit Euler on velocity
	vel.Vec3 = vel.Vec3.Add(res.Accel.Mul(f.DT))

	// 3. Speed normalization
	targetSpeed := swim.CruiseSpeed
	if res.Fleeing {
		targetSpeed = p.MaxFleeSpeed
	}
	speedSq := lengthSq(vel.Vec3)
	switch {
	case speedSq >= p.Epsilon:
		if res.Fleeing && speedSq > p.MaxFleeSpeed*p.MaxFleeSpeed {
			vel.Vec3 = vel.Vec3.Normalize().Mul(p.MaxFleeSpeed)
		} else {
			vel.Vec3 = vel.Vec3.Normalize().Mul(targetSpeed)
		}
	default:
		vel.Vec3 = RandomUnitVector(rng).Mul(targetSpeed)
		res.Respawned = true
	}

	// 4. Walls
	res.Bounced = reflectAndClamp(&pos.Vec3, &vel.Vec3, f.Bounds, p.WallMargin)

	// 5. Position
	pos.Vec3 = pos.Vec3.Add(vel.Vec3.Mul(f.DT))

	// 6. Wander only while calm
	if w != nil && !res.Fleeing && !res.Bounced {
		vel.Vec3 = w.Turn(vel.Vec3, swim.ID, f.Time, f.DT, swim.CruiseSpeed)
	}

	return res
}

// reflectAndClamp negates velocity on every axis where pos is outside the bounds,
// then pulls pos back inside by margin on any axis where it sits at or past a wall
// while still moving outward. Returns true if any axis was reflected.
func reflectAndClamp(pos, vel *mgl32.Vec3, b Bounds, margin float32) bool {
	bounced := false
	for i := 0; i < 3; i++ {
		if pos[i] < b.min[i] || pos[i] > b.max[i] {
			vel[i] = -vel[i]
			bounced = true
		}
	}
	for i := 0; i < 3; i++ {
		if pos[i] <= b.min[i] && vel[i] < 0 {
			pos[i] = b.min[i] + margin
		}
		if pos[i] >= b.max[i] && vel[i] > 0 {
			pos[i] = b.max[i] - margin
		}
	}
	return bounced
}
