package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Threat is the per-frame repulsive ray. Every agent in a frame reads the same value.
// Direction is a unit vector when Active and zero otherwise.
type Threat struct {
	Active    bool
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// InactiveThreat returns a threat that no agent reacts to.
func InactiveThreat() Threat {
	return Threat{}
}

// NewThreat builds an active threat from a ray. A direction whose squared length
// is below epsilon yields an inactive threat rather than an error.
func NewThreat(origin, direction mgl32.Vec3, epsilon float32) Threat {
	if lengthSq(direction) < epsilon {
		return InactiveThreat()
	}
	return Threat{
		Active:    true,
		Origin:    origin,
		Direction: direction.Normalize(),
	}
}

// ClosestPointOnRay returns the point on the ray origin + t*dir (t >= 0) nearest to p.
// dir must be unit length. Points behind the origin resolve to the origin itself.
func ClosestPointOnRay(origin, dir, p mgl32.Vec3) mgl32.Vec3 {
	t := p.Sub(origin).Dot(dir)
	if t < 0 {
		return origin
	}
	return origin.Add(dir.Mul(t))
}

// ClosestPoint returns the point on the threat ray nearest to p.
func (t Threat) ClosestPoint(p mgl32.Vec3) mgl32.Vec3 {
	return ClosestPointOnRay(t.Origin, t.Direction, p)
}

// Distance returns the distance from p to the ray, or +Inf when inactive.
func (t Threat) Distance(p mgl32.Vec3) float32 {
	if !t.Active {
		return float32(math.Inf(1))
	}
	return p.Sub(t.ClosestPoint(p)).Len()
}
