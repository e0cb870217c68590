package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/aquarium/systems"
)

// SweepThreat returns a scripted ray for unattended runs. The origin circles
// the tank outside its widest horizontal extent with period seconds per
// revolution, bobbing vertically, and the ray always passes through the
// tank centre. A non-positive period yields an inactive threat.
func SweepThreat(t, period float64, b systems.Bounds, epsilon float32) systems.Threat {
	if period <= 0 {
		return systems.InactiveThreat()
	}

	center := b.Center()
	size := b.Size()
	radius := float64(mgl32.Vec2{size.X(), size.Z()}.Len())
	phase := 2 * math.Pi * t / period

	origin := mgl32.Vec3{
		center.X() + float32(radius*math.Cos(phase)),
		center.Y() + float32(0.5*float64(size.Y())*math.Sin(2*phase)),
		center.Z() + float32(radius*math.Sin(phase)),
	}
	return systems.NewThreat(origin, center.Sub(origin), epsilon)
}
