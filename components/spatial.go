// Package components defines ECS components for the aquarium school.
package components

import "github.com/go-gl/mathgl/mgl32"

// Position represents an agent's world position.
type Position struct {
	mgl32.Vec3
}

// Velocity represents an agent's velocity in world units per second.
type Velocity struct {
	mgl32.Vec3
}
