// Package components defines ECS components for the rod field.
package components

import "github.com/pthm-cable/rodfield/systems"

// Rest is a particle's lattice position. It is written once at spawn.
type Rest struct {
	X, Y float64
}

// Vec returns the rest position as a vector.
func (r Rest) Vec() systems.Vec2 {
	return systems.Vec2{X: r.X, Y: r.Y}
}

// Rod holds the evaluated state of a particle for the current frame.
type Rod struct {
	State      systems.ParticleState
	Appearance systems.Appearance
}

// Visible reports whether the rod survives alpha culling.
func (r *Rod) Visible() bool {
	return !r.Appearance.Culled
}
