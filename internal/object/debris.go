package object

import "github.com/tomz197/asteroids-classic/internal/physics"

// debrisOutline is a 1x2 sliver.
var debrisOutline = physics.Polygon{
	{X: -0.5, Y: -1},
	{X: 0.5, Y: -1},
	{X: 0.5, Y: 1},
	{X: -0.5, Y: 1},
}

// NewDebris creates a motionless debris particle at (x, y).
// Callers give it a velocity.
func NewDebris(x, y float64) *Participant {
	return &Participant{
		Kind:    KindDebris,
		Body:    Body{X: x, Y: y},
		outline: debrisOutline,
	}
}
