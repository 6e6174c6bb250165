package object

import (
	"math"

	"github.com/tomz197/asteroids-classic/internal/loop/config"
	"github.com/tomz197/asteroids-classic/internal/physics"
)

const shipFriction = config.ShipFriction

// shipOutline points the nose along +X; Rotation turns it.
var shipOutline = physics.Polygon{
	{X: config.ShipNoseLength, Y: 0},
	{X: -20, Y: 12},
	{X: -13, Y: 10},
	{X: -13, Y: -10},
	{X: -20, Y: -12},
}

// NewShip creates a motionless ship at (x, y) in the default facing.
func NewShip(x, y float64) *Participant {
	return &Participant{
		Kind:    KindShip,
		Body:    Body{X: x, Y: y, Rotation: config.ShipStartFacing},
		outline: shipOutline,
	}
}

// Nose returns the position of the ship's nose, where bullets leave.
func (p *Participant) Nose() (float64, float64) {
	return p.X + math.Cos(p.Rotation)*config.ShipNoseLength,
		p.Y + math.Sin(p.Rotation)*config.ShipNoseLength
}
