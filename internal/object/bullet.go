package object

import (
	"github.com/tomz197/asteroids-classic/internal/loop/config"
	"github.com/tomz197/asteroids-classic/internal/physics"
)

// NewBullet creates a bullet at (x, y) travelling along heading.
func NewBullet(x, y, heading float64) *Participant {
	p := &Participant{
		Kind:    KindBullet,
		Body:    Body{X: x, Y: y, Rotation: heading},
		outline: physics.Circle{R: config.BulletRadius},
	}
	p.SetVelocity(config.BulletSpeed, heading)
	return p
}
