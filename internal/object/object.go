// Package object defines the simulated participants: ships, asteroids,
// bullets and debris, their motion model and the registry that owns them.
package object

import (
	"fmt"

	"github.com/tomz197/asteroids-classic/internal/physics"
)

// Kind identifies what a participant is. The set is closed.
type Kind int

const (
	KindShip Kind = iota
	KindAsteroid
	KindBullet
	KindDebris
)

func (k Kind) String() string {
	switch k {
	case KindShip:
		return "ship"
	case KindAsteroid:
		return "asteroid"
	case KindBullet:
		return "bullet"
	case KindDebris:
		return "debris"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ID is a registry-assigned handle. IDs are never reused, so a stale ID can
// only ever miss, never alias a newer participant.
type ID uint64

// NoID is the zero handle; the registry never assigns it.
const NoID ID = 0

// Arena represents the wrapping playfield dimensions.
type Arena struct {
	Width  float64
	Height float64
}

// NewArena creates a square arena.
func NewArena(size float64) Arena {
	return Arena{Width: size, Height: size}
}

// WrapPosition wraps x and y coordinates around the arena boundaries (Asteroids-style).
func (a Arena) WrapPosition(x, y *float64) {
	*x = physics.Wrap(*x, a.Width)
	*y = physics.Wrap(*y, a.Height)
}

// Center returns the arena's center point.
func (a Arena) Center() (float64, float64) {
	return a.Width / 2, a.Height / 2
}

// Participant is any simulated entity.
type Participant struct {
	Body

	ID   ID
	Kind Kind

	// Asteroids only.
	Size    int // 0 (smallest) .. 2 (largest)
	Variant int // Outline variant

	outline physics.Shape // Local-space outline centred on the origin
}

// Outline returns the hit-test shape at the participant's current position and rotation.
func (p *Participant) Outline() physics.Shape {
	switch s := p.outline.(type) {
	case physics.Circle:
		return physics.Circle{X: p.X, Y: p.Y, R: s.R}
	case physics.Polygon:
		return s.Transform(p.X, p.Y, p.Rotation)
	default:
		return physics.Circle{X: p.X, Y: p.Y}
	}
}

// Radius returns the distance from the participant's position to the
// farthest point of its outline.
func (p *Participant) Radius() float64 {
	switch s := p.outline.(type) {
	case physics.Circle:
		return s.R
	case physics.Polygon:
		return s.Radius()
	default:
		return 0
	}
}

// Update advances the participant by one tick and wraps it into the arena.
func (p *Participant) Update(arena Arena) {
	if p.Kind == KindShip {
		p.Friction(shipFriction)
	}
	p.Move(arena)
}

func (p *Participant) String() string {
	return fmt.Sprintf("%s#%d", p.Kind, p.ID)
}
