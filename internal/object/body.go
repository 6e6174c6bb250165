package object

import "math"

// Body is the motion state shared by every participant.
// Velocity is stored as components; SetVelocity, Speed and Heading expose
// the (speed, heading) view.
type Body struct {
	X, Y     float64 // Position (center)
	VX, VY   float64 // Velocity per tick
	Rotation float64 // Outline orientation in radians (0 = pointing right)
}

// SetVelocity sets the velocity from a speed and a heading in radians.
func (b *Body) SetVelocity(speed, heading float64) {
	b.VX = math.Cos(heading) * speed
	b.VY = math.Sin(heading) * speed
}

// Speed returns the velocity magnitude.
func (b *Body) Speed() float64 {
	return math.Hypot(b.VX, b.VY)
}

// Heading returns the direction of travel in radians.
func (b *Body) Heading() float64 {
	return math.Atan2(b.VY, b.VX)
}

// Move applies one tick of velocity and wraps into the arena.
func (b *Body) Move(arena Arena) {
	b.X += b.VX
	b.Y += b.VY
	arena.WrapPosition(&b.X, &b.Y)
}

// Rotate adds delta radians to the rotation.
func (b *Body) Rotate(delta float64) {
	b.Rotation += delta
}

// Accelerate adds delta to the velocity along the current rotation and
// clamps the resulting speed to limit.
func (b *Body) Accelerate(delta, limit float64) {
	b.VX += math.Cos(b.Rotation) * delta
	b.VY += math.Sin(b.Rotation) * delta

	if speed := b.Speed(); speed > limit {
		scale := limit / speed
		b.VX *= scale
		b.VY *= scale
	}
}

// Friction decays the speed toward zero by the given fraction.
func (b *Body) Friction(fraction float64) {
	keep := 1 - fraction
	b.VX *= keep
	b.VY *= keep
}
