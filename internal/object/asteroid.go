package object

import (
	"github.com/tomz197/asteroids-classic/internal/loop/config"
	"github.com/tomz197/asteroids-classic/internal/physics"
)

// asteroidScale maps size level to outline scale.
var asteroidScale = [config.AsteroidMaxSize + 1]float64{0.5, 1.0, 1.6}

// asteroidOutlines are irregular rocks of roughly radius 30 at scale 1.
var asteroidOutlines = [config.AsteroidVariants]physics.Polygon{
	{
		{X: 30, Y: 0}, {X: 22, Y: 14}, {X: 24, Y: 26}, {X: 6, Y: 30},
		{X: -12, Y: 28}, {X: -28, Y: 14}, {X: -22, Y: 0}, {X: -30, Y: -14},
		{X: -12, Y: -28}, {X: 0, Y: -20}, {X: 14, Y: -30}, {X: 28, Y: -16},
	},
	{
		{X: 28, Y: 4}, {X: 30, Y: 20}, {X: 12, Y: 28}, {X: 0, Y: 20},
		{X: -14, Y: 30}, {X: -30, Y: 16}, {X: -26, Y: -4}, {X: -30, Y: -20},
		{X: -10, Y: -30}, {X: 8, Y: -26}, {X: 26, Y: -28}, {X: 20, Y: -10},
	},
	{
		{X: 30, Y: -6}, {X: 26, Y: 16}, {X: 10, Y: 20}, {X: 4, Y: 30},
		{X: -18, Y: 26}, {X: -30, Y: 8}, {X: -24, Y: -10}, {X: -28, Y: -24},
		{X: -8, Y: -28}, {X: 2, Y: -18}, {X: 18, Y: -30},
	},
	{
		{X: 24, Y: 0}, {X: 30, Y: 18}, {X: 16, Y: 30}, {X: -4, Y: 26},
		{X: -20, Y: 30}, {X: -30, Y: 10}, {X: -30, Y: -12}, {X: -18, Y: -28},
		{X: 0, Y: -30}, {X: 8, Y: -20}, {X: 26, Y: -24},
	},
}

// MaxAsteroidRadius is the largest outline radius any asteroid can have.
var MaxAsteroidRadius = func() float64 {
	var r float64
	for _, o := range asteroidOutlines {
		if v := o.Radius(); v > r {
			r = v
		}
	}
	return r * asteroidScale[config.AsteroidMaxSize]
}()

// NewAsteroid creates a motionless asteroid of the given outline variant and
// size at (x, y). Out-of-range variants and sizes are clamped.
func NewAsteroid(variant, size int, x, y float64) *Participant {
	variant = clamp(variant, 0, config.AsteroidVariants-1)
	size = clamp(size, 0, config.AsteroidMaxSize)

	scale := asteroidScale[size]
	base := asteroidOutlines[variant]
	outline := make(physics.Polygon, len(base))
	for i, v := range base {
		outline[i] = physics.Point{X: v.X * scale, Y: v.Y * scale}
	}

	return &Participant{
		Kind:    KindAsteroid,
		Body:    Body{X: x, Y: y},
		Size:    size,
		Variant: variant,
		outline: outline,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
