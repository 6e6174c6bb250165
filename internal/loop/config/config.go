// Package config centralizes all tunable game parameters.
package config

import (
	"math"
	"time"
)

// Arena - the square, wrapping playfield in logical units.
// Rendering scales it to fit the terminal.
const (
	ArenaSize  = 750
	EdgeOffset = 100 // Distance of board-placed asteroids from the corners
)

// Simulation tick
const (
	TickRate     = 60
	TickInterval = time.Second / TickRate
)

// Ship
const (
	ShipRotateStep   = math.Pi / 16 // Radians per tick while a rotate key is held
	ShipAcceleration = 0.7          // Speed added per tick while thrusting
	ShipSpeedLimit   = 15.0
	ShipFriction     = 0.005 // Fraction of speed lost per friction step
	BrakeFrictionMul = 5     // Friction steps per tick while braking
	ShipNoseLength   = 20.0
	ShipStartFacing  = -math.Pi / 2 // Pointing up
)

// Bullets
const (
	MaxBullets     = 8
	BulletSpeed    = 15.0
	BulletDuration = 1000 * time.Millisecond
	BulletRadius   = 1.5
)

// Asteroids
const (
	AsteroidBaseSpeed   = 3.0 // Board speed at level 0; each level adds one
	AsteroidChildSpeed  = 5.5
	AsteroidMaxSize     = 2
	AsteroidVariants    = 4
	AsteroidsPerBoard   = 4
	RepopulateThreshold = 28 // Destructions that clear one full board
)

// Debris
const (
	DebrisPerAsteroid = 8
	DebrisSpeed       = 1.0
	DebrisMinDuration = 1500 * time.Millisecond
	DebrisJitter      = 500 * time.Millisecond
)

// Scoring and lives
const (
	InitialLives     = 3
	ScoreModifier    = 20
	NewLifeThreshold = 500
)

// Transitions and legends
const (
	EndDelay       = 2500 * time.Millisecond // Ship destroyed → respawn or game over
	LegendDuration = 1000 * time.Millisecond

	LegendSplash    = "Asteroids"
	LegendCollision = "Ouch!"
	LegendGameOver  = "Game Over"
)

// Terminal rendering
const (
	MaxTermWidth  = 160
	MaxTermHeight = 80
)
