package loop

import (
	"time"

	"github.com/tomz197/asteroids-classic/internal/loop/config"
	"github.com/tomz197/asteroids-classic/internal/object"
	"github.com/tomz197/asteroids-classic/internal/score"
)

// Key is a held ship control.
type Key int

const (
	KeyRotateLeft Key = iota
	KeyRotateRight
	KeyThrust
	KeyBrake
	keyCount
)

// session holds the per-game counters owned by the controller.
type session struct {
	tracker *score.Tracker

	level      int
	bullets    int // Live bullets, never negative
	destroyed  int // Asteroids destroyed since the board was last populated
	generation uint64
	ship       object.ID
	keys       [keyCount]bool
	startedAt  time.Duration // Virtual clock reading when the game started
}

func newSession() session {
	return session{
		tracker: score.NewTracker(config.ScoreModifier, config.NewLifeThreshold, config.InitialLives),
	}
}

// reset prepares the counters for a new game.
func (s *session) reset(now time.Duration) {
	s.tracker.Reset()
	s.level = 0
	s.bullets = 0
	s.destroyed = 0
	s.ship = object.NoID
	s.keys = [keyCount]bool{}
	s.startedAt = now
}

// Stats is a read-only snapshot of the session.
type Stats struct {
	Score      int
	Lives      int
	Level      int
	Bullets    int
	Destroyed  int
	Generation uint64
}

func (s *session) stats() Stats {
	return Stats{
		Score:      s.tracker.Score(),
		Lives:      s.tracker.Lives(),
		Level:      s.level,
		Bullets:    s.bullets,
		Destroyed:  s.destroyed,
		Generation: s.generation,
	}
}
