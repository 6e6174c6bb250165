// Package score tracks score accumulation and remaining lives.
package score

// Tracker accumulates score and manages lives for one game.
//
// A bonus life is granted when the running score lands exactly on a multiple
// of the threshold. A single award that jumps over a multiple grants nothing.
type Tracker struct {
	modifier     int
	threshold    int
	initialLives int

	score int
	lives int
}

// NewTracker creates a tracker. modifier scales asteroid awards, threshold is
// the bonus-life interval (<= 0 disables bonus lives).
func NewTracker(modifier, threshold, initialLives int) *Tracker {
	t := &Tracker{
		modifier:     modifier,
		threshold:    threshold,
		initialLives: initialLives,
	}
	t.Reset()
	return t
}

// Reset restores the starting score and lives.
func (t *Tracker) Reset() {
	t.score = 0
	t.lives = t.initialLives
}

// AwardAsteroid adds modifier × (size+1) points for destroying an asteroid of
// the given size and grants a life when the new score is an exact multiple of
// the threshold.
func (t *Tracker) AwardAsteroid(size int) (points int, lifeGranted bool) {
	if size < 0 {
		size = 0
	}
	points = t.modifier * (size + 1)
	if points <= 0 {
		return 0, false
	}
	t.score += points

	if t.threshold > 0 && t.score%t.threshold == 0 {
		t.lives++
		lifeGranted = true
	}
	return points, lifeGranted
}

// LoseLife removes one life, never going below zero, and returns the lives left.
func (t *Tracker) LoseLife() int {
	if t.lives > 0 {
		t.lives--
	}
	return t.lives
}

// Score returns the current score.
func (t *Tracker) Score() int {
	return t.score
}

// Lives returns the remaining lives.
func (t *Tracker) Lives() int {
	return t.lives
}

// Out reports whether no lives remain.
func (t *Tracker) Out() bool {
	return t.lives == 0
}
