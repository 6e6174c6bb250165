package loop

import "fmt"

// State is the phase of the game.
type State int

const (
	// StateSplash shows the title over drifting asteroids. Nothing collides.
	StateSplash State = iota
	// StateActive is normal play with a ship on the board.
	StateActive
	// StateShipPending follows a ship destruction while the respawn or
	// game over decision is delayed.
	StateShipPending
	// StateGameOver keeps the board drifting with input detached.
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateSplash:
		return "splash"
	case StateActive:
		return "active"
	case StateShipPending:
		return "ship-pending"
	case StateGameOver:
		return "game-over"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// playing reports whether collisions and ship controls are live.
func (s State) playing() bool {
	return s == StateActive || s == StateShipPending
}
