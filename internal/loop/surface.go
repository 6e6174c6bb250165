package loop

import (
	"time"

	"github.com/tomz197/asteroids-classic/internal/object"
)

// Surface is told when participants come and go and owns the legend.
// Refresh is called once at the end of every tick.
type Surface interface {
	AddParticipant(p *object.Participant)
	RemoveParticipant(p *object.Participant)
	SetLegend(text string)
	Refresh()
}

// Display shows the lives and score counters.
type Display interface {
	SetLives(lives int)
	SetScore(score int)
}

// Cue names understood by a Cues implementation.
const (
	CueShoot     = "shoot"
	CueExplosion = "explosion"
	CueThrust    = "thrust"
)

// Cues plays named sound effects. Play must not block and must not fail
// the caller.
type Cues interface {
	Play(name string)
}

// Result describes a finished game.
type Result struct {
	Score    int
	Level    int
	Duration time.Duration // Simulated play time
}

// Recorder receives the result of every game that ends. Record must not
// block the tick.
type Recorder interface {
	Record(r Result)
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(r Result)

func (f RecorderFunc) Record(r Result) { f(r) }

type nopSurface struct{}

func (nopSurface) AddParticipant(*object.Participant)    {}
func (nopSurface) RemoveParticipant(*object.Participant) {}
func (nopSurface) SetLegend(string)                      {}
func (nopSurface) Refresh()                              {}

type nopDisplay struct{}

func (nopDisplay) SetLives(int) {}
func (nopDisplay) SetScore(int) {}

type nopCues struct{}

func (nopCues) Play(string) {}

type nopRecorder struct{}

func (nopRecorder) Record(Result) {}
