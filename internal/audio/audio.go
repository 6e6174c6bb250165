// Package audio plays the game's short synthesized sound cues.
//
// A Player that cannot open the audio device stays silent: cues are
// accepted and dropped, so the game runs the same with or without sound.
package audio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// ErrUnknownCue is returned for a cue name with no sound.
var ErrUnknownCue = errors.New("unknown cue")

// cues maps cue names to their sound builders.
var cues = map[string]func() (beep.Streamer, error){
	"shoot":     shootSound,
	"explosion": explosionSound,
	"thrust":    thrustSound,
}

// Player plays cues on the default audio device.
type Player struct {
	mu      sync.Mutex
	enabled bool
	logger  *log.Logger
}

// Options configures a Player.
type Options struct {
	Enabled bool // False creates a silent player without touching the device
	Logger  *log.Logger
}

// New creates a Player. Device failures are logged and leave the player silent.
func New(opts Options) *Player {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	p := &Player{logger: opts.Logger}
	if !opts.Enabled {
		return p
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		p.logger.Warn("audio disabled", "err", err)
		return p
	}
	p.enabled = true
	return p
}

// Play starts a cue and returns immediately. Failures are logged.
func (p *Player) Play(name string) {
	s, err := Cue(name)
	if err != nil {
		p.logger.Warn("cue not played", "cue", name, "err", err)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled {
		return
	}
	speaker.Play(s)
}

// Close releases the audio device. The player is silent afterwards.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.enabled = false
}

// Cue builds the finite stream for a named cue.
func Cue(name string) (beep.Streamer, error) {
	build, ok := cues[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCue, name)
	}
	s, err := build()
	if err != nil {
		return nil, fmt.Errorf("build cue %q: %w", name, err)
	}
	return s, nil
}

// shootSound is a short bright blip.
func shootSound() (beep.Streamer, error) {
	tone, err := generators.SineTone(sampleRate, 880)
	if err != nil {
		return nil, err
	}
	return volume(fade(beep.Take(sampleRate.N(60*time.Millisecond), tone), 0.06), 0.35), nil
}

// explosionSound is decaying noise over a low rumble.
func explosionSound() (beep.Streamer, error) {
	d := 400 * time.Millisecond
	return volume(fade(&noise{rumble: 60, length: sampleRate.N(d)}, d.Seconds()/4), 0.5), nil
}

// thrustSound is a brief low hiss.
func thrustSound() (beep.Streamer, error) {
	d := 150 * time.Millisecond
	return volume(fade(&noise{rumble: 40, length: sampleRate.N(d)}, d.Seconds()/2), 0.2), nil
}

// volume scales a stream by a linear factor.
func volume(s beep.Streamer, v float64) beep.Streamer {
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}

// fade applies an exponential decay with the given time constant in seconds.
func fade(s beep.Streamer, tau float64) beep.Streamer {
	var pos int
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n, ok := s.Stream(samples)
		for i := 0; i < n; i++ {
			g := math.Exp(-float64(pos) / float64(sampleRate) / tau)
			samples[i][0] *= g
			samples[i][1] *= g
			pos++
		}
		return n, ok
	})
}

// noise is white noise mixed with a sine rumble, lasting length samples.
type noise struct {
	rumble float64 // Hz
	length int
	pos    int
}

func (n *noise) Stream(samples [][2]float64) (int, bool) {
	if n.pos >= n.length {
		return 0, false
	}
	count := min(len(samples), n.length-n.pos)
	for i := 0; i < count; i++ {
		t := float64(n.pos) / float64(sampleRate)
		v := 0.6*(rand.Float64()*2-1) + 0.4*math.Sin(2*math.Pi*n.rumble*t)
		samples[i][0] = v
		samples[i][1] = v
		n.pos++
	}
	return count, true
}

func (n *noise) Err() error { return nil }
