package loop

import (
	"bufio"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroids-classic/internal/draw"
	"github.com/tomz197/asteroids-classic/internal/input"
	"github.com/tomz197/asteroids-classic/internal/loop/config"
	"github.com/tomz197/asteroids-classic/internal/object"
)

// RunOptions configures a terminal game session.
type RunOptions struct {
	TermSizeFunc draw.TermSizeFunc // Defaults to the size of os.Stdout
	Seed         int64             // Zero picks a time-based seed
	Cues         Cues
	Recorder     Recorder
	Logger       *log.Logger
}

// Run plays one terminal session until the player quits or r ends.
// Each tick reads input, advances the controller and draws a frame.
func Run(r *bufio.Reader, w io.Writer, opts RunOptions) error {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	arena := object.NewArena(config.ArenaSize)
	screen := NewScreen(w, arena, opts.TermSizeFunc)
	ctrl := NewController(Options{
		Arena:    arena,
		Rand:     rand.New(rand.NewSource(seed)),
		Surface:  screen,
		Display:  screen,
		Cues:     opts.Cues,
		Recorder: opts.Recorder,
		Logger:   opts.Logger,
	})
	stream := input.StartStream(r)
	defer stream.Close()

	draw.HideCursor(w)
	defer draw.ShowCursor(w)
	draw.ClearScreen(w)

	for {
		frameStart := time.Now()

		// ===== INPUT PHASE =====
		inp := input.ReadInput(stream)
		if inp.Quit || stream.Closed() {
			break
		}
		applyInput(ctrl, inp)

		// ===== UPDATE + DRAW PHASE =====
		screen.SetHint(hintFor(ctrl.State()))
		ctrl.Tick()
		if err := screen.Err(); err != nil {
			return err
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed < config.TickInterval {
			time.Sleep(config.TickInterval - elapsed)
		}
	}

	draw.ClearScreen(w)
	return nil
}

// applyInput forwards one frame of terminal input to the controller.
// Held keys are restated every frame since terminals never report releases.
func applyInput(c *Controller, in input.Input) {
	if in.Start {
		c.Start()
	}

	held := [keyCount]bool{
		KeyRotateLeft:  in.Left,
		KeyRotateRight: in.Right,
		KeyThrust:      in.Thrust,
		KeyBrake:       in.Brake,
	}
	for k := range keyCount {
		c.SetKey(k, held[k])
	}

	if in.Teleport {
		c.Teleport()
	}
	for range in.Fire {
		c.Fire()
	}
}
