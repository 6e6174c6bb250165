// Package input turns raw terminal bytes into held keys and discrete presses.
package input

import (
	"bufio"
	"sync"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last byte.
// Terminals only report key repeats, never releases.
const keyHoldDuration = 120 * time.Millisecond

// Input represents the current frame's input state.
type Input struct {
	// Held controls.
	Left   bool
	Right  bool
	Thrust bool
	Brake  bool

	// Discrete presses since the previous frame.
	Fire     int
	Teleport bool
	Start    bool
	Quit     bool
}

// keyState tracks the last time each held key was seen.
type keyState struct {
	left   time.Time
	right  time.Time
	thrust time.Time
	brake  time.Time
}

// Stream delivers input bytes via a channel and tracks held keys.
type Stream struct {
	ch     chan byte
	done   chan struct{}
	once   sync.Once
	state  keyState
	closed bool
}

func newStream() *Stream {
	return &Stream{
		ch:   make(chan byte, 128),
		done: make(chan struct{}),
	}
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The goroutine exits when r ends, or at the next byte after Close.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		defer close(s.ch)
		for {
			b, err := r.ReadByte()
			if err != nil {
				return
			}
			select {
			case s.ch <- b:
			case <-s.done:
				return
			}
		}
	}()
	return s
}

// Close stops delivering bytes. Bytes read afterwards are dropped.
func (s *Stream) Close() {
	s.once.Do(func() { close(s.done) })
}

// Closed reports whether the underlying reader has ended and every byte
// before the end has been read.
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadInput drains all available bytes from the stream (non-blocking).
func ReadInput(s *Stream) Input {
	var buf []byte

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	return s.apply(buf, time.Now())
}

// apply parses buf, updates held key timestamps and builds the frame's input.
func (s *Stream) apply(buf []byte, now time.Time) Input {
	var in Input

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				s.state.thrust = now
			case 'B':
				s.state.brake = now
			case 'C':
				s.state.right = now
			case 'D':
				s.state.left = now
			}
			i += 2
			continue
		}

		switch b {
		case 'a', 'A', 'j', 'J':
			s.state.left = now
		case 'd', 'D', 'l', 'L':
			s.state.right = now
		case 'w', 'W', 'i', 'I':
			s.state.thrust = now
		case 's', 'S', 'k', 'K':
			s.state.brake = now
		case ' ':
			in.Fire++
		case 't', 'T':
			in.Teleport = true
		case '\n', '\r', 'n', 'N':
			in.Start = true
		case 'q', 'Q', '\x03':
			in.Quit = true
		}
	}

	in.Left = now.Sub(s.state.left) < keyHoldDuration
	in.Right = now.Sub(s.state.right) < keyHoldDuration
	in.Thrust = now.Sub(s.state.thrust) < keyHoldDuration
	in.Brake = now.Sub(s.state.brake) < keyHoldDuration
	return in
}
