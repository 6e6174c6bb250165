package input

import (
	"bufio"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyHeldKeys(t *testing.T) {
	s := newStream()
	now := time.Now()

	in := s.apply([]byte("a\x1b[A"), now)
	assert.True(t, in.Left)
	assert.True(t, in.Thrust)
	assert.False(t, in.Right)
	assert.False(t, in.Brake)

	// Still held shortly after, released once the hold lapses.
	in = s.apply(nil, now.Add(keyHoldDuration/2))
	assert.True(t, in.Left)
	in = s.apply(nil, now.Add(keyHoldDuration))
	assert.False(t, in.Left)
	assert.False(t, in.Thrust)
}

func TestApplyArrowKeys(t *testing.T) {
	s := newStream()

	in := s.apply([]byte("\x1b[B\x1b[C\x1b[D"), time.Now())

	assert.True(t, in.Brake)
	assert.True(t, in.Right)
	assert.True(t, in.Left)
	assert.False(t, in.Quit)
}

func TestApplyDiscretePresses(t *testing.T) {
	s := newStream()

	in := s.apply([]byte("  t\r q"), time.Now())

	assert.Equal(t, 3, in.Fire)
	assert.True(t, in.Teleport)
	assert.True(t, in.Start)
	assert.True(t, in.Quit)

	in = s.apply(nil, time.Now())
	assert.Zero(t, in.Fire)
	assert.False(t, in.Teleport)
}

func TestReadInputReportsEOF(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("n")))

	var started bool
	assert.Eventually(t, func() bool {
		started = ReadInput(s).Start || started
		return s.Closed()
	}, time.Second, time.Millisecond)
	assert.True(t, started, "bytes before EOF are delivered")
	assert.False(t, ReadInput(s).Quit)
}

// endless yields spaces forever.
type endless struct{}

func (endless) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = ' '
	}
	return len(p), nil
}

func TestCloseStopsReader(t *testing.T) {
	s := StartStream(bufio.NewReader(endless{}))

	// Nobody drains the stream: the reader fills the buffer and waits.
	assert.Eventually(t, func() bool {
		return len(s.ch) == cap(s.ch)
	}, time.Second, time.Millisecond)

	s.Close()
	s.Close()

	assert.Eventually(t, func() bool {
		for {
			select {
			case _, ok := <-s.ch:
				if !ok {
					return true
				}
			default:
				return false
			}
		}
	}, time.Second, time.Millisecond)
}
