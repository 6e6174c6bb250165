// Package timer schedules one-shot delayed callbacks on a virtual clock.
//
// The clock only moves when Advance is called, so a fixed-tick simulation
// drives its timers from the same goroutine that runs the tick and never
// races with them. Entries carry the generation that was current when they
// were scheduled; the consumer compares it with its own generation when the
// entry fires and ignores stale ones. There is no cancellation.
package timer

import (
	"container/heap"
	"time"
)

// Entry is a scheduled payload.
type Entry[T any] struct {
	Payload    T
	Generation uint64
	Due        time.Duration // Virtual time at which the entry fires
	seq        uint64        // Scheduling order, breaks ties between equal Due
}

// Scheduler is a virtual-time queue of one-shot entries.
//
// Scheduler is not safe for concurrent use.
type Scheduler[T any] struct {
	now   time.Duration
	seq   uint64
	queue entryHeap[T]
}

// NewScheduler creates a scheduler at virtual time zero.
func NewScheduler[T any]() *Scheduler[T] {
	return &Scheduler[T]{}
}

// After schedules payload to fire once the clock has advanced by d.
// Negative durations fire on the next Advance.
func (s *Scheduler[T]) After(d time.Duration, payload T, generation uint64) {
	if d < 0 {
		d = 0
	}
	s.seq++
	heap.Push(&s.queue, Entry[T]{
		Payload:    payload,
		Generation: generation,
		Due:        s.now + d,
		seq:        s.seq,
	})
}

// Advance moves the clock forward by dt and returns every entry that became
// due, ordered by due time and then by scheduling order.
func (s *Scheduler[T]) Advance(dt time.Duration) []Entry[T] {
	if dt > 0 {
		s.now += dt
	}
	var due []Entry[T]
	for len(s.queue) > 0 && s.queue[0].Due <= s.now {
		due = append(due, heap.Pop(&s.queue).(Entry[T]))
	}
	return due
}

// Now returns the current virtual time.
func (s *Scheduler[T]) Now() time.Duration {
	return s.now
}

type entryHeap[T any] []Entry[T]

func (h entryHeap[T]) Len() int { return len(h) }

func (h entryHeap[T]) Less(i, j int) bool {
	if h[i].Due != h[j].Due {
		return h[i].Due < h[j].Due
	}
	return h[i].seq < h[j].seq
}

func (h entryHeap[T]) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap[T]) Push(x any) { *h = append(*h, x.(Entry[T])) }

func (h *entryHeap[T]) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	var zero Entry[T]
	old[n-1] = zero
	*h = old[:n-1]
	return e
}
