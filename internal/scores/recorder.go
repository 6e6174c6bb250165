package scores

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// writeTimeout bounds a single background insert.
const writeTimeout = 5 * time.Second

// Recorder writes entries to a Store from a background goroutine so that
// callers on the game tick never wait for the database.
type Recorder struct {
	store  *Store
	logger *log.Logger
	queue  chan Entry
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewRecorder starts a recorder that buffers up to size pending entries.
func NewRecorder(store *Store, size int, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	r := &Recorder{
		store:  store,
		logger: logger,
		queue:  make(chan Entry, max(size, 1)),
	}
	r.wg.Add(1)
	go r.run()
	return r
}

func (r *Recorder) run() {
	defer r.wg.Done()
	for e := range r.queue {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		id, err := r.store.Record(ctx, e)
		cancel()
		if err != nil {
			r.logger.Error("result not saved", "player", e.Player, "score", e.Score, "err", err)
			continue
		}
		r.logger.Info("result saved", "id", id, "player", e.Player, "score", e.Score)
	}
}

// Submit queues an entry. It never blocks: when the queue is full or the
// recorder is closed the entry is dropped and logged.
func (r *Recorder) Submit(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		r.logger.Warn("result dropped, recorder closed", "player", e.Player, "score", e.Score)
		return
	}
	if e.FinishedAt.IsZero() {
		e.FinishedAt = time.Now()
	}
	select {
	case r.queue <- e:
	default:
		r.logger.Warn("result dropped, queue full", "player", e.Player, "score", e.Score)
	}
}

// Close stops accepting entries and waits for queued ones to be written.
func (r *Recorder) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	close(r.queue)
	r.mu.Unlock()

	r.wg.Wait()
}
