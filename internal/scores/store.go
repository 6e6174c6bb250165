// Package scores persists finished games in SQLite and serves the high
// score table.
package scores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// ErrClosed is returned by a Store after Close.
var ErrClosed = errors.New("scores: store closed")

// Entry is one finished game.
type Entry struct {
	ID         int64
	Player     string
	Score      int
	Level      int
	Duration   time.Duration
	FinishedAt time.Time
}

// Store wraps the SQLite database connection.
type Store struct {
	mu     sync.RWMutex
	conn   *sql.DB
	closed bool
}

// Open opens (or creates) the database at path.
func Open(path string) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// One connection serializes writers from concurrent sessions.
	conn.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// migrate creates tables if they don't exist.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		player TEXT NOT NULL DEFAULT '',
		score INTEGER NOT NULL,
		level INTEGER NOT NULL DEFAULT 0,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		finished_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_results_score ON results(score DESC, id);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Close closes the database connection. Later calls return ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.closed = true
	return s.conn.Close()
}

// Record stores a finished game and returns its ID. A zero FinishedAt is
// replaced by the current time.
func (s *Store) Record(ctx context.Context, e Entry) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, ErrClosed
	}

	if e.FinishedAt.IsZero() {
		e.FinishedAt = time.Now()
	}
	res, err := s.conn.ExecContext(ctx,
		`INSERT INTO results (player, score, level, duration_ms, finished_at) VALUES (?, ?, ?, ?, ?)`,
		e.Player, e.Score, e.Level, e.Duration.Milliseconds(), e.FinishedAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("insert result: %w", err)
	}
	return res.LastInsertId()
}

// Top returns up to n results, highest score first. Ties go to the earlier game.
func (s *Store) Top(ctx context.Context, n int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	if n <= 0 {
		return nil, nil
	}

	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, player, score, level, duration_ms, finished_at FROM results ORDER BY score DESC, id ASC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e  Entry
			ms int64
		)
		if err := rows.Scan(&e.ID, &e.Player, &e.Score, &e.Level, &ms, &e.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		e.Duration = time.Duration(ms) * time.Millisecond
		out = append(out, e)
	}
	return out, rows.Err()
}
