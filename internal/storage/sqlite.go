// Package storage keeps the run ledger: one row per finished level.
// Uses the pure-Go modernc.org/sqlite driver on an in-memory database, so
// nothing outlives the process.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Outcome values stored in the ledger.
const (
	OutcomeVictory  = "victory"
	OutcomeGameOver = "gameover"
)

// Store manages the ledger database.
type Store struct {
	db *sql.DB
}

// Run is one finished level.
type Run struct {
	ID              int64
	RunID           string // groups the levels played from one menu start
	SessionID       string // player session ("local" or an SSH session id)
	Level           int
	Outcome         string
	Collected       int
	Total           int
	DronesDestroyed int
	Duration        time.Duration
	CreatedAt       time.Time
}

// Summary aggregates the ledger of one session.
type Summary struct {
	Levels          int
	Victories       int
	GameOvers       int
	BestLevel       int // highest level won, 0 if none
	Collected       int
	DronesDestroyed int
	PlayTime        time.Duration
}

// LevelStats counts attempts and wins of one level.
type LevelStats struct {
	Level     int
	Attempts  int
	Victories int
}

// Open creates a fresh in-memory ledger and runs migrations.
func Open() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			session_id TEXT NOT NULL,
			level INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			collected INTEGER NOT NULL DEFAULT 0,
			total INTEGER NOT NULL DEFAULT 0,
			drones_destroyed INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_session ON runs(session_id);
		CREATE INDEX IF NOT EXISTS idx_runs_run_id ON runs(run_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record stores a finished level and returns its row ID.
func (s *Store) Record(r Run) (int64, error) {
	if r.Outcome != OutcomeVictory && r.Outcome != OutcomeGameOver {
		return 0, fmt.Errorf("storage: unknown outcome %q", r.Outcome)
	}
	result, err := s.db.Exec(
		`INSERT INTO runs
		 (run_id, session_id, level, outcome, collected, total, drones_destroyed, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.SessionID, r.Level, r.Outcome, r.Collected, r.Total, r.DronesDestroyed,
		r.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

const runColumns = `id, run_id, session_id, level, outcome, collected, total, drones_destroyed, duration_ms, created_at`

// Recent returns the newest rows of a session, newest first.
func (s *Store) Recent(sessionID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.query(
		`SELECT `+runColumns+` FROM runs WHERE session_id = ? ORDER BY id DESC LIMIT ?`,
		sessionID, limit,
	)
}

// RunLevels returns every level of one run in play order.
func (s *Store) RunLevels(runID string) ([]Run, error) {
	return s.query(`SELECT `+runColumns+` FROM runs WHERE run_id = ? ORDER BY id`, runID)
}

func (s *Store) query(q string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.RunID, &r.SessionID, &r.Level, &r.Outcome,
			&r.Collected, &r.Total, &r.DronesDestroyed, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// Summary aggregates every row of a session.
func (s *Store) Summary(sessionID string) (Summary, error) {
	var sum Summary
	var playMS int64
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(outcome = 'victory'), 0),
		        COALESCE(SUM(outcome = 'gameover'), 0),
		        COALESCE(MAX(CASE WHEN outcome = 'victory' THEN level END), 0),
		        COALESCE(SUM(collected), 0),
		        COALESCE(SUM(drones_destroyed), 0),
		        COALESCE(SUM(duration_ms), 0)
		 FROM runs WHERE session_id = ?`,
		sessionID,
	).Scan(&sum.Levels, &sum.Victories, &sum.GameOvers, &sum.BestLevel, &sum.Collected, &sum.DronesDestroyed, &playMS)
	if err != nil {
		return Summary{}, fmt.Errorf("storage: cannot summarize runs: %w", err)
	}
	sum.PlayTime = time.Duration(playMS) * time.Millisecond
	return sum, nil
}

// LevelBreakdown returns attempts and wins per level for a session, by level.
func (s *Store) LevelBreakdown(sessionID string) ([]LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level, COUNT(*), COALESCE(SUM(outcome = 'victory'), 0)
		 FROM runs WHERE session_id = ?
		 GROUP BY level ORDER BY level`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level stats: %w", err)
	}
	defer rows.Close()

	var stats []LevelStats
	for rows.Next() {
		var ls LevelStats
		if err := rows.Scan(&ls.Level, &ls.Attempts, &ls.Victories); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats = append(stats, ls)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
