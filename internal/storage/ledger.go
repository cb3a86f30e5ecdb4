package storage

import (
	"github.com/google/uuid"

	"github.com/vovakirdan/cybergrid/internal/core"
	"github.com/vovakirdan/cybergrid/internal/game"
)

// Ledger records the finished levels of one player session. A run groups
// the levels played between two visits to the menu.
type Ledger struct {
	store     *Store
	sessionID string
	runID     string
}

// NewLedger binds a store to a session and starts the first run.
func NewLedger(store *Store, sessionID string) *Ledger {
	return &Ledger{store: store, sessionID: sessionID, runID: uuid.NewString()}
}

// SessionID returns the session the ledger writes for.
func (l *Ledger) SessionID() string {
	return l.sessionID
}

// RunID returns the current run.
func (l *Ledger) RunID() string {
	return l.runID
}

// NewRun starts a new run and returns its ID.
func (l *Ledger) NewRun() string {
	l.runID = uuid.NewString()
	return l.runID
}

// Record stores a finished level under the current run.
func (l *Ledger) Record(res game.Result) error {
	outcome := OutcomeGameOver
	if res.Outcome == core.StateVictory {
		outcome = OutcomeVictory
	}
	_, err := l.store.Record(Run{
		RunID:           l.runID,
		SessionID:       l.sessionID,
		Level:           res.Level,
		Outcome:         outcome,
		Collected:       res.Collected,
		Total:           res.Total,
		DronesDestroyed: res.DronesDestroyed,
		Duration:        res.Duration,
	})
	return err
}

// Recent returns the session's newest rows.
func (l *Ledger) Recent(limit int) ([]Run, error) {
	return l.store.Recent(l.sessionID, limit)
}

// Summary aggregates the session's rows.
func (l *Ledger) Summary() (Summary, error) {
	return l.store.Summary(l.sessionID)
}
