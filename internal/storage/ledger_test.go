package storage

import (
	"testing"
	"time"

	"github.com/vovakirdan/cybergrid/internal/core"
	"github.com/vovakirdan/cybergrid/internal/game"
)

func TestLedgerRecordsResults(t *testing.T) {
	store := openTestStore(t)
	ledger := NewLedger(store, "local")
	first := ledger.RunID()
	if first == "" {
		t.Fatal("Expected a run ID")
	}

	results := []game.Result{
		{Level: 1, Outcome: core.StateVictory, Collected: 8, Total: 8, Duration: 30 * time.Second},
		{Level: 2, Outcome: core.StateGameOver, Collected: 4, Total: 10, DronesDestroyed: 1},
	}
	for _, r := range results {
		if err := ledger.Record(r); err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
	}

	second := ledger.NewRun()
	if second == first {
		t.Error("NewRun() should change the run ID")
	}
	if err := ledger.Record(game.Result{Level: 1, Outcome: core.StateGameOver, Total: 8}); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}

	runs, err := store.RunLevels(first)
	if err != nil {
		t.Fatalf("RunLevels() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 levels in first run, got %d", len(runs))
	}
	if runs[0].Outcome != OutcomeVictory || runs[1].Outcome != OutcomeGameOver {
		t.Errorf("Unexpected outcomes: %s, %s", runs[0].Outcome, runs[1].Outcome)
	}

	sum, err := ledger.Summary()
	if err != nil {
		t.Fatalf("Summary() failed: %v", err)
	}
	if sum.Levels != 3 || sum.Victories != 1 || sum.BestLevel != 1 {
		t.Errorf("Summary() = %+v", sum)
	}

	recent, err := ledger.Recent(5)
	if err != nil {
		t.Fatalf("Recent() failed: %v", err)
	}
	if len(recent) != 3 || recent[0].RunID != second {
		t.Errorf("Expected newest row from the second run, got %+v", recent)
	}
}
