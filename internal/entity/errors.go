package entity

import (
	"errors"
	"fmt"
)

// ErrSpawnFailure is returned when random placement runs out of attempts.
// With the shipped level table it means a configuration defect.
var ErrSpawnFailure = errors.New("entity: spawn failure")

// SpawnError describes which placement gave up.
type SpawnError struct {
	Kind     string // "item" or "drone"
	Index    int    // zero-based index of the entity being placed
	Attempts int
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("entity: cannot place %s %d after %d attempts", e.Kind, e.Index, e.Attempts)
}

func (e *SpawnError) Unwrap() error {
	return ErrSpawnFailure
}
