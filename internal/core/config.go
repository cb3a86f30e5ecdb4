package core

// RuntimeConfig contains configuration passed to a session at initialization.
// The front end uses it to size the screen and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second driving the simulation (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is the single process-wide phase of a session.
// Exactly one is active at a time.
type GameState int

const (
	StateMenu GameState = iota
	StatePlaying
	StatePaused
	StateVictory
	StateGameOver
)

// String returns the lower-case name of the state.
func (s GameState) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateVictory:
		return "victory"
	case StateGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// Finished reports whether the state ends a level (victory or game over).
func (s GameState) Finished() bool {
	return s == StateVictory || s == StateGameOver
}
