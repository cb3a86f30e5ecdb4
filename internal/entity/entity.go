// Package entity owns the runner, data nodes, drones and projectiles of one level.
package entity

import (
	"time"

	"github.com/vovakirdan/cybergrid/internal/grid"
)

// MaxHits is the number of projectile hits that destroys a drone.
const MaxHits = 3

// Rand is the randomness the registry draws spawn cells from.
// *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Runner is the player-controlled entity.
type Runner struct {
	Pos    grid.Coord
	Facing grid.Dir
}

// Item is a data node waiting to be collected.
type Item struct {
	ID  int
	Pos grid.Coord
}

// Drone is a patrol unit hunting the nearest item.
type Drone struct {
	ID    int
	Pos   grid.Coord
	Prev  grid.Coord // position one tick ago
	Hits  int
	Alive bool
}

// Health returns the remaining health fraction max(0, 1 - hits/3).
func (d Drone) Health() float64 {
	return HealthAfter(d.Hits)
}

// HealthAfter returns the health fraction of a drone hit k times.
func HealthAfter(k int) float64 {
	h := 1 - float64(k)/MaxHits
	if h < 0 {
		return 0
	}
	return h
}

// Projectile travels one cell per step along (DX, DY).
type Projectile struct {
	ID   int
	Pos  grid.Coord
	DX   int
	DY   int
	Born time.Duration // simulated time of firing
}
