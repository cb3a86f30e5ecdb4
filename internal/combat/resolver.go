// Package combat resolves overlaps on the grid: data node collection,
// projectile hits and runner contact with drones.
package combat

import (
	"github.com/vovakirdan/cybergrid/internal/core"
	"github.com/vovakirdan/cybergrid/internal/entity"
	"github.com/vovakirdan/cybergrid/internal/grid"
)

// Outcome is the state change a resolution asks for.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeVictory
	OutcomeGameOver
)

func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "victory"
	case OutcomeGameOver:
		return "gameover"
	default:
		return "none"
	}
}

// Tally counts collected data nodes against the level total.
type Tally struct {
	Collected int
	Total     int
}

// Complete reports whether every node of the level has been collected.
func (t Tally) Complete() bool {
	return t.Total > 0 && t.Collected >= t.Total
}

// Hit describes one projectile striking a drone.
type Hit struct {
	DroneID      int
	ProjectileID int
	Pos          grid.Coord
	Health       float64
	Destroyed    bool
}

// Report lists everything that happened during one resolution.
type Report struct {
	Collected     []entity.Item
	Hits          []Hit
	AllEliminated bool // the last drone was destroyed by this resolution
	Outcome       Outcome
}

// Empty reports whether nothing happened.
func (r Report) Empty() bool {
	return len(r.Collected) == 0 && len(r.Hits) == 0 && !r.AllEliminated && r.Outcome == OutcomeNone
}

// Resolve evaluates overlaps in order: collection, projectile hits, then
// runner contact. Collection only happens on the exact runner cell. It does
// nothing unless state is playing, and stops at the first outcome.
func Resolve(state core.GameState, reg *entity.Registry, tally *Tally) Report {
	var rep Report
	if state != core.StatePlaying {
		return rep
	}

	runner := reg.Runner().Pos
	if it, ok := reg.ItemAt(runner); ok && reg.CollectItem(it.ID) {
		tally.Collected++
		rep.Collected = append(rep.Collected, it)
		if tally.Complete() {
			rep.Outcome = OutcomeVictory
			return rep
		}
	}

	for _, p := range reg.Projectiles() {
		d, ok := reg.DroneAt(p.Pos)
		if !ok {
			continue
		}
		reg.RemoveProjectile(p.ID)
		health, destroyed := reg.DamageDrone(d.ID)
		rep.Hits = append(rep.Hits, Hit{
			DroneID:      d.ID,
			ProjectileID: p.ID,
			Pos:          p.Pos,
			Health:       health,
			Destroyed:    destroyed,
		})
		if destroyed && reg.DronesRemaining() == 0 {
			rep.AllEliminated = true
		}
	}

	if _, ok := reg.DroneAt(runner); ok {
		rep.Outcome = OutcomeGameOver
	}
	return rep
}
