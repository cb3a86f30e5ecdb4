// Package drone decides where each drone goes on a drone tick.
//
// The heuristic is greedy and per drone: head for the nearest remaining data
// node along the dominant axis, fall back to the other directions in random
// order, never step straight back and never come within one cell of a node.
package drone

import (
	"github.com/vovakirdan/cybergrid/internal/entity"
	"github.com/vovakirdan/cybergrid/internal/grid"
)

// Move records one drone step taken during a tick.
type Move struct {
	ID   int
	From grid.Coord
	To   grid.Coord
}

// Engine runs drone ticks. The random source only shuffles fallback directions.
type Engine struct {
	rng entity.Rand
}

// NewEngine creates an engine drawing from rng.
func NewEngine(rng entity.Rand) *Engine {
	return &Engine{rng: rng}
}

// Tick moves every alive drone at most one cell, in registry order.
// Each drone sees the positions of drones that already moved this tick.
// Drones with no remaining item, or no legal move, stay where they are.
func (e *Engine) Tick(reg *entity.Registry) []Move {
	items := reg.Items()
	if len(items) == 0 {
		return nil
	}
	var moves []Move
	for _, d := range reg.Drones() {
		target, ok := NearestItem(d.Pos, items)
		if !ok {
			continue
		}
		for _, dir := range e.Candidates(d.Pos, target.Pos) {
			to := d.Pos.Step(dir)
			if !Legal(reg, d, to) {
				continue
			}
			reg.MoveDrone(d.ID, to)
			moves = append(moves, Move{ID: d.ID, From: d.Pos, To: to})
			break
		}
	}
	return moves
}

// NearestItem returns the item closest to from by Euclidean distance.
// The first item wins ties.
func NearestItem(from grid.Coord, items []entity.Item) (entity.Item, bool) {
	best, bestDist := -1, 0
	for i, it := range items {
		dist := from.DistSq(it.Pos)
		if best < 0 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	if best < 0 {
		return entity.Item{}, false
	}
	return items[best], true
}

// PreferredDirections orders the compass toward target: the dominant axis
// first, then the secondary axis if it differs, then the rest in compass
// order. Equal deltas favour the vertical axis.
func PreferredDirections(from, target grid.Coord) []grid.Dir {
	dx, dy := target.X-from.X, target.Y-from.Y
	dirs := make([]grid.Dir, 0, len(grid.Compass))
	switch {
	case abs(dx) > abs(dy):
		dirs = append(dirs, horizontal(dx))
		if dy != 0 {
			dirs = append(dirs, vertical(dy))
		}
	case dy != 0:
		dirs = append(dirs, vertical(dy))
		if dx != 0 {
			dirs = append(dirs, horizontal(dx))
		}
	}
	for _, d := range grid.Compass {
		if !contains(dirs, d) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// Candidates returns PreferredDirections with everything after the first
// entry shuffled.
func (e *Engine) Candidates(from, target grid.Coord) []grid.Dir {
	dirs := PreferredDirections(from, target)
	shuffle(e.rng, dirs[1:])
	return dirs
}

// Legal reports whether drone d may step onto to.
func Legal(reg *entity.Registry, d entity.Drone, to grid.Coord) bool {
	if to == d.Prev {
		return false
	}
	if !to.InBounds() {
		return false
	}
	if other, ok := reg.DroneAt(to); ok && other.ID != d.ID {
		return false
	}
	return !reg.NearItem(to)
}

// shuffle is a Fisher-Yates shuffle.
func shuffle(rng entity.Rand, dirs []grid.Dir) {
	for i := len(dirs) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		dirs[i], dirs[j] = dirs[j], dirs[i]
	}
}

func horizontal(dx int) grid.Dir {
	if dx > 0 {
		return grid.DirRight
	}
	return grid.DirLeft
}

func vertical(dy int) grid.Dir {
	if dy > 0 {
		return grid.DirDown
	}
	return grid.DirUp
}

func contains(dirs []grid.Dir, d grid.Dir) bool {
	for _, x := range dirs {
		if x == d {
			return true
		}
	}
	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
