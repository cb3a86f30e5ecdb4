package entity

import (
	"time"

	"github.com/vovakirdan/cybergrid/internal/grid"
)

const (
	// PlacementAttempts bounds the random search for one free cell.
	PlacementAttempts = 5000
	// DroneSpawnClearance is the Chebyshev radius around the runner spawn
	// kept free of drones.
	DroneSpawnClearance = 5
)

// Registry exclusively owns every entity of the running level.
// Slices keep insertion order so iteration is deterministic.
type Registry struct {
	runner      Runner
	items       []Item
	drones      []Drone
	projectiles []Projectile
	nextID      int
	destroyed   int
}

// New returns a registry with the runner at spawn and nothing else.
func New() *Registry {
	r := &Registry{}
	r.Clear()
	return r
}

// Clear removes every item, drone and projectile and puts the runner back
// at spawn facing up.
func (r *Registry) Clear() {
	r.runner = Runner{Pos: grid.Spawn, Facing: grid.DirUp}
	r.items = nil
	r.drones = nil
	r.projectiles = nil
	r.nextID = 0
	r.destroyed = 0
}

func (r *Registry) allocID() int {
	r.nextID++
	return r.nextID
}

// Runner returns the runner.
func (r *Registry) Runner() Runner {
	return r.runner
}

// Items returns the remaining items in spawn order.
func (r *Registry) Items() []Item {
	out := make([]Item, len(r.items))
	copy(out, r.items)
	return out
}

// Drones returns the alive drones in spawn order.
func (r *Registry) Drones() []Drone {
	out := make([]Drone, len(r.drones))
	copy(out, r.drones)
	return out
}

// Projectiles returns the live projectiles in firing order.
func (r *Registry) Projectiles() []Projectile {
	out := make([]Projectile, len(r.projectiles))
	copy(out, r.projectiles)
	return out
}

// ItemCount returns how many items remain.
func (r *Registry) ItemCount() int {
	return len(r.items)
}

// DronesRemaining returns the number of alive drones.
func (r *Registry) DronesRemaining() int {
	return len(r.drones)
}

// DronesDestroyed returns how many drones were destroyed since the last Clear.
func (r *Registry) DronesDestroyed() int {
	return r.destroyed
}

// ItemAt returns the item occupying c.
func (r *Registry) ItemAt(c grid.Coord) (Item, bool) {
	for _, it := range r.items {
		if it.Pos == c {
			return it, true
		}
	}
	return Item{}, false
}

// DroneAt returns the alive drone occupying c.
func (r *Registry) DroneAt(c grid.Coord) (Drone, bool) {
	for _, d := range r.drones {
		if d.Pos == c {
			return d, true
		}
	}
	return Drone{}, false
}

// NearItem reports whether c is an item cell or Chebyshev-adjacent to one.
func (r *Registry) NearItem(c grid.Coord) bool {
	for _, it := range r.items {
		if it.Pos.Adjacent(c) {
			return true
		}
	}
	return false
}

// Occupied reports whether any item or drone sits on c.
func (r *Registry) Occupied(c grid.Coord) bool {
	if _, ok := r.ItemAt(c); ok {
		return true
	}
	_, ok := r.DroneAt(c)
	return ok
}

func randomCell(rng Rand) grid.Coord {
	return grid.C(rng.Intn(grid.Size), rng.Intn(grid.Size))
}

// SpawnItems places count items on distinct random cells other than the
// runner spawn. It returns a *SpawnError when a cell cannot be found.
func (r *Registry) SpawnItems(rng Rand, count int) error {
	for i := 0; i < count; i++ {
		c, ok := r.place(rng, r.itemCellFree)
		if !ok {
			return &SpawnError{Kind: "item", Index: i, Attempts: PlacementAttempts}
		}
		r.items = append(r.items, Item{ID: r.allocID(), Pos: c})
	}
	return nil
}

// SpawnDrones places count drones away from items, other drones and the
// runner spawn. Drones start with their previous position equal to their
// spawn cell.
func (r *Registry) SpawnDrones(rng Rand, count int) error {
	for i := 0; i < count; i++ {
		c, ok := r.place(rng, r.droneCellFree)
		if !ok {
			return &SpawnError{Kind: "drone", Index: i, Attempts: PlacementAttempts}
		}
		r.drones = append(r.drones, Drone{ID: r.allocID(), Pos: c, Prev: c, Alive: true})
	}
	return nil
}

func (r *Registry) place(rng Rand, free func(grid.Coord) bool) (grid.Coord, bool) {
	for attempt := 0; attempt < PlacementAttempts; attempt++ {
		c := randomCell(rng)
		if free(c) {
			return c, true
		}
	}
	return grid.Coord{}, false
}

func (r *Registry) itemCellFree(c grid.Coord) bool {
	if c == grid.Spawn {
		return false
	}
	_, taken := r.ItemAt(c)
	return !taken
}

func (r *Registry) droneCellFree(c grid.Coord) bool {
	if c.Chebyshev(grid.Spawn) <= DroneSpawnClearance {
		return false
	}
	if r.NearItem(c) {
		return false
	}
	_, taken := r.DroneAt(c)
	return !taken
}

// AddItem places an item on c without spawn checks and returns it.
// Scenario setups and tests use it to build exact layouts.
func (r *Registry) AddItem(c grid.Coord) Item {
	it := Item{ID: r.allocID(), Pos: c}
	r.items = append(r.items, it)
	return it
}

// AddDrone places a drone on c without spawn checks and returns it.
func (r *Registry) AddDrone(c grid.Coord) Drone {
	d := Drone{ID: r.allocID(), Pos: c, Prev: c, Alive: true}
	r.drones = append(r.drones, d)
	return d
}

// CollectItem removes the item with the given id. It reports whether an item
// was removed; collecting twice is a no-op.
func (r *Registry) CollectItem(id int) bool {
	for i, it := range r.items {
		if it.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return true
		}
	}
	return false
}

// DamageDrone records one hit on the drone and returns its health fraction.
// destroyed is true on the hit that removes the drone. Damaging a drone that
// is already gone is a no-op returning (0, false).
func (r *Registry) DamageDrone(id int) (health float64, destroyed bool) {
	for i := range r.drones {
		d := &r.drones[i]
		if d.ID != id {
			continue
		}
		d.Hits++
		health = d.Health()
		if d.Hits >= MaxHits {
			r.drones = append(r.drones[:i], r.drones[i+1:]...)
			r.destroyed++
			return health, true
		}
		return health, false
	}
	return 0, false
}

// MoveRunner turns the runner to d and steps one cell if the target is in
// bounds. It reports whether the runner moved.
func (r *Registry) MoveRunner(d grid.Dir) bool {
	if d == grid.DirNone {
		return false
	}
	r.runner.Facing = d
	next := r.runner.Pos.Step(d)
	if !next.InBounds() {
		return false
	}
	r.runner.Pos = next
	return true
}

// PlaceRunner puts the runner on c, clamped to the grid.
func (r *Registry) PlaceRunner(c grid.Coord) {
	r.runner.Pos = c.Clamp()
}

// MoveDrone moves a drone to c, remembering its old cell.
func (r *Registry) MoveDrone(id int, c grid.Coord) bool {
	for i := range r.drones {
		if r.drones[i].ID == id {
			r.drones[i].Prev = r.drones[i].Pos
			r.drones[i].Pos = c
			return true
		}
	}
	return false
}

// FireProjectile launches a projectile from the runner's cell in its facing direction.
func (r *Registry) FireProjectile(now time.Duration) Projectile {
	dir := r.runner.Facing
	if dir == grid.DirNone {
		dir = grid.DirUp
	}
	dx, dy := dir.Delta()
	p := Projectile{ID: r.allocID(), Pos: r.runner.Pos, DX: dx, DY: dy, Born: now}
	r.projectiles = append(r.projectiles, p)
	return p
}

// StepProjectiles advances every projectile one cell and drops those that
// leave the grid. It returns the number dropped.
func (r *Registry) StepProjectiles() int {
	kept := r.projectiles[:0]
	for _, p := range r.projectiles {
		p.Pos = p.Pos.Add(p.DX, p.DY)
		if p.Pos.InBounds() {
			kept = append(kept, p)
		}
	}
	dropped := len(r.projectiles) - len(kept)
	r.projectiles = kept
	return dropped
}

// RemoveProjectile destroys the projectile with the given id.
func (r *Registry) RemoveProjectile(id int) bool {
	for i, p := range r.projectiles {
		if p.ID == id {
			r.projectiles = append(r.projectiles[:i], r.projectiles[i+1:]...)
			return true
		}
	}
	return false
}

// ClearProjectiles removes all projectiles.
func (r *Registry) ClearProjectiles() {
	r.projectiles = nil
}
