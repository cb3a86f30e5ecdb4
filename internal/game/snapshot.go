package game

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/vovakirdan/cybergrid/internal/core"
	"github.com/vovakirdan/cybergrid/internal/entity"
	"github.com/vovakirdan/cybergrid/internal/level"
)

// HealthBand buckets a drone's health for display.
type HealthBand int

const (
	BandHigh HealthBand = iota // > 1/2
	BandMid                    // > 1/4
	BandLow
)

// BandFor returns the band of a health fraction.
func BandFor(health float64) HealthBand {
	switch {
	case health > 0.5:
		return BandHigh
	case health > 0.25:
		return BandMid
	default:
		return BandLow
	}
}

// DroneView is a drone as the front end sees it.
type DroneView struct {
	entity.Drone
	Health float64
	Band   HealthBand
}

// Snapshot is a read-only copy of everything a front end draws.
type Snapshot struct {
	Tick            uint64
	Clock           time.Duration
	State           core.GameState
	Level           int
	LevelName       string
	HasNextLevel    bool
	Runner          entity.Runner
	Items           []entity.Item
	Drones          []DroneView
	Projectiles     []entity.Projectile
	Collected       int
	Total           int
	DronesRemaining int
	DronesDestroyed int
	Notice          string
}

// Snapshot returns the current session state.
func (s *Session) Snapshot() Snapshot {
	drones := s.reg.Drones()
	views := make([]DroneView, len(drones))
	for i, d := range drones {
		h := d.Health()
		views[i] = DroneView{Drone: d, Health: h, Band: BandFor(h)}
	}
	return Snapshot{
		Tick:            s.tick,
		Clock:           s.sched.Now(),
		State:           s.state,
		Level:           s.level,
		LevelName:       level.Get(s.level).Name,
		HasNextLevel:    level.HasNext(s.level),
		Runner:          s.reg.Runner(),
		Items:           s.reg.Items(),
		Drones:          views,
		Projectiles:     s.reg.Projectiles(),
		Collected:       s.tally.Collected,
		Total:           s.tally.Total,
		DronesRemaining: s.reg.DronesRemaining(),
		DronesDestroyed: s.reg.DronesDestroyed(),
		Notice:          s.notice,
	}
}

// Digest hashes the snapshot. Equal seeds and inputs give equal digests.
func (sn Snapshot) Digest() uint64 {
	h := xxhash.New()
	var buf [8]byte
	put := func(v int64) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		_, _ = h.Write(buf[:])
	}

	put(int64(sn.Tick))
	put(int64(sn.Clock))
	put(int64(sn.State))
	put(int64(sn.Level))
	put(int64(sn.Runner.Pos.X))
	put(int64(sn.Runner.Pos.Y))
	put(int64(sn.Runner.Facing))
	put(int64(sn.Collected))
	put(int64(sn.Total))
	for _, it := range sn.Items {
		put(int64(it.ID))
		put(int64(it.Pos.X))
		put(int64(it.Pos.Y))
	}
	put(-1)
	for _, d := range sn.Drones {
		put(int64(d.ID))
		put(int64(d.Pos.X))
		put(int64(d.Pos.Y))
		put(int64(d.Hits))
		put(int64(math.Float64bits(d.Health)))
	}
	put(-1)
	for _, p := range sn.Projectiles {
		put(int64(p.ID))
		put(int64(p.Pos.X))
		put(int64(p.Pos.Y))
		put(int64(p.DX))
		put(int64(p.DY))
	}
	_, _ = h.WriteString(sn.Notice)
	return h.Sum64()
}
