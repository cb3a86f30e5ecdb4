// Package autopilot plays CyberGrid without a human. It steers greedily:
// walk toward the nearest data node, keep clear of drones and shoot drones
// lined up in front of the runner. It is a test driver, not a path planner.
package autopilot

import (
	"time"

	"github.com/vovakirdan/cybergrid/internal/core"
	"github.com/vovakirdan/cybergrid/internal/game"
	"github.com/vovakirdan/cybergrid/internal/grid"
)

// FireRange is how far ahead an aligned drone triggers firing.
const FireRange = 12

// Pilot turns snapshots into input frames. It holds a direction until the
// runner moves and waits out the repeat period before turning, so it moves
// no faster than a player holding a key.
type Pilot struct {
	level    int
	repeat   time.Duration
	dir      grid.Dir
	lastPos  grid.Coord
	lastMove time.Duration
	started  bool
}

// New creates a pilot that starts at the given level and turns no faster
// than repeat.
func New(startLevel int, repeat time.Duration) *Pilot {
	return &Pilot{level: startLevel, repeat: repeat}
}

// Next returns the input for the next frame.
func (p *Pilot) Next(sn game.Snapshot) core.InputFrame {
	in := core.NewInputFrame()
	switch sn.State {
	case core.StateMenu:
		if p.level >= 1 && p.level <= len(core.LevelActions) {
			in.Set(core.LevelActions[p.level-1])
		}
		in.Set(core.ActionConfirm)
		p.started = false
	case core.StateVictory:
		in.Set(core.ActionConfirm)
		p.started = false
	case core.StatePaused:
		in.Set(core.ActionPause)
	case core.StatePlaying:
		p.steer(sn, &in)
	}
	return in
}

func (p *Pilot) steer(sn game.Snapshot, in *core.InputFrame) {
	pos := sn.Runner.Pos
	if !p.started || pos != p.lastPos {
		p.started = true
		p.lastPos = pos
		p.lastMove = sn.Clock
	}

	want := Choose(sn)
	if want != p.dir {
		if p.dir != grid.DirNone && sn.Clock-p.lastMove < p.repeat {
			p.dir = grid.DirNone
		} else {
			p.dir = want
		}
	}
	if a := action(p.dir); a != core.ActionNone {
		in.Set(a)
	}
	if ShouldFire(sn) {
		in.Set(core.ActionFire)
	}
}

// Choose picks the direction to walk: toward the nearest item along the
// longer axis first, skipping cells next to a drone. DirNone means stay.
func Choose(sn game.Snapshot) grid.Dir {
	pos := sn.Runner.Pos
	target, ok := nearestItem(sn)
	if !ok {
		return grid.DirNone
	}
	for _, d := range toward(pos, target) {
		next := pos.Step(d)
		if next.InBounds() && !dangerous(sn, next) {
			return d
		}
	}
	return grid.DirNone
}

// ShouldFire reports whether a drone sits in the runner's line of fire.
func ShouldFire(sn game.Snapshot) bool {
	r := sn.Runner
	dx, dy := r.Facing.Delta()
	if dx == 0 && dy == 0 {
		return false
	}
	for _, d := range sn.Drones {
		ox, oy := d.Pos.X-r.Pos.X, d.Pos.Y-r.Pos.Y
		switch {
		case dx != 0 && oy == 0 && ox*dx > 0 && ox*dx <= FireRange:
			return true
		case dy != 0 && ox == 0 && oy*dy > 0 && oy*dy <= FireRange:
			return true
		}
	}
	return false
}

func nearestItem(sn game.Snapshot) (grid.Coord, bool) {
	best, found := grid.Coord{}, false
	bestDist := 0
	for _, it := range sn.Items {
		d := sn.Runner.Pos.Manhattan(it.Pos)
		if !found || d < bestDist {
			best, bestDist, found = it.Pos, d, true
		}
	}
	return best, found
}

func dangerous(sn game.Snapshot, c grid.Coord) bool {
	for _, d := range sn.Drones {
		if d.Pos.Adjacent(c) {
			return true
		}
	}
	return false
}

func toward(from, to grid.Coord) []grid.Dir {
	dx, dy := to.X-from.X, to.Y-from.Y
	h, v := grid.DirNone, grid.DirNone
	switch {
	case dx > 0:
		h = grid.DirRight
	case dx < 0:
		h = grid.DirLeft
	}
	switch {
	case dy > 0:
		v = grid.DirDown
	case dy < 0:
		v = grid.DirUp
	}

	var dirs []grid.Dir
	if core.Abs(dx) >= core.Abs(dy) {
		dirs = append(dirs, h, v)
	} else {
		dirs = append(dirs, v, h)
	}
	out := make([]grid.Dir, 0, 4)
	for _, d := range dirs {
		if d != grid.DirNone {
			out = append(out, d)
		}
	}
	for _, d := range grid.Compass {
		if !containsDir(out, d) {
			out = append(out, d)
		}
	}
	return out
}

func containsDir(dirs []grid.Dir, d grid.Dir) bool {
	for _, x := range dirs {
		if x == d {
			return true
		}
	}
	return false
}

func action(d grid.Dir) core.Action {
	switch d {
	case grid.DirUp:
		return core.ActionUp
	case grid.DirDown:
		return core.ActionDown
	case grid.DirLeft:
		return core.ActionLeft
	case grid.DirRight:
		return core.ActionRight
	default:
		return core.ActionNone
	}
}
