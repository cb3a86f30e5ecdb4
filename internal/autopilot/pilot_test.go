package autopilot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/cybergrid/internal/config"
	"github.com/vovakirdan/cybergrid/internal/core"
	"github.com/vovakirdan/cybergrid/internal/entity"
	"github.com/vovakirdan/cybergrid/internal/game"
	"github.com/vovakirdan/cybergrid/internal/grid"
)

func playing(runner grid.Coord, facing grid.Dir, items []grid.Coord, drones []grid.Coord) game.Snapshot {
	sn := game.Snapshot{
		State:  core.StatePlaying,
		Runner: entity.Runner{Pos: runner, Facing: facing},
	}
	for i, c := range items {
		sn.Items = append(sn.Items, entity.Item{ID: i + 1, Pos: c})
	}
	for i, c := range drones {
		sn.Drones = append(sn.Drones, game.DroneView{Drone: entity.Drone{ID: 100 + i, Pos: c, Prev: c, Alive: true}, Health: 1})
	}
	return sn
}

func TestMenuStartsLevel(t *testing.T) {
	p := New(3, 200*time.Millisecond)
	in := p.Next(game.Snapshot{State: core.StateMenu})
	assert.True(t, in.Has(core.ActionConfirm))
	assert.Equal(t, 3, in.SelectedLevel())

	assert.True(t, p.Next(game.Snapshot{State: core.StateVictory}).Has(core.ActionConfirm))
	assert.True(t, p.Next(game.Snapshot{State: core.StatePaused}).PauseToggled())
	assert.Empty(t, p.Next(game.Snapshot{State: core.StateGameOver}).Actions)
}

func TestChooseWalksTowardNearestItem(t *testing.T) {
	sn := playing(grid.C(25, 25), grid.DirUp, []grid.Coord{grid.C(20, 25), grid.C(40, 40)}, nil)
	assert.Equal(t, grid.DirLeft, Choose(sn))

	sn = playing(grid.C(25, 25), grid.DirUp, []grid.Coord{grid.C(26, 30)}, nil)
	assert.Equal(t, grid.DirDown, Choose(sn))

	assert.Equal(t, grid.DirNone, Choose(playing(grid.C(1, 1), grid.DirUp, nil, nil)))
}

func TestChooseAvoidsDrones(t *testing.T) {
	sn := playing(grid.C(25, 25), grid.DirUp, []grid.Coord{grid.C(20, 25)}, []grid.Coord{grid.C(23, 25)})
	assert.Equal(t, grid.DirUp, Choose(sn))
}

func TestShouldFire(t *testing.T) {
	tests := []struct {
		name   string
		facing grid.Dir
		drone  grid.Coord
		want   bool
	}{
		{"ahead up", grid.DirUp, grid.C(25, 20), true},
		{"behind", grid.DirUp, grid.C(25, 30), false},
		{"out of range", grid.DirUp, grid.C(25, 25-FireRange-1), false},
		{"ahead right", grid.DirRight, grid.C(30, 25), true},
		{"off axis", grid.DirRight, grid.C(30, 26), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sn := playing(grid.C(25, 25), tt.facing, nil, []grid.Coord{tt.drone})
			assert.Equal(t, tt.want, ShouldFire(sn))
		})
	}
}

func TestPilotWaitsBeforeTurning(t *testing.T) {
	p := New(1, 200*time.Millisecond)
	sn := playing(grid.C(25, 25), grid.DirUp, []grid.Coord{grid.C(20, 25)}, nil)
	assert.Equal(t, core.ActionLeft, p.Next(sn).HeldDirection())

	// the runner just stepped and the target now lies below
	sn = playing(grid.C(24, 25), grid.DirLeft, []grid.Coord{grid.C(24, 30)}, nil)
	sn.Clock = 10 * time.Millisecond
	assert.Equal(t, core.ActionNone, p.Next(sn).HeldDirection(), "turn waits for the repeat period")

	sn.Clock = 250 * time.Millisecond
	assert.Equal(t, core.ActionDown, p.Next(sn).HeldDirection())
}

func TestPlayDrivesSession(t *testing.T) {
	collected := 0
	for seed := int64(1); seed <= 5; seed++ {
		sess := game.New(config.Default().Timing)
		sess.Reset(core.RuntimeConfig{TickRate: 60, Seed: seed})
		results, err := Play(sess, New(1, config.Default().Timing.RunnerRepeat()), 60*120)
		require.NoError(t, err)
		for _, r := range results {
			assert.GreaterOrEqual(t, r.Level, 1)
			assert.LessOrEqual(t, r.Collected, r.Total)
			collected += r.Collected
		}
		collected += sess.Snapshot().Collected
	}
	assert.Positive(t, collected)
}
