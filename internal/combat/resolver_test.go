package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/cybergrid/internal/core"
	"github.com/vovakirdan/cybergrid/internal/entity"
	"github.com/vovakirdan/cybergrid/internal/grid"
)

func TestCollectionNeedsExactCell(t *testing.T) {
	reg := entity.New()
	reg.AddItem(grid.C(24, 25))
	reg.AddItem(grid.C(40, 40))
	tally := &Tally{Total: 2}

	// runner at (25,25) is adjacent, not on the item
	rep := Resolve(core.StatePlaying, reg, tally)
	assert.True(t, rep.Empty())
	assert.Equal(t, 0, tally.Collected)

	reg.MoveRunner(grid.DirLeft)
	rep = Resolve(core.StatePlaying, reg, tally)
	require.Len(t, rep.Collected, 1)
	assert.Equal(t, grid.C(24, 25), rep.Collected[0].Pos)
	assert.Equal(t, 1, tally.Collected)
	assert.Equal(t, OutcomeNone, rep.Outcome)

	rep = Resolve(core.StatePlaying, reg, tally)
	assert.Empty(t, rep.Collected, "item is gone after collection")
	assert.Equal(t, 1, tally.Collected)
}

func TestVictoryExactlyAtTotal(t *testing.T) {
	reg := entity.New()
	for x := 26; x <= 28; x++ {
		reg.AddItem(grid.C(x, 25))
	}
	tally := &Tally{Total: 3}

	for i := 1; i <= 3; i++ {
		reg.MoveRunner(grid.DirRight)
		rep := Resolve(core.StatePlaying, reg, tally)
		assert.Equal(t, i, tally.Collected)
		if i < 3 {
			assert.Equal(t, OutcomeNone, rep.Outcome, "victory before total at %d", i)
		} else {
			assert.Equal(t, OutcomeVictory, rep.Outcome)
		}
	}
}

func TestProjectileHitsAndElimination(t *testing.T) {
	reg := entity.New()
	reg.AddItem(grid.C(0, 0))
	d := reg.AddDrone(grid.C(25, 22))
	tally := &Tally{Total: 1}

	for hit := 1; hit <= entity.MaxHits; hit++ {
		reg.FireProjectile(0) // facing up from (25,25)
		for reg.Projectiles()[0].Pos != d.Pos {
			reg.StepProjectiles()
		}
		rep := Resolve(core.StatePlaying, reg, tally)
		require.Len(t, rep.Hits, 1)
		assert.Equal(t, d.ID, rep.Hits[0].DroneID)
		assert.InDelta(t, entity.HealthAfter(hit), rep.Hits[0].Health, 1e-9)
		assert.Equal(t, hit == entity.MaxHits, rep.Hits[0].Destroyed)
		assert.Equal(t, hit == entity.MaxHits, rep.AllEliminated)
		assert.Empty(t, reg.Projectiles(), "projectile is consumed by the hit")
		assert.Equal(t, OutcomeNone, rep.Outcome, "eliminating drones does not end the level")
	}
	assert.Zero(t, reg.DronesRemaining())
}

func TestDronesRemainingDecrementsByOne(t *testing.T) {
	reg := entity.New()
	reg.AddItem(grid.C(0, 0))
	for x := 10; x <= 40; x += 10 {
		reg.AddDrone(grid.C(x, 10))
	}
	tally := &Tally{Total: 1}
	park := grid.C(0, 49)

	for _, d := range reg.Drones() {
		before := reg.DronesRemaining()
		for k := 1; k <= entity.MaxHits; k++ {
			reg.PlaceRunner(d.Pos)
			reg.FireProjectile(0)
			reg.PlaceRunner(park)
			Resolve(core.StatePlaying, reg, tally)
			if k < entity.MaxHits {
				assert.Equal(t, before, reg.DronesRemaining())
			}
		}
		assert.Equal(t, before-1, reg.DronesRemaining())
	}
	assert.Zero(t, reg.DronesRemaining())
	assert.Equal(t, 4, reg.DronesDestroyed())
}

func TestRunnerContactIsGameOver(t *testing.T) {
	reg := entity.New()
	reg.AddItem(grid.C(0, 0))
	reg.AddDrone(grid.C(25, 24))
	tally := &Tally{Total: 1}

	assert.Equal(t, OutcomeNone, Resolve(core.StatePlaying, reg, tally).Outcome)
	reg.MoveRunner(grid.DirUp)
	assert.Equal(t, OutcomeGameOver, Resolve(core.StatePlaying, reg, tally).Outcome)
}

func TestResolveIsNoOpOutsidePlaying(t *testing.T) {
	for _, state := range []core.GameState{core.StateMenu, core.StatePaused, core.StateVictory, core.StateGameOver} {
		t.Run(state.String(), func(t *testing.T) {
			reg := entity.New()
			reg.AddItem(grid.Spawn)
			reg.AddDrone(grid.C(25, 24))
			reg.FireProjectile(0)
			reg.StepProjectiles()
			tally := &Tally{Total: 1}

			rep := Resolve(state, reg, tally)
			assert.True(t, rep.Empty())
			assert.Zero(t, tally.Collected)
			assert.Equal(t, 1, reg.ItemCount())
			assert.Len(t, reg.Projectiles(), 1)
			assert.Equal(t, 0, reg.Drones()[0].Hits)
		})
	}
}

func TestTallyComplete(t *testing.T) {
	assert.False(t, Tally{}.Complete())
	assert.False(t, Tally{Collected: 7, Total: 8}.Complete())
	assert.True(t, Tally{Collected: 8, Total: 8}.Complete())
}
